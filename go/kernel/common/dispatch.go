package common

import (
	"fmt"
)

// Syscall dispatches the trap recorded in p's trapframe: read the
// number, look it up, run the handler, trace if the process asked for
// it, and leave the result in the return slot. Runs synchronously to
// completion; concurrent traps for different processes are safe because
// the table is read-only and each Proc belongs to its own trap.
func (k *Kernel) Syscall(p *Proc) {
	num := int(p.Tf.A7)

	sys := k.Table.Lookup(num)
	if sys == nil {
		k.Log.Warn("unknown syscall", "pid", p.Pid, "proc", p.Name, "num", num)
		fmt.Fprintf(k.Console, "%d %s: unknown sys call %d\n", p.Pid, p.Name, num)
		ret := int64(-1)
		p.Tf.A0 = uint64(ret)
		return
	}

	// snapshot the argument registers before the handler runs; the
	// tracer renders the words the caller passed, not handler leftovers
	args := p.Tf.Args()

	ret := sys.Fn(p)

	if p.TraceMask&(1<<uint(num)) != 0 {
		fmt.Fprintln(k.Console, TraceLine(p, sys, args, ret))
	}

	p.Tf.A0 = uint64(ret)
}
