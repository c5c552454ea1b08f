package sys

import (
	"github.com/gosix/gosix/go/kernel/common"
)

func (k *Kernel) fork(p *common.Proc) int64 {
	k.nextPid++
	k.Log.Debug("fork", "parent", p.Pid, "child", k.nextPid)
	return int64(k.nextPid)
}

func (k *Kernel) exit(p *common.Proc) int64 {
	k.status = p.ArgInt(0)
	k.Log.Debug("exit", "pid", p.Pid, "status", k.status)
	return 0
}

type waitStatus struct {
	Status int32 `struc:"int32"`
}

func (k *Kernel) wait(p *common.Proc) int64 {
	addr := p.ArgAddr(0)
	if addr != 0 {
		if addr >= p.Sz {
			return -1
		}
		st := waitStatus{Status: k.status}
		if err := common.NewBuf(p, addr).Pack(&st); err != nil {
			return -1
		}
	}
	return int64(k.nextPid)
}

func (k *Kernel) kill(p *common.Proc) int64 {
	pid := p.ArgInt(0)
	if pid <= 0 || int(pid) > k.nextPid {
		return -1
	}
	k.Log.Debug("kill", "pid", pid)
	return 0
}

func (k *Kernel) getpid(p *common.Proc) int64 {
	return int64(p.Pid)
}

func (k *Kernel) sbrk(p *common.Proc) int64 {
	n := p.ArgInt(0)
	old := p.Sz
	switch {
	case n > 0:
		if err := p.Mem.Map(p.Sz, uint64(n)); err != nil {
			return -1
		}
		p.Sz += uint64(n)
	case n < 0:
		dec := uint64(int64(-n))
		if dec > p.Sz {
			return -1
		}
		// pages stay mapped; the size bound is what copies check
		p.Sz -= dec
	}
	return int64(old)
}

func (k *Kernel) sleep(p *common.Proc) int64 {
	n := p.ArgInt(0)
	if n < 0 {
		return -1
	}
	k.ticks += uint64(n)
	return 0
}

func (k *Kernel) uptime(p *common.Proc) int64 {
	return int64(k.ticks)
}

// trace installs the per-syscall trace bitmask for the calling process.
// This is the only way the mask changes; the dispatcher just reads it.
func (k *Kernel) trace(p *common.Proc) int64 {
	p.TraceMask = uint32(p.ArgInt(0))
	return 0
}
