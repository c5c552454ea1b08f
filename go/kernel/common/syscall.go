package common

import (
	"fmt"
)

// Handler is the entry point of one system call. Handlers take no
// arguments: each pulls what it needs from the trapped process through
// the marshaling layer, using its declared arity as the contract for how
// many slots are meaningful. A negative return signals failure to the
// user process; the dispatcher passes the value through untouched.
type Handler func(p *Proc) int64

// Syscall describes one registered system call.
type Syscall struct {
	Num   int
	Name  string
	Nargs int
	Fmt   Format
	Fn    Handler
}

// Table is the dispatch table: dense, indexed directly by syscall
// number, built once before the first trap and read-only afterward, so
// concurrent dispatch needs no locking. Number 0 is reserved.
type Table struct {
	sys []*Syscall
}

// NewTable builds a dispatch table from descriptors. Bad registrations
// are init-time programming errors and panic.
func NewTable(calls []*Syscall) *Table {
	max := 0
	for _, s := range calls {
		if s.Num <= 0 {
			panic(fmt.Sprintf("syscall %q registered with number %d", s.Name, s.Num))
		}
		if s.Nargs < 0 || s.Nargs > 6 {
			panic(fmt.Sprintf("syscall %q registered with %d args", s.Name, s.Nargs))
		}
		if s.Num > max {
			max = s.Num
		}
	}
	t := &Table{sys: make([]*Syscall, max+1)}
	for _, s := range calls {
		if t.sys[s.Num] != nil {
			panic(fmt.Sprintf("syscall number %d registered twice (%q, %q)", s.Num, t.sys[s.Num].Name, s.Name))
		}
		t.sys[s.Num] = s
	}
	return t
}

// Lookup returns the descriptor for num, or nil. Out-of-range numbers
// and in-range numbers with an empty slot both miss.
func (t *Table) Lookup(num int) *Syscall {
	if num <= 0 || num >= len(t.sys) {
		return nil
	}
	return t.sys[num]
}

// Len returns the table size (one past the highest registered number).
func (t *Table) Len() int {
	return len(t.sys)
}
