package common

import (
	"github.com/gosix/gosix/go/models"
	"github.com/gosix/gosix/go/models/uvm"
)

// Trapframe is the user register state saved at trap entry. Only the
// slots the syscall path touches are modeled: a0-a5 carry arguments, a7
// carries the syscall number, and a0 doubles as the return slot. The
// dispatcher is the only writer of the return slot.
type Trapframe struct {
	A0, A1, A2, A3, A4, A5 uint64
	A7                     uint64
}

// Args snapshots the six argument slots. Handlers never mutate argument
// registers, so a snapshot taken at trap entry stays valid for tracing.
func (tf *Trapframe) Args() [6]uint64 {
	return [6]uint64{tf.A0, tf.A1, tf.A2, tf.A3, tf.A4, tf.A5}
}

// Proc is the kernel's view of the currently trapped process: identity
// for diagnostics, the trapframe, and the address-space state that
// bounds every cross-space copy. A Proc is owned exclusively by its trap
// for the duration of dispatch.
type Proc struct {
	Pid  int
	Name string

	// Sz is the process size bound: user virtual addresses are valid
	// below it and nowhere else.
	Sz  uint64
	Mem *uvm.Mem

	// TraceMask has one bit per syscall number; set means trace.
	TraceMask uint32

	Tf Trapframe
}

// StrucAt returns a struct packer/unpacker positioned at a user address.
func (p *Proc) StrucAt(addr uint64) *models.StrucStream {
	return &models.StrucStream{
		Stream: &models.MemIO{Mem: p.Mem, Addr: addr},
		Order:  p.Mem.Order(),
	}
}
