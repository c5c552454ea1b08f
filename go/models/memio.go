package models

import (
	"github.com/gosix/gosix/go/models/uvm"
)

// MemIO is a cursor over user memory, so struc and the encoding packages
// can stream structs directly in and out of a process address space.
type MemIO struct {
	Mem  *uvm.Mem
	Addr uint64
}

func (m *MemIO) Read(p []byte) (int, error) {
	if err := m.Mem.MemReadInto(p, m.Addr); err != nil {
		return 0, err
	}
	m.Addr += uint64(len(p))
	return len(p), nil
}

func (m *MemIO) Write(p []byte) (int, error) {
	if err := m.Mem.MemWrite(m.Addr, p); err != nil {
		return 0, err
	}
	m.Addr += uint64(len(p))
	return len(p), nil
}
