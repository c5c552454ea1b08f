package common

import (
	"fmt"

	"github.com/pkg/errors"

	"github.com/gosix/gosix/go/models/uvm"
)

// Argument marshaling for the currently trapped process. Everything here
// reads process state and nothing mutates it; failures surface as
// ErrAddrInvalid or ErrCopyFault, never as a fault mid-copy.

// ArgRaw returns the nth raw syscall argument word. The six slots always
// exist; asking for any other slot is a handler bug, not a runtime
// condition, so it panics.
func (p *Proc) ArgRaw(n int) uint64 {
	switch n {
	case 0:
		return p.Tf.A0
	case 1:
		return p.Tf.A1
	case 2:
		return p.Tf.A2
	case 3:
		return p.Tf.A3
	case 4:
		return p.Tf.A4
	case 5:
		return p.Tf.A5
	}
	panic(fmt.Sprintf("ArgRaw: no argument slot %d", n))
}

// ArgInt returns the nth argument truncated to a 32-bit int. Plain
// integers carry no addressing risk, so there is nothing to validate.
func (p *Proc) ArgInt(n int) int32 {
	return int32(p.ArgRaw(n))
}

// ArgAddr returns the nth argument as a candidate user address. Legality
// is not checked here: the copy primitive that eventually consumes the
// address does that, and some handlers never dereference it at all.
func (p *Proc) ArgAddr(n int) uint64 {
	return p.ArgRaw(n)
}

// FetchAddr reads the uint64 at addr in the process address space.
func (p *Proc) FetchAddr(addr uint64) (uint64, error) {
	// both tests needed, in case of overflow
	if addr >= p.Sz || addr+8 > p.Sz || addr+8 < addr {
		return 0, errors.Wrapf(ErrAddrInvalid, "word at %#x", addr)
	}
	v, err := p.Mem.ReadUint(addr, 8)
	if err != nil {
		return 0, errors.Wrapf(ErrCopyFault, "word at %#x: %s", addr, err)
	}
	return v, nil
}

// FetchStr reads the NUL-terminated string at addr, at most max bytes.
// The returned string excludes the terminator.
func (p *Proc) FetchStr(addr uint64, max int) (string, error) {
	if addr >= p.Sz {
		return "", errors.Wrapf(ErrAddrInvalid, "string at %#x", addr)
	}
	if rem := p.Sz - addr; uint64(max) > rem {
		max = int(rem)
	}
	s, err := p.Mem.ReadStrAt(addr, max)
	if err != nil {
		if errors.Cause(err) == uvm.ErrNoNul {
			return "", errors.Wrapf(ErrAddrInvalid, "string at %#x: %s", addr, err)
		}
		return "", errors.Wrapf(ErrCopyFault, "string at %#x: %s", addr, err)
	}
	return s, nil
}

// ArgStr fetches the nth argument as a NUL-terminated string: a word
// denoting a user address, interpreted as a byte string.
func (p *Proc) ArgStr(n int, max int) (string, error) {
	return p.FetchStr(p.ArgAddr(n), max)
}
