package uvm

import (
	"encoding/binary"
	"fmt"

	"github.com/pkg/errors"
)

// ErrNoNul is returned by ReadStrAt when no NUL terminator was found
// within the byte limit.
var ErrNoNul = errors.New("string is not NUL-terminated")

type MemError struct {
	Addr  uint64
	Size  int
	Write bool
}

func (m *MemError) Error() string {
	access := "read"
	if m.Write {
		access = "write"
	}
	return fmt.Sprintf("unmapped %s at %#x(%d)", access, m.Addr, m.Size)
}

// Mem stands in for a process page table: a sparse set of mapped user
// regions plus the cross-space copy primitives the kernel calls.
// Addresses outside the width mask are rejected the same way unmapped
// addresses are.
type Mem struct {
	bits uint
	// calculated by NewMem using ^uint64(0) >> (64 - bits)
	mask  uint64
	pages Pages
	order binary.ByteOrder
}

func NewMem(bits uint, order binary.ByteOrder) *Mem {
	return &Mem{
		bits:  bits,
		mask:  ^uint64(0) >> (64 - bits),
		order: order,
	}
}

func (m *Mem) Order() binary.ByteOrder { return m.order }

// Map adds a zeroed region. Overlapping an existing mapping is an error;
// the kernel owns the layout and never double-maps.
func (m *Mem) Map(addr, size uint64) error {
	end := addr + size
	if end&m.mask != end || end < addr {
		return errors.New("region outside memory range")
	}
	for _, p := range m.pages {
		if p.Overlaps(addr, size) {
			return errors.Errorf("region %#x-%#x already mapped", addr, end)
		}
	}
	m.pages = append(m.pages, &Page{Addr: addr, Size: size, Data: make([]byte, size)})
	m.pages.sort()
	return nil
}

// walk visits the mapped page slices under (addr, n) in order. A hole
// anywhere in the range is a MemError.
func (m *Mem) walk(addr uint64, n int, write bool, fn func(chunk []byte)) error {
	if n == 0 {
		return nil
	}
	end := addr + uint64(n)
	if end&m.mask != end || end < addr {
		return &MemError{Addr: addr, Size: n, Write: write}
	}
	pos := addr
	for pos < end {
		p := m.pages.Find(pos)
		if p == nil {
			return &MemError{Addr: pos, Size: n, Write: write}
		}
		_, size, _ := p.Intersect(pos, end-pos)
		off := pos - p.Addr
		fn(p.Data[off : off+size])
		pos += size
	}
	return nil
}

func (m *Mem) MemReadInto(b []byte, addr uint64) error {
	pos := 0
	return m.walk(addr, len(b), false, func(chunk []byte) {
		pos += copy(b[pos:], chunk)
	})
}

func (m *Mem) MemRead(addr, size uint64) ([]byte, error) {
	b := make([]byte, size)
	if err := m.MemReadInto(b, addr); err != nil {
		return nil, err
	}
	return b, nil
}

func (m *Mem) MemWrite(addr uint64, b []byte) error {
	pos := 0
	return m.walk(addr, len(b), true, func(chunk []byte) {
		pos += copy(chunk, b[pos:])
	})
}

// ReadUint reads a size-byte integer in the memory's byte order.
func (m *Mem) ReadUint(addr uint64, size int) (uint64, error) {
	if size > 8 {
		return 0, errors.Errorf("ReadUint size too large: %d > 8", size)
	}
	buf := make([]byte, size)
	if err := m.MemReadInto(buf, addr); err != nil {
		return 0, err
	}
	var full [8]byte
	if m.order == binary.BigEndian {
		copy(full[8-size:], buf)
		return binary.BigEndian.Uint64(full[:]), nil
	}
	copy(full[:], buf)
	return binary.LittleEndian.Uint64(full[:]), nil
}

// ReadStrAt copies a NUL-terminated string out of user memory, reading
// at most max bytes. The terminator is consumed but not returned.
// Reads stop at the first unmapped byte.
func (m *Mem) ReadStrAt(addr uint64, max int) (string, error) {
	var out []byte
	pos := addr
	for len(out) < max {
		p := m.pages.Find(pos)
		if p == nil {
			return "", &MemError{Addr: pos, Size: 1}
		}
		_, size, _ := p.Intersect(pos, uint64(max-len(out)))
		off := pos - p.Addr
		chunk := p.Data[off : off+size]
		for i, c := range chunk {
			if c == 0 {
				return string(append(out, chunk[:i]...)), nil
			}
		}
		out = append(out, chunk...)
		pos += size
	}
	return "", errors.Wrapf(ErrNoNul, "string at %#x", addr)
}
