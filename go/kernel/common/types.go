package common

import (
	"github.com/pkg/errors"

	"github.com/gosix/gosix/go/models"
)

// Buf is a user address a handler intends to move a struct across. The
// address comes straight from an argument register; the copy itself is
// bounds-checked by the address space when Pack/Unpack run.
type Buf struct {
	P    *Proc
	Addr uint64
}

func NewBuf(p *Proc, addr uint64) Buf {
	return Buf{P: p, Addr: addr}
}

func (b Buf) Struc() *models.StrucStream {
	return b.P.StrucAt(b.Addr)
}

// Pack copies a kernel struct out to the user buffer.
func (b Buf) Pack(i interface{}) error {
	return errors.Wrap(b.Struc().Pack(i), "struc.Pack() failed")
}

// Unpack copies a user struct into kernel memory.
func (b Buf) Unpack(i interface{}) error {
	return errors.Wrap(b.Struc().Unpack(i), "struc.Unpack() failed")
}
