package common

import "github.com/pkg/errors"

// Marshaling failures are reported by value; nothing in the syscall path
// unwinds across the trap boundary. Handlers fold both kinds into their
// own negative return convention.
var (
	// ErrAddrInvalid: the address or address+length falls outside the
	// process size bound, or the bounds arithmetic would wrap.
	ErrAddrInvalid = errors.New("address out of range")
	// ErrCopyFault: the address passed the bound check but the
	// cross-space copy hit an unmapped or inaccessible page.
	ErrCopyFault = errors.New("copy from user space faulted")
)
