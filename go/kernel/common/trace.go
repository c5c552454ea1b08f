package common

import (
	"fmt"
	"strconv"
	"strings"
)

// Format selects how a syscall's raw argument words are rendered in a
// trace line. The set is closed: every registered syscall carries
// exactly one of these tags, so adding a call is a table edit, not a new
// branch in the formatter.
type Format int

const (
	// FmtNone prints no arguments.
	FmtNone Format = iota
	// FmtInt prints word 0 as an unsigned integer.
	FmtInt
	// FmtPtr prints word 0 as an address, or NULL when zero.
	FmtPtr
	// FmtBuf prints word 0 as an integer, word 1 as an address, and
	// word 2 as an integer (read/write-shaped calls).
	FmtBuf
	// FmtPtrPair prints words 0 and 1 as addresses, each nullable.
	FmtPtrPair
	// FmtPath prints word 0 as a NUL-terminated path string.
	FmtPath
	// FmtPathInt prints word 0 as a path and word 1 as an integer.
	FmtPathInt
	// FmtPathIntInt prints word 0 as a path and words 1-2 as integers.
	FmtPathIntInt
	// FmtPathPair prints words 0 and 1 as path strings.
	FmtPathPair
)

// MaxPathDisplay bounds how much of a path argument the tracer fetches
// from user memory for display. xv6 paths top out at MAXPATH (128)
// bytes; 64 is plenty for a trace line.
const MaxPathDisplay = 64

func traceDec(v uint64) string {
	return strconv.FormatUint(v, 10)
}

func tracePtr(v uint64) string {
	if v == 0 {
		return "NULL"
	}
	return fmt.Sprintf("0x%x", v)
}

// tracePath fetches a path argument for display. Tracing must never fail
// the call: a bad or unmapped address falls back to rendering the raw
// pointer instead of propagating the error.
func tracePath(p *Proc, v uint64) string {
	if v == 0 {
		return "NULL"
	}
	s, err := p.FetchStr(v, MaxPathDisplay)
	if err != nil {
		return tracePtr(v)
	}
	return s
}

// Render produces the argument list for one trace line from the raw
// words captured at trap entry. Path categories dereference user memory
// for display only; the handler does its own marshaling independently.
func (f Format) Render(p *Proc, args [6]uint64) string {
	switch f {
	case FmtInt:
		return traceDec(args[0])
	case FmtPtr:
		return tracePtr(args[0])
	case FmtBuf:
		return strings.Join([]string{traceDec(args[0]), fmt.Sprintf("0x%x", args[1]), traceDec(args[2])}, ", ")
	case FmtPtrPair:
		return tracePtr(args[0]) + ", " + tracePtr(args[1])
	case FmtPath:
		return tracePath(p, args[0])
	case FmtPathInt:
		return tracePath(p, args[0]) + ", " + traceDec(args[1])
	case FmtPathIntInt:
		return strings.Join([]string{tracePath(p, args[0]), traceDec(args[1]), traceDec(args[2])}, ", ")
	case FmtPathPair:
		return tracePath(p, args[0]) + ", " + tracePath(p, args[1])
	}
	return ""
}

// TraceLine renders one completed syscall for the console sink.
func TraceLine(p *Proc, sys *Syscall, args [6]uint64, ret int64) string {
	return fmt.Sprintf("%d: syscall %s(%s) -> %d", p.Pid, sys.Name, sys.Fmt.Render(p, args), ret)
}
