package sys

import (
	"github.com/gosix/gosix/go/kernel/common"
)

// file types reported in Stat.Type
const (
	typeDir    int16 = 1
	typeFile   int16 = 2
	typeDevice int16 = 3
)

// Stat is the user-visible struct stat layout, packed field for field in
// the process byte order.
type Stat struct {
	Dev   int32  `struc:"int32"`
	Ino   uint32 `struc:"uint32"`
	Type  int16  `struc:"int16"`
	Nlink int16  `struc:"int16"`
	Size  uint64 `struc:"uint64"`
}

// Sysinfo is the user-visible struct sysinfo layout.
type Sysinfo struct {
	Freemem uint64 `struc:"uint64"`
	Nproc   uint64 `struc:"uint64"`
}

func (k *Kernel) sysinfo(p *common.Proc) int64 {
	addr := p.ArgAddr(0)
	if addr == 0 || addr >= p.Sz {
		return -1
	}
	si := Sysinfo{
		Freemem: (uint64(1) << k.Config.MemBits) - p.Sz,
		Nproc:   uint64(k.nextPid),
	}
	if err := common.NewBuf(p, addr).Pack(&si); err != nil {
		return -1
	}
	return 0
}
