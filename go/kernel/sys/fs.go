package sys

import (
	"github.com/gosix/gosix/go/kernel/common"
	"github.com/gosix/gosix/go/models"
)

func (k *Kernel) open(p *common.Proc) int64 {
	path, err := p.ArgStr(0, MAXPATH)
	if err != nil {
		return -1
	}
	flags := p.ArgInt(1)
	fd := k.allocFd(path)
	k.Log.Debug("open", "path", path, "flags", flags, "fd", fd)
	return int64(fd)
}

func (k *Kernel) close(p *common.Proc) int64 {
	fd := p.ArgInt(0)
	if _, ok := k.fds[fd]; !ok {
		return -1
	}
	delete(k.fds, fd)
	return 0
}

func (k *Kernel) dup(p *common.Proc) int64 {
	fd := p.ArgInt(0)
	path, ok := k.fds[fd]
	if !ok {
		return -1
	}
	return int64(k.allocFd(path))
}

func (k *Kernel) read(p *common.Proc) int64 {
	fd := p.ArgInt(0)
	addr := p.ArgAddr(1)
	n := p.ArgInt(2)
	if _, ok := k.fds[fd]; !ok || n < 0 {
		return -1
	}
	m := int(n)
	if m > len(k.input) {
		m = len(k.input)
	}
	end := addr + uint64(m)
	if addr >= p.Sz || end > p.Sz || end < addr {
		return -1
	}
	if err := p.Mem.MemWrite(addr, k.input[:m]); err != nil {
		return -1
	}
	k.input = k.input[m:]
	return int64(m)
}

func (k *Kernel) write(p *common.Proc) int64 {
	fd := p.ArgInt(0)
	addr := p.ArgAddr(1)
	n := p.ArgInt(2)
	if _, ok := k.fds[fd]; !ok || n < 0 {
		return -1
	}
	end := addr + uint64(n)
	if addr >= p.Sz || end > p.Sz || end < addr {
		return -1
	}
	buf, err := p.Mem.MemRead(addr, uint64(n))
	if err != nil {
		return -1
	}
	if fd == 1 || fd == 2 {
		if _, err := k.Console.Write(buf); err != nil {
			return -1
		}
	}
	k.Log.Debug("write", "fd", fd, "data", models.Repr(buf, k.Config.Strsize))
	return int64(n)
}

func (k *Kernel) fstat(p *common.Proc) int64 {
	fd := p.ArgInt(0)
	addr := p.ArgAddr(1)
	path, ok := k.fds[fd]
	if !ok || addr == 0 || addr >= p.Sz {
		return -1
	}
	st := Stat{
		Dev:   1,
		Ino:   uint32(fd),
		Type:  typeFile,
		Nlink: 1,
		Size:  0,
	}
	if path == "console" {
		st.Type = typeDevice
	}
	if err := common.NewBuf(p, addr).Pack(&st); err != nil {
		return -1
	}
	return 0
}

type pipeFds struct {
	Read  int32 `struc:"int32"`
	Write int32 `struc:"int32"`
}

func (k *Kernel) pipe(p *common.Proc) int64 {
	addr := p.ArgAddr(0)
	if addr == 0 || addr >= p.Sz {
		return -1
	}
	fds := pipeFds{Read: k.allocFd("pipe"), Write: k.allocFd("pipe")}
	if err := common.NewBuf(p, addr).Pack(&fds); err != nil {
		delete(k.fds, fds.Read)
		delete(k.fds, fds.Write)
		return -1
	}
	return 0
}

func (k *Kernel) mknod(p *common.Proc) int64 {
	path, err := p.ArgStr(0, MAXPATH)
	if err != nil {
		return -1
	}
	major, minor := p.ArgInt(1), p.ArgInt(2)
	k.Log.Debug("mknod", "path", path, "major", major, "minor", minor)
	return 0
}

func (k *Kernel) unlink(p *common.Proc) int64 {
	if _, err := p.ArgStr(0, MAXPATH); err != nil {
		return -1
	}
	return 0
}

func (k *Kernel) link(p *common.Proc) int64 {
	if _, err := p.ArgStr(0, MAXPATH); err != nil {
		return -1
	}
	if _, err := p.ArgStr(1, MAXPATH); err != nil {
		return -1
	}
	return 0
}

func (k *Kernel) mkdir(p *common.Proc) int64 {
	if _, err := p.ArgStr(0, MAXPATH); err != nil {
		return -1
	}
	return 0
}

func (k *Kernel) chdir(p *common.Proc) int64 {
	path, err := p.ArgStr(0, MAXPATH)
	if err != nil {
		return -1
	}
	k.cwd = path
	return 0
}

// exec walks the argv vector the way the real call would, word by word
// through FetchAddr, then fails: there is no filesystem to load from.
func (k *Kernel) exec(p *common.Proc) int64 {
	path, err := p.ArgStr(0, MAXPATH)
	if err != nil {
		return -1
	}
	uargv := p.ArgAddr(1)
	var argv []string
	for i := 0; i < MAXARG; i++ {
		uarg, err := p.FetchAddr(uargv + uint64(i)*8)
		if err != nil {
			return -1
		}
		if uarg == 0 {
			break
		}
		arg, err := p.FetchStr(uarg, MAXPATH)
		if err != nil {
			return -1
		}
		argv = append(argv, arg)
	}
	k.Log.Debug("exec", "path", path, "argv", argv)
	return -1
}
