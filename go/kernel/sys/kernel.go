package sys

import (
	"io"

	"github.com/hashicorp/go-hclog"

	"github.com/gosix/gosix/go/kernel/common"
	"github.com/gosix/gosix/go/models"
)

// Kernel is the syscall surface of the machine: the dispatch core plus
// the small amount of state the handlers act on. Per-trap state lives on
// the Proc; everything here outlives individual traps.
type Kernel struct {
	*common.Kernel

	ticks   uint64
	nextPid int
	status  int32 // last exit status, reported by wait
	cwd     string
	nextFd  int32
	fds     map[int32]string // open fd -> path, console fds preopened
	input   []byte           // pending console input served by read
}

func New(console io.Writer, log hclog.Logger, config *models.Config) *Kernel {
	k := &Kernel{
		nextPid: 1,
		cwd:     "/",
		nextFd:  3,
		fds: map[int32]string{
			0: "console",
			1: "console",
			2: "console",
		},
	}
	k.Kernel = common.New(common.NewTable(k.calls()), console, log, config)
	return k
}

// calls is the whole syscall surface: number, display name, arity, trace
// rendering category, handler. Adding a call is one line here.
func (k *Kernel) calls() []*common.Syscall {
	return []*common.Syscall{
		{Num: SYS_fork, Name: "fork", Nargs: 0, Fmt: common.FmtNone, Fn: k.fork},
		{Num: SYS_exit, Name: "exit", Nargs: 1, Fmt: common.FmtInt, Fn: k.exit},
		{Num: SYS_wait, Name: "wait", Nargs: 1, Fmt: common.FmtPtr, Fn: k.wait},
		{Num: SYS_pipe, Name: "pipe", Nargs: 1, Fmt: common.FmtPtr, Fn: k.pipe},
		{Num: SYS_read, Name: "read", Nargs: 3, Fmt: common.FmtBuf, Fn: k.read},
		{Num: SYS_kill, Name: "kill", Nargs: 1, Fmt: common.FmtInt, Fn: k.kill},
		{Num: SYS_exec, Name: "exec", Nargs: 2, Fmt: common.FmtPtrPair, Fn: k.exec},
		{Num: SYS_fstat, Name: "fstat", Nargs: 2, Fmt: common.FmtPtrPair, Fn: k.fstat},
		{Num: SYS_chdir, Name: "chdir", Nargs: 1, Fmt: common.FmtPath, Fn: k.chdir},
		{Num: SYS_dup, Name: "dup", Nargs: 1, Fmt: common.FmtInt, Fn: k.dup},
		{Num: SYS_getpid, Name: "getpid", Nargs: 0, Fmt: common.FmtNone, Fn: k.getpid},
		{Num: SYS_sbrk, Name: "sbrk", Nargs: 1, Fmt: common.FmtInt, Fn: k.sbrk},
		{Num: SYS_sleep, Name: "sleep", Nargs: 1, Fmt: common.FmtInt, Fn: k.sleep},
		{Num: SYS_uptime, Name: "uptime", Nargs: 0, Fmt: common.FmtNone, Fn: k.uptime},
		{Num: SYS_open, Name: "open", Nargs: 2, Fmt: common.FmtPathInt, Fn: k.open},
		{Num: SYS_write, Name: "write", Nargs: 3, Fmt: common.FmtBuf, Fn: k.write},
		{Num: SYS_mknod, Name: "mknod", Nargs: 3, Fmt: common.FmtPathIntInt, Fn: k.mknod},
		{Num: SYS_unlink, Name: "unlink", Nargs: 1, Fmt: common.FmtPath, Fn: k.unlink},
		{Num: SYS_link, Name: "link", Nargs: 2, Fmt: common.FmtPathPair, Fn: k.link},
		{Num: SYS_mkdir, Name: "mkdir", Nargs: 1, Fmt: common.FmtPath, Fn: k.mkdir},
		{Num: SYS_close, Name: "close", Nargs: 1, Fmt: common.FmtInt, Fn: k.close},
		{Num: SYS_trace, Name: "trace", Nargs: 1, Fmt: common.FmtInt, Fn: k.trace},
		{Num: SYS_sysinfo, Name: "sysinfo", Nargs: 1, Fmt: common.FmtPtr, Fn: k.sysinfo},
	}
}

// QueueInput appends bytes to the console input served by sys_read.
func (k *Kernel) QueueInput(b []byte) {
	k.input = append(k.input, b...)
}

func (k *Kernel) allocFd(path string) int32 {
	fd := k.nextFd
	k.nextFd++
	k.fds[fd] = path
	return fd
}
