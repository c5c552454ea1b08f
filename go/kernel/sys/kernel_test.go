package sys

import (
	"bytes"
	"encoding/binary"
	"testing"

	"github.com/gosix/gosix/go/kernel/common"
	"github.com/gosix/gosix/go/models"
	"github.com/gosix/gosix/go/models/uvm"
)

func testKernel(t *testing.T) (*Kernel, *common.Proc, *bytes.Buffer) {
	t.Helper()
	console := &bytes.Buffer{}
	k := New(console, nil, (&models.Config{MemBits: 32}).Init())
	m := uvm.NewMem(32, binary.LittleEndian)
	if err := m.Map(0, 0x4000); err != nil {
		t.Fatal("failed to map memory:", err)
	}
	return k, &common.Proc{Pid: 4, Name: "sh", Sz: 0x4000, Mem: m}, console
}

func trap(k *Kernel, p *common.Proc, num int, args ...uint64) int64 {
	var a [6]uint64
	copy(a[:], args)
	p.Tf = common.Trapframe{A0: a[0], A1: a[1], A2: a[2], A3: a[3], A4: a[4], A5: a[5], A7: uint64(num)}
	k.Syscall(p)
	return int64(p.Tf.A0)
}

func TestTableComplete(t *testing.T) {
	k, _, _ := testKernel(t)
	if k.Table.Len() != SYS_sysinfo+1 {
		t.Fatalf("table has %d slots", k.Table.Len())
	}
	names := make(map[string]bool)
	for num := SYS_fork; num <= SYS_sysinfo; num++ {
		sys := k.Table.Lookup(num)
		if sys == nil {
			t.Fatalf("syscall %d not registered", num)
		}
		if sys.Num != num {
			t.Fatalf("syscall %d registered as %d", num, sys.Num)
		}
		if names[sys.Name] {
			t.Fatalf("syscall name %q registered twice", sys.Name)
		}
		names[sys.Name] = true
	}
}

func TestWrite(t *testing.T) {
	k, p, console := testKernel(t)
	if err := p.Mem.MemWrite(0x1000, []byte("hello\n")); err != nil {
		t.Fatal("write failed:", err)
	}
	if ret := trap(k, p, SYS_write, 1, 0x1000, 6); ret != 6 {
		t.Fatalf("write returned %d", ret)
	}
	if console.String() != "hello\n" {
		t.Fatalf("console = %q", console.String())
	}
	// buffer straddles the size bound
	if ret := trap(k, p, SYS_write, 1, 0x3fff, 6); ret != -1 {
		t.Fatalf("out-of-bound write returned %d", ret)
	}
	// closed fd
	if ret := trap(k, p, SYS_write, 9, 0x1000, 6); ret != -1 {
		t.Fatalf("write to bad fd returned %d", ret)
	}
}

func TestRead(t *testing.T) {
	k, p, _ := testKernel(t)
	k.QueueInput([]byte("hi"))
	if ret := trap(k, p, SYS_read, 0, 0x1000, 10); ret != 2 {
		t.Fatalf("read returned %d", ret)
	}
	buf, err := p.Mem.MemRead(0x1000, 2)
	if err != nil || string(buf) != "hi" {
		t.Fatalf("read copied %q (%v)", buf, err)
	}
	// input drained
	if ret := trap(k, p, SYS_read, 0, 0x1000, 10); ret != 0 {
		t.Fatalf("read of drained input returned %d", ret)
	}
}

func TestTraceMaskEndToEnd(t *testing.T) {
	k, p, console := testKernel(t)
	if ret := trap(k, p, SYS_trace, 1<<SYS_getpid); ret != 0 {
		t.Fatalf("trace returned %d", ret)
	}
	if p.TraceMask != 1<<SYS_getpid {
		t.Fatalf("trace mask = %#x", p.TraceMask)
	}
	console.Reset()
	if ret := trap(k, p, SYS_getpid); ret != 4 {
		t.Fatalf("getpid returned %d", ret)
	}
	if console.String() != "4: syscall getpid() -> 4\n" {
		t.Fatalf("trace line = %q", console.String())
	}
	// untraced syscall stays silent
	console.Reset()
	trap(k, p, SYS_uptime)
	if console.Len() != 0 {
		t.Fatalf("untraced call emitted %q", console.String())
	}
}

func TestTracedOpen(t *testing.T) {
	k, p, console := testKernel(t)
	if err := p.Mem.MemWrite(0x1000, []byte("/etc/motd\x00")); err != nil {
		t.Fatal("write failed:", err)
	}
	trap(k, p, SYS_trace, 1<<SYS_open)
	console.Reset()
	ret := trap(k, p, SYS_open, 0x1000, 3)
	if ret != 3 {
		t.Fatalf("open returned %d", ret)
	}
	if console.String() != "4: syscall open(/etc/motd, 3) -> 3\n" {
		t.Fatalf("trace line = %q", console.String())
	}
}

func TestUnknownSyscall(t *testing.T) {
	k, p, console := testKernel(t)
	p.TraceMask = ^uint32(0)
	if ret := trap(k, p, 9999); ret != -1 {
		t.Fatalf("unknown syscall returned %d", ret)
	}
	if console.String() != "4 sh: unknown sys call 9999\n" {
		t.Fatalf("diagnostic = %q", console.String())
	}
}

func TestSbrk(t *testing.T) {
	k, p, _ := testKernel(t)
	if ret := trap(k, p, SYS_sbrk, 0x1000); ret != 0x4000 {
		t.Fatalf("sbrk returned %#x", ret)
	}
	if p.Sz != 0x5000 {
		t.Fatalf("size bound = %#x", p.Sz)
	}
	// the new region is mapped and usable
	if _, err := p.FetchAddr(0x4800); err != nil {
		t.Fatal("fetch from grown region failed:", err)
	}
	// negative sbrk pulls the bound back in
	neg := uint64(0)
	neg -= 0x1000
	if ret := trap(k, p, SYS_sbrk, neg); ret != 0x5000 {
		t.Fatalf("negative sbrk returned %#x", ret)
	}
	if p.Sz != 0x4000 {
		t.Fatalf("size bound = %#x", p.Sz)
	}
	if _, err := p.FetchAddr(0x4800); err == nil {
		t.Fatal("fetch above the lowered bound succeeded")
	}
}

func TestOpenCloseDup(t *testing.T) {
	k, p, _ := testKernel(t)
	if err := p.Mem.MemWrite(0x1000, []byte("README\x00")); err != nil {
		t.Fatal("write failed:", err)
	}
	fd := trap(k, p, SYS_open, 0x1000, 0)
	if fd != 3 {
		t.Fatalf("open returned %d", fd)
	}
	fd2 := trap(k, p, SYS_dup, uint64(fd))
	if fd2 != 4 {
		t.Fatalf("dup returned %d", fd2)
	}
	if ret := trap(k, p, SYS_close, uint64(fd)); ret != 0 {
		t.Fatalf("close returned %d", ret)
	}
	if ret := trap(k, p, SYS_close, uint64(fd)); ret != -1 {
		t.Fatalf("double close returned %d", ret)
	}
	// open with a bad path pointer
	if ret := trap(k, p, SYS_open, 0x9000, 0); ret != -1 {
		t.Fatalf("open with bad path returned %d", ret)
	}
}

func TestFstat(t *testing.T) {
	k, p, _ := testKernel(t)
	if err := p.Mem.MemWrite(0x1000, []byte("README\x00")); err != nil {
		t.Fatal("write failed:", err)
	}
	fd := trap(k, p, SYS_open, 0x1000, 0)
	if ret := trap(k, p, SYS_fstat, uint64(fd), 0x2000); ret != 0 {
		t.Fatalf("fstat returned %d", ret)
	}
	var st Stat
	if err := p.StrucAt(0x2000).Unpack(&st); err != nil {
		t.Fatal("unpack failed:", err)
	}
	if st.Ino != uint32(fd) || st.Type != typeFile {
		t.Fatalf("fstat packed %+v", st)
	}
	if ret := trap(k, p, SYS_fstat, 99, 0x2000); ret != -1 {
		t.Fatalf("fstat of bad fd returned %d", ret)
	}
}

func TestPipe(t *testing.T) {
	k, p, _ := testKernel(t)
	if ret := trap(k, p, SYS_pipe, 0x2000); ret != 0 {
		t.Fatalf("pipe returned %d", ret)
	}
	var fds pipeFds
	if err := p.StrucAt(0x2000).Unpack(&fds); err != nil {
		t.Fatal("unpack failed:", err)
	}
	if fds.Read < 3 || fds.Write < 3 || fds.Read == fds.Write {
		t.Fatalf("pipe packed %+v", fds)
	}
	if ret := trap(k, p, SYS_pipe, 0); ret != -1 {
		t.Fatalf("pipe(NULL) returned %d", ret)
	}
}

func TestWaitExit(t *testing.T) {
	k, p, _ := testKernel(t)
	if ret := trap(k, p, SYS_exit, 3); ret != 0 {
		t.Fatalf("exit returned %d", ret)
	}
	if ret := trap(k, p, SYS_wait, 0x2000); ret <= 0 {
		t.Fatalf("wait returned %d", ret)
	}
	var st waitStatus
	if err := p.StrucAt(0x2000).Unpack(&st); err != nil {
		t.Fatal("unpack failed:", err)
	}
	if st.Status != 3 {
		t.Fatalf("wait stored status %d", st.Status)
	}
	// wait(NULL) skips the copy entirely
	if ret := trap(k, p, SYS_wait, 0); ret <= 0 {
		t.Fatalf("wait(NULL) returned %d", ret)
	}
}

func TestExec(t *testing.T) {
	k, p, _ := testKernel(t)
	if err := p.Mem.MemWrite(0x1000, []byte("/bin/ls\x00")); err != nil {
		t.Fatal("write failed:", err)
	}
	if err := p.Mem.MemWrite(0x1010, []byte("-l\x00")); err != nil {
		t.Fatal("write failed:", err)
	}
	argv := make([]byte, 24)
	binary.LittleEndian.PutUint64(argv[0:], 0x1000)
	binary.LittleEndian.PutUint64(argv[8:], 0x1010)
	binary.LittleEndian.PutUint64(argv[16:], 0)
	if err := p.Mem.MemWrite(0x2000, argv); err != nil {
		t.Fatal("write failed:", err)
	}
	// no filesystem: exec always fails, but only after marshaling argv
	if ret := trap(k, p, SYS_exec, 0x1000, 0x2000); ret != -1 {
		t.Fatalf("exec returned %d", ret)
	}
	// argv vector outside the size bound
	if ret := trap(k, p, SYS_exec, 0x1000, 0x5000); ret != -1 {
		t.Fatalf("exec with bad argv returned %d", ret)
	}
}

func TestSysinfo(t *testing.T) {
	k, p, _ := testKernel(t)
	if ret := trap(k, p, SYS_sysinfo, 0x2000); ret != 0 {
		t.Fatalf("sysinfo returned %d", ret)
	}
	var si Sysinfo
	if err := p.StrucAt(0x2000).Unpack(&si); err != nil {
		t.Fatal("unpack failed:", err)
	}
	if si.Nproc == 0 || si.Freemem == 0 {
		t.Fatalf("sysinfo packed %+v", si)
	}
}

func TestPathSyscalls(t *testing.T) {
	k, p, _ := testKernel(t)
	if err := p.Mem.MemWrite(0x1000, []byte("/home\x00")); err != nil {
		t.Fatal("write failed:", err)
	}
	if err := p.Mem.MemWrite(0x1010, []byte("/home2\x00")); err != nil {
		t.Fatal("write failed:", err)
	}
	for _, num := range []int{SYS_chdir, SYS_unlink, SYS_mkdir} {
		if ret := trap(k, p, num, 0x1000); ret != 0 {
			t.Fatalf("syscall %d returned %d", num, ret)
		}
		if ret := trap(k, p, num, 0x9000); ret != -1 {
			t.Fatalf("syscall %d with bad path returned %d", num, ret)
		}
	}
	if k.cwd != "/home" {
		t.Fatalf("cwd = %q", k.cwd)
	}
	if ret := trap(k, p, SYS_link, 0x1000, 0x1010); ret != 0 {
		t.Fatalf("link returned %d", ret)
	}
	if ret := trap(k, p, SYS_link, 0x1000, 0x9000); ret != -1 {
		t.Fatalf("link with bad path returned %d", ret)
	}
	if ret := trap(k, p, SYS_mknod, 0x1000, 1, 1); ret != 0 {
		t.Fatalf("mknod returned %d", ret)
	}
}
