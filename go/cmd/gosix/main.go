package main

import (
	"encoding/binary"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/hashicorp/go-hclog"
	colorable "github.com/mattn/go-colorable"
	isatty "github.com/mattn/go-isatty"
	"github.com/mgutz/ansi"

	"github.com/gosix/gosix/go/kernel/common"
	"github.com/gosix/gosix/go/kernel/sys"
	"github.com/gosix/gosix/go/models"
	"github.com/gosix/gosix/go/models/uvm"
)

// trap plays the role of the trap-entry machinery: populate the
// trapframe, hand it to the dispatcher, read back the return slot.
func trap(k *sys.Kernel, p *common.Proc, num int, args ...uint64) int64 {
	var a [6]uint64
	copy(a[:], args)
	p.Tf = common.Trapframe{A0: a[0], A1: a[1], A2: a[2], A3: a[3], A4: a[4], A5: a[5], A7: uint64(num)}
	k.Syscall(p)
	return int64(p.Tf.A0)
}

func main() {
	configPath := flag.String("config", "", "TOML config file")
	verbose := flag.Bool("v", false, "debug logging")
	color := flag.Bool("color", false, "force ANSI color output")
	flag.Parse()

	cfg := &models.Config{}
	if *configPath != "" {
		if _, err := toml.DecodeFile(*configPath, cfg); err != nil {
			fmt.Fprintf(os.Stderr, "gosix: %s\n", err)
			os.Exit(1)
		}
	}
	cfg.Init()
	if *verbose {
		cfg.Verbose = true
	}
	if *color {
		cfg.Color = true
	}

	level := hclog.Info
	if cfg.Verbose || os.Getenv("TRACE") != "" {
		level = hclog.Debug
	}
	logger := hclog.New(&hclog.LoggerOptions{
		Name:   "gosix",
		Level:  level,
		Output: os.Stderr,
	})

	var console io.Writer = os.Stdout
	if isatty.IsTerminal(os.Stdout.Fd()) {
		console = colorable.NewColorableStdout()
	} else if !*color {
		cfg.Color = false
	}

	k := sys.New(console, logger, cfg)
	k.QueueInput([]byte("demo input\n"))

	mem := uvm.NewMem(cfg.MemBits, binary.LittleEndian)
	if err := mem.Map(0, 0x4000); err != nil {
		logger.Error("mapping user memory", "error", err)
		os.Exit(1)
	}
	p := &common.Proc{Pid: 1, Name: "init", Sz: 0x4000, Mem: mem, TraceMask: cfg.TraceMask}

	// plant a tiny userspace image: a message and a path
	if err := mem.MemWrite(0x1000, []byte("hello from user space\n")); err != nil {
		logger.Error("loading user image", "error", err)
		os.Exit(1)
	}
	if err := mem.MemWrite(0x1100, []byte("/etc/motd\x00")); err != nil {
		logger.Error("loading user image", "error", err)
		os.Exit(1)
	}

	banner := "gosix: dispatching demo traps"
	if cfg.Color {
		banner = ansi.Color(banner, "green+b")
	}
	fmt.Fprintln(console, banner)

	mask := cfg.TraceMask | 1<<sys.SYS_write | 1<<sys.SYS_open | 1<<sys.SYS_getpid | 1<<sys.SYS_read
	trap(k, p, sys.SYS_trace, uint64(mask))

	trap(k, p, sys.SYS_write, 1, 0x1000, 22)
	trap(k, p, sys.SYS_getpid)
	fd := trap(k, p, sys.SYS_open, 0x1100, 0)
	trap(k, p, sys.SYS_read, 0, 0x2000, 16)
	trap(k, p, sys.SYS_close, uint64(fd))
	// an identifier nothing registered
	trap(k, p, 9999)
}
