package models

// Config carries the knobs shared by the kernel and the cmd frontends.
// It is decoded straight from TOML by the cmds, so fields map 1:1 onto
// config file keys.
type Config struct {
	// Color enables ANSI highlighting on the console sink.
	Color bool
	// Strsize truncates fetched buffer/string reprs in debug output.
	Strsize int
	// TraceMask is the initial per-syscall trace bitmask given to new
	// processes. Processes change their own mask with sys_trace.
	TraceMask uint32
	// MemBits is the user virtual address width.
	MemBits uint
	// Verbose drops the logger to debug level.
	Verbose bool
}

// Init fills in defaults and returns the config for chaining.
func (c *Config) Init() *Config {
	if c.Strsize == 0 {
		c.Strsize = 32
	}
	if c.MemBits == 0 {
		// Sv39: three-level RISC-V page tables
		c.MemBits = 39
	}
	return c
}
