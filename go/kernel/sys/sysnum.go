package sys

// System call numbers. The table is dense and starts at 1; number 0 is
// reserved.
const (
	SYS_fork    = 1
	SYS_exit    = 2
	SYS_wait    = 3
	SYS_pipe    = 4
	SYS_read    = 5
	SYS_kill    = 6
	SYS_exec    = 7
	SYS_fstat   = 8
	SYS_chdir   = 9
	SYS_dup     = 10
	SYS_getpid  = 11
	SYS_sbrk    = 12
	SYS_sleep   = 13
	SYS_uptime  = 14
	SYS_open    = 15
	SYS_write   = 16
	SYS_mknod   = 17
	SYS_unlink  = 18
	SYS_link    = 19
	SYS_mkdir   = 20
	SYS_close   = 21
	SYS_trace   = 22
	SYS_sysinfo = 23
)

// MAXPATH bounds every path argument fetched from user memory.
const MAXPATH = 128

// MAXARG bounds the argv vector walked by exec.
const MAXARG = 32
