package common

import (
	"io"

	"github.com/hashicorp/go-hclog"

	"github.com/gosix/gosix/go/models"
)

// Kernel owns the pieces of the syscall path that outlive any single
// trap: the read-only dispatch table, the console sink the user-visible
// lines go to, and the structured logger for everything else.
type Kernel struct {
	Table   *Table
	Console io.Writer
	Log     hclog.Logger
	Config  *models.Config
}

func New(table *Table, console io.Writer, log hclog.Logger, config *models.Config) *Kernel {
	if console == nil {
		console = io.Discard
	}
	if log == nil {
		log = hclog.NewNullLogger()
	}
	if config == nil {
		config = (&models.Config{}).Init()
	}
	k := &Kernel{
		Table:   table,
		Console: console,
		Log:     log,
		Config:  config,
	}
	k.Log.Debug("syscall table built", "slots", table.Len()-1)
	return k
}
