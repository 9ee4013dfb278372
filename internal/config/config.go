// Package config carries the immutable run configuration consumed by the
// supervisor, plus the optional defaults file that seeds it.
package config

import (
	"errors"
	"syscall"
	"time"
)

// RunConfig is the validated configuration for one supervised run. It is
// built once by the CLI layer and read-only afterwards.
//
// A Duration of exactly zero means "no timeout": the command runs to
// completion unsupervised. A KillAfter of zero means no escalation.
type RunConfig struct {
	Duration       time.Duration
	KillAfter      time.Duration
	Signal         syscall.Signal
	PreserveStatus bool
	Verbose        bool
	Command        []string
}

// Validate enforces the invariants the supervisor relies on.
func (c *RunConfig) Validate() error {
	if len(c.Command) == 0 {
		return errors.New("command is required")
	}
	if c.Command[0] == "" {
		return errors.New("command name must not be empty")
	}
	if c.Duration < 0 {
		return errors.New("duration must not be negative")
	}
	if c.KillAfter < 0 {
		return errors.New("kill-after must not be negative")
	}
	return nil
}
