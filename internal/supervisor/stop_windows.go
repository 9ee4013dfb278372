//go:build windows

package supervisor

import (
	"errors"
	"fmt"
	"os"
	"syscall"
)

// requestStop approximates signal delivery on Windows. An interrupt request
// is attempted for SIGINT; every other signal, and any failed interrupt,
// degrades to unconditional termination.
func requestStop(h *handle, sig syscall.Signal) error {
	if sig == syscall.SIGINT {
		if err := h.cmd.Process.Signal(os.Interrupt); err == nil {
			return nil
		}
	}
	return forceStop(h)
}

// forceStop terminates the child unconditionally.
func forceStop(h *handle) error {
	if err := h.cmd.Process.Kill(); err != nil && !errors.Is(err, os.ErrProcessDone) {
		return fmt.Errorf("terminate process %d: %w", h.pid(), err)
	}
	return nil
}
