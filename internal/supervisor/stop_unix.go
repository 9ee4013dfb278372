//go:build !windows

package supervisor

import (
	"errors"
	"fmt"
	"os"
	"syscall"
)

// requestStop delivers the configured termination signal to the child. The
// delivery is best-effort: the child may trap, ignore, or exit on it. A
// child that has already exited is not an error.
func requestStop(h *handle, sig syscall.Signal) error {
	if err := h.cmd.Process.Signal(sig); err != nil && !errors.Is(err, os.ErrProcessDone) {
		return fmt.Errorf("signal process %d: %w", h.pid(), err)
	}
	return nil
}

// forceStop terminates the child unconditionally.
func forceStop(h *handle) error {
	if err := h.cmd.Process.Signal(syscall.SIGKILL); err != nil && !errors.Is(err, os.ErrProcessDone) {
		return fmt.Errorf("kill process %d: %w", h.pid(), err)
	}
	return nil
}
