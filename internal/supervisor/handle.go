package supervisor

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"time"
)

// handle wraps a started child process. The wait channel receives the
// cmd.Wait result exactly once and is then closed.
type handle struct {
	cmd    *exec.Cmd
	waitCh chan error
}

// start spawns the command with inherited standard streams.
func start(command []string) (*handle, error) {
	cmd := exec.Command(command[0], command[1:]...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("start command %q: %w", command[0], err)
	}

	h := &handle{cmd: cmd, waitCh: make(chan error, 1)}
	go func() {
		h.waitCh <- cmd.Wait()
		close(h.waitCh)
	}()
	return h, nil
}

func (h *handle) pid() int {
	return h.cmd.Process.Pid
}

// waitResult is the outcome of one wait on the child.
type waitResult int

const (
	// waitExited means the child ended; the accompanying error is the
	// cmd.Wait result (nil or *exec.ExitError).
	waitExited waitResult = iota
	// waitTimedOut means the bound elapsed with the child still running.
	waitTimedOut
	// waitFailed means the wait primitive itself failed.
	waitFailed
)

// waitFor blocks until the child exits or, when bounded, until timeout
// elapses. The returned error is only meaningful for waitExited and
// waitFailed.
func (h *handle) waitFor(ctx context.Context, timeout time.Duration, bounded bool) (waitResult, error) {
	var deadline <-chan time.Time
	if bounded {
		t := time.NewTimer(timeout)
		defer t.Stop()
		deadline = t.C
	}

	select {
	case err := <-h.waitCh:
		var exitErr *exec.ExitError
		if err == nil || errors.As(err, &exitErr) {
			return waitExited, err
		}
		return waitFailed, err
	case <-deadline:
		return waitTimedOut, nil
	case <-ctx.Done():
		return waitFailed, ctx.Err()
	}
}
