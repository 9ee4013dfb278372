package supervisor

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os/exec"
	"syscall"
	"time"

	"github.com/Paintersrp/runfor/internal/config"
	"github.com/Paintersrp/runfor/internal/signame"
)

// Exit codes produced by the supervisor itself, following the conventions of
// the shell and of the utility this program models.
const (
	// ExitTimedOut reports a deadline overrun without preserve-status.
	ExitTimedOut = 124
	// ExitInternal reports that the supervisor, not the command, failed.
	ExitInternal = 125
	// ExitCannotInvoke reports a command that exists but cannot be run.
	ExitCannotInvoke = 126
	// ExitNotFound reports a command that could not be located.
	ExitNotFound = 127
	// ExitKilled is 128 plus the conventional kill signal number, reported
	// after escalated termination.
	ExitKilled = 137
)

// confirmWait bounds the wait for the OS to confirm an escalated kill.
// SIGKILL is not maskable, so on expiry the kernel is still reaping the
// child and there is nothing further for the supervisor to do.
const confirmWait = 2 * time.Second

// Run executes cfg.Command under the deadline policy and returns the exit
// code for the whole program. Diagnostic lines, both the verbose-gated
// signal reports and supervisor errors, are written to diag.
func Run(ctx context.Context, cfg config.RunConfig, diag io.Writer) int {
	h, err := start(cfg.Command)
	if err != nil {
		fmt.Fprintf(diag, "runfor: %v\n", err)
		return classifyStartError(err)
	}

	// No deadline configured: behave as if the command ran unsupervised.
	if cfg.Duration == 0 {
		res, waitErr := h.waitFor(ctx, 0, false)
		if res == waitFailed {
			fmt.Fprintf(diag, "runfor: wait: %v\n", waitErr)
			return ExitInternal
		}
		return exitStatus(waitErr)
	}

	res, waitErr := h.waitFor(ctx, cfg.Duration, true)
	switch res {
	case waitExited:
		// The deadline is irrelevant once the child has exited.
		return exitStatus(waitErr)
	case waitFailed:
		fmt.Fprintf(diag, "runfor: wait: %v\n", waitErr)
		_ = forceStop(h)
		return ExitInternal
	}

	// Deadline elapsed: request a stop, then give the child its grace
	// window. Without a kill-after the wait is deliberately unbounded; the
	// initial signal is assumed eventually effective.
	reportAction(diag, cfg, signame.Name(cfg.Signal), h.pid())
	if err := requestStop(h, cfg.Signal); err != nil {
		fmt.Fprintf(diag, "runfor: %v\n", err)
		_ = forceStop(h)
		_, _ = h.waitFor(ctx, confirmWait, true)
		return ExitInternal
	}

	res, waitErr = h.waitFor(ctx, cfg.KillAfter, cfg.KillAfter > 0)
	switch res {
	case waitExited:
		if cfg.PreserveStatus {
			return exitStatus(waitErr)
		}
		return ExitTimedOut
	case waitFailed:
		fmt.Fprintf(diag, "runfor: wait: %v\n", waitErr)
		_ = forceStop(h)
		return ExitInternal
	}

	// Grace window elapsed: escalate. The child's real status is
	// unknowable past this point, so preserve-status no longer applies.
	reportAction(diag, cfg, "KILL", h.pid())
	if err := forceStop(h); err != nil {
		fmt.Fprintf(diag, "runfor: %v\n", err)
		return ExitInternal
	}
	_, _ = h.waitFor(ctx, confirmWait, true)
	return ExitKilled
}

// reportAction emits the one-line diagnostic for a termination action when
// verbose is enabled.
func reportAction(diag io.Writer, cfg config.RunConfig, signal string, pid int) {
	if !cfg.Verbose {
		return
	}
	fmt.Fprintf(diag, "runfor: sending signal %s to command %q (pid %d)\n", signal, cfg.Command[0], pid)
}

// exitStatus translates a cmd.Wait result into the shell exit convention:
// the child's own code when it exited, 128 plus the signal number when the
// platform reports termination by signal.
func exitStatus(err error) int {
	if err == nil {
		return 0
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		if status, ok := exitErr.Sys().(syscall.WaitStatus); ok && status.Signaled() {
			return 128 + int(status.Signal())
		}
		if code := exitErr.ExitCode(); code >= 0 {
			return code
		}
	}
	return ExitInternal
}

// classifyStartError maps spawn failures onto the conventional codes: 127
// when the command cannot be located, 126 when it exists but cannot be
// invoked, 125 for everything else.
func classifyStartError(err error) int {
	switch {
	case errors.Is(err, exec.ErrNotFound):
		return ExitNotFound
	case errors.Is(err, fs.ErrPermission):
		return ExitCannotInvoke
	default:
		return ExitInternal
	}
}
