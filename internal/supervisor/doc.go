// Package supervisor owns the lifecycle of the single supervised child:
// spawn, wait against the configured deadline, escalate termination, and
// translate the outcome into the program's exit code.
//
// Termination is a two-step ladder. The first step delivers the configured
// signal and is cooperative where the platform supports user-level signal
// delivery: the child may trap, ignore, or exit on it. On Windows there is
// no such delivery, so the first step degrades to the same unconditional
// termination as the second. The second step, reached only when a kill-after
// grace window is configured and elapses, is never interceptable.
//
// The supervised handle is exclusively owned by the goroutine executing Run;
// no state outlives the call.
package supervisor
