// Package signame maps textual signal specifications to concrete signals.
package signame

import (
	"strconv"
	"strings"
	"syscall"
)

// Default returns the platform's standard terminate request.
func Default() syscall.Signal {
	return syscall.SIGTERM
}

// Resolve maps a signal specification to a signal. A decimal number is used
// as-is. Symbolic names may carry a SIG prefix ("TERM" and "SIGTERM" are
// equivalent). Unrecognized text falls back to the default terminate signal
// instead of failing; this matches the historical behaviour of the utility
// and is relied on by callers.
func Resolve(text string) syscall.Signal {
	if text == "" {
		return Default()
	}
	if n, err := strconv.Atoi(text); err == nil {
		return syscall.Signal(n)
	}
	if sig, ok := table[strings.TrimPrefix(text, "SIG")]; ok {
		return sig
	}
	return Default()
}

// Name returns the symbolic name for sig, or its decimal number when the
// signal has no table entry.
func Name(sig syscall.Signal) string {
	for name, s := range table {
		if s == sig {
			return name
		}
	}
	return strconv.Itoa(int(sig))
}
