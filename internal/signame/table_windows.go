//go:build windows

package signame

import "syscall"

// Windows has no user-level USR1/USR2 delivery; the supervisor degrades any
// of these to forced termination anyway, so the table only carries the names
// the console subsystem can represent.
var table = map[string]syscall.Signal{
	"TERM": syscall.SIGTERM,
	"INT":  syscall.SIGINT,
	"HUP":  syscall.SIGHUP,
	"KILL": syscall.SIGKILL,
}
