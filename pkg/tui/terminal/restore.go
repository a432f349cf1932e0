// ABOUTME: Panic guards that give the terminal back before reporting a crash
// ABOUTME: RestoreOnPanic exits the process; RecoverGoroutine lets main shut down

package terminal

import (
	"fmt"
	"io"
	"os"
	"runtime/debug"
)

// Releaser gives up ownership of the terminal. Release must be safe to
// call more than once.
type Releaser interface {
	Release()
}

// panicOutput and exit are swapped in tests.
var (
	panicOutput io.Writer = os.Stderr
	exit                  = os.Exit
)

// RestoreOnPanic should be deferred at the top of main (or any goroutine
// that owns the terminal). On panic it releases r, prints the panic value
// and stack trace, then exits with code 1.
func RestoreOnPanic(r Releaser) {
	p := recover()
	if p == nil {
		return
	}

	r.Release()
	fmt.Fprintf(panicOutput, "\npanic: %v\n\n%s\n", p, debug.Stack())
	exit(1)
}

// RecoverGoroutine should be deferred at the top of background goroutines
// that run while the terminal is owned. Unlike RestoreOnPanic it does not
// exit, allowing the main goroutine to handle shutdown.
func RecoverGoroutine(r Releaser) {
	p := recover()
	if p == nil {
		return
	}

	r.Release()
	fmt.Fprintf(panicOutput, "\ngoroutine panic: %v\n\n%s\n", p, debug.Stack())
}
