// ABOUTME: Unix-specific SIGWINCH handling for ProcessTerminal resize events
// ABOUTME: Spawns a goroutine that listens for SIGWINCH and invokes the resize callback

//go:build unix

package terminal

import (
	"os"
	"os/signal"
	"syscall"
)

// startResizeListener calls the resize callback with the new size on
// every SIGWINCH until stop is closed.
func (t *ProcessTerminal) startResizeListener(stop <-chan struct{}) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGWINCH)

	go func() {
		defer signal.Stop(sigCh)
		for {
			select {
			case <-stop:
				return
			case <-sigCh:
				fn := t.resizeCallback()
				if fn == nil {
					continue
				}
				w, h, err := t.Size()
				if err != nil {
					continue
				}
				fn(w, h)
			}
		}
	}()
}
