// ABOUTME: Windows stub for ProcessTerminal resize handling
// ABOUTME: Windows has no SIGWINCH; callers redraw with the size read at each frame

//go:build windows

package terminal

// startResizeListener is a no-op on Windows.
func (t *ProcessTerminal) startResizeListener(_ <-chan struct{}) {}
