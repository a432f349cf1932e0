// ABOUTME: Process-wide active theme, read by the renderer and swapped on config reload
// ABOUTME: Starts as the built-in default; Set ignores nil and hands back the theme it replaced

package theme

import "sync/atomic"

var active atomic.Pointer[Theme]

func init() {
	active.Store(Builtin("default"))
}

// Current returns the active theme. It is never nil.
func Current() *Theme {
	return active.Load()
}

// Set makes t the active theme and returns the previous one. A nil t
// leaves the active theme in place and returns it.
func Set(t *Theme) *Theme {
	if t == nil {
		return active.Load()
	}
	return active.Swap(t)
}
