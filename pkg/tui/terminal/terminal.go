// ABOUTME: Defines the Terminal interface for raw mode, alternate screen, size and output
// ABOUTME: Implementations target the process tty or an in-memory virtual device

package terminal

// Terminal abstracts the physical device a session draws on.
type Terminal interface {
	EnterRawMode() error
	ExitRawMode() error
	EnterAltScreen() error
	ExitAltScreen() error
	Size() (width, height int, err error)
	Write(p []byte) (n int, err error)
	OnResize(fn func(width, height int))

	// Name identifies the underlying device. Two Terminals with the same
	// name refer to the same device and cannot be owned at the same time.
	Name() string
}

const (
	altScreenEnter = "\x1b[?1049h\x1b[?25l" // alternate buffer, hide cursor
	altScreenExit  = "\x1b[?25h\x1b[?1049l" // show cursor, main buffer
)
