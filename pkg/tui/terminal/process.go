// ABOUTME: ProcessTerminal implements Terminal on real tty files using golang.org/x/term
// ABOUTME: Manages raw mode state and delegates platform-specific resize handling

package terminal

import (
	"errors"
	"fmt"
	"os"
	"sync"

	"golang.org/x/term"
)

// ErrNotTerminal is returned when raw mode is requested on a file that
// is not a terminal (redirected stdin, pipes).
var ErrNotTerminal = errors.New("not a terminal")

// ProcessTerminal is a real terminal: input mode is changed on in, all
// output and size queries go through out.
type ProcessTerminal struct {
	in  *os.File
	out *os.File

	mu       sync.Mutex
	oldState *term.State
	resizeFn func(width, height int)
	stopCh   chan struct{}
}

// NewProcessTerminal returns a ProcessTerminal on stdin/stdout.
func NewProcessTerminal() *ProcessTerminal {
	return NewFileTerminal(os.Stdin, os.Stdout)
}

// NewFileTerminal returns a ProcessTerminal on arbitrary tty files.
func NewFileTerminal(in, out *os.File) *ProcessTerminal {
	return &ProcessTerminal{in: in, out: out}
}

// Name returns the output device path.
func (t *ProcessTerminal) Name() string {
	return t.out.Name()
}

// Input returns the file keystrokes are read from.
func (t *ProcessTerminal) Input() *os.File {
	return t.in
}

// EnterRawMode switches the input tty to raw mode, saving the previous state.
func (t *ProcessTerminal) EnterRawMode() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	fd := int(t.in.Fd())
	if !term.IsTerminal(fd) {
		return fmt.Errorf("entering raw mode on %s: %w", t.in.Name(), ErrNotTerminal)
	}
	state, err := term.MakeRaw(fd)
	if err != nil {
		return fmt.Errorf("entering raw mode: %w", err)
	}
	t.oldState = state
	return nil
}

// ExitRawMode restores the input mode saved by EnterRawMode.
func (t *ProcessTerminal) ExitRawMode() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.oldState == nil {
		return nil
	}
	if err := term.Restore(int(t.in.Fd()), t.oldState); err != nil {
		return fmt.Errorf("exiting raw mode: %w", err)
	}
	t.oldState = nil
	return nil
}

// EnterAltScreen switches to the alternate screen buffer.
func (t *ProcessTerminal) EnterAltScreen() error {
	if _, err := t.out.WriteString(altScreenEnter); err != nil {
		return fmt.Errorf("entering alternate screen: %w", err)
	}
	return nil
}

// ExitAltScreen returns to the main screen buffer.
func (t *ProcessTerminal) ExitAltScreen() error {
	if _, err := t.out.WriteString(altScreenExit); err != nil {
		return fmt.Errorf("exiting alternate screen: %w", err)
	}
	return nil
}

// Size returns the current terminal dimensions.
func (t *ProcessTerminal) Size() (width, height int, err error) {
	w, h, err := term.GetSize(int(t.out.Fd()))
	if err != nil {
		return 0, 0, fmt.Errorf("getting terminal size: %w", err)
	}
	return w, h, nil
}

// Write sends bytes to the output tty.
func (t *ProcessTerminal) Write(p []byte) (int, error) {
	n, err := t.out.Write(p)
	if err != nil {
		return n, fmt.Errorf("writing to %s: %w", t.out.Name(), err)
	}
	return n, nil
}

// OnResize registers a callback invoked when the terminal is resized.
// Only the first call starts the platform listener; later calls replace
// the callback.
func (t *ProcessTerminal) OnResize(fn func(width, height int)) {
	t.mu.Lock()
	t.resizeFn = fn
	start := t.stopCh == nil
	if start {
		t.stopCh = make(chan struct{})
	}
	stop := t.stopCh
	t.mu.Unlock()

	if start {
		t.startResizeListener(stop)
	}
}

// StopResize ends the resize listener started by OnResize.
func (t *ProcessTerminal) StopResize() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.stopCh != nil {
		close(t.stopCh)
		t.stopCh = nil
	}
}

func (t *ProcessTerminal) resizeCallback() func(width, height int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.resizeFn
}
