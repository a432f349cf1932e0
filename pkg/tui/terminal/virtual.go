// ABOUTME: VirtualTerminal implements Terminal for testing without a real TTY
// ABOUTME: Captures output, counts raw-mode and alternate-screen transitions, injects faults

package terminal

import (
	"bytes"
	"fmt"
	"sync"
)

// Op names a Terminal operation for fault injection.
type Op int

const (
	OpEnterRaw Op = iota
	OpExitRaw
	OpEnterAlt
	OpExitAlt
	OpWrite
	OpSize
)

// VirtualTerminal is a fake Terminal for unit tests.
// It records written output and tracks mode transitions.
type VirtualTerminal struct {
	mu         sync.Mutex
	buf        bytes.Buffer
	writes     int
	width      int
	height     int
	rawMode    bool
	altScreen  bool
	resizeFn   func(width, height int)
	enterCount int
	exitCount  int
	altEnters  int
	altExits   int
	faults     map[Op]error
}

// NewVirtualTerminal returns a VirtualTerminal with the given dimensions.
func NewVirtualTerminal(width, height int) *VirtualTerminal {
	return &VirtualTerminal{
		width:  width,
		height: height,
		faults: make(map[Op]error),
	}
}

// Name is unique per VirtualTerminal instance.
func (v *VirtualTerminal) Name() string {
	return fmt.Sprintf("virtual:%p", v)
}

// EnterRawMode records a raw-mode entry.
func (v *VirtualTerminal) EnterRawMode() error {
	v.mu.Lock()
	defer v.mu.Unlock()

	if err := v.faults[OpEnterRaw]; err != nil {
		return err
	}
	v.rawMode = true
	v.enterCount++
	return nil
}

// ExitRawMode records a raw-mode exit.
func (v *VirtualTerminal) ExitRawMode() error {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.exitCount++
	if err := v.faults[OpExitRaw]; err != nil {
		return err
	}
	v.rawMode = false
	return nil
}

// EnterAltScreen records an alternate-screen entry.
func (v *VirtualTerminal) EnterAltScreen() error {
	v.mu.Lock()
	defer v.mu.Unlock()

	if err := v.faults[OpEnterAlt]; err != nil {
		return err
	}
	v.altScreen = true
	v.altEnters++
	return nil
}

// ExitAltScreen records an alternate-screen exit.
func (v *VirtualTerminal) ExitAltScreen() error {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.altExits++
	if err := v.faults[OpExitAlt]; err != nil {
		return err
	}
	v.altScreen = false
	return nil
}

// Size returns the configured terminal dimensions.
func (v *VirtualTerminal) Size() (width, height int, err error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	if err := v.faults[OpSize]; err != nil {
		return 0, 0, err
	}
	return v.width, v.height, nil
}

// Write appends data to the internal buffer.
func (v *VirtualTerminal) Write(p []byte) (int, error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	if err := v.faults[OpWrite]; err != nil {
		return 0, err
	}
	v.writes++
	n, err := v.buf.Write(p)
	if err != nil {
		return n, fmt.Errorf("writing to virtual buffer: %w", err)
	}
	return n, nil
}

// OnResize stores the resize callback.
func (v *VirtualTerminal) OnResize(fn func(width, height int)) {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.resizeFn = fn
}

// --- Test helpers (not part of Terminal interface) ---

// Fail makes every later call of op return err. A nil err clears the fault.
func (v *VirtualTerminal) Fail(op Op, err error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	if err == nil {
		delete(v.faults, op)
		return
	}
	v.faults[op] = err
}

// Output returns everything written so far.
func (v *VirtualTerminal) Output() string {
	v.mu.Lock()
	defer v.mu.Unlock()

	return v.buf.String()
}

// Writes returns the number of successful Write calls.
func (v *VirtualTerminal) Writes() int {
	v.mu.Lock()
	defer v.mu.Unlock()

	return v.writes
}

// Reset clears the output buffer and write count.
func (v *VirtualTerminal) Reset() {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.buf.Reset()
	v.writes = 0
}

// IsRawMode reports whether raw mode is currently active.
func (v *VirtualTerminal) IsRawMode() bool {
	v.mu.Lock()
	defer v.mu.Unlock()

	return v.rawMode
}

// IsAltScreen reports whether the alternate screen is active.
func (v *VirtualTerminal) IsAltScreen() bool {
	v.mu.Lock()
	defer v.mu.Unlock()

	return v.altScreen
}

// EnterCount returns how many times raw mode was entered.
func (v *VirtualTerminal) EnterCount() int {
	v.mu.Lock()
	defer v.mu.Unlock()

	return v.enterCount
}

// ExitCount returns how many times ExitRawMode was called.
func (v *VirtualTerminal) ExitCount() int {
	v.mu.Lock()
	defer v.mu.Unlock()

	return v.exitCount
}

// AltEnterCount returns how many times the alternate screen was entered.
func (v *VirtualTerminal) AltEnterCount() int {
	v.mu.Lock()
	defer v.mu.Unlock()

	return v.altEnters
}

// AltExitCount returns how many times ExitAltScreen was called.
func (v *VirtualTerminal) AltExitCount() int {
	v.mu.Lock()
	defer v.mu.Unlock()

	return v.altExits
}

// SetSize updates the terminal dimensions and, if a resize callback
// is registered, invokes it with the new size.
func (v *VirtualTerminal) SetSize(width, height int) {
	v.mu.Lock()
	v.width = width
	v.height = height
	fn := v.resizeFn
	v.mu.Unlock()

	if fn != nil {
		fn(width, height)
	}
}
