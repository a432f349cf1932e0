// ABOUTME: Session owns the terminal: alternate screen + raw mode for its lifetime
// ABOUTME: Draw composes one frame per call into a single device write; Release restores exactly once

package tui

import (
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/mauromedda/pleroterm/internal/log"
	"github.com/mauromedda/pleroterm/pkg/tui/terminal"
)

var (
	// ErrTerminalBusy is returned by Acquire when another Session already
	// owns the device.
	ErrTerminalBusy = errors.New("terminal already acquired")

	// ErrSessionReleased is returned by a Draw whose commit lost a race
	// with Release.
	ErrSessionReleased = errors.New("session released")
)

// claims maps device names to their owning session.
var (
	claimsMu sync.Mutex
	claims   = make(map[string]*Session)
)

// Option configures a Session.
type Option func(*Session)

// WithEncoder replaces the default run-merging encoder.
func WithEncoder(enc *Encoder) Option {
	return func(s *Session) {
		s.enc = enc
	}
}

// Session is exclusive ownership of a terminal device. Between Acquire
// and Release the device is in the alternate screen with raw input.
//
// Draw must be called from a single goroutine; concurrent calls are
// serialised but their order is unspecified.
type Session struct {
	term terminal.Terminal
	name string
	enc  *Encoder

	drawMu sync.Mutex // one frame at a time
	frame  Frame

	mu        sync.Mutex // guards device writes and teardown
	rawMode   bool
	altScreen bool

	released    atomic.Bool
	releaseOnce sync.Once
}

// Acquire takes ownership of term, switching it to the alternate screen
// and raw mode. On failure the device is left as it was found.
func Acquire(term terminal.Terminal, opts ...Option) (*Session, error) {
	s := &Session{
		term: term,
		name: term.Name(),
		enc:  NewEncoder(),
	}
	for _, opt := range opts {
		opt(s)
	}

	if err := claim(s); err != nil {
		return nil, err
	}

	if err := term.EnterAltScreen(); err != nil {
		unclaim(s)
		return nil, fmt.Errorf("acquiring %s: %w", s.name, err)
	}
	s.altScreen = true

	if err := term.EnterRawMode(); err != nil {
		if exitErr := term.ExitAltScreen(); exitErr != nil {
			log.Warn("tui: undoing alternate screen on %s: %v", s.name, exitErr)
		}
		unclaim(s)
		return nil, fmt.Errorf("acquiring %s: %w", s.name, err)
	}
	s.rawMode = true

	log.Debug("tui: acquired %s", s.name)
	return s, nil
}

func claim(s *Session) error {
	claimsMu.Lock()
	defer claimsMu.Unlock()
	if _, taken := claims[s.name]; taken {
		return fmt.Errorf("acquiring %s: %w", s.name, ErrTerminalBusy)
	}
	claims[s.name] = s
	return nil
}

func unclaim(s *Session) {
	claimsMu.Lock()
	defer claimsMu.Unlock()
	if claims[s.name] == s {
		delete(claims, s.name)
	}
}

// Draw opens a frame sized to the terminal, lets fn fill it, and writes
// the composed frame to the device in one write. Cells outside the frame
// are clipped. The frame is discarded whether or not the write succeeds.
//
// Draw panics if the session has been released.
func (s *Session) Draw(fn func(*Frame)) error {
	if s.released.Load() {
		panic("tui: Draw called on a released Session")
	}

	s.drawMu.Lock()
	defer s.drawMu.Unlock()

	w, h, err := s.term.Size()
	if err != nil {
		return fmt.Errorf("drawing frame: %w", err)
	}

	f := &s.frame
	f.open(w, h)
	defer f.discard()

	fn(f)

	cells, dropped := f.clip()
	if dropped > 0 {
		log.Debug("tui: clipped %d cells outside %dx%d", dropped, w, h)
	}
	payload := s.enc.Encode(Reconstruct(cells))

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.released.Load() {
		return ErrSessionReleased
	}
	if _, err := s.term.Write(payload); err != nil {
		return fmt.Errorf("writing frame: %w", err)
	}
	return nil
}

// Release leaves raw mode and the alternate screen and gives up the
// device. Only the first call has an effect; later calls return
// immediately. Teardown errors are logged, never returned, so Release is
// safe on every exit path including panics.
func (s *Session) Release() {
	s.releaseOnce.Do(func() {
		s.mu.Lock()
		defer s.mu.Unlock()

		s.released.Store(true)
		if s.rawMode {
			if err := s.term.ExitRawMode(); err != nil {
				log.Warn("tui: restoring input mode on %s: %v", s.name, err)
			}
			s.rawMode = false
		}
		if s.altScreen {
			if err := s.term.ExitAltScreen(); err != nil {
				log.Warn("tui: leaving alternate screen on %s: %v", s.name, err)
			}
			s.altScreen = false
		}
		unclaim(s)
		log.Debug("tui: released %s", s.name)
	})
}

// Released reports whether Release has run.
func (s *Session) Released() bool {
	return s.released.Load()
}

// RawMode reports whether the session holds the device in raw mode.
func (s *Session) RawMode() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rawMode
}

// AltScreen reports whether the session holds the alternate screen.
func (s *Session) AltScreen() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.altScreen
}
