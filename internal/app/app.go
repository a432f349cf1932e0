// ABOUTME: Interactive client: owns the terminal session and the single redraw loop
// ABOUTME: Producers (ticker, input, resize, watcher, stream) feed one inbox under an errgroup

package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/mauromedda/pleroterm/internal/backend"
	"github.com/mauromedda/pleroterm/internal/config"
	"github.com/mauromedda/pleroterm/internal/eventbus"
	"github.com/mauromedda/pleroterm/internal/log"
	"github.com/mauromedda/pleroterm/internal/message"
	"github.com/mauromedda/pleroterm/internal/pleroma"
	"github.com/mauromedda/pleroterm/pkg/tui"
	"github.com/mauromedda/pleroterm/pkg/tui/key"
	"github.com/mauromedda/pleroterm/pkg/tui/terminal"
	"github.com/mauromedda/pleroterm/pkg/tui/theme"
)

const inboxSize = 64

var (
	// errQuit ends the errgroup when the user quits.
	errQuit = errors.New("quit")

	errPanicked = errors.New("background task panicked")
)

// Reloader re-reads settings and theme after a watched file changed.
type Reloader func() (*config.Settings, *theme.Theme, error)

// Option configures an App.
type Option func(*App)

// WithInput sets the reader keys are read from. Without it the app
// takes no keyboard input.
func WithInput(r io.Reader) Option {
	return func(a *App) { a.input = r }
}

// WithReload watches paths and calls reload when any of them changes.
func WithReload(paths []string, interval time.Duration, reload Reloader) Option {
	return func(a *App) {
		a.watchPaths = paths
		a.watchInterval = interval
		a.reload = reload
	}
}

// WithToken tells the app an access token is configured.
func WithToken(ok bool) Option {
	return func(a *App) { a.hasToken = ok }
}

// App is the interactive timeline client.
type App struct {
	term     terminal.Terminal
	settings *config.Settings
	bus      *eventbus.Bus[message.Message]
	actor    *backend.Actor
	state    *State
	inbox    chan message.Message

	input         io.Reader
	hasToken      bool
	watchPaths    []string
	watchInterval time.Duration
	reload        Reloader

	mu       sync.Mutex
	session  *tui.Session
	released bool // Release was called from outside Run
}

// New creates an app drawing on term and calling api.
func New(term terminal.Terminal, api backend.API, settings *config.Settings, opts ...Option) (*App, error) {
	tl, err := pleroma.ParseTimeline(settings.Timeline)
	if err != nil {
		return nil, err
	}

	bus := eventbus.New[message.Message]()
	a := &App{
		term:     term,
		settings: settings,
		bus:      bus,
		actor:    backend.New(api, bus),
		state:    NewState(tl, settings.PageSize, theme.Current().Palette),
		inbox:    make(chan message.Message, inboxSize),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a, nil
}

// Run acquires the terminal and serves the UI until the user quits or
// ctx is cancelled. The terminal is released on every return path.
func (a *App) Run(ctx context.Context) error {
	enc := &tui.Encoder{MergeRuns: a.settings.MergeRunsEnabled()}
	session, err := tui.Acquire(a.term, tui.WithEncoder(enc))
	if err != nil {
		return fmt.Errorf("acquiring terminal: %w", err)
	}
	defer session.Release()
	a.setSession(session)
	defer a.setSession(nil)

	if _, h, err := a.term.Size(); err == nil {
		a.state.Update(message.Resize{Height: h})
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	unsubscribe := a.bus.Forward(ctx, a.inbox)
	defer unsubscribe()

	a.term.OnResize(func(w, h int) { a.post(ctx, message.Resize{Width: w, Height: h}) })
	defer a.term.OnResize(nil)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(guard(session, func() error { return a.actor.Run(gctx) }))
	g.Go(guard(session, func() error { return a.tick(gctx) }))
	if a.input != nil {
		g.Go(guard(session, func() error { return a.pollInput(gctx) }))
	}
	if len(a.watchPaths) > 0 && a.reload != nil {
		w := config.NewWatcher(a.watchPaths, a.watchInterval, func() { a.reloadConfig(gctx) })
		g.Go(guard(session, func() error { return w.Run(gctx) }))
	}
	if a.settings.Stream {
		tl := a.state.Current
		g.Go(guard(session, func() error { return a.actor.Follow(gctx, tl) }))
	}
	g.Go(guard(session, func() error { return a.loop(gctx, session) }))

	if err := g.Wait(); err != nil && !errors.Is(err, errQuit) {
		return err
	}
	return nil
}

// Release gives the terminal back if Run currently holds it. It is meant
// for terminal.RestoreOnPanic in main.
func (a *App) Release() {
	a.mu.Lock()
	s := a.session
	a.released = s != nil
	a.mu.Unlock()
	if s != nil {
		s.Release()
	}
}

func (a *App) setSession(s *tui.Session) {
	a.mu.Lock()
	a.session = s
	a.mu.Unlock()
}

// releasedErr tells an App.Release apart from a panic guard releasing
// the session.
func (a *App) releasedErr() error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.released {
		return errQuit
	}
	return errPanicked
}

// loop is the only caller of session.Draw.
func (a *App) loop(ctx context.Context, session *tui.Session) error {
	a.send(a.state.Start(a.hasToken))

	for {
		select {
		case <-ctx.Done():
			return nil
		case m := <-a.inbox:
			reqs, quit := a.state.Update(m)
			if quit {
				return errQuit
			}
			a.send(reqs)

			if _, ok := m.(message.Tick); !ok {
				continue
			}
			if session.Released() {
				return a.releasedErr()
			}
			if !a.state.Dirty() {
				continue
			}
			view := a.state.View()
			if err := session.Draw(view.Draw); err != nil {
				if errors.Is(err, tui.ErrSessionReleased) {
					return a.releasedErr()
				}
				return fmt.Errorf("drawing: %w", err)
			}
			a.state.MarkClean()
		}
	}
}

// send hands requests to the backend. A full queue is reported on the
// status bar instead of blocking the loop.
func (a *App) send(reqs []message.Message) {
	for _, r := range reqs {
		if err := a.actor.Send(r); err != nil {
			log.Warn("app: dropping %T: %v", r, err)
			a.state.fail("busy", err)
		}
	}
}

// post delivers m to the loop unless ctx ends first.
func (a *App) post(ctx context.Context, m message.Message) {
	select {
	case a.inbox <- m:
	case <-ctx.Done():
	}
}

func (a *App) tick(ctx context.Context) error {
	ticker := time.NewTicker(a.settings.Tick())
	defer ticker.Stop()

	a.post(ctx, message.Tick{At: time.Now()})
	for {
		select {
		case <-ctx.Done():
			return nil
		case at := <-ticker.C:
			a.post(ctx, message.Tick{At: at})
		}
	}
}

// pollInput turns raw input into Input messages. A closed input quits.
func (a *App) pollInput(ctx context.Context) error {
	chunks := readChunks(ctx, a.input)
	for {
		select {
		case <-ctx.Done():
			return nil
		case data, ok := <-chunks:
			if !ok {
				a.post(ctx, message.Quit{})
				return nil
			}
			for _, seq := range key.Split(string(data)) {
				a.post(ctx, message.Input{Key: key.ParseKey(seq)})
			}
		}
	}
}

// readChunks reads r on its own goroutine. The channel closes when r
// fails or ends. A read in progress cannot be interrupted, so the
// goroutine may outlive ctx until the next keystroke.
func readChunks(ctx context.Context, r io.Reader) <-chan []byte {
	out := make(chan []byte)
	go func() {
		defer close(out)
		buf := make([]byte, 256)
		for {
			n, err := r.Read(buf)
			if n > 0 {
				select {
				case out <- append([]byte(nil), buf[:n]...):
				case <-ctx.Done():
					return
				}
			}
			if err != nil {
				if !errors.Is(err, io.EOF) {
					log.Warn("app: reading input: %v", err)
				}
				return
			}
		}
	}()
	return out
}

func (a *App) reloadConfig(ctx context.Context) {
	settings, th, err := a.reload()
	if err != nil {
		log.Warn("app: reloading configuration: %v", err)
	} else {
		log.Info("app: configuration reloaded")
	}
	a.post(ctx, message.ConfigReloaded{Settings: settings, Theme: th, Err: err})
}

// guard turns a panic in fn into an error that stops the group, after
// the terminal has been released and the panic reported.
func guard(session *tui.Session, fn func() error) func() error {
	return func() (err error) {
		defer func() {
			if err == nil && session.Released() {
				err = errPanicked
			}
		}()
		defer terminal.RecoverGoroutine(session)
		return fn()
	}
}
