// ABOUTME: End-to-end tests of the app loop on a virtual terminal with a fake instance
// ABOUTME: Keys are written to a pipe; the screen is checked through the recorded output

package app

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/mauromedda/pleroterm/internal/config"
	"github.com/mauromedda/pleroterm/internal/pleroma"
	"github.com/mauromedda/pleroterm/pkg/tui/terminal"
	"github.com/mauromedda/pleroterm/pkg/tui/theme"
	"github.com/mauromedda/pleroterm/pkg/tui/width"
)

type fakeInstance struct {
	mu     sync.Mutex
	posted []string
}

func (f *fakeInstance) Timeline(_ context.Context, tl pleroma.Timeline, _ pleroma.Page) (pleroma.StatusList, error) {
	if tl == pleroma.Public {
		return nil, &pleroma.APIError{StatusCode: 404, Message: "gone"}
	}
	return pleroma.StatusList{
		{ID: "2", Account: pleroma.Account{Acct: "alice"}, Text: "hello from " + string(tl)},
		{ID: "1", Account: pleroma.Account{Acct: "bob"}, Text: "older post"},
	}, nil
}

func (f *fakeInstance) PostStatus(_ context.Context, text, _ string) (*pleroma.Status, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.posted = append(f.posted, text)
	return &pleroma.Status{ID: "3", Account: pleroma.Account{Acct: "me"}, Text: text}, nil
}

func (f *fakeInstance) DeleteStatus(context.Context, string) error { return nil }

func (f *fakeInstance) VerifyCredentials(context.Context) (*pleroma.Account, error) {
	return &pleroma.Account{ID: "me", Acct: "me"}, nil
}

// Stream repeats one update until cancelled, so it lands once the feed is loaded.
func (f *fakeInstance) Stream(ctx context.Context, _ pleroma.Timeline, fn func(pleroma.StreamEvent) error) error {
	ticker := time.NewTicker(5 * time.Millisecond)
	defer ticker.Stop()
	for {
		st := &pleroma.Status{ID: "9", Account: pleroma.Account{Acct: "carol"}, Text: "streamed in"}
		if err := fn(pleroma.StreamEvent{Status: st}); err != nil {
			return err
		}
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
	}
}

func testSettings() *config.Settings {
	return &config.Settings{Timeline: "home", TickMillis: 5, PageSize: 20}
}

type harness struct {
	vt   *terminal.VirtualTerminal
	keys *io.PipeWriter
	done chan error
	api  *fakeInstance
	app  *App
}

func run(t *testing.T, settings *config.Settings, opts ...Option) *harness {
	t.Helper()

	pr, pw := io.Pipe()
	h := &harness{
		vt:   terminal.NewVirtualTerminal(40, 12),
		keys: pw,
		done: make(chan error, 1),
		api:  &fakeInstance{},
	}
	a, err := New(h.vt, h.api, settings, append([]Option{WithInput(pr), WithToken(true)}, opts...)...)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	h.app = a

	ctx, cancel := context.WithCancel(context.Background())
	go func() { h.done <- a.Run(ctx) }()
	t.Cleanup(func() {
		cancel()
		pw.Close()
		select {
		case <-h.done:
		case <-time.After(2 * time.Second):
			t.Error("Run did not return after cancel")
		}
	})
	return h
}

// waitFor polls the screen output until it contains want.
func (h *harness) waitFor(t *testing.T, want string) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if strings.Contains(width.StripANSI(h.vt.Output()), want) {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("screen never showed %q; last output: %q", want, lastFrame(h.vt.Output()))
}

func (h *harness) press(t *testing.T, keys string) {
	t.Helper()
	if _, err := io.WriteString(h.keys, keys); err != nil {
		t.Fatalf("writing keys: %v", err)
	}
}

func (h *harness) wait(t *testing.T) error {
	t.Helper()
	select {
	case err := <-h.done:
		h.done <- err
		return err
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return")
		return nil
	}
}

func lastFrame(out string) string {
	if i := strings.LastIndex(out, "\x1b[?2026h"); i >= 0 {
		out = out[i:]
	}
	return width.StripANSI(out)
}

func TestApp_ShowsTimelineAndQuits(t *testing.T) {
	t.Parallel()

	h := run(t, testSettings())
	h.waitFor(t, "hello from home")
	h.waitFor(t, "signed in as @me")

	h.press(t, "q")
	if err := h.wait(t); err != nil {
		t.Fatalf("Run = %v", err)
	}
	if h.vt.IsRawMode() || h.vt.IsAltScreen() {
		t.Error("terminal not restored")
	}
	if h.vt.ExitCount() != 1 || h.vt.AltExitCount() != 1 {
		t.Errorf("restored raw=%d alt=%d times", h.vt.ExitCount(), h.vt.AltExitCount())
	}
}

func TestApp_SwitchTimelineAndError(t *testing.T) {
	t.Parallel()

	h := run(t, testSettings())
	h.waitFor(t, "hello from home")

	h.press(t, "\t")
	h.waitFor(t, "hello from local")

	h.press(t, "\t")
	h.waitFor(t, "public: pleroma: 404 gone")
}

func TestApp_Compose(t *testing.T) {
	t.Parallel()

	h := run(t, testSettings())
	h.waitFor(t, "signed in as @me")

	h.press(t, "cnew post")
	h.waitFor(t, "post> new post")
	h.press(t, "\r")
	h.waitFor(t, "posted")

	h.api.mu.Lock()
	defer h.api.mu.Unlock()
	if len(h.api.posted) != 1 || h.api.posted[0] != "new post" {
		t.Errorf("posted = %v", h.api.posted)
	}
}

func TestApp_StreamPrependsStatuses(t *testing.T) {
	t.Parallel()

	settings := testSettings()
	settings.Stream = true
	h := run(t, settings)
	h.waitFor(t, "streamed in")
	h.waitFor(t, "live")
}

func TestApp_ContextCancelReleases(t *testing.T) {
	t.Parallel()

	pr, _ := io.Pipe()
	vt := terminal.NewVirtualTerminal(20, 6)
	a, err := New(vt, &fakeInstance{}, testSettings(), WithInput(pr))
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	if err := a.Run(ctx); err != nil {
		t.Errorf("Run = %v, want nil", err)
	}
	if vt.IsRawMode() || vt.IsAltScreen() {
		t.Error("terminal not restored after cancel")
	}
}

func TestApp_ClosedInputQuits(t *testing.T) {
	t.Parallel()

	h := run(t, testSettings())
	h.waitFor(t, "hello from home")
	h.keys.Close()

	if err := h.wait(t); err != nil {
		t.Errorf("Run = %v", err)
	}
}

func TestApp_ReleaseEndsRun(t *testing.T) {
	t.Parallel()

	h := run(t, testSettings())
	h.waitFor(t, "hello from home")
	h.app.Release()

	if err := h.wait(t); err != nil {
		t.Errorf("Run = %v", err)
	}
	if h.vt.IsRawMode() || h.vt.IsAltScreen() || h.vt.ExitCount() != 1 {
		t.Error("terminal not restored exactly once")
	}
	h.app.Release()
}

func TestApp_AcquireFailure(t *testing.T) {
	t.Parallel()

	vt := terminal.NewVirtualTerminal(20, 6)
	boom := errors.New("no tty")
	vt.Fail(terminal.OpEnterRaw, boom)

	a, err := New(vt, &fakeInstance{}, testSettings())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := a.Run(context.Background()); !errors.Is(err, boom) {
		t.Errorf("Run = %v, want %v", err, boom)
	}
}

func TestApp_UnknownTimeline(t *testing.T) {
	t.Parallel()

	settings := testSettings()
	settings.Timeline = "federated"
	if _, err := New(terminal.NewVirtualTerminal(10, 5), &fakeInstance{}, settings); err == nil {
		t.Error("New accepted an unknown timeline")
	}
}

func TestApp_HotReload(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("page_size: 10\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	reloaded := make(chan struct{}, 1)
	reload := func() (*config.Settings, *theme.Theme, error) {
		select {
		case reloaded <- struct{}{}:
		default:
		}
		return &config.Settings{PageSize: 10}, nil, nil
	}

	h := run(t, testSettings(), WithReload([]string{path}, 5*time.Millisecond, reload))
	h.waitFor(t, "signed in as @me")

	future := time.Now().Add(time.Hour)
	if err := os.Chtimes(path, future, future); err != nil {
		t.Fatal(err)
	}
	select {
	case <-reloaded:
	case <-time.After(2 * time.Second):
		t.Fatal("reload not triggered")
	}
	h.waitFor(t, "configuration reloaded")
}
