// ABOUTME: Tests for print mode: text and JSON formatters for timelines and search results
// ABOUTME: Uses a canned source so no network calls are made

package print

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/mauromedda/pleroterm/internal/pleroma"
	"github.com/mauromedda/pleroterm/pkg/tui"
	"github.com/mauromedda/pleroterm/pkg/tui/theme"
	"github.com/mauromedda/pleroterm/pkg/tui/width"
)

var now = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

type cannedSource struct {
	statuses pleroma.StatusList
	result   *pleroma.SearchResult
	err      error

	gotTimeline pleroma.Timeline
	gotPage     pleroma.Page
	gotQuery    string
}

func (s *cannedSource) Timeline(_ context.Context, tl pleroma.Timeline, page pleroma.Page) (pleroma.StatusList, error) {
	s.gotTimeline, s.gotPage = tl, page
	return s.statuses, s.err
}

func (s *cannedSource) Search(_ context.Context, query string, _ int) (*pleroma.SearchResult, error) {
	s.gotQuery = query
	return s.result, s.err
}

func sampleStatuses() pleroma.StatusList {
	return pleroma.StatusList{
		{
			ID:              "1",
			CreatedAt:       now.Add(-5 * time.Minute),
			Account:         pleroma.Account{ID: "a1", Acct: "alice", DisplayName: "Alice"},
			Text:            "first post",
			RepliesCount:    1,
			ReblogsCount:    2,
			FavouritesCount: 3,
			Favourited:      true,
		},
		{
			ID:      "2",
			Account: pleroma.Account{ID: "b1", Acct: "bob"},
			Reblog: &pleroma.Status{
				ID:          "3",
				CreatedAt:   now.Add(-2 * time.Hour),
				Account:     pleroma.Account{ID: "c1", Acct: "carol@remote.example"},
				SpoilerText: "spoilers",
				Text:        "hidden text",
			},
		},
	}
}

func runText(t *testing.T, src Source, cfg Config) string {
	t.Helper()

	var out bytes.Buffer
	cfg.Out = &out
	cfg.Now = now
	if err := Run(context.Background(), src, cfg); err != nil {
		t.Fatalf("Run: %v", err)
	}
	return width.StripANSI(out.String())
}

func TestRun_TextTimeline(t *testing.T) {
	t.Parallel()

	src := &cannedSource{statuses: sampleStatuses()}
	got := runText(t, src, Config{Timeline: pleroma.Local, Limit: 5, Width: 20, Palette: theme.DefaultPalette()})

	if src.gotTimeline != pleroma.Local || src.gotPage.Limit != 5 {
		t.Errorf("fetched %q with %+v", src.gotTimeline, src.gotPage)
	}

	wantLines := []string{
		"Alice @alice · 5m",
		"first post",
		"↵1  ↺2  ★3",
		strings.Repeat("-", 20),
		"carol@remote.example @carol@remote.example ↺ bob · 2h",
		"CW: spoilers",
		"↵0  ↺0  ☆0",
	}
	for _, want := range wantLines {
		if !strings.Contains(got, want+"\n") {
			t.Errorf("output missing line %q:\n%s", want, got)
		}
	}
	if strings.Contains(got, "hidden text") {
		t.Error("spoiler body printed")
	}
}

func TestRun_TextWrapsBody(t *testing.T) {
	t.Parallel()

	src := &cannedSource{statuses: pleroma.StatusList{{
		ID:      "1",
		Account: pleroma.Account{Acct: "a"},
		Text:    "one two three four",
	}}}
	got := runText(t, src, Config{Width: 9})

	if !strings.Contains(got, "one two\nthree\nfour\n") {
		t.Errorf("body not wrapped to 9 columns:\n%s", got)
	}
}

func TestRun_TextEmpty(t *testing.T) {
	t.Parallel()

	got := runText(t, &cannedSource{}, Config{Timeline: pleroma.Public})
	if got != "no statuses on the public timeline\n" {
		t.Errorf("output = %q", got)
	}

	got = runText(t, &cannedSource{result: &pleroma.SearchResult{}}, Config{Query: "zzz"})
	if got != "nothing matches \"zzz\"\n" {
		t.Errorf("search output = %q", got)
	}
}

func TestRun_TextSearch(t *testing.T) {
	t.Parallel()

	src := &cannedSource{result: &pleroma.SearchResult{
		Accounts: []pleroma.Account{{Acct: "gopher", DisplayName: "Gopher"}},
		Statuses: sampleStatuses()[:1],
	}}
	got := runText(t, src, Config{Query: "go"})

	if src.gotQuery != "go" {
		t.Errorf("query = %q", src.gotQuery)
	}
	if !strings.HasPrefix(got, "Gopher @gopher\n\nAlice @alice") {
		t.Errorf("unexpected search output:\n%s", got)
	}
}

func TestRun_JSONTimeline(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	src := &cannedSource{statuses: sampleStatuses()}
	if err := Run(context.Background(), src, Config{OutputFormat: FormatJSON, Timeline: pleroma.Home, Out: &out}); err != nil {
		t.Fatalf("Run: %v", err)
	}

	var doc struct {
		Timeline string `json:"timeline"`
		Statuses []struct {
			ID          string `json:"id"`
			CreatedAt   string `json:"created_at"`
			Text        string `json:"text"`
			RebloggedBy string `json:"reblogged_by"`
			Spoiler     string `json:"spoiler_text"`
			Favourites  int    `json:"favourites_count"`
			Favourited  bool   `json:"favourited"`
			Account     struct {
				Acct string `json:"acct"`
			} `json:"account"`
		} `json:"statuses"`
	}
	if err := json.Unmarshal(out.Bytes(), &doc); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, out.String())
	}

	if doc.Timeline != "home" || len(doc.Statuses) != 2 {
		t.Fatalf("doc = %+v", doc)
	}
	first, second := doc.Statuses[0], doc.Statuses[1]
	if first.ID != "1" || first.Text != "first post" || first.Favourites != 3 || !first.Favourited {
		t.Errorf("first = %+v", first)
	}
	if first.CreatedAt != "2026-03-01T11:55:00Z" {
		t.Errorf("created_at = %q", first.CreatedAt)
	}
	if second.ID != "3" || second.RebloggedBy != "bob" || second.Account.Acct != "carol@remote.example" || second.Spoiler != "spoilers" {
		t.Errorf("reblog = %+v", second)
	}
	if !bytes.HasSuffix(out.Bytes(), []byte("}\n")) {
		t.Error("document not newline terminated")
	}
}

func TestRun_JSONSearch(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	src := &cannedSource{result: &pleroma.SearchResult{
		Accounts: []pleroma.Account{{ID: "9", Acct: "gopher", Bot: true}},
	}}
	if err := Run(context.Background(), src, Config{OutputFormat: FormatJSON, Query: `say "hi"`, Out: &out}); err != nil {
		t.Fatalf("Run: %v", err)
	}

	want := `{"query":"say \"hi\"","accounts":[{"id":"9","acct":"gopher","display_name":"","bot":true}],"statuses":[]}` + "\n"
	if out.String() != want {
		t.Errorf("output = %s\nwant     %s", out.String(), want)
	}
}

func TestRun_Errors(t *testing.T) {
	t.Parallel()

	errDown := errors.New("instance down")
	tests := []struct {
		name string
		cfg  Config
		want string
	}{
		{"timeline", Config{Timeline: pleroma.Home}, "fetching home timeline: instance down"},
		{"search", Config{Query: "x"}, `searching "x": instance down`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			tt.cfg.Out = &bytes.Buffer{}
			err := Run(context.Background(), &cannedSource{err: errDown}, tt.cfg)
			if !errors.Is(err, errDown) || err.Error() != tt.want {
				t.Errorf("error = %v, want %q", err, tt.want)
			}
		})
	}

	src := &cannedSource{}
	err := Run(context.Background(), src, Config{OutputFormat: "yaml", Out: &bytes.Buffer{}})
	if err == nil || src.gotTimeline != "" {
		t.Errorf("unknown format: err = %v, fetched %q", err, src.gotTimeline)
	}
}

func TestAnsiColor(t *testing.T) {
	t.Parallel()

	tests := []struct {
		c    tui.Color
		want lipgloss.Color
		ok   bool
	}{
		{tui.ColorDefault, "", false},
		{tui.ColorBlack, "0", true},
		{tui.ColorRed, "1", true},
		{tui.ColorWhite, "7", true},
		{tui.ColorGrey, "8", true},
	}
	for _, tt := range tests {
		got, ok := ansiColor(tt.c)
		if got != tt.want || ok != tt.ok {
			t.Errorf("ansiColor(%v) = %q, %v; want %q, %v", tt.c, got, ok, tt.want, tt.ok)
		}
	}
}

func TestToLipgloss(t *testing.T) {
	t.Parallel()

	r := lipgloss.NewRenderer(&bytes.Buffer{})
	st := toLipgloss(r, tui.Style{Fg: tui.ColorCyan, Bg: tui.ColorGrey, Attrs: tui.AttrBold | tui.AttrReverse})

	if st.GetForeground() != lipgloss.Color("6") || st.GetBackground() != lipgloss.Color("8") {
		t.Errorf("colors = %v / %v", st.GetForeground(), st.GetBackground())
	}
	if !st.GetBold() || !st.GetReverse() || st.GetItalic() || st.GetUnderline() || st.GetFaint() {
		t.Error("attributes not mapped")
	}
}
