// ABOUTME: Headless print mode: one timeline page or search result written to stdout
// ABOUTME: Text output is styled with lipgloss from the active theme; JSON output uses easyjson

package print

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/mauromedda/pleroterm/internal/pleroma"
	"github.com/mauromedda/pleroterm/internal/timeline"
	"github.com/mauromedda/pleroterm/pkg/tui/theme"
	"github.com/mauromedda/pleroterm/pkg/tui/width"
)

// Output formats.
const (
	FormatText = "text"
	FormatJSON = "json"
)

// DefaultWidth is the wrap width of text output.
const DefaultWidth = 80

// Source is the part of the API client print mode reads from.
type Source interface {
	Timeline(ctx context.Context, tl pleroma.Timeline, page pleroma.Page) (pleroma.StatusList, error)
	Search(ctx context.Context, query string, offset int) (*pleroma.SearchResult, error)
}

// Config configures one print run.
type Config struct {
	OutputFormat string // "text" (default) or "json"
	Timeline     pleroma.Timeline
	Limit        int
	Query        string // non-empty prints search results instead of a timeline
	Width        int    // 0 = DefaultWidth
	Palette      theme.Palette
	Now          time.Time // zero = time.Now()
	Out          io.Writer // nil = os.Stdout
}

// Run fetches what cfg asks for and writes it to cfg.Out.
func Run(ctx context.Context, src Source, cfg Config) error {
	if cfg.Out == nil {
		cfg.Out = os.Stdout
	}
	if cfg.Width <= 0 {
		cfg.Width = DefaultWidth
	}
	if cfg.Now.IsZero() {
		cfg.Now = time.Now()
	}

	f, err := newFormatter(cfg)
	if err != nil {
		return err
	}

	if cfg.Query != "" {
		res, err := src.Search(ctx, cfg.Query, 0)
		if err != nil {
			return fmt.Errorf("searching %q: %w", cfg.Query, err)
		}
		return f.search(cfg.Query, res)
	}

	statuses, err := src.Timeline(ctx, cfg.Timeline, pleroma.Page{Limit: cfg.Limit})
	if err != nil {
		return fmt.Errorf("fetching %s timeline: %w", cfg.Timeline, err)
	}
	return f.timeline(cfg.Timeline, statuses)
}

// formatter abstracts output formatting.
type formatter interface {
	timeline(tl pleroma.Timeline, statuses pleroma.StatusList) error
	search(query string, res *pleroma.SearchResult) error
}

func newFormatter(cfg Config) (formatter, error) {
	switch cfg.OutputFormat {
	case "", FormatText:
		return newTextFormatter(cfg), nil
	case FormatJSON:
		return &jsonFormatter{out: cfg.Out}, nil
	default:
		return nil, fmt.Errorf("unknown output format %q", cfg.OutputFormat)
	}
}

// textFormatter writes statuses as styled, wrapped text blocks.
type textFormatter struct {
	out    io.Writer
	width  int
	now    time.Time
	styles styles
}

func newTextFormatter(cfg Config) *textFormatter {
	return &textFormatter{
		out:    cfg.Out,
		width:  cfg.Width,
		now:    cfg.Now,
		styles: newStyles(lipgloss.NewRenderer(cfg.Out), cfg.Palette),
	}
}

func (f *textFormatter) timeline(tl pleroma.Timeline, statuses pleroma.StatusList) error {
	var b strings.Builder
	if len(statuses) == 0 {
		fmt.Fprintf(&b, "%s\n", f.styles.counter.Render("no statuses on the "+string(tl)+" timeline"))
	}
	for i := range statuses {
		f.status(&b, &statuses[i])
	}
	_, err := io.WriteString(f.out, b.String())
	return err
}

func (f *textFormatter) search(query string, res *pleroma.SearchResult) error {
	var b strings.Builder
	if len(res.Accounts) == 0 && len(res.Statuses) == 0 {
		fmt.Fprintf(&b, "%s\n", f.styles.counter.Render("nothing matches "+strconv.Quote(query)))
	}
	for _, a := range res.Accounts {
		fmt.Fprintf(&b, "%s %s\n", f.styles.author.Render(a.Name()), f.styles.handle.Render("@"+a.Acct))
	}
	if len(res.Accounts) > 0 && len(res.Statuses) > 0 {
		b.WriteByte('\n')
	}
	for i := range res.Statuses {
		f.status(&b, &res.Statuses[i])
	}
	_, err := io.WriteString(f.out, b.String())
	return err
}

// status writes the author line, the wrapped body, the counters and a
// separator line.
func (f *textFormatter) status(b *strings.Builder, s *pleroma.Status) {
	st := s.Original()
	sty := f.styles

	b.WriteString(sty.author.Render(st.Account.Name()))
	b.WriteString(sty.handle.Render(" @" + st.Account.Acct))
	if st != s {
		b.WriteString(sty.reblogged.Render(" ↺ " + s.Account.Name()))
	}
	if !st.CreatedAt.IsZero() {
		b.WriteString(sty.counter.Render(" · " + timeline.Age(f.now.Sub(st.CreatedAt))))
	}
	b.WriteByte('\n')

	text := st.Text
	if st.SpoilerText != "" {
		text = "CW: " + st.SpoilerText
	}
	for _, line := range width.Wrap(text, f.width) {
		b.WriteString(sty.body.Render(line))
		b.WriteByte('\n')
	}

	fav := sty.counter
	favGlyph := "☆"
	if st.Favourited {
		fav, favGlyph = sty.favourited, "★"
	}
	rb := sty.counter
	if st.Reblogged {
		rb = sty.reblogged
	}
	fmt.Fprintf(b, "%s  %s  %s\n",
		sty.counter.Render("↵"+strconv.Itoa(st.RepliesCount)),
		rb.Render("↺"+strconv.Itoa(st.ReblogsCount)),
		fav.Render(favGlyph+strconv.Itoa(st.FavouritesCount)),
	)
	b.WriteString(sty.separator.Render(strings.Repeat("-", f.width)))
	b.WriteByte('\n')
}
