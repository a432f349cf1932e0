// ABOUTME: StatusWidget draws one status as author, body and counter rows plus a separator
// ABOUTME: Text is measured and truncated to the area so nothing depends on frame clipping

package timeline

import (
	"strconv"
	"strings"
	"time"

	"github.com/mauromedda/pleroterm/internal/pleroma"
	"github.com/mauromedda/pleroterm/pkg/tui"
	"github.com/mauromedda/pleroterm/pkg/tui/theme"
	"github.com/mauromedda/pleroterm/pkg/tui/width"
)

// StatusHeight is the number of rows one status occupies, separator included.
const StatusHeight = 4

const (
	gutter      = 2
	marker      = "▶"
	ellipsis    = "…"
	separator   = '-'
	replyGlyph  = "↵"
	reblogGlyph = "↺"
	favGlyph    = "★"
	unfavGlyph  = "☆"
)

// StatusWidget renders a single status.
type StatusWidget struct {
	Status   *pleroma.Status
	Palette  theme.Palette
	Selected bool
	Now      time.Time
}

// Draw renders the widget into the first StatusHeight rows of area.
// Rows beyond the area are skipped.
func (w StatusWidget) Draw(f *tui.Frame, area tui.Rect) {
	if area.Width() <= gutter || area.Height() <= 0 || w.Status == nil {
		return
	}
	st := w.Status.Original()
	left := area.Left + gutter
	right := area.Right

	if w.Selected {
		f.WriteString(marker, area.Left, area.Top, w.Palette.Selected)
	}

	rows := []func(y int){
		func(y int) { w.drawAuthor(f, st, left, right, y) },
		func(y int) { w.drawBody(f, st, left, right, y) },
		func(y int) { w.drawCounters(f, st, left, right, y) },
		func(y int) {
			f.Fill(tui.Rect{Top: y, Left: area.Left, Bottom: y + 1, Right: right}, separator, w.Palette.Separator)
		},
	}
	for i, draw := range rows {
		if y := area.Top + i; y < area.Bottom {
			draw(y)
		}
	}
}

func (w StatusWidget) drawAuthor(f *tui.Frame, st *pleroma.Status, left, right, y int) {
	age := ""
	if !st.CreatedAt.IsZero() && !w.Now.IsZero() {
		age = Age(w.Now.Sub(st.CreatedAt))
	}
	ageW := width.String(age)
	limit := right - ageW - 1
	if age == "" {
		limit = right
	}

	nameStyle := w.Palette.Author
	if w.Selected {
		nameStyle = w.Palette.Selected
	}
	x := writeClipped(f, st.Account.Name(), left, y, limit, nameStyle)
	if st.Account.Acct != "" && st.Account.Acct != st.Account.Name() {
		x = writeClipped(f, " @"+st.Account.Acct, x, y, limit, w.Palette.Handle)
	}
	if w.Status.Reblog != nil {
		writeClipped(f, " "+reblogGlyph+" "+w.Status.Account.Acct, x, y, limit, w.Palette.Reblogged)
	}
	if age != "" && right-ageW > left {
		f.WriteString(age, right-ageW, y, w.Palette.Handle)
	}
}

func (w StatusWidget) drawBody(f *tui.Frame, st *pleroma.Status, left, right, y int) {
	text := st.Text
	if st.SpoilerText != "" {
		text = "CW: " + st.SpoilerText
	}
	avail := right - left
	lines := width.Wrap(text, avail)
	if len(lines) == 0 {
		return
	}
	line := lines[0]
	if len(lines) > 1 && strings.TrimSpace(strings.Join(lines[1:], "")) != "" {
		line = width.Truncate(line, avail-1, "") + ellipsis
	}
	writeClipped(f, line, left, y, right, w.Palette.Body)
}

func (w StatusWidget) drawCounters(f *tui.Frame, st *pleroma.Status, left, right, y int) {
	gap := strings.Repeat(" ", max(1, (right-left-6)/5))

	reblogStyle := w.Palette.Counter
	if st.Reblogged {
		reblogStyle = w.Palette.Reblogged
	}
	favStyle, fav := w.Palette.Counter, unfavGlyph
	if st.Favourited {
		favStyle, fav = w.Palette.Favourited, favGlyph
	}

	x := writeClipped(f, replyGlyph+strconv.Itoa(st.RepliesCount), left, y, right, w.Palette.Counter)
	x = writeClipped(f, gap+reblogGlyph+strconv.Itoa(st.ReblogsCount), x, y, right, reblogStyle)
	writeClipped(f, gap+fav+strconv.Itoa(st.FavouritesCount), x, y, right, favStyle)
}

// writeClipped writes text from column x, truncated so it ends before
// limit. Returns the column after the last cell written.
func writeClipped(f *tui.Frame, text string, x, y, limit int, st tui.Style) int {
	if x >= limit {
		return x
	}
	return f.WriteString(width.Truncate(text, limit-x, ellipsis), x, y, st)
}

// Age formats d as a compact relative age: "now", "45s", "12m", "3h", "9d".
func Age(d time.Duration) string {
	switch {
	case d < 5*time.Second:
		return "now"
	case d < time.Minute:
		return strconv.Itoa(int(d/time.Second)) + "s"
	case d < time.Hour:
		return strconv.Itoa(int(d/time.Minute)) + "m"
	case d < 24*time.Hour:
		return strconv.Itoa(int(d/time.Hour)) + "h"
	default:
		return strconv.Itoa(int(d/(24*time.Hour))) + "d"
	}
}
