// ABOUTME: StatusBar draws the bottom row: timeline, position, filter and messages
// ABOUTME: Compose and filter editing take over the bar while active

package timeline

import (
	"fmt"

	"github.com/mauromedda/pleroterm/pkg/tui"
	"github.com/mauromedda/pleroterm/pkg/tui/theme"
	"github.com/mauromedda/pleroterm/pkg/tui/width"
)

const cursorGlyph = "▏"

// StatusBar describes the bottom row.
type StatusBar struct {
	Timeline string
	Position int // 1-based index of the selection, 0 when empty
	Total    int
	Loading  bool
	Stream   bool

	Filter        string
	EditingFilter bool

	Draft     string
	Composing bool

	Notice string
	Err    string
}

// Draw renders the bar on row y of area.
func (b StatusBar) Draw(f *tui.Frame, area tui.Rect, y int, pal theme.Palette) {
	if area.Width() <= 0 || y < area.Top || y >= area.Bottom {
		return
	}
	f.Fill(tui.Rect{Top: y, Left: area.Left, Bottom: y + 1, Right: area.Right}, ' ', pal.StatusBar)

	switch {
	case b.Composing:
		b.drawPrompt(f, area, y, "post> ", b.Draft, pal.StatusBar)
		return
	case b.EditingFilter:
		b.drawPrompt(f, area, y, "/", b.Filter, pal.Filter)
		return
	}

	x := writeClipped(f, b.summary(), area.Left, y, area.Right, pal.StatusBar)
	if b.Filter != "" {
		x = writeClipped(f, " /"+b.Filter, x, y, area.Right, pal.Filter)
	}

	msg, st := b.Notice, pal.StatusBar
	if b.Err != "" {
		msg, st = b.Err, pal.Error
	}
	if msg == "" {
		return
	}
	msg = " " + msg
	avail := area.Right - x - 1
	if avail <= 1 {
		return
	}
	msg = width.Truncate(msg, avail, ellipsis)
	f.WriteString(msg, area.Right-width.String(msg), y, st)
}

func (b StatusBar) summary() string {
	s := fmt.Sprintf(" [%s] %d/%d", b.Timeline, b.Position, b.Total)
	if b.Stream {
		s += " live"
	}
	if b.Loading {
		s += " loading" + ellipsis
	}
	return s
}

// drawPrompt shows prompt and the text being edited, keeping its end visible.
func (b StatusBar) drawPrompt(f *tui.Frame, area tui.Rect, y int, prompt, text string, st tui.Style) {
	x := f.WriteString(prompt, area.Left, y, st)
	avail := area.Right - x - width.String(cursorGlyph)
	if avail <= 0 {
		return
	}
	for width.String(text) > avail {
		_, rest := firstCluster(text)
		text = rest
	}
	x = f.WriteString(text, x, y, st)
	f.WriteString(cursorGlyph, x, y, st)
}

func firstCluster(s string) (string, string) {
	var first string
	width.ForEachCluster(s, func(cluster string, _ int) bool {
		first = cluster
		return false
	})
	return first, s[len(first):]
}
