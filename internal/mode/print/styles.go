// ABOUTME: Lipgloss style bridge from theme palette roles
// ABOUTME: Maps the fixed tui colors to ANSI indexes and attributes to lipgloss setters

package print

import (
	"strconv"

	"github.com/charmbracelet/lipgloss"

	"github.com/mauromedda/pleroterm/pkg/tui"
	"github.com/mauromedda/pleroterm/pkg/tui/theme"
)

// styles holds one lipgloss style per palette role print mode uses.
type styles struct {
	author     lipgloss.Style
	handle     lipgloss.Style
	body       lipgloss.Style
	counter    lipgloss.Style
	favourited lipgloss.Style
	reblogged  lipgloss.Style
	separator  lipgloss.Style
}

func newStyles(r *lipgloss.Renderer, p theme.Palette) styles {
	return styles{
		author:     toLipgloss(r, p.Author),
		handle:     toLipgloss(r, p.Handle),
		body:       toLipgloss(r, p.Body),
		counter:    toLipgloss(r, p.Counter),
		favourited: toLipgloss(r, p.Favourited),
		reblogged:  toLipgloss(r, p.Reblogged),
		separator:  toLipgloss(r, p.Separator),
	}
}

// toLipgloss converts a cell style. The renderer decides whether any
// escape codes are emitted, so piped output stays plain.
func toLipgloss(r *lipgloss.Renderer, st tui.Style) lipgloss.Style {
	s := r.NewStyle()
	if c, ok := ansiColor(st.Fg); ok {
		s = s.Foreground(c)
	}
	if c, ok := ansiColor(st.Bg); ok {
		s = s.Background(c)
	}
	return s.
		Bold(st.Attrs&tui.AttrBold != 0).
		Faint(st.Attrs&tui.AttrDim != 0).
		Italic(st.Attrs&tui.AttrItalic != 0).
		Underline(st.Attrs&tui.AttrUnderline != 0).
		Reverse(st.Attrs&tui.AttrReverse != 0)
}

// ansiColor returns the basic ANSI index of c: black..white are 0-7 and
// grey is bright black (8). The default color has no index.
func ansiColor(c tui.Color) (lipgloss.Color, bool) {
	switch {
	case c == tui.ColorGrey:
		return lipgloss.Color("8"), true
	case c >= tui.ColorBlack && c <= tui.ColorWhite:
		return lipgloss.Color(strconv.Itoa(int(c - tui.ColorBlack))), true
	default:
		return "", false
	}
}
