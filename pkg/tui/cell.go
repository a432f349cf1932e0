// ABOUTME: Cell and Style: one addressable terminal character with its colors
// ABOUTME: Cells are values; widgets create them and hand them to a Frame

package tui

// Style is the visual appearance of a cell. The zero Style is the
// terminal default: default colors, no attributes.
type Style struct {
	Fg    Color
	Bg    Color
	Attrs Attr
}

// IsDefault reports whether s renders with the terminal's reset style.
func (s Style) IsDefault() bool {
	return s == Style{}
}

// Foreground returns a copy of s with the foreground replaced.
func (s Style) Foreground(c Color) Style {
	s.Fg = c
	return s
}

// Background returns a copy of s with the background replaced.
func (s Style) Background(c Color) Style {
	s.Bg = c
	return s
}

// With returns a copy of s with attrs added.
func (s Style) With(attrs Attr) Style {
	s.Attrs |= attrs
	return s
}

// Cell is one character at a 0-based grid position.
type Cell struct {
	X     int
	Y     int
	Rune  rune
	Style Style
}

// NewCell returns a default-styled cell.
func NewCell(x, y int, r rune) Cell {
	return Cell{X: x, Y: y, Rune: r}
}

// blank is the filler used for columns no widget wrote to.
func blank(x, y int) Cell {
	return Cell{X: x, Y: y, Rune: ' '}
}
