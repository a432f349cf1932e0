// ABOUTME: Frame is the per-draw surface widgets submit cells to
// ABOUTME: Bounded by the terminal size at open time; discarded after commit

package tui

import (
	"unicode/utf8"

	"github.com/mauromedda/pleroterm/pkg/tui/width"
)

// Rect is a half-open rectangle: columns [Left, Right), rows [Top, Bottom).
type Rect struct {
	Top    int
	Left   int
	Bottom int
	Right  int
}

// Width returns the number of columns in r.
func (r Rect) Width() int { return max(r.Right-r.Left, 0) }

// Height returns the number of rows in r.
func (r Rect) Height() int { return max(r.Bottom-r.Top, 0) }

// Contains reports whether (x, y) lies inside r.
func (r Rect) Contains(x, y int) bool {
	return x >= r.Left && x < r.Right && y >= r.Top && y < r.Bottom
}

// Frame accumulates the cells of one draw call. It is only valid inside
// the callback passed to Session.Draw and must not be retained.
//
// Cells outside Area are accepted here and silently clipped when the
// frame is committed, so one misbehaving widget cannot blank the screen.
type Frame struct {
	area  Rect
	cells []Cell
}

func (f *Frame) open(w, h int) {
	f.area = Rect{Bottom: h, Right: w}
	f.cells = f.cells[:0]
}

func (f *Frame) discard() {
	clear(f.cells)
	f.cells = f.cells[:0]
}

// Area returns the frame bounds.
func (f *Frame) Area() Rect {
	return f.area
}

// Write appends c in submission order.
func (f *Frame) Write(c Cell) {
	f.cells = append(f.cells, c)
}

// WriteString places text on row y starting at column x, one cell per
// displayed character, all with style st. It does not wrap. Double-width
// characters advance two columns; zero-width clusters are skipped.
// It returns the column following the last written character, which may
// lie past Area().Right; cells that do not fit are clipped at commit.
func (f *Frame) WriteString(text string, x, y int, st Style) int {
	width.ForEachCluster(width.Normalize(text), func(cluster string, cw int) bool {
		if cw == 0 {
			return true
		}
		f.cells = append(f.cells, Cell{X: x, Y: y, Rune: firstRune(cluster), Style: st})
		x += cw
		return true
	})
	return x
}

// Fill writes ch with style st over every cell of r.
func (f *Frame) Fill(r Rect, ch rune, st Style) {
	for y := r.Top; y < r.Bottom; y++ {
		for x := r.Left; x < r.Right; x++ {
			f.cells = append(f.cells, Cell{X: x, Y: y, Rune: ch, Style: st})
		}
	}
}

// Len returns the number of cells submitted so far.
func (f *Frame) Len() int {
	return len(f.cells)
}

// clip drops cells that do not fit inside the frame area in place and
// returns the surviving cells with the number dropped. A double-width
// character must fit both of its columns.
func (f *Frame) clip() ([]Cell, int) {
	kept := f.cells[:0]
	for _, c := range f.cells {
		if !f.area.Contains(c.X, c.Y) {
			continue
		}
		if c.X+max(width.Rune(c.Rune), 1) > f.area.Right {
			continue
		}
		kept = append(kept, c)
	}
	dropped := len(f.cells) - len(kept)
	f.cells = kept
	return kept, dropped
}

func firstRune(s string) rune {
	r, _ := utf8.DecodeRuneInString(s)
	return r
}
