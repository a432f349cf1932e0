// ABOUTME: Row reconstruction: turns an unordered cell set into dense rows
// ABOUTME: Stable sort by (y, x), group by row, gap-fill missing columns with blanks

package tui

import (
	"cmp"
	"slices"
	"strings"
)

// Row is one reconstructed line. Cells[i] is always the cell at column i.
type Row struct {
	Y     int
	Cells []Cell
}

// String returns the row's characters without styling.
func (r Row) String() string {
	var b strings.Builder
	b.Grow(len(r.Cells))
	for _, c := range r.Cells {
		b.WriteRune(c.Rune)
	}
	return b.String()
}

// Reconstruct groups cells into rows ordered by Y. Every row spans
// columns 0 through its largest X; columns nobody wrote become blank
// default-styled spaces. Rows without cells are omitted.
//
// When several cells share a position the one submitted last wins.
// Cells with negative coordinates are ignored. The input is not modified.
func Reconstruct(cells []Cell) []Row {
	sorted := make([]Cell, 0, len(cells))
	for _, c := range cells {
		if c.X >= 0 && c.Y >= 0 {
			sorted = append(sorted, c)
		}
	}
	if len(sorted) == 0 {
		return nil
	}

	// Stable: equal (y, x) keys keep submission order, so the last
	// duplicate is the one fillRow writes last.
	slices.SortStableFunc(sorted, func(a, b Cell) int {
		if c := cmp.Compare(a.Y, b.Y); c != 0 {
			return c
		}
		return cmp.Compare(a.X, b.X)
	})

	var rows []Row
	for start := 0; start < len(sorted); {
		y := sorted[start].Y
		end := start + 1
		for end < len(sorted) && sorted[end].Y == y {
			end++
		}
		rows = append(rows, fillRow(y, sorted[start:end]))
		start = end
	}
	return rows
}

// fillRow builds the dense row for one y group sorted by x.
func fillRow(y int, group []Cell) Row {
	dense := make([]Cell, group[len(group)-1].X+1)
	for x := range dense {
		dense[x] = blank(x, y)
	}
	for _, c := range group {
		dense[c.X] = c
	}
	return Row{Y: y, Cells: dense}
}
