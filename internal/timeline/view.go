// ABOUTME: View lays out status widgets from the selection down and the status bar below
// ABOUTME: The last row is always reserved for the bar; an empty list shows a placeholder

package timeline

import (
	"time"

	"github.com/mauromedda/pleroterm/internal/pleroma"
	"github.com/mauromedda/pleroterm/pkg/tui"
	"github.com/mauromedda/pleroterm/pkg/tui/theme"
	"github.com/mauromedda/pleroterm/pkg/tui/width"
)

// View is one screen of the timeline.
type View struct {
	Statuses []*pleroma.Status
	Selected int
	Palette  theme.Palette
	Bar      StatusBar
	Empty    string
	Now      time.Time
}

// Capacity returns how many statuses fit in a screen of the given height.
func Capacity(height int) int {
	return max(height-1, 0) / StatusHeight
}

// Draw renders the view into the whole frame.
func (v View) Draw(f *tui.Frame) {
	area := f.Area()
	if area.Height() <= 0 {
		return
	}
	bar := area.Bottom - 1
	v.Bar.Draw(f, area, bar, v.Palette)

	if len(v.Statuses) == 0 {
		if v.Empty != "" && bar > area.Top {
			text := width.Truncate(v.Empty, area.Width(), ellipsis)
			x := area.Left + (area.Width()-width.String(text))/2
			f.WriteString(text, x, area.Top+(bar-area.Top)/2, v.Palette.Handle)
		}
		return
	}

	first := min(max(v.Selected, 0), len(v.Statuses)-1)
	for i, y := first, area.Top; i < len(v.Statuses) && y+StatusHeight <= bar; i, y = i+1, y+StatusHeight {
		StatusWidget{
			Status:   v.Statuses[i],
			Palette:  v.Palette,
			Selected: i == v.Selected,
			Now:      v.Now,
		}.Draw(f, tui.Rect{Top: y, Left: area.Left, Bottom: y + StatusHeight, Right: area.Right})
	}
}
