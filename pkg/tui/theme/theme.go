// ABOUTME: Semantic styles for the timeline UI: Palette roles mapped to cell styles
// ABOUTME: Theme pairs a name with a Palette; DefaultPalette is the fallback for unset roles

package theme

import (
	"github.com/mauromedda/pleroterm/pkg/tui"
)

// Palette holds the cell style of every semantic role the UI draws.
type Palette struct {
	// Status
	Author     tui.Style
	Handle     tui.Style
	Body       tui.Style
	Counter    tui.Style
	Favourited tui.Style
	Reblogged  tui.Style
	Separator  tui.Style

	// Chrome
	StatusBar tui.Style
	Selected  tui.Style
	Error     tui.Style
	Filter    tui.Style
}

// Theme holds a named palette.
type Theme struct {
	Name    string
	Palette Palette
}

// DefaultPalette returns the palette used when no theme is configured.
func DefaultPalette() Palette {
	return Palette{
		Author:     tui.Style{Fg: tui.ColorCyan, Attrs: tui.AttrBold},
		Handle:     tui.Style{Fg: tui.ColorGrey},
		Body:       tui.Style{},
		Counter:    tui.Style{Fg: tui.ColorGrey},
		Favourited: tui.Style{Fg: tui.ColorYellow, Attrs: tui.AttrBold},
		Reblogged:  tui.Style{Fg: tui.ColorGreen, Attrs: tui.AttrBold},
		Separator:  tui.Style{Fg: tui.ColorGrey, Attrs: tui.AttrDim},

		StatusBar: tui.Style{Attrs: tui.AttrReverse},
		Selected:  tui.Style{Fg: tui.ColorMagenta, Attrs: tui.AttrBold},
		Error:     tui.Style{Fg: tui.ColorRed, Attrs: tui.AttrBold},
		Filter:    tui.Style{Fg: tui.ColorYellow, Attrs: tui.AttrReverse},
	}
}
