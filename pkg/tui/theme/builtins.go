// ABOUTME: Built-in themes: default, dark, light, monochrome
// ABOUTME: Provides Builtin(name) lookup and BuiltinNames() enumeration

package theme

import (
	"github.com/mauromedda/pleroterm/pkg/tui"
)

var builtins = map[string]*Theme{
	"default": {
		Name:    "default",
		Palette: DefaultPalette(),
	},
	"dark": {
		Name: "dark",
		Palette: Palette{
			Author:     tui.Style{Fg: tui.ColorWhite, Attrs: tui.AttrBold},
			Handle:     tui.Style{Fg: tui.ColorGrey},
			Body:       tui.Style{Fg: tui.ColorWhite},
			Counter:    tui.Style{Fg: tui.ColorGrey},
			Favourited: tui.Style{Fg: tui.ColorYellow},
			Reblogged:  tui.Style{Fg: tui.ColorGreen},
			Separator:  tui.Style{Fg: tui.ColorGrey},

			StatusBar: tui.Style{Fg: tui.ColorWhite, Bg: tui.ColorBlue},
			Selected:  tui.Style{Fg: tui.ColorCyan, Attrs: tui.AttrBold},
			Error:     tui.Style{Fg: tui.ColorRed},
			Filter:    tui.Style{Fg: tui.ColorBlack, Bg: tui.ColorYellow},
		},
	},
	"light": {
		Name: "light",
		Palette: Palette{
			Author:     tui.Style{Fg: tui.ColorBlue, Attrs: tui.AttrBold},
			Handle:     tui.Style{Fg: tui.ColorGrey},
			Body:       tui.Style{Fg: tui.ColorBlack},
			Counter:    tui.Style{Fg: tui.ColorGrey},
			Favourited: tui.Style{Fg: tui.ColorMagenta},
			Reblogged:  tui.Style{Fg: tui.ColorGreen},
			Separator:  tui.Style{Fg: tui.ColorGrey},

			StatusBar: tui.Style{Fg: tui.ColorBlack, Bg: tui.ColorWhite},
			Selected:  tui.Style{Fg: tui.ColorBlue, Attrs: tui.AttrReverse},
			Error:     tui.Style{Fg: tui.ColorRed, Attrs: tui.AttrUnderline},
			Filter:    tui.Style{Fg: tui.ColorWhite, Bg: tui.ColorBlue},
		},
	},
	"monochrome": {
		Name: "monochrome",
		Palette: Palette{
			Author:     tui.Style{Attrs: tui.AttrBold},
			Handle:     tui.Style{Attrs: tui.AttrDim},
			Body:       tui.Style{},
			Counter:    tui.Style{Attrs: tui.AttrDim},
			Favourited: tui.Style{Attrs: tui.AttrBold},
			Reblogged:  tui.Style{Attrs: tui.AttrBold},
			Separator:  tui.Style{Attrs: tui.AttrDim},

			StatusBar: tui.Style{Attrs: tui.AttrReverse},
			Selected:  tui.Style{Attrs: tui.AttrReverse},
			Error:     tui.Style{Attrs: tui.AttrBold | tui.AttrUnderline},
			Filter:    tui.Style{Attrs: tui.AttrUnderline},
		},
	},
}

// Builtin returns a built-in theme by name, or nil if unknown.
func Builtin(name string) *Theme {
	return builtins[name]
}

// BuiltinNames returns the names of all built-in themes.
func BuiltinNames() []string {
	return []string{"default", "dark", "light", "monochrome"}
}
