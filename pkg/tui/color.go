// ABOUTME: Fixed terminal color palette and text attributes for cells
// ABOUTME: Maps palette entries to SGR parameters and parses color names from config

package tui

import (
	"fmt"
	"strconv"
	"strings"
)

// Color is an entry of the fixed terminal palette. The zero value is the
// terminal's default (reset) color.
type Color uint8

const (
	ColorDefault Color = iota
	ColorBlack
	ColorRed
	ColorGreen
	ColorYellow
	ColorBlue
	ColorMagenta
	ColorCyan
	ColorWhite
	ColorGrey
)

var colorNames = [...]string{
	ColorDefault: "default",
	ColorBlack:   "black",
	ColorRed:     "red",
	ColorGreen:   "green",
	ColorYellow:  "yellow",
	ColorBlue:    "blue",
	ColorMagenta: "magenta",
	ColorCyan:    "cyan",
	ColorWhite:   "white",
	ColorGrey:    "grey",
}

// String returns the lowercase palette name.
func (c Color) String() string {
	if int(c) < len(colorNames) {
		return colorNames[c]
	}
	return fmt.Sprintf("Color(%d)", uint8(c))
}

// ParseColor resolves a palette name. "reset", "" and "gray" are accepted
// as aliases of default and grey.
func ParseColor(name string) (Color, error) {
	switch n := strings.ToLower(strings.TrimSpace(name)); n {
	case "", "reset":
		return ColorDefault, nil
	case "gray":
		return ColorGrey, nil
	default:
		for i, cn := range colorNames {
			if cn == n {
				return Color(i), nil
			}
		}
		return ColorDefault, fmt.Errorf("unknown color %q", name)
	}
}

// UnmarshalText lets config and theme files name colors directly.
func (c *Color) UnmarshalText(text []byte) error {
	parsed, err := ParseColor(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// MarshalText encodes the palette name.
func (c Color) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// fgParam returns the SGR parameter selecting c as foreground.
func (c Color) fgParam() string {
	switch c {
	case ColorDefault:
		return "39"
	case ColorGrey:
		return "90"
	default:
		return strconv.Itoa(30 + int(c-ColorBlack))
	}
}

// bgParam returns the SGR parameter selecting c as background.
func (c Color) bgParam() string {
	switch c {
	case ColorDefault:
		return "49"
	case ColorGrey:
		return "100"
	default:
		return strconv.Itoa(40 + int(c-ColorBlack))
	}
}

// Attr is a bitmask of text attributes.
type Attr uint8

const (
	AttrBold Attr = 1 << iota
	AttrDim
	AttrItalic
	AttrUnderline
	AttrReverse
)

// attrParams lists attribute bits with their SGR parameter, in emission order.
var attrParams = []struct {
	attr  Attr
	param string
}{
	{AttrBold, "1"},
	{AttrDim, "2"},
	{AttrItalic, "3"},
	{AttrUnderline, "4"},
	{AttrReverse, "7"},
}
