// ABOUTME: Theme file loading from JSON or YAML, selected by file extension
// ABOUTME: Unset roles inherit from the base built-in theme (default unless "base" names another)

package theme

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/mauromedda/pleroterm/pkg/tui"
)

// styleSpec is the file representation of one role.
type styleSpec struct {
	Fg        string `json:"fg" yaml:"fg"`
	Bg        string `json:"bg" yaml:"bg"`
	Bold      bool   `json:"bold" yaml:"bold"`
	Dim       bool   `json:"dim" yaml:"dim"`
	Italic    bool   `json:"italic" yaml:"italic"`
	Underline bool   `json:"underline" yaml:"underline"`
	Reverse   bool   `json:"reverse" yaml:"reverse"`
}

type themeFile struct {
	Name    string               `json:"name" yaml:"name"`
	Base    string               `json:"base" yaml:"base"`
	Palette map[string]styleSpec `json:"palette" yaml:"palette"`
}

var roles = map[string]func(*Palette) *tui.Style{
	"author":     func(p *Palette) *tui.Style { return &p.Author },
	"handle":     func(p *Palette) *tui.Style { return &p.Handle },
	"body":       func(p *Palette) *tui.Style { return &p.Body },
	"counter":    func(p *Palette) *tui.Style { return &p.Counter },
	"favourited": func(p *Palette) *tui.Style { return &p.Favourited },
	"reblogged":  func(p *Palette) *tui.Style { return &p.Reblogged },
	"separator":  func(p *Palette) *tui.Style { return &p.Separator },
	"status_bar": func(p *Palette) *tui.Style { return &p.StatusBar },
	"selected":   func(p *Palette) *tui.Style { return &p.Selected },
	"error":      func(p *Palette) *tui.Style { return &p.Error },
	"filter":     func(p *Palette) *tui.Style { return &p.Filter },
}

// RoleNames returns the role keys accepted in theme files, sorted.
func RoleNames() []string {
	names := make([]string, 0, len(roles))
	for name := range roles {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Resolve returns the built-in theme called nameOrPath, or loads it as a
// theme file. An empty name selects the default theme.
func Resolve(nameOrPath string) (*Theme, error) {
	if nameOrPath == "" {
		return builtins["default"], nil
	}
	if th := Builtin(nameOrPath); th != nil {
		return th, nil
	}
	return LoadFile(nameOrPath)
}

// LoadFile reads a theme file. Files ending in .yaml or .yml are parsed
// as YAML, everything else as JSON.
func LoadFile(path string) (*Theme, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading theme file: %w", err)
	}

	var tf themeFile
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &tf)
	default:
		err = json.Unmarshal(data, &tf)
	}
	if err != nil {
		return nil, fmt.Errorf("parsing theme file %s: %w", path, err)
	}

	th, err := tf.build()
	if err != nil {
		return nil, fmt.Errorf("theme file %s: %w", path, err)
	}
	if th.Name == "" {
		th.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return th, nil
}

func (tf themeFile) build() (*Theme, error) {
	base := DefaultPalette()
	if tf.Base != "" {
		b := Builtin(tf.Base)
		if b == nil {
			return nil, fmt.Errorf("unknown base theme %q", tf.Base)
		}
		base = b.Palette
	}

	p := base
	for role, spec := range tf.Palette {
		field, ok := roles[strings.ToLower(role)]
		if !ok {
			return nil, fmt.Errorf("unknown role %q", role)
		}
		st, err := spec.style()
		if err != nil {
			return nil, fmt.Errorf("role %s: %w", role, err)
		}
		*field(&p) = st
	}
	return &Theme{Name: tf.Name, Palette: p}, nil
}

func (s styleSpec) style() (tui.Style, error) {
	fg, err := tui.ParseColor(s.Fg)
	if err != nil {
		return tui.Style{}, err
	}
	bg, err := tui.ParseColor(s.Bg)
	if err != nil {
		return tui.Style{}, err
	}

	st := tui.Style{Fg: fg, Bg: bg}
	for _, a := range []struct {
		on   bool
		attr tui.Attr
	}{
		{s.Bold, tui.AttrBold},
		{s.Dim, tui.AttrDim},
		{s.Italic, tui.AttrItalic},
		{s.Underline, tui.AttrUnderline},
		{s.Reverse, tui.AttrReverse},
	} {
		if a.on {
			st = st.With(a.attr)
		}
	}
	return st, nil
}
