// ABOUTME: Tests for theme file loading from JSON and YAML
// ABOUTME: Covers role overrides, base inheritance, unknown roles/colors and missing files

package theme

import (
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/mauromedda/pleroterm/pkg/tui"
)

func writeTheme(t *testing.T, name, data string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadFile_JSON(t *testing.T) {
	t.Parallel()

	path := writeTheme(t, "ocean.json", `{
		"name": "ocean",
		"palette": {
			"author": {"fg": "blue", "bold": true},
			"status_bar": {"fg": "white", "bg": "cyan"}
		}
	}`)

	th, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile() error: %v", err)
	}
	if th.Name != "ocean" {
		t.Errorf("Name = %q; want %q", th.Name, "ocean")
	}
	if want := (tui.Style{Fg: tui.ColorBlue, Attrs: tui.AttrBold}); th.Palette.Author != want {
		t.Errorf("Author = %+v; want %+v", th.Palette.Author, want)
	}
	if want := (tui.Style{Fg: tui.ColorWhite, Bg: tui.ColorCyan}); th.Palette.StatusBar != want {
		t.Errorf("StatusBar = %+v; want %+v", th.Palette.StatusBar, want)
	}
	if th.Palette.Error != DefaultPalette().Error {
		t.Errorf("unset role Error = %+v; want default", th.Palette.Error)
	}
}

func TestLoadFile_YAMLWithBase(t *testing.T) {
	t.Parallel()

	path := writeTheme(t, "night.yaml", `
base: dark
palette:
  selected:
    fg: magenta
    reverse: true
`)

	th, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile() error: %v", err)
	}
	if th.Name != "night" {
		t.Errorf("Name = %q; want name derived from file", th.Name)
	}
	if want := (tui.Style{Fg: tui.ColorMagenta, Attrs: tui.AttrReverse}); th.Palette.Selected != want {
		t.Errorf("Selected = %+v; want %+v", th.Palette.Selected, want)
	}
	if th.Palette.StatusBar != Builtin("dark").Palette.StatusBar {
		t.Error("unset role did not inherit from base theme")
	}
}

func TestLoadFile_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		file string
		data string
	}{
		{"invalid json", "bad.json", "{not json"},
		{"invalid yaml", "bad.yml", "palette: [unclosed"},
		{"unknown role", "role.json", `{"palette": {"sidebar": {"fg": "red"}}}`},
		{"unknown color", "color.json", `{"palette": {"body": {"fg": "chartreuse"}}}`},
		{"unknown base", "base.json", `{"base": "solarized"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if _, err := LoadFile(writeTheme(t, tt.file, tt.data)); err == nil {
				t.Error("LoadFile() should return an error")
			}
		})
	}
}

func TestLoadFile_NotFound(t *testing.T) {
	t.Parallel()

	if _, err := LoadFile("/nonexistent/theme.json"); err == nil {
		t.Error("LoadFile() should return error for missing file")
	}
}

func TestResolve(t *testing.T) {
	t.Parallel()

	if th, err := Resolve(""); err != nil || th.Name != "default" {
		t.Errorf("Resolve(\"\") = %v, %v", th, err)
	}
	if th, err := Resolve("light"); err != nil || th != Builtin("light") {
		t.Errorf("Resolve(light) = %v, %v", th, err)
	}

	path := writeTheme(t, "mine.json", `{"name": "mine"}`)
	if th, err := Resolve(path); err != nil || th.Name != "mine" {
		t.Errorf("Resolve(file) = %v, %v", th, err)
	}
}

func TestRoleNames(t *testing.T) {
	t.Parallel()

	names := RoleNames()
	if len(names) != 11 || !slices.IsSorted(names) || !slices.Contains(names, "status_bar") {
		t.Errorf("RoleNames() = %v", names)
	}
}
