// ABOUTME: Standard filesystem paths for pleroterm configuration and logs
// ABOUTME: Resolves ~/.pleroterm/ for config files, themes and the default log file

package config

import (
	"os"
	"path/filepath"
)

const globalDirName = ".pleroterm"

// GlobalDir returns the user-global config directory (~/.pleroterm/).
func GlobalDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", globalDirName)
	}
	return filepath.Join(home, globalDirName)
}

// GlobalConfigFiles returns the candidate global config files in lookup
// order; the first one that exists is used.
func GlobalConfigFiles() []string {
	dir := GlobalDir()
	return []string{
		filepath.Join(dir, "config.json"),
		filepath.Join(dir, "config.yaml"),
		filepath.Join(dir, "config.yml"),
	}
}

// ThemesDir returns the directory searched for named theme files.
func ThemesDir() string {
	return filepath.Join(GlobalDir(), "themes")
}

// ThemeFile returns the path of a theme file named name in ThemesDir,
// trying .json then .yaml. It returns "" if neither exists.
func ThemeFile(name string) string {
	for _, ext := range []string{".json", ".yaml", ".yml"} {
		path := filepath.Join(ThemesDir(), name+ext)
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// DefaultLogFile returns where logs go while the terminal is owned by the UI.
func DefaultLogFile() string {
	return filepath.Join(GlobalDir(), "pleroterm.log")
}

// EnsureDir creates a directory and all parents if they don't exist.
// Uses 0o700 since the directory may hold an access token.
func EnsureDir(path string) error {
	return os.MkdirAll(path, 0o700)
}
