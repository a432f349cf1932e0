// ABOUTME: Settings loading with global + explicit config file merge
// ABOUTME: JSON or YAML (by extension); env overrides and defaults applied last

package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Timeline names accepted by Settings.Timeline.
const (
	TimelineHome   = "home"
	TimelineLocal  = "local"
	TimelinePublic = "public"
)

// Defaults for unset fields.
const (
	DefaultTimeline   = TimelineHome
	DefaultTickMillis = 100
	DefaultPageSize   = 20
)

// Environment overrides.
const (
	EnvToken    = "PLEROTERM_TOKEN"
	EnvInstance = "PLEROTERM_INSTANCE"
)

// ErrNoInstance is returned by Validate when no instance URL is configured.
var ErrNoInstance = errors.New("no instance configured")

// Settings holds the merged configuration.
type Settings struct {
	Instance   string `json:"instance,omitempty" yaml:"instance,omitempty"`
	Token      string `json:"token,omitempty" yaml:"token,omitempty"`
	Timeline   string `json:"timeline,omitempty" yaml:"timeline,omitempty"`
	TickMillis int    `json:"tick_ms,omitempty" yaml:"tick_ms,omitempty"`
	PageSize   int    `json:"page_size,omitempty" yaml:"page_size,omitempty"`
	Theme      string `json:"theme,omitempty" yaml:"theme,omitempty"`
	LogLevel   string `json:"log_level,omitempty" yaml:"log_level,omitempty"`
	LogFile    string `json:"log_file,omitempty" yaml:"log_file,omitempty"`
	Stream     bool   `json:"stream,omitempty" yaml:"stream,omitempty"`

	// MergeRuns toggles style-run merging in the frame encoder. Nil means on.
	MergeRuns *bool `json:"merge_runs,omitempty" yaml:"merge_runs,omitempty"`
}

// Load reads the global config file and, when explicit is non-empty, the
// file it names. Values from the explicit file override global ones. A
// missing global file is not an error; a missing explicit file is.
func Load(explicit string) (*Settings, error) {
	global, err := loadFirst(GlobalConfigFiles())
	if err != nil {
		return nil, fmt.Errorf("loading global config: %w", err)
	}

	var override *Settings
	if explicit != "" {
		override, err = loadFile(explicit)
		if err != nil {
			return nil, fmt.Errorf("loading config: %w", err)
		}
	}

	merged := merge(global, override)
	ResolveEnvVars(merged)
	applyEnv(merged)
	applyDefaults(merged)
	return merged, nil
}

// Override returns s with the non-zero fields of o applied on top, used
// for command-line flags. Defaults are re-applied to the result.
func (s *Settings) Override(o *Settings) *Settings {
	merged := merge(s, o)
	applyDefaults(merged)
	return merged
}

// loadFirst loads the first existing file of paths. No file yields zero Settings.
func loadFirst(paths []string) (*Settings, error) {
	for _, path := range paths {
		s, err := loadFile(path)
		if errors.Is(err, os.ErrNotExist) {
			continue
		}
		return s, err
	}
	return &Settings{}, nil
}

// loadFile reads Settings from a JSON or YAML file. Returns zero Settings
// alongside the error if the file does not exist.
func loadFile(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return &Settings{}, err
	}

	var s Settings
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &s)
	default:
		err = json.Unmarshal(data, &s)
	}
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return &s, nil
}

// merge overlays override onto base. Non-zero override values win.
func merge(base, override *Settings) *Settings {
	if base == nil {
		base = &Settings{}
	}
	if override == nil {
		result := *base
		return &result
	}

	result := *base

	if override.Instance != "" {
		result.Instance = override.Instance
	}
	if override.Token != "" {
		result.Token = override.Token
	}
	if override.Timeline != "" {
		result.Timeline = override.Timeline
	}
	if override.TickMillis != 0 {
		result.TickMillis = override.TickMillis
	}
	if override.PageSize != 0 {
		result.PageSize = override.PageSize
	}
	if override.Theme != "" {
		result.Theme = override.Theme
	}
	if override.LogLevel != "" {
		result.LogLevel = override.LogLevel
	}
	if override.LogFile != "" {
		result.LogFile = override.LogFile
	}
	if override.Stream {
		result.Stream = true
	}
	if override.MergeRuns != nil {
		v := *override.MergeRuns
		result.MergeRuns = &v
	}

	return &result
}

// applyEnv lets the environment override the token and instance, so
// secrets need not live in config files.
func applyEnv(s *Settings) {
	if v := os.Getenv(EnvToken); v != "" {
		s.Token = v
	}
	if v := os.Getenv(EnvInstance); v != "" {
		s.Instance = v
	}
}

func applyDefaults(s *Settings) {
	if s.Timeline == "" {
		s.Timeline = DefaultTimeline
	}
	if s.TickMillis <= 0 {
		s.TickMillis = DefaultTickMillis
	}
	if s.PageSize <= 0 {
		s.PageSize = DefaultPageSize
	}
	s.Instance = strings.TrimRight(s.Instance, "/")
}

// Validate checks the fields the client cannot work without.
func (s *Settings) Validate() error {
	if s.Instance == "" {
		return ErrNoInstance
	}
	u, err := url.Parse(s.Instance)
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return fmt.Errorf("instance %q is not an http(s) URL", s.Instance)
	}
	switch s.Timeline {
	case TimelineHome, TimelineLocal, TimelinePublic:
	default:
		return fmt.Errorf("unknown timeline %q (want home, local or public)", s.Timeline)
	}
	return nil
}

// Tick returns the redraw tick interval.
func (s *Settings) Tick() time.Duration {
	return time.Duration(s.TickMillis) * time.Millisecond
}

// MergeRunsEnabled reports whether the encoder should merge style runs.
func (s *Settings) MergeRunsEnabled() bool {
	return s.MergeRuns == nil || *s.MergeRuns
}
