// ABOUTME: ${VAR} and ${VAR:-fallback} substitution for the instance, token, theme and log file settings
// ABOUTME: A bare $VAR is left alone so tokens containing dollar signs survive untouched

package config

import (
	"os"
	"regexp"
)

// refPattern captures the variable name and, when present, the ":-" fallback.
var refPattern = regexp.MustCompile(`\$\{([A-Za-z_][A-Za-z0-9_]*)(:-([^}]*))?\}`)

// ResolveEnvVars substitutes environment references in the settings that
// may carry secrets or host names. The timeline name is never expanded.
func ResolveEnvVars(s *Settings) {
	for _, field := range []*string{&s.Instance, &s.Token, &s.Theme, &s.LogFile} {
		*field = substitute(*field, os.LookupEnv)
	}
}

func expandEnv(s string) string {
	return substitute(s, os.LookupEnv)
}

// substitute replaces each reference using lookup. An unset or empty
// variable yields its fallback, or "" when there is none.
func substitute(s string, lookup func(string) (string, bool)) string {
	if s == "" {
		return s
	}
	return refPattern.ReplaceAllStringFunc(s, func(ref string) string {
		m := refPattern.FindStringSubmatch(ref)
		if v, ok := lookup(m[1]); ok && v != "" {
			return v
		}
		return m[3]
	})
}
