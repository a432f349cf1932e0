// ABOUTME: Escape sequence handling on top of charmbracelet/x/ansi's parser
// ABOUTME: StripANSI drops every sequence; SkipEscape finds where one sequence ends

package width

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// StripANSI removes all escape sequences from s. Strings without ESC are
// returned as is.
func StripANSI(s string) string {
	if strings.IndexByte(s, '\x1b') < 0 {
		return s
	}
	return ansi.Strip(s)
}

// SkipEscape returns the index just past the escape sequence that starts
// at s[i]. If s[i] is not ESC, i is returned unchanged; a truncated
// sequence runs to the end of s.
func SkipEscape(s string, i int) int {
	if i >= len(s) || s[i] != '\x1b' {
		return i
	}
	_, _, n, _ := ansi.DecodeSequence(s[i:], ansi.NormalState, nil)
	return i + max(n, 1)
}
