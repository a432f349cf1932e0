// ABOUTME: Tests for Split: multi-key reads, escape boundaries, truncated sequences
// ABOUTME: Every split element must round-trip through ParseKey to the expected key

package key

import (
	"slices"
	"testing"
)

func TestSplit(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		data string
		want []string
	}{
		{"empty", "", nil},
		{"single rune", "j", []string{"j"}},
		{"typed burst", "jjk", []string{"j", "j", "k"}},
		{"arrows", "\x1b[A\x1b[B", []string{"\x1b[A", "\x1b[B"}},
		{"ss3 then rune", "\x1bOAq", []string{"\x1bOA", "q"}},
		{"page down", "\x1b[6~x", []string{"\x1b[6~", "x"}},
		{"lone escape", "\x1b", []string{"\x1b"}},
		{"double escape", "\x1b\x1b", []string{"\x1b", "\x1b"}},
		{"alt rune", "\x1bjk", []string{"\x1bj", "k"}},
		{"utf8", "añ", []string{"a", "ñ"}},
		{"truncated csi", "\x1b[1", []string{"\x1b[1"}},
		{"enter and ctrl", "/\r\x03", []string{"/", "\r", "\x03"}},
		{"invalid utf8", "\xffa", []string{"\xff", "a"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := Split(tt.data); !slices.Equal(got, tt.want) {
				t.Errorf("Split(%q) = %q, want %q", tt.data, got, tt.want)
			}
		})
	}
}

func TestSplit_ParsesEachKey(t *testing.T) {
	t.Parallel()

	want := []KeyType{KeyDown, KeyRune, KeyUp, KeyEnter, KeyCtrlC}
	var got []KeyType
	for _, seq := range Split("\x1b[Bj\x1bOA\r\x03") {
		got = append(got, ParseKey(seq).Type)
	}
	if !slices.Equal(got, want) {
		t.Errorf("key types = %v, want %v", got, want)
	}
}
