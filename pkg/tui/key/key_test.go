// ABOUTME: Tests for ParseKey grouped by input family: bytes, CSI/SS3, modified and rejected sequences
// ABOUTME: Also covers the debug labels of Key and KeyType and the IsRune helper

package key

import "testing"

type parseCase struct {
	in   string
	want Key
}

func runParseCases(t *testing.T, cases []parseCase) {
	t.Helper()

	for _, c := range cases {
		if got := ParseKey(c.in); got != c.want {
			t.Errorf("ParseKey(%q) = %+v, want %+v", c.in, got, c.want)
		}
	}
}

func rk(r rune) Key { return Key{Type: KeyRune, Rune: r} }

func TestParseKey_Bytes(t *testing.T) {
	t.Parallel()

	runParseCases(t, []parseCase{
		{"", Key{Type: KeyUnknown}},
		{"a", rk('a')},
		{"Z", rk('Z')},
		{"7", rk('7')},
		{" ", rk(' ')},
		{"~", rk('~')},
		{"ß", rk('ß')},
		{"你", rk('你')},
		{"\xff\xfe", Key{Type: KeyUnknown}},
		{"\r", Key{Type: KeyEnter}},
		{"\n", Key{Type: KeyEnter}},
		{"\t", Key{Type: KeyTab}},
		{"\x7f", Key{Type: KeyBackspace}},
		{"\x08", Key{Type: KeyBackspace}},
		{"\x1b", Key{Type: KeyEscape}},
		{"\x03", Key{Type: KeyCtrlC, Ctrl: true}},
		{"\x04", Key{Type: KeyCtrlD, Ctrl: true}},
		{"\x0c", Key{Type: KeyCtrlL, Ctrl: true}},
		{"\x12", Key{Type: KeyCtrlR, Ctrl: true}},
		{"\x15", Key{Type: KeyCtrlU, Ctrl: true}},
		{"\x07", Key{Type: KeyUnknown}},
	})
}

func TestParseKey_Sequences(t *testing.T) {
	t.Parallel()

	runParseCases(t, []parseCase{
		{"\x1b[A", Key{Type: KeyUp}},
		{"\x1b[B", Key{Type: KeyDown}},
		{"\x1b[C", Key{Type: KeyRight}},
		{"\x1b[D", Key{Type: KeyLeft}},
		{"\x1b[H", Key{Type: KeyHome}},
		{"\x1b[F", Key{Type: KeyEnd}},
		{"\x1bOA", Key{Type: KeyUp}},
		{"\x1bOD", Key{Type: KeyLeft}},
		{"\x1bOH", Key{Type: KeyHome}},
		{"\x1bOF", Key{Type: KeyEnd}},
		{"\x1b[1~", Key{Type: KeyHome}},
		{"\x1b[7~", Key{Type: KeyHome}},
		{"\x1b[3~", Key{Type: KeyDelete}},
		{"\x1b[4~", Key{Type: KeyEnd}},
		{"\x1b[8~", Key{Type: KeyEnd}},
		{"\x1b[5~", Key{Type: KeyPageUp}},
		{"\x1b[6~", Key{Type: KeyPageDown}},
		{"\x1b[Z", Key{Type: KeyBackTab, Shift: true}},
		{"\x1bj", Key{Type: KeyRune, Rune: 'j', Alt: true}},
	})
}

func TestParseKey_Modifiers(t *testing.T) {
	t.Parallel()

	runParseCases(t, []parseCase{
		{"\x1b[1;2B", Key{Type: KeyDown, Shift: true}},
		{"\x1b[1;3C", Key{Type: KeyRight, Alt: true}},
		{"\x1b[1;5A", Key{Type: KeyUp, Ctrl: true}},
		{"\x1b[1;6F", Key{Type: KeyEnd, Ctrl: true, Shift: true}},
		{"\x1b[5;3~", Key{Type: KeyPageUp, Alt: true}},
		{"\x1b[3;5~", Key{Type: KeyDelete, Ctrl: true}},
	})
}

func TestParseKey_Rejected(t *testing.T) {
	t.Parallel()

	runParseCases(t, []parseCase{
		{"\x1b[99Z", Key{Type: KeyUnknown}},
		{"\x1b[42~", Key{Type: KeyUnknown}},
		{"\x1b[2A", Key{Type: KeyUnknown}},
		{"\x1bOX", Key{Type: KeyUnknown}},
	})
}

func TestKey_String(t *testing.T) {
	t.Parallel()

	labels := map[Key]string{
		rk('a'):                                 "a",
		{Type: KeyRune, Rune: 'x', Alt: true}:   "Alt+x",
		{Type: KeyEnter}:                        "Enter",
		{Type: KeyCtrlC, Ctrl: true}:            "Ctrl+C",
		{Type: KeyUp, Ctrl: true}:               "Ctrl+Up",
		{Type: KeyEnd, Ctrl: true, Shift: true}: "Ctrl+Shift+End",
		{Type: KeyBackTab, Shift: true}:         "BackTab",
		{Type: KeyUnknown}:                      "Unknown",
	}
	for k, want := range labels {
		if got := k.String(); got != want {
			t.Errorf("%+v.String() = %q, want %q", k, got, want)
		}
	}

	if got := KeyPageDown.String(); got != "PageDown" {
		t.Errorf("KeyPageDown.String() = %q", got)
	}
	if got := KeyType(99).String(); got != "Unknown" {
		t.Errorf("out of range String() = %q", got)
	}
}

func TestKey_IsRune(t *testing.T) {
	t.Parallel()

	if !ParseKey("q").IsRune('q') {
		t.Error("q should match IsRune('q')")
	}
	if ParseKey("\x1bq").IsRune('q') {
		t.Error("Alt+q should not match IsRune('q')")
	}
	if ParseKey("\r").IsRune('\r') {
		t.Error("Enter is not a rune key")
	}
}
