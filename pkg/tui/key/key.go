// ABOUTME: Key type and ParseKey for bytes read from a terminal in raw mode
// ABOUTME: Covers printable runes, the control keys the client binds, and Alt+rune

package key

import "unicode/utf8"

// Key is one decoded keypress.
type Key struct {
	Type  KeyType
	Rune  rune // set for KeyRune
	Alt   bool
	Ctrl  bool
	Shift bool
}

// KeyType enumerates the keys the client distinguishes.
type KeyType int

const (
	KeyRune KeyType = iota
	KeyEnter
	KeyTab
	KeyBackTab
	KeyBackspace
	KeyDelete
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyHome
	KeyEnd
	KeyPageUp
	KeyPageDown
	KeyEscape
	KeyCtrlC
	KeyCtrlD
	KeyCtrlL
	KeyCtrlR
	KeyCtrlU
	KeyUnknown
)

var typeNames = [...]string{
	KeyRune:      "Rune",
	KeyEnter:     "Enter",
	KeyTab:       "Tab",
	KeyBackTab:   "BackTab",
	KeyBackspace: "Backspace",
	KeyDelete:    "Delete",
	KeyUp:        "Up",
	KeyDown:      "Down",
	KeyLeft:      "Left",
	KeyRight:     "Right",
	KeyHome:      "Home",
	KeyEnd:       "End",
	KeyPageUp:    "PageUp",
	KeyPageDown:  "PageDown",
	KeyEscape:    "Escape",
	KeyCtrlC:     "Ctrl+C",
	KeyCtrlD:     "Ctrl+D",
	KeyCtrlL:     "Ctrl+L",
	KeyCtrlR:     "Ctrl+R",
	KeyCtrlU:     "Ctrl+U",
	KeyUnknown:   "Unknown",
}

func (t KeyType) String() string {
	if t < 0 || int(t) >= len(typeNames) {
		return "Unknown"
	}
	return typeNames[t]
}

// ParseKey decodes one sequence as returned by Split.
func ParseKey(seq string) Key {
	switch {
	case seq == "":
		return Key{Type: KeyUnknown}
	case seq[0] == 0x1b:
		return parseEscape(seq)
	case len(seq) == 1:
		return parseByte(seq[0])
	}

	r, _ := utf8.DecodeRuneInString(seq)
	if r == utf8.RuneError {
		return Key{Type: KeyUnknown}
	}
	return Key{Type: KeyRune, Rune: r}
}

func parseByte(b byte) Key {
	switch b {
	case '\r', '\n':
		return Key{Type: KeyEnter}
	case '\t':
		return Key{Type: KeyTab}
	case 0x7f, 0x08:
		return Key{Type: KeyBackspace}
	case 0x1b:
		return Key{Type: KeyEscape}
	case 0x03:
		return Key{Type: KeyCtrlC, Ctrl: true}
	case 0x04:
		return Key{Type: KeyCtrlD, Ctrl: true}
	case 0x0c:
		return Key{Type: KeyCtrlL, Ctrl: true}
	case 0x12:
		return Key{Type: KeyCtrlR, Ctrl: true}
	case 0x15:
		return Key{Type: KeyCtrlU, Ctrl: true}
	}
	if b >= 0x20 && b < 0x7f {
		return Key{Type: KeyRune, Rune: rune(b)}
	}
	return Key{Type: KeyUnknown}
}

// String returns a label for debug logs, modifiers first: "Ctrl+Up",
// "Alt+x". Modifiers implied by the type are not repeated.
func (k Key) String() string {
	var label string
	if k.Ctrl && (k.Type < KeyCtrlC || k.Type > KeyCtrlU) {
		label += "Ctrl+"
	}
	if k.Alt {
		label += "Alt+"
	}
	if k.Shift && k.Type != KeyBackTab {
		label += "Shift+"
	}
	if k.Type == KeyRune {
		return label + string(k.Rune)
	}
	return label + k.Type.String()
}

// IsRune reports whether k is the unmodified printable rune r.
func (k Key) IsRune(r rune) bool {
	return k.Type == KeyRune && k.Rune == r && !k.Alt
}
