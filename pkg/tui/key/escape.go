// ABOUTME: Decoding of ESC-prefixed input: CSI and SS3 cursor keys, tilde keys, Alt+rune
// ABOUTME: xterm modifier parameters (ESC [ 1 ; m X) set Shift, Alt and Ctrl on the key

package key

import (
	"strconv"
	"strings"
	"unicode/utf8"
)

// finalKeys maps the final byte of CSI/SS3 cursor sequences.
var finalKeys = map[byte]KeyType{
	'A': KeyUp,
	'B': KeyDown,
	'C': KeyRight,
	'D': KeyLeft,
	'H': KeyHome,
	'F': KeyEnd,
}

// tildeKeys maps the number of ESC [ n ~ sequences. 1/7 and 4/8 are the
// rxvt and linux console spellings of Home and End.
var tildeKeys = map[int]KeyType{
	1: KeyHome,
	3: KeyDelete,
	4: KeyEnd,
	5: KeyPageUp,
	6: KeyPageDown,
	7: KeyHome,
	8: KeyEnd,
}

func parseEscape(seq string) Key {
	if len(seq) == 1 {
		return Key{Type: KeyEscape}
	}

	switch rest := seq[1:]; {
	case rest[0] == '[' && len(rest) > 1:
		return parseCSI(rest[1:])
	case rest[0] == 'O' && len(rest) == 2:
		if t, ok := finalKeys[rest[1]]; ok {
			return Key{Type: t}
		}
	default:
		r, n := utf8.DecodeRuneInString(rest)
		if n == len(rest) && r != utf8.RuneError && r >= 0x20 && r != 0x7f {
			return Key{Type: KeyRune, Rune: r, Alt: true}
		}
	}
	return Key{Type: KeyUnknown}
}

// parseCSI decodes the part of a CSI sequence after "ESC [".
func parseCSI(body string) Key {
	final := body[len(body)-1]
	params := strings.Split(body[:len(body)-1], ";")

	var k Key
	switch {
	case final == 'Z' && body == "Z":
		return Key{Type: KeyBackTab, Shift: true}
	case final == '~':
		n, err := strconv.Atoi(params[0])
		t, ok := tildeKeys[n]
		if err != nil || !ok {
			return Key{Type: KeyUnknown}
		}
		k.Type = t
	default:
		t, ok := finalKeys[final]
		if !ok || (params[0] != "" && params[0] != "1") {
			return Key{Type: KeyUnknown}
		}
		k.Type = t
	}

	if len(params) == 2 {
		applyModifier(&k, params[1])
	}
	return k
}

// applyModifier decodes the xterm modifier parameter: 1 + a bitmask of
// Shift (1), Alt (2) and Ctrl (4).
func applyModifier(k *Key, param string) {
	m, err := strconv.Atoi(param)
	if err != nil || m < 1 {
		return
	}
	bits := m - 1
	k.Shift = bits&1 != 0
	k.Alt = bits&2 != 0
	k.Ctrl = bits&4 != 0
}
