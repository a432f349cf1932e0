// ABOUTME: Split breaks one raw-mode read into individual key sequences
// ABOUTME: Recognises CSI and SS3 escapes, Alt+rune pairs, lone ESC and UTF-8 runes

package key

import "unicode/utf8"

// Split returns the key sequences contained in data, in order. A read
// from a terminal in raw mode may carry several keys at once (pasting,
// key repeat); each returned element can be passed to ParseKey.
// Invalid UTF-8 bytes are returned one at a time.
func Split(data string) []string {
	var seqs []string
	for len(data) > 0 {
		n := sequenceLen(data)
		seqs = append(seqs, data[:n])
		data = data[n:]
	}
	return seqs
}

// sequenceLen returns the byte length of the key sequence at the start of data.
func sequenceLen(data string) int {
	if data[0] != 0x1b {
		_, n := utf8.DecodeRuneInString(data)
		return n
	}
	if len(data) == 1 || data[1] == 0x1b {
		return 1
	}

	switch data[1] {
	case '[':
		// CSI: parameter and intermediate bytes, then a final byte in 0x40..0x7e.
		for i := 2; i < len(data); i++ {
			if data[i] >= 0x40 && data[i] <= 0x7e {
				return i + 1
			}
		}
		return len(data)
	case 'O':
		return min(3, len(data))
	default:
		_, n := utf8.DecodeRuneInString(data[1:])
		return 1 + n
	}
}
