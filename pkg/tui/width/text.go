// ABOUTME: Column-aware truncation and word wrapping of plain text
// ABOUTME: Widgets use these to measure content before submitting cells

package width

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// Normalize returns s in Unicode normalization form C, so that a base
// character followed by combining marks becomes one code point where
// a precomposed form exists.
func Normalize(s string) string {
	if isPlainASCII(s) {
		return s
	}
	return norm.NFC.String(s)
}

// Truncate shortens s to at most maxWidth columns. When s is cut, tail
// (typically "…") replaces the end; tail itself counts toward maxWidth.
func Truncate(s string, maxWidth int, tail string) string {
	if maxWidth <= 0 {
		return ""
	}
	if String(s) <= maxWidth {
		return s
	}
	tw := String(tail)
	if tw > maxWidth {
		tail, tw = "", 0
	}

	var b strings.Builder
	col := 0
	ForEachCluster(s, func(cluster string, cw int) bool {
		if col+cw > maxWidth-tw {
			return false
		}
		b.WriteString(cluster)
		col += cw
		return true
	})
	b.WriteString(tail)
	return b.String()
}

// Wrap breaks s into lines of at most maxWidth columns, preferring to
// break at whitespace. Words longer than maxWidth are split. Explicit
// newlines always start a new line.
func Wrap(s string, maxWidth int) []string {
	if maxWidth <= 0 {
		return nil
	}

	var lines []string
	for _, para := range strings.Split(s, "\n") {
		lines = append(lines, wrapParagraph(para, maxWidth)...)
	}
	return lines
}

func wrapParagraph(para string, maxWidth int) []string {
	words := strings.FieldsFunc(para, unicode.IsSpace)
	if len(words) == 0 {
		return []string{""}
	}

	var (
		lines []string
		line  strings.Builder
		col   int
	)
	flush := func() {
		lines = append(lines, line.String())
		line.Reset()
		col = 0
	}

	for _, word := range words {
		ww := String(word)
		if col > 0 && col+1+ww <= maxWidth {
			line.WriteByte(' ')
			line.WriteString(word)
			col += 1 + ww
			continue
		}
		if col > 0 {
			flush()
		}
		if ww <= maxWidth {
			line.WriteString(word)
			col = ww
			continue
		}
		// Hard-split a word that cannot fit on any line.
		ForEachCluster(word, func(cluster string, cw int) bool {
			if col > 0 && col+cw > maxWidth {
				flush()
			}
			line.WriteString(cluster)
			col += cw
			return true
		})
	}
	if col > 0 || line.Len() > 0 {
		flush()
	}
	return lines
}
