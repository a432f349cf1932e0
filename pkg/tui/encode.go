// ABOUTME: Output encoder: reconstructed rows to one SGR-styled payload
// ABOUTME: Optional style-run merging emits SGR only when the style changes

package tui

import (
	"bytes"
	"strings"

	"github.com/mauromedda/pleroterm/pkg/tui/internal/pool"
	"github.com/mauromedda/pleroterm/pkg/tui/width"
)

const (
	syncBegin     = "\x1b[?2026h"
	syncEnd       = "\x1b[?2026l"
	cursorHome    = "\x1b[H"
	eraseDisplay  = "\x1b[2J"
	sgrReset      = "\x1b[0m"
	lineSeparator = "\r\n"
)

// Encoder turns rows into terminal output.
type Encoder struct {
	// MergeRuns emits a style change only where consecutive cells differ.
	// When false every character carries its full style.
	MergeRuns bool
}

// NewEncoder returns an Encoder with run merging enabled.
func NewEncoder() *Encoder {
	return &Encoder{MergeRuns: true}
}

// Encode returns the complete payload for one frame: the rows drawn from
// the top-left origin over a cleared screen, inside a synchronized update.
func (e *Encoder) Encode(rows []Row) []byte {
	buf := pool.Frames.Get()
	defer pool.Frames.Put(buf)

	buf.WriteString(syncBegin)
	buf.WriteString(sgrReset)
	buf.WriteString(cursorHome)
	buf.WriteString(eraseDisplay)
	e.writeRows(buf, rows)
	buf.WriteString(syncEnd)

	return bytes.Clone(buf.Bytes())
}

// EncodeRows returns only the styled text of rows, starting at screen
// line 0. Consecutive rows are joined by one line separator; a gap of
// unmaterialised rows is crossed with one separator per skipped line so
// every row lands on its own screen line. There is no trailing separator
// and the output ends in the default style.
func (e *Encoder) EncodeRows(rows []Row) []byte {
	buf := pool.Frames.Get()
	defer pool.Frames.Put(buf)

	e.writeRows(buf, rows)
	return bytes.Clone(buf.Bytes())
}

func (e *Encoder) writeRows(buf *bytes.Buffer, rows []Row) {
	var cur Style
	line := 0
	for _, row := range rows {
		for ; line < row.Y; line++ {
			buf.WriteString(lineSeparator)
		}
		covered := 0
		for _, c := range row.Cells {
			if covered > 0 {
				// Column is painted by the previous double-width character.
				covered--
				continue
			}
			if e.MergeRuns {
				if c.Style != cur {
					writeTransition(buf, cur, c.Style)
				}
			} else {
				writeFull(buf, c.Style)
			}
			cur = c.Style

			// Control and zero-width runes would move the cursor or open
			// an escape sequence mid-row; they occupy a blank column.
			r := c.Rune
			w := width.Rune(r)
			if w == 0 {
				r, w = ' ', 1
			}
			buf.WriteRune(r)
			covered = w - 1
		}
	}
	if !cur.IsDefault() {
		buf.WriteString(sgrReset)
	}
}

// writeFull emits a reset followed by every non-default part of st.
func writeFull(buf *bytes.Buffer, st Style) {
	params := []string{"0"}
	params = appendAttrs(params, st.Attrs)
	if st.Fg != ColorDefault {
		params = append(params, st.Fg.fgParam())
	}
	if st.Bg != ColorDefault {
		params = append(params, st.Bg.bgParam())
	}
	writeSGR(buf, params)
}

// writeTransition emits the shortest sequence that turns from into to.
// Removing an attribute has no portable single code, so it goes through
// a full reset.
func writeTransition(buf *bytes.Buffer, from, to Style) {
	if to.IsDefault() {
		buf.WriteString(sgrReset)
		return
	}
	if from.Attrs&^to.Attrs != 0 {
		writeFull(buf, to)
		return
	}

	var params []string
	params = appendAttrs(params, to.Attrs&^from.Attrs)
	if to.Fg != from.Fg {
		params = append(params, to.Fg.fgParam())
	}
	if to.Bg != from.Bg {
		params = append(params, to.Bg.bgParam())
	}
	writeSGR(buf, params)
}

func appendAttrs(params []string, attrs Attr) []string {
	for _, ap := range attrParams {
		if attrs&ap.attr != 0 {
			params = append(params, ap.param)
		}
	}
	return params
}

func writeSGR(buf *bytes.Buffer, params []string) {
	buf.WriteString("\x1b[")
	buf.WriteString(strings.Join(params, ";"))
	buf.WriteByte('m')
}
