// ABOUTME: Server-Sent Events parser for the instance streaming API
// ABOUTME: Supports event, data and id fields, multi-line data, and heartbeat comments

package sse

import (
	"bufio"
	"io"
	"strings"
)

// Event represents a single Server-Sent Event.
type Event struct {
	Type string
	Data string
	ID   string
}

// Reader parses Server-Sent Events from an io.Reader.
type Reader struct {
	scanner    *bufio.Scanner
	heartbeats int
}

const maxLineSize = 1024 * 1024

// NewReader creates a new SSE reader from the given io.Reader.
func NewReader(r io.Reader) *Reader {
	s := bufio.NewScanner(r)
	s.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	return &Reader{scanner: s}
}

// Heartbeats returns the number of comment lines seen so far. Servers send
// them to keep idle streams open.
func (r *Reader) Heartbeats() int {
	return r.heartbeats
}

// Next reads and returns the next SSE event.
// Returns nil, io.EOF when the stream ends.
func (r *Reader) Next() (*Event, error) {
	var ev Event
	var data []string
	pending := false

	for r.scanner.Scan() {
		line := r.scanner.Text()

		switch {
		case line == "":
			if pending {
				ev.Data = strings.Join(data, "\n")
				return &ev, nil
			}
		case line[0] == ':':
			r.heartbeats++
		default:
			field, value := parseLine(line)
			switch field {
			case "event":
				ev.Type = value
				pending = true
			case "data":
				data = append(data, value)
				pending = true
			case "id":
				ev.ID = value
				pending = true
			}
		}
	}

	if err := r.scanner.Err(); err != nil {
		return nil, err
	}
	if pending {
		ev.Data = strings.Join(data, "\n")
		return &ev, nil
	}
	return nil, io.EOF
}

// parseLine splits an SSE line into field name and value, dropping one
// optional space after the colon.
func parseLine(line string) (string, string) {
	field, value, found := strings.Cut(line, ":")
	if !found {
		return line, ""
	}
	return field, strings.TrimPrefix(value, " ")
}
