// ABOUTME: Recycled byte buffers for frame encoding, bounded by a retention cap
// ABOUTME: Frames is shared by the encoder; New builds a pool with other sizes for tests

package pool

import (
	"bytes"
	"sync"
)

// Buffers hands out empty buffers and takes them back unless they grew
// past the retention cap.
type Buffers struct {
	p      sync.Pool
	maxCap int
}

// New returns a pool whose fresh buffers start with initial bytes of
// capacity and which drops returned buffers larger than maxCap.
func New(initial, maxCap int) *Buffers {
	b := &Buffers{maxCap: maxCap}
	b.p.New = func() any { return bytes.NewBuffer(make([]byte, 0, initial)) }
	return b
}

// Frames backs Encoder: a full-screen payload is rebuilt on every draw.
var Frames = New(4096, 1<<20)

// Get returns an empty buffer.
func (b *Buffers) Get() *bytes.Buffer {
	buf := b.p.Get().(*bytes.Buffer)
	buf.Reset()
	return buf
}

// Put recycles buf. Nil and oversized buffers are dropped.
func (b *Buffers) Put(buf *bytes.Buffer) {
	if buf == nil || buf.Cap() > b.maxCap {
		return
	}
	b.p.Put(buf)
}
