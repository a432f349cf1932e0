// ABOUTME: Tests for the bounded buffer pool
// ABOUTME: Recycled buffers come back empty; nil and oversized ones are dropped

package pool

import "testing"

func TestBuffers_GetIsEmpty(t *testing.T) {
	t.Parallel()

	p := New(16, 64)
	buf := p.Get()
	if buf.Cap() < 16 {
		t.Errorf("fresh Cap() = %d, want >= 16", buf.Cap())
	}
	buf.WriteString("frame")
	p.Put(buf)

	again := p.Get()
	defer p.Put(again)
	if again.Len() != 0 {
		t.Errorf("Len() = %d, want 0", again.Len())
	}
}

func TestBuffers_PutDrops(t *testing.T) {
	t.Parallel()

	p := New(8, 32)
	p.Put(nil)

	big := p.Get()
	big.Grow(128)
	p.Put(big)

	// sync.Pool may drop anything, so only assert the oversized buffer
	// never comes back.
	for range 4 {
		if got := p.Get(); got == big {
			t.Fatal("oversized buffer was retained")
		}
	}
}

func TestFrames_Shared(t *testing.T) {
	t.Parallel()

	buf := Frames.Get()
	defer Frames.Put(buf)
	if buf.Len() != 0 {
		t.Errorf("Frames.Get().Len() = %d", buf.Len())
	}
}
