// ABOUTME: Typed event bus relaying backend responses to the app inbox
// ABOUTME: Handlers run in subscription order; Forward bridges the bus to a channel

package eventbus

import (
	"context"
	"sync"
)

// Handler is a callback function for events.
type Handler[T any] func(T)

type subscription[T any] struct {
	id      int
	handler Handler[T]
}

// Bus is a typed event bus that delivers events to registered handlers.
type Bus[T any] struct {
	mu     sync.RWMutex
	subs   []subscription[T]
	nextID int
}

// New creates a new event bus.
func New[T any]() *Bus[T] {
	return &Bus[T]{}
}

// Subscribe registers a handler and returns an unsubscribe function.
// Calling the returned function more than once is harmless.
func (b *Bus[T]) Subscribe(handler Handler[T]) func() {
	b.mu.Lock()
	id := b.nextID
	b.nextID++
	b.subs = append(b.subs, subscription[T]{id: id, handler: handler})
	b.mu.Unlock()

	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		for i, s := range b.subs {
			if s.id == id {
				b.subs = append(b.subs[:i:i], b.subs[i+1:]...)
				return
			}
		}
	}
}

// Publish sends an event to all registered handlers, synchronously and
// in subscription order. Handlers may subscribe or unsubscribe.
func (b *Bus[T]) Publish(event T) {
	b.mu.RLock()
	snapshot := b.subs
	b.mu.RUnlock()

	for _, s := range snapshot {
		s.handler(event)
	}
}

// Forward subscribes a handler that sends every event to ch. A send
// blocks until ch has room or ctx is done; after that events are dropped.
// The returned function unsubscribes.
func (b *Bus[T]) Forward(ctx context.Context, ch chan<- T) func() {
	return b.Subscribe(func(event T) {
		select {
		case ch <- event:
		case <-ctx.Done():
		}
	})
}

// Count returns the number of registered handlers.
func (b *Bus[T]) Count() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subs)
}
