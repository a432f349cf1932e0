// ABOUTME: Backend actor: the single consumer of API requests from the app loop
// ABOUTME: Calls the instance client and publishes responses on the message bus

package backend

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/mauromedda/pleroterm/internal/eventbus"
	"github.com/mauromedda/pleroterm/internal/log"
	"github.com/mauromedda/pleroterm/internal/message"
	"github.com/mauromedda/pleroterm/internal/pleroma"
)

// DefaultQueueSize bounds the number of pending requests.
const DefaultQueueSize = 16

// Reconnect backoff for dropped streams.
const (
	streamBackoffMin = time.Second
	streamBackoffMax = 30 * time.Second
)

// ErrQueueFull is returned by Send when the request queue has no room.
var ErrQueueFull = errors.New("backend: request queue full")

// API is the subset of the instance client the actor calls.
type API interface {
	Timeline(ctx context.Context, tl pleroma.Timeline, page pleroma.Page) (pleroma.StatusList, error)
	PostStatus(ctx context.Context, text, visibility string) (*pleroma.Status, error)
	DeleteStatus(ctx context.Context, id string) error
	VerifyCredentials(ctx context.Context) (*pleroma.Account, error)
	Stream(ctx context.Context, tl pleroma.Timeline, fn func(pleroma.StreamEvent) error) error
}

// Actor serialises requests to the instance. Send may be called from any
// goroutine; Run must be running for requests to be served.
type Actor struct {
	api      API
	bus      *eventbus.Bus[message.Message]
	requests chan message.Message
	backoff  func(attempt int) time.Duration
}

// New creates an actor publishing on bus.
func New(api API, bus *eventbus.Bus[message.Message]) *Actor {
	return &Actor{
		api:      api,
		bus:      bus,
		requests: make(chan message.Message, DefaultQueueSize),
		backoff:  streamBackoff,
	}
}

// Send enqueues a request without blocking.
func (a *Actor) Send(req message.Message) error {
	select {
	case a.requests <- req:
		return nil
	default:
		return ErrQueueFull
	}
}

// Run serves requests one at a time until ctx is done.
func (a *Actor) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case req := <-a.requests:
			if resp := a.handle(ctx, req); resp != nil && ctx.Err() == nil {
				a.bus.Publish(resp)
			}
		}
	}
}

func (a *Actor) handle(ctx context.Context, req message.Message) message.Message {
	switch r := req.(type) {
	case message.TimelineRequest:
		list, err := a.api.Timeline(ctx, r.Timeline, r.Page)
		return message.TimelineResponse{Timeline: r.Timeline, Newer: r.Newer, Statuses: list, Err: err}
	case message.PostRequest:
		st, err := a.api.PostStatus(ctx, r.Text, r.Visibility)
		return message.PostResponse{Status: st, Err: err}
	case message.DeleteRequest:
		err := a.api.DeleteStatus(ctx, r.ID)
		return message.DeleteResponse{ID: r.ID, Err: err}
	case message.CredentialsRequest:
		acct, err := a.api.VerifyCredentials(ctx)
		return message.CredentialsResponse{Account: acct, Err: err}
	default:
		log.Warn("backend: ignoring %T", req)
		return nil
	}
}

// Follow streams tl and publishes each event as a StreamUpdate until ctx
// is done. Dropped connections are retried with exponential backoff; a
// missing or rejected token ends the follow after reporting it.
func (a *Actor) Follow(ctx context.Context, tl pleroma.Timeline) error {
	failures := 0
	for {
		connected := false
		err := a.api.Stream(ctx, tl, func(ev pleroma.StreamEvent) error {
			if !connected {
				connected = true
				a.bus.Publish(message.StreamState{Timeline: tl, Connected: true})
			}
			a.bus.Publish(message.StreamUpdate{Timeline: tl, Event: ev})
			return nil
		})
		if ctx.Err() != nil {
			return nil
		}

		log.Warn("backend: %s stream ended: %v", tl, err)
		a.bus.Publish(message.StreamState{Timeline: tl, Err: fmt.Errorf("stream: %w", err)})
		if errors.Is(err, pleroma.ErrNoToken) || pleroma.IsUnauthorized(err) {
			return nil
		}

		// A stream that delivered events starts the schedule over.
		if connected {
			failures = 0
		}
		wait := a.backoff(failures)
		failures++

		select {
		case <-ctx.Done():
			return nil
		case <-time.After(wait):
		}
	}
}

func streamBackoff(attempt int) time.Duration {
	d := streamBackoffMin << min(attempt, 5)
	return min(d, streamBackoffMax)
}
