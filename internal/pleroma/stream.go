// ABOUTME: Streaming API consumer delivering new and deleted statuses as they happen
// ABOUTME: Reads server-sent events until the context ends or the connection drops

package pleroma

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/mailru/easyjson"

	"github.com/mauromedda/pleroterm/internal/log"
)

// StreamEvent is one decoded event from the streaming API. Exactly one
// of Status (an "update") or DeletedID (a "delete") is set.
type StreamEvent struct {
	Status    *Status
	DeletedID string
}

// Stream follows tl and calls fn for each update or deletion. It returns
// nil when ctx is cancelled, the error from fn if fn fails, and
// io.ErrUnexpectedEOF when the server closes the stream.
func (c *Client) Stream(ctx context.Context, tl Timeline, fn func(StreamEvent) error) error {
	if tl.needsAuth() && !c.hasToken {
		return ErrNoToken
	}

	reader, resp, err := c.api.Stream(ctx, tl.streamPath())
	if err != nil {
		if ctx.Err() != nil {
			return nil
		}
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return readAPIError(resp)
	}
	log.Info("pleroma: streaming %s timeline", tl)

	for {
		ev, err := reader.Next()
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			if errors.Is(err, io.EOF) {
				return io.ErrUnexpectedEOF
			}
			return fmt.Errorf("reading %s stream: %w", tl, err)
		}

		var out StreamEvent
		switch ev.Type {
		case "update":
			var st Status
			if err := easyjson.Unmarshal([]byte(ev.Data), &st); err != nil {
				log.Warn("pleroma: skipping malformed update: %v", err)
				continue
			}
			st.flatten()
			out.Status = &st
		case "delete":
			out.DeletedID = strings.TrimSpace(ev.Data)
		default:
			log.Debug("pleroma: ignoring stream event %q", ev.Type)
			continue
		}

		if err := fn(out); err != nil {
			return err
		}
	}
}
