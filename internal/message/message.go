// ABOUTME: Typed messages exchanged between producers, the backend actor and the app loop
// ABOUTME: Requests flow to the backend; responses and UI events flow into the app inbox

package message

import (
	"time"

	"github.com/mauromedda/pleroterm/internal/config"
	"github.com/mauromedda/pleroterm/internal/pleroma"
	"github.com/mauromedda/pleroterm/pkg/tui/key"
	"github.com/mauromedda/pleroterm/pkg/tui/theme"
)

// Message is implemented by every value carried on the bus or the inbox.
type Message interface {
	message()
}

// TimelineRequest asks the backend for one page of a timeline. Newer
// marks a request for posts after the newest one already shown.
type TimelineRequest struct {
	Timeline pleroma.Timeline
	Page     pleroma.Page
	Newer    bool
}

// TimelineResponse answers a TimelineRequest.
type TimelineResponse struct {
	Timeline pleroma.Timeline
	Newer    bool
	Statuses pleroma.StatusList
	Err      error
}

// PostRequest asks the backend to publish a status.
type PostRequest struct {
	Text       string
	Visibility string
}

// PostResponse answers a PostRequest.
type PostResponse struct {
	Status *pleroma.Status
	Err    error
}

// DeleteRequest asks the backend to delete one of the account's statuses.
type DeleteRequest struct {
	ID string
}

// DeleteResponse answers a DeleteRequest.
type DeleteResponse struct {
	ID  string
	Err error
}

// CredentialsRequest asks the backend which account the token belongs to.
type CredentialsRequest struct{}

// CredentialsResponse answers a CredentialsRequest.
type CredentialsResponse struct {
	Account *pleroma.Account
	Err     error
}

// StreamUpdate carries one event from the streaming API.
type StreamUpdate struct {
	Timeline pleroma.Timeline
	Event    pleroma.StreamEvent
}

// StreamState reports that a stream connected or dropped.
type StreamState struct {
	Timeline  pleroma.Timeline
	Connected bool
	Err       error
}

// Tick is the redraw clock.
type Tick struct {
	At time.Time
}

// Input is one key read from the terminal.
type Input struct {
	Key key.Key
}

// Resize reports a new terminal size.
type Resize struct {
	Width, Height int
}

// ConfigReloaded carries settings re-read after a config or theme file changed.
type ConfigReloaded struct {
	Settings *config.Settings
	Theme    *theme.Theme
	Err      error
}

// Quit stops the app loop.
type Quit struct{}

func (TimelineRequest) message()     {}
func (TimelineResponse) message()    {}
func (PostRequest) message()         {}
func (PostResponse) message()        {}
func (DeleteRequest) message()       {}
func (DeleteResponse) message()      {}
func (CredentialsRequest) message()  {}
func (CredentialsResponse) message() {}
func (StreamUpdate) message()        {}
func (StreamState) message()         {}
func (Tick) message()                {}
func (Input) message()               {}
func (Resize) message()              {}
func (ConfigReloaded) message()      {}
func (Quit) message()                {}
