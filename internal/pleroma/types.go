// ABOUTME: Wire types for the Mastodon-compatible client API (statuses, accounts, search)
// ABOUTME: Decoded with easyjson (zero-reflection) by the methods in types_easyjson.go

//go:generate easyjson -all types.go

package pleroma

import "time"

// Visibility values accepted by PostStatus.
const (
	VisibilityPublic   = "public"
	VisibilityUnlisted = "unlisted"
	VisibilityPrivate  = "private"
	VisibilityDirect   = "direct"
)

// Account is the subset of an account record the client displays.
type Account struct {
	ID          string `json:"id"`
	Acct        string `json:"acct"`
	DisplayName string `json:"display_name"`
	URL         string `json:"url"`
	Bot         bool   `json:"bot"`
}

// Name returns the display name, or the handle when none is set.
func (a Account) Name() string {
	if a.DisplayName != "" {
		return a.DisplayName
	}
	return a.Acct
}

// Status is one post. Content holds the server's HTML; Text is the same
// content flattened to plain text.
type Status struct {
	ID              string    `json:"id"`
	CreatedAt       time.Time `json:"created_at"`
	InReplyToID     string    `json:"in_reply_to_id"`
	Visibility      string    `json:"visibility"`
	SpoilerText     string    `json:"spoiler_text"`
	URL             string    `json:"url"`
	Content         string    `json:"content"`
	Account         Account   `json:"account"`
	RepliesCount    int       `json:"replies_count"`
	ReblogsCount    int       `json:"reblogs_count"`
	FavouritesCount int       `json:"favourites_count"`
	Favourited      bool      `json:"favourited"`
	Reblogged       bool      `json:"reblogged"`
	Reblog          *Status   `json:"reblog"`

	Text string `json:"-"`
}

// Original returns the reblogged status for a reblog, otherwise s.
func (s *Status) Original() *Status {
	if s.Reblog != nil {
		return s.Reblog
	}
	return s
}

// StatusList is a page of statuses, newest first.
type StatusList []Status

// SearchResult holds the accounts and statuses matching a search query.
type SearchResult struct {
	Accounts []Account `json:"accounts"`
	Statuses StatusList `json:"statuses"`
}

// postRequest is the body of POST /api/v1/statuses.
type postRequest struct {
	Status      string `json:"status"`
	Visibility  string `json:"visibility,omitempty"`
	ContentType string `json:"content_type"`
	Source      string `json:"source"`
}

// errorBody is the JSON error envelope returned on failures.
type errorBody struct {
	Error string `json:"error"`
}
