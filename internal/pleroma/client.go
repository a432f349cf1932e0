// ABOUTME: Mastodon-compatible API client for Pleroma instances
// ABOUTME: Timelines, posting, deletion, search and the streaming endpoint

package pleroma

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/mailru/easyjson"

	httpclient "github.com/mauromedda/pleroterm/internal/http"
	"github.com/mauromedda/pleroterm/internal/log"
)

// Source is reported as the posting application.
const Source = "pleroterm"

// maxErrorBody caps how much of a failed response is read for its message.
const maxErrorBody = 4096

// Timeline names one of the readable timelines.
type Timeline string

const (
	Home   Timeline = "home"
	Local  Timeline = "local"
	Public Timeline = "public"
)

// Timelines lists the timelines in cycling order.
var Timelines = []Timeline{Home, Local, Public}

// ParseTimeline converts a configuration value to a Timeline.
func ParseTimeline(s string) (Timeline, error) {
	switch tl := Timeline(strings.ToLower(strings.TrimSpace(s))); tl {
	case Home, Local, Public:
		return tl, nil
	default:
		return "", fmt.Errorf("pleroma: unknown timeline %q", s)
	}
}

// Next returns the timeline after tl in cycling order.
func (tl Timeline) Next() Timeline {
	for i, t := range Timelines {
		if t == tl {
			return Timelines[(i+1)%len(Timelines)]
		}
	}
	return Home
}

func (tl Timeline) needsAuth() bool { return tl == Home }

func (tl Timeline) path() string {
	if tl == Home {
		return "/api/v1/timelines/home"
	}
	return "/api/v1/timelines/public"
}

func (tl Timeline) streamPath() string {
	switch tl {
	case Home:
		return "/api/v1/streaming/user"
	case Local:
		return "/api/v1/streaming/public/local"
	default:
		return "/api/v1/streaming/public"
	}
}

// Page selects a window of a timeline. Zero values are omitted.
type Page struct {
	SinceID string
	MaxID   string
	Limit   int
}

func (p Page) values() url.Values {
	v := url.Values{}
	if p.SinceID != "" {
		v.Set("since_id", p.SinceID)
	}
	if p.MaxID != "" {
		v.Set("max_id", p.MaxID)
	}
	if p.Limit > 0 {
		v.Set("limit", strconv.Itoa(p.Limit))
	}
	return v
}

// Client talks to one instance.
type Client struct {
	api      *httpclient.Client
	hasToken bool
}

// New creates a client for the instance base URL. An empty token limits
// the client to public endpoints.
func New(instance, token string) *Client {
	headers := map[string]string{
		"Accept":     "application/json",
		"User-Agent": Source,
	}
	if token != "" {
		headers["Authorization"] = "Bearer " + token
	}
	return &Client{
		api:      httpclient.NewClient(instance, headers),
		hasToken: token != "",
	}
}

// Instance returns the base URL of the instance.
func (c *Client) Instance() string {
	return c.api.BaseURL()
}

// HasToken reports whether authenticated calls are possible.
func (c *Client) HasToken() bool {
	return c.hasToken
}

// Timeline fetches one page of tl, newest first.
func (c *Client) Timeline(ctx context.Context, tl Timeline, page Page) (StatusList, error) {
	if tl.needsAuth() && !c.hasToken {
		return nil, ErrNoToken
	}
	q := page.values()
	if tl == Local {
		q.Set("local", "true")
	}

	var list StatusList
	if err := c.get(ctx, withQuery(tl.path(), q), &list); err != nil {
		return nil, fmt.Errorf("fetching %s timeline: %w", tl, err)
	}
	for i := range list {
		list[i].flatten()
	}
	return list, nil
}

// HomeTimeline fetches statuses from followed accounts.
func (c *Client) HomeTimeline(ctx context.Context, page Page) (StatusList, error) {
	return c.Timeline(ctx, Home, page)
}

// LocalTimeline fetches public statuses from this instance.
func (c *Client) LocalTimeline(ctx context.Context, page Page) (StatusList, error) {
	return c.Timeline(ctx, Local, page)
}

// PublicTimeline fetches the federated public timeline.
func (c *Client) PublicTimeline(ctx context.Context, page Page) (StatusList, error) {
	return c.Timeline(ctx, Public, page)
}

// PostStatus publishes text as plain text with the given visibility.
// An empty visibility uses the account default.
func (c *Client) PostStatus(ctx context.Context, text, visibility string) (*Status, error) {
	if !c.hasToken {
		return nil, ErrNoToken
	}
	body, err := easyjson.Marshal(postRequest{
		Status:      text,
		Visibility:  visibility,
		ContentType: "text/plain",
		Source:      Source,
	})
	if err != nil {
		return nil, fmt.Errorf("encoding status: %w", err)
	}

	resp, err := c.api.Do(ctx, http.MethodPost, "/api/v1/statuses", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("posting status: %w", err)
	}
	var st Status
	if err := decode(resp, &st); err != nil {
		return nil, fmt.Errorf("posting status: %w", err)
	}
	st.flatten()
	log.Info("pleroma: posted status %s", st.ID)
	return &st, nil
}

// DeleteStatus removes one of the account's statuses.
func (c *Client) DeleteStatus(ctx context.Context, id string) error {
	if !c.hasToken {
		return ErrNoToken
	}
	resp, err := c.api.Do(ctx, http.MethodDelete, "/api/v1/statuses/"+url.PathEscape(id), nil)
	if err != nil {
		return fmt.Errorf("deleting status %s: %w", id, err)
	}
	if err := decode(resp, nil); err != nil {
		return fmt.Errorf("deleting status %s: %w", id, err)
	}
	return nil
}

// VerifyCredentials returns the account the token belongs to.
func (c *Client) VerifyCredentials(ctx context.Context) (*Account, error) {
	if !c.hasToken {
		return nil, ErrNoToken
	}
	var acct Account
	if err := c.get(ctx, "/api/v1/accounts/verify_credentials", &acct); err != nil {
		return nil, fmt.Errorf("verifying credentials: %w", err)
	}
	return &acct, nil
}

// Search finds accounts and statuses matching query, skipping the first
// offset results.
func (c *Client) Search(ctx context.Context, query string, offset int) (*SearchResult, error) {
	q := url.Values{}
	q.Set("q", query)
	if offset > 0 {
		q.Set("offset", strconv.Itoa(offset))
	}

	var res SearchResult
	if err := c.get(ctx, withQuery("/api/v2/search", q), &res); err != nil {
		return nil, fmt.Errorf("searching %q: %w", query, err)
	}
	for i := range res.Statuses {
		res.Statuses[i].flatten()
	}
	return &res, nil
}

func (c *Client) get(ctx context.Context, path string, out easyjson.Unmarshaler) error {
	resp, err := c.api.Do(ctx, http.MethodGet, path, nil)
	if err != nil {
		return err
	}
	return decode(resp, out)
}

// decode closes resp, converting non-2xx responses to *APIError. A nil
// out discards the body.
func decode(resp *http.Response, out easyjson.Unmarshaler) error {
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return readAPIError(resp)
	}
	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := easyjson.UnmarshalFromReader(resp.Body, out); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}

func readAPIError(resp *http.Response) error {
	data, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	apiErr := &APIError{StatusCode: resp.StatusCode}

	var body errorBody
	if err := easyjson.Unmarshal(data, &body); err == nil && body.Error != "" {
		apiErr.Message = body.Error
	} else {
		apiErr.Message = strings.TrimSpace(string(data))
	}
	return apiErr
}

func withQuery(path string, q url.Values) string {
	if len(q) == 0 {
		return path
	}
	return path + "?" + q.Encode()
}

// flatten fills Text from Content, including the reblogged status.
func (s *Status) flatten() {
	s.Text = PlainText(s.Content)
	if s.Reblog != nil {
		s.Reblog.flatten()
	}
}
