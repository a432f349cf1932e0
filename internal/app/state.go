// ABOUTME: UI state of the timeline client and its update rules for every message
// ABOUTME: Update is pure with respect to I/O: it returns the backend requests to send

package app

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/mauromedda/pleroterm/internal/message"
	"github.com/mauromedda/pleroterm/internal/pleroma"
	"github.com/mauromedda/pleroterm/internal/timeline"
	"github.com/mauromedda/pleroterm/pkg/tui/fuzzy"
	"github.com/mauromedda/pleroterm/pkg/tui/key"
	"github.com/mauromedda/pleroterm/pkg/tui/theme"
)

// mode selects how keys are interpreted.
type mode int

const (
	modeBrowse mode = iota
	modeFilter
	modeCompose
)

// feed is the cached content of one timeline.
type feed struct {
	statuses pleroma.StatusList
	loaded   bool
	loading  bool
}

// State is owned by the app loop; it is not safe for concurrent use.
type State struct {
	Current  pleroma.Timeline
	Selected int
	Palette  theme.Palette
	PageSize int

	feeds map[pleroma.Timeline]*feed
	mode  mode

	filter      string
	filterDraft string
	draft       string

	me       *pleroma.Account
	live     bool
	liveTL   pleroma.Timeline
	notice   string
	err      string
	now      time.Time
	height   int
	dirty    bool
	visCache []int
	visValid bool
}

// NewState returns the state for a client starting on tl.
func NewState(tl pleroma.Timeline, pageSize int, pal theme.Palette) *State {
	s := &State{
		Current:  tl,
		Palette:  pal,
		PageSize: pageSize,
		feeds:    make(map[pleroma.Timeline]*feed),
		dirty:    true,
	}
	for _, t := range pleroma.Timelines {
		s.feeds[t] = &feed{}
	}
	return s
}

// Start returns the requests issued when the client opens.
func (s *State) Start(hasToken bool) []message.Message {
	reqs := []message.Message{s.refresh()}
	if hasToken {
		reqs = append(reqs, message.CredentialsRequest{})
	}
	return reqs
}

// Dirty reports whether the screen needs redrawing.
func (s *State) Dirty() bool { return s.dirty }

// MarkClean records that the current state has been drawn.
func (s *State) MarkClean() { s.dirty = false }

// Update applies m and returns the requests to send to the backend and
// whether the client should quit.
func (s *State) Update(m message.Message) (reqs []message.Message, quit bool) {
	switch m := m.(type) {
	case message.Input:
		return s.handleKey(m.Key)
	case message.Quit:
		return nil, true
	case message.Tick:
		if m.At.Unix() != s.now.Unix() {
			s.now = m.At
			s.dirty = true
		}
	case message.Resize:
		s.height = m.Height
		s.dirty = true
	case message.TimelineResponse:
		s.applyTimeline(m)
	case message.PostResponse:
		s.applyPost(m)
	case message.DeleteResponse:
		if m.Err != nil {
			s.fail("delete", m.Err)
			break
		}
		s.remove(m.ID)
		s.say("deleted")
	case message.CredentialsResponse:
		if m.Err != nil {
			s.fail("credentials", m.Err)
			break
		}
		s.me = m.Account
		s.say("signed in as @" + m.Account.Acct)
	case message.StreamUpdate:
		s.applyStream(m)
	case message.StreamState:
		s.live, s.liveTL = m.Connected, m.Timeline
		if m.Err != nil {
			s.fail("", m.Err)
		}
		s.dirty = true
	case message.ConfigReloaded:
		if m.Err != nil {
			s.fail("config", m.Err)
			break
		}
		if m.Theme != nil {
			theme.Set(m.Theme)
			s.Palette = m.Theme.Palette
		}
		if m.Settings != nil && m.Settings.PageSize > 0 {
			s.PageSize = m.Settings.PageSize
		}
		s.say("configuration reloaded")
	}
	return nil, false
}

func (s *State) handleKey(k key.Key) ([]message.Message, bool) {
	if k.Type == key.KeyCtrlC {
		return nil, true
	}
	s.dirty = true
	switch s.mode {
	case modeFilter:
		s.editFilter(k)
		return nil, false
	case modeCompose:
		return s.editDraft(k), false
	}

	s.err, s.notice = "", ""
	switch {
	case k.IsRune('q'), k.Type == key.KeyCtrlD:
		return nil, true
	case k.IsRune('j'), k.Type == key.KeyDown:
		s.move(1)
	case k.IsRune('k'), k.Type == key.KeyUp:
		s.move(-1)
	case k.Type == key.KeyPageDown:
		s.move(s.pageStep())
	case k.Type == key.KeyPageUp:
		s.move(-s.pageStep())
	case k.IsRune('g'), k.Type == key.KeyHome:
		s.Selected = 0
	case k.IsRune('G'), k.Type == key.KeyEnd:
		s.Selected = max(len(s.visible())-1, 0)
	case k.Type == key.KeyTab:
		return s.switchTo(s.Current.Next()), false
	case k.IsRune('r'), k.Type == key.KeyCtrlR:
		return []message.Message{s.refresh()}, false
	case k.IsRune('n'):
		return []message.Message{s.newer()}, false
	case k.IsRune('/'):
		s.mode, s.filterDraft = modeFilter, s.filter
	case k.IsRune('c'):
		s.mode, s.draft = modeCompose, ""
	case k.IsRune('d'):
		return s.deleteSelected(), false
	}
	return nil, false
}

func (s *State) editFilter(k key.Key) {
	switch k.Type {
	case key.KeyEnter:
		s.setFilter(s.filterDraft)
		s.mode = modeBrowse
	case key.KeyEscape:
		s.setFilter("")
		s.mode = modeBrowse
	default:
		s.filterDraft = editLine(s.filterDraft, k)
	}
}

func (s *State) editDraft(k key.Key) []message.Message {
	switch k.Type {
	case key.KeyEnter:
		s.mode = modeBrowse
		text := strings.TrimSpace(s.draft)
		s.draft = ""
		if text == "" {
			return nil
		}
		s.say("posting…")
		return []message.Message{message.PostRequest{Text: text}}
	case key.KeyEscape:
		s.mode, s.draft = modeBrowse, ""
	default:
		s.draft = editLine(s.draft, k)
	}
	return nil
}

// editLine applies a line-editing key to text.
func editLine(text string, k key.Key) string {
	switch k.Type {
	case key.KeyRune:
		if !k.Alt {
			return text + string(k.Rune)
		}
	case key.KeyBackspace:
		if r := []rune(text); len(r) > 0 {
			return string(r[:len(r)-1])
		}
	case key.KeyCtrlU:
		return ""
	}
	return text
}

func (s *State) setFilter(pattern string) {
	s.filter = strings.TrimSpace(pattern)
	s.Selected = 0
	s.visValid = false
}

func (s *State) move(delta int) {
	n := len(s.visible())
	s.Selected = min(max(s.Selected+delta, 0), max(n-1, 0))
}

func (s *State) pageStep() int {
	return max(timeline.Capacity(s.height), 1)
}

func (s *State) switchTo(tl pleroma.Timeline) []message.Message {
	s.Current, s.Selected = tl, 0
	s.visValid = false
	if f := s.feeds[tl]; !f.loaded && !f.loading {
		return []message.Message{s.refresh()}
	}
	return nil
}

func (s *State) refresh() message.Message {
	s.feeds[s.Current].loading = true
	return message.TimelineRequest{Timeline: s.Current, Page: pleroma.Page{Limit: s.PageSize}}
}

func (s *State) newer() message.Message {
	f := s.feeds[s.Current]
	if len(f.statuses) == 0 {
		return s.refresh()
	}
	f.loading = true
	return message.TimelineRequest{
		Timeline: s.Current,
		Page:     pleroma.Page{SinceID: f.statuses[0].ID, Limit: s.PageSize},
		Newer:    true,
	}
}

func (s *State) deleteSelected() []message.Message {
	st := s.selected()
	switch {
	case st == nil:
		return nil
	case s.me == nil || st.Account.ID != s.me.ID:
		s.say("only your own posts can be deleted")
		return nil
	}
	s.say("deleting…")
	return []message.Message{message.DeleteRequest{ID: st.ID}}
}

func (s *State) applyTimeline(m message.TimelineResponse) {
	f := s.feeds[m.Timeline]
	f.loading = false
	s.dirty = true
	if m.Err != nil {
		s.fail(string(m.Timeline), m.Err)
		return
	}
	f.loaded = true
	if !m.Newer {
		f.statuses = m.Statuses
		if m.Timeline == s.Current {
			s.Selected = 0
		}
		s.visValid = false
		return
	}
	added := s.prepend(m.Timeline, m.Statuses)
	if m.Timeline == s.Current {
		s.say(fmt.Sprintf("%d new", added))
	}
}

func (s *State) applyPost(m message.PostResponse) {
	if m.Err != nil {
		s.fail("post", m.Err)
		return
	}
	s.say("posted")
	if s.feeds[pleroma.Home].loaded {
		s.prepend(pleroma.Home, pleroma.StatusList{*m.Status})
	}
}

func (s *State) applyStream(m message.StreamUpdate) {
	switch {
	case m.Event.Status != nil:
		if s.feeds[m.Timeline].loaded {
			s.prepend(m.Timeline, pleroma.StatusList{*m.Event.Status})
		}
	case m.Event.DeletedID != "":
		s.remove(m.Event.DeletedID)
	}
}

// prepend adds statuses not already present to the top of tl and keeps
// the selection on the same status. It returns the number added.
func (s *State) prepend(tl pleroma.Timeline, list pleroma.StatusList) int {
	f := s.feeds[tl]
	fresh := make(pleroma.StatusList, 0, len(list))
	for _, st := range list {
		if !slices.ContainsFunc(f.statuses, func(o pleroma.Status) bool { return o.ID == st.ID }) {
			fresh = append(fresh, st)
		}
	}
	if len(fresh) == 0 {
		return 0
	}
	f.statuses = append(fresh, f.statuses...)
	s.visValid = false
	s.dirty = true
	if tl == s.Current && s.Selected > 0 {
		s.Selected += len(s.matching(fresh))
	}
	return len(fresh)
}

// remove deletes the status id from every feed.
func (s *State) remove(id string) {
	for _, f := range s.feeds {
		f.statuses = slices.DeleteFunc(f.statuses, func(st pleroma.Status) bool { return st.ID == id })
	}
	s.visValid = false
	s.dirty = true
	s.move(0)
}

func (s *State) say(notice string) {
	s.notice = notice
	s.dirty = true
}

func (s *State) fail(what string, err error) {
	msg := err.Error()
	switch {
	case errors.Is(err, pleroma.ErrNoToken):
		msg = "an access token is required"
	case pleroma.IsUnauthorized(err):
		msg = "the access token was rejected"
	}
	if what != "" {
		msg = what + ": " + msg
	}
	s.err = msg
	s.dirty = true
}

// visible returns the indexes of the current feed that pass the filter.
func (s *State) visible() []int {
	if !s.visValid {
		s.visCache = s.matching(s.feeds[s.Current].statuses)
		s.visValid = true
	}
	return s.visCache
}

func (s *State) matching(list pleroma.StatusList) []int {
	return fuzzy.Filter(s.filter, len(list), func(i int) string {
		st := list[i].Original()
		return st.Account.Acct + " " + st.Account.DisplayName + " " + st.Text
	})
}

func (s *State) selected() *pleroma.Status {
	vis := s.visible()
	if s.Selected < 0 || s.Selected >= len(vis) {
		return nil
	}
	return &s.feeds[s.Current].statuses[vis[s.Selected]]
}

// View builds the screen for the current state.
func (s *State) View() timeline.View {
	f := s.feeds[s.Current]
	vis := s.visible()
	statuses := make([]*pleroma.Status, len(vis))
	for i, idx := range vis {
		statuses[i] = &f.statuses[idx]
	}

	pos := 0
	if len(vis) > 0 {
		pos = s.Selected + 1
	}
	empty := "no statuses"
	if f.loading {
		empty = "loading…"
	}

	filter := s.filter
	if s.mode == modeFilter {
		filter = s.filterDraft
	}
	return timeline.View{
		Statuses: statuses,
		Selected: s.Selected,
		Palette:  s.Palette,
		Empty:    empty,
		Now:      s.now,
		Bar: timeline.StatusBar{
			Timeline:      string(s.Current),
			Position:      pos,
			Total:         len(vis),
			Loading:       f.loading,
			Stream:        s.live && s.liveTL == s.Current,
			Filter:        filter,
			EditingFilter: s.mode == modeFilter,
			Draft:         s.draft,
			Composing:     s.mode == modeCompose,
			Notice:        s.notice,
			Err:           s.err,
		},
	}
}
