// ABOUTME: JSON formatter for print mode: one document per run, written with easyjson's jwriter
// ABOUTME: Statuses are flattened to plain text and reblogs name the account that boosted them

package print

import (
	"io"
	"time"

	"github.com/mailru/easyjson/jwriter"

	"github.com/mauromedda/pleroterm/internal/pleroma"
)

// jsonFormatter writes a single JSON object followed by a newline.
type jsonFormatter struct {
	out io.Writer
}

func (f *jsonFormatter) timeline(tl pleroma.Timeline, statuses pleroma.StatusList) error {
	w := jwriter.Writer{}
	w.RawString(`{"timeline":`)
	w.String(string(tl))
	w.RawString(`,"statuses":`)
	encodeStatuses(&w, statuses)
	w.RawString("}\n")
	return f.flush(&w)
}

func (f *jsonFormatter) search(query string, res *pleroma.SearchResult) error {
	w := jwriter.Writer{}
	w.RawString(`{"query":`)
	w.String(query)
	w.RawString(`,"accounts":[`)
	for i, a := range res.Accounts {
		if i > 0 {
			w.RawByte(',')
		}
		encodeAccount(&w, a)
	}
	w.RawString(`],"statuses":`)
	encodeStatuses(&w, res.Statuses)
	w.RawString("}\n")
	return f.flush(&w)
}

func (f *jsonFormatter) flush(w *jwriter.Writer) error {
	if w.Error != nil {
		return w.Error
	}
	_, err := w.DumpTo(f.out)
	return err
}

func encodeAccount(w *jwriter.Writer, a pleroma.Account) {
	w.RawString(`{"id":`)
	w.String(a.ID)
	w.RawString(`,"acct":`)
	w.String(a.Acct)
	w.RawString(`,"display_name":`)
	w.String(a.DisplayName)
	if a.URL != "" {
		w.RawString(`,"url":`)
		w.String(a.URL)
	}
	if a.Bot {
		w.RawString(`,"bot":true`)
	}
	w.RawByte('}')
}

func encodeStatuses(w *jwriter.Writer, statuses pleroma.StatusList) {
	w.RawByte('[')
	for i := range statuses {
		if i > 0 {
			w.RawByte(',')
		}
		encodeStatus(w, &statuses[i])
	}
	w.RawByte(']')
}

// encodeStatus writes the original of a reblog with "reblogged_by" set.
func encodeStatus(w *jwriter.Writer, s *pleroma.Status) {
	st := s.Original()

	w.RawString(`{"id":`)
	w.String(st.ID)
	if !st.CreatedAt.IsZero() {
		w.RawString(`,"created_at":`)
		w.String(st.CreatedAt.UTC().Format(time.RFC3339))
	}
	w.RawString(`,"account":`)
	encodeAccount(w, st.Account)
	if st != s {
		w.RawString(`,"reblogged_by":`)
		w.String(s.Account.Acct)
	}
	if st.InReplyToID != "" {
		w.RawString(`,"in_reply_to_id":`)
		w.String(st.InReplyToID)
	}
	if st.SpoilerText != "" {
		w.RawString(`,"spoiler_text":`)
		w.String(st.SpoilerText)
	}
	w.RawString(`,"text":`)
	w.String(st.Text)
	if st.URL != "" {
		w.RawString(`,"url":`)
		w.String(st.URL)
	}
	w.RawString(`,"replies_count":`)
	w.Int(st.RepliesCount)
	w.RawString(`,"reblogs_count":`)
	w.Int(st.ReblogsCount)
	w.RawString(`,"favourites_count":`)
	w.Int(st.FavouritesCount)
	w.RawString(`,"favourited":`)
	w.Bool(st.Favourited)
	w.RawString(`,"reblogged":`)
	w.Bool(st.Reblogged)
	w.RawByte('}')
}
