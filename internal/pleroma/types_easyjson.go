// ABOUTME: easyjson (un)marshalers for the API wire types
// ABOUTME: Unknown fields are skipped; null values leave the zero value in place

package pleroma

import (
	"time"

	"github.com/mailru/easyjson"
	"github.com/mailru/easyjson/jlexer"
	"github.com/mailru/easyjson/jwriter"
)

var (
	_ easyjson.Unmarshaler = (*Status)(nil)
	_ easyjson.Unmarshaler = (*StatusList)(nil)
	_ easyjson.Unmarshaler = (*Account)(nil)
	_ easyjson.Unmarshaler = (*SearchResult)(nil)
	_ easyjson.Unmarshaler = (*errorBody)(nil)
	_ easyjson.Marshaler   = postRequest{}
)

func easyjsonDecodeAccount(in *jlexer.Lexer, out *Account) {
	isTopLevel := in.IsStart()
	if in.IsNull() {
		if isTopLevel {
			in.Consumed()
		}
		in.Skip()
		return
	}
	in.Delim('{')
	for !in.IsDelim('}') {
		key := in.UnsafeFieldName(false)
		in.WantColon()
		if in.IsNull() {
			in.Skip()
			in.WantComma()
			continue
		}
		switch key {
		case "id":
			out.ID = in.String()
		case "acct":
			out.Acct = in.String()
		case "display_name":
			out.DisplayName = in.String()
		case "url":
			out.URL = in.String()
		case "bot":
			out.Bot = in.Bool()
		default:
			in.SkipRecursive()
		}
		in.WantComma()
	}
	in.Delim('}')
	if isTopLevel {
		in.Consumed()
	}
}

// UnmarshalEasyJSON supports easyjson.Unmarshaler interface
func (v *Account) UnmarshalEasyJSON(l *jlexer.Lexer) {
	easyjsonDecodeAccount(l, v)
}

// UnmarshalJSON supports json.Unmarshaler interface
func (v *Account) UnmarshalJSON(data []byte) error {
	r := jlexer.Lexer{Data: data}
	easyjsonDecodeAccount(&r, v)
	return r.Error()
}

func easyjsonDecodeStatus(in *jlexer.Lexer, out *Status) {
	isTopLevel := in.IsStart()
	if in.IsNull() {
		if isTopLevel {
			in.Consumed()
		}
		in.Skip()
		return
	}
	in.Delim('{')
	for !in.IsDelim('}') {
		key := in.UnsafeFieldName(false)
		in.WantColon()
		if in.IsNull() {
			in.Skip()
			in.WantComma()
			continue
		}
		switch key {
		case "id":
			out.ID = in.String()
		case "created_at":
			if t, err := time.Parse(time.RFC3339, in.String()); err != nil {
				in.AddError(err)
			} else {
				out.CreatedAt = t
			}
		case "in_reply_to_id":
			out.InReplyToID = in.String()
		case "visibility":
			out.Visibility = in.String()
		case "spoiler_text":
			out.SpoilerText = in.String()
		case "url":
			out.URL = in.String()
		case "content":
			out.Content = in.String()
		case "account":
			easyjsonDecodeAccount(in, &out.Account)
		case "replies_count":
			out.RepliesCount = in.Int()
		case "reblogs_count":
			out.ReblogsCount = in.Int()
		case "favourites_count":
			out.FavouritesCount = in.Int()
		case "favourited":
			out.Favourited = in.Bool()
		case "reblogged":
			out.Reblogged = in.Bool()
		case "reblog":
			if out.Reblog == nil {
				out.Reblog = new(Status)
			}
			easyjsonDecodeStatus(in, out.Reblog)
		default:
			in.SkipRecursive()
		}
		in.WantComma()
	}
	in.Delim('}')
	if isTopLevel {
		in.Consumed()
	}
}

// UnmarshalEasyJSON supports easyjson.Unmarshaler interface
func (v *Status) UnmarshalEasyJSON(l *jlexer.Lexer) {
	easyjsonDecodeStatus(l, v)
}

// UnmarshalJSON supports json.Unmarshaler interface
func (v *Status) UnmarshalJSON(data []byte) error {
	r := jlexer.Lexer{Data: data}
	easyjsonDecodeStatus(&r, v)
	return r.Error()
}

func easyjsonDecodeStatusList(in *jlexer.Lexer, out *StatusList) {
	isTopLevel := in.IsStart()
	if in.IsNull() {
		in.Skip()
		*out = nil
	} else {
		in.Delim('[')
		if *out == nil {
			if !in.IsDelim(']') {
				*out = make(StatusList, 0, 20)
			} else {
				*out = StatusList{}
			}
		} else {
			*out = (*out)[:0]
		}
		for !in.IsDelim(']') {
			var v Status
			easyjsonDecodeStatus(in, &v)
			*out = append(*out, v)
			in.WantComma()
		}
		in.Delim(']')
	}
	if isTopLevel {
		in.Consumed()
	}
}

// UnmarshalEasyJSON supports easyjson.Unmarshaler interface
func (v *StatusList) UnmarshalEasyJSON(l *jlexer.Lexer) {
	easyjsonDecodeStatusList(l, v)
}

// UnmarshalJSON supports json.Unmarshaler interface
func (v *StatusList) UnmarshalJSON(data []byte) error {
	r := jlexer.Lexer{Data: data}
	easyjsonDecodeStatusList(&r, v)
	return r.Error()
}

func easyjsonDecodeSearchResult(in *jlexer.Lexer, out *SearchResult) {
	isTopLevel := in.IsStart()
	if in.IsNull() {
		if isTopLevel {
			in.Consumed()
		}
		in.Skip()
		return
	}
	in.Delim('{')
	for !in.IsDelim('}') {
		key := in.UnsafeFieldName(false)
		in.WantColon()
		if in.IsNull() {
			in.Skip()
			in.WantComma()
			continue
		}
		switch key {
		case "accounts":
			in.Delim('[')
			out.Accounts = out.Accounts[:0]
			for !in.IsDelim(']') {
				var v Account
				easyjsonDecodeAccount(in, &v)
				out.Accounts = append(out.Accounts, v)
				in.WantComma()
			}
			in.Delim(']')
		case "statuses":
			easyjsonDecodeStatusList(in, &out.Statuses)
		default:
			in.SkipRecursive()
		}
		in.WantComma()
	}
	in.Delim('}')
	if isTopLevel {
		in.Consumed()
	}
}

// UnmarshalEasyJSON supports easyjson.Unmarshaler interface
func (v *SearchResult) UnmarshalEasyJSON(l *jlexer.Lexer) {
	easyjsonDecodeSearchResult(l, v)
}

// UnmarshalJSON supports json.Unmarshaler interface
func (v *SearchResult) UnmarshalJSON(data []byte) error {
	r := jlexer.Lexer{Data: data}
	easyjsonDecodeSearchResult(&r, v)
	return r.Error()
}

func easyjsonDecodeErrorBody(in *jlexer.Lexer, out *errorBody) {
	isTopLevel := in.IsStart()
	if in.IsNull() {
		if isTopLevel {
			in.Consumed()
		}
		in.Skip()
		return
	}
	in.Delim('{')
	for !in.IsDelim('}') {
		key := in.UnsafeFieldName(false)
		in.WantColon()
		if in.IsNull() {
			in.Skip()
			in.WantComma()
			continue
		}
		switch key {
		case "error":
			out.Error = in.String()
		default:
			in.SkipRecursive()
		}
		in.WantComma()
	}
	in.Delim('}')
	if isTopLevel {
		in.Consumed()
	}
}

// UnmarshalEasyJSON supports easyjson.Unmarshaler interface
func (v *errorBody) UnmarshalEasyJSON(l *jlexer.Lexer) {
	easyjsonDecodeErrorBody(l, v)
}

func easyjsonEncodePostRequest(out *jwriter.Writer, in postRequest) {
	out.RawByte('{')
	out.RawString(`"status":`)
	out.String(in.Status)
	if in.Visibility != "" {
		out.RawString(`,"visibility":`)
		out.String(in.Visibility)
	}
	out.RawString(`,"content_type":`)
	out.String(in.ContentType)
	out.RawString(`,"source":`)
	out.String(in.Source)
	out.RawByte('}')
}

// MarshalEasyJSON supports easyjson.Marshaler interface
func (v postRequest) MarshalEasyJSON(w *jwriter.Writer) {
	easyjsonEncodePostRequest(w, v)
}

// MarshalJSON supports json.Marshaler interface
func (v postRequest) MarshalJSON() ([]byte, error) {
	w := jwriter.Writer{}
	easyjsonEncodePostRequest(&w, v)
	return w.Buffer.BuildBytes(), w.Error
}
