// ABOUTME: Tests for the easyjson decoders and encoder of the wire types
// ABOUTME: Uses captured response shapes including nulls and unknown fields

package pleroma

import (
	"strings"
	"testing"
	"time"

	"github.com/mailru/easyjson"
)

const sampleStatus = `{
	"id": "A1",
	"created_at": "2024-03-01T12:30:00.000Z",
	"in_reply_to_id": null,
	"visibility": "public",
	"spoiler_text": "",
	"url": "https://pl.example/notice/A1",
	"content": "<p>hello</p>",
	"account": {"id": "9", "acct": "alice", "display_name": "Alice", "bot": false, "emojis": []},
	"replies_count": 2,
	"reblogs_count": 3,
	"favourites_count": 5,
	"favourited": true,
	"reblogged": false,
	"reblog": null,
	"media_attachments": [{"id": "m", "type": "image"}],
	"pleroma": {"local": true, "conversation_id": 7}
}`

func TestStatus_Unmarshal(t *testing.T) {
	t.Parallel()

	var st Status
	if err := easyjson.Unmarshal([]byte(sampleStatus), &st); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}

	if st.ID != "A1" || st.Visibility != "public" || st.Content != "<p>hello</p>" {
		t.Errorf("scalar fields = %+v", st)
	}
	if want := time.Date(2024, 3, 1, 12, 30, 0, 0, time.UTC); !st.CreatedAt.Equal(want) {
		t.Errorf("CreatedAt = %v, want %v", st.CreatedAt, want)
	}
	if st.Account.Acct != "alice" || st.Account.Name() != "Alice" {
		t.Errorf("Account = %+v", st.Account)
	}
	if st.RepliesCount != 2 || st.ReblogsCount != 3 || st.FavouritesCount != 5 {
		t.Errorf("counters = %d/%d/%d", st.RepliesCount, st.ReblogsCount, st.FavouritesCount)
	}
	if !st.Favourited || st.Reblogged || st.Reblog != nil || st.InReplyToID != "" {
		t.Errorf("flags = %+v", st)
	}
}

func TestStatus_UnmarshalReblog(t *testing.T) {
	t.Parallel()

	data := `{"id":"2","content":"","account":{"acct":"bob"},"reblog":` + sampleStatus + `}`
	var st Status
	if err := st.UnmarshalJSON([]byte(data)); err != nil {
		t.Fatalf("UnmarshalJSON: %v", err)
	}
	if st.Reblog == nil || st.Reblog.ID != "A1" {
		t.Fatalf("Reblog = %+v", st.Reblog)
	}
	if st.Original() != st.Reblog {
		t.Error("Original() should return the reblogged status")
	}
}

func TestStatus_UnmarshalBadTime(t *testing.T) {
	t.Parallel()

	var st Status
	if err := st.UnmarshalJSON([]byte(`{"created_at":"yesterday"}`)); err == nil {
		t.Error("expected error for malformed created_at")
	}
}

func TestStatusList_Unmarshal(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		in      string
		want    int
		wantNil bool
	}{
		{"two", "[" + sampleStatus + "," + sampleStatus + "]", 2, false},
		{"empty", "[]", 0, false},
		{"null", "null", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var list StatusList
			if err := list.UnmarshalJSON([]byte(tt.in)); err != nil {
				t.Fatalf("UnmarshalJSON: %v", err)
			}
			if len(list) != tt.want || (list == nil) != tt.wantNil {
				t.Errorf("len = %d nil = %v, want %d nil = %v", len(list), list == nil, tt.want, tt.wantNil)
			}
		})
	}
}

func TestSearchResult_Unmarshal(t *testing.T) {
	t.Parallel()

	data := `{"accounts":[{"acct":"a"},{"acct":"b"}],"statuses":[` + sampleStatus + `],"hashtags":[]}`
	var res SearchResult
	if err := res.UnmarshalJSON([]byte(data)); err != nil {
		t.Fatalf("UnmarshalJSON: %v", err)
	}
	if len(res.Accounts) != 2 || res.Accounts[1].Acct != "b" || len(res.Statuses) != 1 {
		t.Errorf("result = %+v", res)
	}
}

func TestPostRequest_Marshal(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   postRequest
		want string
	}{
		{
			"with visibility",
			postRequest{Status: `say "hi"`, Visibility: VisibilityUnlisted, ContentType: "text/plain", Source: Source},
			`{"status":"say \"hi\"","visibility":"unlisted","content_type":"text/plain","source":"pleroterm"}`,
		},
		{
			"default visibility omitted",
			postRequest{Status: "x", ContentType: "text/plain", Source: Source},
			`{"status":"x","content_type":"text/plain","source":"pleroterm"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := easyjson.Marshal(tt.in)
			if err != nil {
				t.Fatalf("Marshal: %v", err)
			}
			if string(got) != tt.want {
				t.Errorf("Marshal = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestAccount_NameFallsBackToAcct(t *testing.T) {
	t.Parallel()

	var a Account
	if err := a.UnmarshalJSON([]byte(`{"acct":"carol@remote.example","display_name":""}`)); err != nil {
		t.Fatalf("UnmarshalJSON: %v", err)
	}
	if got := a.Name(); !strings.HasPrefix(got, "carol@") {
		t.Errorf("Name() = %q", got)
	}
}
