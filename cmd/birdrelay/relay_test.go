package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/parawatch/birdrelay/telegram"
	"github.com/parawatch/birdrelay/twitter"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeTwitter implements the lookup, rules, and stream endpoints. Each
// lookup batch qualifies exactly its first handle; everything else is tiny.
type fakeTwitter struct {
	mu          sync.Mutex
	lookupCalls int
	installed   []string
	deleted     []string
	streamBody  []string
}

func (f *fakeTwitter) handler(t *testing.T) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		switch r.URL.Path {
		case "/2/users/by":
			f.lookupCalls++
			names := strings.Split(r.URL.Query().Get("usernames"), ",")
			data := make([]map[string]any, 0, len(names))
			for i, n := range names {
				followers := 10
				if i == 0 {
					followers = 100000
				}
				data = append(data, map[string]any{
					"username":       n,
					"public_metrics": map[string]any{"followers_count": followers},
				})
			}
			json.NewEncoder(w).Encode(map[string]any{"data": data})
		case "/2/tweets/search/stream/rules":
			if r.Method == http.MethodGet {
				json.NewEncoder(w).Encode(map[string]any{
					"data": []map[string]string{{"id": "stale1", "value": "(from: old) -is:retweet"}},
				})
				return
			}
			var body struct {
				Delete *struct {
					IDs []string `json:"ids"`
				} `json:"delete"`
				Add []struct {
					Value string `json:"value"`
				} `json:"add"`
			}
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			if body.Delete != nil {
				f.deleted = append(f.deleted, body.Delete.IDs...)
				w.WriteHeader(http.StatusOK)
				return
			}
			for _, a := range body.Add {
				f.installed = append(f.installed, a.Value)
			}
			w.WriteHeader(http.StatusCreated)
		case "/2/tweets/search/stream":
			for _, line := range f.streamBody {
				fmt.Fprintln(w, line)
			}
		default:
			http.NotFound(w, r)
		}
	})
}

func TestRelayRunEndToEnd(t *testing.T) {
	assert := assert.New(t)

	ft := &fakeTwitter{
		streamBody: []string{
			`{"data":{"id":"500","author_id":"1","text":"breaking_news","reply_settings":"everyone"},"includes":{"users":[{"username":"acct000","name":"Account_Zero"}]}}`,
			`{"data":{"id":"501","author_id":"1","text":"RT spam","reply_settings":"everyone","retweeted_status":{"id":"7"}},"includes":{"users":[{"username":"acct000","name":"Account_Zero"}]}}`,
			`{"data":{"id":"502","author_id":"1","text":"private reply","in_reply_to_user_id":"9","reply_settings":"everyone"},"includes":{"users":[{"username":"acct000","name":"Account_Zero"}]}}`,
		},
	}
	twSrv := httptest.NewServer(ft.handler(t))
	defer twSrv.Close()

	var sent []string
	tgSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal("chat-main", r.URL.Query().Get("chat_id"))
		sent = append(sent, r.URL.Query().Get("text"))
		w.Write([]byte(`{"ok":true}`))
	}))
	defer tgSrv.Close()

	// 101 watched handles: two lookup batches, one qualifying handle each
	watchList := make([]string, 101)
	for i := range watchList {
		watchList[i] = fmt.Sprintf("acct%03d", i)
	}

	r := &Relay{
		logger:       slog.New(slog.NewTextHandler(io.Discard, nil)),
		twitter:      &twitter.Client{Host: twSrv.URL, BearerToken: "t", Client: twSrv.Client(), StreamClient: twSrv.Client()},
		telegram:     &telegram.Client{Host: tgSrv.URL, Token: "tok", Client: tgSrv.Client()},
		chatID:       "chat-main",
		watchList:    watchList,
		minFollowers: 5000,
	}

	// stream ends after the canned events, which is a clean exit
	require.NoError(t, r.Run(context.Background()))

	assert.Equal(2, ft.lookupCalls)
	assert.Equal([]string{"stale1"}, ft.deleted)

	// two qualifying accounts pack into a single rule
	require.Len(t, ft.installed, 1)
	assert.Equal("(from: acct000 OR from: acct100) -is:retweet", ft.installed[0])

	// only the plain post is forwarded; the retweet and the reply-to-other
	// are dropped by admission
	require.Len(t, sent, 1)
	assert.Contains(sent[0], `breaking\_news`)
	assert.Contains(sent[0], `#Account\_Zero:`)
	assert.Contains(sent[0], "https://twitter.com/acct000/status/500")
}
