package twitter

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// Event is one decoded post from the filtered stream. Constructed per
// incoming line, discarded after rendering or rejection.
type Event struct {
	ID              string
	AuthorID        string
	Text            string
	InReplyToUserID string // empty when the post is not a reply
	ReplySettings   string
	Retweeted       bool

	// from the first expanded user object
	Username string
	Name     string
}

type streamLine struct {
	Data struct {
		ID              string          `json:"id"`
		AuthorID        string          `json:"author_id"`
		Text            string          `json:"text"`
		InReplyToUserID string          `json:"in_reply_to_user_id"`
		ReplySettings   string          `json:"reply_settings"`
		RetweetedStatus json.RawMessage `json:"retweeted_status"`
	} `json:"data"`
	Includes struct {
		Users []struct {
			Username string `json:"username"`
			Name     string `json:"name"`
		} `json:"users"`
	} `json:"includes"`
}

// Stream is a standing filtered-stream connection. Not safe for concurrent
// use; the relay reads it from a single loop.
type Stream struct {
	body    io.ReadCloser
	scanner *bufio.Scanner
}

// OpenStream connects to the filtered stream, requesting author and
// reply-target expansions plus reply settings for every matched post.
func (c *Client) OpenStream(ctx context.Context) (*Stream, error) {
	u := c.getHost() + "/2/tweets/search/stream?expansions=author_id,in_reply_to_user_id&tweet.fields=reply_settings"
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	c.setHeaders(req)

	resp, err := c.getStreamClient().Do(req)
	if err != nil {
		return nil, fmt.Errorf("opening filtered stream: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		defer resp.Body.Close()
		return nil, upstreamError(resp)
	}

	scanner := bufio.NewScanner(resp.Body)
	// posts with expansions can exceed the default 64KiB line buffer
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)
	return &Stream{body: resp.Body, scanner: scanner}, nil
}

// Next blocks until the next post arrives and returns it decoded. Keep-alive
// blank lines are skipped. Returns io.EOF when the server closes the stream.
func (s *Stream) Next() (*Event, error) {
	for s.scanner.Scan() {
		line := s.scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		var decoded streamLine
		if err := json.Unmarshal(line, &decoded); err != nil {
			return nil, fmt.Errorf("decoding stream event: %w", err)
		}
		ev := &Event{
			ID:              decoded.Data.ID,
			AuthorID:        decoded.Data.AuthorID,
			Text:            decoded.Data.Text,
			InReplyToUserID: decoded.Data.InReplyToUserID,
			ReplySettings:   decoded.Data.ReplySettings,
			Retweeted:       len(decoded.Data.RetweetedStatus) > 0,
		}
		if len(decoded.Includes.Users) > 0 {
			ev.Username = decoded.Includes.Users[0].Username
			ev.Name = decoded.Includes.Users[0].Name
		}
		return ev, nil
	}
	if err := s.scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading stream: %w", err)
	}
	return nil, io.EOF
}

func (s *Stream) Close() error {
	return s.body.Close()
}
