// Package twitter is a minimal client for the parts of the Twitter API v2
// that the relay needs: batch user lookup, filtered-stream rule management,
// and the filtered stream itself.
package twitter

import (
	"fmt"
	"io"
	"net/http"

	"github.com/parawatch/birdrelay/util"
)

// Remote-imposed ceiling on usernames per lookup call.
const MaxLookupBatch = 100

type Client struct {
	Host        string // default: https://api.twitter.com
	BearerToken string
	UserAgent   string

	// Client is used for short request/response calls. StreamClient is used
	// for the standing filtered-stream connection and must not carry an
	// overall timeout.
	Client       *http.Client
	StreamClient *http.Client
}

// UpstreamError is returned for any non-success HTTP status from the Twitter
// API. It carries the raw response body for diagnostics.
type UpstreamError struct {
	StatusCode int
	Body       string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("twitter API request failed (HTTP %d): %s", e.StatusCode, e.Body)
}

func (c *Client) getClient() *http.Client {
	if c.Client == nil {
		return util.RobustHTTPClient()
	}
	return c.Client
}

func (c *Client) getStreamClient() *http.Client {
	if c.StreamClient == nil {
		return util.StreamingHTTPClient()
	}
	return c.StreamClient
}

func (c *Client) getHost() string {
	if c.Host == "" {
		return "https://api.twitter.com"
	}
	return c.Host
}

func (c *Client) setHeaders(req *http.Request) {
	req.Header.Set("Authorization", "Bearer "+c.BearerToken)
	ua := c.UserAgent
	if ua == "" {
		ua = "birdrelay"
	}
	req.Header.Set("User-Agent", ua)
}

// drains the response body and wraps status + body in an UpstreamError
func upstreamError(resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 16*1024))
	return &UpstreamError{StatusCode: resp.StatusCode, Body: string(body)}
}
