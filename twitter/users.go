package twitter

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
)

// UserStat is a user's handle paired with its public follower count. It is
// ephemeral: produced by a lookup, consumed immediately, never persisted.
type UserStat struct {
	Handle    string
	Followers int64
}

type userLookupResponse struct {
	Data []struct {
		Username      string `json:"username"`
		PublicMetrics struct {
			FollowersCount int64 `json:"followers_count"`
		} `json:"public_metrics"`
	} `json:"data"`
}

// UsersBy looks up public metrics for a batch of usernames. The API caps a
// single call at MaxLookupBatch usernames; larger batches are the caller's
// bug, not something to silently split here.
//
// The endpoint responds with line-delimited JSON; the first non-empty line
// carries the lookup result.
func (c *Client) UsersBy(ctx context.Context, handles []string) ([]UserStat, error) {
	if len(handles) > MaxLookupBatch {
		return nil, fmt.Errorf("lookup batch too large: %d > %d", len(handles), MaxLookupBatch)
	}

	q := url.Values{}
	q.Set("usernames", strings.Join(handles, ","))
	q.Set("user.fields", "public_metrics")
	u := c.getHost() + "/2/users/by?" + q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	c.setHeaders(req)

	resp, err := c.getClient().Do(req)
	if err != nil {
		return nil, fmt.Errorf("user lookup request failed: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, upstreamError(resp)
	}

	scanner := bufio.NewScanner(resp.Body)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		var decoded userLookupResponse
		if err := json.Unmarshal(line, &decoded); err != nil {
			return nil, fmt.Errorf("decoding user lookup response: %w", err)
		}
		stats := make([]UserStat, 0, len(decoded.Data))
		for _, u := range decoded.Data {
			stats = append(stats, UserStat{
				Handle:    u.Username,
				Followers: u.PublicMetrics.FollowersCount,
			})
		}
		return stats, nil
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading user lookup response: %w", err)
	}
	return nil, nil
}
