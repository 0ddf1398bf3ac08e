package twitter

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
)

// ActiveRule is one filter expression currently installed on the stream,
// as reported by the rules endpoint.
type ActiveRule struct {
	ID    string `json:"id"`
	Value string `json:"value"`
}

type rulesResponse struct {
	Data []ActiveRule `json:"data"`
}

func (c *Client) rulesURL() string {
	return c.getHost() + "/2/tweets/search/stream/rules"
}

func (c *Client) postRules(ctx context.Context, payload any, wantStatus int) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.rulesURL(), bytes.NewReader(body))
	if err != nil {
		return err
	}
	c.setHeaders(req)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.getClient().Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != wantStatus {
		return upstreamError(resp)
	}
	return nil
}

// GetRules fetches the currently active stream rules. A stream with no rules
// installed yields an empty slice.
func (c *Client) GetRules(ctx context.Context) ([]ActiveRule, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.rulesURL(), nil)
	if err != nil {
		return nil, err
	}
	c.setHeaders(req)

	resp, err := c.getClient().Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, upstreamError(resp)
	}

	var decoded rulesResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, err
	}
	return decoded.Data, nil
}

// DeleteRules removes the identified rules in one batched call.
func (c *Client) DeleteRules(ctx context.Context, ids []string) error {
	payload := map[string]any{
		"delete": map[string]any{"ids": ids},
	}
	return c.postRules(ctx, payload, http.StatusOK)
}

// AddRules installs the given filter expressions in one batched call. The
// endpoint answers 201 on success.
func (c *Client) AddRules(ctx context.Context, values []string) error {
	add := make([]map[string]string, 0, len(values))
	for _, v := range values {
		add = append(add, map[string]string{"value": v})
	}
	payload := map[string]any{"add": add}
	return c.postRules(ctx, payload, http.StatusCreated)
}
