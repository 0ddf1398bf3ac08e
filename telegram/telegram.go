// Package telegram sends messages through the Telegram Bot API. It covers
// exactly what the relay needs: sendMessage to a chat.
package telegram

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/parawatch/birdrelay/util"
)

type Client struct {
	Host   string // default: https://api.telegram.org
	Token  string
	Client *http.Client
}

// UpstreamError is returned when the Bot API answers with a non-200 status.
type UpstreamError struct {
	StatusCode int
	Body       string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("telegram API request failed (HTTP %d): %s", e.StatusCode, e.Body)
}

func (c *Client) getClient() *http.Client {
	if c.Client == nil {
		return util.RobustHTTPClient()
	}
	return c.Client
}

func (c *Client) getHost() string {
	if c.Host == "" {
		return "https://api.telegram.org"
	}
	return c.Host
}

// SendMessage delivers one Markdown-formatted message to a chat. Link
// previews stay enabled so the permalink unfurls in the channel.
func (c *Client) SendMessage(ctx context.Context, chatID, text string) error {
	q := url.Values{}
	q.Set("chat_id", chatID)
	q.Set("text", text)
	q.Set("disable_web_page_preview", "false")
	q.Set("parse_mode", "Markdown")
	u := fmt.Sprintf("%s/bot%s/sendMessage?%s", c.getHost(), c.Token, q.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u, nil)
	if err != nil {
		return err
	}
	resp, err := c.getClient().Do(req)
	if err != nil {
		return fmt.Errorf("telegram sendMessage request failed: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 16*1024))
		return &UpstreamError{StatusCode: resp.StatusCode, Body: string(body)}
	}
	return nil
}
