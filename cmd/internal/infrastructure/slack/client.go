package slack

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"
)

const defaultBaseURL = "https://slack.com/api/"

var (
	ErrNotConfigured = errors.New("slack bot token not configured")
	ErrSlackAPI      = errors.New("slack api error")
)

type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

func NewClient(token string) *Client {
	return &Client{
		baseURL:    defaultBaseURL,
		token:      token,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// WithBaseURL points the client somewhere else, such as a test server.
func (c *Client) WithBaseURL(url string) *Client {
	c.baseURL = url
	return c
}

type postMessageRequest struct {
	Channel string `json:"channel"`
	Text    string `json:"text"`
}

type postMessageResponse struct {
	OK    bool   `json:"ok"`
	Error string `json:"error,omitempty"`
}

// PostMessage calls chat.postMessage. Slack answers 200 even on failures, so
// the "ok" flag of the body decides.
func (c *Client) PostMessage(ctx context.Context, channel, text string) error {
	if c.token == "" {
		return ErrNotConfigured
	}

	body, err := json.Marshal(&postMessageRequest{Channel: channel, Text: text})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"chat.postMessage", bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json; charset=utf-8")
	req.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: status code %d", ErrSlackAPI, resp.StatusCode)
	}

	var out postMessageResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return fmt.Errorf("failed to decode slack response: %w", err)
	}

	if !out.OK {
		return fmt.Errorf("%w: %s", ErrSlackAPI, out.Error)
	}
	return nil
}
