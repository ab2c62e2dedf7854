package makewebhook

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

var ErrNotConfigured = errors.New("webhook url not configured")

// RetentionScheduled is posted when a card lands on "Retenção agendada".
type RetentionScheduled struct {
	CardID       int64  `json:"cardId"`
	Aluno        string `json:"aluno"`
	Descricao    string `json:"descricao"`
	DataRetencao string `json:"dataRetencao"`
	Responsavel  string `json:"responsavel"`
}

// Client posts retention events to the automation scenario behind the hook.
// There is no retry: a failed delivery is only reported to the caller.
type Client struct {
	url        string
	httpClient *http.Client
}

func NewClient(url string) *Client {
	return &Client{
		url:        url,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

func (c *Client) NotifyRetentionScheduled(ctx context.Context, payload *RetentionScheduled) error {
	if c.url == "" {
		return ErrNotConfigured
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("webhook failed with status code: %d", resp.StatusCode)
	}
	return nil
}
