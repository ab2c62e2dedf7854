package slack

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat.postMessage", r.URL.Path)
		assert.Equal(t, "Bearer xoxb-test", r.Header.Get("Authorization"))

		var req postMessageRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "C123", req.Channel)
		assert.Equal(t, "olá", req.Text)

		_, _ = w.Write([]byte(`{"ok":true}`))
	}))
	defer srv.Close()

	err := NewClient("xoxb-test").WithBaseURL(srv.URL+"/").PostMessage(context.Background(), "C123", "olá")
	assert.NoError(t, err)
}

func TestPostMessage_NotOK(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"ok":false,"error":"channel_not_found"}`))
	}))
	defer srv.Close()

	err := NewClient("xoxb-test").WithBaseURL(srv.URL+"/").PostMessage(context.Background(), "C404", "x")
	assert.ErrorIs(t, err, ErrSlackAPI)
	assert.ErrorContains(t, err, "channel_not_found")
}

func TestPostMessage_NoToken(t *testing.T) {
	err := NewClient("").PostMessage(context.Background(), "C1", "x")
	assert.ErrorIs(t, err, ErrNotConfigured)
}
