package makewebhook

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNotifyRetentionScheduled(t *testing.T) {
	var got map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	err := NewClient(srv.URL).NotifyRetentionScheduled(context.Background(), &RetentionScheduled{
		CardID:       7,
		Aluno:        "Maria",
		Descricao:    "faltou 2x",
		DataRetencao: "2025-06-01",
		Responsavel:  "Carla",
	})
	require.NoError(t, err)

	assert.Equal(t, map[string]any{
		"cardId":       float64(7),
		"aluno":        "Maria",
		"descricao":    "faltou 2x",
		"dataRetencao": "2025-06-01",
		"responsavel":  "Carla",
	}, got)
}

func TestNotifyRetentionScheduled_Failure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	err := NewClient(srv.URL).NotifyRetentionScheduled(context.Background(), &RetentionScheduled{CardID: 1})
	assert.ErrorContains(t, err, "502")
}

func TestNotifyRetentionScheduled_NotConfigured(t *testing.T) {
	err := NewClient("").NotifyRetentionScheduled(context.Background(), &RetentionScheduled{})
	assert.ErrorIs(t, err, ErrNotConfigured)
}
