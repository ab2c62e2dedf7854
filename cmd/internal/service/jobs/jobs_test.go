package jobs

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"secretaria/cmd/internal/contract"
	"secretaria/cmd/internal/domain/database"
	"secretaria/cmd/internal/domain/database/repository"
	"secretaria/cmd/internal/domain/entity"
	"secretaria/cmd/internal/service"
	"secretaria/cmd/internal/utils"
)

type recordingGateway struct {
	mu      sync.Mutex
	posted  map[string][]any
	deleted []string
}

func (g *recordingGateway) PostToConnection(_ context.Context, connID string, data any) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.posted[connID] = append(g.posted[connID], data)
	return nil
}

func (g *recordingGateway) DeleteConnection(_ context.Context, connID string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.deleted = append(g.deleted, connID)
	return nil
}

func TestConnectionCleaner(t *testing.T) {
	now := time.Date(2025, time.March, 12, 15, 0, 0, 0, time.UTC)
	utils.NowFunc = func() time.Time { return now }
	t.Cleanup(func() { utils.NowFunc = time.Now })

	db, err := database.OpenInMemory()
	require.NoError(t, err)
	repo := repository.NewConnectionRepository(db)

	ms := now.UnixMilli()
	conns := []*entity.Connection{
		{ConnectionID: "alive", UserID: 1, UnidadeID: 1, ExpiresAt: ms + 60_000, LastHeartbeatAt: ms, CreatedAt: ms},
		{ConnectionID: "token-expired", UserID: 1, UnidadeID: 1, ExpiresAt: ms - 1, LastHeartbeatAt: ms, CreatedAt: ms},
		{ConnectionID: "silent", UserID: 2, UnidadeID: 1, ExpiresAt: ms + 60_000, LastHeartbeatAt: ms - 5*60_000, CreatedAt: ms},
	}
	for _, c := range conns {
		require.NoError(t, repo.Save(c))
	}

	gateway := &recordingGateway{posted: map[string][]any{}}
	cleaner := NewConnectionCleaner(service.NewWebSocketService(repo, gateway))

	assert.Equal(t, 2, cleaner.cleanup(context.Background()))
	assert.ElementsMatch(t, []string{"token-expired", "silent"}, gateway.deleted)

	msg, ok := gateway.posted["silent"][0].(*contract.OutgoingSocketMessage)
	require.True(t, ok)
	assert.Equal(t, contract.EventSessionExpired, msg.Type)

	left, err := repo.FindAll()
	require.NoError(t, err)
	assert.Equal(t, []string{"alive"}, left)

	assert.Zero(t, cleaner.cleanup(context.Background()))
}

type stubChecker struct {
	calls chan struct{}
	err   error
}

func (s *stubChecker) CheckAbsences(context.Context) (*contract.AlertRunResponse, error) {
	select {
	case s.calls <- struct{}{}:
	default:
	}
	return &contract.AlertRunResponse{Checked: 1}, s.err
}

func TestAbsenceAlertJob_RunsUntilCancelled(t *testing.T) {
	checker := &stubChecker{calls: make(chan struct{}, 10), err: errors.New("db down")}
	job := NewAbsenceAlertJob(checker, 10*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		job.Start(ctx)
		close(done)
	}()

	for range 2 {
		select {
		case <-checker.calls:
		case <-time.After(time.Second):
			t.Fatal("job did not run")
		}
	}

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("job did not stop")
	}
}

func TestNewAbsenceAlertJob_DefaultInterval(t *testing.T) {
	job := NewAbsenceAlertJob(&stubChecker{}, 0)
	assert.Equal(t, time.Hour, job.interval)
}
