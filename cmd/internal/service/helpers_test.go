package service

import (
	"context"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"

	"secretaria/cmd/internal/domain/database"
	"secretaria/cmd/internal/domain/entity"
	"secretaria/cmd/internal/domain/events"
	"secretaria/cmd/internal/infrastructure/makewebhook"
	"secretaria/cmd/internal/utils"
	"secretaria/cmd/internal/utils/uid"
	"secretaria/cmd/internal/utils/validators"
)

// fixedNow is 2025-03-12 (a Wednesday) at 15:00 UTC.
var fixedNow = time.Date(2025, time.March, 12, 15, 0, 0, 0, time.UTC)

func TestMain(m *testing.M) {
	if err := uid.Init(1); err != nil {
		panic(err)
	}
	utils.NowFunc = func() time.Time { return fixedNow }
	os.Exit(m.Run())
}

func setupDB(t *testing.T) *gorm.DB {
	db, err := database.OpenInMemory()
	if err != nil {
		t.Fatalf("setupDB() failed: %v", err)
	}
	return db
}

func newValidator(t *testing.T) *validator.Validate {
	validate := validator.New()
	if _, err := validators.Register(validate); err != nil {
		t.Fatalf("newValidator() failed: %v", err)
	}
	return validate
}

func ptr[T any](v T) *T {
	return &v
}

func actorWith(perms entity.Permission) *entity.User {
	return &entity.User{ID: 100, UnidadeID: 1, Nome: "Secretária", Permissions: perms, Active: true}
}

// fakeNotifier records every webhook delivery.
type fakeNotifier struct {
	calls chan *makewebhook.RetentionScheduled
	err   error
}

func newFakeNotifier() *fakeNotifier {
	return &fakeNotifier{calls: make(chan *makewebhook.RetentionScheduled, 10)}
}

func (f *fakeNotifier) NotifyRetentionScheduled(_ context.Context, payload *makewebhook.RetentionScheduled) error {
	f.calls <- payload
	return f.err
}

// fakeBroadcaster records every pushed event.
type fakeBroadcaster struct {
	events chan events.SocketEvent
}

func newFakeBroadcaster() *fakeBroadcaster {
	return &fakeBroadcaster{events: make(chan events.SocketEvent, 10)}
}

func (f *fakeBroadcaster) BroadcastToUnidade(_ context.Context, _ int64, evt events.SocketEvent) {
	f.events <- evt
}

func waitFor[T any](t *testing.T, ch <-chan T) T {
	t.Helper()
	select {
	case v := <-ch:
		return v
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for async dispatch")
	}
	var zero T
	return zero
}

func assertNothing[T any](t *testing.T, ch <-chan T) {
	t.Helper()
	select {
	case v := <-ch:
		t.Fatalf("unexpected dispatch: %+v", v)
	case <-time.After(100 * time.Millisecond):
	}
}

// fakeStorage keeps uploaded objects in memory.
type fakeStorage struct {
	mu      sync.Mutex
	objects map[string][]byte
	deleted []string
}

func newFakeStorage() *fakeStorage {
	return &fakeStorage{objects: map[string][]byte{}}
}

func (f *fakeStorage) UploadFile(_ context.Context, data []byte, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.objects[key] = data
	return nil
}

func (f *fakeStorage) DeleteFile(_ context.Context, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.objects, key)
	f.deleted = append(f.deleted, key)
	return nil
}

func (f *fakeStorage) PublicURL(key string) string {
	return "https://bucket.test/" + key
}

// fakeSlack records posted messages.
type fakeSlack struct {
	mu       sync.Mutex
	messages []string
	channels []string
	err      error
}

func (f *fakeSlack) PostMessage(_ context.Context, channel, text string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.channels = append(f.channels, channel)
	f.messages = append(f.messages, text)
	return nil
}
