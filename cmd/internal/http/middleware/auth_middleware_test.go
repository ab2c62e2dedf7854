package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"secretaria/cmd/internal/domain/entity"
	"secretaria/cmd/internal/utils"
)

type fakeUsers struct {
	users map[string]*entity.User
	calls int
	err   error
}

func (f *fakeUsers) FindActiveBySub(sub string) (*entity.User, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.users[sub], nil
}

type memoryCache struct {
	users map[string]*entity.User
}

func (m *memoryCache) Get(_ context.Context, sub string) (*entity.User, error) {
	return m.users[sub], nil
}

func (m *memoryCache) Set(_ context.Context, sub string, user *entity.User) error {
	m.users[sub] = user
	return nil
}

func (m *memoryCache) Invalidate(_ context.Context, sub string) error {
	delete(m.users, sub)
	return nil
}

func tokenFor(sub string) TokenParser {
	return func(echo.Context) (*utils.TokenData, error) {
		if sub == "" {
			return nil, errors.New("token is malformed")
		}
		return &utils.TokenData{Sub: sub, Exp: 1741800000}, nil
	}
}

func serve(t *testing.T, cfg *AuthMiddlewareConfig) (*httptest.ResponseRecorder, echo.Context) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/api/users/me", nil)
	rec := httptest.NewRecorder()
	c := echo.New().NewContext(req, rec)

	next := func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	}
	require.NoError(t, NewAuthMiddleware(cfg)(next)(c))
	return rec, c
}

func TestAuthMiddleware(t *testing.T) {
	active := &entity.User{ID: 1, SubUUID: "sub-1", UnidadeID: 1, Active: true}
	inactive := &entity.User{ID: 2, SubUUID: "sub-2", UnidadeID: 1}
	repo := &fakeUsers{users: map[string]*entity.User{"sub-1": active, "sub-2": inactive}}

	tests := []struct {
		name string
		sub  string
		want int
	}{
		{"invalid token", "", http.StatusUnauthorized},
		{"unknown subject", "sub-9", http.StatusUnauthorized},
		{"inactive user", "sub-2", http.StatusForbidden},
		{"active user", "sub-1", http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, _ := serve(t, &AuthMiddlewareConfig{UserRepo: repo, ParseToken: tokenFor(tt.sub)})
			assert.Equal(t, tt.want, rec.Code)
		})
	}
}

func TestAuthMiddleware_SetsContext(t *testing.T) {
	user := &entity.User{ID: 1, SubUUID: "sub-1", UnidadeID: 1, Active: true}
	repo := &fakeUsers{users: map[string]*entity.User{"sub-1": user}}

	_, c := serve(t, &AuthMiddlewareConfig{UserRepo: repo, ParseToken: tokenFor("sub-1")})

	got, apierr := utils.GetUserFromContext(c)
	require.Nil(t, apierr)
	assert.Equal(t, user, got)

	token, ok := c.Get(utils.ContextTokenKey).(*utils.TokenData)
	require.True(t, ok)
	assert.Equal(t, int64(1741800000), token.Exp)
}

func TestAuthMiddleware_UsesCache(t *testing.T) {
	user := &entity.User{ID: 1, SubUUID: "sub-1", UnidadeID: 1, Active: true}
	repo := &fakeUsers{users: map[string]*entity.User{"sub-1": user}}
	cache := &memoryCache{users: map[string]*entity.User{}}
	cfg := &AuthMiddlewareConfig{UserRepo: repo, Cache: cache, ParseToken: tokenFor("sub-1")}

	for range 3 {
		rec, _ := serve(t, cfg)
		assert.Equal(t, http.StatusOK, rec.Code)
	}
	assert.Equal(t, 1, repo.calls)
	assert.Equal(t, user, cache.users["sub-1"])
}

func TestAuthMiddleware_RepositoryFailure(t *testing.T) {
	repo := &fakeUsers{err: errors.New("database is locked")}

	rec, _ := serve(t, &AuthMiddlewareConfig{UserRepo: repo, ParseToken: tokenFor("sub-1")})
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestReportMiddleware_PassesResponseThrough(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	c := echo.New().NewContext(req, rec)

	handler := NewReportMiddleware()(func(c echo.Context) error {
		return c.String(http.StatusInternalServerError, "boom")
	})
	require.NoError(t, handler(c))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "boom", rec.Body.String())
}
