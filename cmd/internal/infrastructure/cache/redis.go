package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/labstack/gommon/log"
	"github.com/redis/go-redis/v9"

	"secretaria/cmd/internal/domain/entity"
)

const userKeyPrefix = "secretaria:user:"

// UserCache keeps the actor resolved from a token subject, so authenticated
// requests skip the users table.
type UserCache interface {
	Get(ctx context.Context, sub string) (*entity.User, error)
	Set(ctx context.Context, sub string, user *entity.User) error
	Invalidate(ctx context.Context, sub string) error
}

type RedisUserCache struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewRedisUserCache connects to addr and checks the connection.
func NewRedisUserCache(ctx context.Context, addr string, ttl time.Duration) (*RedisUserCache, error) {
	rdb := redis.NewClient(&redis.Options{Addr: addr})
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("failed to connect to redis at %s: %w", addr, err)
	}

	log.Infof("connected to redis at %s", addr)
	return &RedisUserCache{rdb: rdb, ttl: ttl}, nil
}

// Get returns nil, nil on a cache miss.
func (r *RedisUserCache) Get(ctx context.Context, sub string) (*entity.User, error) {
	data, err := r.rdb.Get(ctx, userKey(sub)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}

	if err != nil {
		return nil, err
	}

	var user entity.User
	if err := json.Unmarshal(data, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *RedisUserCache) Set(ctx context.Context, sub string, user *entity.User) error {
	data, err := json.Marshal(user)
	if err != nil {
		return err
	}
	return r.rdb.Set(ctx, userKey(sub), data, r.ttl).Err()
}

func (r *RedisUserCache) Invalidate(ctx context.Context, sub string) error {
	return r.rdb.Del(ctx, userKey(sub)).Err()
}

func (r *RedisUserCache) Close() error {
	return r.rdb.Close()
}

func userKey(sub string) string {
	return userKeyPrefix + sub
}
