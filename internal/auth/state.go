package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// StateStore holds OAuth state values between the redirect to Google and the
// callback. Consume succeeds at most once per state.
type StateStore interface {
	Put(ctx context.Context, state string, ttl time.Duration) error
	Consume(ctx context.Context, state string) (bool, error)
}

type MemoryStateStore struct {
	mu    sync.Mutex
	items map[string]time.Time
	now   func() time.Time
}

func NewMemoryStateStore() *MemoryStateStore {
	return &MemoryStateStore{items: make(map[string]time.Time), now: time.Now}
}

func (s *MemoryStateStore) Put(ctx context.Context, state string, ttl time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	for key, exp := range s.items {
		if now.After(exp) {
			delete(s.items, key)
		}
	}
	s.items[state] = now.Add(ttl)
	return nil
}

func (s *MemoryStateStore) Consume(ctx context.Context, state string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	s.mu.Lock()
	exp, ok := s.items[state]
	if ok {
		delete(s.items, state)
	}
	s.mu.Unlock()
	return ok && !s.now().After(exp), nil
}

const redisStatePrefix = "oauth:state:"

// RedisStateStore keeps states in Redis so any API instance can finish a login.
type RedisStateStore struct {
	Client *redis.Client
}

// NewRedisStateStore connects using a redis:// URL.
func NewRedisStateStore(ctx context.Context, rawURL string) (*RedisStateStore, error) {
	opts, err := redis.ParseURL(strings.TrimSpace(rawURL))
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return &RedisStateStore{Client: client}, nil
}

func (s *RedisStateStore) Put(ctx context.Context, state string, ttl time.Duration) error {
	return s.Client.Set(ctx, redisStatePrefix+state, "1", ttl).Err()
}

func (s *RedisStateStore) Consume(ctx context.Context, state string) (bool, error) {
	err := s.Client.GetDel(ctx, redisStatePrefix+state).Err()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (s *RedisStateStore) Close() error {
	return s.Client.Close()
}
