package redisad

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"hosfind_admin/internal/adapters/observability"
)

const tokenKey = "hosfind:admin:session:access_token"

// SessionStore keeps the admin access token in Redis so it survives
// console restarts and is shared between console replicas.
type SessionStore struct {
	c   *redis.Client
	ttl time.Duration
}

func New(addr, pass string, db int, ttl time.Duration) *SessionStore {
	return NewWithClient(redis.NewClient(&redis.Options{Addr: addr, Password: pass, DB: db}), ttl)
}

func NewWithClient(c *redis.Client, ttl time.Duration) *SessionStore {
	return &SessionStore{c: c, ttl: ttl}
}

// Token returns the stored token, or "" when nobody is signed in.
func (s *SessionStore) Token(ctx context.Context) (string, error) {
	v, err := s.c.Get(ctx, tokenKey).Result()
	if errors.Is(err, redis.Nil) {
		observability.ObserveSession("redis", "miss")
		return "", nil
	}
	if err != nil {
		return "", err
	}
	observability.ObserveSession("redis", "hit")
	return v, nil
}

// SetToken stores token; a zero ttl keeps it until logout.
func (s *SessionStore) SetToken(ctx context.Context, token string) error {
	observability.ObserveSession("redis", "set")
	return s.c.Set(ctx, tokenKey, token, s.ttl).Err()
}

func (s *SessionStore) ClearToken(ctx context.Context) error {
	observability.ObserveSession("redis", "del")
	return s.c.Del(ctx, tokenKey).Err()
}

func (s *SessionStore) Ping(ctx context.Context) error { return s.c.Ping(ctx).Err() }

func (s *SessionStore) Close() error { return s.c.Close() }
