package redisad_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	redisad "hosfind_admin/internal/adapters/redis"
)

func newStore(t *testing.T, ttl time.Duration) (*redisad.SessionStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	c := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = c.Close() })
	return redisad.NewWithClient(c, ttl), mr
}

func TestSessionStore_Lifecycle(t *testing.T) {
	ctx := context.Background()
	s, _ := newStore(t, 0)

	tok, err := s.Token(ctx)
	require.NoError(t, err)
	assert.Empty(t, tok)

	require.NoError(t, s.SetToken(ctx, "jwt-1"))
	tok, err = s.Token(ctx)
	require.NoError(t, err)
	assert.Equal(t, "jwt-1", tok)

	require.NoError(t, s.ClearToken(ctx))
	tok, err = s.Token(ctx)
	require.NoError(t, err)
	assert.Empty(t, tok)
}

func TestSessionStore_Expires(t *testing.T) {
	ctx := context.Background()
	s, mr := newStore(t, time.Minute)

	require.NoError(t, s.SetToken(ctx, "jwt-2"))
	mr.FastForward(2 * time.Minute)

	tok, err := s.Token(ctx)
	require.NoError(t, err)
	assert.Empty(t, tok)
}

func TestSessionStore_Ping(t *testing.T) {
	s, _ := newStore(t, 0)
	require.NoError(t, s.Ping(context.Background()))
}
