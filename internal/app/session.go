package app

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/rs/zerolog/log"

	"hosfind_admin/internal/adapters/observability"
	"hosfind_admin/internal/domain"
)

var ErrMissingCredentials = errors.New("email and password are required")

// Session signs the operator in and out. The token lands in the store
// the API client reads its bearer token from.
type Session struct {
	auth  domain.Authenticator
	store domain.SessionStore
}

func NewSession(auth domain.Authenticator, store domain.SessionStore) *Session {
	return &Session{auth: auth, store: store}
}

func (s *Session) Login(ctx context.Context, email, password string) error {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return ErrMissingCredentials
	}
	token, err := s.auth.Login(ctx, email, password)
	if err != nil {
		log.Warn().Err(err).Str("email", email).Msg("admin login failed")
		return err
	}
	if err := s.store.SetToken(ctx, token); err != nil {
		return err
	}
	log.Info().Str("email", email).Msg("admin signed in")
	return nil
}

func (s *Session) Logout(ctx context.Context) error {
	return s.store.ClearToken(ctx)
}

func (s *Session) SignedIn(ctx context.Context) (bool, error) {
	t, err := s.store.Token(ctx)
	if err != nil {
		return false, err
	}
	return t != "", nil
}

// MemorySession keeps the token in process memory. It is used when no
// redis address is configured.
type MemorySession struct {
	mu    sync.RWMutex
	token string
}

func (m *MemorySession) Token(context.Context) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.token == "" {
		observability.ObserveSession("memory", "miss")
	} else {
		observability.ObserveSession("memory", "hit")
	}
	return m.token, nil
}

func (m *MemorySession) SetToken(_ context.Context, token string) error {
	m.mu.Lock()
	m.token = token
	m.mu.Unlock()
	observability.ObserveSession("memory", "set")
	return nil
}

func (m *MemorySession) ClearToken(context.Context) error {
	m.mu.Lock()
	m.token = ""
	m.mu.Unlock()
	observability.ObserveSession("memory", "del")
	return nil
}
