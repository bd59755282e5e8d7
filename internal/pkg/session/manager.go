package session

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"time"
)

// Errors returned by the session layer.
var (
	ErrNotFound     = errors.New("session not found")
	ErrExpired      = errors.New("session expired")
	ErrInvalidToken = errors.New("invalid session token")
)

const tokenBytes = 32

// Config holds session manager settings.
type Config struct {
	MaxAge time.Duration
}

// DefaultConfig returns the default session lifetime (24h, matching the
// cookie max-age served to clients).
func DefaultConfig() Config {
	return Config{MaxAge: 24 * time.Hour}
}

// Manager creates, verifies and destroys sessions against an injected Store.
type Manager struct {
	config Config
	store  Store
}

// NewManager creates a session Manager.
func NewManager(config Config, store Store) *Manager {
	if config.MaxAge <= 0 {
		config.MaxAge = DefaultConfig().MaxAge
	}
	return &Manager{config: config, store: store}
}

// Create issues a new session for the account and returns the opaque token
// to be delivered as a cookie.
func (m *Manager) Create(accountID int64) (*Session, error) {
	token, err := generateToken()
	if err != nil {
		return nil, fmt.Errorf("failed to generate session token: %w", err)
	}

	now := time.Now()
	sess := &Session{
		Token:     token,
		AccountID: accountID,
		ExpiresAt: now.Add(m.config.MaxAge),
		CreatedAt: now,
	}

	if err := m.store.Set(sess); err != nil {
		return nil, fmt.Errorf("failed to store session: %w", err)
	}
	return sess, nil
}

// Verify resolves a token to a live session.
func (m *Manager) Verify(token string) (*Session, error) {
	if token == "" {
		return nil, ErrInvalidToken
	}

	sess, err := m.store.Get(token)
	if err != nil {
		return nil, err
	}
	if sess.Expired() {
		_ = m.store.Delete(token)
		return nil, ErrExpired
	}
	return sess, nil
}

// Destroy invalidates a single session. Unknown tokens are not an error.
func (m *Manager) Destroy(token string) error {
	if token == "" {
		return nil
	}
	return m.store.Delete(token)
}

// DestroyAccountSessions invalidates every session for the account.
func (m *Manager) DestroyAccountSessions(accountID int64) error {
	return m.store.DeleteByAccount(accountID)
}

// MaxAge exposes the configured session lifetime for cookie construction.
func (m *Manager) MaxAge() time.Duration {
	return m.config.MaxAge
}

func generateToken() (string, error) {
	buf := make([]byte, tokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
