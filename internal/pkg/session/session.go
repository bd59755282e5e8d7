// Package session implements server-side sessions delivered to clients as an
// opaque cookie token. State lives in an in-process store behind the Store
// interface so a distributed store can be swapped in for multi-instance
// deployments.
package session

import "time"

// Session associates an opaque token with an account for a bounded lifetime.
type Session struct {
	Token     string
	AccountID int64
	ExpiresAt time.Time
	CreatedAt time.Time
}

// Expired reports whether the session lifetime has elapsed.
func (s *Session) Expired() bool {
	return time.Now().After(s.ExpiresAt)
}

// Store is the session persistence capability: get/set/delete by token plus
// bulk invalidation for one account (used by credential rotation).
type Store interface {
	Get(token string) (*Session, error)
	Set(session *Session) error
	Delete(token string) error
	DeleteByAccount(accountID int64) error
}
