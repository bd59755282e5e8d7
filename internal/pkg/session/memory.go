package session

import (
	"sync"
	"time"
)

// MemoryStore is an in-process Store backed by a mutex-guarded map.
// Sessions are lost on restart; acceptable for a single-instance deployment.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	done     chan struct{}
	stopOnce sync.Once
}

// NewMemoryStore creates a MemoryStore. When sweepInterval is positive a
// janitor goroutine periodically evicts expired sessions until Close is called.
func NewMemoryStore(sweepInterval time.Duration) *MemoryStore {
	s := &MemoryStore{
		sessions: make(map[string]*Session),
		done:     make(chan struct{}),
	}

	if sweepInterval > 0 {
		go s.janitor(sweepInterval)
	}

	return s
}

// Get retrieves a live session by token.
func (s *MemoryStore) Get(token string) (*Session, error) {
	s.mu.RLock()
	sess, ok := s.sessions[token]
	s.mu.RUnlock()

	if !ok {
		return nil, ErrNotFound
	}
	if sess.Expired() {
		s.mu.Lock()
		delete(s.sessions, token)
		s.mu.Unlock()
		return nil, ErrExpired
	}
	return sess, nil
}

// Set stores a session under its token.
func (s *MemoryStore) Set(session *Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[session.Token] = session
	return nil
}

// Delete removes a session. Deleting a missing token is not an error.
func (s *MemoryStore) Delete(token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, token)
	return nil
}

// DeleteByAccount removes every session belonging to the account.
func (s *MemoryStore) DeleteByAccount(accountID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for token, sess := range s.sessions {
		if sess.AccountID == accountID {
			delete(s.sessions, token)
		}
	}
	return nil
}

// Len returns the number of stored sessions, expired ones included.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// Close stops the janitor goroutine.
func (s *MemoryStore) Close() {
	s.stopOnce.Do(func() { close(s.done) })
}

func (s *MemoryStore) janitor(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-s.done:
			return
		case <-ticker.C:
			now := time.Now()
			s.mu.Lock()
			for token, sess := range s.sessions {
				if now.After(sess.ExpiresAt) {
					delete(s.sessions, token)
				}
			}
			s.mu.Unlock()
		}
	}
}
