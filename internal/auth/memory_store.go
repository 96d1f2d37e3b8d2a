package auth

import (
	"context"
	"sync"
	"time"
)

// MemorySessionStore keeps sessions in process memory. Sessions are lost on
// restart and expired entries are dropped when next looked up.
type MemorySessionStore struct {
	mu       sync.Mutex
	sessions map[string]*Session
	now      func() time.Time
}

func NewMemorySessionStore() *MemorySessionStore {
	return NewMemorySessionStoreWithClock(time.Now)
}

// NewMemorySessionStoreWithClock is NewMemorySessionStore with an injected clock.
func NewMemorySessionStoreWithClock(now func() time.Time) *MemorySessionStore {
	return &MemorySessionStore{sessions: make(map[string]*Session), now: now}
}

func (m *MemorySessionStore) Create(_ context.Context, ttl time.Duration) (string, *Session, error) {
	token, hash, err := GenerateToken()
	if err != nil {
		return "", nil, err
	}
	now := m.now()
	s := &Session{TokenHash: hash, CreatedAt: now, ExpiresAt: now.Add(ttl), LastSeen: now}

	m.mu.Lock()
	m.sessions[hash] = s
	m.mu.Unlock()

	cp := *s
	return token, &cp, nil
}

func (m *MemorySessionStore) Validate(_ context.Context, token string) (*Session, error) {
	hash := HashToken(token)

	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[hash]
	if !ok {
		return nil, ErrSessionNotFound
	}
	if s.Expired(m.now()) {
		delete(m.sessions, hash)
		return nil, ErrSessionNotFound
	}
	cp := *s
	return &cp, nil
}

func (m *MemorySessionStore) Touch(_ context.Context, token string) error {
	hash := HashToken(token)

	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[hash]
	if !ok {
		return ErrSessionNotFound
	}
	s.LastSeen = m.now()
	return nil
}

func (m *MemorySessionStore) Revoke(_ context.Context, token string) error {
	m.mu.Lock()
	delete(m.sessions, HashToken(token))
	m.mu.Unlock()
	return nil
}

// Len returns the number of sessions currently held, expired or not.
func (m *MemorySessionStore) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}
