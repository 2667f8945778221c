package quiz

import (
	"errors"
	"sync"
	"time"
)

// ErrSessionNotFound reports an unknown or expired session id.
var ErrSessionNotFound = errors.New("session not found")

// DefaultSessionTTL is how long an untouched session survives. Sessions
// are not persisted; only their outcome is.
const DefaultSessionTTL = 2 * time.Hour

// Manager is the in-memory session registry.
type Manager struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	ttl      time.Duration
	done     chan struct{}
	once     sync.Once
}

// NewManager creates a Manager with the given TTL (0 = default) and
// starts the expiry sweeper.
func NewManager(ttl time.Duration) *Manager {
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	m := &Manager{
		sessions: make(map[string]*Session),
		ttl:      ttl,
		done:     make(chan struct{}),
	}
	go m.sweep()
	return m
}

// Put registers a session.
func (m *Manager) Put(s *Session) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[s.ID] = s
}

// Get returns the session for id or ErrSessionNotFound. Expiry is
// checked on read as well, so a stale session never outlives its TTL
// between sweeps.
func (m *Manager) Get(id string) (*Session, error) {
	m.mu.RLock()
	s, ok := m.sessions[id]
	m.mu.RUnlock()
	if !ok {
		return nil, ErrSessionNotFound
	}
	if time.Since(s.CreatedAt) > m.ttl {
		m.Remove(id)
		return nil, ErrSessionNotFound
	}
	return s, nil
}

// Remove drops a session, typically after completion.
func (m *Manager) Remove(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, id)
}

// Len returns the number of live sessions.
func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// Close stops the expiry sweeper.
func (m *Manager) Close() {
	m.once.Do(func() { close(m.done) })
}

func (m *Manager) sweep() {
	ticker := time.NewTicker(m.ttl / 4)
	defer ticker.Stop()
	for {
		select {
		case <-m.done:
			return
		case now := <-ticker.C:
			m.mu.Lock()
			for id, s := range m.sessions {
				if now.Sub(s.CreatedAt) > m.ttl {
					delete(m.sessions, id)
				}
			}
			m.mu.Unlock()
		}
	}
}
