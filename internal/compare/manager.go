package compare

import (
	"sync"
	"time"
)

// sessionSet tracks a set plus when it was last touched so idle sessions
// can be swept.
type sessionSet struct {
	set      *Set
	lastSeen time.Time
}

// Manager hands out per-session comparison sets, creating them lazily.
// Sets are in-memory only and are swept after prolonged inactivity.
type Manager struct {
	limit   int
	maxIdle time.Duration

	mu       sync.Mutex
	sessions map[string]*sessionSet
}

// NewManager creates a Manager whose sets hold up to limit cars.
func NewManager(limit int) *Manager {
	m := &Manager{
		limit:    limit,
		maxIdle:  30 * time.Minute,
		sessions: make(map[string]*sessionSet),
	}
	go m.sweep()
	return m
}

// ForSession returns the comparison set for a session, creating it when
// first seen.
func (m *Manager) ForSession(sessionID string) *Set {
	m.mu.Lock()
	defer m.mu.Unlock()
	entry, ok := m.sessions[sessionID]
	if !ok {
		entry = &sessionSet{set: NewSet(m.limit)}
		m.sessions[sessionID] = entry
	}
	entry.lastSeen = time.Now()
	return entry.set
}

// Drop discards a session's set entirely (e.g. on logout).
func (m *Manager) Drop(sessionID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, sessionID)
}

func (m *Manager) sweep() {
	ticker := time.NewTicker(10 * time.Minute)
	defer ticker.Stop()
	for range ticker.C {
		cutoff := time.Now().Add(-m.maxIdle)
		m.mu.Lock()
		for id, entry := range m.sessions {
			if entry.lastSeen.Before(cutoff) {
				delete(m.sessions, id)
			}
		}
		m.mu.Unlock()
	}
}
