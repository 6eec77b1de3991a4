package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrNoToken is returned when a session has no stored token.
var ErrNoToken = errors.New("no token for session")

// Store keeps the upstream bearer token per browser session. The "remember"
// flag picks the long-lived TTL (persistent login) over the short one, the
// session-storage vs local-storage split of the original client.
type Store interface {
	Token(ctx context.Context, sessionID string) (string, error)
	SetToken(ctx context.Context, sessionID, token string, remember bool) error
	Clear(ctx context.Context, sessionID string) error
}

// ---- In-memory store ----

type memoryEntry struct {
	token     string
	expiresAt time.Time
}

// MemoryStore is a process-local Store, used when Redis is not configured.
// Tokens are lost on restart, which only forces a re-login.
type MemoryStore struct {
	sessionTTL  time.Duration
	rememberTTL time.Duration

	mu      sync.RWMutex
	entries map[string]memoryEntry
	now     func() time.Time
}

// NewMemoryStore creates a MemoryStore with the given token lifetimes.
func NewMemoryStore(sessionTTL, rememberTTL time.Duration) *MemoryStore {
	return &MemoryStore{
		sessionTTL:  sessionTTL,
		rememberTTL: rememberTTL,
		entries:     make(map[string]memoryEntry),
		now:         time.Now,
	}
}

func (s *MemoryStore) Token(ctx context.Context, sessionID string) (string, error) {
	s.mu.RLock()
	entry, ok := s.entries[sessionID]
	s.mu.RUnlock()
	if !ok || s.now().After(entry.expiresAt) {
		return "", ErrNoToken
	}
	return entry.token, nil
}

func (s *MemoryStore) SetToken(ctx context.Context, sessionID, token string, remember bool) error {
	ttl := s.sessionTTL
	if remember {
		ttl = s.rememberTTL
	}
	s.mu.Lock()
	s.entries[sessionID] = memoryEntry{token: token, expiresAt: s.now().Add(ttl)}
	s.mu.Unlock()
	return nil
}

func (s *MemoryStore) Clear(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	delete(s.entries, sessionID)
	s.mu.Unlock()
	return nil
}

// ---- Redis-backed store ----

// RedisStore keeps session tokens in Redis so multiple gateway instances
// (and restarts) see the same sessions.
type RedisStore struct {
	rdb         *redis.Client
	sessionTTL  time.Duration
	rememberTTL time.Duration
}

// NewRedisStore creates a RedisStore with the given token lifetimes.
func NewRedisStore(rdb *redis.Client, sessionTTL, rememberTTL time.Duration) *RedisStore {
	return &RedisStore{rdb: rdb, sessionTTL: sessionTTL, rememberTTL: rememberTTL}
}

func sessionKey(sessionID string) string {
	return "session:token:" + sessionID
}

func (s *RedisStore) Token(ctx context.Context, sessionID string) (string, error) {
	token, err := s.rdb.Get(ctx, sessionKey(sessionID)).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrNoToken
	}
	if err != nil {
		return "", fmt.Errorf("failed to read session token: %w", err)
	}
	return token, nil
}

func (s *RedisStore) SetToken(ctx context.Context, sessionID, token string, remember bool) error {
	ttl := s.sessionTTL
	if remember {
		ttl = s.rememberTTL
	}
	if err := s.rdb.Set(ctx, sessionKey(sessionID), token, ttl).Err(); err != nil {
		return fmt.Errorf("failed to store session token: %w", err)
	}
	return nil
}

func (s *RedisStore) Clear(ctx context.Context, sessionID string) error {
	if err := s.rdb.Del(ctx, sessionKey(sessionID)).Err(); err != nil {
		return fmt.Errorf("failed to clear session token: %w", err)
	}
	return nil
}
