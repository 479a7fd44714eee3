package chat

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/uberhub/innovation-hub/backend/internal/model/chat"
)

var (
	ErrSessionNotFound = errors.New("session not found")
	ErrVersionConflict = errors.New("session was modified concurrently")
	ErrInvalidSession  = errors.New("session id is empty")
)

// Store persists sessions keyed by id.
//
// Upsert is create-or-replace guarded by an optimistic version check: the
// caller passes the session with the Version it read (0 for a new session)
// and the store bumps it on success, or returns ErrVersionConflict.
type Store interface {
	Find(ctx context.Context, sessionID string) (chat.Session, bool, error)
	Upsert(ctx context.Context, session chat.Session) (chat.Session, error)
}

// MemoryStore keeps sessions in process memory.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]chat.Session
	now      func() time.Time
}

// NewMemoryStore bootstraps an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		sessions: make(map[string]chat.Session),
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// Find returns a copy of the stored session.
func (s *MemoryStore) Find(_ context.Context, sessionID string) (chat.Session, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	session, ok := s.sessions[sessionID]
	if !ok {
		return chat.Session{}, false, nil
	}
	return session.Clone(), true, nil
}

// Upsert implements Store.
func (s *MemoryStore) Upsert(_ context.Context, session chat.Session) (chat.Session, error) {
	if strings.TrimSpace(session.ID) == "" {
		return chat.Session{}, ErrInvalidSession
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	current, exists := s.sessions[session.ID]
	var currentVersion int64
	if exists {
		currentVersion = current.Version
	}
	if session.Version != currentVersion {
		return chat.Session{}, ErrVersionConflict
	}

	now := s.now()
	stored := session.Clone()
	stored.Version = currentVersion + 1
	stored.UpdatedAt = now
	if exists {
		stored.CreatedAt = current.CreatedAt
	} else if stored.CreatedAt.IsZero() {
		stored.CreatedAt = now
	}

	s.sessions[session.ID] = stored
	return stored.Clone(), nil
}
