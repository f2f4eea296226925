package memory

import (
	"context"
	"slices"
	"strings"
	"sync"

	"github.com/mcoot/seabattle/internal/model"
	"github.com/mcoot/seabattle/internal/storage"
)

// Storage is an in-memory implementation of the storage interface
type Storage struct {
	mu sync.RWMutex

	sessions map[model.SessionID]model.BotSession
}

// New creates a new in-memory storage instance
func New() *Storage {
	return &Storage{
		sessions: make(map[model.SessionID]model.BotSession),
	}
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// Bot session operations

// Sessions are stored by value so callers never share a mutable copy

func (s *Storage) SaveSession(ctx context.Context, session *model.BotSession) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[session.ID] = *session
	return nil
}

func (s *Storage) GetSession(ctx context.Context, id model.SessionID) (*model.BotSession, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	session, ok := s.sessions[id]
	if !ok {
		return nil, model.ErrSessionNotFound
	}
	return &session, nil
}

func (s *Storage) DeleteSession(ctx context.Context, id model.SessionID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
	return nil
}

func (s *Storage) ListSessions(ctx context.Context) ([]*model.BotSession, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sessions := make([]*model.BotSession, 0, len(s.sessions))
	for _, session := range s.sessions {
		sessions = append(sessions, &session)
	}
	sortSessions(sessions)
	return sessions, nil
}

// sortSessions orders sessions oldest first
func sortSessions(sessions []*model.BotSession) {
	slices.SortFunc(sessions, func(a, b *model.BotSession) int {
		if c := a.CreatedAt.Compare(b.CreatedAt); c != 0 {
			return c
		}
		return strings.Compare(string(a.ID), string(b.ID))
	})
}
