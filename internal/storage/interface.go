package storage

import (
	"context"

	"github.com/mcoot/seabattle/internal/model"
)

// Storage defines the interface for data persistence
type Storage interface {
	// Bot session operations
	SaveSession(ctx context.Context, session *model.BotSession) error
	GetSession(ctx context.Context, id model.SessionID) (*model.BotSession, error)
	DeleteSession(ctx context.Context, id model.SessionID) error
	ListSessions(ctx context.Context) ([]*model.BotSession, error)
}
