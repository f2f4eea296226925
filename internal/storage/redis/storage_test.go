package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"

	"github.com/mcoot/seabattle/internal/model"
)

type StorageSuite struct {
	suite.Suite
	mini    *miniredis.Miniredis
	storage *Storage
	ctx     context.Context
}

func TestStorageSuite(t *testing.T) {
	suite.Run(t, new(StorageSuite))
}

func (s *StorageSuite) SetupTest() {
	s.mini = miniredis.RunT(s.T())

	client := redis.NewClient(&redis.Options{
		Addr: s.mini.Addr(),
	})

	cfg := DefaultConfig()
	cfg.SessionTTL = time.Hour

	s.storage = NewWithClient(client, cfg)
	s.ctx = context.Background()
}

func (s *StorageSuite) TearDownTest() {
	if s.storage != nil {
		_ = s.storage.Close()
	}
	if s.mini != nil {
		s.mini.Close()
	}
}

func newSession(id string, created time.Time) *model.BotSession {
	pending := model.Coordinate{Row: 3, Col: 7}
	session := &model.BotSession{
		ID:       model.SessionID(id),
		Strategy: model.BotStrategyAdaptive,
		Policy:   model.PlacementPolicyBorder,
		Fleet: []model.ShipPlacement{
			{ShipID: 1, Length: 4, Anchor: model.Coordinate{Row: 0, Col: 0}, Orientation: model.Horizontal},
		},
		Targeting: model.TargetingSnapshot{
			Strategy:   model.BotStrategyAdaptive,
			Cells:      model.EncodeCells([model.CellCount]model.CellState{}),
			Remaining:  model.FleetLengthList(),
			MissStreak: 2,
			Pending:    &pending,
		},
		ShotsFired: 5,
		CreatedAt:  created.UTC(),
		UpdatedAt:  created.UTC(),
	}
	session.FiredOn[0] = true
	return session
}

func (s *StorageSuite) TestSaveAndGetSession() {
	session := newSession("session-1", time.Now())

	err := s.storage.SaveSession(s.ctx, session)
	s.Require().NoError(err)

	retrieved, err := s.storage.GetSession(s.ctx, "session-1")
	s.Require().NoError(err)
	s.Equal(session.ID, retrieved.ID)
	s.Equal(session.Fleet, retrieved.Fleet)
	s.Equal(session.FiredOn, retrieved.FiredOn)
	s.Equal(session.Targeting.Cells, retrieved.Targeting.Cells)
	s.Equal(session.Targeting.Pending, retrieved.Targeting.Pending)
	s.Equal(session.ShotsFired, retrieved.ShotsFired)
	s.True(session.CreatedAt.Equal(retrieved.CreatedAt))
}

func (s *StorageSuite) TestGetSessionNotFound() {
	_, err := s.storage.GetSession(s.ctx, "nonexistent")
	s.ErrorIs(err, model.ErrSessionNotFound)
}

func (s *StorageSuite) TestSessionTTL() {
	_ = s.storage.SaveSession(s.ctx, newSession("session-1", time.Now()))

	ttl := s.mini.TTL(sessionKey("session-1"))
	s.Equal(time.Hour, ttl)

	s.mini.FastForward(2 * time.Hour)
	_, err := s.storage.GetSession(s.ctx, "session-1")
	s.ErrorIs(err, model.ErrSessionNotFound)
}

func (s *StorageSuite) TestDeleteSession() {
	_ = s.storage.SaveSession(s.ctx, newSession("session-1", time.Now()))

	err := s.storage.DeleteSession(s.ctx, "session-1")
	s.Require().NoError(err)

	_, err = s.storage.GetSession(s.ctx, "session-1")
	s.ErrorIs(err, model.ErrSessionNotFound)

	s.False(s.mini.Exists(sessionIndexKey()))
}

func (s *StorageSuite) TestListSessions() {
	base := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	_ = s.storage.SaveSession(s.ctx, newSession("b", base.Add(time.Minute)))
	_ = s.storage.SaveSession(s.ctx, newSession("a", base))

	sessions, err := s.storage.ListSessions(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(sessions, 2)
	s.Equal(model.SessionID("a"), sessions[0].ID)
	s.Equal(model.SessionID("b"), sessions[1].ID)
}

func (s *StorageSuite) TestListSessionsPrunesExpired() {
	_ = s.storage.SaveSession(s.ctx, newSession("old", time.Now()))
	s.mini.FastForward(2 * time.Hour)
	_ = s.storage.SaveSession(s.ctx, newSession("new", time.Now()))

	sessions, err := s.storage.ListSessions(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(sessions, 1)
	s.Equal(model.SessionID("new"), sessions[0].ID)

	members, err := s.mini.Members(sessionIndexKey())
	s.Require().NoError(err)
	s.Equal([]string{sessionKey("new")}, members)
}

func (s *StorageSuite) TestListSessionsEmpty() {
	sessions, err := s.storage.ListSessions(s.ctx)
	s.Require().NoError(err)
	s.Empty(sessions)
}
