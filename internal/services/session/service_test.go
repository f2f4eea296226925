package session_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"github.com/mcoot/seabattle/internal/dependencies/mocks"
	"github.com/mcoot/seabattle/internal/dependencies/random"
	"github.com/mcoot/seabattle/internal/model"
	"github.com/mcoot/seabattle/internal/services/placement"
	"github.com/mcoot/seabattle/internal/services/session"
	"github.com/mcoot/seabattle/internal/storage/memory"
	"github.com/mcoot/seabattle/internal/testutil"
)

type ServiceSuite struct {
	suite.Suite
	store     *memory.Storage
	mockClock *mocks.MockClock
	rnd       *random.SeededRandom
	service   *session.Service
	ctx       context.Context
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.store = memory.New()
	s.mockClock = mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	s.rnd = random.NewSeeded(99)
	s.service = session.NewService(s.store, s.mockClock, s.rnd, testutil.NopLogger())
	s.ctx = context.Background()
}

func (s *ServiceSuite) createSession(strategy string) *model.BotSession {
	sess, err := s.service.CreateSession(s.ctx, strategy, model.PlacementPolicyUnbiased)
	s.Require().NoError(err)
	return sess
}

func (s *ServiceSuite) TestCreateSession() {
	sess := s.createSession(model.BotStrategyHeatmap)

	_, err := uuid.Parse(string(sess.ID))
	s.NoError(err)
	s.Equal(model.BotStrategyHeatmap, sess.Strategy)
	s.Equal(model.PlacementPolicyUnbiased, sess.Policy)
	s.NoError(model.ValidateLayout(sess.Fleet))
	s.Equal(s.mockClock.Now(), sess.CreatedAt)
	s.Equal(model.FleetLengthList(), sess.Targeting.Remaining)

	stored, err := s.store.GetSession(s.ctx, sess.ID)
	s.Require().NoError(err)
	s.Equal(sess.Fleet, stored.Fleet)
}

func (s *ServiceSuite) TestCreateSessionDefaultsPolicy() {
	sess, err := s.service.CreateSession(s.ctx, model.BotStrategyRandom, "")
	s.Require().NoError(err)
	s.Equal(model.PlacementPolicyUnbiased, sess.Policy)
}

func (s *ServiceSuite) TestCreateSessionValidation() {
	_, err := s.service.CreateSession(s.ctx, "psychic", model.PlacementPolicyUnbiased)
	s.ErrorIs(err, model.ErrUnknownStrategy)

	_, err = s.service.CreateSession(s.ctx, model.BotStrategyRandom, "spiral")
	s.ErrorIs(err, model.ErrUnknownPolicy)

	sessions, err := s.service.ListSessions(s.ctx)
	s.Require().NoError(err)
	s.Empty(sessions)
}

func (s *ServiceSuite) TestNextShotAndReportResult() {
	sess := s.createSession(model.BotStrategyRandom)

	shot, err := s.service.NextShot(s.ctx, sess.ID)
	s.Require().NoError(err)
	s.True(shot.Valid())

	s.mockClock.Advance(time.Minute)
	updated, err := s.service.ReportResult(s.ctx, sess.ID, true, false)
	s.Require().NoError(err)
	s.Equal(1, updated.ShotsFired)
	s.Equal(1, updated.Hits)
	s.Equal(s.mockClock.Now(), updated.UpdatedAt)
	s.Equal([]model.Coordinate{shot}, updated.Targeting.HuntHits)
	s.Nil(updated.Targeting.Pending)

	next, err := s.service.NextShot(s.ctx, sess.ID)
	s.Require().NoError(err)
	s.Equal(1, abs(next.Row-shot.Row)+abs(next.Col-shot.Col), "hunt continues next to the hit")
}

func (s *ServiceSuite) TestShotSequencingIsEnforced() {
	sess := s.createSession(model.BotStrategyHeatmap)

	_, err := s.service.ReportResult(s.ctx, sess.ID, false, false)
	s.ErrorIs(err, model.ErrNoShotPending)

	_, err = s.service.NextShot(s.ctx, sess.ID)
	s.Require().NoError(err)
	_, err = s.service.NextShot(s.ctx, sess.ID)
	s.ErrorIs(err, model.ErrShotPending)

	_, err = s.service.ReportResult(s.ctx, sess.ID, false, true)
	s.ErrorIs(err, model.ErrInvalidShotResult)

	stored, err := s.store.GetSession(s.ctx, sess.ID)
	s.Require().NoError(err)
	s.Zero(stored.ShotsFired)
	s.NotNil(stored.Targeting.Pending)
}

func (s *ServiceSuite) TestPlayFullGameThroughSessions() {
	for _, strategy := range model.ValidBotStrategies() {
		sess := s.createSession(strategy)

		layout, err := placement.NewGenerator(s.rnd, testutil.NopLogger()).Generate(placement.BorderPolicy{})
		s.Require().NoError(err)
		opponent, err := model.NewOcean(layout)
		s.Require().NoError(err)

		var last *model.BotSession
		for shots := 0; !opponent.AllSunk(); shots++ {
			s.Require().Less(shots, model.CellCount, strategy)
			shot, err := s.service.NextShot(s.ctx, sess.ID)
			s.Require().NoError(err)
			out, err := opponent.Fire(shot)
			s.Require().NoError(err)
			last, err = s.service.ReportResult(s.ctx, sess.ID, out.Hit, out.Sunk)
			s.Require().NoError(err)
		}

		s.True(last.Finished())
		s.Equal(model.FleetCells, last.Hits)
		s.Equal(model.FleetSize, last.ShipsSunk)
		s.Empty(last.Targeting.Remaining)

		_, err = s.service.NextShot(s.ctx, sess.ID)
		s.ErrorIs(err, model.ErrGameOver, strategy)
	}
}

func (s *ServiceSuite) TestIncomingShot() {
	sess := s.createSession(model.BotStrategyRandom)
	var battleship model.ShipPlacement
	for _, p := range sess.Fleet {
		if p.Length == 4 {
			battleship = p
		}
	}
	target := battleship.Anchor

	result, err := s.service.IncomingShot(s.ctx, sess.ID, target)
	s.Require().NoError(err)
	s.True(result.Hit)
	s.False(result.Sunk)
	s.Equal(battleship.ShipID, result.ShipID)
	s.False(result.Defeated)
	s.Equal(model.FleetSize, result.ShipsRemaining)

	_, err = s.service.IncomingShot(s.ctx, sess.ID, target)
	s.ErrorIs(err, model.ErrAlreadyFiredAt)

	_, err = s.service.IncomingShot(s.ctx, sess.ID, model.Coordinate{Row: 10, Col: 0})
	s.ErrorIs(err, model.ErrInvalidCoordinate)
}

func (s *ServiceSuite) TestIncomingShotsSinkWholeFleet() {
	sess := s.createSession(model.BotStrategyRandom)

	var result *session.IncomingResult
	for _, p := range sess.Fleet {
		for _, c := range p.Cells() {
			var err error
			result, err = s.service.IncomingShot(s.ctx, sess.ID, c)
			s.Require().NoError(err)
			s.True(result.Hit)
		}
		s.True(result.Sunk)
	}
	s.True(result.Defeated)
	s.Zero(result.ShipsRemaining)

	_, err := s.service.IncomingShot(s.ctx, sess.ID, model.Coordinate{Row: 0, Col: 0})
	s.ErrorIs(err, model.ErrGameOver)
}

func (s *ServiceSuite) TestIncomingMiss() {
	sess := s.createSession(model.BotStrategyRandom)

	var water model.Coordinate
	occupied := make(map[model.Coordinate]bool)
	for _, p := range sess.Fleet {
		for _, c := range p.Cells() {
			occupied[c] = true
		}
	}
	for _, c := range model.AllCoordinates() {
		if !occupied[c] {
			water = c
			break
		}
	}

	result, err := s.service.IncomingShot(s.ctx, sess.ID, water)
	s.Require().NoError(err)
	s.False(result.Hit)
	s.Zero(result.ShipID)

	stored, err := s.store.GetSession(s.ctx, sess.ID)
	s.Require().NoError(err)
	s.True(stored.FiredOn[water.Index()])
}

func (s *ServiceSuite) TestDeleteSession() {
	sess := s.createSession(model.BotStrategyDiagonal)

	s.Require().NoError(s.service.DeleteSession(s.ctx, sess.ID))

	_, err := s.service.GetSession(s.ctx, sess.ID)
	s.ErrorIs(err, model.ErrSessionNotFound)

	err = s.service.DeleteSession(s.ctx, sess.ID)
	s.ErrorIs(err, model.ErrSessionNotFound)
}

func (s *ServiceSuite) TestUnknownSession() {
	_, err := s.service.NextShot(s.ctx, "missing")
	s.ErrorIs(err, model.ErrSessionNotFound)

	_, err = s.service.ReportResult(s.ctx, "missing", false, false)
	s.ErrorIs(err, model.ErrSessionNotFound)

	_, err = s.service.IncomingShot(s.ctx, "missing", model.Coordinate{})
	s.ErrorIs(err, model.ErrSessionNotFound)
}

func (s *ServiceSuite) TestCorruptTargetingStateRejected() {
	sess := s.createSession(model.BotStrategyHeatmap)
	sess.Targeting.Cells = "short"
	s.Require().NoError(s.store.SaveSession(s.ctx, sess))

	_, err := s.service.NextShot(s.ctx, sess.ID)
	s.ErrorIs(err, model.ErrInvalidSnapshot)
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
