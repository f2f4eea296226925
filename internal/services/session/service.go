package session

import (
	"context"
	"fmt"
	"hash/fnv"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/mcoot/seabattle/internal/dependencies/clock"
	"github.com/mcoot/seabattle/internal/dependencies/random"
	"github.com/mcoot/seabattle/internal/model"
	"github.com/mcoot/seabattle/internal/services/placement"
	"github.com/mcoot/seabattle/internal/services/targeting"
	"github.com/mcoot/seabattle/internal/storage"
)

// lockStripes is the number of mutexes sessions are hashed onto
const lockStripes = 64

// IncomingResult is the verdict for a shot fired at the bot's own fleet
type IncomingResult struct {
	model.ShotOutcome
	ShipsRemaining int  `json:"ships_remaining"`
	Defeated       bool `json:"defeated"`
}

// Service runs persisted bot opponents on behalf of an external game
// server. Every call restores the session's engine from storage, applies
// one step and saves it back.
type Service struct {
	storage   storage.Storage
	generator *placement.Generator
	clock     clock.Clock
	random    random.Random
	newID     func() string
	logger    *slog.Logger

	locks [lockStripes]sync.Mutex
}

// NewService creates a new session Service
func NewService(store storage.Storage, clk clock.Clock, rnd random.Random, logger *slog.Logger) *Service {
	logger = logger.With(slog.String("component", "session-service"))
	return &Service{
		storage:   store,
		generator: placement.NewGenerator(rnd, logger),
		clock:     clk,
		random:    rnd,
		newID:     uuid.NewString,
		logger:    logger,
	}
}

// lock serialises steps on one session within this process
func (s *Service) lock(id model.SessionID) func() {
	h := fnv.New32a()
	_, _ = h.Write([]byte(id))
	mu := &s.locks[h.Sum32()%lockStripes]
	mu.Lock()
	return mu.Unlock
}

// CreateSession places a fleet for the bot and starts a fresh engine
func (s *Service) CreateSession(ctx context.Context, strategy, policyName string) (*model.BotSession, error) {
	engine, err := targeting.NewEngineForStrategy(strategy, s.random, s.logger)
	if err != nil {
		return nil, err
	}
	policy, err := placement.NewPolicy(policyName)
	if err != nil {
		return nil, err
	}
	fleet, err := s.generator.Generate(policy)
	if err != nil {
		return nil, err
	}
	snap, err := engine.Snapshot()
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	session := &model.BotSession{
		ID:        model.SessionID(s.newID()),
		Strategy:  strategy,
		Policy:    policy.Name(),
		Fleet:     fleet,
		Targeting: snap,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.storage.SaveSession(ctx, session); err != nil {
		return nil, err
	}

	s.logger.Info("session created",
		slog.String("session_id", string(session.ID)),
		slog.String("strategy", session.Strategy),
		slog.String("policy", session.Policy),
	)
	return session, nil
}

// GetSession retrieves a session by ID
func (s *Service) GetSession(ctx context.Context, id model.SessionID) (*model.BotSession, error) {
	return s.storage.GetSession(ctx, id)
}

// ListSessions returns every live session, oldest first
func (s *Service) ListSessions(ctx context.Context) ([]*model.BotSession, error) {
	return s.storage.ListSessions(ctx)
}

// DeleteSession removes a session
func (s *Service) DeleteSession(ctx context.Context, id model.SessionID) error {
	unlock := s.lock(id)
	defer unlock()

	if _, err := s.storage.GetSession(ctx, id); err != nil {
		return err
	}
	if err := s.storage.DeleteSession(ctx, id); err != nil {
		return err
	}

	s.logger.Info("session deleted", slog.String("session_id", string(id)))
	return nil
}

// NextShot asks the bot where it fires next. The shot stays pending until
// ReportResult is called.
func (s *Service) NextShot(ctx context.Context, id model.SessionID) (model.Coordinate, error) {
	unlock := s.lock(id)
	defer unlock()

	session, engine, err := s.load(ctx, id)
	if err != nil {
		return model.Coordinate{}, err
	}
	if session.Finished() {
		return model.Coordinate{}, model.ErrGameOver
	}

	shot, err := engine.NextShot()
	if err != nil {
		return model.Coordinate{}, err
	}

	if err := s.save(ctx, session, engine); err != nil {
		return model.Coordinate{}, err
	}
	return shot, nil
}

// ReportResult applies the verdict for the bot's pending shot
func (s *Service) ReportResult(ctx context.Context, id model.SessionID, hit, sunk bool) (*model.BotSession, error) {
	unlock := s.lock(id)
	defer unlock()

	session, engine, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := engine.SetShotResult(hit, sunk); err != nil {
		s.logger.Warn("rejected shot result",
			slog.String("session_id", string(id)),
			slog.Bool("hit", hit),
			slog.Bool("sunk", sunk),
			slog.String("error", err.Error()),
		)
		return nil, err
	}

	session.ShotsFired++
	if hit {
		session.Hits++
	}
	session.ShipsSunk = engine.ShipsSunk()

	if err := s.save(ctx, session, engine); err != nil {
		return nil, err
	}
	if session.Finished() {
		s.logger.Info("bot sank the opposing fleet",
			slog.String("session_id", string(id)),
			slog.Int("shots", session.ShotsFired),
		)
	}
	return session, nil
}

// IncomingShot resolves the other player's shot against the bot's fleet
func (s *Service) IncomingShot(ctx context.Context, id model.SessionID, c model.Coordinate) (*IncomingResult, error) {
	if !c.Valid() {
		return nil, fmt.Errorf("%w: %s", model.ErrInvalidCoordinate, c)
	}

	unlock := s.lock(id)
	defer unlock()

	session, err := s.storage.GetSession(ctx, id)
	if err != nil {
		return nil, err
	}
	ocean, err := model.RestoreOcean(session.Fleet, session.FiredOn)
	if err != nil {
		return nil, err
	}

	outcome, err := ocean.Fire(c)
	if err != nil {
		return nil, err
	}

	session.FiredOn = ocean.Fired
	session.UpdatedAt = s.clock.Now()
	if err := s.storage.SaveSession(ctx, session); err != nil {
		return nil, err
	}

	return &IncomingResult{
		ShotOutcome:    outcome,
		ShipsRemaining: ocean.ShipsRemaining(),
		Defeated:       ocean.AllSunk(),
	}, nil
}

// load fetches a session and rebuilds its engine
func (s *Service) load(ctx context.Context, id model.SessionID) (*model.BotSession, *targeting.Engine, error) {
	session, err := s.storage.GetSession(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	heuristic, err := targeting.NewHeuristic(session.Strategy, s.random)
	if err != nil {
		return nil, nil, err
	}
	engine, err := targeting.Restore(session.Targeting, heuristic, s.logger)
	if err != nil {
		s.logger.Error("stored targeting state is corrupt",
			slog.String("session_id", string(id)),
			slog.String("error", err.Error()),
		)
		return nil, nil, err
	}
	return session, engine, nil
}

func (s *Service) save(ctx context.Context, session *model.BotSession, engine *targeting.Engine) error {
	snap, err := engine.Snapshot()
	if err != nil {
		return err
	}
	session.Targeting = snap
	session.UpdatedAt = s.clock.Now()
	return s.storage.SaveSession(ctx, session)
}
