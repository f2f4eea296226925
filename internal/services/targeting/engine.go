package targeting

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/mcoot/seabattle/internal/model"
)

// MaxProposalRetries bounds how often a heuristic may propose an unusable
// cell before the engine falls back to a row-major scan
const MaxProposalRetries = 50

// Engine chooses shots against one unseen opponent board. Each game owns
// its own Engine; calls must alternate NextShot, SetShotResult.
type Engine struct {
	state     State
	heuristic Heuristic
	logger    *slog.Logger
}

// NewEngine creates an engine for a fresh game
func NewEngine(heuristic Heuristic, logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}
	return &Engine{
		state:     newState(),
		heuristic: heuristic,
		logger:    logger.With(slog.String("component", "targeting"), slog.String("strategy", heuristic.Name())),
	}
}

// State exposes the read side of the targeting state
func (e *Engine) State() *State {
	return &e.state
}

// Heuristic returns the search heuristic in use
func (e *Engine) Heuristic() Heuristic {
	return e.heuristic
}

// Mode returns the current phase of the state machine
func (e *Engine) Mode() Mode {
	return e.state.Mode()
}

// ShipsSunk returns how many ships have been confirmed sunk
func (e *Engine) ShipsSunk() int {
	return model.FleetSize - len(e.state.remaining)
}

// Pending returns the shot awaiting a result, if any
func (e *Engine) Pending() (model.Coordinate, bool) {
	if e.state.pending == nil {
		return model.Coordinate{}, false
	}
	return *e.state.pending, true
}

// NextShot returns the next cell to fire at. It never returns a tried cell.
func (e *Engine) NextShot() (model.Coordinate, error) {
	if e.state.pending != nil {
		return model.Coordinate{}, fmt.Errorf("%w: %s", model.ErrShotPending, *e.state.pending)
	}
	if e.state.untriedCount() == 0 {
		return model.Coordinate{}, model.ErrNoCellsRemaining
	}

	shot := e.choose()
	e.state.pending = &shot
	return shot, nil
}

func (e *Engine) choose() model.Coordinate {
	if e.state.Mode() == ModeHunt {
		if c, ok := e.state.popHuntQueue(); ok {
			return c
		}
		if c, ok := e.propose(e.state.orthogonalToHits); ok {
			return c
		}
	}

	if c, ok := e.propose(nil); ok {
		return c
	}

	c, _ := e.state.firstUntried(nil)
	e.logger.Warn("heuristic gave no usable cell, using row-major fallback",
		slog.String("mode", string(e.state.Mode())),
		slog.String("cell", c.String()),
	)
	return c
}

// propose asks the heuristic for a cell, retrying stale proposals
func (e *Engine) propose(allowed func(model.Coordinate) bool) (model.Coordinate, bool) {
	if allowed != nil {
		if _, found := e.state.firstUntried(allowed); !found {
			return model.Coordinate{}, false
		}
	}

	for attempt := 0; attempt < MaxProposalRetries; attempt++ {
		c, ok := e.heuristic.Choose(&e.state, allowed)
		if !ok {
			return model.Coordinate{}, false
		}
		if c.Valid() && !e.state.Tried(c) && (allowed == nil || allowed(c)) {
			return c, true
		}
		e.logger.Debug("heuristic proposed unusable cell",
			slog.String("cell", c.String()),
			slog.Int("attempt", attempt+1),
		)
	}
	return model.Coordinate{}, false
}

// SetShotResult applies the verdict for the shot last returned by NextShot.
// An inconsistent verdict is rejected and leaves the state untouched.
func (e *Engine) SetShotResult(hit, sunk bool) error {
	if e.state.pending == nil {
		return model.ErrNoShotPending
	}
	shot := *e.state.pending
	if sunk && !hit {
		return fmt.Errorf("%w: sunk without hit at %s", model.ErrInvalidShotResult, shot)
	}

	var chain []model.Coordinate
	if sunk {
		e.state.cells[shot.Index()] = model.CellHit
		c, err := e.state.checkSink(shot)
		if err != nil {
			e.state.cells[shot.Index()] = model.CellEmpty
			return err
		}
		chain = c
	}

	e.state.pending = nil
	switch {
	case !hit:
		e.state.cells[shot.Index()] = model.CellMiss
		e.state.missStreak++
	case sunk:
		e.state.missStreak = 0
		e.state.resolveSink(chain)
		e.logger.Debug("ship sunk",
			slog.String("cell", shot.String()),
			slog.Int("length", len(chain)),
			slog.Int("remaining", len(e.state.remaining)),
		)
	default:
		e.state.cells[shot.Index()] = model.CellHit
		e.state.missStreak = 0
		e.state.registerHit(shot)
	}

	if obs, ok := e.heuristic.(ShotObserver); ok {
		obs.Observe(shot, hit, sunk, chain)
	}
	return nil
}
