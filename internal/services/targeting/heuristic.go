package targeting

import (
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/mcoot/seabattle/internal/dependencies/random"
	"github.com/mcoot/seabattle/internal/model"
)

// Heuristic chooses SEARCH-mode shots. The engine owns hunt mechanics and
// only consults the heuristic when the hunt queue has nothing to offer.
type Heuristic interface {
	Name() string
	// Choose proposes an untried cell. allowed, when non-nil, restricts the
	// candidates; ok is false when no candidate exists.
	Choose(st *State, allowed func(model.Coordinate) bool) (c model.Coordinate, ok bool)
}

// ShotObserver is implemented by heuristics that learn from outcomes.
// chain holds the sunk ship's cells when sunk is true.
type ShotObserver interface {
	Observe(shot model.Coordinate, hit, sunk bool, chain []model.Coordinate)
}

// Persistent is implemented by heuristics with state of their own that must
// survive a snapshot round-trip
type Persistent interface {
	SaveState() (json.RawMessage, error)
	LoadState(data json.RawMessage) error
}

// NewHeuristic returns the heuristic registered under strategy
func NewHeuristic(strategy string, rnd random.Random) (Heuristic, error) {
	switch strategy {
	case model.BotStrategyRandom:
		return NewRandomHeuristic(rnd), nil
	case model.BotStrategyHeatmap:
		return NewHeatmapHeuristic(rnd), nil
	case model.BotStrategyDiagonal:
		return NewDiagonalHeuristic(rnd), nil
	case model.BotStrategyAdaptive:
		return NewAdaptiveHeuristic(rnd), nil
	default:
		return nil, fmt.Errorf("%w: %s", model.ErrUnknownStrategy, strategy)
	}
}

// NewEngineForStrategy creates a fresh engine using the named heuristic
func NewEngineForStrategy(strategy string, rnd random.Random, logger *slog.Logger) (*Engine, error) {
	h, err := NewHeuristic(strategy, rnd)
	if err != nil {
		return nil, err
	}
	return NewEngine(h, logger), nil
}

// RandomHeuristic fires uniformly at untried cells; the engine's hunt
// mechanics finish off anything it hits
type RandomHeuristic struct {
	random random.Random
}

// NewRandomHeuristic creates a RandomHeuristic
func NewRandomHeuristic(rnd random.Random) *RandomHeuristic {
	return &RandomHeuristic{random: rnd}
}

func (h *RandomHeuristic) Name() string { return model.BotStrategyRandom }

// Choose picks a random untried cell
func (h *RandomHeuristic) Choose(st *State, allowed func(model.Coordinate) bool) (model.Coordinate, bool) {
	candidates := st.Untried(allowed)
	if len(candidates) == 0 {
		return model.Coordinate{}, false
	}
	return candidates[h.random.Intn(len(candidates))], true
}
