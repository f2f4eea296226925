package match

import (
	"context"
	"fmt"
	"log/slog"
	"slices"

	"github.com/mcoot/seabattle/internal/dependencies/random"
	"github.com/mcoot/seabattle/internal/model"
	"github.com/mcoot/seabattle/internal/services/placement"
	"github.com/mcoot/seabattle/internal/services/targeting"
)

const (
	// MaxShots is a safety limit for one side of a game
	MaxShots = model.CellCount
	// MaxBatchGames bounds a single RunBatch call
	MaxBatchGames = 1000
)

// ShotRecord is one resolved shot
type ShotRecord struct {
	Cell   model.Coordinate `json:"cell"`
	Hit    bool             `json:"hit"`
	Sunk   bool             `json:"sunk"`
	ShipID model.ShipID     `json:"ship_id,omitempty"`
}

// GameResult summarises one engine playing out one ocean
type GameResult struct {
	Strategy string       `json:"strategy"`
	Shots    int          `json:"shots"`
	Hits     int          `json:"hits"`
	Misses   int          `json:"misses"`
	Log      []ShotRecord `json:"log,omitempty"`
}

// Simulator referees self-play games. It is the only place an engine may be
// given the opponent's live cells, and only when asked to.
type Simulator struct {
	random random.Random
	logger *slog.Logger
}

// NewSimulator creates a new Simulator
func NewSimulator(rnd random.Random, logger *slog.Logger) *Simulator {
	return &Simulator{
		random: rnd,
		logger: logger.With(slog.String("component", "match-simulator")),
	}
}

// Play fires engine at ocean until every ship is sunk
func (s *Simulator) Play(ctx context.Context, ocean *model.Ocean, engine *targeting.Engine) (*GameResult, error) {
	result := &GameResult{Strategy: engine.Heuristic().Name()}

	for range MaxShots {
		if ocean.AllSunk() {
			break
		}
		if err := ctx.Err(); err != nil {
			return result, err
		}

		record, err := s.fire(ocean, engine)
		if err != nil {
			return result, err
		}
		result.Log = append(result.Log, record)
		result.Shots++
		if record.Hit {
			result.Hits++
		} else {
			result.Misses++
		}
	}

	if !ocean.AllSunk() {
		return result, fmt.Errorf("game unfinished after %d shots: %w", result.Shots, model.ErrNoCellsRemaining)
	}
	return result, nil
}

func (s *Simulator) fire(ocean *model.Ocean, engine *targeting.Engine) (ShotRecord, error) {
	shot, err := engine.NextShot()
	if err != nil {
		return ShotRecord{}, err
	}
	out, err := ocean.Fire(shot)
	if err != nil {
		return ShotRecord{}, err
	}
	if err := engine.SetShotResult(out.Hit, out.Sunk); err != nil {
		return ShotRecord{}, err
	}
	return ShotRecord{Cell: shot, Hit: out.Hit, Sunk: out.Sunk, ShipID: out.ShipID}, nil
}

// BatchConfig describes a run of games of one strategy against layouts
// from one placement policy
type BatchConfig struct {
	Strategy string
	Policy   string
	Games    int
	// Omniscient wires the adaptive heuristic's educated guess to the
	// simulated opponent's live cells
	Omniscient bool
}

// BatchStats aggregates a batch
type BatchStats struct {
	Strategy   string  `json:"strategy"`
	Policy     string  `json:"policy"`
	Games      int     `json:"games"`
	Omniscient bool    `json:"omniscient"`
	MinShots   int     `json:"min_shots"`
	MaxShots   int     `json:"max_shots"`
	MeanShots  float64 `json:"mean_shots"`
	ShotCounts []int   `json:"shot_counts"`
}

// RunBatch plays cfg.Games independent games, each with a fresh layout and
// a fresh engine
func (s *Simulator) RunBatch(ctx context.Context, cfg BatchConfig) (*BatchStats, error) {
	if cfg.Games < 1 || cfg.Games > MaxBatchGames {
		return nil, fmt.Errorf("games must be between 1 and %d, got %d", MaxBatchGames, cfg.Games)
	}
	if !slices.Contains(model.ValidBotStrategies(), cfg.Strategy) {
		return nil, fmt.Errorf("%w: %s", model.ErrUnknownStrategy, cfg.Strategy)
	}
	policy, err := placement.NewPolicy(cfg.Policy)
	if err != nil {
		return nil, err
	}

	generator := placement.NewGenerator(s.random, s.logger)
	stats := &BatchStats{
		Strategy:   cfg.Strategy,
		Policy:     policy.Name(),
		Games:      cfg.Games,
		Omniscient: cfg.Omniscient,
		ShotCounts: make([]int, 0, cfg.Games),
	}

	total := 0
	for i := range cfg.Games {
		layout, err := generator.Generate(policy)
		if err != nil {
			return nil, err
		}
		ocean, err := model.NewOcean(layout)
		if err != nil {
			return nil, err
		}
		engine, err := targeting.NewEngineForStrategy(cfg.Strategy, s.random, s.logger)
		if err != nil {
			return nil, err
		}
		if cfg.Omniscient {
			if adaptive, ok := engine.Heuristic().(*targeting.AdaptiveHeuristic); ok {
				adaptive.SetLiveCellSupplier(ocean.LiveCells)
			}
		}

		result, err := s.Play(ctx, ocean, engine)
		if err != nil {
			return nil, fmt.Errorf("game %d: %w", i+1, err)
		}

		stats.ShotCounts = append(stats.ShotCounts, result.Shots)
		total += result.Shots
		if i == 0 || result.Shots < stats.MinShots {
			stats.MinShots = result.Shots
		}
		if result.Shots > stats.MaxShots {
			stats.MaxShots = result.Shots
		}
	}
	stats.MeanShots = float64(total) / float64(cfg.Games)

	s.logger.Info("batch complete",
		slog.String("strategy", stats.Strategy),
		slog.String("policy", stats.Policy),
		slog.Int("games", stats.Games),
		slog.Float64("mean_shots", stats.MeanShots),
	)
	return stats, nil
}
