package match

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/mcoot/seabattle/internal/model"
	"github.com/mcoot/seabattle/internal/services/placement"
	"github.com/mcoot/seabattle/internal/services/targeting"
)

// MaxDuelTurns is a safety limit for the Duel loop
const MaxDuelTurns = 2 * MaxShots

// Contender is one side of a duel
type Contender struct {
	Name     string `json:"name"`
	Strategy string `json:"strategy"`
	Policy   string `json:"policy"`
}

// DuelResult reports who sank the other fleet first
type DuelResult struct {
	Winner  int           `json:"winner"`
	Turns   int           `json:"turns"`
	Results [2]GameResult `json:"results"`
}

type duelSide struct {
	contender Contender
	engine    *targeting.Engine
	ocean     *model.Ocean
	result    GameResult
}

// Duel plays two engines against each other's generated fleets. A side
// keeps shooting while it hits; a miss passes the turn.
func (s *Simulator) Duel(ctx context.Context, a, b Contender) (*DuelResult, error) {
	generator := placement.NewGenerator(s.random, s.logger)

	var sides [2]*duelSide
	for i, c := range []Contender{a, b} {
		policy, err := placement.NewPolicy(c.Policy)
		if err != nil {
			return nil, err
		}
		layout, err := generator.Generate(policy)
		if err != nil {
			return nil, err
		}
		ocean, err := model.NewOcean(layout)
		if err != nil {
			return nil, err
		}
		engine, err := targeting.NewEngineForStrategy(c.Strategy, s.random, s.logger)
		if err != nil {
			return nil, err
		}
		sides[i] = &duelSide{contender: c, engine: engine, ocean: ocean, result: GameResult{Strategy: c.Strategy}}
	}

	current := 0
	for turn := 1; turn <= MaxDuelTurns; turn++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		shooter, target := sides[current], sides[1-current]
		record, err := s.fire(target.ocean, shooter.engine)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", shooter.contender.Name, err)
		}
		shooter.result.Log = append(shooter.result.Log, record)
		shooter.result.Shots++

		if !record.Hit {
			shooter.result.Misses++
			current = 1 - current
			continue
		}
		shooter.result.Hits++

		if target.ocean.AllSunk() {
			s.logger.Info("duel finished",
				slog.String("winner", shooter.contender.Name),
				slog.Int("turns", turn),
			)
			return &DuelResult{
				Winner:  current,
				Turns:   turn,
				Results: [2]GameResult{sides[0].result, sides[1].result},
			}, nil
		}
	}

	return nil, fmt.Errorf("duel unfinished after %d turns", MaxDuelTurns)
}
