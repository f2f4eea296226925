package placement

import (
	"cmp"
	"fmt"
	"io"
	"log/slog"
	"slices"

	"github.com/mcoot/seabattle/internal/dependencies/random"
	"github.com/mcoot/seabattle/internal/model"
)

const (
	// MaxAttempts bounds how many fresh layouts Generate tries
	MaxAttempts = 1000
	// StrictAttempts is how many attempts skip fallback passes
	StrictAttempts = MaxAttempts / 2
)

// Generator produces legal fleet layouts
type Generator struct {
	random random.Random
	logger *slog.Logger
}

// NewGenerator creates a Generator drawing every random decision from rnd
func NewGenerator(rnd random.Random, logger *slog.Logger) *Generator {
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}
	return &Generator{
		random: rnd,
		logger: logger.With(slog.String("component", "placement-generator")),
	}
}

// Generate returns a complete legal layout for the policy, or
// ErrPlacementExhausted if MaxAttempts attempts all fail
func (g *Generator) Generate(policy Policy) ([]model.ShipPlacement, error) {
	for attempt := 1; attempt <= MaxAttempts; attempt++ {
		placements, ok := g.attempt(policy, attempt > StrictAttempts)
		if !ok {
			continue
		}
		g.logger.Debug("fleet placed",
			slog.String("policy", policy.Name()),
			slog.Int("attempts", attempt),
		)
		return placements, nil
	}

	g.logger.Warn("fleet placement exhausted",
		slog.String("policy", policy.Name()),
		slog.Int("attempts", MaxAttempts),
	)
	return nil, fmt.Errorf("%w: policy %s after %d attempts", model.ErrPlacementExhausted, policy.Name(), MaxAttempts)
}

// attempt runs one try: shuffle the fleet, then walk each pass placing the
// first queued ship that fits at every candidate anchor
func (g *Generator) attempt(policy Policy, fallback bool) ([]model.ShipPlacement, bool) {
	queue := model.Fleet()
	random.Shuffle(g.random, len(queue), func(i, j int) {
		queue[i], queue[j] = queue[j], queue[i]
	})

	var grid occupancy
	placements := make([]model.ShipPlacement, 0, model.FleetSize)

	for _, pass := range policy.Passes(g.random) {
		if pass.Fallback && !fallback {
			break
		}
		if pass.LongestFirst {
			slices.SortStableFunc(queue, func(a, b model.ShipSpec) int {
				return cmp.Compare(b.Length, a.Length)
			})
		}
		for _, anchor := range pass.Cells {
			if len(queue) == 0 {
				break
			}
			if grid.occupied(anchor) {
				continue
			}

			orientations := g.orientations(pass, anchor)
		ships:
			for qi, ship := range queue {
				for _, o := range orientations {
					if !grid.canPlace(anchor, ship.Length, o, pass.Allow) {
						continue
					}
					p := model.ShipPlacement{
						ShipID:      ship.ID,
						Length:      ship.Length,
						Anchor:      anchor,
						Orientation: o,
					}
					grid.place(p)
					placements = append(placements, p)
					queue = append(queue[:qi], queue[qi+1:]...)
					break ships
				}
			}
		}
		if len(queue) == 0 {
			return placements, true
		}
	}

	return nil, false
}

func (g *Generator) orientations(pass Pass, anchor model.Coordinate) []model.Orientation {
	if pass.Orientations != nil {
		return pass.Orientations(anchor)
	}
	if random.Bool(g.random) {
		return []model.Orientation{model.Vertical, model.Horizontal}
	}
	return []model.Orientation{model.Horizontal, model.Vertical}
}

// occupancy is the per-attempt grid of placed ship ids
type occupancy [model.CellCount]model.ShipID

func (o *occupancy) occupied(c model.Coordinate) bool {
	return o[c.Index()] != 0
}

// canPlace checks bounds, emptiness, the policy rule and that the 3x3
// neighbourhood of every ship cell is clear of other ships
func (o *occupancy) canPlace(anchor model.Coordinate, length int, orient model.Orientation, allow func(model.Coordinate) bool) bool {
	for _, c := range model.ShipCells(anchor, length, orient) {
		if !c.Valid() || o.occupied(c) {
			return false
		}
		if allow != nil && !allow(c) {
			return false
		}
		for _, n := range c.Surrounding() {
			if o.occupied(n) {
				return false
			}
		}
	}
	return true
}

func (o *occupancy) place(p model.ShipPlacement) {
	for _, c := range p.Cells() {
		o[c.Index()] = p.ShipID
	}
}
