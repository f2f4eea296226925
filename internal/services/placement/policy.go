package placement

import (
	"fmt"

	"github.com/mcoot/seabattle/internal/dependencies/random"
	"github.com/mcoot/seabattle/internal/model"
)

// Pass is one ordered walk over candidate anchor cells
type Pass struct {
	// Cells are visited in order; each may anchor at most one ship
	Cells []model.Coordinate
	// Allow tightens the placement check per occupied cell; nil allows any cell
	Allow func(model.Coordinate) bool
	// Orientations returns the orientations to try at an anchor, in order;
	// nil tries both in random order
	Orientations func(anchor model.Coordinate) []model.Orientation
	// LongestFirst offers the unplaced ships longest first at every anchor
	LongestFirst bool
	// Fallback passes only run once StrictAttempts attempts have failed
	Fallback bool
}

// Policy decides where the generator looks for ship anchors
type Policy interface {
	Name() string
	// Passes returns the walks for one attempt. A later pass runs only when
	// the earlier ones leave ships unplaced; ships already placed are kept.
	Passes(rnd random.Random) []Pass
}

// NewPolicy returns the policy registered under name
func NewPolicy(name string) (Policy, error) {
	switch name {
	case model.PlacementPolicyUnbiased, "":
		return UnbiasedPolicy{}, nil
	case model.PlacementPolicyBorder:
		return BorderPolicy{}, nil
	case model.PlacementPolicyDiagonal:
		return DiagonalAvoidingPolicy{}, nil
	case model.PlacementPolicyHalf:
		return HalfBoardPolicy{}, nil
	default:
		return nil, fmt.Errorf("%w: %s", model.ErrUnknownPolicy, name)
	}
}

// UnbiasedPolicy walks the whole board in shuffled order
type UnbiasedPolicy struct{}

func (UnbiasedPolicy) Name() string { return model.PlacementPolicyUnbiased }

func (UnbiasedPolicy) Passes(rnd random.Random) []Pass {
	return []Pass{{Cells: shuffled(rnd, model.AllCoordinates())}}
}

// BorderPolicy keeps every ship on the outer ring, lying flush with the
// edge its anchor sits on
type BorderPolicy struct{}

func (BorderPolicy) Name() string { return model.PlacementPolicyBorder }

func (BorderPolicy) Passes(rnd random.Random) []Pass {
	ring := model.BorderRing()

	// Walk the ring as a cycle so ships pack end to end
	start := rnd.Intn(len(ring))
	cells := make([]model.Coordinate, 0, len(ring))
	for i := range ring {
		cells = append(cells, ring[(start+i)%len(ring)])
	}
	if random.Bool(rnd) {
		for i, j := 0, len(cells)-1; i < j; i, j = i+1, j-1 {
			cells[i], cells[j] = cells[j], cells[i]
		}
	}

	return []Pass{{
		Cells: cells,
		Allow: model.Coordinate.OnBorder,
		Orientations: func(anchor model.Coordinate) []model.Orientation {
			return flushOrientations(rnd, anchor)
		},
	}}
}

// flushOrientations returns the orientations that keep a ship along the
// edge the anchor touches; corners allow both
func flushOrientations(rnd random.Random, anchor model.Coordinate) []model.Orientation {
	last := model.BoardSize - 1
	var out []model.Orientation
	if anchor.Row == 0 || anchor.Row == last {
		out = append(out, model.Horizontal)
	}
	if anchor.Col == 0 || anchor.Col == last {
		out = append(out, model.Vertical)
	}
	if len(out) == 2 && random.Bool(rnd) {
		out[0], out[1] = out[1], out[0]
	}
	return out
}

// DiagonalAvoidingPolicy keeps every ship cell off both main diagonals
type DiagonalAvoidingPolicy struct{}

func (DiagonalAvoidingPolicy) Name() string { return model.PlacementPolicyDiagonal }

func (DiagonalAvoidingPolicy) Passes(rnd random.Random) []Pass {
	var cells []model.Coordinate
	for _, c := range model.AllCoordinates() {
		if !c.OnDiagonal() {
			cells = append(cells, c)
		}
	}
	return []Pass{{
		Cells: shuffled(rnd, cells),
		Allow: func(c model.Coordinate) bool { return !c.OnDiagonal() },
	}}
}

// HalfBoardPolicy crowds the whole fleet into one randomly chosen half.
// Only after StrictAttempts failures does an attempt finish the ships that
// did not fit with a full-board walk.
type HalfBoardPolicy struct{}

func (HalfBoardPolicy) Name() string { return model.PlacementPolicyHalf }

func (HalfBoardPolicy) Passes(rnd random.Random) []Pass {
	half := model.HalfLeft
	if random.Bool(rnd) {
		half = model.HalfRight
	}

	var inHalf []model.Coordinate
	for _, c := range model.AllCoordinates() {
		if half.Contains(c) {
			inHalf = append(inHalf, c)
		}
	}

	return []Pass{
		{Cells: shuffled(rnd, inHalf), Allow: half.Contains, LongestFirst: true},
		{Cells: shuffled(rnd, model.AllCoordinates()), Fallback: true},
	}
}

func shuffled(rnd random.Random, cells []model.Coordinate) []model.Coordinate {
	random.Shuffle(rnd, len(cells), func(i, j int) {
		cells[i], cells[j] = cells[j], cells[i]
	})
	return cells
}
