package targeting

import (
	"slices"

	"github.com/mcoot/seabattle/internal/model"
)

// Mode is the phase of the hunt/search state machine
type Mode string

const (
	ModeSearch Mode = "search" // no unresolved hit
	ModeHunt   Mode = "hunt"   // at least one hit not yet confirmed sunk
)

// State is everything the shooter knows about the opponent board. It is
// built only from shot outcomes, never from the real board.
type State struct {
	cells      [model.CellCount]model.CellState
	huntQueue  []model.Coordinate
	huntHits   []model.Coordinate
	remaining  []int
	missStreak int
	pending    *model.Coordinate
}

func newState() State {
	return State{remaining: model.FleetLengthList()}
}

// Cell returns what is known about a cell
func (s *State) Cell(c model.Coordinate) model.CellState {
	return s.cells[c.Index()]
}

// Tried returns true if the cell was fired at or ruled out
func (s *State) Tried(c model.Coordinate) bool {
	return s.cells[c.Index()] != model.CellEmpty
}

// Cells returns a copy of the full cell view
func (s *State) Cells() [model.CellCount]model.CellState {
	return s.cells
}

// Remaining returns the lengths of ships not yet confirmed sunk
func (s *State) Remaining() []int {
	return slices.Clone(s.remaining)
}

// MissStreak returns the number of consecutive misses
func (s *State) MissStreak() int {
	return s.missStreak
}

// HuntQueue returns the pending hunt candidates in firing order
func (s *State) HuntQueue() []model.Coordinate {
	return slices.Clone(s.huntQueue)
}

// HuntHits returns the hits not yet attributed to a sunk ship
func (s *State) HuntHits() []model.Coordinate {
	return slices.Clone(s.huntHits)
}

// Mode returns HUNT while any hit is unresolved
func (s *State) Mode() Mode {
	if len(s.huntHits) > 0 {
		return ModeHunt
	}
	return ModeSearch
}

// Untried returns every untried cell accepted by allowed, row-major.
// A nil allowed accepts every cell.
func (s *State) Untried(allowed func(model.Coordinate) bool) []model.Coordinate {
	var out []model.Coordinate
	for idx, cell := range s.cells {
		if cell != model.CellEmpty {
			continue
		}
		c := model.CoordinateFromIndex(idx)
		if allowed == nil || allowed(c) {
			out = append(out, c)
		}
	}
	return out
}

// firstUntried returns the first untried cell accepted by allowed, row-major
func (s *State) firstUntried(allowed func(model.Coordinate) bool) (model.Coordinate, bool) {
	for idx, cell := range s.cells {
		if cell != model.CellEmpty {
			continue
		}
		c := model.CoordinateFromIndex(idx)
		if allowed == nil || allowed(c) {
			return c, true
		}
	}
	return model.Coordinate{}, false
}

func (s *State) untriedCount() int {
	n := 0
	for _, cell := range s.cells {
		if cell == model.CellEmpty {
			n++
		}
	}
	return n
}
