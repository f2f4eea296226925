package targeting

import (
	"encoding/json"
	"fmt"

	"github.com/mcoot/seabattle/internal/dependencies/random"
	"github.com/mcoot/seabattle/internal/model"
)

// diagonalSequence walks the main diagonal outside-in, then the
// anti-diagonal outside-in: (0,0),(9,9),(1,1),(8,8),...,(0,9),(9,0),...
var diagonalSequence = func() []model.Coordinate {
	seq := make([]model.Coordinate, 0, 2*model.BoardSize)
	last := model.BoardSize - 1
	for i := 0; i < model.BoardSize/2; i++ {
		seq = append(seq, model.Coordinate{Row: i, Col: i}, model.Coordinate{Row: last - i, Col: last - i})
	}
	for i := 0; i < model.BoardSize/2; i++ {
		seq = append(seq, model.Coordinate{Row: i, Col: last - i}, model.Coordinate{Row: last - i, Col: i})
	}
	return seq
}()

// DiagonalSequence returns the order the diagonal phase fires in
func DiagonalSequence() []model.Coordinate {
	return append([]model.Coordinate(nil), diagonalSequence...)
}

// DiagonalMissBudget is how many diagonal-phase misses are tolerated while
// the longest surviving ship has the given length
func DiagonalMissBudget(longest int) int {
	switch longest {
	case 4:
		return 14
	case 3:
		return 12
	case 2:
		return 8
	default:
		return 6
	}
}

// DiagonalHeuristic fires along both diagonals until its miss budget is
// spent, then hands over to the heatmap for the rest of the game
type DiagonalHeuristic struct {
	heatmap *HeatmapHeuristic

	next   int
	misses int
	done   bool
	last   *model.Coordinate
}

// NewDiagonalHeuristic creates a DiagonalHeuristic
func NewDiagonalHeuristic(rnd random.Random) *DiagonalHeuristic {
	return &DiagonalHeuristic{heatmap: NewHeatmapHeuristic(rnd)}
}

func (h *DiagonalHeuristic) Name() string { return model.BotStrategyDiagonal }

// InDiagonalPhase returns true until the heuristic has switched to the heatmap
func (h *DiagonalHeuristic) InDiagonalPhase() bool {
	return !h.done
}

// Misses returns the diagonal-phase misses so far
func (h *DiagonalHeuristic) Misses() int {
	return h.misses
}

// Choose returns the next untried diagonal cell while the phase lasts.
// Restricted proposals always go to the heatmap.
func (h *DiagonalHeuristic) Choose(st *State, allowed func(model.Coordinate) bool) (model.Coordinate, bool) {
	if allowed != nil {
		return h.heatmap.Choose(st, allowed)
	}

	if !h.done && h.misses >= DiagonalMissBudget(model.MaxLength(st.remaining)) {
		h.done = true
	}
	for !h.done && h.next < len(diagonalSequence) {
		c := diagonalSequence[h.next]
		h.next++
		if st.Tried(c) {
			continue
		}
		h.last = &c
		return c, true
	}
	h.done = true
	h.last = nil

	return h.heatmap.Choose(st, nil)
}

// Observe counts misses on diagonal-phase shots
func (h *DiagonalHeuristic) Observe(shot model.Coordinate, hit, _ bool, _ []model.Coordinate) {
	if h.last == nil || *h.last != shot {
		return
	}
	h.last = nil
	if !hit {
		h.misses++
	}
}

type diagonalState struct {
	Next   int               `json:"next"`
	Misses int               `json:"misses"`
	Done   bool              `json:"done"`
	Last   *model.Coordinate `json:"last,omitempty"`
}

func (h *DiagonalHeuristic) SaveState() (json.RawMessage, error) {
	return json.Marshal(diagonalState{Next: h.next, Misses: h.misses, Done: h.done, Last: h.last})
}

func (h *DiagonalHeuristic) LoadState(data json.RawMessage) error {
	var s diagonalState
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("%w: diagonal state: %v", model.ErrInvalidSnapshot, err)
	}
	if s.Next < 0 || s.Next > len(diagonalSequence) || s.Misses < 0 {
		return fmt.Errorf("%w: diagonal state out of range", model.ErrInvalidSnapshot)
	}
	if s.Last != nil && !s.Last.Valid() {
		return fmt.Errorf("%w: diagonal last shot %s", model.ErrInvalidSnapshot, *s.Last)
	}
	h.next, h.misses, h.done, h.last = s.Next, s.Misses, s.Done, s.Last
	return nil
}
