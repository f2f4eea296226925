package targeting

import (
	"encoding/json"
	"fmt"

	"github.com/mcoot/seabattle/internal/dependencies/random"
	"github.com/mcoot/seabattle/internal/model"
)

const (
	// EducatedGuessMissStreak is the miss streak at which the live cell
	// supplier is consulted
	EducatedGuessMissStreak = 8
	// BiasDisproofMisses is how many misses a bias mode may take before it
	// is abandoned for the rest of the game
	BiasDisproofMisses = 5
)

// LiveCellSupplier returns cells of the opponent's ships still afloat. It
// must only be wired where the caller may legitimately see the opponent
// board, such as a server-side simulation.
type LiveCellSupplier func() []model.Coordinate

type adaptiveMode string

const (
	adaptiveModeNone    adaptiveMode = ""
	adaptiveModeGuess   adaptiveMode = "guess"
	adaptiveModeEdge    adaptiveMode = "edge"
	adaptiveModeHalf    adaptiveMode = "half"
	adaptiveModeHeatmap adaptiveMode = "heatmap"
)

// AdaptiveHeuristic layers opponent-bias inference over the heatmap
type AdaptiveHeuristic struct {
	random   random.Random
	heatmap  *HeatmapHeuristic
	supplier LiveCellSupplier

	model        OpponentModel
	edgeMisses   int
	halfMisses   int
	edgeDisabled bool
	halfDisabled bool
	lastMode     adaptiveMode
	lastShot     *model.Coordinate
}

// NewAdaptiveHeuristic creates an AdaptiveHeuristic without a supplier
func NewAdaptiveHeuristic(rnd random.Random) *AdaptiveHeuristic {
	return &AdaptiveHeuristic{random: rnd, heatmap: NewHeatmapHeuristic(rnd)}
}

func (h *AdaptiveHeuristic) Name() string { return model.BotStrategyAdaptive }

// SetLiveCellSupplier enables educated guesses after long miss streaks
func (h *AdaptiveHeuristic) SetLiveCellSupplier(s LiveCellSupplier) {
	h.supplier = s
}

// Model returns what has been inferred about the opponent
func (h *AdaptiveHeuristic) Model() OpponentModel {
	return h.model
}

// EdgeBiasActive reports whether edge mode would steer the next search shot
func (h *AdaptiveHeuristic) EdgeBiasActive() bool {
	return !h.edgeDisabled && h.model.EdgeBias()
}

// HalfBiasActive reports whether half mode would steer the next search shot
func (h *AdaptiveHeuristic) HalfBiasActive() (model.Half, bool) {
	if h.halfDisabled {
		return "", false
	}
	return h.model.HalfBias()
}

// Choose applies educated guess, edge mode, half mode and the heatmap in
// that order. The hunt queue is handled by the engine before this is called.
func (h *AdaptiveHeuristic) Choose(st *State, allowed func(model.Coordinate) bool) (model.Coordinate, bool) {
	if allowed != nil {
		return h.heatmap.Choose(st, allowed)
	}

	if c, ok := h.educatedGuess(st); ok {
		st.missStreak = 0
		return h.chose(adaptiveModeGuess, c)
	}

	if h.EdgeBiasActive() {
		if c, ok := h.heatmap.Choose(st, model.Coordinate.OnBorder); ok {
			return h.chose(adaptiveModeEdge, c)
		}
	}

	if half, ok := h.HalfBiasActive(); ok {
		if c, ok := h.heatmap.Choose(st, half.Contains); ok {
			return h.chose(adaptiveModeHalf, c)
		}
	}

	c, ok := h.heatmap.Choose(st, nil)
	if !ok {
		return c, false
	}
	return h.chose(adaptiveModeHeatmap, c)
}

func (h *AdaptiveHeuristic) educatedGuess(st *State) (model.Coordinate, bool) {
	if h.supplier == nil || st.missStreak < EducatedGuessMissStreak {
		return model.Coordinate{}, false
	}
	var candidates []model.Coordinate
	for _, c := range h.supplier() {
		if c.Valid() && !st.Tried(c) {
			candidates = append(candidates, c)
		}
	}
	if len(candidates) == 0 {
		return model.Coordinate{}, false
	}
	return candidates[h.random.Intn(len(candidates))], true
}

func (h *AdaptiveHeuristic) chose(mode adaptiveMode, c model.Coordinate) (model.Coordinate, bool) {
	h.lastMode = mode
	h.lastShot = &c
	return c, true
}

// Observe updates the opponent model and the disproof counters
func (h *AdaptiveHeuristic) Observe(shot model.Coordinate, hit, sunk bool, chain []model.Coordinate) {
	if sunk {
		h.model.RecordSunk(chain)
	}
	if h.lastShot == nil || *h.lastShot != shot {
		return
	}
	mode := h.lastMode
	h.lastShot, h.lastMode = nil, adaptiveModeNone
	if hit {
		return
	}

	switch mode {
	case adaptiveModeEdge:
		h.edgeMisses++
		if h.edgeMisses >= BiasDisproofMisses {
			h.edgeDisabled = true
		}
	case adaptiveModeHalf:
		h.halfMisses++
		if h.halfMisses >= BiasDisproofMisses {
			h.halfDisabled = true
		}
	}
}

type adaptiveState struct {
	Model        OpponentModel     `json:"model"`
	EdgeMisses   int               `json:"edgeMisses"`
	HalfMisses   int               `json:"halfMisses"`
	EdgeDisabled bool              `json:"edgeDisabled"`
	HalfDisabled bool              `json:"halfDisabled"`
	LastMode     string            `json:"lastMode,omitempty"`
	LastShot     *model.Coordinate `json:"lastShot,omitempty"`
}

func (h *AdaptiveHeuristic) SaveState() (json.RawMessage, error) {
	return json.Marshal(adaptiveState{
		Model:        h.model,
		EdgeMisses:   h.edgeMisses,
		HalfMisses:   h.halfMisses,
		EdgeDisabled: h.edgeDisabled,
		HalfDisabled: h.halfDisabled,
		LastMode:     string(h.lastMode),
		LastShot:     h.lastShot,
	})
}

func (h *AdaptiveHeuristic) LoadState(data json.RawMessage) error {
	var s adaptiveState
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("%w: adaptive state: %v", model.ErrInvalidSnapshot, err)
	}
	m := s.Model
	if m.Sunk < 0 || m.Sunk > model.FleetSize || m.OnBorder > m.Sunk || m.InLeft+m.InRight > m.Sunk ||
		m.OnBorder < 0 || m.InLeft < 0 || m.InRight < 0 || s.EdgeMisses < 0 || s.HalfMisses < 0 {
		return fmt.Errorf("%w: adaptive counters out of range", model.ErrInvalidSnapshot)
	}
	if s.LastShot != nil && !s.LastShot.Valid() {
		return fmt.Errorf("%w: adaptive last shot %s", model.ErrInvalidSnapshot, *s.LastShot)
	}
	switch adaptiveMode(s.LastMode) {
	case adaptiveModeNone, adaptiveModeGuess, adaptiveModeEdge, adaptiveModeHalf, adaptiveModeHeatmap:
	default:
		return fmt.Errorf("%w: adaptive mode %q", model.ErrInvalidSnapshot, s.LastMode)
	}

	h.model = m
	h.edgeMisses, h.halfMisses = s.EdgeMisses, s.HalfMisses
	h.edgeDisabled, h.halfDisabled = s.EdgeDisabled, s.HalfDisabled
	h.lastMode, h.lastShot = adaptiveMode(s.LastMode), s.LastShot
	return nil
}
