package targeting

import (
	"slices"

	"github.com/mcoot/seabattle/internal/dependencies/random"
	"github.com/mcoot/seabattle/internal/model"
)

const (
	// BorderBonusMissStreak is the miss streak beyond which empty border
	// cells get the border bonus added to their weight
	BorderBonusMissStreak = 5
	// BorderBonusMin is the least border bonus
	BorderBonusMin = 4
	// BorderBonusDivisor sets the bonus to the hottest weight divided by it
	BorderBonusDivisor = 2
)

// Heatmap is the per-cell count of feasible placements of the remaining
// ships, each placement weighted by its length
type Heatmap [model.CellCount]int

// At returns the weight of a cell
func (h *Heatmap) At(c model.Coordinate) int {
	return h[c.Index()]
}

// Peak returns the largest weight on the map
func (h *Heatmap) Peak() int {
	return slices.Max(h[:])
}

// BorderBonus is the flat weight added to every empty border cell once the
// miss streak is long enough, scaled from the hottest cell
func BorderBonus(heat *Heatmap) int {
	return max(BorderBonusMin, heat.Peak()/BorderBonusDivisor)
}

// ScoreHeatmap is BuildHeatmap plus the border bonus when the miss streak
// exceeds BorderBonusMissStreak
func ScoreHeatmap(st *State) Heatmap {
	heat := BuildHeatmap(st)
	if st.missStreak <= BorderBonusMissStreak {
		return heat
	}
	bonus := BorderBonus(&heat)
	for idx := range heat {
		c := model.CoordinateFromIndex(idx)
		if c.OnBorder() && !st.Tried(c) {
			heat[idx] += bonus
		}
	}
	return heat
}

// BuildHeatmap enumerates every horizontal and vertical placement of each
// remaining ship that covers only untried cells
func BuildHeatmap(st *State) Heatmap {
	var heat Heatmap
	for _, length := range st.remaining {
		orientations := []model.Orientation{model.Horizontal, model.Vertical}
		if length == 1 {
			orientations = orientations[:1]
		}
		for idx := 0; idx < model.CellCount; idx++ {
			anchor := model.CoordinateFromIndex(idx)
			for _, o := range orientations {
				cells := model.ShipCells(anchor, length, o)
				if !allUntried(st, cells) {
					continue
				}
				for _, c := range cells {
					heat[c.Index()] += length
				}
			}
		}
	}
	return heat
}

func allUntried(st *State, cells []model.Coordinate) bool {
	for _, c := range cells {
		if !c.Valid() || st.Tried(c) {
			return false
		}
	}
	return true
}

// HeatmapHeuristic fires at the hottest untried cell
type HeatmapHeuristic struct {
	random random.Random
}

// NewHeatmapHeuristic creates a HeatmapHeuristic
func NewHeatmapHeuristic(rnd random.Random) *HeatmapHeuristic {
	return &HeatmapHeuristic{random: rnd}
}

func (h *HeatmapHeuristic) Name() string { return model.BotStrategyHeatmap }

// Choose picks uniformly among the allowed untried cells of maximum
// weight, or the first allowed untried cell if nothing has weight
func (h *HeatmapHeuristic) Choose(st *State, allowed func(model.Coordinate) bool) (model.Coordinate, bool) {
	heat := ScoreHeatmap(st)

	best := 0
	var candidates []model.Coordinate
	for _, c := range st.Untried(allowed) {
		w := heat.At(c)
		switch {
		case w <= 0 || w < best:
		case w > best:
			best = w
			candidates = append(candidates[:0], c)
		default:
			candidates = append(candidates, c)
		}
	}

	if len(candidates) == 0 {
		return st.firstUntried(allowed)
	}
	return candidates[h.random.Intn(len(candidates))], true
}
