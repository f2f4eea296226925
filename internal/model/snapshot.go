package model

import (
	"encoding/json"
	"fmt"
	"strings"
)

// TargetingSnapshot is the persisted form of one targeting engine
type TargetingSnapshot struct {
	Strategy   string          `json:"strategy"`
	Cells      string          `json:"cells"` // see EncodeCells
	HuntQueue  []Coordinate    `json:"hunt_queue,omitempty"`
	HuntHits   []Coordinate    `json:"hunt_hits,omitempty"`
	Remaining  []int           `json:"remaining"`
	MissStreak int             `json:"miss_streak"`
	Pending    *Coordinate     `json:"pending,omitempty"`
	Heuristic  json.RawMessage `json:"heuristic,omitempty"`
}

const cellGlyphs = "-ox#" // indexed by CellState

// EncodeCells renders a cell view as a 100-character row-major string
func EncodeCells(cells [CellCount]CellState) string {
	var b strings.Builder
	b.Grow(CellCount)
	for _, s := range cells {
		b.WriteByte(cellGlyphs[s])
	}
	return b.String()
}

// DecodeCells parses the output of EncodeCells
func DecodeCells(encoded string) ([CellCount]CellState, error) {
	var cells [CellCount]CellState
	if len(encoded) != CellCount {
		return cells, fmt.Errorf("%w: cell string has length %d", ErrInvalidSnapshot, len(encoded))
	}
	for i := 0; i < CellCount; i++ {
		idx := strings.IndexByte(cellGlyphs, encoded[i])
		if idx < 0 {
			return cells, fmt.Errorf("%w: bad cell glyph %q", ErrInvalidSnapshot, encoded[i])
		}
		cells[i] = CellState(idx)
	}
	return cells, nil
}
