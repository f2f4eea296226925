package targeting

import "github.com/mcoot/seabattle/internal/model"

const (
	// BiasMinSunk is how many ships must be sunk before any bias is assumed
	BiasMinSunk = 2
	// EdgeBiasPercent is the share of sunk ships on the border ring that
	// triggers edge bias
	EdgeBiasPercent = 80
)

// OpponentModel summarises where the opponent's sunk ships lay
type OpponentModel struct {
	Sunk     int `json:"sunk"`
	OnBorder int `json:"onBorder"`
	InLeft   int `json:"inLeft"`
	InRight  int `json:"inRight"`
}

// RecordSunk classifies a sunk ship by its cells
func (m *OpponentModel) RecordSunk(chain []model.Coordinate) {
	if len(chain) == 0 {
		return
	}
	m.Sunk++

	border, left, right := true, true, true
	for _, c := range chain {
		border = border && c.OnBorder()
		left = left && c.Half() == model.HalfLeft
		right = right && c.Half() == model.HalfRight
	}
	if border {
		m.OnBorder++
	}
	if left {
		m.InLeft++
	}
	if right {
		m.InRight++
	}
}

// EdgeBias reports whether the opponent appears to hug the border
func (m OpponentModel) EdgeBias() bool {
	return m.Sunk >= BiasMinSunk && m.OnBorder*100 >= m.Sunk*EdgeBiasPercent
}

// HalfBias reports whether every sunk ship lay in the same half, and which
func (m OpponentModel) HalfBias() (model.Half, bool) {
	if m.Sunk < BiasMinSunk {
		return "", false
	}
	switch m.Sunk {
	case m.InLeft:
		return model.HalfLeft, true
	case m.InRight:
		return model.HalfRight, true
	}
	return "", false
}
