package model

// CellState is what the shooter knows about one cell of the opponent board
type CellState uint8

const (
	CellEmpty CellState = iota // not yet tried
	CellMiss                   // water, fired at or ruled out
	CellHit                    // ship cell, ship not yet confirmed sunk
	CellSunk                   // ship cell of a confirmed sunk ship
)

func (s CellState) String() string {
	switch s {
	case CellEmpty:
		return "empty"
	case CellMiss:
		return "miss"
	case CellHit:
		return "hit"
	case CellSunk:
		return "sunk"
	default:
		return "unknown"
	}
}
