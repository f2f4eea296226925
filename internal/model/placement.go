package model

import "fmt"

// Orientation is the direction a ship extends from its anchor
type Orientation string

const (
	Horizontal Orientation = "horizontal" // along increasing Col
	Vertical   Orientation = "vertical"   // along increasing Row
)

// Step returns the row/col offset between consecutive ship cells
func (o Orientation) Step() (int, int) {
	if o == Vertical {
		return 1, 0
	}
	return 0, 1
}

// ShipPlacement is one ship positioned on the board
type ShipPlacement struct {
	ShipID      ShipID      `json:"ship_id"`
	Length      int         `json:"length"`
	Anchor      Coordinate  `json:"anchor"`
	Orientation Orientation `json:"orientation"`
}

// Cells returns the cells the ship occupies, anchor first.
// Cells may be off the board if the placement is out of bounds.
func (p ShipPlacement) Cells() []Coordinate {
	return ShipCells(p.Anchor, p.Length, p.Orientation)
}

// ShipCells returns anchor + k*direction for k in [0, length)
func ShipCells(anchor Coordinate, length int, o Orientation) []Coordinate {
	dr, dc := o.Step()
	out := make([]Coordinate, length)
	for k := range length {
		out[k] = anchor.Add(k*dr, k*dc)
	}
	return out
}

// ValidateLayout checks that the placements form a complete legal fleet:
// every ship of the canonical fleet exactly once, on the board, with no
// shared or touching cells between different ships.
func ValidateLayout(placements []ShipPlacement) error {
	if len(placements) != FleetSize {
		return fmt.Errorf("%w: %d ships, want %d", ErrInvalidLayout, len(placements), FleetSize)
	}

	var owner [CellCount]ShipID
	seen := make(map[ShipID]bool, FleetSize)
	total := 0

	for _, p := range placements {
		if p.ShipID < 1 || int(p.ShipID) > FleetSize || seen[p.ShipID] {
			return fmt.Errorf("%w: bad or duplicate ship id %d", ErrInvalidLayout, p.ShipID)
		}
		seen[p.ShipID] = true
		if p.Length != FleetLengths[p.ShipID-1] {
			return fmt.Errorf("%w: ship %d has length %d", ErrInvalidLayout, p.ShipID, p.Length)
		}
		for _, c := range p.Cells() {
			if !c.Valid() {
				return fmt.Errorf("%w: ship %d leaves the board at %s", ErrInvalidLayout, p.ShipID, c)
			}
			if owner[c.Index()] != 0 {
				return fmt.Errorf("%w: ships %d and %d overlap at %s", ErrInvalidLayout, owner[c.Index()], p.ShipID, c)
			}
			owner[c.Index()] = p.ShipID
			total++
		}
	}

	for idx, id := range owner {
		if id == 0 {
			continue
		}
		for _, n := range CoordinateFromIndex(idx).Surrounding() {
			if other := owner[n.Index()]; other != 0 && other != id {
				return fmt.Errorf("%w: ships %d and %d touch at %s", ErrInvalidLayout, id, other, n)
			}
		}
	}

	if total != FleetCells {
		return fmt.Errorf("%w: %d occupied cells, want %d", ErrInvalidLayout, total, FleetCells)
	}
	return nil
}

// LayoutGrid renders a layout as rows of '#' for ship cells and '.' for water
func LayoutGrid(placements []ShipPlacement) []string {
	var grid [BoardSize][BoardSize]byte
	for r := range grid {
		for c := range grid[r] {
			grid[r][c] = '.'
		}
	}
	for _, p := range placements {
		for _, c := range p.Cells() {
			if c.Valid() {
				grid[c.Row][c.Col] = '#'
			}
		}
	}
	rows := make([]string, BoardSize)
	for r := range grid {
		rows[r] = string(grid[r][:])
	}
	return rows
}
