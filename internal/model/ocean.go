package model

import "fmt"

// ShotOutcome is the verdict for one shot against an Ocean
type ShotOutcome struct {
	Hit    bool   `json:"hit"`
	Sunk   bool   `json:"sunk"`
	ShipID ShipID `json:"ship_id,omitempty"`
}

// Ocean is the referee's view of one player's fleet. It is the only type
// that knows where the ships are; shooters only ever see ShotOutcomes.
type Ocean struct {
	Placements []ShipPlacement `json:"placements"`
	Fired      [CellCount]bool `json:"fired"`

	owner     [CellCount]ShipID
	hitsTaken map[ShipID]int
}

// NewOcean builds an ocean from a legal layout
func NewOcean(placements []ShipPlacement) (*Ocean, error) {
	if err := ValidateLayout(placements); err != nil {
		return nil, err
	}
	o := &Ocean{Placements: append([]ShipPlacement(nil), placements...)}
	o.index()
	return o, nil
}

// RestoreOcean rebuilds an ocean from its placements and fired record
func RestoreOcean(placements []ShipPlacement, fired [CellCount]bool) (*Ocean, error) {
	o, err := NewOcean(placements)
	if err != nil {
		return nil, err
	}
	o.Fired = fired
	o.index()
	return o, nil
}

func (o *Ocean) index() {
	o.owner = [CellCount]ShipID{}
	o.hitsTaken = make(map[ShipID]int, FleetSize)
	for _, p := range o.Placements {
		for _, c := range p.Cells() {
			o.owner[c.Index()] = p.ShipID
			if o.Fired[c.Index()] {
				o.hitsTaken[p.ShipID]++
			}
		}
	}
}

// Fire resolves a shot
func (o *Ocean) Fire(c Coordinate) (ShotOutcome, error) {
	if !c.Valid() {
		return ShotOutcome{}, fmt.Errorf("%w: %s", ErrInvalidCoordinate, c)
	}
	if o.AllSunk() {
		return ShotOutcome{}, ErrGameOver
	}
	if o.Fired[c.Index()] {
		return ShotOutcome{}, fmt.Errorf("%w: %s", ErrAlreadyFiredAt, c)
	}
	o.Fired[c.Index()] = true

	id := o.owner[c.Index()]
	if id == 0 {
		return ShotOutcome{}, nil
	}
	o.hitsTaken[id]++
	return ShotOutcome{
		Hit:    true,
		Sunk:   o.hitsTaken[id] == FleetLengths[id-1],
		ShipID: id,
	}, nil
}

// ShipAt returns the ship occupying the cell, or 0 for water
func (o *Ocean) ShipAt(c Coordinate) ShipID {
	if !c.Valid() {
		return 0
	}
	return o.owner[c.Index()]
}

// LiveCells returns the ship cells not yet hit, row-major
func (o *Ocean) LiveCells() []Coordinate {
	var out []Coordinate
	for idx, id := range o.owner {
		if id != 0 && !o.Fired[idx] {
			out = append(out, CoordinateFromIndex(idx))
		}
	}
	return out
}

// ShipsRemaining returns how many ships are still afloat
func (o *Ocean) ShipsRemaining() int {
	n := 0
	for _, p := range o.Placements {
		if o.hitsTaken[p.ShipID] < p.Length {
			n++
		}
	}
	return n
}

// AllSunk returns true once every ship cell has been hit
func (o *Ocean) AllSunk() bool {
	return o.ShipsRemaining() == 0
}
