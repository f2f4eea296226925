package model

// ShipID identifies one ship of the fleet, 1..10
type ShipID int

// FleetLengths is the canonical fleet, indexed by ShipID-1
var FleetLengths = [...]int{4, 3, 3, 2, 2, 2, 1, 1, 1, 1}

// FleetSize is the number of ships in a fleet
const FleetSize = len(FleetLengths)

// FleetCells is the number of cells a full fleet occupies
const FleetCells = 20

// ShipSpec is one entry of the fleet
type ShipSpec struct {
	ID     ShipID
	Length int
}

// Fleet returns the canonical ships with their ids
func Fleet() []ShipSpec {
	ships := make([]ShipSpec, FleetSize)
	for i, length := range FleetLengths {
		ships[i] = ShipSpec{ID: ShipID(i + 1), Length: length}
	}
	return ships
}

// FleetLengthList returns a fresh copy of the fleet lengths, longest first
func FleetLengthList() []int {
	out := make([]int, FleetSize)
	copy(out, FleetLengths[:])
	return out
}

// MaxLength returns the longest length in the list, or 0 if empty
func MaxLength(lengths []int) int {
	longest := 0
	for _, l := range lengths {
		if l > longest {
			longest = l
		}
	}
	return longest
}
