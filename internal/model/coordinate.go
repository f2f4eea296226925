package model

import "fmt"

// BoardSize is the width and height of every board
const BoardSize = 10

// CellCount is the number of cells on a board
const CellCount = BoardSize * BoardSize

// Coordinate identifies a cell on the board
type Coordinate struct {
	Row int `json:"row"` // 0-indexed from top
	Col int `json:"col"` // 0-indexed from left
}

// NewCoordinate validates and builds a coordinate
func NewCoordinate(row, col int) (Coordinate, error) {
	c := Coordinate{Row: row, Col: col}
	if !c.Valid() {
		return Coordinate{}, fmt.Errorf("%w: (%d,%d)", ErrInvalidCoordinate, row, col)
	}
	return c, nil
}

// CoordinateFromIndex converts a row-major index back to a coordinate
func CoordinateFromIndex(idx int) Coordinate {
	return Coordinate{Row: idx / BoardSize, Col: idx % BoardSize}
}

// Valid returns true if the coordinate lies on the board
func (c Coordinate) Valid() bool {
	return c.Row >= 0 && c.Row < BoardSize && c.Col >= 0 && c.Col < BoardSize
}

// Index returns the row-major index of the coordinate
func (c Coordinate) Index() int {
	return c.Row*BoardSize + c.Col
}

// Add offsets the coordinate; the result may be off the board
func (c Coordinate) Add(dRow, dCol int) Coordinate {
	return Coordinate{Row: c.Row + dRow, Col: c.Col + dCol}
}

// OnBorder returns true if the cell is on the outer ring
func (c Coordinate) OnBorder() bool {
	return c.Row == 0 || c.Col == 0 || c.Row == BoardSize-1 || c.Col == BoardSize-1
}

// OnDiagonal returns true if the cell is on either main diagonal
func (c Coordinate) OnDiagonal() bool {
	return c.Row == c.Col || c.Row+c.Col == BoardSize-1
}

// Half returns which half of the board the cell's column falls in
func (c Coordinate) Half() Half {
	if c.Col < BoardSize/2 {
		return HalfLeft
	}
	return HalfRight
}

// Orthogonal returns the on-board 4-neighbours along the row first
// (right, left), then along the column (down, up)
func (c Coordinate) Orthogonal() []Coordinate {
	out := make([]Coordinate, 0, 4)
	for _, d := range orthogonalOffsets {
		if n := c.Add(d[0], d[1]); n.Valid() {
			out = append(out, n)
		}
	}
	return out
}

// Surrounding returns the on-board 8-neighbours
func (c Coordinate) Surrounding() []Coordinate {
	out := make([]Coordinate, 0, 8)
	for dr := -1; dr <= 1; dr++ {
		for dc := -1; dc <= 1; dc++ {
			if dr == 0 && dc == 0 {
				continue
			}
			if n := c.Add(dr, dc); n.Valid() {
				out = append(out, n)
			}
		}
	}
	return out
}

func (c Coordinate) String() string {
	return fmt.Sprintf("(%d,%d)", c.Row, c.Col)
}

var orthogonalOffsets = [4][2]int{{0, 1}, {0, -1}, {1, 0}, {-1, 0}}

// Half names one side of the board split down the middle column
type Half string

const (
	HalfLeft  Half = "left"
	HalfRight Half = "right"
)

// Contains returns true if the cell lies in this half
func (h Half) Contains(c Coordinate) bool {
	return c.Half() == h
}

// AllCoordinates returns every cell in row-major order
func AllCoordinates() []Coordinate {
	out := make([]Coordinate, 0, CellCount)
	for idx := 0; idx < CellCount; idx++ {
		out = append(out, CoordinateFromIndex(idx))
	}
	return out
}

// BorderRing returns the outer ring clockwise from (0,0)
func BorderRing() []Coordinate {
	last := BoardSize - 1
	out := make([]Coordinate, 0, 4*last)
	for col := 0; col < last; col++ {
		out = append(out, Coordinate{Row: 0, Col: col})
	}
	for row := 0; row < last; row++ {
		out = append(out, Coordinate{Row: row, Col: last})
	}
	for col := last; col > 0; col-- {
		out = append(out, Coordinate{Row: last, Col: col})
	}
	for row := last; row > 0; row-- {
		out = append(out, Coordinate{Row: row, Col: 0})
	}
	return out
}
