package astar

import (
	"fmt"

	"github.com/paulmach/orb"
)

// CellID indexes a cell in its grid's contiguous cell storage.
// For a grid of side n the cell at (x, y) has ID x*n + y.
type CellID int

// NoCell marks the absence of a cell, e.g. the predecessor of the start cell.
const NoCell CellID = -1

// Cell is one square of the grid. Its fields are fixed at construction.
type Cell struct {
	ID       CellID
	X        int
	Y        int
	Obstacle bool

	neighbors []CellID
}

// Point returns the cell center in grid units.
func (c Cell) Point() orb.Point {
	return orb.Point{float64(c.X), float64(c.Y)}
}

// String provides a string representation of Cell
func (c Cell) String() string {
	return fmt.Sprintf("(%d,%d)", c.X, c.Y)
}
