package astar

import (
	"fmt"
	"math/rand"
)

// Grid is a fixed n x n matrix of cells stored row-major by x.
type Grid struct {
	size  int
	cells []Cell
}

// NewGrid builds a grid of the given side where every cell independently
// becomes an obstacle with the given probability. Draws are taken in
// row-major order (x outer, y inner), so a seeded rng reproduces a layout.
// The cell (0,0) is always free.
func NewGrid(size int, obstacleProbability float64, rng *rand.Rand) (*Grid, error) {
	if obstacleProbability < 0 || obstacleProbability >= 1 {
		return nil, fmt.Errorf("%w: got %v", ErrInvalidProbability, obstacleProbability)
	}
	return NewGridFromLayout(size, func(_, _ int) bool {
		return rng.Float64() < obstacleProbability
	})
}

// NewGridFromLayout builds a grid whose obstacle flags come from isObstacle,
// called once per cell in row-major order. The cell (0,0) is always free.
func NewGridFromLayout(size int, isObstacle func(x, y int) bool) (*Grid, error) {
	if size <= 0 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidGridSize, size)
	}

	g := &Grid{size: size, cells: make([]Cell, size*size)}
	for x := 0; x < size; x++ {
		for y := 0; y < size; y++ {
			id := g.ID(x, y)
			g.cells[id] = Cell{ID: id, X: x, Y: y}
			if isObstacle != nil && isObstacle(x, y) {
				g.cells[id].Obstacle = true
			}
		}
	}
	g.cells[0].Obstacle = false
	g.computeAdjacency()
	return g, nil
}

// computeAdjacency fills every cell's Moore neighborhood. Membership is purely
// geometric: obstacle flags are not consulted.
func (g *Grid) computeAdjacency() {
	for id := range g.cells {
		c := &g.cells[id]
		c.neighbors = make([]CellID, 0, 8)
		for i := c.X - 1; i <= c.X+1; i++ {
			for j := c.Y - 1; j <= c.Y+1; j++ {
				if (i != c.X || j != c.Y) && g.Contains(i, j) {
					c.neighbors = append(c.neighbors, g.ID(i, j))
				}
			}
		}
	}
}

// Size returns the side length of the grid.
func (g *Grid) Size() int { return g.size }

// Len returns the number of cells.
func (g *Grid) Len() int { return len(g.cells) }

// Contains reports whether (x, y) lies inside the grid.
func (g *Grid) Contains(x, y int) bool {
	return x >= 0 && x < g.size && y >= 0 && y < g.size
}

// ID returns the identifier of (x, y). The coordinates must be in bounds.
func (g *Grid) ID(x, y int) CellID {
	return CellID(x*g.size + y)
}

// Valid reports whether id refers to a cell of this grid.
func (g *Grid) Valid(id CellID) bool {
	return id >= 0 && int(id) < len(g.cells)
}

// Cell returns the cell with the given identifier. id must satisfy Valid;
// Cell panics otherwise. Use CellAt for unchecked coordinates.
func (g *Grid) Cell(id CellID) Cell {
	return g.cells[id]
}

// CellAt returns the cell at (x, y).
func (g *Grid) CellAt(x, y int) (Cell, error) {
	if !g.Contains(x, y) {
		return Cell{}, fmt.Errorf("%w: (%d,%d) on a %dx%d grid", ErrCellOutOfRange, x, y, g.size, g.size)
	}
	return g.cells[g.ID(x, y)], nil
}

// Neighbors returns the cached neighbors of id, obstacles included.
// The returned slice is shared and must not be modified.
func (g *Grid) Neighbors(id CellID) []CellID {
	return g.cells[id].neighbors
}

// Obstacles returns the obstacle cells in row-major order.
func (g *Grid) Obstacles() []CellID {
	var out []CellID
	for _, c := range g.cells {
		if c.Obstacle {
			out = append(out, c.ID)
		}
	}
	return out
}

// String draws the grid with '#' for obstacles and '.' for free cells.
// Rows are printed by y so the output matches the on-screen layout.
func (g *Grid) String() string {
	return FormatSnapshot(g, StepSnapshot{})
}
