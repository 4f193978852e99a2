package render

import (
	"image"
	"image/color"

	"github.com/fogleman/gg"
	astar "github.com/pdrpinto/astarviz"
)

// Colors of the frame layers.
var (
	FreeColor     = color.RGBA{255, 255, 255, 255}
	ObstacleColor = color.RGBA{0, 0, 0, 255}
	OpenColor     = color.RGBA{0, 255, 0, 255}
	ClosedColor   = color.RGBA{255, 0, 0, 255}
	PathColor     = color.RGBA{0, 0, 255, 255}
)

// Painter draws snapshots as images with CellSize pixels per cell.
// The obstacle background is drawn once per grid and reused.
type Painter struct {
	CellSize int

	grid       *astar.Grid
	background image.Image
}

// NewPainter creates a Painter for cells of the given pixel size.
func NewPainter(cellSize int) *Painter {
	return &Painter{CellSize: cellSize}
}

// Bounds returns the pixel size of a frame for grid.
func (p *Painter) Bounds(grid *astar.Grid) image.Rectangle {
	side := grid.Size() * p.CellSize
	return image.Rect(0, 0, side, side)
}

// Paint draws the background, then the open set, the closed set and the path.
func (p *Painter) Paint(grid *astar.Grid, snapshot astar.StepSnapshot) image.Image {
	dc := gg.NewContextForImage(p.backgroundFor(grid))
	p.fill(dc, grid, snapshot.Open, OpenColor)
	p.fill(dc, grid, snapshot.Closed, ClosedColor)
	p.fill(dc, grid, snapshot.Path, PathColor)
	return dc.Image()
}

func (p *Painter) backgroundFor(grid *astar.Grid) image.Image {
	if p.grid == grid && p.background != nil {
		return p.background
	}
	bounds := p.Bounds(grid)
	dc := gg.NewContext(bounds.Dx(), bounds.Dy())
	dc.SetColor(FreeColor)
	dc.Clear()
	p.fill(dc, grid, grid.Obstacles(), ObstacleColor)

	p.grid = grid
	p.background = dc.Image()
	return p.background
}

func (p *Painter) fill(dc *gg.Context, grid *astar.Grid, cells []astar.CellID, c color.Color) {
	if len(cells) == 0 {
		return
	}
	size := float64(p.CellSize)
	dc.SetColor(c)
	for _, id := range cells {
		cell := grid.Cell(id)
		dc.DrawRectangle(float64(cell.X)*size, float64(cell.Y)*size, size, size)
	}
	dc.Fill()
}
