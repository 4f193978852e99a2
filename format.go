package astar

import "strings"

// Glyphs used by FormatSnapshot.
const (
	GlyphFree     = '.'
	GlyphObstacle = '#'
	GlyphOpen     = 'o'
	GlyphClosed   = 'x'
	GlyphPath     = '*'
)

// FormatSnapshot draws the grid with the open set, closed set and path of
// snapshot layered on top, in that order, one text row per y.
func FormatSnapshot(grid *Grid, snapshot StepSnapshot) string {
	glyphs := make([]byte, grid.Len())
	for id, c := range grid.cells {
		if c.Obstacle {
			glyphs[id] = GlyphObstacle
		} else {
			glyphs[id] = GlyphFree
		}
	}
	for _, id := range snapshot.Open {
		glyphs[id] = GlyphOpen
	}
	for _, id := range snapshot.Closed {
		glyphs[id] = GlyphClosed
	}
	for _, id := range snapshot.Path {
		glyphs[id] = GlyphPath
	}

	var b strings.Builder
	b.Grow(grid.Len() + grid.Size())
	for y := 0; y < grid.Size(); y++ {
		for x := 0; x < grid.Size(); x++ {
			b.WriteByte(glyphs[grid.ID(x, y)])
		}
		b.WriteByte('\n')
	}
	return b.String()
}
