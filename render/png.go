package render

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/fogleman/gg"
	astar "github.com/pdrpinto/astarviz"
)

// PNGSink writes frames as numbered PNG files.
type PNGSink struct {
	Painter *Painter
	Dir     string
	Every   int // write every Nth step; the final step is always written
}

// NewPNGSink creates dir if needed.
func NewPNGSink(dir string, every int, painter *Painter) (*PNGSink, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating frame directory: %w", err)
	}
	if every <= 0 {
		every = 1
	}
	return &PNGSink{Painter: painter, Dir: dir, Every: every}, nil
}

func (s *PNGSink) Cancelled() bool { return false }

func (s *PNGSink) Frame(grid *astar.Grid, snapshot astar.StepSnapshot) error {
	if !snapshot.Done && snapshot.StepIndex%s.Every != 0 {
		return nil
	}
	return gg.SavePNG(s.FramePath(snapshot.StepIndex), s.Painter.Paint(grid, snapshot))
}

// FramePath returns the file written for step.
func (s *PNGSink) FramePath(step int) string {
	return filepath.Join(s.Dir, fmt.Sprintf("frame_%06d.png", step))
}
