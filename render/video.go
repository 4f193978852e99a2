package render

import (
	"bytes"
	"fmt"
	"image/jpeg"

	"github.com/icza/mjpeg"
	astar "github.com/pdrpinto/astarviz"
)

// VideoSink records every frame into a Motion JPEG AVI file.
type VideoSink struct {
	painter *Painter
	writer  mjpeg.AviWriter
	buf     bytes.Buffer
	frames  int
}

// NewVideoSink opens path for a grid of the painter's frame size.
func NewVideoSink(path string, grid *astar.Grid, painter *Painter, fps int) (*VideoSink, error) {
	bounds := painter.Bounds(grid)
	writer, err := mjpeg.New(path, int32(bounds.Dx()), int32(bounds.Dy()), int32(fps))
	if err != nil {
		return nil, fmt.Errorf("creating video %s: %w", path, err)
	}
	return &VideoSink{painter: painter, writer: writer}, nil
}

func (v *VideoSink) Cancelled() bool { return false }

func (v *VideoSink) Frame(grid *astar.Grid, snapshot astar.StepSnapshot) error {
	v.buf.Reset()
	if err := jpeg.Encode(&v.buf, v.painter.Paint(grid, snapshot), &jpeg.Options{Quality: 90}); err != nil {
		return fmt.Errorf("encoding frame %d: %w", snapshot.StepIndex, err)
	}
	if err := v.writer.AddFrame(v.buf.Bytes()); err != nil {
		return fmt.Errorf("writing frame %d: %w", snapshot.StepIndex, err)
	}
	v.frames++
	return nil
}

// Frames returns the number of frames recorded so far.
func (v *VideoSink) Frames() int { return v.frames }

// Close finalizes the AVI index. It must be called once recording is over.
func (v *VideoSink) Close() error {
	return v.writer.Close()
}
