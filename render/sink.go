package render

import (
	"errors"
	"fmt"
	"io"
	"log"
	"sync/atomic"

	astar "github.com/pdrpinto/astarviz"
	"github.com/pdrpinto/astarviz/config"
)

// Stopper is the "window closed" switch of a run. Stop may be called from
// any goroutine; the search polls Cancelled once per iteration.
type Stopper struct {
	stopped atomic.Bool
}

// Stop requests the search to end.
func (s *Stopper) Stop() { s.stopped.Store(true) }

func (s *Stopper) Cancelled() bool { return s.stopped.Load() }

func (s *Stopper) Frame(*astar.Grid, astar.StepSnapshot) error { return nil }

// multi fans every frame out to several sinks.
type multi []astar.Sink

// Multi combines sinks. The result is cancelled as soon as any sink is, and
// Frame visits every sink, joining their errors.
func Multi(sinks ...astar.Sink) astar.Sink {
	return multi(sinks)
}

func (m multi) Cancelled() bool {
	for _, s := range m {
		if s.Cancelled() {
			return true
		}
	}
	return false
}

func (m multi) Frame(grid *astar.Grid, snapshot astar.StepSnapshot) error {
	var errs []error
	for _, s := range m {
		if err := s.Frame(grid, snapshot); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Terminal prints every frame as text.
type Terminal struct {
	W io.Writer
}

func (t Terminal) Cancelled() bool { return false }

func (t Terminal) Frame(grid *astar.Grid, snapshot astar.StepSnapshot) error {
	_, err := fmt.Fprintf(t.W, "step %d (%s)\n%s\n", snapshot.StepIndex, snapshot.Phase, astar.FormatSnapshot(grid, snapshot))
	return err
}

// LogSink reports progress every Every steps and on the final step.
type LogSink struct {
	Logger *log.Logger
	Every  int
}

func (l LogSink) Cancelled() bool { return false }

func (l LogSink) Frame(_ *astar.Grid, snapshot astar.StepSnapshot) error {
	if snapshot.Done || (l.Every > 0 && snapshot.StepIndex%l.Every == 0) {
		config.Infof(l.Logger, "step %d: open=%d closed=%d path=%d phase=%s",
			snapshot.StepIndex, len(snapshot.Open), len(snapshot.Closed), len(snapshot.Path), snapshot.Phase)
	}
	return nil
}
