package astar

import (
	"context"
	"fmt"
)

// Sink receives the state of the search after every iteration.
// Frame is called synchronously; the search does not continue until it returns.
type Sink interface {
	// Cancelled reports whether the consumer wants the search to stop.
	Cancelled() bool
	// Frame receives one iteration. A non-nil error aborts the search.
	Frame(grid *Grid, snapshot StepSnapshot) error
}

// Result contains the outcome of a search
type Result struct {
	Phase         Phase
	Found         bool
	Path          []CellID
	TotalCost     float64
	ExpandedNodes int
	Steps         int
}

// Options defines parameters for the search.
type Options struct {
	Sink Sink
}

// Option is a function that modifies Options.
type Option func(*Options)

// WithSink routes every iteration to sink.
func WithSink(sink Sink) Option {
	return func(options *Options) { options.Sink = sink }
}

// Search runs A* from start to goal until it finds the goal, exhausts the
// open set or is cancelled through ctx or the sink. Exhaustion and
// cancellation are reported through Result.Phase; the error is reserved for
// invalid arguments and sink failures.
func Search(
	contextObject context.Context,
	grid *Grid,
	startNode CellID,
	goalNode CellID,
	heuristic Heuristic,
	options ...Option,
) (Result, error) {

	// --- Apply options ---
	var searchOptions Options
	for _, option := range options {
		option(&searchOptions)
	}
	sink := searchOptions.Sink

	stepper, err := NewStepper(grid, startNode, goalNode, heuristic)
	if err != nil {
		return Result{}, err
	}

	// --- Orchestrator loop ---
	for {
		if contextObject.Err() != nil || (sink != nil && sink.Cancelled()) {
			stepper.Cancel()
			return stepper.Result(), nil
		}

		snapshot := stepper.Step()
		if snapshot.Phase == Exhausted {
			return stepper.Result(), nil
		}

		if sink != nil {
			if err := sink.Frame(grid, snapshot); err != nil {
				return stepper.Result(), fmt.Errorf("emitting step %d: %w", snapshot.StepIndex, err)
			}
		}

		if snapshot.Done {
			return stepper.Result(), nil
		}
	}
}
