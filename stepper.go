package astar

import (
	"fmt"
	"slices"

	"github.com/pdrpinto/astarviz/internal"
)

// Phase is the state of a search.
type Phase int

const (
	Running Phase = iota
	Found
	Exhausted
	Cancelled
)

func (p Phase) String() string {
	switch p {
	case Running:
		return "running"
	case Found:
		return "found"
	case Exhausted:
		return "exhausted"
	case Cancelled:
		return "cancelled"
	}
	return fmt.Sprintf("Phase(%d)", int(p))
}

// StepSnapshot exposes the per-iteration state of the search.
// Slices are copies owned by the caller.
type StepSnapshot struct {
	StepIndex int
	Current   CellID
	Open      []CellID // insertion order
	Closed    []CellID // closing order
	Path      []CellID // start .. Current
	Phase     Phase
	Done      bool
	Found     bool
}

// record is the mutable per-run search state of one cell.
type record struct {
	g, h, f  float64
	previous CellID
}

// Stepper runs A* over a Grid one expansion at a time.
type Stepper struct {
	grid      *Grid
	start     CellID
	goal      CellID
	heuristic Heuristic

	records     []record
	open        *openSet
	closed      []bool
	closedOrder []CellID

	current   CellID
	stepCount int
	phase     Phase
}

// NewStepper prepares a search from start to goal. A nil heuristic selects Euclidean.
func NewStepper(grid *Grid, start, goal CellID, heuristic Heuristic) (*Stepper, error) {
	if !grid.Valid(start) {
		return nil, fmt.Errorf("%w: start %d", ErrCellOutOfRange, start)
	}
	if !grid.Valid(goal) {
		return nil, fmt.Errorf("%w: goal %d", ErrCellOutOfRange, goal)
	}
	if heuristic == nil {
		heuristic = Euclidean
	}

	s := &Stepper{
		grid:      grid,
		start:     start,
		goal:      goal,
		heuristic: heuristic,
		records:   make([]record, grid.Len()),
		open:      newOpenSet(grid.Len()),
		closed:    make([]bool, grid.Len()),
		current:   NoCell,
		phase:     Running,
	}
	for i := range s.records {
		s.records[i].previous = NoCell
	}

	startRecord := &s.records[start]
	startRecord.h = heuristic(grid.Cell(start), grid.Cell(goal))
	startRecord.f = startRecord.h
	s.open.Add(start, startRecord.f)
	return s, nil
}

// Step advances the search by one node expansion and returns a snapshot.
// Once the search is over every further call returns the final state.
func (s *Stepper) Step() StepSnapshot {
	if s.phase != Running {
		return s.snapshot()
	}
	if s.open.Len() == 0 {
		s.phase = Exhausted
		return s.snapshot()
	}

	s.stepCount++
	current := s.open.PopMin()
	s.current = current
	if current == s.goal {
		s.phase = Found
	}
	s.closed[current] = true
	s.closedOrder = append(s.closedOrder, current)

	currentCell := s.grid.Cell(current)
	goalCell := s.grid.Cell(s.goal)
	for _, nb := range s.grid.Neighbors(current) {
		neighborCell := s.grid.Cell(nb)
		if s.closed[nb] || neighborCell.Obstacle {
			continue
		}

		// The move cost is the heuristic distance between the two cells.
		tentativeG := s.records[current].g + s.heuristic(neighborCell, currentCell)

		inOpen := s.open.Contains(nb)
		if inOpen && !(s.records[nb].g > tentativeG) {
			continue
		}

		r := &s.records[nb]
		r.g = tentativeG
		r.h = s.heuristic(neighborCell, goalCell)
		r.f = r.g + r.h
		r.previous = current
		if inOpen {
			s.open.Update(nb, r.f)
		} else {
			s.open.Add(nb, r.f)
		}
	}

	return s.snapshot()
}

// Cancel ends a running search. It has no effect on a finished one.
func (s *Stepper) Cancel() {
	if s.phase == Running {
		s.phase = Cancelled
	}
}

// Phase returns the current state of the search.
func (s *Stepper) Phase() Phase { return s.phase }

// Costs returns the g, h and f costs recorded for id.
func (s *Stepper) Costs(id CellID) (g, h, f float64) {
	r := s.records[id]
	return r.g, r.h, r.f
}

// Previous returns the predecessor of id on its best known path.
func (s *Stepper) Previous(id CellID) (CellID, bool) {
	p := s.records[id].previous
	return p, p != NoCell
}

// PathTo walks predecessor links back from id and returns the cells in
// start-to-id order.
func (s *Stepper) PathTo(id CellID) []CellID {
	return internal.ReconstructPath(id, s.Previous)
}

// Result summarizes the search so far.
func (s *Stepper) Result() Result {
	res := Result{
		Phase:         s.phase,
		Found:         s.phase == Found,
		ExpandedNodes: len(s.closedOrder),
		Steps:         s.stepCount,
	}
	if res.Found {
		res.Path = s.PathTo(s.goal)
		res.TotalCost = s.records[s.goal].g
	}
	return res
}

func (s *Stepper) snapshot() StepSnapshot {
	snap := StepSnapshot{
		StepIndex: s.stepCount,
		Current:   s.current,
		Open:      s.open.Cells(),
		Closed:    slices.Clone(s.closedOrder),
		Phase:     s.phase,
		Done:      s.phase != Running,
		Found:     s.phase == Found,
	}
	if s.current != NoCell {
		snap.Path = s.PathTo(s.current)
	}
	return snap
}
