package web

import (
	"github.com/google/uuid"
	astar "github.com/pdrpinto/astarviz"
)

// CreateSessionRequest holds the query parameters of a new session.
// Nil fields fall back to the controller defaults.
type CreateSessionRequest struct {
	Size        *int     `form:"size" binding:"omitempty,min=1"`
	Probability *float64 `form:"probability" binding:"omitempty,gte=0,lt=1"`
	Seed        *int64   `form:"seed"`
}

// SessionResponse describes a freshly created session.
type SessionResponse struct {
	ID    uuid.UUID `json:"id"`
	Size  int       `json:"size"`
	Seed  int64     `json:"seed"`
	Start [2]int    `json:"start"`
	Goal  [2]int    `json:"goal"`
}

// SnapshotResponse is one search iteration as seen by the browser.
type SnapshotResponse struct {
	Step      int      `json:"step"`
	Size      int      `json:"size"`
	Obstacles [][2]int `json:"obstacles"`
	Open      [][2]int `json:"open,omitempty"`
	Closed    [][2]int `json:"closed,omitempty"`
	Path      [][2]int `json:"path,omitempty"`
	Current   *[2]int  `json:"current,omitempty"`
	Start     [2]int   `json:"start"`
	Goal      [2]int   `json:"goal"`
	Phase     string   `json:"phase"`
	Done      bool     `json:"done"`
	Found     bool     `json:"found"`
}

func point(grid *astar.Grid, id astar.CellID) [2]int {
	c := grid.Cell(id)
	return [2]int{c.X, c.Y}
}

func points(grid *astar.Grid, ids []astar.CellID) [][2]int {
	if len(ids) == 0 {
		return nil
	}
	res := make([][2]int, 0, len(ids))
	for _, id := range ids {
		res = append(res, point(grid, id))
	}
	return res
}

func newSnapshotResponse(s *session) SnapshotResponse {
	snap := s.last
	res := SnapshotResponse{
		Step:      snap.StepIndex,
		Size:      s.grid.Size(),
		Obstacles: points(s.grid, s.grid.Obstacles()),
		Open:      points(s.grid, snap.Open),
		Closed:    points(s.grid, snap.Closed),
		Path:      points(s.grid, snap.Path),
		Start:     point(s.grid, s.start),
		Goal:      point(s.grid, s.goal),
		Phase:     snap.Phase.String(),
		Done:      snap.Done,
		Found:     snap.Found,
	}
	if res.Obstacles == nil {
		res.Obstacles = [][2]int{}
	}
	if snap.Current != astar.NoCell {
		current := point(s.grid, snap.Current)
		res.Current = &current
	}
	return res
}
