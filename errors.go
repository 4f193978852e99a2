package astar

import (
	"errors"
	"fmt"
)

// ErrConfiguration is the root of every error raised before a search starts.
var ErrConfiguration = errors.New("configuration error")

var (
	ErrInvalidGridSize    = fmt.Errorf("%w: grid size must be positive", ErrConfiguration)
	ErrInvalidProbability = fmt.Errorf("%w: obstacle probability must be in [0,1)", ErrConfiguration)
	ErrCellOutOfRange     = fmt.Errorf("%w: cell outside the grid", ErrConfiguration)
)
