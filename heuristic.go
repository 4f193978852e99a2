package astar

import "github.com/paulmach/orb/planar"

// Heuristic returns the estimated cost from cell a to cell b.
// The search also uses it as the cost of a single move between neighbors.
type Heuristic func(a, b Cell) float64

// Euclidean is the straight-line distance between cell centers.
func Euclidean(a, b Cell) float64 {
	return planar.Distance(a.Point(), b.Point())
}
