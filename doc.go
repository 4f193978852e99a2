// Package astar finds a shortest path across a square obstacle grid with A*
// and exposes the search frontier after every expansion.
//
// It exposes two main entry points:
//
//   - Search: run the algorithm to completion and get a Result, optionally
//     feeding every iteration to a Sink (a renderer, a recorder, a test probe).
//   - Stepper: iterate the search one expansion at a time to drive UIs or debugging tools.
//
// The grid topology (coordinates, obstacle flags, neighbor lists) is built
// once and never mutated by a search. Costs and predecessor links live in the
// Stepper, so the same Grid can be searched any number of times.
package astar
