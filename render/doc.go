// Package render turns search snapshots into pictures and streams them to
// files, videos, terminals or loggers. Every type here satisfies astar.Sink.
package render
