// Command astarviz searches a random obstacle grid from its top-left to its
// bottom-right corner and records every iteration of the search.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"math/rand"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	astar "github.com/pdrpinto/astarviz"
	"github.com/pdrpinto/astarviz/config"
	"github.com/pdrpinto/astarviz/render"
)

var appLogger = config.NewLogger("APP", config.ColorGreen, os.Stderr)

func main() {
	envFile := flag.String("env", "", "dotenv file to load (default .env)")
	ascii := flag.Bool("ascii", false, "print every frame as text")
	flag.Parse()

	var files []string
	if *envFile != "" {
		files = append(files, *envFile)
	}
	cfg, err := config.Load(files...)
	if err != nil {
		config.Errorf(appLogger, "%v", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	res, err := run(ctx, cfg, *ascii, os.Stdout)
	if err != nil {
		config.Errorf(appLogger, "%v", err)
		stop()
		os.Exit(1)
	}
	report(os.Stdout, res)
}

// report prints the outcome line. A cancelled run prints nothing.
func report(w io.Writer, res astar.Result) {
	switch res.Phase {
	case astar.Found:
		fmt.Fprintln(w, "Done")
	case astar.Exhausted:
		fmt.Fprintln(w, "No solution")
	}
}

// run builds the configured random grid and searches it.
func run(ctx context.Context, cfg config.Config, ascii bool, out io.Writer) (astar.Result, error) {
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	grid, err := astar.NewGrid(cfg.GridSize(), cfg.ObstacleProbability, rand.New(rand.NewSource(seed)))
	if err != nil {
		return astar.Result{}, err
	}
	config.Infof(appLogger, "%dx%d grid, %d obstacles, seed %d",
		grid.Size(), grid.Size(), len(grid.Obstacles()), seed)
	return search(ctx, cfg, grid, ascii, out)
}

// search wires the configured sinks and runs grid from (0,0) to (n-1,n-1).
// Recorders are closed before it returns and their errors join err.
func search(ctx context.Context, cfg config.Config, grid *astar.Grid, ascii bool, out io.Writer) (res astar.Result, err error) {
	runID := uuid.New()

	var closers []io.Closer
	defer func() {
		err = closeAll(err, closers...)
	}()

	stopper := &render.Stopper{}
	go func() {
		<-ctx.Done()
		stopper.Stop()
	}()

	searchLogger := config.NewLogger("SEARCH", config.ColorCyan, os.Stderr)
	sinks := []astar.Sink{stopper, render.LogSink{Logger: searchLogger, Every: 100}}
	painter := render.NewPainter(cfg.CellSize)
	if cfg.FramesDir != "" {
		pngSink, err := render.NewPNGSink(cfg.FramesDir, cfg.FrameEvery, painter)
		if err != nil {
			return astar.Result{}, err
		}
		sinks = append(sinks, pngSink)
	}
	if cfg.VideoPath != "" {
		video, err := render.NewVideoSink(cfg.VideoPath, grid, painter, cfg.FrameRate)
		if err != nil {
			return astar.Result{}, err
		}
		closers = append(closers, video)
		sinks = append(sinks, video)
	}
	if ascii {
		sinks = append(sinks, render.Terminal{W: out})
	}

	start, goal := grid.ID(0, 0), grid.ID(grid.Size()-1, grid.Size()-1)
	res, err = astar.Search(ctx, grid, start, goal, astar.Euclidean, astar.WithSink(render.Multi(sinks...)))
	if err != nil {
		return res, fmt.Errorf("run %s: %w", runID, err)
	}
	config.Infof(appLogger, "run %s: %s after %d steps, %d cells expanded, path cost %.3f",
		runID, res.Phase, res.Steps, res.ExpandedNodes, res.TotalCost)
	return res, nil
}

// closeAll closes every closer in order and joins their errors into err.
func closeAll(err error, closers ...io.Closer) error {
	for _, c := range closers {
		if cerr := c.Close(); cerr != nil {
			err = errors.Join(err, fmt.Errorf("closing recorder: %w", cerr))
		}
	}
	return err
}
