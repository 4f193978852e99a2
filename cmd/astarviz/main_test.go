package main

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	astar "github.com/pdrpinto/astarviz"
	"github.com/pdrpinto/astarviz/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() config.Config {
	return config.Config{
		WindowSize:          50,
		CellSize:            10,
		ObstacleProbability: 0,
		Seed:                1,
		FrameEvery:          1,
		FrameRate:           30,
	}
}

func walledGoal(t *testing.T) *astar.Grid {
	t.Helper()
	g, err := astar.NewGridFromLayout(5, func(x, y int) bool {
		return (x == 3 && y >= 3) || (x == 4 && y == 3)
	})
	require.NoError(t, err)
	return g
}

func TestReport(t *testing.T) {
	cases := map[string]struct {
		phase astar.Phase
		want  string
	}{
		"found":     {astar.Found, "Done\n"},
		"exhausted": {astar.Exhausted, "No solution\n"},
		"cancelled": {astar.Cancelled, ""},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			var out bytes.Buffer
			report(&out, astar.Result{Phase: tc.phase})
			assert.Equal(t, tc.want, out.String())
		})
	}
}

func TestRun(t *testing.T) {
	t.Run("open grid prints Done", func(t *testing.T) {
		var out bytes.Buffer
		res, err := run(context.Background(), testConfig(), false, &out)
		require.NoError(t, err)
		assert.Equal(t, astar.Found, res.Phase)

		report(&out, res)
		assert.Equal(t, "Done\n", out.String())
	})

	t.Run("walled goal prints No solution", func(t *testing.T) {
		var out bytes.Buffer
		res, err := search(context.Background(), testConfig(), walledGoal(t), false, &out)
		require.NoError(t, err)
		assert.Equal(t, astar.Exhausted, res.Phase)
		assert.Equal(t, 21, res.ExpandedNodes)

		report(&out, res)
		assert.Equal(t, "No solution\n", out.String())
	})

	t.Run("cancelled run prints nothing", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		var out bytes.Buffer
		res, err := run(ctx, testConfig(), true, &out)
		require.NoError(t, err)
		assert.Equal(t, astar.Cancelled, res.Phase)

		report(&out, res)
		assert.Empty(t, out.String())
	})

	t.Run("ascii frames precede the outcome", func(t *testing.T) {
		var out bytes.Buffer
		res, err := run(context.Background(), testConfig(), true, &out)
		require.NoError(t, err)

		report(&out, res)
		assert.True(t, strings.HasPrefix(out.String(), "step 1 (running)\n"))
		assert.True(t, strings.HasSuffix(out.String(), "Done\n"))
	})

	t.Run("configuration errors fail the run", func(t *testing.T) {
		for name, mutate := range map[string]func(*config.Config){
			"probability one": func(c *config.Config) { c.ObstacleProbability = 1 },
			"empty grid":      func(c *config.Config) { c.CellSize = 100 },
		} {
			t.Run(name, func(t *testing.T) {
				cfg := testConfig()
				mutate(&cfg)
				_, err := run(context.Background(), cfg, false, io.Discard)
				assert.ErrorIs(t, err, astar.ErrConfiguration)
			})
		}
	})

	t.Run("unusable frames directory fails the run", func(t *testing.T) {
		file := filepath.Join(t.TempDir(), "taken")
		require.NoError(t, os.WriteFile(file, nil, 0o600))

		cfg := testConfig()
		cfg.FramesDir = filepath.Join(file, "frames")
		_, err := run(context.Background(), cfg, false, io.Discard)
		assert.Error(t, err)
	})

	t.Run("video is finalized", func(t *testing.T) {
		cfg := testConfig()
		cfg.VideoPath = filepath.Join(t.TempDir(), "run.avi")
		res, err := run(context.Background(), cfg, false, io.Discard)
		require.NoError(t, err)
		assert.True(t, res.Found)

		info, err := os.Stat(cfg.VideoPath)
		require.NoError(t, err)
		assert.Positive(t, info.Size())
	})
}

type closerFunc func() error

func (f closerFunc) Close() error { return f() }

func TestCloseAll(t *testing.T) {
	errIndex := errors.New("writing index")
	failing := closerFunc(func() error { return errIndex })
	closed := 0
	ok := closerFunc(func() error { closed++; return nil })

	t.Run("close failure becomes the run error", func(t *testing.T) {
		err := closeAll(nil, ok, failing)
		assert.ErrorIs(t, err, errIndex)
		assert.Equal(t, 1, closed)
	})

	t.Run("search error is kept", func(t *testing.T) {
		errFrame := errors.New("writing frame")
		err := closeAll(errFrame, failing)
		assert.ErrorIs(t, err, errFrame)
		assert.ErrorIs(t, err, errIndex)
	})

	t.Run("nothing to report", func(t *testing.T) {
		assert.NoError(t, closeAll(nil, ok))
	})
}
