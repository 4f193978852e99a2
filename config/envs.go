package config

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	astar "github.com/pdrpinto/astarviz"
)

// Config holds the application's configuration values.
type Config struct {
	WindowSize          int     // Span of the drawn grid in pixels
	CellSize            int     // Side of one cell in pixels
	ObstacleProbability float64 // Chance that a cell becomes an obstacle, in [0,1)
	Seed                int64   // RNG seed for obstacle placement, 0 for time based
	FramesDir           string  // Directory receiving PNG frames, empty disables
	FrameEvery          int     // Write every Nth PNG frame
	VideoPath           string  // AVI file receiving all frames, empty disables
	FrameRate           int     // Frames per second of the AVI
	HTTPAddr            string  // Listen address of the live viewer
	GinMode             string  // Mode for the Gin framework (e.g., release, debug, test)
}

// ConfigError reports an invalid or unparsable setting.
type ConfigError struct {
	Key    string
	Value  string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("config %s=%q: %s", e.Key, e.Value, e.Reason)
}

// Unwrap lets errors.Is match astar.ErrConfiguration.
func (e *ConfigError) Unwrap() error { return astar.ErrConfiguration }

// Load reads the configuration from the environment after loading the given
// dotenv files. With no files it tries ".env" and carries on without it; a
// named file that cannot be loaded is a ConfigError.
func Load(files ...string) (Config, error) {
	if len(files) == 0 {
		if err := godotenv.Load(); err != nil {
			log.Printf("[APP] [INFO] .env file not found or could not be loaded: %v", err)
		}
		return FromLookup(os.LookupEnv)
	}
	for _, file := range files {
		if err := godotenv.Load(file); err != nil {
			return Config{}, &ConfigError{"env file", file, err.Error()}
		}
	}
	return FromLookup(os.LookupEnv)
}

// FromLookup builds and validates a Config from lookup, applying defaults for
// unset keys.
func FromLookup(lookup func(string) (string, bool)) (Config, error) {
	env := envReader{lookup: lookup}
	c := Config{
		WindowSize:          env.integer("ASTAR_WINDOW_SIZE", 500),
		CellSize:            env.integer("ASTAR_CELL_SIZE", 10),
		ObstacleProbability: env.number("ASTAR_OBSTACLE_PROBABILITY", 0.3),
		Seed:                env.integer64("ASTAR_SEED", 0),
		FramesDir:           env.str("ASTAR_FRAMES_DIR", ""),
		FrameEvery:          env.integer("ASTAR_FRAME_EVERY", 1),
		VideoPath:           env.str("ASTAR_VIDEO_PATH", ""),
		FrameRate:           env.integer("ASTAR_FRAME_RATE", 30),
		HTTPAddr:            env.str("ASTAR_HTTP_ADDR", ":8080"),
		GinMode:             env.str("GIN_MODE", "release"),
	}
	if env.err != nil {
		return Config{}, env.err
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// Validate checks ranges and the derived grid size.
func (c Config) Validate() error {
	switch {
	case c.WindowSize <= 0:
		return &ConfigError{"ASTAR_WINDOW_SIZE", strconv.Itoa(c.WindowSize), "must be positive"}
	case c.CellSize <= 0:
		return &ConfigError{"ASTAR_CELL_SIZE", strconv.Itoa(c.CellSize), "must be positive"}
	case c.GridSize() == 0:
		return &ConfigError{"ASTAR_CELL_SIZE", strconv.Itoa(c.CellSize), "larger than the window"}
	case c.ObstacleProbability < 0 || c.ObstacleProbability >= 1:
		return &ConfigError{"ASTAR_OBSTACLE_PROBABILITY", strconv.FormatFloat(c.ObstacleProbability, 'g', -1, 64), "must be in [0,1)"}
	case c.FrameEvery <= 0:
		return &ConfigError{"ASTAR_FRAME_EVERY", strconv.Itoa(c.FrameEvery), "must be positive"}
	case c.FrameRate <= 0:
		return &ConfigError{"ASTAR_FRAME_RATE", strconv.Itoa(c.FrameRate), "must be positive"}
	}
	return nil
}

// GridSize returns the number of cells per side.
func (c Config) GridSize() int {
	if c.CellSize <= 0 {
		return 0
	}
	return c.WindowSize / c.CellSize
}

// envReader keeps the first parse error so Config can be filled in one expression.
type envReader struct {
	lookup func(string) (string, bool)
	err    error
}

func (r *envReader) str(key, def string) string {
	if value, exists := r.lookup(key); exists {
		return value
	}
	return def
}

func (r *envReader) integer(key string, def int) int {
	return int(r.integer64(key, int64(def)))
}

func (r *envReader) integer64(key string, def int64) int64 {
	valueStr, exists := r.lookup(key)
	if !exists {
		return def
	}
	value, err := strconv.ParseInt(valueStr, 10, 64)
	if err != nil && r.err == nil {
		r.err = &ConfigError{key, valueStr, "must be an integer"}
	}
	return value
}

func (r *envReader) number(key string, def float64) float64 {
	valueStr, exists := r.lookup(key)
	if !exists {
		return def
	}
	value, err := strconv.ParseFloat(valueStr, 64)
	if err != nil && r.err == nil {
		r.err = &ConfigError{key, valueStr, "must be a number"}
	}
	return value
}
