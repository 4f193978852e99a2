// Package web serves step-by-step searches to a browser over HTTP.
package web

import (
	"bytes"
	_ "embed"
	"errors"
	"image/png"
	"log"
	"math/rand"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	astar "github.com/pdrpinto/astarviz"
	"github.com/pdrpinto/astarviz/config"
	"github.com/pdrpinto/astarviz/render"
)

//go:embed static/index.html
var indexPage []byte

// ErrTooManySessions is returned when MaxSessions sessions are already open.
var ErrTooManySessions = errors.New("too many open sessions")

// session is one grid and the search running over it.
type session struct {
	mu      sync.Mutex
	grid    *astar.Grid
	stepper *astar.Stepper
	painter *render.Painter
	start   astar.CellID
	goal    astar.CellID
	last    astar.StepSnapshot
}

// Config holds the defaults and limits of a SessionController.
type Config struct {
	CellSize           int     // Pixels per cell in frame.png
	DefaultSize        int     // Grid side when the request has none
	MaxSize            int     // Largest accepted grid side
	DefaultProbability float64 // Obstacle probability when the request has none
	MaxSessions        int     // Open sessions allowed at once
	Logger             *log.Logger
}

// SessionController creates searches and advances them one step per request.
type SessionController struct {
	config   Config
	sessions map[uuid.UUID]*session
	sync.RWMutex
}

// NewSessionController initializes a SessionController.
func NewSessionController(c Config) *SessionController {
	if c.Logger == nil {
		c.Logger = log.Default()
	}
	return &SessionController{
		config:   c,
		sessions: make(map[uuid.UUID]*session),
	}
}

// Register mounts the session routes on route.
func (sc *SessionController) Register(route *gin.RouterGroup) {
	sessions := route.Group("/sessions")
	{
		sessions.POST("", sc.create)
		sessions.GET("/:ID", sc.current)
		sessions.GET("/:ID/next", sc.next)
		sessions.GET("/:ID/frame.png", sc.frame)
		sessions.DELETE("/:ID", sc.close)
	}
}

// NewRouter builds the engine serving sc under /api/v1 and the viewer page at /.
func NewRouter(sc *SessionController) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.GET("/", func(ctx *gin.Context) {
		ctx.Data(http.StatusOK, "text/html; charset=utf-8", indexPage)
	})
	api := router.Group("/api")
	sc.Register(api.Group("/v1"))
	return router
}

// create handles new session requests.
func (sc *SessionController) create(ctx *gin.Context) {
	var request CreateSessionRequest
	if err := ctx.ShouldBindQuery(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	size := sc.config.DefaultSize
	if request.Size != nil {
		size = *request.Size
	}
	if sc.config.MaxSize > 0 && size > sc.config.MaxSize {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "grid size above limit"})
		return
	}
	probability := sc.config.DefaultProbability
	if request.Probability != nil {
		probability = *request.Probability
	}
	seed := time.Now().UnixNano()
	if request.Seed != nil {
		seed = *request.Seed
	}

	grid, err := astar.NewGrid(size, probability, rand.New(rand.NewSource(seed)))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	start, goal := grid.ID(0, 0), grid.ID(size-1, size-1)
	stepper, err := astar.NewStepper(grid, start, goal, astar.Euclidean)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	s := &session{
		grid:    grid,
		stepper: stepper,
		painter: render.NewPainter(sc.config.CellSize),
		start:   start,
		goal:    goal,
		last: astar.StepSnapshot{
			Current: astar.NoCell,
			Open:    []astar.CellID{start},
			Phase:   astar.Running,
		},
	}
	id, err := sc.save(s)
	if err != nil {
		ctx.JSON(http.StatusTooManyRequests, gin.H{"error": err.Error()})
		return
	}
	config.Infof(sc.config.Logger, "session %s: %dx%d grid, p=%v, seed=%d", id, size, size, probability, seed)

	ctx.JSON(http.StatusCreated, &SessionResponse{
		ID:    id,
		Size:  size,
		Seed:  seed,
		Start: point(grid, start),
		Goal:  point(grid, goal),
	})
}

// current returns the last snapshot without advancing.
func (sc *SessionController) current(ctx *gin.Context) {
	s, ok := sc.lookup(ctx)
	if !ok {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	ctx.JSON(http.StatusOK, newSnapshotResponse(s))
}

// next advances the search by one iteration.
func (sc *SessionController) next(ctx *gin.Context) {
	s, ok := sc.lookup(ctx)
	if !ok {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := s.stepper.Step()
	s.last = snap
	if snap.Done {
		config.Infof(sc.config.Logger, "session %s finished after %d steps: %s", ctx.Param("ID"), snap.StepIndex, snap.Phase)
	}
	ctx.JSON(http.StatusOK, newSnapshotResponse(s))
}

// frame paints the last snapshot as PNG.
func (sc *SessionController) frame(ctx *gin.Context) {
	s, ok := sc.lookup(ctx)
	if !ok {
		return
	}
	s.mu.Lock()
	img := s.painter.Paint(s.grid, s.last)
	s.mu.Unlock()

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		config.Errorf(sc.config.Logger, "encoding frame: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "error while encoding frame"})
		return
	}
	ctx.Data(http.StatusOK, "image/png", buf.Bytes())
}

// close cancels the search and forgets the session.
func (sc *SessionController) close(ctx *gin.Context) {
	s, ok := sc.lookup(ctx)
	if !ok {
		return
	}
	s.mu.Lock()
	s.stepper.Cancel()
	s.mu.Unlock()

	id, _ := uuid.Parse(ctx.Param("ID"))
	sc.Lock()
	delete(sc.sessions, id)
	sc.Unlock()
	config.Infof(sc.config.Logger, "session %s closed", id)
	ctx.Status(http.StatusNoContent)
}

func (sc *SessionController) lookup(ctx *gin.Context) (*session, bool) {
	id, err := uuid.Parse(ctx.Param("ID"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid session id"})
		return nil, false
	}
	sc.RLock()
	s, ok := sc.sessions[id]
	sc.RUnlock()
	if !ok {
		ctx.JSON(http.StatusNotFound, gin.H{"error": "no session"})
		return nil, false
	}
	return s, true
}

func (sc *SessionController) save(s *session) (uuid.UUID, error) {
	sc.Lock()
	defer sc.Unlock()
	if sc.config.MaxSessions > 0 && len(sc.sessions) >= sc.config.MaxSessions {
		return uuid.Nil, ErrTooManySessions
	}
	id := uuid.New()
	for {
		if _, ok := sc.sessions[id]; !ok {
			break
		}
		id = uuid.New()
	}
	sc.sessions[id] = s
	return id, nil
}
