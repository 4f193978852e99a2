package web

import (
	"bytes"
	"encoding/json"
	"fmt"
	"image/png"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRouter(maxSessions int) *gin.Engine {
	gin.SetMode(gin.TestMode)
	return NewRouter(NewSessionController(Config{
		CellSize:           4,
		DefaultSize:        10,
		MaxSize:            50,
		DefaultProbability: 0.3,
		MaxSessions:        maxSessions,
		Logger:             log.New(io.Discard, "", 0),
	}))
}

func do(t *testing.T, router http.Handler, method, target string) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, target, nil)
	router.ServeHTTP(w, req)
	return w
}

func createSession(t *testing.T, router http.Handler, query string) SessionResponse {
	t.Helper()
	w := do(t, router, http.MethodPost, "/api/v1/sessions"+query)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var res SessionResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	return res
}

func TestSessionLifecycle(t *testing.T) {
	router := newTestRouter(0)
	created := createSession(t, router, "?size=3&probability=0&seed=1")

	assert.Equal(t, 3, created.Size)
	assert.Equal(t, int64(1), created.Seed)
	assert.Equal(t, [2]int{0, 0}, created.Start)
	assert.Equal(t, [2]int{2, 2}, created.Goal)

	base := fmt.Sprintf("/api/v1/sessions/%s", created.ID)

	t.Run("initial state", func(t *testing.T) {
		w := do(t, router, http.MethodGet, base)
		require.Equal(t, http.StatusOK, w.Code)
		var snap SnapshotResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &snap))
		assert.Equal(t, 0, snap.Step)
		assert.Equal(t, "running", snap.Phase)
		assert.Nil(t, snap.Current)
		assert.Equal(t, [][2]int{{0, 0}}, snap.Open)
		assert.Empty(t, snap.Obstacles)
	})

	t.Run("steps to the goal", func(t *testing.T) {
		var snap SnapshotResponse
		for i := 0; i < 3; i++ {
			w := do(t, router, http.MethodGet, base+"/next")
			require.Equal(t, http.StatusOK, w.Code)
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &snap))
		}
		assert.True(t, snap.Done)
		assert.True(t, snap.Found)
		assert.Equal(t, "found", snap.Phase)
		assert.Equal(t, [][2]int{{0, 0}, {1, 1}, {2, 2}}, snap.Path)
		require.NotNil(t, snap.Current)
		assert.Equal(t, [2]int{2, 2}, *snap.Current)
	})

	t.Run("frame is a png of the grid", func(t *testing.T) {
		w := do(t, router, http.MethodGet, base+"/frame.png")
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "image/png", w.Header().Get("Content-Type"))
		img, err := png.Decode(bytes.NewReader(w.Body.Bytes()))
		require.NoError(t, err)
		assert.Equal(t, 12, img.Bounds().Dx())
	})

	t.Run("delete closes the session", func(t *testing.T) {
		assert.Equal(t, http.StatusNoContent, do(t, router, http.MethodDelete, base).Code)
		assert.Equal(t, http.StatusNotFound, do(t, router, http.MethodGet, base+"/next").Code)
	})
}

func TestCreateSessionValidation(t *testing.T) {
	router := newTestRouter(1)

	for _, query := range []string{"?size=0", "?size=-2", "?size=51", "?probability=1", "?probability=-0.5", "?size=abc"} {
		w := do(t, router, http.MethodPost, "/api/v1/sessions"+query)
		assert.Equal(t, http.StatusBadRequest, w.Code, query)
	}

	createSession(t, router, "")
	w := do(t, router, http.MethodPost, "/api/v1/sessions")
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
}

func TestUnknownSession(t *testing.T) {
	router := newTestRouter(0)

	assert.Equal(t, http.StatusBadRequest, do(t, router, http.MethodGet, "/api/v1/sessions/not-a-uuid/next").Code)
	assert.Equal(t, http.StatusNotFound, do(t, router, http.MethodGet, "/api/v1/sessions/7f1b0c3e-3c1f-4f6e-9d8a-2b5f4c1a9e10").Code)
}

func TestViewerPage(t *testing.T) {
	router := newTestRouter(0)

	w := do(t, router, http.MethodGet, "/")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/html")
	assert.Contains(t, w.Body.String(), "/api/v1/sessions")
	assert.Contains(t, w.Body.String(), "frame.png")
}
