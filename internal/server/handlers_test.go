package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"tricks/internal/database"
	"tricks/internal/game"
)

func newTestRouter(t *testing.T) (*gin.Engine, *game.Manager) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store, err := database.NewStore(filepath.Join(t.TempDir(), "test.db"))
	assert.NoError(t, err)
	t.Cleanup(store.Close)

	manager := game.NewManager(store)
	handler := NewHandler(manager, store, game.DefaultTargetScore)
	return NewRouter(handler), manager
}

func TestHealthz(t *testing.T) {
	assert := assert.New(t)
	router, _ := newTestRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	router.ServeHTTP(w, req)

	assert.Equal(http.StatusOK, w.Code)
}

func TestCheckRoom(t *testing.T) {
	assert := assert.New(t)
	router, manager := newTestRouter(t)

	code, _ := manager.CreateGame("Alice", "conn-1", 75)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/rooms/"+code, nil)
	router.ServeHTTP(w, req)

	assert.Equal(http.StatusOK, w.Code)
	var body map[string]bool
	assert.NoError(json.Unmarshal(w.Body.Bytes(), &body))
	assert.True(body["exists"])

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/api/rooms/NOPE99", nil)
	router.ServeHTTP(w, req)

	assert.NoError(json.Unmarshal(w.Body.Bytes(), &body))
	assert.False(body["exists"])
}

func TestRoomStatsEmpty(t *testing.T) {
	assert := assert.New(t)
	router, _ := newTestRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/rooms/ABCDEF/stats", nil)
	router.ServeHTTP(w, req)

	assert.Equal(http.StatusOK, w.Code)
	var body struct {
		Stats []json.RawMessage `json:"stats"`
	}
	assert.NoError(json.Unmarshal(w.Body.Bytes(), &body))
	assert.Empty(body.Stats)
}
