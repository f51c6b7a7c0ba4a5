package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/reader/internal/auth"
	"github.com/mrlokans/reader/internal/config"
	"github.com/mrlokans/reader/internal/entities"
	"github.com/mrlokans/reader/internal/shelf"
)

type stubShelfStore struct {
	books []entities.Book
	err   error
}

func (s *stubShelfStore) GetAllForUser(userID uint) ([]entities.Book, error) {
	return s.books, s.err
}

func newShelvesRouter(store ShelfStore) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(auth.Middleware(config.AuthModeNone, nil))
	controller := NewShelvesController(store)
	router.GET("/api/shelves", controller.GetShelves)
	router.GET("/api/shelves/stats", controller.GetStats)
	return router
}

func TestShelvesController_GetShelves(t *testing.T) {
	now := time.Now()
	store := &stubShelfStore{books: []entities.Book{
		{ID: "b1", UserID: auth.DefaultUserID, Title: "Queued"},
		{ID: "b2", UserID: auth.DefaultUserID, Title: "In progress", StartedReading: &now},
		{ID: "b3", UserID: auth.DefaultUserID, Title: "Done", StartedReading: &now, FinishedReading: &now, Rating: 4},
		{ID: "b4", UserID: 99, Title: "Someone else's"},
	}}

	rec := httptest.NewRecorder()
	newShelvesRouter(store).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/shelves", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	var resp ShelvesResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.ToRead, 1)
	require.Len(t, resp.CurrentlyReading, 1)
	require.Len(t, resp.Finished, 1)
	assert.Equal(t, "Queued", resp.ToRead[0].Title)
	assert.Equal(t, "In progress", resp.CurrentlyReading[0].Title)
	assert.Equal(t, "Done", resp.Finished[0].Title)
	assert.Equal(t, "N/A", resp.DisplayName)
}

func TestShelvesController_DisplayNameFromSessionEmail(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(auth.Middleware(config.AuthModeNone, nil))
	router.Use(func(c *gin.Context) {
		c.Set(auth.ContextKeyEmail, "alice@example.com")
	})
	router.GET("/api/shelves", NewShelvesController(&stubShelfStore{}).GetShelves)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/shelves", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var resp ShelvesResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "alice", resp.DisplayName)
}

func TestShelvesController_GetStats(t *testing.T) {
	now := time.Now()
	store := &stubShelfStore{books: []entities.Book{
		{ID: "b1", UserID: auth.DefaultUserID},
		{ID: "b2", UserID: auth.DefaultUserID, StartedReading: &now, FinishedReading: &now, Rating: 3},
		{ID: "b3", UserID: auth.DefaultUserID, StartedReading: &now, FinishedReading: &now, Rating: 5},
	}}

	rec := httptest.NewRecorder()
	newShelvesRouter(store).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/shelves/stats", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	var stats shelf.ReadingStats
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &stats))
	assert.Equal(t, 3, stats.TotalBooks)
	assert.Equal(t, 1, stats.ToRead)
	assert.Equal(t, 2, stats.FinishedCount)
	assert.InDelta(t, 4.0, stats.AverageRating, 0.001)
}

func TestShelvesController_StoreError(t *testing.T) {
	store := &stubShelfStore{err: assert.AnError}

	rec := httptest.NewRecorder()
	newShelvesRouter(store).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/shelves", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
