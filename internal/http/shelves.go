package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/reader/internal/auth"
	"github.com/mrlokans/reader/internal/shelf"
)

// ShelvesResponse pairs the three buckets with the name greeting the
// user above them.
type ShelvesResponse struct {
	DisplayName string `json:"display_name"`
	shelf.Shelves
}

// ShelvesController serves the derived reading-state views.
type ShelvesController struct {
	store ShelfStore
}

func NewShelvesController(store ShelfStore) *ShelvesController {
	return &ShelvesController{store: store}
}

// GetShelves returns the user's books split into the three buckets,
// with the display name derived from the session email. Without a
// known email the placeholder is used.
func (s *ShelvesController) GetShelves(c *gin.Context) {
	userID := GetUserID(c)

	records, err := s.store.GetAllForUser(userID)
	if err != nil {
		respondInternalError(c, err, "fetching books")
		return
	}

	name := MissingNamePlaceholder
	if email, ok := auth.GetEmail(c); ok {
		name = displayName(email)
	}

	c.JSON(http.StatusOK, ShelvesResponse{
		DisplayName: name,
		Shelves:     shelf.Partition(records, userID),
	})
}

// GetStats returns shelf counts and the finished-books summary.
func (s *ShelvesController) GetStats(c *gin.Context) {
	userID := GetUserID(c)

	records, err := s.store.GetAllForUser(userID)
	if err != nil {
		respondInternalError(c, err, "fetching books")
		return
	}

	c.JSON(http.StatusOK, shelf.Stats(records, userID))
}
