package http

import (
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/reader/internal/auth"
)

// MissingNamePlaceholder is shown when no display name can be derived.
const MissingNamePlaceholder = "N/A"

// GetUserID extracts the authenticated user's ID from the gin context.
func GetUserID(c *gin.Context) uint {
	id, _ := auth.GetUserID(c)
	return id
}

// displayName derives a user-facing name from an email address: the
// part before the "@". Empty or malformed input yields the placeholder.
func displayName(email string) string {
	local, _, found := strings.Cut(email, "@")
	if !found || local == "" {
		return MissingNamePlaceholder
	}
	return local
}

// ErrorResponse is the error format for all API errors.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

func respondBadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, ErrorResponse{Error: message})
}

func respondNotFound(c *gin.Context, resource string) {
	c.JSON(http.StatusNotFound, ErrorResponse{Error: resource + " not found"})
}

// respondInternalError logs the error; the client only sees a generic
// message.
func respondInternalError(c *gin.Context, err error, context string) {
	log.Printf("Internal error (%s): %v", context, err)
	c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal server error"})
}

// respondBadGateway is used when the upstream catalog fails.
func respondBadGateway(c *gin.Context, err error, context string) {
	log.Printf("Upstream error (%s): %v", context, err)
	c.JSON(http.StatusBadGateway, ErrorResponse{Error: "upstream catalog unavailable"})
}
