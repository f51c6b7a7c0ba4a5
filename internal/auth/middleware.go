package auth

import (
	"net/http"
	"strings"

	"github.com/alexedwards/scs/v2"
	"github.com/gin-gonic/gin"

	"github.com/mrlokans/reader/internal/config"
)

const (
	ContextKeyUserID = "auth_user_id"
	ContextKeyEmail  = "auth_email"

	// DefaultUserID is the implicit account used when auth mode is "none".
	DefaultUserID uint = 1
)

// publicPaths never require a session.
var publicPaths = []string{
	"/health",
	"/metrics",
	"/api/auth/login",
	"/api/auth/setup",
}

func isPublicPath(path string) bool {
	for _, p := range publicPaths {
		if path == p || strings.HasPrefix(path, p+"/") {
			return true
		}
	}
	return false
}

// Middleware resolves the current user for each request. With mode
// "none" every request runs as DefaultUserID; with mode "local" a
// valid session cookie is required for everything but public paths.
func Middleware(mode config.AuthMode, sessions *scs.SessionManager) gin.HandlerFunc {
	if mode != config.AuthModeLocal {
		return func(c *gin.Context) {
			c.Set(ContextKeyUserID, DefaultUserID)
			c.Next()
		}
	}

	return func(c *gin.Context) {
		if isPublicPath(c.Request.URL.Path) {
			c.Next()
			return
		}

		userID := sessions.GetInt(c.Request.Context(), SessionKeyUserID)
		if userID <= 0 {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
			return
		}

		c.Set(ContextKeyUserID, uint(userID))
		if email := sessions.GetString(c.Request.Context(), SessionKeyEmail); email != "" {
			c.Set(ContextKeyEmail, email)
		}
		c.Next()
	}
}

// GetUserID returns the authenticated user id from the gin context.
func GetUserID(c *gin.Context) (uint, bool) {
	v, ok := c.Get(ContextKeyUserID)
	if !ok {
		return 0, false
	}
	id, ok := v.(uint)
	return id, ok
}

// GetEmail returns the authenticated user's email, if known.
func GetEmail(c *gin.Context) (string, bool) {
	v, ok := c.Get(ContextKeyEmail)
	if !ok {
		return "", false
	}
	email, ok := v.(string)
	return email, ok
}
