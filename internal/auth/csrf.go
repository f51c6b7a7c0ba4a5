package auth

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/csrf"
)

const csrfHeader = "X-CSRF-Token"

// CSRFMiddleware wraps gorilla/csrf for gin. Safe methods pass
// through; state-changing requests must echo the token from the
// X-CSRF-Token header.
func CSRFMiddleware(secret string, secureCookies bool) gin.HandlerFunc {
	protect := csrf.Protect(
		[]byte(secret),
		csrf.Secure(secureCookies),
		csrf.Path("/"),
		csrf.RequestHeader(csrfHeader),
		csrf.ErrorHandler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusForbidden)
			w.Write([]byte(`{"error":"invalid CSRF token"}`))
		})),
	)

	return func(c *gin.Context) {
		finished := false
		handler := protect(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			finished = true
			c.Request = r
			c.Writer.Header().Set(csrfHeader, csrf.Token(r))
			c.Next()
		}))
		handler.ServeHTTP(c.Writer, c.Request)
		if !finished {
			c.Abort()
		}
	}
}
