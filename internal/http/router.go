package http

import (
	stdhttp "net/http"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/reader/internal/auth"
	"github.com/mrlokans/reader/internal/metrics"
)

// Handler builds the full HTTP handler, wrapping the router in the
// session middleware when sessions are enabled.
func Handler(cfg RouterConfig) stdhttp.Handler {
	router := NewRouter(cfg)
	if cfg.SessionManager != nil {
		return cfg.SessionManager.LoadAndSave(router)
	}
	return router
}

// NewRouter configures the HTTP surface from a RouterConfig.
func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())

	router.Use(auth.SecurityHeadersMiddleware())

	if cfg.Metrics != nil {
		router.Use(cfg.Metrics.GinMiddleware())
	}

	// CSRF runs before auth so a rejected token never reaches a handler.
	if cfg.CSRFSecret != "" {
		router.Use(auth.CSRFMiddleware(cfg.CSRFSecret, cfg.AuthConfig.SecureCookies))
	}

	router.Use(auth.Middleware(cfg.AuthConfig.Mode, cfg.SessionManager))

	health := NewHealthController(cfg.Database, cfg.Version)
	router.GET("/health", health.Status)

	if cfg.Metrics != nil {
		router.GET("/metrics", gin.WrapH(metrics.Handler(cfg.Metrics.Gatherer())))
	}

	if cfg.AuthService != nil && cfg.AuthService.IsEnabled() {
		authController := NewAuthController(cfg.AuthService, cfg.SessionManager)
		router.POST("/api/auth/setup", authController.Setup)
		router.POST("/api/auth/login", authController.Login)
		router.POST("/api/auth/logout", authController.Logout)
		router.GET("/api/auth/me", authController.Me)
	}

	shelves := NewShelvesController(cfg.Books)
	router.GET("/api/shelves", shelves.GetShelves)
	router.GET("/api/shelves/stats", shelves.GetStats)

	var saveRecorder SaveRecorder
	var catalogRecorder CatalogRecorder
	if cfg.Metrics != nil {
		saveRecorder = cfg.Metrics
		catalogRecorder = cfg.Metrics
	}

	search := NewSearchController(cfg.Searcher, catalogRecorder)
	router.GET("/api/catalog/search", search.Search)

	details := NewDetailsController(cfg.Volumes, catalogRecorder)
	router.GET("/api/catalog/volumes/:id", details.GetVolume)

	booksController := NewBooksController(cfg.Books, saveRecorder)
	router.POST("/api/books", booksController.SaveBook)
	router.PATCH("/api/books/:id/progress", booksController.UpdateProgress)

	return router
}
