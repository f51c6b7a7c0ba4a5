package entrypoint

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/mrlokans/reader/internal/auth"
	"github.com/mrlokans/reader/internal/catalog"
	"github.com/mrlokans/reader/internal/config"
	"github.com/mrlokans/reader/internal/database"
	"github.com/mrlokans/reader/internal/database/books"
	http_controllers "github.com/mrlokans/reader/internal/http"
	"github.com/mrlokans/reader/internal/metrics"
)

// ShutdownFunc is called during graceful shutdown to clean up resources.
type ShutdownFunc func(ctx context.Context)

func Serve(handler http.Handler, cfg *config.Config, onShutdown ShutdownFunc) {
	timeout := time.Duration(cfg.Global.ShutdownTimeoutInSeconds) * time.Second

	srv := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port),
		Handler: handler,
	}

	go func() {
		fmt.Printf("Starting server at %s:%d\n", cfg.HTTP.Host, cfg.HTTP.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	// SIGKILL cannot be caught, so only INT and TERM are handled.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Printf("Shutdown Server, waiting %v before killing\n", timeout)

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if onShutdown != nil {
		onShutdown(ctx)
	}

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server Shutdown:", err)
	}

	log.Println("Server exiting")
}

func Run(cfg *config.Config, version string) {
	log.Printf("Starting Reader v%s", version)

	db, err := database.NewDatabase(cfg.Database.Path)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Printf("Error closing database: %v", err)
		}
	}()

	repo := books.NewRepository(db.DB)

	client := catalog.NewClient(cfg.Catalog.BaseURL, cfg.Catalog.RequestsPerSecond)
	searcher := catalog.NewSearcher(client, cfg.Catalog.FallbackThumbnailURL)

	var collector *metrics.Collector
	if cfg.Metrics.Enabled {
		collector = metrics.NewCollector(prometheus.NewRegistry())
	}

	routerCfg := http_controllers.RouterConfig{
		Database:   db,
		Books:      repo,
		Searcher:   searcher,
		Volumes:    client,
		AuthConfig: cfg.Auth,
		Metrics:    collector,
		Version:    version,
	}

	if cfg.Auth.Mode == config.AuthModeLocal {
		service := auth.NewService(db.DB, cfg.Auth)

		secret := cfg.Auth.SessionSecret
		if secret == "" {
			secret, err = auth.GenerateSessionSecret()
			if err != nil {
				log.Fatalf("Failed to generate session secret: %v", err)
			}
			log.Printf("AUTH_SESSION_SECRET not set, generated an ephemeral one; sessions will not survive restarts")
		}

		sqlDB, err := db.DB.DB()
		if err != nil {
			log.Fatalf("Failed to access session store database: %v", err)
		}
		sessions, err := auth.NewSessionManager(sqlDB, cfg.Auth.SessionLifetime, cfg.Auth.SecureCookies)
		if err != nil {
			log.Fatalf("Failed to initialize session manager: %v", err)
		}

		routerCfg.AuthService = service
		routerCfg.SessionManager = sessions
		routerCfg.CSRFSecret = secret
		log.Printf("Local authentication enabled")
	} else {
		log.Printf("Authentication disabled, running as the default user")
	}

	handler := http_controllers.Handler(routerCfg)

	Serve(handler, cfg, nil)
}
