package config

import (
	"time"

	"github.com/spf13/viper"
)

type AuthMode string

const (
	AuthModeNone  AuthMode = "none"  // No authentication required (default)
	AuthModeLocal AuthMode = "local" // Local user database with sessions
)

type (
	Config struct {
		HTTP
		Global
		Database
		Catalog
		Auth
		Metrics
	}

	HTTP struct {
		Port int32
		Host string
	}
	Global struct {
		ShutdownTimeoutInSeconds int
	}
	Database struct {
		Path string
	}
	Catalog struct {
		BaseURL              string  // Google Books volumes API base URL
		FallbackThumbnailURL string  // Substituted when a volume has no smallThumbnail
		RequestsPerSecond    float64 // Upstream throttle
	}
	Auth struct {
		Mode            AuthMode
		SessionSecret   string
		SessionLifetime time.Duration
		BcryptCost      int
		SecureCookies   bool // Set to false for local dev without HTTPS
		LockoutDuration time.Duration
	}
	Metrics struct {
		Enabled bool
	}
)

func NewConfig() *Config {
	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("port", 8189)
	v.SetDefault("host", "0.0.0.0")
	v.SetDefault("shutdown_timeout_in_seconds", 2)
	v.SetDefault("database_path", DefaultDatabasePath)

	// Catalog defaults
	v.SetDefault("catalog_base_url", DefaultCatalogBaseURL)
	v.SetDefault("catalog_fallback_thumbnail_url", DefaultFallbackThumbnailURL)
	v.SetDefault("catalog_requests_per_second", 1.0)

	// Auth defaults
	v.SetDefault("auth_mode", "none")
	v.SetDefault("auth_session_secret", "")      // Auto-generated if empty
	v.SetDefault("auth_session_lifetime", "24h") // 24 hours
	v.SetDefault("auth_bcrypt_cost", 12)         // bcrypt cost factor
	v.SetDefault("auth_secure_cookies", true)    // HTTPS-only cookies
	v.SetDefault("auth_lockout_duration", "30m") // Lockout after repeated failures

	// Metrics defaults
	v.SetDefault("metrics_enabled", true)

	return &Config{
		HTTP: HTTP{
			Port: v.GetInt32("PORT"),
			Host: v.GetString("HOST"),
		},
		Global: Global{
			ShutdownTimeoutInSeconds: v.GetInt("SHUTDOWN_TIMEOUT_IN_SECONDS"),
		},
		Database: Database{
			Path: v.GetString("DATABASE_PATH"),
		},
		Catalog: Catalog{
			BaseURL:              v.GetString("CATALOG_BASE_URL"),
			FallbackThumbnailURL: v.GetString("CATALOG_FALLBACK_THUMBNAIL_URL"),
			RequestsPerSecond:    v.GetFloat64("CATALOG_REQUESTS_PER_SECOND"),
		},
		Auth: Auth{
			Mode:            AuthMode(v.GetString("AUTH_MODE")),
			SessionSecret:   v.GetString("AUTH_SESSION_SECRET"),
			SessionLifetime: v.GetDuration("AUTH_SESSION_LIFETIME"),
			BcryptCost:      v.GetInt("AUTH_BCRYPT_COST"),
			SecureCookies:   v.GetBool("AUTH_SECURE_COOKIES"),
			LockoutDuration: v.GetDuration("AUTH_LOCKOUT_DURATION"),
		},
		Metrics: Metrics{
			Enabled: v.GetBool("METRICS_ENABLED"),
		},
	}
}
