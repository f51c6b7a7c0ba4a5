package auth

import (
	"database/sql"
	"fmt"
	"net/http"
	"time"

	"github.com/alexedwards/scs/sqlite3store"
	"github.com/alexedwards/scs/v2"
)

const (
	SessionKeyUserID = "user_id"
	SessionKeyEmail  = "email"
)

// NewSessionManager returns a session manager backed by the sessions
// table of the application database.
func NewSessionManager(db *sql.DB, lifetime time.Duration, secureCookies bool) (*scs.SessionManager, error) {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS sessions (
			token TEXT PRIMARY KEY,
			data BLOB NOT NULL,
			expiry REAL NOT NULL
		);
		CREATE INDEX IF NOT EXISTS sessions_expiry_idx ON sessions(expiry);
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to create sessions table: %w", err)
	}

	manager := scs.New()
	manager.Store = sqlite3store.New(db)
	manager.Lifetime = lifetime
	manager.Cookie.Name = "reader_session"
	manager.Cookie.HttpOnly = true
	manager.Cookie.Secure = secureCookies
	manager.Cookie.SameSite = http.SameSiteLaxMode
	return manager, nil
}
