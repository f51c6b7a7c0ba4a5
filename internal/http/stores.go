package http

import (
	"context"

	"github.com/alexedwards/scs/v2"

	"github.com/mrlokans/reader/internal/auth"
	"github.com/mrlokans/reader/internal/catalog"
	"github.com/mrlokans/reader/internal/config"
	"github.com/mrlokans/reader/internal/database"
	"github.com/mrlokans/reader/internal/database/books"
	"github.com/mrlokans/reader/internal/entities"
	"github.com/mrlokans/reader/internal/metrics"
)

// Each controller depends on the narrowest interface it needs; the
// repository satisfies all of them.

// ShelfStore provides the records a user's shelves are derived from.
type ShelfStore interface {
	GetAllForUser(userID uint) ([]entities.Book, error)
}

// BookStore covers the write path of the save pipeline. Lookups and
// updates are scoped to the owning user.
type BookStore interface {
	Save(book *entities.Book, userID uint) (books.SaveResult, error)
	UpdateProgress(id string, userID uint, fields map[string]any) error
	GetByID(id string, userID uint) (*entities.Book, error)
}

// RowSearcher runs catalog searches and exposes the view state.
type RowSearcher interface {
	Search(ctx context.Context, query string) ([]catalog.SearchRow, error)
	State() catalog.SearchState
}

// VolumeFetcher fetches a single catalog volume by its external id.
type VolumeFetcher interface {
	GetVolume(ctx context.Context, id string) (*catalog.Volume, error)
}

// RouterConfig carries all router dependencies. Optional pieces
// (auth, sessions, metrics) may be nil.
type RouterConfig struct {
	Database *database.Database
	Books    interface {
		ShelfStore
		BookStore
	}
	Searcher RowSearcher
	Volumes  VolumeFetcher

	AuthService    *auth.Service
	SessionManager *scs.SessionManager
	AuthConfig     config.Auth
	CSRFSecret     string

	Metrics *metrics.Collector
	Version string
}
