package catalog

import (
	"context"
	"strings"
	"sync"
)

// VolumeSearcher is the part of Client the Searcher needs; tests stub it.
type VolumeSearcher interface {
	Search(ctx context.Context, query string) ([]Volume, error)
}

// SearchState describes the search view between submissions.
type SearchState struct {
	Loading  bool        `json:"loading"`
	Searched bool        `json:"searched"`
	Rows     []SearchRow `json:"rows"`
}

// IsEmpty reports a completed search that returned no rows. It is false
// before the first search so the view can tell "nothing searched yet"
// apart from "zero results".
func (s SearchState) IsEmpty() bool {
	return s.Searched && !s.Loading && len(s.Rows) == 0
}

// Searcher runs catalog searches and tracks the loading/empty state of
// the latest one. Blank queries are rejected locally before any network
// call is made.
type Searcher struct {
	client               VolumeSearcher
	fallbackThumbnailURL string

	mu       sync.Mutex
	loading  bool
	searched bool
	rows     []SearchRow
}

// NewSearcher creates a Searcher backed by the given client.
func NewSearcher(client VolumeSearcher, fallbackThumbnailURL string) *Searcher {
	return &Searcher{
		client:               client,
		fallbackThumbnailURL: fallbackThumbnailURL,
	}
}

// Search trims the query, rejects blank input with ErrEmptyQuery, and
// otherwise submits it to the catalog, recording rows and flags.
func (s *Searcher) Search(ctx context.Context, query string) ([]SearchRow, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, ErrEmptyQuery
	}

	s.mu.Lock()
	s.loading = true
	s.mu.Unlock()

	volumes, err := s.client.Search(ctx, query)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = false
	if err != nil {
		return nil, err
	}

	s.searched = true
	s.rows = NewSearchRows(volumes, s.fallbackThumbnailURL)

	// Hand out a copy so callers cannot alias the guarded state.
	rows := make([]SearchRow, len(s.rows))
	copy(rows, s.rows)
	return rows, nil
}

// State returns a snapshot of the current search view.
func (s *Searcher) State() SearchState {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows := make([]SearchRow, len(s.rows))
	copy(rows, s.rows)
	return SearchState{
		Loading:  s.loading,
		Searched: s.searched,
		Rows:     rows,
	}
}
