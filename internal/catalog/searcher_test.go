package catalog

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubSearcher struct {
	calls   int
	volumes []Volume
	err     error
}

func (s *stubSearcher) Search(ctx context.Context, query string) ([]Volume, error) {
	s.calls++
	return s.volumes, s.err
}

func TestSearcher_BlankQueryNeverHitsClient(t *testing.T) {
	for _, query := range []string{"", "   ", "\t\n"} {
		t.Run("query="+query, func(t *testing.T) {
			stub := &stubSearcher{}
			searcher := NewSearcher(stub, testFallbackURL)

			_, err := searcher.Search(context.Background(), query)

			assert.ErrorIs(t, err, ErrEmptyQuery)
			assert.Equal(t, 0, stub.calls)
		})
	}
}

func TestSearcher_TrimsQueryBeforeSubmitting(t *testing.T) {
	stub := &stubSearcher{volumes: []Volume{{ID: "v"}}}
	searcher := NewSearcher(stub, testFallbackURL)

	rows, err := searcher.Search(context.Background(), "  golang  ")

	require.NoError(t, err)
	assert.Equal(t, 1, stub.calls)
	require.Len(t, rows, 1)
}

func TestSearcher_StateBeforeAnySearch(t *testing.T) {
	searcher := NewSearcher(&stubSearcher{}, testFallbackURL)

	state := searcher.State()

	assert.False(t, state.Loading)
	assert.False(t, state.Searched)
	assert.False(t, state.IsEmpty(), "no search yet is not the same as zero results")
}

func TestSearcher_ZeroResultsIsEmpty(t *testing.T) {
	searcher := NewSearcher(&stubSearcher{}, testFallbackURL)

	rows, err := searcher.Search(context.Background(), "obscure")

	require.NoError(t, err)
	assert.Empty(t, rows)

	state := searcher.State()
	assert.True(t, state.Searched)
	assert.True(t, state.IsEmpty())
}

func TestSearcher_ErrorLeavesSearchedUnset(t *testing.T) {
	stub := &stubSearcher{err: errors.New("upstream down")}
	searcher := NewSearcher(stub, testFallbackURL)

	_, err := searcher.Search(context.Background(), "golang")

	assert.Error(t, err)
	state := searcher.State()
	assert.False(t, state.Loading)
	assert.False(t, state.Searched)
}

func TestSearcher_ReturnedRowsDoNotAliasState(t *testing.T) {
	stub := &stubSearcher{volumes: []Volume{
		{ID: "v1", VolumeInfo: VolumeInfo{Title: "Original"}},
	}}
	searcher := NewSearcher(stub, testFallbackURL)

	rows, err := searcher.Search(context.Background(), "golang")
	require.NoError(t, err)
	require.Len(t, rows, 1)

	rows[0].Title = "mutated"

	state := searcher.State()
	require.Len(t, state.Rows, 1)
	assert.Equal(t, "Original", state.Rows[0].Title)
}

func TestSearcher_RowsUseFallbackThumbnail(t *testing.T) {
	stub := &stubSearcher{volumes: []Volume{
		{ID: "v1", VolumeInfo: VolumeInfo{Title: "Covered", ImageLinks: ImageLinks{SmallThumbnail: "http://img/v1.jpg"}}},
		{ID: "v2", VolumeInfo: VolumeInfo{Title: "Bare"}},
	}}
	searcher := NewSearcher(stub, testFallbackURL)

	rows, err := searcher.Search(context.Background(), "covers")

	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "http://img/v1.jpg", rows[0].ThumbnailURL)
	assert.Equal(t, testFallbackURL, rows[1].ThumbnailURL)
}
