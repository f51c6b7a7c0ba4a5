package shelf

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/reader/internal/entities"
)

func timePtr(t time.Time) *time.Time {
	return &t
}

func makeBook(id string, userID uint, started, finished *time.Time) entities.Book {
	return entities.Book{
		ID:              id,
		DocID:           id,
		UserID:          userID,
		Title:           "Book " + id,
		StartedReading:  started,
		FinishedReading: finished,
	}
}

func TestPartition_MixedUsers(t *testing.T) {
	started := timePtr(time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC))

	books := []entities.Book{
		makeBook("a", 1, nil, nil),
		makeBook("b", 1, started, nil),
		makeBook("c", 2, nil, nil),
	}

	shelves := Partition(books, 1)

	require.Len(t, shelves.ToRead, 1)
	assert.Equal(t, "a", shelves.ToRead[0].ID)

	require.Len(t, shelves.CurrentlyReading, 1)
	assert.Equal(t, "b", shelves.CurrentlyReading[0].ID)

	assert.Empty(t, shelves.Finished)

	// The other user's book appears nowhere.
	for _, bucket := range [][]entities.Book{shelves.ToRead, shelves.CurrentlyReading, shelves.Finished} {
		for _, b := range bucket {
			assert.NotEqual(t, "c", b.ID)
		}
	}
}

func TestPartition_DisjointAndComplete(t *testing.T) {
	now := time.Now()
	books := []entities.Book{
		makeBook("1", 7, nil, nil),
		makeBook("2", 7, timePtr(now), nil),
		makeBook("3", 7, timePtr(now), timePtr(now)),
		makeBook("4", 7, nil, timePtr(now)), // defect state: finished without started
		makeBook("5", 9, nil, nil),          // other owner
	}

	shelves := Partition(books, 7)

	seen := map[string]int{}
	for _, b := range shelves.ToRead {
		seen[b.ID]++
	}
	for _, b := range shelves.CurrentlyReading {
		seen[b.ID]++
	}
	for _, b := range shelves.Finished {
		seen[b.ID]++
	}

	// Every owned record in exactly one bucket, nothing else.
	assert.Equal(t, map[string]int{"1": 1, "2": 1, "3": 1, "4": 1}, seen)
}

func TestPartition_FinishedWithoutStarted(t *testing.T) {
	finished := timePtr(time.Now())
	books := []entities.Book{makeBook("x", 1, nil, finished)}

	shelves := Partition(books, 1)

	assert.Empty(t, shelves.ToRead)
	assert.Empty(t, shelves.CurrentlyReading)
	require.Len(t, shelves.Finished, 1)
	assert.Equal(t, "x", shelves.Finished[0].ID)
}

func TestToRead_NeverContainsStarted(t *testing.T) {
	started := timePtr(time.Now())
	books := []entities.Book{
		makeBook("a", 1, started, nil),
		makeBook("b", 1, started, timePtr(time.Now())),
		makeBook("c", 1, nil, nil),
	}

	for _, b := range ToRead(books) {
		assert.Nil(t, b.StartedReading)
		assert.Nil(t, b.FinishedReading)
	}
	assert.Len(t, ToRead(books), 1)
}

func TestCurrentlyReading_NeverContainsFinished(t *testing.T) {
	now := time.Now()
	books := []entities.Book{
		makeBook("a", 1, timePtr(now), timePtr(now)),
		makeBook("b", 1, timePtr(now), nil),
	}

	reading := CurrentlyReading(books)
	require.Len(t, reading, 1)
	assert.Equal(t, "b", reading[0].ID)
	for _, b := range reading {
		assert.Nil(t, b.FinishedReading)
	}
}

func TestPartition_EmptyInput(t *testing.T) {
	shelves := Partition(nil, 1)

	assert.Empty(t, shelves.ToRead)
	assert.Empty(t, shelves.CurrentlyReading)
	assert.Empty(t, shelves.Finished)
}

func TestPartition_DoesNotMutateInput(t *testing.T) {
	started := timePtr(time.Now())
	books := []entities.Book{
		makeBook("a", 1, nil, nil),
		makeBook("b", 1, started, nil),
	}
	snapshot := make([]entities.Book, len(books))
	copy(snapshot, books)

	_ = Partition(books, 1)

	assert.Equal(t, snapshot, books)
}

func TestOwnedBy(t *testing.T) {
	books := []entities.Book{
		makeBook("a", 1, nil, nil),
		makeBook("b", 2, nil, nil),
		makeBook("c", 1, nil, nil),
	}

	owned := OwnedBy(books, 1)
	require.Len(t, owned, 2)
	for _, b := range owned {
		assert.Equal(t, uint(1), b.UserID)
	}
}
