package shelf

import (
	"github.com/mrlokans/reader/internal/entities"
)

// ReadingStats summarises one user's reading activity for the stats view.
type ReadingStats struct {
	TotalBooks    int             `json:"total_books"`
	ToRead        int             `json:"to_read"`
	InProgress    int             `json:"in_progress"`
	FinishedCount int             `json:"finished_count"`
	AverageRating float64         `json:"average_rating"`
	Finished      []entities.Book `json:"finished"`
}

// Stats computes the stats view from the user's owned records. Like the
// bucket functions it is pure and deterministic; the average rating only
// considers finished books and is 0 when none are finished.
func Stats(books []entities.Book, userID uint) ReadingStats {
	shelves := Partition(books, userID)

	var ratingSum float64
	for _, b := range shelves.Finished {
		ratingSum += b.Rating
	}
	avg := 0.0
	if len(shelves.Finished) > 0 {
		avg = ratingSum / float64(len(shelves.Finished))
	}

	return ReadingStats{
		TotalBooks:    len(shelves.ToRead) + len(shelves.CurrentlyReading) + len(shelves.Finished),
		ToRead:        len(shelves.ToRead),
		InProgress:    len(shelves.CurrentlyReading),
		FinishedCount: len(shelves.Finished),
		AverageRating: avg,
		Finished:      shelves.Finished,
	}
}
