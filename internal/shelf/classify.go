// Package shelf derives reading-state views from stored book records.
//
// A book is in exactly one of three buckets at any time, determined only
// by the presence of its StartedReading/FinishedReading timestamps:
//
//	to-read            neither timestamp set
//	currently reading  started set, finished unset
//	finished           finished set
//
// A record with FinishedReading set but StartedReading missing is a defect
// state; it classifies as finished (the finished timestamp wins) so that
// the three predicates stay a total partition and classification never
// fails. All functions are pure: they copy into fresh slices, never touch
// storage, and take the owning user id as a parameter.
package shelf

import (
	"github.com/mrlokans/reader/internal/entities"
)

// Shelves holds the three disjoint reading-state buckets for one user.
type Shelves struct {
	ToRead           []entities.Book `json:"to_read"`
	CurrentlyReading []entities.Book `json:"currently_reading"`
	Finished         []entities.Book `json:"finished"`
}

// OwnedBy returns the records belonging to userID. It runs before any
// bucket predicate; books owned by other users never reach a bucket.
func OwnedBy(books []entities.Book, userID uint) []entities.Book {
	owned := make([]entities.Book, 0, len(books))
	for _, b := range books {
		if b.UserID == userID {
			owned = append(owned, b)
		}
	}
	return owned
}

// ToRead returns books that have not been started or finished.
func ToRead(books []entities.Book) []entities.Book {
	out := make([]entities.Book, 0, len(books))
	for _, b := range books {
		if b.StartedReading == nil && b.FinishedReading == nil {
			out = append(out, b)
		}
	}
	return out
}

// CurrentlyReading returns books that have been started but not finished.
func CurrentlyReading(books []entities.Book) []entities.Book {
	out := make([]entities.Book, 0, len(books))
	for _, b := range books {
		if b.StartedReading != nil && b.FinishedReading == nil {
			out = append(out, b)
		}
	}
	return out
}

// Finished returns books with a finished timestamp, whether or not a
// started timestamp was ever recorded.
func Finished(books []entities.Book) []entities.Book {
	out := make([]entities.Book, 0, len(books))
	for _, b := range books {
		if b.FinishedReading != nil {
			out = append(out, b)
		}
	}
	return out
}

// Partition filters books to those owned by userID and splits them into
// the three buckets. Every owned record lands in exactly one bucket.
func Partition(books []entities.Book, userID uint) Shelves {
	owned := OwnedBy(books, userID)
	return Shelves{
		ToRead:           ToRead(owned),
		CurrentlyReading: CurrentlyReading(owned),
		Finished:         Finished(owned),
	}
}
