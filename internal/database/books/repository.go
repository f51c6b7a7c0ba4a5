// Package books persists book records and owns the two-phase save
// protocol: the store assigns an identifier on create, then a second
// write stamps that identifier back into the record itself. The second
// write can fail independently of the first, and callers must be able to
// see that as its own condition.
package books

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mrlokans/reader/internal/entities"
)

var (
	// ErrNotFound is returned when no record matches the lookup.
	ErrNotFound = errors.New("book record not found")

	// ErrIDStamp means the record was created and has a store-assigned id,
	// but the write copying that id into the record's own doc_id field
	// failed. The record is durable and recoverable; the save is not
	// retried automatically.
	ErrIDStamp = errors.New("id stamp write failed")
)

// SaveState tracks how far a save progressed.
type SaveState string

const (
	SaveStateCreated   SaveState = "created"
	SaveStateIDStamped SaveState = "id_stamped"
)

// SaveResult reports the store-assigned identifier and how far the
// two-phase save got.
type SaveResult struct {
	ID    string    `json:"id"`
	State SaveState `json:"state"`
}

// IDStamped reports whether both phases completed.
func (r SaveResult) IDStamped() bool {
	return r.State == SaveStateIDStamped
}

// Repository handles all book record database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new books repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create writes a new record and returns its store-assigned identifier.
// The record's own DocID field is left empty; StampID fills it in.
func (r *Repository) Create(book *entities.Book) (string, error) {
	book.ID = uuid.NewString()
	book.DocID = ""
	if err := r.db.Create(book).Error; err != nil {
		book.ID = ""
		return "", fmt.Errorf("create book record: %w", err)
	}
	return book.ID, nil
}

// StampID copies the store-assigned identifier into the stored record's
// doc_id field. Failures are wrapped in ErrIDStamp so callers can
// distinguish them from the create failing.
func (r *Repository) StampID(id string) error {
	result := r.db.Model(&entities.Book{}).Where("id = ?", id).Update("doc_id", id)
	if result.Error != nil {
		return fmt.Errorf("%w: %v", ErrIDStamp, result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("%w: no record with id %s", ErrIDStamp, id)
	}
	return nil
}

// Save runs both phases in order: create, then id-stamp. The stamp is
// only issued after the create completed. On stamp failure the returned
// SaveResult still carries the assigned id with State SaveStateCreated,
// and the error unwraps to ErrIDStamp.
func (r *Repository) Save(book *entities.Book, userID uint) (SaveResult, error) {
	book.UserID = userID

	id, err := r.Create(book)
	if err != nil {
		return SaveResult{}, err
	}

	result := SaveResult{ID: id, State: SaveStateCreated}
	if err := r.StampID(id); err != nil {
		return result, err
	}

	book.DocID = id
	result.State = SaveStateIDStamped
	return result, nil
}

// GetAllForUser returns every record owned by the user, for
// classification. The whole set loads at once; there is no pagination.
func (r *Repository) GetAllForUser(userID uint) ([]entities.Book, error) {
	var books []entities.Book
	err := r.db.Where("user_id = ?", userID).Order("created_at ASC").Find(&books).Error
	return books, err
}

// GetByID retrieves a user's record by its store-assigned identifier.
// Records owned by other users are indistinguishable from missing ones.
func (r *Repository) GetByID(id string, userID uint) (*entities.Book, error) {
	var book entities.Book
	err := r.db.Where("id = ? AND user_id = ?", id, userID).First(&book).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &book, nil
}

// GetByGoogleBookID retrieves a user's record by its external catalog
// identifier, as the update screen looks records up.
func (r *Repository) GetByGoogleBookID(googleBookID string, userID uint) (*entities.Book, error) {
	var book entities.Book
	err := r.db.Where("google_book_id = ? AND user_id = ?", googleBookID, userID).First(&book).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &book, nil
}

// UpdateProgress applies a partial-field map to a user's record,
// mirroring the document store's update-by-id contract. Used for
// reading-state transitions (started/finished timestamps) and
// rating/notes edits. The update is scoped to the owning user; ids
// owned by someone else report ErrNotFound.
func (r *Repository) UpdateProgress(id string, userID uint, fields map[string]any) error {
	result := r.db.Model(&entities.Book{}).Where("id = ? AND user_id = ?", id, userID).Updates(fields)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
