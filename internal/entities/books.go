package entities

import (
	"time"

	"gorm.io/gorm"
)

// Book is a saved catalog entry together with one user's reading progress.
//
// Reading-state buckets (to-read, currently-reading, finished) are never
// stored; they are always derived from StartedReading/FinishedReading by
// the shelf package so the two can never diverge.
type Book struct {
	// ID is assigned by the store on first write and is the primary key.
	ID string `gorm:"primaryKey;size:36" json:"-"`

	// DocID mirrors ID inside the record itself. It is stamped by a second
	// write after creation and stays empty if that write fails.
	DocID string `gorm:"index;size:36" json:"id"`

	GoogleBookID string `gorm:"index;size:64" json:"google_book_id,omitempty"`
	UserID       uint   `gorm:"index" json:"user_id"`

	Title         string `gorm:"index;size:512" json:"title"`
	Authors       string `gorm:"size:512" json:"authors"` // free text, may embed several names
	Description   string `gorm:"type:text" json:"description,omitempty"`
	Categories    string `gorm:"size:512" json:"categories,omitempty"`
	PhotoURL      string `gorm:"size:2048" json:"photo_url,omitempty"`
	PublishedDate string `gorm:"size:64" json:"published_date,omitempty"`
	PageCount     string `gorm:"size:16" json:"page_count,omitempty"` // kept as text
	Notes         string `gorm:"type:text" json:"notes"`

	Rating          float64    `gorm:"default:0" json:"rating"`
	StartedReading  *time.Time `json:"started_reading,omitempty"`
	FinishedReading *time.Time `json:"finished_reading,omitempty"`

	User User `gorm:"foreignKey:UserID" json:"-"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (Book) TableName() string {
	return "books"
}
