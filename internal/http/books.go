package http

import (
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/reader/internal/database/books"
	"github.com/mrlokans/reader/internal/entities"
)

// SaveBookRequest is the payload for persisting a catalog volume.
type SaveBookRequest struct {
	GoogleBookID  string `json:"google_book_id" binding:"required"`
	Title         string `json:"title"`
	Authors       string `json:"authors"`
	Description   string `json:"description"`
	Categories    string `json:"categories"`
	PhotoURL      string `json:"photo_url"`
	PublishedDate string `json:"published_date"`
	PageCount     string `json:"page_count"`
	Notes         string `json:"notes"`

	Rating          float64    `json:"rating"`
	StartedReading  *time.Time `json:"started_reading"`
	FinishedReading *time.Time `json:"finished_reading"`
}

// SaveBookResponse reports the stored id and whether the id write-back
// step completed.
type SaveBookResponse struct {
	ID        string `json:"id"`
	IDStamped bool   `json:"id_stamped"`
}

// UpdateProgressRequest carries a partial update of reading progress.
// Absent fields are left untouched.
type UpdateProgressRequest struct {
	StartedReading  *time.Time `json:"started_reading"`
	FinishedReading *time.Time `json:"finished_reading"`
	Rating          *float64   `json:"rating"`
	Notes           *string    `json:"notes"`
}

type BooksController struct {
	store   BookStore
	metrics SaveRecorder
}

// SaveRecorder is the slice of the metrics collector the save path
// reports to.
type SaveRecorder interface {
	RecordBookSaved()
	RecordIDStampFailure()
}

func NewBooksController(store BookStore, metrics SaveRecorder) *BooksController {
	return &BooksController{store: store, metrics: metrics}
}

// SaveBook persists a book in two steps: the record is created with a
// fresh id, then the id is written back onto the stored document. A
// failed write-back is logged and reported, never retried; the record
// stays saved so the response is still 201.
func (b *BooksController) SaveBook(c *gin.Context) {
	var req SaveBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid request body: "+err.Error())
		return
	}

	userID := GetUserID(c)
	book := &entities.Book{
		GoogleBookID:    req.GoogleBookID,
		Title:           req.Title,
		Authors:         req.Authors,
		Description:     req.Description,
		Categories:      req.Categories,
		PhotoURL:        req.PhotoURL,
		PublishedDate:   req.PublishedDate,
		PageCount:       req.PageCount,
		Notes:           req.Notes,
		Rating:          req.Rating,
		StartedReading:  req.StartedReading,
		FinishedReading: req.FinishedReading,
	}

	result, err := b.store.Save(book, userID)
	if err != nil {
		if errors.Is(err, books.ErrIDStamp) {
			log.Printf("id stamp failed for book %s: %v", result.ID, err)
			if b.metrics != nil {
				b.metrics.RecordIDStampFailure()
			}
			c.JSON(http.StatusCreated, SaveBookResponse{ID: result.ID, IDStamped: false})
			return
		}
		respondInternalError(c, err, "saving book")
		return
	}

	if b.metrics != nil {
		b.metrics.RecordBookSaved()
	}
	c.JSON(http.StatusCreated, SaveBookResponse{ID: result.ID, IDStamped: result.IDStamped()})
}

// UpdateProgress applies a partial progress update to one of the
// current user's books. Other users' ids look like missing records.
func (b *BooksController) UpdateProgress(c *gin.Context) {
	id := c.Param("id")
	userID := GetUserID(c)

	var req UpdateProgressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid request body: "+err.Error())
		return
	}

	fields := make(map[string]any)
	if req.StartedReading != nil {
		fields["started_reading"] = *req.StartedReading
	}
	if req.FinishedReading != nil {
		fields["finished_reading"] = *req.FinishedReading
	}
	if req.Rating != nil {
		fields["rating"] = *req.Rating
	}
	if req.Notes != nil {
		fields["notes"] = *req.Notes
	}
	if len(fields) == 0 {
		respondBadRequest(c, "no fields to update")
		return
	}

	if err := b.store.UpdateProgress(id, userID, fields); err != nil {
		if errors.Is(err, books.ErrNotFound) {
			respondNotFound(c, "book")
			return
		}
		respondInternalError(c, err, "updating progress")
		return
	}

	updated, err := b.store.GetByID(id, userID)
	if err != nil {
		respondInternalError(c, err, "fetching updated book")
		return
	}
	c.JSON(http.StatusOK, updated)
}
