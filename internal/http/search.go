package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/reader/internal/catalog"
)

// SearchResponse is the search view returned to the client.
type SearchResponse struct {
	Query   string              `json:"query"`
	Rows    []catalog.SearchRow `json:"rows"`
	IsEmpty bool                `json:"is_empty"`
}

// CatalogRecorder counts upstream catalog requests by outcome.
type CatalogRecorder interface {
	RecordCatalogRequest(outcome string)
}

type SearchController struct {
	searcher RowSearcher
	metrics  CatalogRecorder
}

func NewSearchController(searcher RowSearcher, metrics CatalogRecorder) *SearchController {
	return &SearchController{searcher: searcher, metrics: metrics}
}

func (s *SearchController) record(outcome string) {
	if s.metrics != nil {
		s.metrics.RecordCatalogRequest(outcome)
	}
}

// Search runs a catalog search for the q query parameter. Blank
// queries are rejected here without an upstream call, so they are not
// counted as catalog traffic.
func (s *SearchController) Search(c *gin.Context) {
	query := c.Query("q")

	rows, err := s.searcher.Search(c.Request.Context(), query)
	if err != nil {
		if errors.Is(err, catalog.ErrEmptyQuery) {
			respondBadRequest(c, "query must not be blank")
			return
		}
		s.record("error")
		respondBadGateway(c, err, "catalog search")
		return
	}
	s.record("success")

	c.JSON(http.StatusOK, SearchResponse{
		Query:   query,
		Rows:    rows,
		IsEmpty: s.searcher.State().IsEmpty(),
	})
}
