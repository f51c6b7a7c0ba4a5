// Package catalog talks to the Google Books volumes API and shapes its
// responses into rows the screens can display.
package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/time/rate"
)

var (
	// ErrNotFound is returned when the catalog has no volume for the id.
	ErrNotFound = errors.New("volume not found")
	// ErrEmptyQuery is returned for blank search input; no request is made.
	ErrEmptyQuery = errors.New("search query is empty")
)

// Client fetches catalog data from the Google Books volumes API.
type Client struct {
	httpClient *http.Client
	baseURL    string
	limiter    *rate.Limiter
}

// NewClient creates a catalog client with request throttling. An empty
// baseURL selects the public Google Books endpoint.
func NewClient(baseURL string, requestsPerSecond float64) *Client {
	if baseURL == "" {
		baseURL = "https://www.googleapis.com/books/v1"
	}
	if requestsPerSecond <= 0 {
		requestsPerSecond = 1
	}
	return &Client{
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		baseURL: baseURL,
		limiter: rate.NewLimiter(rate.Limit(requestsPerSecond), 1),
	}
}

// Search queries the catalog with a free-text query and returns the raw
// volume items. The query must already be validated as non-blank.
func (c *Client) Search(ctx context.Context, query string) ([]Volume, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	searchURL := fmt.Sprintf("%s/volumes?q=%s", c.baseURL, url.QueryEscape(query))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, searchURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", "Reader/1.0 (https://github.com/mrlokans/reader)")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("search volumes: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status: %d", resp.StatusCode)
	}

	var result volumesResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decode search response: %w", err)
	}

	return result.Items, nil
}

// GetVolume fetches a single catalog item by its external identifier.
// Returns ErrNotFound when the catalog does not know the id, so callers
// can tell "not found" apart from transport errors.
func (c *Client) GetVolume(ctx context.Context, id string) (*Volume, error) {
	if id == "" {
		return nil, ErrNotFound
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	volumeURL := fmt.Sprintf("%s/volumes/%s", c.baseURL, url.PathEscape(id))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, volumeURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", "Reader/1.0 (https://github.com/mrlokans/reader)")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch volume: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, ErrNotFound
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status: %d", resp.StatusCode)
	}

	var volume Volume
	if err := json.NewDecoder(resp.Body).Decode(&volume); err != nil {
		return nil, fmt.Errorf("decode volume: %w", err)
	}

	return &volume, nil
}

// Google Books API response types.

type volumesResponse struct {
	TotalItems int      `json:"totalItems"`
	Items      []Volume `json:"items"`
}

// Volume is one catalog item as returned by the volumes API.
type Volume struct {
	ID         string     `json:"id"`
	VolumeInfo VolumeInfo `json:"volumeInfo"`
}

type VolumeInfo struct {
	Title         string     `json:"title"`
	Authors       []string   `json:"authors"`
	Description   string     `json:"description"`
	Categories    []string   `json:"categories"`
	PublishedDate string     `json:"publishedDate"`
	PageCount     int        `json:"pageCount"`
	ImageLinks    ImageLinks `json:"imageLinks"`
}

type ImageLinks struct {
	SmallThumbnail string `json:"smallThumbnail"`
	Thumbnail      string `json:"thumbnail"`
}
