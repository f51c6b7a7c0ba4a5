package catalog

import "strings"

// UnknownField is rendered in place of any absent descriptive field so
// rows always display something consistent.
const UnknownField = "Unknown"

// SearchRow is the display projection of one catalog volume. Rows are
// ephemeral and never persisted; saving a book goes through the books
// repository instead.
type SearchRow struct {
	ExternalID    string `json:"external_id"`
	Title         string `json:"title"`
	Authors       string `json:"authors"`
	PublishedDate string `json:"published_date"`
	Categories    string `json:"categories"`
	ThumbnailURL  string `json:"thumbnail_url"`
}

// NewSearchRow maps a raw volume into a display row. An empty
// smallThumbnail is replaced by fallbackThumbnailURL, which comes from
// configuration rather than being fixed here.
func NewSearchRow(v Volume, fallbackThumbnailURL string) SearchRow {
	thumbnail := v.VolumeInfo.ImageLinks.SmallThumbnail
	if thumbnail == "" {
		thumbnail = fallbackThumbnailURL
	}

	return SearchRow{
		ExternalID:    v.ID,
		Title:         orUnknown(v.VolumeInfo.Title),
		Authors:       orUnknown(strings.Join(v.VolumeInfo.Authors, ", ")),
		PublishedDate: orUnknown(v.VolumeInfo.PublishedDate),
		Categories:    orUnknown(strings.Join(v.VolumeInfo.Categories, ", ")),
		ThumbnailURL:  thumbnail,
	}
}

// NewSearchRows maps a whole result set, preserving order.
func NewSearchRows(volumes []Volume, fallbackThumbnailURL string) []SearchRow {
	rows := make([]SearchRow, 0, len(volumes))
	for _, v := range volumes {
		rows = append(rows, NewSearchRow(v, fallbackThumbnailURL))
	}
	return rows
}

func orUnknown(s string) string {
	if s == "" {
		return UnknownField
	}
	return s
}
