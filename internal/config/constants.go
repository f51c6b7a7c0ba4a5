package config

const (
	// DefaultDatabasePath is the default path for the main application database
	DefaultDatabasePath = "./reader.db"

	// DefaultCatalogBaseURL is the public Google Books volumes API
	DefaultCatalogBaseURL = "https://www.googleapis.com/books/v1"

	// DefaultFallbackThumbnailURL is shown for volumes without a small
	// thumbnail; a neutral stock book photo.
	DefaultFallbackThumbnailURL = "https://images.unsplash.com/photo-1541963463532-d68292c34b19?ixid=MnwxMjA3fDB8MHxwaG90by1wYWdlfHx8fGVufDB8fHx8&ixlib=rb-1.2.1&auto=format&fit=crop&w=80&q=80"
)
