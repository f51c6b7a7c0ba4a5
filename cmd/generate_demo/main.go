// Command generate_demo creates a demo database with sample books from
// the public domain, spread across all three shelves.
// Usage: go run cmd/generate_demo/main.go [-db path/to/demo.db]
package main

import (
	"flag"
	"log"
	"os"
	"time"

	"github.com/mrlokans/reader/internal/auth"
	"github.com/mrlokans/reader/internal/database"
	"github.com/mrlokans/reader/internal/database/books"
	"github.com/mrlokans/reader/internal/entities"
)

const defaultDemoDatabasePath = "./demo.db"

func main() {
	dbPath := flag.String("db", defaultDemoDatabasePath, "path to the demo database file")
	flag.Parse()

	log.Printf("Generating demo database at %s...", *dbPath)

	// Start fresh each run.
	if err := os.Remove(*dbPath); err != nil && !os.IsNotExist(err) {
		log.Fatalf("Failed to remove existing demo database: %v", err)
	}

	db, err := database.NewDatabase(*dbPath)
	if err != nil {
		log.Fatalf("Failed to create database: %v", err)
	}
	defer db.Close()

	repo := books.NewRepository(db.DB)

	for _, book := range demoBooks() {
		result, err := repo.Save(&book, auth.DefaultUserID)
		if err != nil {
			log.Printf("Failed to save %s: %v", book.Title, err)
			continue
		}
		log.Printf("Saved: %s by %s (%s)", book.Title, book.Authors, result.ID)
	}

	log.Println("Demo database generated successfully!")
}

func demoBooks() []entities.Book {
	started := time.Now().AddDate(0, -1, 0)
	finished := time.Now().AddDate(0, 0, -7)
	startedEarlier := time.Now().AddDate(0, -3, 0)

	return []entities.Book{
		{
			GoogleBookID:  "demo-meditations",
			Title:         "Meditations",
			Authors:       "Marcus Aurelius",
			Categories:    "Philosophy",
			PublishedDate: "180",
			PageCount:     "254",

			StartedReading:  &startedEarlier,
			FinishedReading: &finished,
			Rating:          5,
			Notes:           "Re-read every few years.",
		},
		{
			GoogleBookID:  "demo-walden",
			Title:         "Walden",
			Authors:       "Henry David Thoreau",
			Categories:    "Philosophy",
			PublishedDate: "1854",
			PageCount:     "352",

			StartedReading: &started,
		},
		{
			GoogleBookID:  "demo-frankenstein",
			Title:         "Frankenstein",
			Authors:       "Mary Shelley",
			Categories:    "Fiction",
			PublishedDate: "1818",
			PageCount:     "280",
		},
		{
			GoogleBookID:  "demo-origin",
			Title:         "On the Origin of Species",
			Authors:       "Charles Darwin",
			Categories:    "Science",
			PublishedDate: "1859",
			PageCount:     "502",
		},
	}
}
