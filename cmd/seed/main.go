// Package main provides a tool to seed the database with sample library data.
//
// It runs the real mutation pipeline (add, progress, notes, finish) so goal
// recomputes and achievement evaluation fire exactly as they would for a
// user, which makes the result useful for testing stats and achievements.
//
// Usage:
//
//	BOOKTRACK_DATA_PATH=~/.booktrack go run ./cmd/seed
//	go run ./cmd/seed --data /tmp/booktrack-demo
package main

import (
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/booktrackapp/booktrack/internal/docstore"
	"github.com/booktrackapp/booktrack/internal/domain"
	"github.com/booktrackapp/booktrack/internal/id"
	"github.com/booktrackapp/booktrack/internal/store"
)

var dataPath = flag.String("data", "", "data directory (default: $BOOKTRACK_DATA_PATH or ~/.booktrack)")

type seedBook struct {
	title    string
	author   string
	genre    string
	pages    int
	status   domain.ReadingStatus
	rating   int // 0 = unrated
	favorite bool
	note     string
	page     int // current page for in-progress books
}

var library = []seedBook{
	{title: "The Martian", author: "Andy Weir", genre: "Science Fiction", pages: 369, status: domain.StatusFinished, rating: 9, favorite: true, note: "Potatoes. So many potatoes."},
	{title: "Project Hail Mary", author: "Andy Weir", genre: "Science Fiction", pages: 476, status: domain.StatusFinished, rating: 10, favorite: true},
	{title: "Dune", author: "Frank Herbert", genre: "Science Fiction", pages: 412, status: domain.StatusFinished, rating: 8, note: "The spice must flow."},
	{title: "The Hobbit", author: "J.R.R. Tolkien", genre: "Fantasy", pages: 310, status: domain.StatusFinished, rating: 9},
	{title: "Mistborn", author: "Brandon Sanderson", genre: "Fantasy", pages: 541, status: domain.StatusReading, page: 220, note: "Allomancy chart in the appendix is handy."},
	{title: "Thinking, Fast and Slow", author: "Daniel Kahneman", genre: "Psychology", pages: 499, status: domain.StatusReading, page: 87},
	{title: "The Name of the Wind", author: "Patrick Rothfuss", genre: "Fantasy", pages: 662, status: domain.StatusPlanning},
	{title: "Piranesi", author: "Susanna Clarke", genre: "Fantasy", pages: 245, status: domain.StatusPlanning},
}

func main() {
	flag.Parse()

	path := *dataPath
	if path == "" {
		path = os.Getenv("BOOKTRACK_DATA_PATH")
	}
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			log.Fatalf("Failed to resolve home directory: %v", err)
		}
		path = filepath.Join(home, ".booktrack")
	}

	fmt.Printf("Seeding database at: %s\n", path)

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))

	docs, err := docstore.Open(filepath.Join(path, "db"), logger)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer docs.Close()

	s := store.New(docs, logger, store.NewNoopEmitter())

	now := time.Now()
	finished := 0
	for i, sb := range library {
		book := domain.Book{
			ID:        id.MustGenerate("book"),
			Title:     sb.title,
			Status:    domain.StatusPlanning,
			Notes:     []domain.Note{},
			CreatedAt: now.Add(-time.Duration(len(library)-i) * 24 * time.Hour),
		}
		author, genre, pages := sb.author, sb.genre, sb.pages
		book.Author = &author
		book.Genre = &genre
		book.TotalPages = &pages
		if sb.status != domain.StatusPlanning {
			start := now.Add(-time.Duration(len(library)-i) * 20 * time.Hour)
			book.StartDate = &start
			book.Status = domain.StatusReading
		}

		s.AddBook(book)
		fmt.Printf("  Added: %s\n", book.Title)

		if sb.page > 0 {
			s.SetProgress(book.ID, sb.page)
		}
		if sb.note != "" {
			s.AddNote(book.ID, sb.note)
		}
		if sb.favorite {
			s.ToggleFavorite(book.ID)
		}
		if sb.status == domain.StatusFinished {
			var rating *int
			if sb.rating > 0 {
				r := sb.rating
				rating = &r
			}
			s.FinishBook(book.ID, rating)
			finished++
		}
	}

	// Block until the write queue drains before the process exits.
	s.Flush()

	unlocked := 0
	for _, a := range s.Achievements() {
		if a.IsUnlocked {
			unlocked++
		}
	}

	fmt.Printf("\nDone! Seeded %d books (%d finished), %d achievements unlocked.\n",
		len(library), finished, unlocked)
}
