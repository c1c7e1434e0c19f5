// Package main provides a read-only inspection tool for the BookTrack database.
//
// Usage:
//
//	BOOKTRACK_DATA_PATH=~/.booktrack go run ./cmd/dbinspect
package main

import (
	"encoding/json/v2"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/dgraph-io/badger/v4"

	"github.com/booktrackapp/booktrack/internal/docstore"
	"github.com/booktrackapp/booktrack/internal/domain"
)

func main() {
	dataPath := os.Getenv("BOOKTRACK_DATA_PATH")
	if dataPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			log.Fatalf("Failed to resolve home directory: %v", err)
		}
		dataPath = filepath.Join(home, ".booktrack")
	}

	opts := badger.DefaultOptions(filepath.Join(dataPath, "db")).
		WithReadOnly(true).
		WithLogger(nil)

	db, err := badger.Open(opts)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()

	fmt.Println("=== Database Inspection ===")
	fmt.Println()

	err = db.View(func(txn *badger.Txn) error {
		inspect(txn, docstore.KeyBooks, func(val []byte) (string, error) {
			var books []domain.Book
			if err := json.Unmarshal(val, &books); err != nil {
				return "", err
			}
			finished := 0
			notes := 0
			for _, b := range books {
				if b.Status == domain.StatusFinished {
					finished++
				}
				notes += len(b.Notes)
			}
			return fmt.Sprintf("%d books (%d finished, %d notes)", len(books), finished, notes), nil
		})

		inspect(txn, docstore.KeyGoals, func(val []byte) (string, error) {
			var goals []domain.Goal
			if err := json.Unmarshal(val, &goals); err != nil {
				return "", err
			}
			out := fmt.Sprintf("%d goals:", len(goals))
			for _, g := range goals {
				out += fmt.Sprintf(" %s=%d/%d", g.Period, g.CompletedBooks, g.TargetBooks)
			}
			return out, nil
		})

		inspect(txn, docstore.KeyAchievements, func(val []byte) (string, error) {
			var achievements []domain.Achievement
			if err := json.Unmarshal(val, &achievements); err != nil {
				return "", err
			}
			unlocked := 0
			for _, a := range achievements {
				if a.IsUnlocked {
					unlocked++
				}
			}
			return fmt.Sprintf("%d/%d unlocked", unlocked, len(achievements)), nil
		})

		inspect(txn, docstore.KeySettings, func(val []byte) (string, error) {
			var settings domain.UserSettings
			if err := json.Unmarshal(val, &settings); err != nil {
				return "", err
			}
			return fmt.Sprintf("%s / %s / %s / %s", settings.Profile.DisplayName,
				settings.Language, settings.Theme, settings.TextSize), nil
		})

		return nil
	})
	if err != nil {
		log.Fatalf("Inspection failed: %v", err)
	}
}

// inspect prints a one-line summary for a document key, or its absence.
func inspect(txn *badger.Txn, key string, summarize func([]byte) (string, error)) {
	item, err := txn.Get([]byte(key))
	if err != nil {
		fmt.Printf("%-20s <absent>\n", key)
		return
	}

	err = item.Value(func(val []byte) error {
		summary, err := summarize(val)
		if err != nil {
			fmt.Printf("%-20s <unreadable: %v> (%d bytes)\n", key, err, len(val))
			return nil
		}
		fmt.Printf("%-20s %s (%d bytes)\n", key, summary, len(val))
		return nil
	})
	if err != nil {
		fmt.Printf("%-20s <error: %v>\n", key, err)
	}
}
