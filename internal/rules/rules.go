// Package rules evaluates achievement unlock predicates over a snapshot of
// the collections. Evaluation is stateless: it reads the books and goals it
// is given and returns an updated achievement list, never touching storage.
package rules

import (
	"time"

	"github.com/booktrackapp/booktrack/internal/domain"
)

// predicate decides whether one achievement's condition holds against the
// current snapshot. Predicates are bound to catalog positions and are only
// consulted while the achievement is still locked; unlocks are monotonic.
type predicate func(books []domain.Book, goals []domain.Goal) bool

// catalogPredicates is ordered to match domain.Catalog. Every predicate is
// checked independently in one pass, so several achievements can unlock from
// a single mutation.
var catalogPredicates = []predicate{
	// First Chapter: any book exists.
	func(books []domain.Book, _ []domain.Goal) bool {
		return len(books) > 0
	},
	// Bookmark: any book finished.
	func(books []domain.Book, _ []domain.Goal) bool {
		return countFinished(books) > 0
	},
	// Small Shelf: 5 finished.
	func(books []domain.Book, _ []domain.Goal) bool {
		return countFinished(books) >= 5
	},
	// Big Library: 20 finished.
	func(books []domain.Book, _ []domain.Goal) bool {
		return countFinished(books) >= 20
	},
	// Book Critic: 10 finished books carrying a rating.
	func(books []domain.Book, _ []domain.Goal) bool {
		n := 0
		for i := range books {
			if books[i].Status == domain.StatusFinished && books[i].Rating != nil {
				n++
			}
		}
		return n >= 10
	},
	// My Notes: 5 books with at least one note.
	func(books []domain.Book, _ []domain.Goal) bool {
		n := 0
		for i := range books {
			if len(books[i].Notes) > 0 {
				n++
			}
		}
		return n >= 5
	},
	// Time Reader: 10 books with both start and end dates.
	func(books []domain.Book, _ []domain.Goal) bool {
		n := 0
		for i := range books {
			if books[i].HasDates() {
				n++
			}
		}
		return n >= 10
	},
	// Favorite Story: any favorite.
	func(books []domain.Book, _ []domain.Goal) bool {
		for i := range books {
			if books[i].IsFavorite {
				return true
			}
		}
		return false
	},
	// On Track: any goal reached its target.
	func(_ []domain.Book, goals []domain.Goal) bool {
		for i := range goals {
			if goals[i].CompletedBooks >= goals[i].TargetBooks {
				return true
			}
		}
		return false
	},
	// True Bookworm: 50 finished.
	func(books []domain.Book, _ []domain.Goal) bool {
		return countFinished(books) >= 50
	},
}

// Evaluate checks every still-locked achievement against the snapshot and
// returns the full updated list plus whether anything changed. Callers should
// persist the result only when changed is true, to avoid redundant writes.
// The input slice is not modified.
func Evaluate(books []domain.Book, goals []domain.Goal, achievements []domain.Achievement, now time.Time) ([]domain.Achievement, bool) {
	updated := make([]domain.Achievement, len(achievements))
	copy(updated, achievements)

	changed := false
	for i := range updated {
		if i >= len(catalogPredicates) {
			break
		}
		if updated[i].IsUnlocked {
			continue
		}
		if catalogPredicates[i](books, goals) {
			updated[i].IsUnlocked = true
			unlockedAt := now
			updated[i].UnlockedAt = &unlockedAt
			changed = true
		}
	}
	return updated, changed
}

func countFinished(books []domain.Book) int {
	n := 0
	for i := range books {
		if books[i].Status == domain.StatusFinished {
			n++
		}
	}
	return n
}
