package domain

import "time"

// Achievement is a global singleton unlock, addressed by its stable catalog ID.
// Unlocks are monotonic: once IsUnlocked is true it is never reset, and
// UnlockedAt is set exactly once.
type Achievement struct {
	ID          int        `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	IsUnlocked  bool       `json:"is_unlocked"`
	UnlockedAt  *time.Time `json:"unlocked_at,omitempty"`
}

// Catalog returns the fixed ordered achievement list seeded on first run,
// all locked. The slice is freshly allocated so callers may mutate it.
func Catalog() []Achievement {
	return []Achievement{
		{ID: 1, Title: "First Chapter", Description: "Add your first book."},
		{ID: 2, Title: "Bookmark", Description: "Finish your first book."},
		{ID: 3, Title: "Small Shelf", Description: "Read 5 books."},
		{ID: 4, Title: "Big Library", Description: "Read 20 books."},
		{ID: 5, Title: "Book Critic", Description: "Rate 10 books."},
		{ID: 6, Title: "My Notes", Description: "Add 5 reviews or notes."},
		{ID: 7, Title: "Time Reader", Description: "Set start and end dates for 10 books."},
		{ID: 8, Title: "Favorite Story", Description: "Add a book to favorites."},
		{ID: 9, Title: "On Track", Description: "Complete one personal goal."},
		{ID: 10, Title: "True Bookworm", Description: "Read 50 books."},
	}
}
