// Package domain contains the core business entities and domain logic for the BookTrack reading tracker.
package domain

import "time"

// ReadingStatus describes where a book sits in the reading lifecycle.
type ReadingStatus string

// Reading statuses.
const (
	StatusPlanning ReadingStatus = "planning"
	StatusReading  ReadingStatus = "reading"
	StatusFinished ReadingStatus = "finished"
)

// Valid returns true if the status is a recognized value.
func (s ReadingStatus) Valid() bool {
	switch s {
	case StatusPlanning, StatusReading, StatusFinished:
		return true
	default:
		return false
	}
}

// Note is a free-text annotation owned by its parent book.
// Notes are created and destroyed with the book, newest first.
type Note struct {
	ID        string    `json:"id"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
}

// Book is a single tracked title in the library.
// Optional fields are pointers so absence serializes as absence, not as a sentinel.
type Book struct {
	ID          string        `json:"id"`
	Title       string        `json:"title"`
	Author      *string       `json:"author,omitempty"`
	TotalPages  *int          `json:"total_pages,omitempty"`
	Genre       *string       `json:"genre,omitempty"`
	Status      ReadingStatus `json:"status"`
	StartDate   *time.Time    `json:"start_date,omitempty"`
	EndDate     *time.Time    `json:"end_date,omitempty"`
	CurrentPage *int          `json:"current_page,omitempty"`
	Rating      *int          `json:"rating,omitempty"` // 1..10
	IsFavorite  bool          `json:"is_favorite"`
	Notes       []Note        `json:"notes"`
	CreatedAt   time.Time     `json:"created_at"`
}

// ProgressPercent reports how far through the book the reader is, 0-100.
// It is 0 whenever total pages or current page is absent, or total pages is non-positive.
func (b *Book) ProgressPercent() int {
	if b.TotalPages == nil || *b.TotalPages <= 0 || b.CurrentPage == nil {
		return 0
	}
	pct := int(float64(*b.CurrentPage) / float64(*b.TotalPages) * 100.0)
	return max(0, min(100, pct))
}

// HasDates reports whether both the start and end date are recorded.
func (b *Book) HasDates() bool {
	return b.StartDate != nil && b.EndDate != nil
}

// Clone returns a deep copy of the book, including its notes.
// The store hands out clones so callers can never alias its internal state.
func (b *Book) Clone() Book {
	c := *b
	c.Author = clonePtr(b.Author)
	c.TotalPages = clonePtr(b.TotalPages)
	c.Genre = clonePtr(b.Genre)
	c.StartDate = clonePtr(b.StartDate)
	c.EndDate = clonePtr(b.EndDate)
	c.CurrentPage = clonePtr(b.CurrentPage)
	c.Rating = clonePtr(b.Rating)
	if b.Notes != nil {
		c.Notes = make([]Note, len(b.Notes))
		copy(c.Notes, b.Notes)
	}
	return c
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
