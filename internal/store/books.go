package store

import (
	"time"

	"github.com/booktrackapp/booktrack/internal/docstore"
	"github.com/booktrackapp/booktrack/internal/domain"
	"github.com/booktrackapp/booktrack/internal/id"
)

// AddBook inserts a book at the head of the collection: most-recent-first
// ordering is significant and preserved everywhere. Runs the full pipeline:
// persist, evaluate achievements, index, publish.
func (s *Store) AddBook(b domain.Book) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.books = append([]domain.Book{b}, s.books...)
	s.saveBooks()
	s.evaluateAchievements()
	s.indexAsync(b)
	s.publish()

	if s.logger != nil {
		s.logger.Info("book added", "book_id", b.ID, "title", b.Title)
	}
}

// UpdateBook replaces the book with a matching ID in place. A missing ID is a
// silent no-op. Goal progress is deliberately NOT recomputed here: a status
// change applied through UpdateBook instead of FinishBook leaves goals stale
// until the next triggering mutation. Known behavior, kept as-is.
func (s *Store) UpdateBook(b domain.Book) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(b.ID)
	if idx < 0 {
		return
	}
	s.books[idx] = b
	s.saveBooks()
	s.evaluateAchievements()
	s.indexAsync(b)
	s.publish()
}

// DeleteBooks removes every book whose ID is in ids, preserving the relative
// order of the rest. Goals are not recomputed immediately: deleting a
// finished book leaves goal progress unchanged until another operation
// triggers a recompute. Known behavior, kept as-is.
func (s *Store) DeleteBooks(ids []string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	drop := make(map[string]bool, len(ids))
	for _, bookID := range ids {
		drop[bookID] = true
	}

	kept := s.books[:0]
	var removed []string
	for _, b := range s.books {
		if drop[b.ID] {
			removed = append(removed, b.ID)
			continue
		}
		kept = append(kept, b)
	}
	if len(removed) == 0 {
		return
	}
	s.books = kept

	s.saveBooks()
	s.evaluateAchievements()
	for _, bookID := range removed {
		s.deindexAsync(bookID)
	}
	s.publish()

	if s.logger != nil {
		s.logger.Info("books deleted", "count", len(removed))
	}
}

// ToggleFavorite flips a book's favorite flag. Missing ID is a silent no-op.
func (s *Store) ToggleFavorite(bookID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(bookID)
	if idx < 0 {
		return
	}
	s.books[idx].IsFavorite = !s.books[idx].IsFavorite

	s.saveBooks()
	s.evaluateAchievements()
	s.publish()
}

// AddNote prepends a note to a book, newest first. Missing book ID is a
// silent no-op.
func (s *Store) AddNote(bookID, text string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(bookID)
	if idx < 0 {
		return
	}
	note := domain.Note{
		ID:        id.MustGenerate("note"),
		Text:      text,
		CreatedAt: time.Now(),
	}
	s.books[idx].Notes = append([]domain.Note{note}, s.books[idx].Notes...)

	s.saveBooks()
	s.evaluateAchievements()
	s.indexAsync(s.books[idx])
	s.publish()
}

// SetProgress records the current page. No upper-bound validation against
// total pages happens at this layer, and achievements are NOT re-evaluated;
// only the books document is persisted. Missing ID is a silent no-op.
func (s *Store) SetProgress(bookID string, page int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(bookID)
	if idx < 0 {
		return
	}
	s.books[idx].CurrentPage = &page

	s.saveBooks()
	s.publish()
}

// FinishBook marks a book finished with an optional rating, stamps the end
// date, recomputes every goal's progress from the new global finished count,
// and re-evaluates achievements. Missing ID is a silent no-op.
func (s *Store) FinishBook(bookID string, rating *int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(bookID)
	if idx < 0 {
		return
	}
	now := time.Now()
	s.books[idx].Status = domain.StatusFinished
	s.books[idx].EndDate = &now
	s.books[idx].Rating = rating

	s.saveBooks()
	s.recomputeGoals()
	s.evaluateAchievements()
	s.indexAsync(s.books[idx])
	s.publish()

	if s.logger != nil {
		s.logger.Info("book finished", "book_id", bookID, "rated", rating != nil)
	}
}

// Books returns a copy of the collection in its current order.
func (s *Store) Books() []domain.Book {
	s.mu.Lock()
	defer s.mu.Unlock()

	books := make([]domain.Book, len(s.books))
	for i := range s.books {
		books[i] = s.books[i].Clone()
	}
	return books
}

// GetBook returns a copy of one book by ID.
func (s *Store) GetBook(bookID string) (domain.Book, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(bookID)
	if idx < 0 {
		return domain.Book{}, false
	}
	return s.books[idx].Clone(), true
}

// indexOf returns the position of a book by ID, or -1. Callers hold the lock.
func (s *Store) indexOf(bookID string) int {
	for i := range s.books {
		if s.books[i].ID == bookID {
			return i
		}
	}
	return -1
}

func (s *Store) saveBooks() {
	s.docs.Save(docstore.KeyBooks, s.books)
}

// indexAsync updates the search index in the background with a clone, so
// indexing latency never reaches the mutation path and the index never
// aliases live state.
func (s *Store) indexAsync(b domain.Book) {
	clone := b.Clone()
	indexer := s.searchIndexer
	go func() {
		if err := indexer.IndexBook(&clone); err != nil && s.logger != nil {
			s.logger.Warn("search index update failed", "book_id", clone.ID, "error", err)
		}
	}()
}

func (s *Store) deindexAsync(bookID string) {
	indexer := s.searchIndexer
	go func() {
		if err := indexer.DeleteBook(bookID); err != nil && s.logger != nil {
			s.logger.Warn("search index delete failed", "book_id", bookID, "error", err)
		}
	}()
}
