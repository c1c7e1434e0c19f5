// Package store holds the authoritative in-memory state of the library and
// exposes every mutation operation. Each mutation applies synchronously in
// memory, then triggers best-effort side effects in a fixed order: persist
// the affected documents, recompute derived goal progress when relevant,
// re-evaluate achievements, and publish a snapshot to observers.
package store

import (
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/booktrackapp/booktrack/internal/docstore"
	"github.com/booktrackapp/booktrack/internal/domain"
	"github.com/booktrackapp/booktrack/internal/id"
	"github.com/booktrackapp/booktrack/internal/rules"
)

// EventEmitter receives the full state snapshot after every mutation.
// The store publishes through this interface so it never depends on how
// observers consume the stream.
type EventEmitter interface {
	Emit(snapshot domain.Snapshot)
}

// NoopEmitter is a no-op implementation of EventEmitter for testing.
type NoopEmitter struct{}

// Emit implements EventEmitter.Emit as a no-op.
func (NoopEmitter) Emit(domain.Snapshot) {}

// NewNoopEmitter creates a new no-op emitter for testing.
func NewNoopEmitter() EventEmitter {
	return NoopEmitter{}
}

// SearchIndexer keeps the search index in sync with the book collection.
// Updates run asynchronously so indexing never blocks a mutation.
type SearchIndexer interface {
	IndexBook(b *domain.Book) error
	DeleteBook(bookID string) error
}

// NoopSearchIndexer is a no-op implementation for testing.
type NoopSearchIndexer struct{}

// IndexBook is a no-op.
func (NoopSearchIndexer) IndexBook(*domain.Book) error { return nil }

// DeleteBook is a no-op.
func (NoopSearchIndexer) DeleteBook(string) error { return nil }

// Store is the single source of truth for books, goals, achievements, and
// settings. All mutation entry points are serialized by the store's mutex:
// the design assumes one logical writer (a single interactive session), and
// the lock is what that contract becomes on a multi-threaded host.
type Store struct {
	docs   *docstore.DocStore
	logger *slog.Logger

	eventEmitter EventEmitter

	// Search indexer, set via SetSearchIndexer after store creation so the
	// index can be rebuilt from loaded state first.
	searchIndexer SearchIndexer

	mu sync.Mutex

	books        []domain.Book
	goals        []domain.Goal
	achievements []domain.Achievement
	settings     domain.UserSettings
}

// New creates a Store, loading every document from the gateway. A document
// that is absent or fails to parse falls back to its default independently
// of the others; the failure is logged, never surfaced. After loading, goal
// progress is recomputed and achievements are evaluated, matching what a
// fresh session is expected to observe.
func New(docs *docstore.DocStore, logger *slog.Logger, emitter EventEmitter) *Store {
	s := &Store{
		docs:          docs,
		logger:        logger,
		eventEmitter:  emitter,
		searchIndexer: NoopSearchIndexer{},
	}

	now := time.Now()
	s.books = loadOrDefault(docs, logger, docstore.KeyBooks, []domain.Book{})
	s.goals = loadOrDefault(docs, logger, docstore.KeyGoals, domain.DefaultGoals(func() string {
		return id.MustGenerate("goal")
	}, now))
	s.achievements = loadOrDefault(docs, logger, docstore.KeyAchievements, domain.Catalog())
	s.settings = loadOrDefault(docs, logger, docstore.KeySettings, domain.DefaultSettings(now))

	s.recomputeGoals()
	s.evaluateAchievements()
	s.publish()
	return s
}

// SetSearchIndexer wires the search index into the mutation pipeline.
// Set after store creation so startup can rebuild the index from the
// already-loaded collection.
func (s *Store) SetSearchIndexer(indexer SearchIndexer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.searchIndexer = indexer
}

// loadOrDefault reads one document, falling back to def when the document is
// absent or corrupt. Both cases are handled identically; corruption is logged.
func loadOrDefault[T any](docs *docstore.DocStore, logger *slog.Logger, key string, def T) T {
	var value T
	err := docs.Load(key, &value)
	if err == nil {
		return value
	}
	if logger != nil && !errors.Is(err, docstore.ErrAbsent) {
		logger.Warn("document unreadable, falling back to default", "key", key, "error", err)
	}
	return def
}

// recomputeGoals overwrites every goal's CompletedBooks with the global count
// of finished books, regardless of period, and persists the goals document.
// Period-windowed counting is intentionally not implemented.
func (s *Store) recomputeGoals() {
	finished := 0
	for i := range s.books {
		if s.books[i].Status == domain.StatusFinished {
			finished++
		}
	}
	for i := range s.goals {
		s.goals[i].CompletedBooks = finished
	}
	s.docs.Save(docstore.KeyGoals, s.goals)
}

// evaluateAchievements runs the rule engine over the current snapshot and
// persists the achievements document only when something actually unlocked.
func (s *Store) evaluateAchievements() {
	updated, changed := rules.Evaluate(s.books, s.goals, s.achievements, time.Now())
	if !changed {
		return
	}
	s.achievements = updated
	s.docs.Save(docstore.KeyAchievements, s.achievements)
	if s.logger != nil {
		s.logger.Info("achievements unlocked", "unlocked", countUnlocked(updated))
	}
}

// publish emits a fresh snapshot to observers. Slices are copied so a
// subscriber can never alias live state.
func (s *Store) publish() {
	s.eventEmitter.Emit(s.snapshotLocked())
}

func (s *Store) snapshotLocked() domain.Snapshot {
	snapshot := domain.Snapshot{
		Books:        make([]domain.Book, len(s.books)),
		Goals:        make([]domain.Goal, len(s.goals)),
		Achievements: make([]domain.Achievement, len(s.achievements)),
		Settings:     s.settings,
	}
	for i := range s.books {
		snapshot.Books[i] = s.books[i].Clone()
	}
	copy(snapshot.Goals, s.goals)
	copy(snapshot.Achievements, s.achievements)
	return snapshot
}

// Snapshot returns the current state of all collections.
func (s *Store) Snapshot() domain.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// Flush blocks until all queued document writes are durable. Shutdown and
// tests use this; mutations never wait for it.
func (s *Store) Flush() {
	s.docs.Flush()
}

func countUnlocked(achievements []domain.Achievement) int {
	n := 0
	for _, a := range achievements {
		if a.IsUnlocked {
			n++
		}
	}
	return n
}
