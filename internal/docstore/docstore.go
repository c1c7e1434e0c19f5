// Package docstore is the persistence gateway: typed JSON documents in a
// Badger database, one independently persisted document per collection.
// Writes are queued and applied by a single background worker, so mutation
// callers never block on disk I/O and the last save for a key always wins.
package docstore

import (
	"encoding/json/v2"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/dgraph-io/badger/v4"
)

// Document keys. Each key holds one serialized collection; there are no
// cross-document transactions, and each document is independently recoverable.
const (
	KeyBooks        = "doc:books"
	KeyGoals        = "doc:goals"
	KeyAchievements = "doc:achievements"
	KeySettings     = "doc:settings"
)

// ErrAbsent is returned by Load when the document does not exist yet.
// Callers fall back to their documented default.
var ErrAbsent = errors.New("document absent")

// saveJob carries one already-serialized document to the write worker.
// Serializing at enqueue time means every save captures the then-current
// value; a slow write delays durability, never correctness.
type saveJob struct {
	key  string
	data []byte
}

// DocStore wraps a Badger database with a fire-and-forget write queue.
type DocStore struct {
	db     *badger.DB
	logger *slog.Logger

	jobs    chan saveJob
	pending sync.WaitGroup // open save jobs, for Flush
	done    chan struct{}  // closed when the worker exits

	closeOnce sync.Once
	closeErr  error
}

// Open opens or creates the database at path and starts the write worker.
func Open(path string, logger *slog.Logger) (*DocStore, error) {
	opts := badger.DefaultOptions(path)
	opts.Logger = nil            // Disable Badger's internal logging
	opts.SyncWrites = true       // Ensure writes are synced to disk to prevent corruption on crashes
	opts.CompactL0OnClose = true // Compact L0 tables on close for faster startup

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger db: %w", err)
	}

	ds := &DocStore{
		db:     db,
		logger: logger,
		jobs:   make(chan saveJob, 64),
		done:   make(chan struct{}),
	}
	go ds.writeLoop()

	if logger != nil {
		logger.Info("document store opened", "path", path)
	}
	return ds, nil
}

// Load reads the document at key into dest. A missing document returns
// ErrAbsent; a corrupt one returns the parse error. Both are handled the same
// way by callers (fall back to the default), so neither blocks the other
// documents from loading.
func (s *DocStore) Load(key string, dest any) error {
	return s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return ErrAbsent
		}
		if err != nil {
			return fmt.Errorf("get %s: %w", key, err)
		}

		return item.Value(func(val []byte) error {
			if err := json.Unmarshal(val, dest); err != nil {
				return fmt.Errorf("unmarshal %s: %w", key, err)
			}
			return nil
		})
	})
}

// Save serializes value now and queues the write. It never reports failure to
// the caller: a marshal error is logged and dropped, a write error is logged
// by the worker. In-memory state is simply ahead of disk until the next
// successful save. Save blocks only if the queue is full.
func (s *DocStore) Save(key string, value any) {
	data, err := json.Marshal(value)
	if err != nil {
		if s.logger != nil {
			s.logger.Error("marshal document failed, save dropped", "key", key, "error", err)
		}
		return
	}

	s.pending.Add(1)
	s.jobs <- saveJob{key: key, data: data}
}

// Flush blocks until every queued save has been applied. Mutation callers
// never call this; it exists for shutdown and for tests that assert
// durability.
func (s *DocStore) Flush() {
	s.pending.Wait()
}

// Close drains the queue and closes the database.
func (s *DocStore) Close() error {
	s.closeOnce.Do(func() {
		s.pending.Wait()
		close(s.jobs)
		<-s.done
		s.closeErr = s.db.Close()
	})
	return s.closeErr
}

// writeLoop applies queued saves in order. A single worker keeps writes for
// the same key serialized, so the last save to be queued is the one that
// survives.
func (s *DocStore) writeLoop() {
	defer close(s.done)
	for job := range s.jobs {
		err := s.db.Update(func(txn *badger.Txn) error {
			return txn.Set([]byte(job.key), job.data)
		})
		if err != nil && s.logger != nil {
			s.logger.Error("document save failed", "key", job.key, "error", err)
		}
		s.pending.Done()
	}
}
