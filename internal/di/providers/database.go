package providers

import (
	"context"
	"path/filepath"

	"github.com/samber/do/v2"

	"github.com/booktrackapp/booktrack/internal/broadcast"
	"github.com/booktrackapp/booktrack/internal/config"
	"github.com/booktrackapp/booktrack/internal/docstore"
	"github.com/booktrackapp/booktrack/internal/logger"
	"github.com/booktrackapp/booktrack/internal/store"
)

// BroadcasterHandle wraps the snapshot broadcaster with its context for
// lifecycle management.
type BroadcasterHandle struct {
	*broadcast.Broadcaster
	cancel context.CancelFunc
}

// Shutdown implements do.Shutdownable.
func (h *BroadcasterHandle) Shutdown() error {
	h.cancel()
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return h.Broadcaster.Shutdown(ctx)
}

// ProvideBroadcaster provides the snapshot broadcaster.
func ProvideBroadcaster(i do.Injector) (*BroadcasterHandle, error) {
	log := do.MustInvoke[*logger.Logger](i)

	b := broadcast.New(log.Logger)

	ctx, cancel := context.WithCancel(context.Background())
	go b.Start(ctx)

	return &BroadcasterHandle{
		Broadcaster: b,
		cancel:      cancel,
	}, nil
}

// DocStoreHandle wraps the persistence gateway with shutdown capability.
type DocStoreHandle struct {
	*docstore.DocStore
}

// Shutdown implements do.Shutdownable.
func (h *DocStoreHandle) Shutdown() error {
	return h.Close()
}

// ProvideDocStore provides the durable document store.
func ProvideDocStore(i do.Injector) (*DocStoreHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	dbPath := filepath.Join(cfg.Data.Path, "db")
	docs, err := docstore.Open(dbPath, log.Logger)
	if err != nil {
		return nil, err
	}

	log.Debug("Database initialized", "path", dbPath)

	return &DocStoreHandle{DocStore: docs}, nil
}

// StoreHandle wraps the store so pending writes are flushed on shutdown.
type StoreHandle struct {
	*store.Store
}

// Shutdown implements do.Shutdownable.
func (h *StoreHandle) Shutdown() error {
	h.Flush()
	return nil
}

// ProvideStore provides the in-memory store backed by the document gateway.
func ProvideStore(i do.Injector) (*StoreHandle, error) {
	log := do.MustInvoke[*logger.Logger](i)
	docsHandle := do.MustInvoke[*DocStoreHandle](i)
	broadcasterHandle := do.MustInvoke[*BroadcasterHandle](i)

	s := store.New(docsHandle.DocStore, log.Logger, broadcasterHandle.Broadcaster)

	return &StoreHandle{Store: s}, nil
}
