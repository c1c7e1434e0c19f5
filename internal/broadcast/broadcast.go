// Package broadcast delivers store snapshots to observers. The store emits a
// full snapshot after every mutation; subscribers receive them on buffered
// channels and are never allowed to block the mutation path.
package broadcast

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/booktrackapp/booktrack/internal/domain"
	"github.com/booktrackapp/booktrack/internal/id"
)

// Subscription is one observer's view of the snapshot stream.
type Subscription struct {
	ID          string
	ConnectedAt time.Time
	Snapshots   chan domain.Snapshot
}

// Broadcaster fans emitted snapshots out to all current subscribers.
type Broadcaster struct {
	logger *slog.Logger

	mu          sync.RWMutex
	subscribers map[string]*Subscription

	events chan domain.Snapshot
	wg     sync.WaitGroup

	shutdownMu sync.RWMutex
	shutdown   bool
}

// New creates a Broadcaster. Call Start in a goroutine before emitting.
func New(logger *slog.Logger) *Broadcaster {
	return &Broadcaster{
		logger:      logger,
		subscribers: make(map[string]*Subscription),
		events:      make(chan domain.Snapshot, 64),
	}
}

// Start runs the delivery loop until ctx is cancelled.
func (b *Broadcaster) Start(ctx context.Context) {
	b.wg.Add(1)
	defer b.wg.Done()

	for {
		select {
		case snapshot := <-b.events:
			b.deliver(snapshot)
		case <-ctx.Done():
			b.closeAll()
			return
		}
	}
}

// Emit queues a snapshot for delivery. It never blocks the caller: if the
// event buffer is full the snapshot is dropped, since a newer one is always
// on the way after the next mutation.
func (b *Broadcaster) Emit(snapshot domain.Snapshot) {
	b.shutdownMu.RLock()
	defer b.shutdownMu.RUnlock()
	if b.shutdown {
		return
	}

	select {
	case b.events <- snapshot:
	default:
		if b.logger != nil {
			b.logger.Warn("snapshot buffer full, dropping event")
		}
	}
}

// Subscribe registers a new observer. The returned subscription's channel
// buffers a few snapshots; a subscriber that falls behind loses intermediate
// states, never the stream itself.
func (b *Broadcaster) Subscribe() *Subscription {
	sub := &Subscription{
		ID:          id.MustGenerate("sub"),
		ConnectedAt: time.Now(),
		Snapshots:   make(chan domain.Snapshot, 8),
	}

	b.mu.Lock()
	b.subscribers[sub.ID] = sub
	b.mu.Unlock()

	if b.logger != nil {
		b.logger.Debug("observer subscribed", "subscription_id", sub.ID)
	}
	return sub
}

// Unsubscribe removes an observer and closes its channel.
func (b *Broadcaster) Unsubscribe(subID string) {
	b.mu.Lock()
	sub, ok := b.subscribers[subID]
	if ok {
		delete(b.subscribers, subID)
	}
	b.mu.Unlock()

	if ok {
		close(sub.Snapshots)
	}
}

// SubscriberCount returns the number of registered observers.
func (b *Broadcaster) SubscriberCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subscribers)
}

// Shutdown stops accepting events, drains the queue, and closes all
// subscriber channels.
func (b *Broadcaster) Shutdown(ctx context.Context) error {
	b.shutdownMu.Lock()
	b.shutdown = true
	b.shutdownMu.Unlock()

	// Drain whatever is already queued.
	for {
		select {
		case snapshot := <-b.events:
			b.deliver(snapshot)
		case <-ctx.Done():
			b.closeAll()
			return ctx.Err()
		default:
			b.closeAll()
			return nil
		}
	}
}

// deliver sends a snapshot to every subscriber, dropping it for any whose
// buffer is full.
func (b *Broadcaster) deliver(snapshot domain.Snapshot) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	for _, sub := range b.subscribers {
		select {
		case sub.Snapshots <- snapshot:
		default:
			if b.logger != nil {
				b.logger.Debug("subscriber behind, snapshot dropped", "subscription_id", sub.ID)
			}
		}
	}
}

func (b *Broadcaster) closeAll() {
	b.mu.Lock()
	defer b.mu.Unlock()

	for id, sub := range b.subscribers {
		close(sub.Snapshots)
		delete(b.subscribers, id)
	}
}
