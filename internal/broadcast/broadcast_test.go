package broadcast_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/booktrackapp/booktrack/internal/broadcast"
	"github.com/booktrackapp/booktrack/internal/domain"
)

func startTestBroadcaster(t *testing.T) *broadcast.Broadcaster {
	t.Helper()
	b := broadcast.New(nil)
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	go b.Start(ctx)
	return b
}

func waitForSnapshot(t *testing.T, sub *broadcast.Subscription) domain.Snapshot {
	t.Helper()
	select {
	case snapshot := <-sub.Snapshots:
		return snapshot
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for snapshot")
		return domain.Snapshot{}
	}
}

func TestBroadcaster_DeliversToSubscriber(t *testing.T) {
	b := startTestBroadcaster(t)
	sub := b.Subscribe()

	b.Emit(domain.Snapshot{Books: []domain.Book{{ID: "book-1", Title: "Dune"}}})

	snapshot := waitForSnapshot(t, sub)
	require.Len(t, snapshot.Books, 1)
	assert.Equal(t, "Dune", snapshot.Books[0].Title)
}

func TestBroadcaster_MultipleSubscribers(t *testing.T) {
	b := startTestBroadcaster(t)
	first := b.Subscribe()
	second := b.Subscribe()
	assert.Equal(t, 2, b.SubscriberCount())

	b.Emit(domain.Snapshot{Books: []domain.Book{{ID: "book-1", Title: "Dune"}}})

	assert.Equal(t, "Dune", waitForSnapshot(t, first).Books[0].Title)
	assert.Equal(t, "Dune", waitForSnapshot(t, second).Books[0].Title)
}

func TestBroadcaster_UnsubscribeClosesChannel(t *testing.T) {
	b := startTestBroadcaster(t)
	sub := b.Subscribe()

	b.Unsubscribe(sub.ID)

	_, open := <-sub.Snapshots
	assert.False(t, open)
	assert.Equal(t, 0, b.SubscriberCount())
}

func TestBroadcaster_EmitAfterShutdownIsIgnored(t *testing.T) {
	b := broadcast.New(nil)
	sub := b.Subscribe()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, b.Shutdown(ctx))

	b.Emit(domain.Snapshot{}) // must not panic or deliver

	_, open := <-sub.Snapshots
	assert.False(t, open)
}
