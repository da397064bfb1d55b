package events

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

func TestWorker_DeliversQueuedEvents(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sink := NewMemorySink()
	pub := NewPublisher(16, discardLogger())
	worker := NewWorker(sink, pub.Inbox(), discardLogger())

	go func() { _ = worker.Run(ctx) }()

	pub.Emit(ctx, NewEvent(EventConsentGranted, "alice"))
	pub.Emit(ctx, NewEvent(EventConsentRevoked, "alice"))

	require.Eventually(t, func() bool {
		return len(sink.Events()) == 2
	}, time.Second, 10*time.Millisecond)

	delivered := sink.Events()
	assert.Equal(t, EventConsentGranted, delivered[0].Name)
	assert.Equal(t, EventConsentRevoked, delivered[1].Name)
	assert.NotEmpty(t, delivered[0].ID)
}

func TestPublisher_DropsWhenBufferFull(t *testing.T) {
	pub := NewPublisher(1, discardLogger())

	// No worker draining: second emit must not block.
	pub.Emit(context.Background(), NewEvent(EventPatientRegistered, "alice"))
	done := make(chan struct{})
	go func() {
		pub.Emit(context.Background(), NewEvent(EventPatientRegistered, "bob"))
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Emit blocked on full buffer")
	}
	assert.Len(t, pub.Inbox(), 1)
}
