package events

import (
	"context"
	"log/slog"
)

// Worker consumes queued events and delivers them to the configured sink.
// Delivery failures are logged and skipped; the ledger's state machine never
// waits on the observability channel.
type Worker struct {
	sink   Sink
	inbox  <-chan Event
	logger *slog.Logger
}

func NewWorker(sink Sink, inbox <-chan Event, logger *slog.Logger) *Worker {
	return &Worker{sink: sink, inbox: inbox, logger: logger}
}

func (w *Worker) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event := <-w.inbox:
			if err := w.sink.Deliver(ctx, event); err != nil {
				w.logger.Error("event delivery failed",
					"event", event.Name,
					"event_id", event.ID,
					"error", err.Error(),
				)
			}
		}
	}
}
