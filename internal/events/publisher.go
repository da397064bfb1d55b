package events

import (
	"context"
	"log/slog"
)

// Publisher hands events to the worker through a buffered channel so emission
// never blocks the transaction path. Events are dropped, with a log line, when
// the buffer is full: delivery is best-effort.
type Publisher struct {
	inbox  chan Event
	logger *slog.Logger
}

func NewPublisher(buffer int, logger *slog.Logger) *Publisher {
	if buffer <= 0 {
		buffer = 256
	}
	return &Publisher{
		inbox:  make(chan Event, buffer),
		logger: logger,
	}
}

// Emit queues an event for delivery. Safe to call from any goroutine.
func (p *Publisher) Emit(_ context.Context, e Event) {
	select {
	case p.inbox <- e:
	default:
		p.logger.Warn("event buffer full, dropping event",
			"event", e.Name,
			"event_id", e.ID,
		)
	}
}

// Inbox exposes the channel side consumed by the worker.
func (p *Publisher) Inbox() <-chan Event {
	return p.inbox
}
