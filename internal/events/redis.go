package events

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisSink appends events to a Redis stream. The stream is capped so an
// unconsumed channel cannot grow without bound.
type RedisSink struct {
	client *redis.Client
	stream string
	maxLen int64
}

func NewRedisSink(client *redis.Client, stream string) *RedisSink {
	return &RedisSink{
		client: client,
		stream: stream,
		maxLen: 100000,
	}
}

func (s *RedisSink) Deliver(ctx context.Context, e Event) error {
	values := map[string]any{
		"id":        e.ID,
		"name":      e.Name,
		"principal": e.Principal.String(),
		"tick":      e.Tick,
		"at":        e.At.Format(time.RFC3339Nano),
	}
	if e.Subject != "" {
		values["subject"] = e.Subject.String()
	}
	if e.ConsentID != 0 {
		values["consent_id"] = uint64(e.ConsentID)
	}
	if e.RequestID != "" {
		values["request_id"] = e.RequestID
	}

	err := s.client.XAdd(ctx, &redis.XAddArgs{
		Stream: s.stream,
		MaxLen: s.maxLen,
		Approx: true,
		Values: values,
	}).Err()
	if err != nil {
		return fmt.Errorf("xadd event: %w", err)
	}
	return nil
}
