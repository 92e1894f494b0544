// Package ingest runs the ordered, offset-tracked event consumption loop.
package ingest

import (
	"context"
	"log"
	"time"

	"momenta/internal/engine"
)

// Source delivers batches of events starting at an offset. The call may
// block until events are available; it must return events in
// non-decreasing ID order.
type Source interface {
	Poll(ctx context.Context, offset int64, limit int) ([]engine.Event, error)
}

// Handler processes one event to completion. An error means the event was
// not fully handled and must be redelivered.
type Handler interface {
	HandleEvent(ctx context.Context, ev engine.Event) error
}

// Loop is the single sequential consumer. Events are handed to the
// handler strictly in arrival order, one at a time; the offset advances
// only after an event is fully handled, so a failed event (and everything
// after it in the batch) is redelivered on the next poll.
type Loop struct {
	source  Source
	handler Handler
	backoff time.Duration
	limit   int
	offset  int64
}

func New(source Source, handler Handler, backoff time.Duration, limit int) *Loop {
	return &Loop{source: source, handler: handler, backoff: backoff, limit: limit}
}

// Offset returns the id the next poll will request from.
func (l *Loop) Offset() int64 { return l.offset }

// Run consumes events until ctx is cancelled. Ingestion failures are
// never fatal: the loop logs, waits the fixed backoff and re-requests
// from the same offset, forever.
func (l *Loop) Run(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		batch, err := l.source.Poll(ctx, l.offset, l.limit)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			log.Printf("poll failed at offset %d: %v, retrying in %s", l.offset, err, l.backoff)
			if err := l.wait(ctx); err != nil {
				return err
			}
			continue
		}

		for _, ev := range batch {
			if err := l.handler.HandleEvent(ctx, ev); err != nil {
				log.Printf("event %d failed: %v, retrying from offset %d in %s", ev.ID, err, l.offset, l.backoff)
				if err := l.wait(ctx); err != nil {
					return err
				}
				break
			}
			l.offset = ev.ID + 1
		}
	}
}

func (l *Loop) wait(ctx context.Context) error {
	t := time.NewTimer(l.backoff)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
