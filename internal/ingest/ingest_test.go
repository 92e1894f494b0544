package ingest

import (
	"context"
	"errors"
	"testing"
	"time"

	"momenta/internal/engine"
)

// scriptedSource serves pre-built batches keyed by requested offset and
// cancels the run context once the script runs dry.
type scriptedSource struct {
	t       *testing.T
	batches map[int64][]engine.Event
	polls   []int64
	done    context.CancelFunc
}

func (s *scriptedSource) Poll(ctx context.Context, offset int64, limit int) ([]engine.Event, error) {
	s.polls = append(s.polls, offset)
	batch, ok := s.batches[offset]
	if !ok {
		s.done()
		return nil, ctx.Err()
	}
	delete(s.batches, offset)
	return batch, nil
}

type recordingHandler struct {
	handled []int64
	failOn  map[int64]int // event id -> remaining failures
}

func (h *recordingHandler) HandleEvent(ctx context.Context, ev engine.Event) error {
	if h.failOn[ev.ID] > 0 {
		h.failOn[ev.ID]--
		return errors.New("boom")
	}
	h.handled = append(h.handled, ev.ID)
	return nil
}

func events(ids ...int64) []engine.Event {
	out := make([]engine.Event, 0, len(ids))
	for _, id := range ids {
		out = append(out, engine.Event{ID: id, UserID: 1, Kind: engine.KindText, Text: "hi"})
	}
	return out
}

func runLoop(t *testing.T, src *scriptedSource, h Handler) *Loop {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	src.done = cancel
	l := New(src, h, time.Millisecond, 100)
	if err := l.Run(ctx); !errors.Is(err, context.Canceled) && !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("unexpected run error: %v", err)
	}
	return l
}

func TestOffsetAdvancesPastLastHandledEvent(t *testing.T) {
	src := &scriptedSource{t: t, batches: map[int64][]engine.Event{
		0:  events(10, 11, 12),
		13: events(13),
	}}
	h := &recordingHandler{}
	l := runLoop(t, src, h)

	if l.Offset() != 14 {
		t.Fatalf("offset = %d, want 14", l.Offset())
	}
	want := []int64{10, 11, 12, 13}
	if len(h.handled) != len(want) {
		t.Fatalf("handled %v, want %v", h.handled, want)
	}
	for i, id := range want {
		if h.handled[i] != id {
			t.Fatalf("handled %v, want %v", h.handled, want)
		}
	}
}

func TestFailedEventIsRedeliveredAndOffsetHeldBack(t *testing.T) {
	src := &scriptedSource{t: t, batches: map[int64][]engine.Event{
		0:  events(10, 11, 12),
		11: events(11, 12),
	}}
	h := &recordingHandler{failOn: map[int64]int{11: 1}}
	l := runLoop(t, src, h)

	// First pass handles 10, fails 11; second poll must restart at 11.
	if len(src.polls) < 2 || src.polls[1] != 11 {
		t.Fatalf("polls = %v, want second poll from offset 11", src.polls)
	}
	want := []int64{10, 11, 12}
	if len(h.handled) != len(want) {
		t.Fatalf("handled %v, want %v", h.handled, want)
	}
	for i, id := range want {
		if h.handled[i] != id {
			t.Fatalf("handled %v, want %v", h.handled, want)
		}
	}
	if l.Offset() != 13 {
		t.Fatalf("offset = %d, want 13", l.Offset())
	}
}

func TestNoEventHandledTwiceWithoutPriorFailure(t *testing.T) {
	src := &scriptedSource{t: t, batches: map[int64][]engine.Event{
		0: events(1, 2),
		3: events(3),
	}}
	h := &recordingHandler{}
	runLoop(t, src, h)

	seen := make(map[int64]int)
	for _, id := range h.handled {
		seen[id]++
	}
	for id, n := range seen {
		if n != 1 {
			t.Fatalf("event %d handled %d times", id, n)
		}
	}
}

func TestPollErrorRetriesFromSameOffset(t *testing.T) {
	calls := 0
	src := &flakySource{fail: &calls}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	src.done = cancel
	h := &recordingHandler{}
	l := New(src, h, time.Millisecond, 100)
	_ = l.Run(ctx)

	if len(h.handled) != 1 || h.handled[0] != 5 {
		t.Fatalf("handled %v, want [5]", h.handled)
	}
	if l.Offset() != 6 {
		t.Fatalf("offset = %d, want 6", l.Offset())
	}
}

type flakySource struct {
	fail *int
	done context.CancelFunc
}

func (s *flakySource) Poll(ctx context.Context, offset int64, limit int) ([]engine.Event, error) {
	*s.fail++
	switch *s.fail {
	case 1:
		return nil, errors.New("collaborator unavailable")
	case 2:
		if offset != 0 {
			return nil, errors.New("offset moved despite poll failure")
		}
		return events(5), nil
	default:
		s.done()
		return nil, ctx.Err()
	}
}
