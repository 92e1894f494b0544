package moment

import (
	"testing"
	"time"
)

func at(day string) time.Time {
	t, err := time.Parse("2006-01-02 15:04", day)
	if err != nil {
		panic(err)
	}
	return t.UTC()
}

func mk(ts ...time.Time) []*Moment {
	out := make([]*Moment, 0, len(ts))
	for _, t := range ts {
		out = append(out, &Moment{UserID: 1, Text: "x", Source: SourceText, CreatedAt: t})
	}
	return out
}

func TestStreaksEmptyHistory(t *testing.T) {
	cur, best := Streaks(nil, at("2025-06-10 12:00"))
	if cur != 0 || best != 0 {
		t.Fatalf("empty history: got current=%d best=%d", cur, best)
	}
}

func TestStreaksConsecutiveDays(t *testing.T) {
	now := at("2025-06-10 12:00")
	h := mk(
		at("2025-06-08 09:00"),
		at("2025-06-09 22:00"),
		at("2025-06-10 08:00"),
	)
	cur, best := Streaks(h, now)
	if cur != 3 || best != 3 {
		t.Fatalf("got current=%d best=%d, want 3/3", cur, best)
	}
}

func TestStreaksBrokenRunKeepsBest(t *testing.T) {
	now := at("2025-06-10 12:00")
	h := mk(
		at("2025-06-01 10:00"),
		at("2025-06-02 10:00"),
		at("2025-06-03 10:00"),
		at("2025-06-04 10:00"),
		// gap
		at("2025-06-09 10:00"),
		at("2025-06-10 10:00"),
	)
	cur, best := Streaks(h, now)
	if cur != 2 {
		t.Fatalf("current = %d, want 2", cur)
	}
	if best != 4 {
		t.Fatalf("best = %d, want 4", best)
	}
}

func TestStreaksStaleRunIsNotCurrent(t *testing.T) {
	now := at("2025-06-10 12:00")
	h := mk(
		at("2025-06-05 10:00"),
		at("2025-06-06 10:00"),
	)
	cur, best := Streaks(h, now)
	if cur != 0 {
		t.Fatalf("run ending four days ago must not count as current, got %d", cur)
	}
	if best != 2 {
		t.Fatalf("best = %d, want 2", best)
	}
}

func TestStreaksMultipleMomentsSameDayCountOnce(t *testing.T) {
	now := at("2025-06-10 12:00")
	h := mk(
		at("2025-06-09 08:00"),
		at("2025-06-09 21:00"),
		at("2025-06-10 09:00"),
		at("2025-06-10 09:01"),
	)
	cur, best := Streaks(h, now)
	if cur != 2 || best != 2 {
		t.Fatalf("got current=%d best=%d, want 2/2", cur, best)
	}
}

func TestStreaksRunEndingYesterdayIsCurrent(t *testing.T) {
	now := at("2025-06-10 07:00")
	h := mk(
		at("2025-06-08 10:00"),
		at("2025-06-09 10:00"),
	)
	cur, _ := Streaks(h, now)
	if cur != 2 {
		t.Fatalf("run ending yesterday must still be current, got %d", cur)
	}
}
