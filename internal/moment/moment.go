package moment

import "time"

// Source tags how a moment's text arrived.
type Source string

const (
	SourceText  Source = "text"
	SourceVoice Source = "voice"
)

// Moment is one user-submitted diary record. Voice moments carry the
// transcribed text; Embedding is optional and may stay nil when the
// embedding collaborator is unavailable.
type Moment struct {
	ID        string    `json:"id"`
	UserID    int64     `json:"user_id"`
	Text      string    `json:"text"`
	Source    Source    `json:"source"`
	Embedding []float32 `json:"embedding,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// Repository is the persistence boundary for moments. ByUser returns the
// user's full history ordered oldest first.
type Repository interface {
	Add(m *Moment) error
	ByUser(userID int64) ([]*Moment, error)
}

// Streaks derives the current and best run of consecutive days with at
// least one moment from the full ordered history. Both values come from
// the same pass so they cannot diverge. The current streak counts only if
// its last day is today or yesterday relative to now.
func Streaks(history []*Moment, now time.Time) (current, best int) {
	if len(history) == 0 {
		return 0, 0
	}

	var days []time.Time
	for _, m := range history {
		d := dayOf(m.CreatedAt)
		if len(days) == 0 || !days[len(days)-1].Equal(d) {
			days = append(days, d)
		}
	}

	run := 1
	best = 1
	for i := 1; i < len(days); i++ {
		if days[i].Sub(days[i-1]) == 24*time.Hour {
			run++
		} else {
			run = 1
		}
		if run > best {
			best = run
		}
	}

	today := dayOf(now)
	last := days[len(days)-1]
	if last.Equal(today) || today.Sub(last) == 24*time.Hour {
		current = run
	}
	return current, best
}

func dayOf(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
