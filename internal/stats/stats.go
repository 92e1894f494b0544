package stats

import (
	"math"
	"time"

	"momenta/internal/moment"
	"momenta/internal/profile"
)

// Summary содержит статистику по пользователю
type Summary struct {
	MomentsTotal      int  `json:"moments_total"`
	CurrentStreak     int  `json:"current_streak"`
	BestStreak        int  `json:"best_streak"`
	QuestionsSent     int  `json:"questions_sent"`
	QuestionsAnswered int  `json:"questions_answered"`
	AnsweredPercent   *int `json:"answered_percent,omitempty"`
}

// Build aggregates a user's stats from the full moment history and the
// profile counters. AnsweredPercent is nil when no questions were sent so
// callers never render a 0/0 ratio.
func Build(p *profile.Profile, history []*moment.Moment, now time.Time) Summary {
	cur, best := moment.Streaks(history, now)
	s := Summary{
		MomentsTotal:      len(history),
		CurrentStreak:     cur,
		BestStreak:        best,
		QuestionsSent:     p.QuestionsSent,
		QuestionsAnswered: p.QuestionsAnswered,
	}
	if p.QuestionsSent > 0 {
		pct := int(math.Round(float64(p.QuestionsAnswered) / float64(p.QuestionsSent) * 100))
		s.AnsweredPercent = &pct
	}
	return s
}
