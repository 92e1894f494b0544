package store

import (
	"database/sql"
	"fmt"
	"time"

	"momenta/internal/profile"
)

// Get returns (nil, nil) for an unknown user: absence means first contact.
func (s *SQLiteStore) Get(userID int64) (*profile.Profile, error) {
	row := s.db.QueryRow(`SELECT id, language_code, formal_address, notifications_enabled,
		active_hours_start, active_hours_end, notification_interval_hours,
		last_active_at, last_reminder_at, onboarding_completed, referral_source,
		questions_sent, questions_answered
		FROM profiles WHERE id = ?`, userID)
	p, err := scanProfile(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get profile %d: %w", userID, err)
	}
	return p, nil
}

func (s *SQLiteStore) Upsert(p *profile.Profile) error {
	_, err := s.db.Exec(`INSERT INTO profiles (id, language_code, formal_address, notifications_enabled,
		active_hours_start, active_hours_end, notification_interval_hours,
		last_active_at, last_reminder_at, onboarding_completed, referral_source,
		questions_sent, questions_answered)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
		language_code = excluded.language_code,
		formal_address = excluded.formal_address,
		notifications_enabled = excluded.notifications_enabled,
		active_hours_start = excluded.active_hours_start,
		active_hours_end = excluded.active_hours_end,
		notification_interval_hours = excluded.notification_interval_hours,
		last_active_at = excluded.last_active_at,
		last_reminder_at = excluded.last_reminder_at,
		onboarding_completed = excluded.onboarding_completed,
		referral_source = excluded.referral_source,
		questions_sent = excluded.questions_sent,
		questions_answered = excluded.questions_answered`,
		p.ID, p.LanguageCode, boolInt(p.FormalAddress), boolInt(p.NotificationsEnabled),
		p.ActiveHoursStart, p.ActiveHoursEnd, p.NotificationIntervalHours,
		unix(p.LastActiveAt), unix(p.LastReminderAt), boolInt(p.OnboardingCompleted), p.ReferralSource,
		p.QuestionsSent, p.QuestionsAnswered)
	if err != nil {
		return fmt.Errorf("upsert profile %d: %w", p.ID, err)
	}
	return nil
}

// RecordReminder bumps the scheduler-owned columns in place. The engine
// columns of the row are never mentioned, so an engine Upsert landing
// between the scheduler's read and this write survives intact.
func (s *SQLiteStore) RecordReminder(userID int64, at time.Time) error {
	_, err := s.db.Exec(`UPDATE profiles
		SET last_reminder_at = ?, questions_sent = questions_sent + 1
		WHERE id = ?`, at.Unix(), userID)
	if err != nil {
		return fmt.Errorf("record reminder for %d: %w", userID, err)
	}
	return nil
}

func (s *SQLiteStore) All() ([]*profile.Profile, error) {
	rows, err := s.db.Query(`SELECT id, language_code, formal_address, notifications_enabled,
		active_hours_start, active_hours_end, notification_interval_hours,
		last_active_at, last_reminder_at, onboarding_completed, referral_source,
		questions_sent, questions_answered
		FROM profiles ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list profiles: %w", err)
	}
	defer rows.Close()

	var out []*profile.Profile
	for rows.Next() {
		p, err := scanProfile(rows)
		if err != nil {
			return nil, fmt.Errorf("scan profile: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProfile(r rowScanner) (*profile.Profile, error) {
	var p profile.Profile
	var formal, enabled, onboarded int
	var lastActive, lastReminder int64
	if err := r.Scan(&p.ID, &p.LanguageCode, &formal, &enabled,
		&p.ActiveHoursStart, &p.ActiveHoursEnd, &p.NotificationIntervalHours,
		&lastActive, &lastReminder, &onboarded, &p.ReferralSource,
		&p.QuestionsSent, &p.QuestionsAnswered); err != nil {
		return nil, err
	}
	p.FormalAddress = formal != 0
	p.NotificationsEnabled = enabled != 0
	p.OnboardingCompleted = onboarded != 0
	p.LastActiveAt = fromUnix(lastActive)
	p.LastReminderAt = fromUnix(lastReminder)
	return &p, nil
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func unix(t time.Time) int64 {
	if t.IsZero() {
		return 0
	}
	return t.Unix()
}

func fromUnix(v int64) time.Time {
	if v == 0 {
		return time.Time{}
	}
	return time.Unix(v, 0).UTC()
}
