package profile

import "time"

// Profile is one user's persistent settings and activity record.
//
// Field ownership is split between the two writers: the conversation
// engine writes the preference fields, LastActiveAt, OnboardingCompleted,
// ReferralSource and QuestionsAnswered; the reminder scheduler writes only
// LastReminderAt and QuestionsSent. No field is written by both, so
// last-writer-wins updates are safe without a cross-task transaction.
type Profile struct {
	ID                   int64  `json:"id"`
	LanguageCode         string `json:"language_code"`
	FormalAddress        bool   `json:"formal_address"`
	NotificationsEnabled bool   `json:"notifications_enabled"`

	// Reminders fire only while the current local hour is in
	// [ActiveHoursStart, ActiveHoursEnd).
	ActiveHoursStart int `json:"active_hours_start"`
	ActiveHoursEnd   int `json:"active_hours_end"`

	NotificationIntervalHours int `json:"notification_interval_hours"`

	LastActiveAt   time.Time `json:"last_active_at"`
	LastReminderAt time.Time `json:"last_reminder_at"`

	OnboardingCompleted bool   `json:"onboarding_completed"`
	ReferralSource      string `json:"referral_source,omitempty"`

	QuestionsSent     int `json:"questions_sent"`
	QuestionsAnswered int `json:"questions_answered"`
}

// Repository is the persistence boundary for profiles. Get returns
// (nil, nil) for an unknown user: absence means first contact.
//
// RecordReminder is the scheduler's only write path. It touches nothing
// but LastReminderAt and QuestionsSent, so it can run concurrently with
// an engine Upsert of the same row without losing either write.
type Repository interface {
	Get(userID int64) (*Profile, error)
	Upsert(p *Profile) error
	All() ([]*Profile, error)
	RecordReminder(userID int64, at time.Time) error
}

// Default first-contact settings.
const (
	DefaultActiveHoursStart = 9
	DefaultActiveHoursEnd   = 21
	DefaultIntervalHours    = 3
)

// NewDefault builds the profile created on first contact.
func NewDefault(userID int64, languageCode string) *Profile {
	return &Profile{
		ID:                        userID,
		LanguageCode:              languageCode,
		NotificationsEnabled:      true,
		ActiveHoursStart:          DefaultActiveHoursStart,
		ActiveHoursEnd:            DefaultActiveHoursEnd,
		NotificationIntervalHours: DefaultIntervalHours,
	}
}
