// Package scheduler periodically decides, per user, whether a reminder
// question is due and dispatches it through the transport collaborator.
package scheduler

import (
	"fmt"
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"momenta/internal/profile"
)

// Notifier dispatches one reminder. Fire-and-forget, like every outbound
// send.
type Notifier interface {
	SendReminder(userID int64, text string)
}

// Scheduler управляет напоминаниями
type Scheduler struct {
	cron     *cron.Cron
	period   time.Duration
	profiles profile.Repository
	notifier Notifier
	now      func() time.Time
}

func New(period time.Duration, profiles profile.Repository, notifier Notifier) *Scheduler {
	return &Scheduler{
		cron:     cron.New(cron.WithLocation(time.UTC)),
		period:   period,
		profiles: profiles,
		notifier: notifier,
		now:      time.Now,
	}
}

// Start запускает планировщик
func (s *Scheduler) Start() error {
	_, err := s.cron.AddFunc(fmt.Sprintf("@every %s", s.period), func() {
		s.Tick(s.now())
	})
	if err != nil {
		return err
	}
	s.cron.Start()
	log.Printf("📅 Reminder scheduler started, evaluating every %s", s.period)
	return nil
}

// Stop останавливает планировщик
func (s *Scheduler) Stop() {
	if s.cron != nil {
		ctx := s.cron.Stop()
		<-ctx.Done()
	}
	log.Println("📅 Reminder scheduler stopped")
}

// Tick evaluates every profile once. The evaluation never looks at
// session state: reminders and the conversation engine run independently.
func (s *Scheduler) Tick(now time.Time) {
	profiles, err := s.profiles.All()
	if err != nil {
		log.Printf("failed to load profiles for reminder tick: %v", err)
		return
	}
	for _, p := range profiles {
		if !Due(p, now) {
			continue
		}
		s.notifier.SendReminder(p.ID, question(p))

		// Scheduler-owned columns only. The loaded profile may already
		// be stale here, so a full-row upsert would clobber a
		// concurrent engine write.
		if err := s.profiles.RecordReminder(p.ID, now); err != nil {
			log.Printf("failed to record reminder for user %d: %v", p.ID, err)
		}
	}
}

// Due reports whether a reminder should fire for p at now.
func Due(p *profile.Profile, now time.Time) bool {
	if !p.NotificationsEnabled {
		return false
	}
	// Never contacted users have no activity baseline to nag about.
	if p.LastActiveAt.IsZero() {
		return false
	}
	daysSinceActive := int(now.Sub(p.LastActiveAt).Hours() / 24)
	if daysSinceActive < 1 {
		return false
	}
	hour := now.Hour()
	if hour < p.ActiveHoursStart || hour >= p.ActiveHoursEnd {
		return false
	}
	if !p.LastReminderAt.IsZero() &&
		now.Sub(p.LastReminderAt) < time.Duration(p.NotificationIntervalHours)*time.Hour {
		return false
	}
	return true
}

var questions = map[string][]string{
	"ru": {
		"Что хорошего случилось сегодня?",
		"Какой момент дня хочется запомнить?",
		"Что заставило тебя улыбнуться?",
	},
	"en": {
		"What good happened today?",
		"Which moment of the day is worth keeping?",
		"What made you smile?",
	},
}

func question(p *profile.Profile) string {
	qs := questions["en"]
	if p.LanguageCode == "ru" {
		qs = questions["ru"]
	}
	return qs[p.QuestionsSent%len(qs)]
}
