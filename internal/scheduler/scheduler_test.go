package scheduler

import (
	"testing"
	"time"

	"momenta/internal/profile"
)

type fakeProfiles struct {
	items map[int64]*profile.Profile
}

func (f *fakeProfiles) Get(userID int64) (*profile.Profile, error) {
	return f.items[userID], nil
}

func (f *fakeProfiles) Upsert(p *profile.Profile) error {
	cp := *p
	f.items[p.ID] = &cp
	return nil
}

func (f *fakeProfiles) All() ([]*profile.Profile, error) {
	var out []*profile.Profile
	for _, p := range f.items {
		out = append(out, p)
	}
	return out, nil
}

func (f *fakeProfiles) RecordReminder(userID int64, at time.Time) error {
	p := f.items[userID]
	p.LastReminderAt = at
	p.QuestionsSent++
	return nil
}

type fakeNotifier struct {
	sent []int64
}

func (f *fakeNotifier) SendReminder(userID int64, text string) {
	f.sent = append(f.sent, userID)
}

// noonUTC falls inside the default 9-21 active window.
var noonUTC = time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC)

func dueProfile(id int64) *profile.Profile {
	p := profile.NewDefault(id, "ru")
	p.LastActiveAt = noonUTC.Add(-25 * time.Hour)
	return p
}

func TestDueSkipsRecentlyActiveUser(t *testing.T) {
	p := dueProfile(1)
	p.LastActiveAt = noonUTC.Add(-23 * time.Hour)
	if Due(p, noonUTC) {
		t.Fatalf("user active 23h ago must not be reminded")
	}
}

func TestDueFiresForInactiveUserInsideWindow(t *testing.T) {
	if !Due(dueProfile(1), noonUTC) {
		t.Fatalf("user inactive 25h inside active hours must be reminded")
	}
}

func TestDueRespectsDisabledNotifications(t *testing.T) {
	p := dueProfile(1)
	p.NotificationsEnabled = false
	if Due(p, noonUTC) {
		t.Fatalf("disabled notifications must suppress reminders")
	}
}

func TestDueRespectsActiveHoursWindow(t *testing.T) {
	p := dueProfile(1)
	night := time.Date(2025, 6, 10, 7, 0, 0, 0, time.UTC)
	if Due(p, night) {
		t.Fatalf("07:00 is before the 9-21 window")
	}
	// The end bound is exclusive.
	endHour := time.Date(2025, 6, 10, 21, 0, 0, 0, time.UTC)
	if Due(p, endHour) {
		t.Fatalf("21:00 is outside [9, 21)")
	}
	lastHour := time.Date(2025, 6, 10, 20, 59, 0, 0, time.UTC)
	if !Due(p, lastHour) {
		t.Fatalf("20:59 is inside [9, 21)")
	}
}

func TestDueRespectsReminderInterval(t *testing.T) {
	p := dueProfile(1)
	p.LastReminderAt = noonUTC.Add(-2 * time.Hour)
	if Due(p, noonUTC) {
		t.Fatalf("reminder 2h ago with 3h interval must suppress")
	}
	p.LastReminderAt = noonUTC.Add(-3 * time.Hour)
	if !Due(p, noonUTC) {
		t.Fatalf("reminder exactly interval ago must fire")
	}
}

func TestDueSkipsNeverContactedProfile(t *testing.T) {
	p := profile.NewDefault(1, "ru")
	if Due(p, noonUTC) {
		t.Fatalf("profile without activity baseline must be skipped")
	}
}

func TestTickDispatchesOncePerDueUserAndRecordsIt(t *testing.T) {
	repo := &fakeProfiles{items: map[int64]*profile.Profile{}}
	_ = repo.Upsert(dueProfile(1))
	fresh := dueProfile(2)
	fresh.LastActiveAt = noonUTC.Add(-1 * time.Hour)
	_ = repo.Upsert(fresh)

	n := &fakeNotifier{}
	s := New(time.Minute, repo, n)

	s.Tick(noonUTC)
	if len(n.sent) != 1 || n.sent[0] != 1 {
		t.Fatalf("sent = %v, want exactly user 1", n.sent)
	}

	got := repo.items[1]
	if !got.LastReminderAt.Equal(noonUTC) {
		t.Fatalf("last_reminder_at not recorded: %v", got.LastReminderAt)
	}
	if got.QuestionsSent != 1 {
		t.Fatalf("questions_sent = %d, want 1", got.QuestionsSent)
	}

	// A second tick inside the interval must not re-dispatch.
	s.Tick(noonUTC.Add(time.Minute))
	if len(n.sent) != 1 {
		t.Fatalf("second tick re-dispatched: %v", n.sent)
	}
}

// upsertingNotifier updates the profile the way the engine would while
// the reminder is in flight.
type upsertingNotifier struct {
	repo *fakeProfiles
}

func (n *upsertingNotifier) SendReminder(userID int64, text string) {
	cp := *n.repo.items[userID]
	cp.LanguageCode = "en"
	cp.QuestionsAnswered = 5
	_ = n.repo.Upsert(&cp)
}

func TestTickDoesNotClobberConcurrentProfileWrite(t *testing.T) {
	repo := &fakeProfiles{items: map[int64]*profile.Profile{}}
	_ = repo.Upsert(dueProfile(1))

	s := New(time.Minute, repo, &upsertingNotifier{repo: repo})
	s.Tick(noonUTC)

	got := repo.items[1]
	if got.LanguageCode != "en" || got.QuestionsAnswered != 5 {
		t.Fatalf("reminder bookkeeping overwrote the in-flight update: %+v", got)
	}
	if !got.LastReminderAt.Equal(noonUTC) || got.QuestionsSent != 1 {
		t.Fatalf("reminder not recorded: %+v", got)
	}
}
