package engine

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"momenta/internal/guard"
	"momenta/internal/llm"
	"momenta/internal/moment"
	"momenta/internal/profile"
	"momenta/internal/session"
)

// handleContent processes a free-text submission. The guard key is
// (userID, submit): rapid repeats from one user are accidental duplicates
// no matter what they say.
func (e *Engine) handleContent(ctx context.Context, p *profile.Profile, text string, src moment.Source) error {
	if !e.guard.TryAcquire(guard.SubmitKey(p.ID)) {
		log.Printf("duplicate submission from user %d suppressed", p.ID)
		return nil
	}
	return e.dispatchContent(ctx, p, text, src)
}

func (e *Engine) handleVoice(ctx context.Context, p *profile.Profile, ev Event) error {
	if !e.guard.TryAcquire(guard.SubmitKey(p.ID)) {
		log.Printf("duplicate submission from user %d suppressed", p.ID)
		return nil
	}

	st := e.sessions.Get(p.ID)
	if st.Kind == session.Idle {
		e.transport.SendMenu(p.ID, e.t(p, "idle_hint"), MenuMain)
		return nil
	}
	if e.transcriber == nil {
		e.transport.SendText(p.ID, e.t(p, "voice_unavailable"))
		return nil
	}

	data, filename, err := e.transport.DownloadVoice(ev.VoiceFileID)
	if err != nil {
		return fmt.Errorf("download voice %s: %w", ev.VoiceFileID, err)
	}
	text, err := e.transcriber.Transcribe(ctx, data, filename)
	if err != nil {
		log.Printf("transcription failed for user %d: %v", p.ID, err)
		e.transport.SendText(p.ID, e.t(p, "voice_failed"))
		return nil
	}
	return e.dispatchContent(ctx, p, text, moment.SourceVoice)
}

func (e *Engine) dispatchContent(ctx context.Context, p *profile.Profile, text string, src moment.Source) error {
	st := e.sessions.Get(p.ID)
	switch st.Kind {
	case session.AddingMoment:
		return e.saveMoment(ctx, p, text, src)
	case session.AwaitingSetting:
		return e.applySetting(p, st, text)
	case session.FreeDialog:
		e.dialogReply(ctx, p, text)
		return nil
	default:
		e.transport.SendMenu(p.ID, e.t(p, "idle_hint"), MenuMain)
		return nil
	}
}

func (e *Engine) saveMoment(ctx context.Context, p *profile.Profile, text string, src moment.Source) error {
	text = strings.TrimSpace(text)
	if text == "" {
		e.transport.SendText(p.ID, e.t(p, "add_prompt"))
		return nil
	}

	m := &moment.Moment{
		ID:        uuid.NewString(),
		UserID:    p.ID,
		Text:      text,
		Source:    src,
		CreatedAt: e.now(),
	}
	if e.embedder != nil {
		emb, err := e.embedder.Embed(ctx, text)
		if err != nil {
			log.Printf("embedding failed for user %d: %v", p.ID, err)
		} else {
			m.Embedding = emb
		}
	}

	if err := e.moments.Add(m); err != nil {
		return fmt.Errorf("persist moment: %w", err)
	}

	// A moment landing after an unanswered reminder counts as the answer.
	if p.QuestionsSent > p.QuestionsAnswered && m.CreatedAt.After(p.LastReminderAt) {
		p.QuestionsAnswered++
	}

	// Streaks are rederived from the full ordered history, never bumped
	// in place.
	history, err := e.moments.ByUser(p.ID)
	if err != nil {
		return fmt.Errorf("load history: %w", err)
	}
	cur, _ := moment.Streaks(history, e.now())

	if err := e.saveProfile(p); err != nil {
		return err
	}
	e.sessions.Set(p.ID, session.State{Kind: session.Idle})
	e.transport.SendText(p.ID, e.tf(p, "moment_saved", cur))
	return nil
}

// applySetting validates one settings value. An invalid value is a normal
// transition outcome: the state stays put and the user gets a correction
// prompt.
func (e *Engine) applySetting(p *profile.Profile, st session.State, text string) error {
	v, err := strconv.Atoi(strings.TrimSpace(text))
	if err != nil {
		e.transport.SendText(p.ID, e.t(p, "bad_setting_value"))
		return nil
	}

	valid := false
	switch st.Setting {
	case session.SettingHoursStart:
		if v >= 0 && v <= 23 && v < p.ActiveHoursEnd {
			p.ActiveHoursStart = v
			valid = true
		}
	case session.SettingHoursEnd:
		if v >= 0 && v <= 23 && v > p.ActiveHoursStart {
			p.ActiveHoursEnd = v
			valid = true
		}
	case session.SettingInterval:
		if v >= 1 && v <= 24 {
			p.NotificationIntervalHours = v
			valid = true
		}
	}
	if !valid {
		e.transport.SendText(p.ID, e.t(p, "bad_setting_value"))
		return nil
	}

	if err := e.saveProfile(p); err != nil {
		return err
	}
	e.sessions.Set(p.ID, session.State{Kind: session.Idle})
	e.transport.SendText(p.ID, e.t(p, "setting_updated"))
	return nil
}

func (e *Engine) dialogReply(ctx context.Context, p *profile.Profile, text string) {
	if e.dialog == nil {
		e.transport.SendText(p.ID, e.t(p, "dialog_unavailable"))
		return
	}
	system := "You are a warm, brief companion in a personal diary bot. Answer in English."
	if lang(p) == "ru" {
		system = "Ты — тёплый и немногословный собеседник в личном дневнике. Отвечай по-русски."
	}
	resp, err := e.dialog.Generate(ctx, []llm.Message{
		{Role: "system", Content: system},
		{Role: "user", Content: text},
	})
	if err != nil {
		log.Printf("dialog generation failed for user %d: %v", p.ID, err)
		e.transport.SendText(p.ID, e.t(p, "dialog_failed"))
		return
	}
	e.transport.SendText(p.ID, resp.Content)
}
