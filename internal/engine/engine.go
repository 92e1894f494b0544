package engine

import (
	"context"
	"fmt"
	"log"
	"time"

	"momenta/internal/guard"
	"momenta/internal/llm"
	"momenta/internal/moment"
	"momenta/internal/profile"
	"momenta/internal/session"
)

// Engine drives inbound events through the per-user conversation state
// machine. It is the only writer of session state; all state-mutating
// gestures pass the processing guard first.
type Engine struct {
	sessions  *session.Store
	guard     *guard.Guard
	profiles  profile.Repository
	moments   moment.Repository
	transport Transport

	dialog      llm.Client      // optional
	embedder    llm.Embedder    // optional
	transcriber llm.Transcriber // optional

	defaultLanguage string
	now             func() time.Time
}

type Option func(*Engine)

// WithDialogClient enables LLM-backed free-dialog replies.
func WithDialogClient(c llm.Client) Option {
	return func(e *Engine) { e.dialog = c }
}

// WithEmbedder enables best-effort semantic embeddings on saved moments.
func WithEmbedder(em llm.Embedder) Option {
	return func(e *Engine) { e.embedder = em }
}

// WithTranscriber enables voice moments.
func WithTranscriber(tr llm.Transcriber) Option {
	return func(e *Engine) { e.transcriber = tr }
}

func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

func New(sessions *session.Store, g *guard.Guard, profiles profile.Repository, moments moment.Repository, transport Transport, defaultLanguage string, opts ...Option) *Engine {
	e := &Engine{
		sessions:        sessions,
		guard:           g,
		profiles:        profiles,
		moments:         moments,
		transport:       transport,
		defaultLanguage: defaultLanguage,
		now:             func() time.Time { return time.Now().UTC() },
	}
	for _, o := range opts {
		o(e)
	}
	return e
}

// HandleEvent processes one inbound event to completion. A returned error
// means handling did not finish and the ingestion loop must redeliver the
// event; everything user-facing that can be recovered locally is.
func (e *Engine) HandleEvent(ctx context.Context, ev Event) error {
	if ev.Kind == KindIgnore || ev.UserID == 0 {
		return nil
	}

	p, err := e.ensureProfile(ev.UserID)
	if err != nil {
		return err
	}

	switch ev.Kind {
	case KindLaunch:
		return e.handleLaunch(ctx, p, ev)
	case KindCallback:
		return e.handleGesture(ctx, p, ev)
	case KindText:
		return e.handleContent(ctx, p, ev.Text, moment.SourceText)
	case KindVoice:
		return e.handleVoice(ctx, p, ev)
	default:
		log.Printf("unrecognized event kind %d from user %d", ev.Kind, ev.UserID)
		return nil
	}
}

// ensureProfile loads the user's profile, creating one with the documented
// defaults on first contact, and records the activity timestamp.
func (e *Engine) ensureProfile(userID int64) (*profile.Profile, error) {
	p, err := e.profiles.Get(userID)
	if err != nil {
		return nil, fmt.Errorf("load profile %d: %w", userID, err)
	}
	if p == nil {
		p = profile.NewDefault(userID, e.defaultLanguage)
		log.Printf("first contact from user %d, creating profile", userID)
	}
	p.LastActiveAt = e.now()
	if err := e.profiles.Upsert(p); err != nil {
		return nil, fmt.Errorf("save profile %d: %w", userID, err)
	}
	return p, nil
}

func (e *Engine) saveProfile(p *profile.Profile) error {
	if err := e.profiles.Upsert(p); err != nil {
		return fmt.Errorf("save profile %d: %w", p.ID, err)
	}
	return nil
}
