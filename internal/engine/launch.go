package engine

import (
	"context"
	"log"

	"momenta/internal/deeplink"
	"momenta/internal/profile"
	"momenta/internal/session"
)

// handleLaunch consumes the launch payload of a session start. The
// resolved action is applied exactly like the corresponding menu tap, and
// where the action has an immediate side effect (stats, moments) it fires
// right away instead of only priming a state.
func (e *Engine) handleLaunch(ctx context.Context, p *profile.Profile, ev Event) error {
	if !p.OnboardingCompleted {
		p.OnboardingCompleted = true
		if err := e.saveProfile(p); err != nil {
			return err
		}
	}

	res := deeplink.Resolve(ev.LaunchParam)
	switch res.Action {
	case deeplink.ActionNone:
		e.transport.SendMenu(p.ID, e.t(p, "greeting"), MenuMain)
		return nil
	case deeplink.ActionUnknown:
		log.Printf("unknown deep link %q from user %d", ev.LaunchParam, p.ID)
		e.transport.SendMenu(p.ID, e.t(p, "unknown_link"), MenuMain)
		return nil
	case deeplink.ActionReferral:
		if p.ReferralSource == "" {
			p.ReferralSource = res.Code
			if err := e.saveProfile(p); err != nil {
				return err
			}
		}
		e.transport.SendMenu(p.ID, e.t(p, "referral_thanks"), MenuMain)
		return nil
	case deeplink.ActionOpenMoments:
		return e.showMoments(p)
	case deeplink.ActionOpenStats:
		return e.showStats(p)
	case deeplink.ActionOpenSettings:
		e.transport.SendMenu(p.ID, e.t(p, "menu_hint"), MenuSettings)
		return nil
	case deeplink.ActionStartDialog:
		e.enterDialog(p)
		return nil
	case deeplink.ActionStartAddMoment:
		e.enterAddMoment(p)
		return nil
	case deeplink.ActionOpenPrivacy:
		e.transport.SendText(p.ID, e.t(p, "privacy"))
		return nil
	case deeplink.ActionOpenHelp:
		e.transport.SendText(p.ID, e.t(p, "help"))
		return nil
	}
	return nil
}

func (e *Engine) enterAddMoment(p *profile.Profile) {
	e.sessions.Set(p.ID, session.State{Kind: session.AddingMoment})
	e.transport.SendText(p.ID, e.t(p, "add_prompt"))
}

func (e *Engine) enterDialog(p *profile.Profile) {
	e.sessions.Set(p.ID, session.State{Kind: session.FreeDialog})
	e.transport.SendText(p.ID, e.t(p, "dialog_intro"))
}
