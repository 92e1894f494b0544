package engine

import (
	"context"
	"log"

	"momenta/internal/guard"
	"momenta/internal/profile"
	"momenta/internal/session"
	"momenta/internal/stats"
)

// handleGesture applies one button tap. A duplicate tap within the guard
// window is suppressed without any state mutation or side effect, but the
// gesture is still acknowledged so the client does not appear stuck.
func (e *Engine) handleGesture(ctx context.Context, p *profile.Profile, ev Event) error {
	if !e.guard.TryAcquire(guard.GestureKey(ev.GestureID)) {
		log.Printf("duplicate gesture %s from user %d suppressed", ev.GestureID, ev.UserID)
		e.transport.AckGesture(ev.GestureID)
		return nil
	}
	e.transport.AckGesture(ev.GestureID)
	return e.applyAction(ctx, p, ev.Text)
}

func (e *Engine) applyAction(ctx context.Context, p *profile.Profile, data string) error {
	switch data {
	case cbAdd:
		e.enterAddMoment(p)
	case cbStats:
		return e.showStats(p)
	case cbMoments:
		return e.showMoments(p)
	case cbSettings:
		e.transport.SendMenu(p.ID, e.t(p, "menu_hint"), MenuSettings)
	case cbDialog:
		e.enterDialog(p)
	case cbExit:
		// Drop the session entirely so stale context cannot leak into
		// the next message.
		e.sessions.Clear(p.ID)
		e.transport.SendMenu(p.ID, e.t(p, "dialog_exit"), MenuMain)
	case cbHelp:
		e.transport.SendText(p.ID, e.t(p, "help"))
	case cbPrivacy:
		e.transport.SendText(p.ID, e.t(p, "privacy"))
	case cbHoursStart:
		e.enterSetting(p, session.SettingHoursStart, "ask_hours_start")
	case cbHoursEnd:
		e.enterSetting(p, session.SettingHoursEnd, "ask_hours_end")
	case cbInterval:
		e.enterSetting(p, session.SettingInterval, "ask_interval")
	case cbNotifOn:
		p.NotificationsEnabled = true
		if err := e.saveProfile(p); err != nil {
			return err
		}
		e.transport.SendText(p.ID, e.t(p, "notif_on"))
	case cbNotifOff:
		p.NotificationsEnabled = false
		if err := e.saveProfile(p); err != nil {
			return err
		}
		e.transport.SendText(p.ID, e.t(p, "notif_off"))
	case cbLangRu, cbLangEn:
		p.LanguageCode = "en"
		if data == cbLangRu {
			p.LanguageCode = "ru"
		}
		if err := e.saveProfile(p); err != nil {
			return err
		}
		e.transport.SendMenu(p.ID, e.t(p, "setting_updated"), MenuSettings)
	case cbFormalOn, cbFormalOff:
		p.FormalAddress = data == cbFormalOn
		if err := e.saveProfile(p); err != nil {
			return err
		}
		e.transport.SendText(p.ID, e.t(p, "setting_updated"))
	default:
		log.Printf("unrecognized gesture action %q from user %d", data, p.ID)
		e.transport.SendMenu(p.ID, e.t(p, "menu_hint"), MenuMain)
	}
	return nil
}

func (e *Engine) enterSetting(p *profile.Profile, kind session.Setting, promptKey string) {
	e.sessions.Set(p.ID, session.State{Kind: session.AwaitingSetting, Setting: kind})
	e.transport.SendText(p.ID, e.t(p, promptKey))
}

func (e *Engine) showStats(p *profile.Profile) error {
	history, err := e.moments.ByUser(p.ID)
	if err != nil {
		return err
	}
	e.transport.SendText(p.ID, e.renderStats(p, stats.Build(p, history, e.now())))
	return nil
}

func (e *Engine) showMoments(p *profile.Profile) error {
	history, err := e.moments.ByUser(p.ID)
	if err != nil {
		return err
	}
	e.transport.SendText(p.ID, e.renderMoments(p, history))
	return nil
}
