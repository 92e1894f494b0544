// Package deeplink maps the payload of a /start command to an initial
// conversational action. Resolution is pure; applying the action is the
// engine's job.
package deeplink

import "strings"

type Action int

const (
	// ActionNone means a plain launch with no payload.
	ActionNone Action = iota
	// ActionUnknown means a non-empty payload nobody recognizes; the
	// engine picks a fallback response.
	ActionUnknown
	ActionOpenMoments
	ActionOpenStats
	ActionOpenSettings
	ActionStartDialog
	ActionStartAddMoment
	ActionOpenPrivacy
	ActionOpenHelp
	ActionReferral
)

// Result carries the resolved action plus the referral code when the
// payload matched share_<code> or ref_<code>.
type Result struct {
	Action Action
	Code   string
}

var literals = map[string]Action{
	"open-moments":     ActionOpenMoments,
	"moments":          ActionOpenMoments,
	"open-stats":       ActionOpenStats,
	"stats":            ActionOpenStats,
	"statistics":       ActionOpenStats,
	"open-settings":    ActionOpenSettings,
	"settings":         ActionOpenSettings,
	"start-dialog":     ActionStartDialog,
	"dialog":           ActionStartDialog,
	"start-add-moment": ActionStartAddMoment,
	"moment":           ActionStartAddMoment,
	"open-privacy":     ActionOpenPrivacy,
	"privacy":          ActionOpenPrivacy,
	"open-help":        ActionOpenHelp,
	"help":             ActionOpenHelp,
}

// Resolve matches a raw launch payload case-insensitively, ignoring
// surrounding whitespace.
func Resolve(raw string) Result {
	p := strings.ToLower(strings.TrimSpace(raw))
	if p == "" {
		return Result{Action: ActionNone}
	}
	if a, ok := literals[p]; ok {
		return Result{Action: a}
	}
	for _, prefix := range []string{"share_", "ref_"} {
		if code := strings.TrimPrefix(p, prefix); code != p && code != "" {
			return Result{Action: ActionReferral, Code: code}
		}
	}
	return Result{Action: ActionUnknown}
}
