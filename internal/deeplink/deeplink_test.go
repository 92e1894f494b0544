package deeplink

import "testing"

func TestResolveLiterals(t *testing.T) {
	cases := []struct {
		raw  string
		want Action
	}{
		{"moments", ActionOpenMoments},
		{"stats", ActionOpenStats},
		{"statistics", ActionOpenStats},
		{"  STATS  ", ActionOpenStats},
		{"settings", ActionOpenSettings},
		{"dialog", ActionStartDialog},
		{"moment", ActionStartAddMoment},
		{"start-add-moment", ActionStartAddMoment},
		{"start-dialog", ActionStartDialog},
		{"privacy", ActionOpenPrivacy},
		{"Help", ActionOpenHelp},
	}
	for _, c := range cases {
		if got := Resolve(c.raw); got.Action != c.want {
			t.Fatalf("Resolve(%q) = %v, want %v", c.raw, got.Action, c.want)
		}
	}
}

func TestResolveEmptyIsNone(t *testing.T) {
	for _, raw := range []string{"", "   ", "\t"} {
		if got := Resolve(raw); got.Action != ActionNone {
			t.Fatalf("Resolve(%q) = %v, want ActionNone", raw, got.Action)
		}
	}
}

func TestResolveReferral(t *testing.T) {
	got := Resolve("share_ABC123")
	if got.Action != ActionReferral || got.Code != "abc123" {
		t.Fatalf("share payload: got %+v", got)
	}
	got = Resolve("ref_Friend42")
	if got.Action != ActionReferral || got.Code != "friend42" {
		t.Fatalf("ref payload: got %+v", got)
	}
	// A bare prefix carries no code and is not a referral.
	if got := Resolve("share_"); got.Action != ActionUnknown {
		t.Fatalf("bare share_ prefix: got %+v", got)
	}
}

func TestResolveUnknownIsDistinctFromNone(t *testing.T) {
	got := Resolve("definitely-not-a-thing")
	if got.Action != ActionUnknown {
		t.Fatalf("unknown payload: got %v, want ActionUnknown", got.Action)
	}
}
