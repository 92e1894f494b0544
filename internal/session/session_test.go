package session

import "testing"

func TestGetDefaultsToIdle(t *testing.T) {
	s := NewStore()
	st := s.Get(1)
	if st.Kind != Idle {
		t.Fatalf("expected Idle for unknown user, got %v", st.Kind)
	}
}

func TestSetGetClear(t *testing.T) {
	s := NewStore()
	userA := int64(1)
	userB := int64(2)

	s.Set(userA, State{Kind: AwaitingSetting, Setting: SettingInterval})
	s.Set(userB, State{Kind: FreeDialog})

	if got := s.Get(userA); got.Kind != AwaitingSetting || got.Setting != SettingInterval {
		t.Fatalf("unexpected state for A: %+v", got)
	}
	if got := s.Get(userB); got.Kind != FreeDialog {
		t.Fatalf("unexpected state for B: %+v", got)
	}

	s.Clear(userA)
	if got := s.Get(userA); got.Kind != Idle {
		t.Fatalf("clear did not reset A to Idle: %+v", got)
	}
	if got := s.Get(userB); got.Kind != FreeDialog {
		t.Fatalf("clear of A must not affect B: %+v", got)
	}
}

func TestSetOverwritesPreviousState(t *testing.T) {
	s := NewStore()
	s.Set(7, State{Kind: AddingMoment, Context: map[string]string{"origin": "menu"}})
	s.Set(7, State{Kind: Idle})
	if got := s.Get(7); got.Kind != Idle || got.Context != nil {
		t.Fatalf("overwrite must drop prior context: %+v", got)
	}
}
