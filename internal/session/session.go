package session

import "sync"

// Kind identifies what the user is currently doing.
type Kind int

const (
	Idle Kind = iota
	AddingMoment
	FreeDialog
	AwaitingSetting
)

// Setting names the profile field being edited while Kind == AwaitingSetting.
type Setting string

const (
	SettingHoursStart Setting = "hours_start"
	SettingHoursEnd   Setting = "hours_end"
	SettingInterval   Setting = "interval"
)

// State is one user's transient conversation state. The zero value is Idle.
type State struct {
	Kind    Kind
	Setting Setting
	Context map[string]string
}

// Store keeps per-user conversation state. Only the conversation engine
// writes to it; states are created lazily and Idle is the resting state.
type Store struct {
	mu     sync.RWMutex
	states map[int64]State
}

func NewStore() *Store {
	return &Store{states: make(map[int64]State)}
}

// Get returns the user's state, or Idle when none is recorded.
func (s *Store) Get(userID int64) State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.states[userID]
}

func (s *Store) Set(userID int64, st State) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.states[userID] = st
}

// Clear drops the user's state entirely, including any stale context.
func (s *Store) Clear(userID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.states, userID)
}
