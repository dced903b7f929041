package state

import "slices"

// Session is the client's record of where the player is and what they hold.
// It is owned by a single goroutine.
type Session struct {
	screen    *Screen
	gameState *GameState
}

func NewSession() *Session {
	return &Session{gameState: NewGameState()}
}

// Screen returns the current screen, or nil before the first one arrives.
func (s *Session) Screen() *Screen {
	return s.screen
}

// ScreenID returns the current screen id, or "" if there is none.
func (s *Session) ScreenID() string {
	if s.screen == nil {
		return ""
	}
	return s.screen.ID
}

func (s *Session) HasScreen() bool {
	return s.screen != nil
}

// SetScreen replaces the current screen. A nil screen is ignored.
func (s *Session) SetScreen(screen *Screen) {
	if screen == nil {
		return
	}
	s.screen = screen
}

func (s *Session) GameState() *GameState {
	return s.gameState
}

// SetGameState replaces the held state. A nil state is ignored.
func (s *Session) SetGameState(gs *GameState) {
	if gs == nil {
		return
	}
	s.gameState = gs
}

// Inventory returns a copy of the held inventory.
func (s *Session) Inventory() []string {
	return slices.Clone(s.gameState.Inventory)
}

// Snapshot is a read-only copy of the session for display.
type Snapshot struct {
	ScreenID  string
	Inventory []string
}

func (s *Session) Snapshot() Snapshot {
	return Snapshot{
		ScreenID:  s.ScreenID(),
		Inventory: s.Inventory(),
	}
}
