package state

// GameState represents the current state of the arena host
type GameState int

const (
	StateMenu GameState = iota
	StatePlaying
	StatePaused
	StateDead
)

// String returns the string representation of the game state
func (s GameState) String() string {
	switch s {
	case StateMenu:
		return "Menu"
	case StatePlaying:
		return "Playing"
	case StatePaused:
		return "Paused"
	case StateDead:
		return "Dead"
	default:
		return "Unknown"
	}
}

// Simulating reports whether the world advances in this state
func (s GameState) Simulating() bool {
	return s == StatePlaying
}
