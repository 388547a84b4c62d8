package system

import (
	"fmt"
	"math"
	"strings"

	"github.com/younwookim/petalarena/internal/domain/entity"
)

// ControlMode selects how the player is steered
type ControlMode int

const (
	ControlKeyboard ControlMode = iota
	ControlPointer
)

// String returns the string representation of the control mode
func (m ControlMode) String() string {
	switch m {
	case ControlKeyboard:
		return "keyboard"
	case ControlPointer:
		return "pointer"
	default:
		return "unknown"
	}
}

// ParseControlMode parses "keyboard" or "pointer"
func ParseControlMode(s string) (ControlMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "keyboard", "keys":
		return ControlKeyboard, nil
	case "pointer", "mouse":
		return ControlPointer, nil
	default:
		return ControlKeyboard, fmt.Errorf("unknown control mode %q", s)
	}
}

// NoSlot marks InputState.SwapSlot as unset
const NoSlot = -1

// InputState holds the current input state
type InputState struct {
	Left  bool
	Right bool
	Up    bool
	Down  bool

	PointerX float64
	PointerY float64
	// HasPointer is set when PointerX/PointerY carry a real cursor position
	HasPointer bool

	// Expand is held to push the petals out
	Expand bool
	// Attack is true on the frame the pointer is clicked
	Attack bool
	// Use is true on the frame the use key is pressed
	Use bool
	// SwapSlot is the row index to swap this frame, or NoSlot
	SwapSlot int

	Mode ControlMode
}

// Idle returns an input state with nothing pressed
func Idle() InputState {
	return InputState{SwapSlot: NoSlot}
}

// pointerDeadzone is the distance under which pointer steering stops
const pointerDeadzone = 2

// InputSystem moves the player from input
type InputSystem struct{}

// NewInputSystem creates a new input system
func NewInputSystem() *InputSystem {
	return &InputSystem{}
}

// UpdatePlayer steers the player, applies knockback drift and keeps it in the arena
func (s *InputSystem) UpdatePlayer(p *entity.Player, input InputState, arena entity.Arena) {
	switch input.Mode {
	case ControlPointer:
		s.followPointer(p, input)
	default:
		s.handleKeys(p, input)
	}

	drift(&p.X, &p.Y, &p.VX, &p.VY)
	p.X, p.Y = arena.Clamp(p.X, p.Y, p.Radius)
}

// handleKeys moves each axis independently, so diagonals are faster
func (s *InputSystem) handleKeys(p *entity.Player, input InputState) {
	if input.Left {
		p.X -= p.Speed
	}
	if input.Right {
		p.X += p.Speed
	}
	if input.Up {
		p.Y -= p.Speed
	}
	if input.Down {
		p.Y += p.Speed
	}
}

func (s *InputSystem) followPointer(p *entity.Player, input InputState) {
	dx, dy := input.PointerX-p.X, input.PointerY-p.Y
	dist := math.Hypot(dx, dy)
	if dist <= pointerDeadzone {
		return
	}
	step := math.Min(p.Speed, dist)
	p.X += dx / dist * step
	p.Y += dy / dist * step
}
