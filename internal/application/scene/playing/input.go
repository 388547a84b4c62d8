package playing

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/younwookim/petalarena/internal/application/system"
)

// swapKeys maps the number row to loadout indices 0-9
var swapKeys = [...]ebiten.Key{
	ebiten.KeyDigit1, ebiten.KeyDigit2, ebiten.KeyDigit3, ebiten.KeyDigit4, ebiten.KeyDigit5,
	ebiten.KeyDigit6, ebiten.KeyDigit7, ebiten.KeyDigit8, ebiten.KeyDigit9, ebiten.KeyDigit0,
}

// expandButtons hold the petals out while pressed
var expandButtons = [...]ebiten.MouseButton{ebiten.MouseButtonLeft, ebiten.MouseButtonRight}

// expandHeld reports whether the expand key or any expand button is down
func expandHeld(key bool, pressed func(ebiten.MouseButton) bool) bool {
	if key {
		return true
	}
	for _, b := range expandButtons {
		if pressed(b) {
			return true
		}
	}
	return false
}

func anyPressed(keys ...ebiten.Key) bool {
	for _, k := range keys {
		if ebiten.IsKeyPressed(k) {
			return true
		}
	}
	return false
}

// readControls polls ebiten for the current frame
func readControls(mode system.ControlMode) Controls {
	mx, my := ebiten.CursorPosition()

	in := system.Idle()
	in.Mode = mode
	in.Left = anyPressed(ebiten.KeyA, ebiten.KeyArrowLeft)
	in.Right = anyPressed(ebiten.KeyD, ebiten.KeyArrowRight)
	in.Up = anyPressed(ebiten.KeyW, ebiten.KeyArrowUp)
	in.Down = anyPressed(ebiten.KeyS, ebiten.KeyArrowDown)
	in.PointerX = float64(mx)
	in.PointerY = float64(my)
	in.HasPointer = true
	in.Expand = expandHeld(ebiten.IsKeyPressed(ebiten.KeySpace), ebiten.IsMouseButtonPressed)
	in.Attack = inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft)
	in.Use = inpututil.IsKeyJustPressed(ebiten.KeyE)

	for i, k := range swapKeys {
		if inpututil.IsKeyJustPressed(k) {
			in.SwapSlot = i
			break
		}
	}

	return Controls{
		InputState: in,
		Pause:      inpututil.IsKeyJustPressed(ebiten.KeyEscape),
		Respawn:    inpututil.IsKeyJustPressed(ebiten.KeyR) || inpututil.IsKeyJustPressed(ebiten.KeyEnter),
		ToggleMode: inpututil.IsKeyJustPressed(ebiten.KeyM),
		Craft:      inpututil.IsKeyJustPressed(ebiten.KeyC),
		Quit:       inpututil.IsKeyJustPressed(ebiten.KeyQ),
	}
}
