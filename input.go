package main

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/mazechase/world"
)

const stickDeadzone = 0.4

type Input struct {
	keys map[world.Direction][]ebiten.Key
	pads map[world.Direction]ebiten.StandardGamepadButton
}

func NewInput() *Input {
	return &Input{
		keys: map[world.Direction][]ebiten.Key{
			world.Up:    {ebiten.KeyArrowUp, ebiten.KeyW},
			world.Down:  {ebiten.KeyArrowDown, ebiten.KeyS},
			world.Left:  {ebiten.KeyArrowLeft, ebiten.KeyA},
			world.Right: {ebiten.KeyArrowRight, ebiten.KeyD},
		},
		pads: map[world.Direction]ebiten.StandardGamepadButton{
			world.Up:    ebiten.StandardGamepadButtonLeftTop,
			world.Down:  ebiten.StandardGamepadButtonLeftBottom,
			world.Left:  ebiten.StandardGamepadButtonLeftLeft,
			world.Right: ebiten.StandardGamepadButtonLeftRight,
		},
	}
}

// Direction returns the direction held this frame, if any.
func (i *Input) Direction() (world.Direction, bool) {
	for _, d := range world.Directions {
		for _, k := range i.keys[d] {
			if ebiten.IsKeyPressed(k) {
				return d, true
			}
		}
	}

	if gamepads := ebiten.GamepadIDs(); len(gamepads) > 0 {
		id := gamepads[0]
		for _, d := range world.Directions {
			if ebiten.IsStandardGamepadButtonPressed(id, i.pads[d]) {
				return d, true
			}
		}

		x := ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisLeftStickHorizontal)
		y := ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisLeftStickVertical)
		if math.Hypot(x, y) > stickDeadzone {
			switch {
			case math.Abs(x) > math.Abs(y) && x < 0:
				return world.Left, true
			case math.Abs(x) > math.Abs(y):
				return world.Right, true
			case y < 0:
				return world.Up, true
			default:
				return world.Down, true
			}
		}
	}
	return world.None, false
}

func (i *Input) StartPressed() bool {
	if inpututil.IsKeyJustPressed(ebiten.KeyEnter) || inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		return true
	}
	for _, id := range ebiten.GamepadIDs() {
		if inpututil.IsStandardGamepadButtonJustPressed(id, ebiten.StandardGamepadButtonCenterRight) ||
			inpututil.IsStandardGamepadButtonJustPressed(id, ebiten.StandardGamepadButtonRightBottom) {
			return true
		}
	}
	return false
}

func (i *Input) PausePressed() bool {
	if inpututil.IsKeyJustPressed(ebiten.KeyP) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return true
	}
	for _, id := range ebiten.GamepadIDs() {
		if inpututil.IsStandardGamepadButtonJustPressed(id, ebiten.StandardGamepadButtonCenterLeft) {
			return true
		}
	}
	return false
}
