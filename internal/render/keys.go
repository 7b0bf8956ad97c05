package render

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"physics-demo/internal/input"
)

// keymap maps raw key codes to directions. Arrow keys and WASD both work.
var keymap = []struct {
	key int32
	dir input.Direction
}{
	{rl.KeyUp, input.Up},
	{rl.KeyW, input.Up},
	{rl.KeyDown, input.Down},
	{rl.KeyS, input.Down},
	{rl.KeyLeft, input.Left},
	{rl.KeyA, input.Left},
	{rl.KeyRight, input.Right},
	{rl.KeyD, input.Right},
}

// DirectionsPressed returns one direction per key press this frame. OS key-repeat
// events count as presses, so holding a key keeps producing steps.
func DirectionsPressed() []input.Direction {
	var out []input.Direction
	for _, k := range keymap {
		if rl.IsKeyPressed(k.key) || rl.IsKeyPressedRepeat(k.key) {
			out = append(out, k.dir)
		}
	}
	return out
}
