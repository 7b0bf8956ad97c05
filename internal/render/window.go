// Package render is the raylib front end: window, orbital camera, primitive drawing,
// keyboard mapping and debug overlays. It only reads scene transforms and feeds
// directional input into the session.
package render

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"physics-demo/internal/engineconfig"
	"physics-demo/internal/logger"
	"physics-demo/internal/session"
)

// Run opens the window and drives the frame loop until the window is closed. Each frame:
// keyboard events go to the kinematic controller, the session steps and syncs poses,
// then the scene and overlays are drawn.
func Run(sess *session.Session, prefs engineconfig.EnginePrefs, log *logger.Logger) {
	if prefs.Fullscreen {
		rl.SetConfigFlags(rl.FlagFullscreenMode | rl.FlagMsaa4xHint)
		rl.InitWindow(int32(rl.GetMonitorWidth(0)), int32(rl.GetMonitorHeight(0)), "physics demo")
	} else {
		rl.SetConfigFlags(rl.FlagMsaa4xHint | rl.FlagWindowResizable)
		rl.InitWindow(int32(prefs.WindowWidth), int32(prefs.WindowHeight), "physics demo")
	}
	defer rl.CloseWindow()
	rl.SetTargetFPS(int32(prefs.TargetFPS))

	view := NewView(prefs.GridVisible)
	defer view.Unload()
	overlay := NewOverlay(prefs)
	log.Logf("render: window open, target %d FPS", prefs.TargetFPS)

	for !rl.WindowShouldClose() {
		for _, dir := range DirectionsPressed() {
			if err := sess.Input(dir); err != nil {
				log.Logf("input %v: %v", dir, err)
			}
		}
		if rl.IsKeyPressed(rl.KeyG) {
			view.GridVisible = !view.GridVisible
		}
		if rl.IsKeyPressed(rl.KeyF3) {
			overlay.ShowContacts = !overlay.ShowContacts
		}
		view.Update()

		steps := sess.Frame(float64(rl.GetFrameTime()))

		rl.BeginDrawing()
		rl.ClearBackground(rl.NewColor(24, 26, 30, 255))
		view.Draw(sess, overlay.ShowContacts)
		overlay.Draw(sess, steps)
		rl.EndDrawing()
	}
	log.Logf("render: closed after %d frames, %.2fs simulated", sess.Frames(), sess.World.Time())
}
