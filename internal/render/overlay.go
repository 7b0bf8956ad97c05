package render

import (
	"fmt"
	"runtime"

	rl "github.com/gen2brain/raylib-go/raylib"

	"physics-demo/internal/engineconfig"
	"physics-demo/internal/session"
)

const (
	overlayFontSize   = 20
	overlayPadding    = 12
	overlayLineHeight = overlayFontSize + 4
	// updateInterval: only refresh the text every N frames to reduce allocations.
	updateInterval = 30
)

// Overlay draws the FPS counter, memory use and simulation stats.
type Overlay struct {
	ShowFPS      bool
	ShowStats    bool
	ShowContacts bool
	frameCount   uint32
	fpsText      string
	statsText    []string
	memStats     runtime.MemStats
}

// NewOverlay returns an overlay configured from engine preferences.
func NewOverlay(p engineconfig.EnginePrefs) *Overlay {
	return &Overlay{ShowFPS: p.ShowFPS, ShowStats: p.ShowStats, ShowContacts: p.ShowContacts}
}

// Draw renders the enabled overlays. FPS goes top-right in green; stats go top-left.
// Text is only recomputed every updateInterval frames to limit allocations.
func (o *Overlay) Draw(sess *session.Session, steps int) {
	o.frameCount++
	update := o.frameCount%updateInterval == 0 || o.fpsText == ""

	if o.ShowFPS {
		if update {
			runtime.ReadMemStats(&o.memStats)
			o.fpsText = fmt.Sprintf("FPS: %d  Mem: %.2f MiB", rl.GetFPS(), float64(o.memStats.Alloc)/(1024*1024))
		}
		w := rl.MeasureText(o.fpsText, overlayFontSize)
		rl.DrawText(o.fpsText, int32(rl.GetScreenWidth())-w-overlayPadding, overlayPadding, overlayFontSize, rl.Green)
	}

	if o.ShowStats {
		if update || o.statsText == nil {
			o.statsText = o.stats(sess, steps)
		}
		y := int32(overlayPadding)
		for _, line := range o.statsText {
			rl.DrawText(line, overlayPadding, y, overlayFontSize, rl.RayWhite)
			y += overlayLineHeight
		}
	}
}

func (o *Overlay) stats(sess *session.Session, steps int) []string {
	lines := []string{
		fmt.Sprintf("t=%.2fs  steps=%d (+%d)  clock=%s", sess.World.Time(), sess.World.StepCount(), steps, sess.Clock().Mode()),
		fmt.Sprintf("bodies=%d  bound=%d  contacts=%d", sess.World.Len(), sess.Bindings.Len(), len(sess.World.Contacts())),
	}
	if obj, ok := sess.Scene.Object(sess.Target); ok {
		p := obj.Transform.Pose().Position
		lines = append(lines, fmt.Sprintf("%s: (%.0f, %.0f, %.0f)  arrows/WASD move, G grid, F3 contacts", obj.Name, p[0], p[1], p[2]))
	}
	return lines
}
