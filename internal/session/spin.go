package session

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"physics-demo/internal/config"
	"physics-demo/internal/physics"
	"physics-demo/internal/scene"
)

// spinner turns a decorative visual at a constant rate. Only objects with no body
// behind them and that are not the kinematic target spin.
type spinner struct {
	target *scene.Transform
	rate   mgl64.Vec3 // radians per second
}

// turn rotates the visual by rate·elapsed about the rate's axis.
func (sp spinner) turn(elapsed float64) {
	angle := sp.rate.Len() * elapsed
	if angle == 0 {
		return
	}
	sp.target.Rotate(mgl64.QuatRotate(angle, sp.rate.Normalize()))
}

// spin advances every decorative visual by elapsed seconds of wall time.
func (s *Session) spin(elapsed float64) {
	if !(elapsed > 0) || math.IsInf(elapsed, 0) {
		return
	}
	for _, sp := range s.spinners {
		sp.turn(elapsed)
	}
}

// addSpinners registers the visuals that declare a spin. Call it after the kinematic
// target is attached so the target can be skipped.
func (s *Session) addSpinners(visuals []config.Visual) error {
	for _, v := range visuals {
		if v.Spin == ([3]float64{}) {
			continue
		}
		rate := vec(v.Spin)
		for _, c := range rate {
			if math.IsNaN(c) || math.IsInf(c, 0) {
				return fmt.Errorf("visual %q spin %v: %w", v.Name, v.Spin, physics.ErrInvalidParameter)
			}
		}
		obj, ok := s.Scene.ByName(v.Name)
		if !ok {
			return fmt.Errorf("visual %q: %w", v.Name, physics.ErrUnknownHandle)
		}
		if obj.ID == s.Target {
			continue
		}
		if _, bound := s.boundBody(obj.ID); bound {
			continue
		}
		s.spinners = append(s.spinners, spinner{
			target: obj.Transform,
			rate:   rate.Mul(math.Pi / 180),
		})
	}
	return nil
}

// boundBody returns the body driving obj, if any.
func (s *Session) boundBody(obj scene.ObjectID) (physics.BodyHandle, bool) {
	for _, b := range s.World.Bodies() {
		if id, ok := s.Bindings.Bound(b.Handle()); ok && id == obj {
			return b.Handle(), true
		}
	}
	return -1, false
}
