// Package session threads the physics world, the scene bindings and the kinematic
// controller through the frame loop.
package session

import (
	"errors"
	"fmt"

	"physics-demo/internal/bindings"
	"physics-demo/internal/input"
	"physics-demo/internal/physics"
	"physics-demo/internal/scene"
)

// ErrNoKinematicTarget is returned by Input when the scene has no kinematic target.
var ErrNoKinematicTarget = errors.New("no kinematic target")

// Session owns everything one running demo needs. Frame must be called from a single
// goroutine; Input may be called from any goroutine.
type Session struct {
	World      *physics.World
	Scene      *scene.Graph
	Bindings   *bindings.SceneBindings
	Controller *input.Controller
	Target     scene.ObjectID

	clock     *Clock
	bodyNames map[physics.BodyHandle]string
	spinners  []spinner
	frames    uint64
}

// New assembles a session from already-built parts. controller may be nil.
func New(w *physics.World, g *scene.Graph, sb *bindings.SceneBindings, controller *input.Controller, clock *Clock) *Session {
	return &Session{
		World:      w,
		Scene:      g,
		Bindings:   sb,
		Controller: controller,
		Target:     -1,
		clock:      clock,
		bodyNames:  make(map[physics.BodyHandle]string),
	}
}

// Frame advances the world by the steps the clock grants for elapsed seconds,
// then copies body poses onto their visuals and turns the spinning decorations. Call it once per rendered frame,
// before drawing. It returns the number of steps taken.
func (s *Session) Frame(elapsed float64) int {
	n := s.clock.Advance(elapsed)
	for range n {
		s.World.Step()
	}
	s.Bindings.SyncAll()
	s.spin(elapsed)
	s.frames++
	return n
}

// Input forwards a directional event to the kinematic controller.
func (s *Session) Input(dir input.Direction) error {
	if s.Controller == nil {
		return fmt.Errorf("input %v: %w", dir, ErrNoKinematicTarget)
	}
	return s.Controller.OnDirectionalInput(dir)
}

// Frames returns the number of Frame calls so far.
func (s *Session) Frames() uint64 { return s.frames }

// Clock returns the frame clock.
func (s *Session) Clock() *Clock { return s.clock }

// BodyName returns the name a body was declared with, or its handle number.
func (s *Session) BodyName(h physics.BodyHandle) string {
	if n, ok := s.bodyNames[h]; ok {
		return n
	}
	return fmt.Sprintf("body%d", h)
}
