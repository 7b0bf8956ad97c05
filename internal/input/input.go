// Package input turns discrete directional events into position edits on a
// kinematic target. The target is a visual transform, not a physics body.
package input

import (
	"fmt"
	"math"
	"strings"
	"sync/atomic"

	"github.com/go-gl/mathgl/mgl64"

	"physics-demo/internal/physics"
	"physics-demo/internal/scene"
)

// Direction is a symbolic input direction, already decoupled from raw key codes.
type Direction uint8

const (
	Up Direction = iota + 1
	Down
	Left
	Right
)

var directionNames = map[Direction]string{
	Up:    "up",
	Down:  "down",
	Left:  "left",
	Right: "right",
}

func (d Direction) String() string {
	if s, ok := directionNames[d]; ok {
		return s
	}
	return fmt.Sprintf("Direction(%d)", uint8(d))
}

// ParseDirection maps "up", "down", "left" or "right" (any case) to a Direction.
func ParseDirection(s string) (Direction, error) {
	want := strings.ToLower(strings.TrimSpace(s))
	for d, name := range directionNames {
		if name == want {
			return d, nil
		}
	}
	return 0, fmt.Errorf("direction %q: %w", s, physics.ErrInvalidParameter)
}

// axis returns the unit offset for d: left/right along X, up/down along Y.
func (d Direction) axis() (mgl64.Vec3, bool) {
	switch d {
	case Up:
		return mgl64.Vec3{0, 1, 0}, true
	case Down:
		return mgl64.Vec3{0, -1, 0}, true
	case Left:
		return mgl64.Vec3{-1, 0, 0}, true
	case Right:
		return mgl64.Vec3{1, 0, 0}, true
	}
	return mgl64.Vec3{}, false
}

// Controller applies one fixed, unclamped step to its target per input event.
// Events are discrete edits: there is no velocity and no collision response,
// and every OS key-repeat event produces its own step.
type Controller struct {
	target *scene.Transform
	step   float64
	moves  atomic.Int64
}

// NewController returns a controller that moves target by unitStep per event.
func NewController(target *scene.Transform, unitStep float64) (*Controller, error) {
	if target == nil {
		return nil, fmt.Errorf("kinematic controller: nil target: %w", physics.ErrInvalidParameter)
	}
	if !(unitStep > 0) || math.IsInf(unitStep, 0) {
		return nil, fmt.Errorf("kinematic controller: unit step %v: %w", unitStep, physics.ErrInvalidParameter)
	}
	return &Controller{target: target, step: unitStep}, nil
}

// OnDirectionalInput moves the target one unit step in dir. Safe to call from
// an event goroutine while the render loop reads the target.
func (c *Controller) OnDirectionalInput(dir Direction) error {
	axis, ok := dir.axis()
	if !ok {
		return fmt.Errorf("directional input %v: %w", dir, physics.ErrInvalidParameter)
	}
	c.target.Translate(axis.Mul(c.step))
	c.moves.Add(1)
	return nil
}

// Moves returns the number of applied input events.
func (c *Controller) Moves() int64 { return c.moves.Load() }

// UnitStep returns the distance moved per event.
func (c *Controller) UnitStep() float64 { return c.step }
