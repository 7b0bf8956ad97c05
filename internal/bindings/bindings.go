// Package bindings copies rigid body poses onto their visual transforms once per frame.
package bindings

import (
	"errors"
	"fmt"

	"physics-demo/internal/physics"
	"physics-demo/internal/scene"
)

// ErrAlreadyBound is returned by Bind when the body already has a visual transform.
var ErrAlreadyBound = errors.New("body already bound")

// BodySource resolves body handles. *physics.World satisfies it.
type BodySource interface {
	Body(h physics.BodyHandle) (*physics.Body, error)
}

// ObjectSource resolves visual object IDs. *scene.Graph satisfies it.
type ObjectSource interface {
	Object(id scene.ObjectID) (*scene.Object, bool)
}

type binding struct {
	body   *physics.Body
	object scene.ObjectID
	target *scene.Transform
}

// SceneBindings owns the body-to-visual pairs. A body has at most one binding;
// a body without one is simulated but never drawn.
type SceneBindings struct {
	bodies  BodySource
	objects ObjectSource
	list    []binding
	byBody  map[physics.BodyHandle]int
}

// New returns an empty binding table over the given body and object stores.
func New(bodies BodySource, objects ObjectSource) *SceneBindings {
	return &SceneBindings{
		bodies:  bodies,
		objects: objects,
		byBody:  make(map[physics.BodyHandle]int),
	}
}

// Bind pairs a body with a visual object. Both handles must exist.
func (s *SceneBindings) Bind(body physics.BodyHandle, obj scene.ObjectID) error {
	b, err := s.bodies.Body(body)
	if err != nil {
		return fmt.Errorf("bind: %w", err)
	}
	o, ok := s.objects.Object(obj)
	if !ok {
		return fmt.Errorf("bind: object %d: %w", obj, physics.ErrUnknownHandle)
	}
	if _, ok := s.byBody[body]; ok {
		return fmt.Errorf("bind: body %d: %w", body, ErrAlreadyBound)
	}
	s.byBody[body] = len(s.list)
	s.list = append(s.list, binding{body: b, object: obj, target: o.Transform})
	return nil
}

// Bound returns the object a body is bound to.
func (s *SceneBindings) Bound(body physics.BodyHandle) (scene.ObjectID, bool) {
	i, ok := s.byBody[body]
	if !ok {
		return -1, false
	}
	return s.list[i].object, true
}

// Len returns the number of bindings.
func (s *SceneBindings) Len() int { return len(s.list) }

// SyncAll overwrites every bound transform with its body's current pose, in bind order.
// Call it after the world step and before drawing the frame.
func (s *SceneBindings) SyncAll() {
	for _, b := range s.list {
		pos, rot := b.body.Pose()
		b.target.SetPose(scene.Pose{Position: pos, Orientation: rot})
	}
}
