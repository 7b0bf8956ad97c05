package scene

import (
	"sync"

	"github.com/go-gl/mathgl/mgl64"
)

// Transform is the mutable pose of a visual object. It is safe for concurrent use:
// input handlers may write to it while the render loop reads it.
type Transform struct {
	mu    sync.RWMutex
	pose  Pose
	scale mgl64.Vec3
}

// NewTransform returns a transform with the given pose and scale.
// A zero orientation is stored as identity.
func NewTransform(pose Pose, scale mgl64.Vec3) *Transform {
	if pose.Orientation == (mgl64.Quat{}) {
		pose.Orientation = mgl64.QuatIdent()
	}
	return &Transform{pose: pose, scale: scale}
}

// Pose returns a snapshot of the current pose.
func (t *Transform) Pose() Pose {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.pose
}

// SetPose overwrites position and orientation.
func (t *Transform) SetPose(p Pose) {
	t.mu.Lock()
	t.pose = p
	t.mu.Unlock()
}

// Translate moves the transform by d.
func (t *Transform) Translate(d mgl64.Vec3) {
	t.mu.Lock()
	t.pose.Position = t.pose.Position.Add(d)
	t.mu.Unlock()
}

// Rotate turns the transform by delta in its local frame.
func (t *Transform) Rotate(delta mgl64.Quat) {
	t.mu.Lock()
	t.pose.Orientation = t.pose.Orientation.Mul(delta).Normalize()
	t.mu.Unlock()
}

// Scale returns the render scale.
func (t *Transform) Scale() mgl64.Vec3 {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.scale
}
