package physics

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// BodyHandle identifies a body within its World. Handles are stable for the life of the world.
type BodyHandle int

// BodyDesc describes a body to create. Zero values are valid defaults for everything
// except Shape: a zero Orientation means identity, zero velocities and damping mean none.
type BodyDesc struct {
	// Mass in kilograms. Zero makes the body static.
	Mass     float64
	Shape    Shape
	Material MaterialHandle

	Position        mgl64.Vec3
	Orientation     mgl64.Quat
	LinearVelocity  mgl64.Vec3
	AngularVelocity mgl64.Vec3

	// LinearDamping and AngularDamping are applied as v *= (1 - damping) every step.
	LinearDamping  float64
	AngularDamping float64
}

// Body is a rigid body. Static bodies (mass 0) are never integrated and have
// infinite effective mass in contacts.
type Body struct {
	handle   BodyHandle
	mass     float64
	invMass  float64
	shape    Shape
	material MaterialHandle

	// invInertia is the diagonal of the inverse inertia tensor in body space.
	invInertia mgl64.Vec3

	position        mgl64.Vec3
	orientation     mgl64.Quat
	linearVelocity  mgl64.Vec3
	angularVelocity mgl64.Vec3

	linearDamping  float64
	angularDamping float64
}

func newBody(h BodyHandle, d BodyDesc) *Body {
	b := &Body{
		handle:         h,
		mass:           d.Mass,
		shape:          d.Shape,
		material:       d.Material,
		position:       d.Position,
		orientation:    normalizeQuat(d.Orientation),
		linearDamping:  d.LinearDamping,
		angularDamping: d.AngularDamping,
	}
	if d.Mass > 0 {
		b.invMass = 1 / d.Mass
		b.invInertia = invertDiag(d.Shape.inertia(d.Mass))
		b.linearVelocity = d.LinearVelocity
		b.angularVelocity = d.AngularVelocity
	}
	return b
}

func (b *Body) Handle() BodyHandle       { return b.handle }
func (b *Body) Mass() float64            { return b.mass }
func (b *Body) Shape() Shape             { return b.shape }
func (b *Body) Material() MaterialHandle { return b.material }

// IsStatic reports whether the body has zero mass.
func (b *Body) IsStatic() bool { return b.invMass == 0 }

func (b *Body) Position() mgl64.Vec3        { return b.position }
func (b *Body) Orientation() mgl64.Quat     { return b.orientation }
func (b *Body) LinearVelocity() mgl64.Vec3  { return b.linearVelocity }
func (b *Body) AngularVelocity() mgl64.Vec3 { return b.angularVelocity }

// Pose returns position and orientation together.
func (b *Body) Pose() (mgl64.Vec3, mgl64.Quat) { return b.position, b.orientation }

// SetPose explicitly repositions the body. The orientation is normalized.
func (b *Body) SetPose(pos mgl64.Vec3, rot mgl64.Quat) {
	b.position = pos
	b.orientation = normalizeQuat(rot)
}

// SetLinearVelocity sets the linear velocity of a dynamic body. It is a no-op on static bodies.
func (b *Body) SetLinearVelocity(v mgl64.Vec3) {
	if !b.IsStatic() {
		b.linearVelocity = v
	}
}

// SetAngularVelocity sets the angular velocity of a dynamic body. It is a no-op on static bodies.
func (b *Body) SetAngularVelocity(w mgl64.Vec3) {
	if !b.IsStatic() {
		b.angularVelocity = w
	}
}

// integrate advances a dynamic body by h seconds: gravity, damping, then
// semi-implicit Euler on position and a normalized quaternion update.
func (b *Body) integrate(gravity mgl64.Vec3, h float64) {
	b.linearVelocity = b.linearVelocity.Add(gravity.Mul(h)).Mul(1 - b.linearDamping)
	b.angularVelocity = b.angularVelocity.Mul(1 - b.angularDamping)
	b.position = b.position.Add(b.linearVelocity.Mul(h))
	if b.angularVelocity.LenSqr() > 0 {
		spin := mgl64.Quat{V: b.angularVelocity}.Mul(b.orientation).Scale(0.5 * h)
		b.orientation = normalizeQuat(b.orientation.Add(spin))
	}
}

// invInertiaWorld returns R * diag(invInertia) * R^T.
func (b *Body) invInertiaWorld() mgl64.Mat3 {
	if b.IsStatic() {
		return mgl64.Mat3{}
	}
	r := b.orientation.Mat4().Mat3()
	return r.Mul3(mgl64.Diag3(b.invInertia)).Mul3(r.Transpose())
}

// velocityAt returns the velocity of the body material point at world position p.
func (b *Body) velocityAt(p mgl64.Vec3) mgl64.Vec3 {
	return b.linearVelocity.Add(b.angularVelocity.Cross(p.Sub(b.position)))
}

// applyImpulse applies impulse j at offset r from the center of mass.
func (b *Body) applyImpulse(j, r mgl64.Vec3) {
	if b.IsStatic() {
		return
	}
	b.linearVelocity = b.linearVelocity.Add(j.Mul(b.invMass))
	b.angularVelocity = b.angularVelocity.Add(b.invInertiaWorld().Mul3x1(r.Cross(j)))
}

func invertDiag(v mgl64.Vec3) mgl64.Vec3 {
	var out mgl64.Vec3
	for i, x := range v {
		if x > 0 {
			out[i] = 1 / x
		}
	}
	return out
}

// normalizeQuat returns a unit quaternion; the zero quaternion maps to identity.
func normalizeQuat(q mgl64.Quat) mgl64.Quat {
	l := q.Len()
	if l == 0 || math.IsNaN(l) || math.IsInf(l, 0) {
		return mgl64.QuatIdent()
	}
	return mgl64.Quat{W: q.W / l, V: q.V.Mul(1 / l)}
}
