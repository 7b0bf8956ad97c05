package physics

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// ShapeKind tags the collision shape variant.
type ShapeKind uint8

const (
	KindSphere ShapeKind = iota
	KindBox
	KindPlane
)

func (k ShapeKind) String() string {
	switch k {
	case KindSphere:
		return "sphere"
	case KindBox:
		return "box"
	case KindPlane:
		return "plane"
	}
	return fmt.Sprintf("ShapeKind(%d)", uint8(k))
}

// Shape is an immutable collision shape. A body owns its shape exclusively.
type Shape interface {
	Kind() ShapeKind
	// inertia returns the diagonal of the body-frame inertia tensor for the given mass.
	inertia(mass float64) mgl64.Vec3
}

// Sphere is a ball centered on the body position.
type Sphere struct {
	radius float64
}

// NewSphere returns a sphere shape. radius must be positive and finite.
func NewSphere(radius float64) (*Sphere, error) {
	if !(radius > 0) || math.IsInf(radius, 0) {
		return nil, fmt.Errorf("sphere radius %v: %w", radius, ErrInvalidParameter)
	}
	return &Sphere{radius: radius}, nil
}

func (s *Sphere) Kind() ShapeKind { return KindSphere }

// Radius returns the sphere radius.
func (s *Sphere) Radius() float64 { return s.radius }

func (s *Sphere) inertia(mass float64) mgl64.Vec3 {
	i := 2.0 / 5.0 * mass * s.radius * s.radius
	return mgl64.Vec3{i, i, i}
}

// Box is an oriented box centered on the body position.
type Box struct {
	halfExtents mgl64.Vec3
}

// NewBox returns a box shape from its half extents. Every component must be positive and finite.
func NewBox(halfExtents mgl64.Vec3) (*Box, error) {
	for _, h := range halfExtents {
		if !(h > 0) || math.IsInf(h, 0) {
			return nil, fmt.Errorf("box half extents %v: %w", halfExtents, ErrInvalidParameter)
		}
	}
	return &Box{halfExtents: halfExtents}, nil
}

func (b *Box) Kind() ShapeKind { return KindBox }

// HalfExtents returns the box half extents along its local axes.
func (b *Box) HalfExtents() mgl64.Vec3 { return b.halfExtents }

func (b *Box) inertia(mass float64) mgl64.Vec3 {
	x, y, z := b.halfExtents.Elem()
	return mgl64.Vec3{
		mass / 3 * (y*y + z*z),
		mass / 3 * (x*x + z*z),
		mass / 3 * (x*x + y*y),
	}
}

// corners returns the eight world-space corners of a box posed at pos/rot.
func (b *Box) corners(pos mgl64.Vec3, rot mgl64.Quat) [8]mgl64.Vec3 {
	var out [8]mgl64.Vec3
	h := b.halfExtents
	for i := range out {
		local := mgl64.Vec3{-h[0], -h[1], -h[2]}
		if i&1 != 0 {
			local[0] = h[0]
		}
		if i&2 != 0 {
			local[1] = h[1]
		}
		if i&4 != 0 {
			local[2] = h[2]
		}
		out[i] = pos.Add(rot.Rotate(local))
	}
	return out
}

// Plane is an infinite static half-space whose surface passes through the body
// position, with its normal along the body's local +Y axis.
type Plane struct{}

// NewPlane returns a plane shape. Planes are only valid on static bodies.
func NewPlane() *Plane { return &Plane{} }

func (p *Plane) Kind() ShapeKind { return KindPlane }

func (p *Plane) inertia(float64) mgl64.Vec3 { return mgl64.Vec3{} }

// planeNormal returns the world-space normal of a plane with the given orientation.
func planeNormal(rot mgl64.Quat) mgl64.Vec3 {
	return rot.Rotate(mgl64.Vec3{0, 1, 0})
}
