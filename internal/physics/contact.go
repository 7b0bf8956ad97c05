package physics

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Contact is a single contact between bodies A and B found by the narrow phase.
type Contact struct {
	A, B BodyHandle
	// Normal is the unit contact normal pointing from B toward A.
	Normal mgl64.Vec3
	// Point is the world-space contact point.
	Point mgl64.Vec3
	// Depth is the penetration depth along Normal.
	Depth float64
}

// collideFunc tests a against b. The returned normal points from b toward a.
type collideFunc func(a, b *Body) (Contact, bool)

type kindPair struct {
	a, b ShapeKind
}

// narrowPhase holds one handler per supported ordered shape pair.
// The reverse order is served by swapping the bodies and flipping the normal.
var narrowPhase = map[kindPair]collideFunc{
	{KindSphere, KindSphere}: collideSphereSphere,
	{KindSphere, KindPlane}:  collideSpherePlane,
	{KindBox, KindPlane}:     collideBoxPlane,
	{KindSphere, KindBox}:    collideSphereBox,
	{KindBox, KindBox}:       collideBoxBox,
}

// pairSupported reports whether the solver can resolve contacts between a and b.
// Two static bodies never collide, so any combination of them is allowed.
// Planes only act as static colliders.
func pairSupported(a, b *Body) bool {
	if a.IsStatic() && b.IsStatic() {
		return true
	}
	if (a.shape.Kind() == KindPlane && !a.IsStatic()) || (b.shape.Kind() == KindPlane && !b.IsStatic()) {
		return false
	}
	fn, _ := handlerFor(a.shape.Kind(), b.shape.Kind())
	return fn != nil
}

func handlerFor(a, b ShapeKind) (fn collideFunc, swapped bool) {
	if fn, ok := narrowPhase[kindPair{a, b}]; ok {
		return fn, false
	}
	if fn, ok := narrowPhase[kindPair{b, a}]; ok {
		return fn, true
	}
	return nil, false
}

// collide runs the narrow phase for a supported pair.
func collide(a, b *Body) (Contact, bool) {
	fn, swapped := handlerFor(a.shape.Kind(), b.shape.Kind())
	if fn == nil {
		return Contact{}, false
	}
	if !swapped {
		c, ok := fn(a, b)
		c.A, c.B = a.handle, b.handle
		return c, ok
	}
	c, ok := fn(b, a)
	c.A, c.B = a.handle, b.handle
	c.Normal = c.Normal.Mul(-1)
	return c, ok
}

var up = mgl64.Vec3{0, 1, 0}

func collideSphereSphere(a, b *Body) (Contact, bool) {
	ra := a.shape.(*Sphere).radius
	rb := b.shape.(*Sphere).radius
	d := a.position.Sub(b.position)
	dist := d.Len()
	if dist >= ra+rb {
		return Contact{}, false
	}
	n := up
	if dist > 0 {
		n = d.Mul(1 / dist)
	}
	return Contact{
		Normal: n,
		Point:  a.position.Sub(n.Mul(ra)),
		Depth:  ra + rb - dist,
	}, true
}

func collideSpherePlane(a, b *Body) (Contact, bool) {
	r := a.shape.(*Sphere).radius
	n := planeNormal(b.orientation)
	dist := a.position.Sub(b.position).Dot(n)
	if dist >= r {
		return Contact{}, false
	}
	return Contact{
		Normal: n,
		Point:  a.position.Sub(n.Mul(r)),
		Depth:  r - dist,
	}, true
}

// collideBoxPlane uses the average of the corners below the plane as the contact point.
func collideBoxPlane(a, b *Body) (Contact, bool) {
	n := planeNormal(b.orientation)
	var (
		sum   mgl64.Vec3
		count int
		depth float64
	)
	for _, c := range a.shape.(*Box).corners(a.position, a.orientation) {
		dist := c.Sub(b.position).Dot(n)
		if dist >= 0 {
			continue
		}
		sum = sum.Add(c)
		count++
		depth = math.Max(depth, -dist)
	}
	if count == 0 {
		return Contact{}, false
	}
	return Contact{
		Normal: n,
		Point:  sum.Mul(1 / float64(count)),
		Depth:  depth,
	}, true
}

func collideSphereBox(a, b *Body) (Contact, bool) {
	r := a.shape.(*Sphere).radius
	h := b.shape.(*Box).halfExtents
	inv := b.orientation.Conjugate()
	local := inv.Rotate(a.position.Sub(b.position))

	var closest mgl64.Vec3
	inside := true
	for i := range 3 {
		closest[i] = mgl64.Clamp(local[i], -h[i], h[i])
		if closest[i] != local[i] {
			inside = false
		}
	}

	if !inside {
		d := local.Sub(closest)
		dist := d.Len()
		if dist >= r {
			return Contact{}, false
		}
		return Contact{
			Normal: b.orientation.Rotate(d.Mul(1 / dist)),
			Point:  b.position.Add(b.orientation.Rotate(closest)),
			Depth:  r - dist,
		}, true
	}

	// Center inside the box: push out through the nearest face.
	axis, gap := 0, math.Inf(1)
	for i := range 3 {
		if g := h[i] - math.Abs(local[i]); g < gap {
			axis, gap = i, g
		}
	}
	var nLocal mgl64.Vec3
	nLocal[axis] = 1
	if local[axis] < 0 {
		nLocal[axis] = -1
	}
	face := local
	face[axis] = nLocal[axis] * h[axis]
	return Contact{
		Normal: b.orientation.Rotate(nLocal),
		Point:  b.position.Add(b.orientation.Rotate(face)),
		Depth:  r + gap,
	}, true
}

// collideBoxBox is a separating axis test over the 15 candidate axes of two boxes.
func collideBoxBox(a, b *Body) (Contact, bool) {
	ba, bb := a.shape.(*Box), b.shape.(*Box)
	axesA := boxAxes(a.orientation)
	axesB := boxAxes(b.orientation)
	l := b.position.Sub(a.position)

	candidates := make([]mgl64.Vec3, 0, 15)
	candidates = append(candidates, axesA[:]...)
	candidates = append(candidates, axesB[:]...)
	for i := range 3 {
		for j := range 3 {
			c := axesA[i].Cross(axesB[j])
			if c.LenSqr() > 1e-8 {
				candidates = append(candidates, c.Normalize())
			}
		}
	}

	minOverlap := math.Inf(1)
	var normal mgl64.Vec3
	for _, axis := range candidates {
		overlap := projectRadius(ba.halfExtents, axesA, axis) +
			projectRadius(bb.halfExtents, axesB, axis) -
			math.Abs(l.Dot(axis))
		if overlap <= 0 {
			return Contact{}, false
		}
		if overlap < minOverlap {
			minOverlap, normal = overlap, axis
		}
	}
	if l.Dot(normal) > 0 {
		normal = normal.Mul(-1)
	}

	var (
		sum   mgl64.Vec3
		count int
	)
	for _, p := range ba.corners(a.position, a.orientation) {
		if insideBox(p, b.position, axesB, bb.halfExtents) {
			sum, count = sum.Add(p), count+1
		}
	}
	for _, p := range bb.corners(b.position, b.orientation) {
		if insideBox(p, a.position, axesA, ba.halfExtents) {
			sum, count = sum.Add(p), count+1
		}
	}
	point := a.position.Add(b.position).Mul(0.5)
	if count > 0 {
		point = sum.Mul(1 / float64(count))
	}
	return Contact{Normal: normal, Point: point, Depth: minOverlap}, true
}

func boxAxes(rot mgl64.Quat) [3]mgl64.Vec3 {
	return [3]mgl64.Vec3{
		rot.Rotate(mgl64.Vec3{1, 0, 0}),
		rot.Rotate(mgl64.Vec3{0, 1, 0}),
		rot.Rotate(mgl64.Vec3{0, 0, 1}),
	}
}

func projectRadius(h mgl64.Vec3, axes [3]mgl64.Vec3, axis mgl64.Vec3) float64 {
	var r float64
	for i := range 3 {
		r += math.Abs(axes[i].Dot(axis)) * h[i]
	}
	return r
}

const insideTolerance = 1e-6

func insideBox(p, center mgl64.Vec3, axes [3]mgl64.Vec3, h mgl64.Vec3) bool {
	d := p.Sub(center)
	for i := range 3 {
		if math.Abs(d.Dot(axes[i])) > h[i]+insideTolerance {
			return false
		}
	}
	return true
}
