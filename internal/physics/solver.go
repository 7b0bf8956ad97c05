package physics

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// resolve applies the normal and friction impulses for one contact, then pushes
// the bodies apart along the normal in proportion to their inverse masses.
// restSpeed is the approach speed below which restitution is ignored.
func resolve(c Contact, a, b *Body, mat ContactMaterial, restSpeed float64) {
	n := c.Normal
	ra := c.Point.Sub(a.position)
	rb := c.Point.Sub(b.position)

	vRel := a.velocityAt(c.Point).Sub(b.velocityAt(c.Point))
	vn := vRel.Dot(n)
	if vn < 0 {
		e := mat.Restitution
		if -vn < restSpeed {
			e = 0
		}
		if k := effectiveMass(a, b, ra, rb, n); k > 0 {
			jn := -(1 + e) * vn / k
			a.applyImpulse(n.Mul(jn), ra)
			b.applyImpulse(n.Mul(-jn), rb)
			applyFriction(a, b, c.Point, ra, rb, n, mat.Friction*jn)
		}
	}

	total := a.invMass + b.invMass
	if total == 0 || c.Depth <= 0 {
		return
	}
	a.position = a.position.Add(n.Mul(c.Depth * a.invMass / total))
	b.position = b.position.Sub(n.Mul(c.Depth * b.invMass / total))
}

// applyFriction applies a Coulomb friction impulse clamped to maxImpulse.
func applyFriction(a, b *Body, p, ra, rb, n mgl64.Vec3, maxImpulse float64) {
	if maxImpulse <= 0 {
		return
	}
	vRel := a.velocityAt(p).Sub(b.velocityAt(p))
	vt := vRel.Sub(n.Mul(vRel.Dot(n)))
	speed := vt.Len()
	if speed < 1e-9 {
		return
	}
	t := vt.Mul(1 / speed)
	k := effectiveMass(a, b, ra, rb, t)
	if k <= 0 {
		return
	}
	jt := mgl64.Clamp(-speed/k, -maxImpulse, maxImpulse)
	a.applyImpulse(t.Mul(jt), ra)
	b.applyImpulse(t.Mul(-jt), rb)
}

// effectiveMass returns the inverse effective mass of the pair along dir.
func effectiveMass(a, b *Body, ra, rb, dir mgl64.Vec3) float64 {
	k := a.invMass + b.invMass
	k += angularTerm(a, ra, dir)
	k += angularTerm(b, rb, dir)
	if math.IsNaN(k) {
		return 0
	}
	return k
}

func angularTerm(b *Body, r, dir mgl64.Vec3) float64 {
	if b.IsStatic() {
		return 0
	}
	return b.invInertiaWorld().Mul3x1(r.Cross(dir)).Cross(r).Dot(dir)
}
