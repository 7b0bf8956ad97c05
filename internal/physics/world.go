package physics

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"golang.org/x/sync/errgroup"
)

// DefaultTimestep is the fixed tick used when no WithTimestep option is given.
const DefaultTimestep = 1.0 / 60.0

// parallelMinPairs is the pair count below which the narrow phase always runs serially.
const parallelMinPairs = 32

// World holds a set of bodies and advances them by one fixed tick per Step:
// gravity, damping, integration, then contact detection and resolution.
type World struct {
	gravity  mgl64.Vec3
	timestep float64
	substeps int
	workers  int

	bodies    []*Body
	materials *materials

	// pairs lists every body pair (i < j) that is not both static, in creation order.
	pairs    [][2]int
	slots    []contactSlot
	contacts []Contact

	steps uint64
}

type contactSlot struct {
	contact Contact
	hit     bool
}

// Option configures a World.
type Option func(*World)

// WithGravity sets the gravity vector (default (0, -9.81, 0), Y up).
func WithGravity(g mgl64.Vec3) Option {
	return func(w *World) { w.gravity = g }
}

// WithTimestep sets the fixed tick length in seconds.
func WithTimestep(dt float64) Option {
	return func(w *World) { w.timestep = dt }
}

// WithSubsteps splits each tick into n equal sub-iterations.
func WithSubsteps(n int) Option {
	return func(w *World) { w.substeps = n }
}

// WithDefaultContact sets the contact material used for pairs without an override.
func WithDefaultContact(c ContactMaterial) Option {
	return func(w *World) { w.materials.fallback = c }
}

// WithWorkers runs the narrow phase on up to n goroutines. Results do not depend on n.
func WithWorkers(n int) Option {
	return func(w *World) { w.workers = n }
}

// NewWorld returns an empty world. Options are validated here so Step never fails.
func NewWorld(opts ...Option) (*World, error) {
	w := &World{
		gravity:   mgl64.Vec3{0, -9.81, 0},
		timestep:  DefaultTimestep,
		substeps:  1,
		workers:   1,
		materials: newMaterials(DefaultContactMaterial),
	}
	for _, opt := range opts {
		opt(w)
	}
	if !(w.timestep > 0) || math.IsInf(w.timestep, 0) {
		return nil, fmt.Errorf("timestep %v: %w", w.timestep, ErrInvalidParameter)
	}
	if w.substeps < 1 {
		return nil, fmt.Errorf("substeps %d: %w", w.substeps, ErrInvalidParameter)
	}
	if w.workers < 1 {
		return nil, fmt.Errorf("workers %d: %w", w.workers, ErrInvalidParameter)
	}
	if err := finite(w.gravity); err != nil {
		return nil, fmt.Errorf("gravity: %w", err)
	}
	if err := w.materials.fallback.validate(); err != nil {
		return nil, fmt.Errorf("default contact: %w", err)
	}
	return w, nil
}

// Gravity returns the gravity vector.
func (w *World) Gravity() mgl64.Vec3 { return w.gravity }

// SetGravity sets the gravity vector (e.g. (0, -9.81, 0) for down in -Y).
func (w *World) SetGravity(g mgl64.Vec3) { w.gravity = g }

// Timestep returns the fixed tick length in seconds.
func (w *World) Timestep() float64 { return w.timestep }

// StepCount returns the number of completed Step calls.
func (w *World) StepCount() uint64 { return w.steps }

// Time returns the simulated time in seconds.
func (w *World) Time() float64 { return float64(w.steps) * w.timestep }

// CreateBody validates desc and appends a new body. Creation order is the iteration
// order of Bodies and of contact resolution.
func (w *World) CreateBody(desc BodyDesc) (BodyHandle, error) {
	if desc.Shape == nil {
		return -1, fmt.Errorf("create body: nil shape: %w", ErrInvalidParameter)
	}
	if !(desc.Mass >= 0) || math.IsInf(desc.Mass, 0) {
		return -1, fmt.Errorf("create body: mass %v: %w", desc.Mass, ErrInvalidParameter)
	}
	if !w.materials.known(desc.Material) {
		return -1, fmt.Errorf("create body: material %d: %w", desc.Material, ErrUnknownHandle)
	}
	for _, d := range []float64{desc.LinearDamping, desc.AngularDamping} {
		if !(d >= 0 && d < 1) {
			return -1, fmt.Errorf("create body: damping %v must be in [0,1): %w", d, ErrInvalidParameter)
		}
	}
	for _, v := range []mgl64.Vec3{desc.Position, desc.LinearVelocity, desc.AngularVelocity, desc.Orientation.V} {
		if err := finite(v); err != nil {
			return -1, fmt.Errorf("create body: %w", err)
		}
	}

	b := newBody(BodyHandle(len(w.bodies)), desc)
	for _, other := range w.bodies {
		if !pairSupported(b, other) {
			return -1, fmt.Errorf("create body: %s (static=%t) against body %d %s: %w",
				b.shape.Kind(), b.IsStatic(), other.handle, other.shape.Kind(), ErrUnsupportedContactPair)
		}
	}
	if b.shape.Kind() == KindPlane && !b.IsStatic() {
		return -1, fmt.Errorf("create body: plane with mass %v: %w", desc.Mass, ErrUnsupportedContactPair)
	}

	w.bodies = append(w.bodies, b)
	j := len(w.bodies) - 1
	for i := range j {
		if !(w.bodies[i].IsStatic() && b.IsStatic()) {
			w.pairs = append(w.pairs, [2]int{i, j})
		}
	}
	w.slots = make([]contactSlot, len(w.pairs))
	return b.handle, nil
}

// Body returns the body with handle h.
func (w *World) Body(h BodyHandle) (*Body, error) {
	if h < 0 || int(h) >= len(w.bodies) {
		return nil, fmt.Errorf("body %d: %w", h, ErrUnknownHandle)
	}
	return w.bodies[h], nil
}

// Bodies returns all bodies in creation order. The slice must not be modified.
func (w *World) Bodies() []*Body { return w.bodies }

// Len returns the number of bodies.
func (w *World) Len() int { return len(w.bodies) }

// Validate checks that every body pair that can touch has a contact handler.
func (w *World) Validate() error {
	for _, p := range w.pairs {
		a, b := w.bodies[p[0]], w.bodies[p[1]]
		if !pairSupported(a, b) {
			return fmt.Errorf("bodies %d (%s) and %d (%s): %w",
				a.handle, a.shape.Kind(), b.handle, b.shape.Kind(), ErrUnsupportedContactPair)
		}
	}
	return nil
}

// Contacts returns the contacts found in the most recent sub-iteration.
func (w *World) Contacts() []Contact {
	out := make([]Contact, len(w.contacts))
	copy(out, w.contacts)
	return out
}

// Step advances the simulation by exactly one fixed timestep, regardless of how much
// wall-clock time has passed since the previous call.
func (w *World) Step() {
	h := w.timestep / float64(w.substeps)
	for range w.substeps {
		w.substep(h)
	}
	w.steps++
}

func (w *World) substep(h float64) {
	for _, b := range w.bodies {
		if !b.IsStatic() {
			b.integrate(w.gravity, h)
		}
	}

	w.detect()

	restSpeed := 2 * w.gravity.Len() * h
	for _, c := range w.contacts {
		a, b := w.bodies[c.A], w.bodies[c.B]
		resolve(c, a, b, w.materials.lookup(a.material, b.material), restSpeed)
	}
}

// detect fills w.contacts from the current poses. Detection reads poses only, so
// chunks of pairs may run concurrently; contacts are always collected in pair order.
func (w *World) detect() {
	if w.workers > 1 && len(w.pairs) >= parallelMinPairs {
		chunk := (len(w.pairs) + w.workers - 1) / w.workers
		var g errgroup.Group
		for start := 0; start < len(w.pairs); start += chunk {
			end := min(start+chunk, len(w.pairs))
			g.Go(func() error {
				w.detectRange(start, end)
				return nil
			})
		}
		_ = g.Wait()
	} else {
		w.detectRange(0, len(w.pairs))
	}

	w.contacts = w.contacts[:0]
	for _, s := range w.slots {
		if s.hit {
			w.contacts = append(w.contacts, s.contact)
		}
	}
}

func (w *World) detectRange(start, end int) {
	for i := start; i < end; i++ {
		p := w.pairs[i]
		c, ok := collide(w.bodies[p[0]], w.bodies[p[1]])
		w.slots[i] = contactSlot{contact: c, hit: ok}
	}
}

func finite(v mgl64.Vec3) error {
	for _, x := range v {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return fmt.Errorf("non-finite vector %v: %w", v, ErrInvalidParameter)
		}
	}
	return nil
}
