package session

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"

	"physics-demo/internal/bindings"
	"physics-demo/internal/config"
	"physics-demo/internal/input"
	"physics-demo/internal/logger"
	"physics-demo/internal/physics"
	"physics-demo/internal/scene"
)

// defaultMaterial is registered first so bodies without a material have one.
const defaultMaterial = "default"

// defaultPlaneSize is the drawn extent of a plane body when plane_size is unset.
const defaultPlaneSize = 200.0

// Build creates a world, scene graph, bindings and kinematic controller from a scene
// description. Every setup error is returned before the first frame.
func Build(cfg config.Scene, log *logger.Logger) (*Session, error) {
	w, err := physics.NewWorld(worldOptions(cfg.Physics)...)
	if err != nil {
		return nil, fmt.Errorf("world: %w", err)
	}

	mats := map[string]physics.MaterialHandle{
		defaultMaterial: w.RegisterMaterial(defaultMaterial),
	}
	for _, name := range cfg.Materials {
		if _, ok := mats[name]; ok {
			continue
		}
		mats[name] = w.RegisterMaterial(name)
	}
	material := func(name string) (physics.MaterialHandle, error) {
		if name == "" {
			name = defaultMaterial
		}
		h, ok := mats[name]
		if !ok {
			return 0, fmt.Errorf("material %q: %w", name, physics.ErrUnknownHandle)
		}
		return h, nil
	}
	for _, c := range cfg.Contacts {
		a, err := material(c.A)
		if err != nil {
			return nil, fmt.Errorf("contact %s/%s: %w", c.A, c.B, err)
		}
		b, err := material(c.B)
		if err != nil {
			return nil, fmt.Errorf("contact %s/%s: %w", c.A, c.B, err)
		}
		if err := w.RegisterContactOverride(a, b, c.Friction, c.Restitution); err != nil {
			return nil, err
		}
	}

	graph := scene.NewGraph()
	sb := bindings.New(w, graph)
	mode, err := ParseClockMode(cfg.Clock.Mode)
	if err != nil {
		return nil, err
	}
	maxSteps := cfg.Clock.MaxSteps
	if maxSteps == 0 {
		maxSteps = 5
	}
	clock, err := NewClock(mode, w.Timestep(), maxSteps)
	if err != nil {
		return nil, err
	}
	s := New(w, graph, sb, nil, clock)

	bodies, err := cfg.ResolvedBodies()
	if err != nil {
		return nil, err
	}
	for _, bc := range bodies {
		if err := s.addBody(bc, material); err != nil {
			return nil, fmt.Errorf("body %q: %w", bc.Name, err)
		}
	}

	for _, v := range cfg.Visuals {
		scale := vec(v.Scale)
		if scale == (mgl64.Vec3{}) {
			scale = mgl64.Vec3{1, 1, 1}
		}
		pose := scene.Pose{Position: vec(v.Position), Orientation: eulerDegrees(v.Rotation)}
		if _, err := graph.Add(v.Name, scene.Primitive(v.Primitive), v.Color, pose, scale); err != nil {
			return nil, fmt.Errorf("visual: %w", err)
		}
	}

	if cfg.Kinematic.Object != "" {
		if err := s.attachKinematic(cfg.Kinematic); err != nil {
			return nil, err
		}
	}

	if err := s.addSpinners(cfg.Visuals); err != nil {
		return nil, err
	}

	if err := w.Validate(); err != nil {
		return nil, err
	}
	if log != nil {
		log.Logf("session: %d bodies, %d bindings, %d visuals, clock %s, dt %.5fs",
			w.Len(), sb.Len(), len(graph.Objects()), clock.Mode(), w.Timestep())
	}
	return s, nil
}

func worldOptions(p config.Physics) []physics.Option {
	var opts []physics.Option
	if p.Gravity != nil {
		opts = append(opts, physics.WithGravity(vec(*p.Gravity)))
	}
	if p.Timestep != 0 {
		opts = append(opts, physics.WithTimestep(p.Timestep))
	}
	if p.Substeps != 0 {
		opts = append(opts, physics.WithSubsteps(p.Substeps))
	}
	if p.Workers != 0 {
		opts = append(opts, physics.WithWorkers(p.Workers))
	}
	if p.DefaultFriction != nil || p.DefaultRestitution != nil {
		c := physics.DefaultContactMaterial
		if p.DefaultFriction != nil {
			c.Friction = *p.DefaultFriction
		}
		if p.DefaultRestitution != nil {
			c.Restitution = *p.DefaultRestitution
		}
		opts = append(opts, physics.WithDefaultContact(c))
	}
	return opts
}

func (s *Session) addBody(bc config.Body, material func(string) (physics.MaterialHandle, error)) error {
	if bc.Name == "" {
		return fmt.Errorf("missing name: %w", physics.ErrInvalidParameter)
	}
	shape, prim, scale, err := shapeOf(bc)
	if err != nil {
		return err
	}
	mat, err := material(bc.Material)
	if err != nil {
		return err
	}
	desc := physics.BodyDesc{
		Shape:           shape,
		Material:        mat,
		Position:        vec(bc.Position),
		Orientation:     eulerDegrees(bc.Rotation),
		LinearVelocity:  vec(bc.Velocity),
		AngularVelocity: vec(bc.AngularVelocity),
	}
	if bc.Mass != nil {
		desc.Mass = *bc.Mass
	}
	if bc.LinearDamping != nil {
		desc.LinearDamping = *bc.LinearDamping
	}
	if bc.AngularDamping != nil {
		desc.AngularDamping = *bc.AngularDamping
	}
	h, err := s.World.CreateBody(desc)
	if err != nil {
		return err
	}
	s.bodyNames[h] = bc.Name

	if !bc.IsVisual() {
		return nil
	}
	b, err := s.World.Body(h)
	if err != nil {
		return err
	}
	pos, rot := b.Pose()
	id, err := s.Scene.Add(bc.Name, prim, bc.Color, scene.Pose{Position: pos, Orientation: rot}, scale)
	if err != nil {
		return err
	}
	return s.Bindings.Bind(h, id)
}

func (s *Session) attachKinematic(k config.Kinematic) error {
	obj, ok := s.Scene.ByName(k.Object)
	if !ok {
		return fmt.Errorf("kinematic object %q: %w", k.Object, physics.ErrUnknownHandle)
	}
	if h, bound := s.boundBody(obj.ID); bound {
		return fmt.Errorf("kinematic object %q is bound to body %q: %w",
			k.Object, s.BodyName(h), physics.ErrInvalidParameter)
	}
	step := k.UnitStep
	if step == 0 {
		step = 1
	}
	c, err := input.NewController(obj.Transform, step)
	if err != nil {
		return err
	}
	s.Controller = c
	s.Target = obj.ID
	return nil
}

// shapeOf builds the collision shape and the matching drawn primitive and scale.
// Sphere and box meshes are unit sized, so scale is the full diameter or edge length.
func shapeOf(bc config.Body) (physics.Shape, scene.Primitive, mgl64.Vec3, error) {
	switch bc.Shape {
	case "sphere":
		s, err := physics.NewSphere(bc.Radius)
		if err != nil {
			return nil, "", mgl64.Vec3{}, err
		}
		d := 2 * bc.Radius
		return s, scene.PrimitiveSphere, mgl64.Vec3{d, d, d}, nil
	case "box":
		b, err := physics.NewBox(vec(bc.HalfExtents))
		if err != nil {
			return nil, "", mgl64.Vec3{}, err
		}
		return b, scene.PrimitiveBox, vec(bc.HalfExtents).Mul(2), nil
	case "plane":
		size := bc.PlaneSize
		if size <= 0 {
			size = defaultPlaneSize
		}
		return physics.NewPlane(), scene.PrimitivePlane, mgl64.Vec3{size, 1, size}, nil
	}
	return nil, "", mgl64.Vec3{}, fmt.Errorf("shape %q: %w", bc.Shape, physics.ErrInvalidParameter)
}

func vec(a [3]float64) mgl64.Vec3 { return mgl64.Vec3(a) }

func eulerDegrees(deg [3]float64) mgl64.Quat {
	if deg == ([3]float64{}) {
		return mgl64.QuatIdent()
	}
	return mgl64.AnglesToQuat(
		mgl64.DegToRad(deg[0]), mgl64.DegToRad(deg[1]), mgl64.DegToRad(deg[2]), mgl64.XYZ)
}
