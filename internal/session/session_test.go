package session

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"physics-demo/internal/config"
	"physics-demo/internal/input"
	"physics-demo/internal/logger"
	"physics-demo/internal/physics"
	"physics-demo/internal/scene"
)

func buildDefault(t *testing.T) *Session {
	t.Helper()
	s, err := Build(config.Default(), logger.New(""))
	require.NoError(t, err)
	return s
}

func TestBuildDefaultScene(t *testing.T) {
	log := logger.New("")
	s, err := Build(config.Default(), log)
	require.NoError(t, err)

	assert.Equal(t, 4, s.World.Len())
	assert.Equal(t, 3, s.Bindings.Len(), "the bumper is an invisible collider")
	assert.Len(t, s.Scene.Objects(), 5)
	require.NotNil(t, s.Controller)
	cube, ok := s.Scene.ByName("cube")
	require.True(t, ok)
	assert.Equal(t, cube.ID, s.Target)
	assert.Equal(t, "ball", s.BodyName(1))
	assert.Equal(t, "body9", s.BodyName(9))
	require.Len(t, log.Lines(), 1)
	assert.Contains(t, log.Lines()[0], "4 bodies, 3 bindings")

	ball, err := s.World.Body(1)
	require.NoError(t, err)
	ground, err := s.World.Body(0)
	require.NoError(t, err)
	assert.Equal(t, physics.ContactMaterial{Friction: 0.3, Restitution: 0.9},
		s.World.ContactMaterial(ball.Material(), ground.Material()))
}

func TestFrameSyncsBoundObjects(t *testing.T) {
	s := buildDefault(t)
	for range 90 {
		assert.Equal(t, 1, s.Frame(1.0/144))
		for _, b := range s.World.Bodies() {
			id, ok := s.Bindings.Bound(b.Handle())
			if !ok {
				continue
			}
			obj, _ := s.Scene.Object(id)
			pos, rot := b.Pose()
			assert.Equal(t, scene.Pose{Position: pos, Orientation: rot}, obj.Transform.Pose())
		}
	}
	assert.Equal(t, uint64(90), s.Frames())
	assert.Equal(t, uint64(90), s.World.StepCount())
}

func TestInputDoesNotAffectSimulation(t *testing.T) {
	quiet := buildDefault(t)
	busy := buildDefault(t)
	dirs := []input.Direction{input.Left, input.Up, input.Right, input.Down, input.Left}
	for i := range 240 {
		quiet.Frame(0)
		for _, d := range dirs[:i%len(dirs)+1] {
			require.NoError(t, busy.Input(d))
		}
		busy.Frame(0)
	}
	for i, b := range quiet.World.Bodies() {
		other := busy.World.Bodies()[i]
		assert.Equal(t, b.Position(), other.Position(), "body %d", i)
		assert.Equal(t, b.Orientation(), other.Orientation(), "body %d", i)
		assert.Equal(t, b.LinearVelocity(), other.LinearVelocity(), "body %d", i)
	}
	assert.Positive(t, busy.Controller.Moves())
}

func TestInputMovesTargetOnly(t *testing.T) {
	s := buildDefault(t)
	cube, _ := s.Scene.Object(s.Target)
	before := cube.Transform.Pose().Position
	for range 5 {
		require.NoError(t, s.Input(input.Left))
	}
	s.Frame(0)
	after := cube.Transform.Pose().Position
	assert.Equal(t, before.Sub(mgl64.Vec3{5, 0, 0}), after)
}

func TestInputWithoutTarget(t *testing.T) {
	cfg := config.Default()
	cfg.Kinematic = config.Kinematic{}
	s, err := Build(cfg, nil)
	require.NoError(t, err)
	assert.ErrorIs(t, s.Input(input.Up), ErrNoKinematicTarget)
}

func TestBuildErrors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*config.Scene)
		want   error
	}{
		{"unknown body material", func(c *config.Scene) { c.Bodies[1].Material = "lava" }, physics.ErrUnknownHandle},
		{"unknown contact material", func(c *config.Scene) { c.Contacts[0].B = "lava" }, physics.ErrUnknownHandle},
		{"bouncy contact", func(c *config.Scene) { c.Contacts[0].Restitution = 1.2 }, physics.ErrInvalidParameter},
		{"negative mass", func(c *config.Scene) { m := -1.0; c.Bodies[1].Mass = &m }, physics.ErrInvalidParameter},
		{"unknown shape", func(c *config.Scene) { c.Bodies[1].Shape = "torus" }, physics.ErrInvalidParameter},
		{"zero radius", func(c *config.Scene) { c.Bodies[1].Radius = 0 }, physics.ErrInvalidParameter},
		{"dynamic plane", func(c *config.Scene) { m := 1.0; c.Bodies[0].Mass = &m }, physics.ErrUnsupportedContactPair},
		{"kinematic target is a body", func(c *config.Scene) { c.Kinematic.Object = "ball" }, physics.ErrInvalidParameter},
		{"missing kinematic target", func(c *config.Scene) { c.Kinematic.Object = "ghost" }, physics.ErrUnknownHandle},
		{"bad clock", func(c *config.Scene) { c.Clock.Mode = "vsync" }, physics.ErrInvalidParameter},
		{"zero timestep", func(c *config.Scene) { c.Physics.Timestep = -1 }, physics.ErrInvalidParameter},
		{"unnamed body", func(c *config.Scene) { c.Bodies[2].Name = "" }, physics.ErrInvalidParameter},
		{"duplicate visual", func(c *config.Scene) { c.Visuals[0].Name = "ball" }, scene.ErrDuplicateName},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.Default()
			tt.mutate(&cfg)
			_, err := Build(cfg, nil)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestFixedClock(t *testing.T) {
	frames := []float64{0.004, 0.02, 0.0166, 0.05, 0.5, -1, 0.01}
	run := func() []int {
		c, err := NewClock(Fixed, 1.0/60, 4)
		require.NoError(t, err)
		var out []int
		for _, f := range frames {
			out = append(out, c.Advance(f))
		}
		return out
	}
	got := run()
	assert.Equal(t, run(), got)
	assert.Equal(t, []int{0, 1, 1, 3, 4, 0, 0}, got)

	c, err := NewClock(Fixed, 1.0/60, 3)
	require.NoError(t, err)
	assert.Equal(t, 3, c.Advance(1e18), "huge frames are capped")
	assert.Equal(t, 1, c.Advance(1.0/60+1e-9), "backlog is dropped after the cap")

	c, err = NewClock(PerFrame, 1.0/60, 1)
	require.NoError(t, err)
	assert.Equal(t, 1, c.Advance(5))
	assert.Equal(t, 1, c.Advance(0))

	_, err = NewClock(Fixed, 0, 1)
	assert.ErrorIs(t, err, physics.ErrInvalidParameter)
	_, err = NewClock(Fixed, 0.01, 0)
	assert.ErrorIs(t, err, physics.ErrInvalidParameter)
	_, err = ParseClockMode("sometimes")
	assert.ErrorIs(t, err, physics.ErrInvalidParameter)
	assert.Equal(t, "fixed", Fixed.String())
}
