package session

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"physics-demo/internal/config"
	"physics-demo/internal/physics"
)

func TestSpinTurnsDecorationOnly(t *testing.T) {
	cfg := config.Default()
	cfg.Visuals[0].Spin = [3]float64{30, 30, 0}
	s, err := Build(cfg, nil)
	require.NoError(t, err)
	still, err := Build(func() config.Scene {
		c := config.Default()
		c.Visuals[1].Spin = [3]float64{}
		return c
	}(), nil)
	require.NoError(t, err)
	require.Len(t, s.spinners, 1, "the kinematic target never spins")

	cube, _ := s.Scene.Object(s.Target)
	beacon, ok := s.Scene.ByName("beacon")
	require.True(t, ok)
	start := beacon.Transform.Pose()

	s.Frame(1.0 / 60)
	still.Frame(1.0 / 60)

	want := mgl64.QuatRotate(mgl64.DegToRad(-68.75)/60, mgl64.Vec3{0, 1, 0})
	got := beacon.Transform.Pose()
	assert.InDelta(t, want.W, got.Orientation.W, 1e-12)
	assert.InDelta(t, want.V[1], got.Orientation.V[1], 1e-12)
	assert.Equal(t, start.Position, got.Position)
	assert.Equal(t, mgl64.QuatIdent(), cube.Transform.Pose().Orientation)

	for range 120 {
		s.Frame(1.0 / 60)
		still.Frame(1.0 / 60)
	}
	for i, b := range s.World.Bodies() {
		other := still.World.Bodies()[i]
		assert.Equal(t, b.Position(), other.Position(), "body %d", i)
		assert.Equal(t, b.Orientation(), other.Orientation(), "body %d", i)
	}
	for _, b := range s.World.Bodies() {
		id, ok := s.Bindings.Bound(b.Handle())
		if !ok {
			continue
		}
		obj, _ := s.Scene.Object(id)
		_, rot := b.Pose()
		assert.Equal(t, rot, obj.Transform.Pose().Orientation, "bound object %s", obj.Name)
	}
}

func TestSpinIgnoresBadElapsed(t *testing.T) {
	s := buildDefault(t)
	beacon, _ := s.Scene.ByName("beacon")
	start := beacon.Transform.Pose()
	s.Frame(0)
	s.Frame(-1)
	s.Frame(math.Inf(1))
	s.Frame(math.NaN())
	assert.Equal(t, start, beacon.Transform.Pose())
}

func TestSpinRejectsNonFiniteRate(t *testing.T) {
	cfg := config.Default()
	cfg.Visuals[1].Spin = [3]float64{0, math.NaN(), 0}
	_, err := Build(cfg, nil)
	assert.ErrorIs(t, err, physics.ErrInvalidParameter)
}
