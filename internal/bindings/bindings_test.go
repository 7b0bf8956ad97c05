package bindings

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"physics-demo/internal/physics"
	"physics-demo/internal/scene"
)

type fixture struct {
	world  *physics.World
	graph  *scene.Graph
	ball   physics.BodyHandle
	hidden physics.BodyHandle
	ground physics.BodyHandle
	ballID scene.ObjectID
	cubeID scene.ObjectID
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	w, err := physics.NewWorld()
	require.NoError(t, err)
	m := w.RegisterMaterial("default")
	s, err := physics.NewSphere(1)
	require.NoError(t, err)

	var f fixture
	f.world = w
	f.ball, err = w.CreateBody(physics.BodyDesc{Mass: 1, Shape: s, Material: m, Position: mgl64.Vec3{0, 5, 0}, AngularVelocity: mgl64.Vec3{0, 2, 0}})
	require.NoError(t, err)
	f.hidden, err = w.CreateBody(physics.BodyDesc{Mass: 1, Shape: s, Material: m, Position: mgl64.Vec3{10, 5, 0}})
	require.NoError(t, err)
	f.ground, err = w.CreateBody(physics.BodyDesc{Shape: physics.NewPlane(), Material: m})
	require.NoError(t, err)

	f.graph = scene.NewGraph()
	f.ballID, err = f.graph.Add("ball", scene.PrimitiveSphere, "", scene.Pose{}, mgl64.Vec3{2, 2, 2})
	require.NoError(t, err)
	f.cubeID, err = f.graph.Add("cube", scene.PrimitiveBox, "", scene.Pose{Position: mgl64.Vec3{-3, 1, 0}}, mgl64.Vec3{2, 2, 2})
	require.NoError(t, err)
	return f
}

func TestSyncAllCopiesPose(t *testing.T) {
	f := newFixture(t)
	sb := New(f.world, f.graph)
	require.NoError(t, sb.Bind(f.ball, f.ballID))

	for range 30 {
		f.world.Step()
		sb.SyncAll()
		body, err := f.world.Body(f.ball)
		require.NoError(t, err)
		obj, _ := f.graph.Object(f.ballID)
		pos, rot := body.Pose()
		assert.Equal(t, scene.Pose{Position: pos, Orientation: rot}, obj.Transform.Pose())
	}

	cube, _ := f.graph.Object(f.cubeID)
	assert.Equal(t, mgl64.Vec3{-3, 1, 0}, cube.Transform.Pose().Position, "unbound objects are left alone")
}

func TestSyncAllOverwritesExternalEdits(t *testing.T) {
	f := newFixture(t)
	sb := New(f.world, f.graph)
	require.NoError(t, sb.Bind(f.ball, f.ballID))
	obj, _ := f.graph.Object(f.ballID)
	obj.Transform.Translate(mgl64.Vec3{100, 0, 0})
	sb.SyncAll()
	assert.Equal(t, mgl64.Vec3{0, 5, 0}, obj.Transform.Pose().Position)
}

func TestBindErrors(t *testing.T) {
	f := newFixture(t)
	sb := New(f.world, f.graph)

	err := sb.Bind(99, f.ballID)
	assert.ErrorIs(t, err, physics.ErrUnknownHandle)
	err = sb.Bind(f.ball, 99)
	assert.ErrorIs(t, err, physics.ErrUnknownHandle)

	require.NoError(t, sb.Bind(f.ball, f.ballID))
	err = sb.Bind(f.ball, f.cubeID)
	assert.ErrorIs(t, err, ErrAlreadyBound)
	assert.Equal(t, 1, sb.Len())

	id, ok := sb.Bound(f.ball)
	assert.True(t, ok)
	assert.Equal(t, f.ballID, id)
	_, ok = sb.Bound(f.hidden)
	assert.False(t, ok)
}

func TestUnboundBodiesAreStillSimulated(t *testing.T) {
	f := newFixture(t)
	sb := New(f.world, f.graph)
	assert.NotPanics(t, sb.SyncAll)

	hidden, err := f.world.Body(f.hidden)
	require.NoError(t, err)
	before := hidden.Position()
	for range 10 {
		f.world.Step()
		sb.SyncAll()
	}
	assert.Less(t, hidden.Position().Y(), before.Y())
}
