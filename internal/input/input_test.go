package input

import (
	"sync"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"physics-demo/internal/physics"
	"physics-demo/internal/scene"
)

func TestLeftFiveTimes(t *testing.T) {
	target := scene.NewTransform(scene.Pose{Position: mgl64.Vec3{3, 1, -2}}, mgl64.Vec3{1, 1, 1})
	c, err := NewController(target, 1)
	require.NoError(t, err)

	for range 5 {
		require.NoError(t, c.OnDirectionalInput(Left))
	}
	assert.Equal(t, mgl64.Vec3{-2, 1, -2}, target.Pose().Position)
	assert.Equal(t, int64(5), c.Moves())
}

func TestDirections(t *testing.T) {
	tests := []struct {
		dir  Direction
		want mgl64.Vec3
	}{
		{Up, mgl64.Vec3{0, 0.5, 0}},
		{Down, mgl64.Vec3{0, -0.5, 0}},
		{Left, mgl64.Vec3{-0.5, 0, 0}},
		{Right, mgl64.Vec3{0.5, 0, 0}},
	}
	for _, tt := range tests {
		t.Run(tt.dir.String(), func(t *testing.T) {
			target := scene.NewTransform(scene.Pose{}, mgl64.Vec3{1, 1, 1})
			c, err := NewController(target, 0.5)
			require.NoError(t, err)
			require.NoError(t, c.OnDirectionalInput(tt.dir))
			assert.Equal(t, tt.want, target.Pose().Position)
			assert.Equal(t, mgl64.QuatIdent(), target.Pose().Orientation)
		})
	}
}

func TestOppositeEventsCancel(t *testing.T) {
	target := scene.NewTransform(scene.Pose{}, mgl64.Vec3{1, 1, 1})
	c, err := NewController(target, 1)
	require.NoError(t, err)
	for _, d := range []Direction{Up, Right, Down, Left, Left, Right} {
		require.NoError(t, c.OnDirectionalInput(d))
	}
	assert.Equal(t, mgl64.Vec3{}, target.Pose().Position)
	assert.Equal(t, int64(6), c.Moves())
}

func TestConcurrentEvents(t *testing.T) {
	target := scene.NewTransform(scene.Pose{}, mgl64.Vec3{1, 1, 1})
	c, err := NewController(target, 1)
	require.NoError(t, err)
	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 100 {
				_ = c.OnDirectionalInput(Right)
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, mgl64.Vec3{800, 0, 0}, target.Pose().Position)
}

func TestControllerErrors(t *testing.T) {
	_, err := NewController(nil, 1)
	assert.ErrorIs(t, err, physics.ErrInvalidParameter)
	target := scene.NewTransform(scene.Pose{}, mgl64.Vec3{1, 1, 1})
	_, err = NewController(target, 0)
	assert.ErrorIs(t, err, physics.ErrInvalidParameter)

	c, err := NewController(target, 1)
	require.NoError(t, err)
	assert.ErrorIs(t, c.OnDirectionalInput(Direction(0)), physics.ErrInvalidParameter)
	assert.ErrorIs(t, c.OnDirectionalInput(Direction(9)), physics.ErrInvalidParameter)
	assert.Zero(t, c.Moves())
	assert.Equal(t, mgl64.Vec3{}, target.Pose().Position)
}

func TestParseDirection(t *testing.T) {
	for _, s := range []string{"up", "DOWN", " Left ", "right"} {
		d, err := ParseDirection(s)
		require.NoError(t, err, s)
		assert.NotZero(t, d)
	}
	d, err := ParseDirection("left")
	require.NoError(t, err)
	assert.Equal(t, Left, d)
	_, err = ParseDirection("forward")
	assert.ErrorIs(t, err, physics.ErrInvalidParameter)
	assert.Equal(t, "Direction(7)", Direction(7).String())
}
