package render

import (
	"github.com/chewxy/math32"
	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/go-gl/mathgl/mgl64"

	"physics-demo/internal/scene"
	"physics-demo/internal/session"
)

const (
	gridExtent     = 200
	gridMinorStep  = 10
	gridMajorStep  = 50
	gridMinorAlpha = 50
	gridMajorAlpha = 120
	axisLineAlpha  = 220
)

// View holds the 3D camera and the primitive cache. Update runs camera logic;
// Draw renders the scene graph between BeginMode3D and EndMode3D.
type View struct {
	Camera      rl.Camera3D
	GridVisible bool
	prims       *primitives
}

// NewView returns a view with an orbiting perspective camera at (100,200,300)
// looking at (0,50,0), fovy 45°.
func NewView(gridVisible bool) *View {
	v := &View{GridVisible: gridVisible, prims: newPrimitives()}
	v.Camera.Position = rl.NewVector3(100, 200, 300)
	v.Camera.Target = rl.NewVector3(0, 50, 0)
	v.Camera.Up = rl.NewVector3(0, 1, 0)
	v.Camera.Fovy = 45
	v.Camera.Projection = rl.CameraPerspective
	return v
}

// Update orbits the camera. Mouse wheel zooms.
func (v *View) Update() {
	rl.UpdateCamera(&v.Camera, rl.CameraOrbital)
}

// Draw renders every scene object at its current transform, then the grid and,
// when requested, the contact points of the last step.
func (v *View) Draw(sess *session.Session, showContacts bool) {
	rl.BeginMode3D(v.Camera)
	for _, obj := range sess.Scene.Objects() {
		v.prims.draw(obj)
	}
	if v.GridVisible {
		drawGrid()
	}
	if showContacts {
		for _, c := range sess.World.Contacts() {
			p := toRL(c.Point)
			rl.DrawSphere(p, 1, rl.Red)
			rl.DrawLine3D(p, toRL(c.Point.Add(c.Normal.Mul(10))), rl.Yellow)
		}
	}
	rl.EndMode3D()
}

// Unload releases GPU resources held by the primitive cache.
func (v *View) Unload() {
	v.prims.unload()
}

// drawGrid draws a grid on the XZ plane with major/minor lines and axis lines.
// Reuses start/end vectors to avoid per-frame allocations in the hot loop.
func drawGrid() {
	minor := rl.NewColor(128, 128, 128, gridMinorAlpha)
	major := rl.NewColor(160, 160, 160, gridMajorAlpha)
	var start, end rl.Vector3
	for x := -gridExtent; x <= gridExtent; x += gridMinorStep {
		c := major
		if x%gridMajorStep != 0 {
			c = minor
		}
		start.X, start.Y, start.Z = float32(x), 0.05, float32(-gridExtent)
		end.X, end.Y, end.Z = float32(x), 0.05, float32(gridExtent)
		rl.DrawLine3D(start, end, c)
	}
	for z := -gridExtent; z <= gridExtent; z += gridMinorStep {
		c := major
		if z%gridMajorStep != 0 {
			c = minor
		}
		start.X, start.Y, start.Z = float32(-gridExtent), 0.05, float32(z)
		end.X, end.Y, end.Z = float32(gridExtent), 0.05, float32(z)
		rl.DrawLine3D(start, end, c)
	}
	rl.DrawLine3D(rl.NewVector3(-gridExtent, 0.1, 0), rl.NewVector3(gridExtent, 0.1, 0), rl.NewColor(220, 80, 80, axisLineAlpha))
	rl.DrawLine3D(rl.NewVector3(0, -gridExtent, 0), rl.NewVector3(0, gridExtent, 0), rl.NewColor(80, 220, 80, axisLineAlpha))
	rl.DrawLine3D(rl.NewVector3(0, 0.1, -gridExtent), rl.NewVector3(0, 0.1, gridExtent), rl.NewColor(80, 80, 220, axisLineAlpha))
}

func toRL(v mgl64.Vec3) rl.Vector3 {
	return rl.NewVector3(float32(v[0]), float32(v[1]), float32(v[2]))
}

// axisAngle converts a unit quaternion into the axis and angle (degrees) DrawModelEx expects.
func axisAngle(q mgl64.Quat) (rl.Vector3, float32) {
	w := math32.Max(-1, math32.Min(1, float32(q.W)))
	s := math32.Sqrt(1 - w*w)
	if s < 1e-4 {
		return rl.NewVector3(0, 1, 0), 0
	}
	axis := rl.NewVector3(float32(q.V[0])/s, float32(q.V[1])/s, float32(q.V[2])/s)
	return axis, 2 * math32.Acos(w) * 180 / math32.Pi
}

// pose reads a transform once so position and rotation come from the same write.
func pose(t *scene.Transform) (rl.Vector3, rl.Vector3, float32, rl.Vector3) {
	p := t.Pose()
	axis, angle := axisAngle(p.Orientation)
	return toRL(p.Position), axis, angle, toRL(t.Scale())
}
