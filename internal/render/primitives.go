package render

import (
	"strconv"
	"strings"

	rl "github.com/gen2brain/raylib-go/raylib"

	"physics-demo/internal/scene"
)

// defaultPrimitiveColor is the tint for objects without a color.
var defaultPrimitiveColor = rl.NewColor(128, 128, 128, 255)

// defaultSphereRings and defaultSphereSlices control sphere mesh resolution.
const defaultSphereRings = 16
const defaultSphereSlices = 16

// primitives maps primitive types to unit-sized models. Models are created on first use
// so that GPU resources are allocated after the window/OpenGL context exists.
type primitives struct {
	models map[scene.Primitive]rl.Model
	colors map[string]rl.Color
}

func newPrimitives() *primitives {
	return &primitives{
		models: make(map[scene.Primitive]rl.Model),
		colors: make(map[string]rl.Color),
	}
}

// model returns the cached model for p, generating the mesh the first time.
// Cube: 1×1×1. Sphere: radius 0.5 so diameter = 1, matching the cube. Plane: 1×1 on XZ.
func (r *primitives) model(p scene.Primitive) (rl.Model, bool) {
	if m, ok := r.models[p]; ok {
		return m, true
	}
	var mesh rl.Mesh
	switch p {
	case scene.PrimitiveBox:
		mesh = rl.GenMeshCube(1, 1, 1)
	case scene.PrimitiveSphere:
		mesh = rl.GenMeshSphere(0.5, defaultSphereRings, defaultSphereSlices)
	case scene.PrimitivePlane:
		mesh = rl.GenMeshPlane(1, 1, 1, 1)
	default:
		return rl.Model{}, false
	}
	m := rl.LoadModelFromMesh(mesh)
	r.models[p] = m
	return m, true
}

// draw draws one object at its current pose. Must be called between BeginMode3D and EndMode3D.
func (r *primitives) draw(obj *scene.Object) {
	m, ok := r.model(obj.Primitive)
	if !ok {
		return
	}
	pos, axis, angle, scale := pose(obj.Transform)
	tint := r.color(obj.Color)
	rl.DrawModelEx(m, pos, axis, angle, scale, tint)
	if obj.Primitive != scene.PrimitivePlane {
		rl.DrawModelWiresEx(m, pos, axis, angle, scale, rl.NewColor(0, 0, 0, 80))
	}
}

// color parses "#rrggbb" once per distinct string.
func (r *primitives) color(hex string) rl.Color {
	if c, ok := r.colors[hex]; ok {
		return c
	}
	c := defaultPrimitiveColor
	if v, err := strconv.ParseUint(strings.TrimPrefix(hex, "#"), 16, 32); err == nil && len(strings.TrimPrefix(hex, "#")) == 6 {
		c = rl.GetColor(uint(v<<8 | 0xff))
	}
	r.colors[hex] = c
	return c
}

func (r *primitives) unload() {
	for p, m := range r.models {
		rl.UnloadModel(m)
		delete(r.models, p)
	}
}
