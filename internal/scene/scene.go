package scene

import (
	"errors"
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
)

var (
	// ErrDuplicateName is returned by Add when an object with the same name exists.
	ErrDuplicateName = errors.New("duplicate object name")
	// ErrUnknownPrimitive is returned by Add for a primitive the renderer cannot draw.
	ErrUnknownPrimitive = errors.New("unknown primitive")
)

// ObjectID identifies a visual object within its Graph.
type ObjectID int

// Primitive is the mesh type the render layer draws for an object.
type Primitive string

const (
	PrimitiveBox    Primitive = "box"
	PrimitiveSphere Primitive = "sphere"
	PrimitivePlane  Primitive = "plane"
)

// Valid reports whether p is one of the known primitives.
func (p Primitive) Valid() bool {
	switch p {
	case PrimitiveBox, PrimitiveSphere, PrimitivePlane:
		return true
	}
	return false
}

// Pose is a position and orientation.
type Pose struct {
	Position    mgl64.Vec3
	Orientation mgl64.Quat
}

// Object is a named renderable with a mutable transform. Primitive and Color are
// only read by the render layer; scale lives on the Transform.
type Object struct {
	ID        ObjectID
	Name      string
	Primitive Primitive
	Color     string
	Transform *Transform
}

// Graph holds the visual objects of a scene in insertion order.
type Graph struct {
	objects []*Object
	byName  map[string]ObjectID
}

// NewGraph returns an empty scene graph.
func NewGraph() *Graph {
	return &Graph{byName: make(map[string]ObjectID)}
}

// Add creates a named object with an initial pose and scale and returns its ID.
func (g *Graph) Add(name string, prim Primitive, color string, pose Pose, scale mgl64.Vec3) (ObjectID, error) {
	if _, ok := g.byName[name]; ok {
		return -1, fmt.Errorf("add %q: %w", name, ErrDuplicateName)
	}
	if !prim.Valid() {
		return -1, fmt.Errorf("add %q: %q: %w", name, prim, ErrUnknownPrimitive)
	}
	id := ObjectID(len(g.objects))
	g.objects = append(g.objects, &Object{
		ID:        id,
		Name:      name,
		Primitive: prim,
		Color:     color,
		Transform: NewTransform(pose, scale),
	})
	g.byName[name] = id
	return id, nil
}

// Object returns the object with the given ID.
func (g *Graph) Object(id ObjectID) (*Object, bool) {
	if id < 0 || int(id) >= len(g.objects) {
		return nil, false
	}
	return g.objects[id], true
}

// ByName returns the object registered under name.
func (g *Graph) ByName(name string) (*Object, bool) {
	id, ok := g.byName[name]
	if !ok {
		return nil, false
	}
	return g.objects[id], true
}

// Objects returns all objects in insertion order. The slice must not be modified.
func (g *Graph) Objects() []*Object {
	return g.objects
}
