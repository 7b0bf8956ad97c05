// Package config loads scene descriptions: world parameters, materials, bodies,
// extra visuals and the kinematic target.
package config

import (
	"bytes"
	"fmt"
	"os"

	"github.com/jinzhu/copier"
	"gopkg.in/yaml.v3"
)

// ScenePath is the default scene file, relative to the working directory.
const ScenePath = "config/scene.yaml"

type Scene struct {
	Physics      Physics   `yaml:"physics"`
	Clock        Clock     `yaml:"clock"`
	Materials    []string  `yaml:"materials"`
	Contacts     []Contact `yaml:"contacts"`
	BodyDefaults Body      `yaml:"body_defaults"`
	Bodies       []Body    `yaml:"bodies"`
	Visuals      []Visual  `yaml:"visuals"`
	Kinematic    Kinematic `yaml:"kinematic"`
}

// Physics configures the world. Nil or zero fields take the world defaults.
type Physics struct {
	Gravity            *[3]float64 `yaml:"gravity,omitempty"`
	Timestep           float64     `yaml:"timestep,omitempty"`
	Substeps           int         `yaml:"substeps,omitempty"`
	Workers            int         `yaml:"workers,omitempty"`
	DefaultFriction    *float64    `yaml:"default_friction,omitempty"`
	DefaultRestitution *float64    `yaml:"default_restitution,omitempty"`
}

// Clock selects how rendered frames map to world steps: "per_frame" or "fixed".
type Clock struct {
	Mode     string `yaml:"mode,omitempty"`
	MaxSteps int    `yaml:"max_steps,omitempty"`
}

// Contact is a friction/restitution override for a pair of material names.
type Contact struct {
	A           string  `yaml:"a"`
	B           string  `yaml:"b"`
	Friction    float64 `yaml:"friction"`
	Restitution float64 `yaml:"restitution"`
}

// Body describes a rigid body and, unless Visual is false, the object drawn for it.
// Rotation is in degrees, applied in X, Y, Z order. A nil Mass makes the body static.
type Body struct {
	Name            string     `yaml:"name"`
	Shape           string     `yaml:"shape"`
	Radius          float64    `yaml:"radius,omitempty"`
	HalfExtents     [3]float64 `yaml:"half_extents,omitempty"`
	Mass            *float64   `yaml:"mass,omitempty"`
	Material        string     `yaml:"material,omitempty"`
	Position        [3]float64 `yaml:"position,omitempty"`
	Rotation        [3]float64 `yaml:"rotation,omitempty"`
	Velocity        [3]float64 `yaml:"velocity,omitempty"`
	AngularVelocity [3]float64 `yaml:"angular_velocity,omitempty"`
	LinearDamping   *float64   `yaml:"linear_damping,omitempty"`
	AngularDamping  *float64   `yaml:"angular_damping,omitempty"`
	Visual          *bool      `yaml:"visual,omitempty"`
	Color           string     `yaml:"color,omitempty"`
	PlaneSize       float64    `yaml:"plane_size,omitempty"`
}

// Visual is a scene object with no body behind it. Spin is a constant turn rate in
// degrees per second about the local X, Y, Z axes; it is ignored on the kinematic target.
type Visual struct {
	Name      string     `yaml:"name"`
	Primitive string     `yaml:"primitive"`
	Color     string     `yaml:"color,omitempty"`
	Position  [3]float64 `yaml:"position,omitempty"`
	Rotation  [3]float64 `yaml:"rotation,omitempty"`
	Scale     [3]float64 `yaml:"scale,omitempty"`
	Spin      [3]float64 `yaml:"spin,omitempty"`
}

// Kinematic names the visual object moved by directional input.
type Kinematic struct {
	Object   string  `yaml:"object,omitempty"`
	UnitStep float64 `yaml:"unit_step,omitempty"`
}

// Load reads a scene file. Unknown keys are rejected.
func Load(path string) (Scene, error) {
	var s Scene
	raw, err := os.ReadFile(path)
	if err != nil {
		return s, err
	}
	dec := yaml.NewDecoder(bytes.NewReader(raw))
	dec.KnownFields(true)
	if err := dec.Decode(&s); err != nil {
		return s, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// ResolvedBodies returns Bodies with BodyDefaults filled in for every field a body leaves empty.
func (s Scene) ResolvedBodies() ([]Body, error) {
	out := make([]Body, 0, len(s.Bodies))
	for i := range s.Bodies {
		var merged Body
		if err := copier.CopyWithOption(&merged, &s.BodyDefaults, copier.Option{DeepCopy: true}); err != nil {
			return nil, fmt.Errorf("body defaults: %w", err)
		}
		if err := copier.CopyWithOption(&merged, &s.Bodies[i], copier.Option{IgnoreEmpty: true, DeepCopy: true}); err != nil {
			return nil, fmt.Errorf("body %q: %w", s.Bodies[i].Name, err)
		}
		out = append(out, merged)
	}
	return out, nil
}

// IsVisual reports whether a body gets a scene object. Bodies are visible unless Visual is false.
func (b Body) IsVisual() bool {
	return b.Visual == nil || *b.Visual
}

func ptr[T any](v T) *T { return &v }

// Default returns the built-in demo scene: a heavy ball dropped on a ground plane with
// restitution 0.9, a tumbling crate, a hidden collider, and a kinematic cube moved by the arrow keys.
func Default() Scene {
	return Scene{
		Physics: Physics{
			Gravity:  &[3]float64{0, -9.81, 0},
			Timestep: 1.0 / 60.0,
			Substeps: 1,
		},
		Clock:     Clock{Mode: "per_frame", MaxSteps: 5},
		Materials: []string{"ground", "ball", "crate"},
		Contacts: []Contact{
			{A: "ball", B: "ground", Friction: 0.3, Restitution: 0.9},
			{A: "crate", B: "ground", Friction: 0.6, Restitution: 0.1},
		},
		BodyDefaults: Body{
			Material:       "ground",
			LinearDamping:  ptr(0.0),
			AngularDamping: ptr(0.01),
		},
		Bodies: []Body{
			{Name: "ground", Shape: "plane", PlaneSize: 400, Color: "#999999"},
			{Name: "ball", Shape: "sphere", Radius: 10, Mass: ptr(10.0), Material: "ball", Position: [3]float64{0, 20, 0}, Color: "#3366ff"},
			{
				Name: "crate", Shape: "box", HalfExtents: [3]float64{5, 5, 5}, Mass: ptr(5.0), Material: "crate",
				Position: [3]float64{40, 60, 0}, Rotation: [3]float64{30, 0, 20}, AngularVelocity: [3]float64{0, 1, 0},
				Color: "#cc8833",
			},
			{Name: "bumper", Shape: "box", HalfExtents: [3]float64{20, 2, 20}, Position: [3]float64{40, 1, 0}, Visual: ptr(false)},
		},
		Visuals: []Visual{
			{Name: "cube", Primitive: "box", Color: "#00ff00", Position: [3]float64{-40, 10, 0}, Scale: [3]float64{20, 20, 20}},
			{Name: "beacon", Primitive: "box", Color: "#0000ff", Position: [3]float64{0, 60, -80}, Scale: [3]float64{30, 6, 12}, Spin: [3]float64{0, -68.75, 0}},
		},
		Kinematic: Kinematic{Object: "cube", UnitStep: 1},
	}
}
