package physics

import (
	"fmt"
	"math"
)

// MaterialHandle identifies a surface material registered with a World.
type MaterialHandle int

// ContactMaterial holds the friction and restitution used when two materials touch.
type ContactMaterial struct {
	Friction    float64
	Restitution float64
}

// DefaultContactMaterial is used for material pairs without an override.
var DefaultContactMaterial = ContactMaterial{Friction: 0.3, Restitution: 0}

func (c ContactMaterial) validate() error {
	if !(c.Friction >= 0) || math.IsInf(c.Friction, 0) {
		return fmt.Errorf("friction %v: %w", c.Friction, ErrInvalidParameter)
	}
	if !(c.Restitution >= 0 && c.Restitution <= 1) {
		return fmt.Errorf("restitution %v must be in [0,1]: %w", c.Restitution, ErrInvalidParameter)
	}
	return nil
}

// materialPair is an unordered pair key: a <= b.
type materialPair struct {
	a, b MaterialHandle
}

func pairOf(a, b MaterialHandle) materialPair {
	if b < a {
		a, b = b, a
	}
	return materialPair{a: a, b: b}
}

// materials is the world's material registry. Read-only once the render loop starts.
type materials struct {
	names     []string
	overrides map[materialPair]ContactMaterial
	fallback  ContactMaterial
}

func newMaterials(fallback ContactMaterial) *materials {
	return &materials{
		overrides: make(map[materialPair]ContactMaterial),
		fallback:  fallback,
	}
}

func (m *materials) register(name string) MaterialHandle {
	m.names = append(m.names, name)
	return MaterialHandle(len(m.names) - 1)
}

func (m *materials) known(h MaterialHandle) bool {
	return h >= 0 && int(h) < len(m.names)
}

func (m *materials) lookup(a, b MaterialHandle) ContactMaterial {
	if c, ok := m.overrides[pairOf(a, b)]; ok {
		return c
	}
	return m.fallback
}

// RegisterMaterial adds a named material and returns its handle.
// Names are labels only: registering the same name twice yields two materials.
func (w *World) RegisterMaterial(name string) MaterialHandle {
	return w.materials.register(name)
}

// MaterialName returns the label a material was registered with.
func (w *World) MaterialName(h MaterialHandle) (string, error) {
	if !w.materials.known(h) {
		return "", fmt.Errorf("material %d: %w", h, ErrUnknownHandle)
	}
	return w.materials.names[h], nil
}

// RegisterContactOverride sets friction and restitution for the unordered pair (a, b).
// A later override for the same pair replaces the earlier one.
func (w *World) RegisterContactOverride(a, b MaterialHandle, friction, restitution float64) error {
	for _, h := range []MaterialHandle{a, b} {
		if !w.materials.known(h) {
			return fmt.Errorf("contact override: material %d: %w", h, ErrUnknownHandle)
		}
	}
	c := ContactMaterial{Friction: friction, Restitution: restitution}
	if err := c.validate(); err != nil {
		return fmt.Errorf("contact override %s/%s: %w", w.materials.names[a], w.materials.names[b], err)
	}
	w.materials.overrides[pairOf(a, b)] = c
	return nil
}

// ContactMaterial returns the effective contact material for two materials.
// The lookup is symmetric and falls back to the world default.
func (w *World) ContactMaterial(a, b MaterialHandle) ContactMaterial {
	return w.materials.lookup(a, b)
}
