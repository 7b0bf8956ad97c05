package session

import (
	"fmt"
	"math"

	"physics-demo/internal/physics"
)

// ClockMode decides how many world steps a rendered frame runs.
type ClockMode int

const (
	// PerFrame runs exactly one step per frame. Simulation speed follows the display rate.
	PerFrame ClockMode = iota
	// Fixed accumulates elapsed wall time and runs one step per whole timestep.
	Fixed
)

func (m ClockMode) String() string {
	switch m {
	case PerFrame:
		return "per_frame"
	case Fixed:
		return "fixed"
	}
	return fmt.Sprintf("ClockMode(%d)", int(m))
}

// ParseClockMode parses "per_frame" (or "") and "fixed".
func ParseClockMode(s string) (ClockMode, error) {
	switch s {
	case "", "per_frame":
		return PerFrame, nil
	case "fixed":
		return Fixed, nil
	}
	return 0, fmt.Errorf("clock mode %q: %w", s, physics.ErrInvalidParameter)
}

// Clock converts frame durations into step counts. For a given sequence of
// Advance arguments it always yields the same sequence of counts.
type Clock struct {
	mode     ClockMode
	timestep float64
	maxSteps int
	acc      float64
}

// NewClock returns a clock for a world with the given timestep. maxSteps caps the
// steps a single Fixed frame may run; the backlog beyond it is dropped.
func NewClock(mode ClockMode, timestep float64, maxSteps int) (*Clock, error) {
	if !(timestep > 0) {
		return nil, fmt.Errorf("clock timestep %v: %w", timestep, physics.ErrInvalidParameter)
	}
	if maxSteps < 1 {
		return nil, fmt.Errorf("clock max steps %d: %w", maxSteps, physics.ErrInvalidParameter)
	}
	return &Clock{mode: mode, timestep: timestep, maxSteps: maxSteps}, nil
}

// Mode returns the clock mode.
func (c *Clock) Mode() ClockMode { return c.mode }

// Advance returns how many steps to run for a frame that took elapsed seconds.
// Negative or non-finite durations count as zero.
func (c *Clock) Advance(elapsed float64) int {
	if c.mode == PerFrame {
		return 1
	}
	if elapsed > 0 && !math.IsInf(elapsed, 0) {
		c.acc += elapsed
	}
	q := c.acc / c.timestep
	if q > float64(c.maxSteps) {
		c.acc = 0
		return c.maxSteps
	}
	n := int(q)
	c.acc -= float64(n) * c.timestep
	return n
}
