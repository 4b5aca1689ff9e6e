package session

import "github.com/younwookim/brawler/internal/infrastructure/config"

// Clock converts wall-clock frame time into fixed simulation substeps
type Clock struct {
	step     float64
	maxDelta float64
	maxSteps int
	acc      float64
}

// NewClock creates a fixed-step clock from loop settings
func NewClock(cfg config.LoopConfig) *Clock {
	return &Clock{
		step:     cfg.FixedStep,
		maxDelta: cfg.MaxFrameDelta,
		maxSteps: cfg.MaxSubsteps,
	}
}

// Advance adds one frame's delta and returns how many fixed steps to run.
// The delta is clamped first; leftover time below one step carries to the
// next frame, backlog past the substep cap is dropped.
func (c *Clock) Advance(frame float64) int {
	if frame < 0 {
		frame = 0
	}
	if frame > c.maxDelta {
		frame = c.maxDelta
	}
	c.acc += frame

	n := 0
	for c.acc >= c.step && n < c.maxSteps {
		c.acc -= c.step
		n++
	}
	for c.acc >= c.step {
		c.acc -= c.step
	}
	return n
}

// Step returns the fixed step size in seconds
func (c *Clock) Step() float64 { return c.step }

// Pending returns the carried-over time
func (c *Clock) Pending() float64 { return c.acc }

// Reset drops any carried-over time
func (c *Clock) Reset() { c.acc = 0 }
