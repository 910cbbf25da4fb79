package ui

import (
	"github.com/spaghettifunk/colony/engine/core"
	"github.com/spaghettifunk/colony/engine/math"
)

const (
	MinZoom      float32 = 0.1
	MaxZoom      float32 = 5.0
	DefaultZoom  float32 = 1.0
	ZoomStep     float32 = 0.1
	RotationStep float32 = 5.0
)

// PopulationPresets are the sizes reachable from the panel and keys 1 to 5.
var PopulationPresets = [...]int{10, 100, 1000, 10000, 100000}

// Controls is the state the overlay and keyboard edit between frames.
// Population changes are only requested here; the owner applies them.
type Controls struct {
	Zoom     float32
	Rotation float32

	Population        int
	PendingPopulation int
	respawn           bool
}

func NewControls(zoom, rotation float32, population int) *Controls {
	c := &Controls{
		Population:        population,
		PendingPopulation: population,
	}
	c.SetZoom(zoom)
	c.SetRotation(rotation)
	return c
}

func (c *Controls) SetZoom(zoom float32) {
	c.Zoom = math.Clamp(zoom, MinZoom, MaxZoom)
}

// SetRotation stores the angle in degrees, normalized to [0, 360).
func (c *Controls) SetRotation(degrees float32) {
	c.Rotation = math.Mod(degrees, 360)
}

// RequestPopulation asks for n agents from the next frame on.
func (c *Controls) RequestPopulation(n int) {
	c.PendingPopulation = n
}

// RequestRespawn regenerates the current population at the next frame.
func (c *Controls) RequestRespawn() {
	c.respawn = true
}

// TakePending returns the population to apply, if any, and clears the request.
func (c *Controls) TakePending() (int, bool) {
	if c.PendingPopulation == c.Population && !c.respawn {
		return 0, false
	}
	c.respawn = false
	return c.PendingPopulation, true
}

// Applied records that the pending population is now live. On failure the
// caller passes the population still in use.
func (c *Controls) Applied(n int) {
	c.Population = n
	c.PendingPopulation = n
}

// HandleKey applies the keyboard bindings and reports whether key was bound.
func (c *Controls) HandleKey(key core.KeyCode) bool {
	switch key {
	case core.KEY_ADD, core.KEY_PLUS:
		c.SetZoom(c.Zoom + ZoomStep)
	case core.KEY_SUBTRACT, core.KEY_MINUS:
		c.SetZoom(c.Zoom - ZoomStep)
	case core.KEY_Q:
		c.SetRotation(c.Rotation - RotationStep)
	case core.KEY_E:
		c.SetRotation(c.Rotation + RotationStep)
	case core.KEY_R:
		c.RequestRespawn()
	default:
		if key >= core.KEY_1 && int(key-core.KEY_1) < len(PopulationPresets) {
			c.RequestPopulation(PopulationPresets[key-core.KEY_1])
			return true
		}
		return false
	}
	return true
}
