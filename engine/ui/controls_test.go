package ui

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/spaghettifunk/colony/engine/core"
)

func TestZoomClamp(t *testing.T) {
	c := NewControls(10, 0, 100)
	assert.Equal(t, MaxZoom, c.Zoom)

	c.SetZoom(0.01)
	assert.Equal(t, MinZoom, c.Zoom)

	c.SetZoom(2.5)
	assert.Equal(t, float32(2.5), c.Zoom)

	for i := 0; i < 100; i++ {
		c.HandleKey(core.KEY_MINUS)
	}
	assert.Equal(t, MinZoom, c.Zoom)
}

func TestRotationNormalized(t *testing.T) {
	c := NewControls(1, 370, 10)
	assert.InDelta(t, 10, c.Rotation, 1e-4)

	c.SetRotation(0)
	c.HandleKey(core.KEY_Q)
	assert.InDelta(t, 355, c.Rotation, 1e-4)

	c.HandleKey(core.KEY_E)
	c.HandleKey(core.KEY_E)
	assert.InDelta(t, 5, c.Rotation, 1e-4)
}

func TestPresetKeys(t *testing.T) {
	c := NewControls(1, 0, 10)
	_, ok := c.TakePending()
	assert.False(t, ok)

	assert.True(t, c.HandleKey(core.KEY_4))
	n, ok := c.TakePending()
	assert.True(t, ok)
	assert.Equal(t, 10000, n)
	c.Applied(n)
	assert.Equal(t, 10000, c.Population)

	_, ok = c.TakePending()
	assert.False(t, ok)

	assert.True(t, c.HandleKey(core.KEY_5))
	n, _ = c.TakePending()
	assert.Equal(t, 100000, n)

	assert.False(t, c.HandleKey(core.KEY_6))
	assert.False(t, c.HandleKey(core.KEY_A))
}

func TestRespawn(t *testing.T) {
	c := NewControls(1, 0, 100)
	c.HandleKey(core.KEY_R)
	n, ok := c.TakePending()
	assert.True(t, ok)
	assert.Equal(t, 100, n)

	_, ok = c.TakePending()
	assert.False(t, ok)
}

func TestPresetLabel(t *testing.T) {
	assert.Equal(t, "10", presetLabel(10))
	assert.Equal(t, "100", presetLabel(100))
	assert.Equal(t, "1k", presetLabel(1000))
	assert.Equal(t, "100k", presetLabel(100000))
}

func TestImguiButton(t *testing.T) {
	assert.Equal(t, 0, imguiButton(core.BUTTON_LEFT))
	assert.Equal(t, 1, imguiButton(core.BUTTON_RIGHT))
	assert.Equal(t, 2, imguiButton(core.BUTTON_MIDDLE))
}
