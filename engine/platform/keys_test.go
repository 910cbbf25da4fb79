package platform

import (
	"testing"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/stretchr/testify/assert"

	"github.com/spaghettifunk/colony/engine/core"
)

func TestTranslateKey(t *testing.T) {
	cases := map[glfw.Key]core.KeyCode{
		glfw.KeyEscape:     core.KEY_ESCAPE,
		glfw.KeyQ:          core.KEY_Q,
		glfw.KeyE:          core.KEY_E,
		glfw.KeyR:          core.KEY_R,
		glfw.Key1:          core.KEY_1,
		glfw.Key5:          core.KEY_5,
		glfw.KeyKP3:        core.KEY_3,
		glfw.KeyEqual:      core.KEY_PLUS,
		glfw.KeyMinus:      core.KEY_MINUS,
		glfw.KeyKPAdd:      core.KEY_ADD,
		glfw.KeyKPSubtract: core.KEY_SUBTRACT,
	}
	for key, want := range cases {
		got, ok := translateKey(key)
		assert.True(t, ok, "key %d", key)
		assert.Equal(t, want, got, "key %d", key)
	}

	_, ok := translateKey(glfw.KeyF12)
	assert.False(t, ok)
}

func TestClampUint16(t *testing.T) {
	assert.Equal(t, uint16(0), clampUint16(-3))
	assert.Equal(t, uint16(120), clampUint16(120.7))
	assert.Equal(t, uint16(0xFFFF), clampUint16(1e9))
}
