package math

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClamp(t *testing.T) {
	assert.Equal(t, float32(0.1), Clamp(float32(0.01), 0.1, 5.0))
	assert.Equal(t, float32(5.0), Clamp(float32(7), 0.1, 5.0))
	assert.Equal(t, 3, Clamp(3, 0, 10))
}

func TestWrapEdge(t *testing.T) {
	assert.Equal(t, float32(-1.77), WrapEdge(1.7701, 1.77))
	assert.Equal(t, float32(1.77), WrapEdge(-1.78, 1.77))
	assert.Equal(t, float32(1.77), WrapEdge(1.77, 1.77), "the bound itself is inside the range")
	assert.Equal(t, float32(0.5), WrapEdge(0.5, 1.0))
}

func TestMat2Rotation(t *testing.T) {
	v := NewVec2(1, 0)
	assert.True(t, NewMat2Rotation(0).Apply(v).Compare(v, K_FLOAT_EPSILON))
	assert.True(t, NewMat2Rotation(DegToRad(90)).Apply(v).Compare(NewVec2(0, 1), 1e-6))
	assert.True(t, NewMat2Rotation(DegToRad(180)).Apply(v).Compare(NewVec2(-1, 0), 1e-6))
	assert.Equal(t, NewMat2Identity(), NewMat2Rotation(0))
}

func TestMod(t *testing.T) {
	assert.InDelta(t, 10.0, Mod(370.0, 360.0), 1e-9)
	assert.InDelta(t, 350.0, Mod(-10.0, 360.0), 1e-9)
	assert.InDelta(t, 0.0, Mod(0.0, 360.0), 1e-9)
}
