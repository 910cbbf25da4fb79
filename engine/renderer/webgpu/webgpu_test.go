package webgpu

import (
	"testing"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/stretchr/testify/assert"

	"github.com/spaghettifunk/colony/engine/core"
	"github.com/spaghettifunk/colony/engine/renderer/metadata"
)

type recordingSurface struct {
	order *[]string
}

func (s recordingSurface) Unconfigure() { *s.order = append(*s.order, "unconfigure") }

func TestRequiredLimits(t *testing.T) {
	supported := wgpu.Limits{
		MaxTextureDimension2D:      8192,
		MaxBufferSize:              1 << 30,
		MaxVertexAttributes:        16,
		MaxVertexBuffers:           8,
		MaxVertexBufferArrayStride: 2048,
	}
	limits := requiredLimits(supported, MaxBufferSizeFor(100000))

	assert.Equal(t, uint64(100000*3*5*4), limits.MaxBufferSize)
	assert.Equal(t, uint32(8), limits.MaxVertexAttributes)
	assert.Equal(t, uint32(1), limits.MaxVertexBuffers)
	assert.Equal(t, uint32(20), limits.MaxVertexBufferArrayStride)
	assert.Equal(t, uint32(8192), limits.MaxTextureDimension2D)
}

func TestRequiredLimitsSmallPopulation(t *testing.T) {
	supported := wgpu.Limits{MaxBufferSize: 1 << 30}

	for _, n := range []int{0, 1, 10} {
		limits := requiredLimits(supported, MaxBufferSizeFor(n))
		assert.Equal(t, minBufferSize, limits.MaxBufferSize, "population %d", n)
		// the first overlay buffers still fit
		assert.GreaterOrEqual(t, limits.MaxBufferSize, growSize(1), "population %d", n)
		assert.GreaterOrEqual(t, limits.MaxBufferSize, growSize(64*1024), "population %d", n)
	}

	// never ask for more than a small adapter offers
	limits := requiredLimits(wgpu.Limits{MaxBufferSize: 2048}, MaxBufferSizeFor(0))
	assert.Equal(t, uint64(2048), limits.MaxBufferSize)
}

func TestSurfaceUnconfiguredBeforeDevice(t *testing.T) {
	var order []string
	releases := &core.ReleaseStack{}
	for _, name := range []string{"surface", "device", "queue"} {
		name := name
		releases.Push(name, func() { order = append(order, name) })
	}
	pushUnconfigure(releases, recordingSurface{order: &order})
	assert.Equal(t, 4, releases.Len())

	releases.Release()
	assert.Equal(t, []string{"unconfigure", "queue", "device", "surface"}, order)

	// nothing to push for a surface without Unconfigure
	pushUnconfigure(releases, struct{}{})
	assert.Equal(t, 0, releases.Len())
}

func TestTextureFormatRoundTrip(t *testing.T) {
	f := wgpu.TextureFormatBGRA8UnormSrgb
	assert.Equal(t, f, toWGPUTextureFormat(fromWGPUTextureFormat(f)))
}

func TestBlendStateConversion(t *testing.T) {
	b := toWGPUBlendState(metadata.BlendAlphaOverOpaque())
	assert.Equal(t, wgpu.BlendFactorSrcAlpha, b.Color.SrcFactor)
	assert.Equal(t, wgpu.BlendFactorOneMinusSrcAlpha, b.Color.DstFactor)
	assert.Equal(t, wgpu.BlendFactorZero, b.Alpha.SrcFactor)
	assert.Equal(t, wgpu.BlendFactorOne, b.Alpha.DstFactor)
	assert.Equal(t, wgpu.BlendOperationAdd, b.Color.Operation)
}

func TestVertexFormatConversion(t *testing.T) {
	assert.Equal(t, wgpu.VertexFormatFloat32x2, toWGPUVertexFormat(metadata.VertexFormatFloat32x2))
	assert.Equal(t, wgpu.VertexFormatFloat32x3, toWGPUVertexFormat(metadata.VertexFormatFloat32x3))
	assert.Equal(t, wgpu.CullModeNone, toWGPUCullMode(metadata.FaceCullModeNone))
	assert.Equal(t, wgpu.PrimitiveTopologyTriangleList, toWGPUTopology(metadata.PrimitiveTopologyTriangleList))
}

func TestScissorRect(t *testing.T) {
	fb := [2]float32{800, 600}
	x, y, w, h, ok := scissorRect(-10, 20, 900, 100, fb)
	assert.True(t, ok)
	assert.Equal(t, []uint32{0, 20, 800, 80}, []uint32{x, y, w, h})

	_, _, _, _, ok = scissorRect(700, 10, 650, 100, fb)
	assert.False(t, ok)
}

func TestUIBufferSizing(t *testing.T) {
	assert.Len(t, padTo4([]byte{1, 2, 3, 4, 5, 6}), 8)
	assert.Len(t, padTo4([]byte{1, 2, 3, 4}), 4)
	assert.Equal(t, uint64(1024), growSize(10))
	assert.Equal(t, uint64(4096), growSize(3000))
}

func TestOrthoProjection(t *testing.T) {
	m := orthoProjection([2]float32{800, 600})
	// Top-left maps to (-1, 1), bottom-right to (1, -1).
	x := m[0]*800 + m[12]
	y := m[5]*600 + m[13]
	assert.InDelta(t, 1.0, x, 1e-6)
	assert.InDelta(t, -1.0, y, 1e-6)
	assert.InDelta(t, -1.0, m[12], 1e-6)
	assert.InDelta(t, 1.0, m[13], 1e-6)
}
