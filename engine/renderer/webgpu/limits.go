package webgpu

import (
	"github.com/cogentcore/webgpu/wgpu"

	"github.com/spaghettifunk/colony/engine/simulation"
)

const (
	requiredVertexAttributes = 8
	requiredVertexBuffers    = 1

	// smallest buffer limit requested, room for the overlay draw lists
	minBufferSize uint64 = 4 << 20
)

// requiredLimits starts from what the adapter supports and pins the limits the
// agent pipeline depends on. The buffer limit never drops below minBufferSize
// unless the adapter supports less.
func requiredLimits(supported wgpu.Limits, maxBufferSize uint64) wgpu.Limits {
	limits := supported
	limits.MaxBufferSize = max(maxBufferSize, min(minBufferSize, supported.MaxBufferSize))
	limits.MaxVertexAttributes = requiredVertexAttributes
	limits.MaxVertexBuffers = requiredVertexBuffers
	limits.MaxVertexBufferArrayStride = simulation.VertexStride
	return limits
}

// MaxBufferSizeFor returns the vertex buffer bytes needed by maxPopulation agents.
func MaxBufferSizeFor(maxPopulation int) uint64 {
	return uint64(maxPopulation) * simulation.FloatsPerAgent * simulation.BytesPerFloat
}
