package renderer

import "github.com/spaghettifunk/colony/engine/renderer/metadata"

// RendererBackend is the GPU API seen by the frontend. Implementations borrow
// the device and queue of a graphics context and never release them.
type RendererBackend interface {
	Shutdown() error
	Resized(width, height uint32) error
	SurfaceFormat() metadata.TextureFormat

	PipelineCreate(config metadata.PipelineConfig) (*metadata.Pipeline, error)
	PipelineDestroy(pipeline *metadata.Pipeline)

	RenderBufferCreate(renderbufferType metadata.RenderBufferType, totalSize uint64) (*metadata.RenderBuffer, error)
	RenderBufferDestroy(buffer *metadata.RenderBuffer)
	RenderBufferLoadRange(buffer *metadata.RenderBuffer, offset uint64, data []byte) error

	FrameAcquire() metadata.FrameTarget
	FrameRelease(target *metadata.FrameReady)
	FramePresent()
	Poll()

	RenderPassBegin(pass *metadata.RenderPass) error
	RenderPassSetPipeline(pass *metadata.RenderPass, pipeline *metadata.Pipeline)
	RenderPassSetVertexBuffer(pass *metadata.RenderPass, slot uint32, buffer *metadata.RenderBuffer, offset, size uint64)
	RenderPassDraw(pass *metadata.RenderPass, vertexCount, instanceCount uint32)
	RenderPassEnd(pass *metadata.RenderPass) error
	// RenderPassSubmit finishes the pass' command recording and hands it to the queue.
	RenderPassSubmit(pass *metadata.RenderPass) error
}

// Overlay appends its own commands to the frame's render pass.
type Overlay interface {
	// Discard closes a frame that will never be recorded.
	Discard()
	Record(pass *metadata.RenderPass) error
}
