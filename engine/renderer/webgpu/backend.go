package webgpu

import (
	"fmt"

	"github.com/cogentcore/webgpu/wgpu"

	"github.com/spaghettifunk/colony/engine/core"
	"github.com/spaghettifunk/colony/engine/renderer/metadata"
)

// Backend implements the renderer backend on top of a GraphicsContext. It
// borrows the context's device and queue and never releases them.
type Backend struct {
	context *GraphicsContext
	ui      *UIRenderer
}

type frameData struct {
	texture *wgpu.Texture
	view    *wgpu.TextureView
}

type passData struct {
	encoder *wgpu.CommandEncoder
	pass    *wgpu.RenderPassEncoder
}

type pipelineData struct {
	module   *wgpu.ShaderModule
	pipeline *wgpu.RenderPipeline
}

type bufferData struct {
	buffer *wgpu.Buffer
}

func NewBackend(ctx *GraphicsContext) *Backend {
	return &Backend{
		context: ctx,
	}
}

func (b *Backend) Shutdown() error {
	if b.ui != nil {
		b.ui.Release()
		b.ui = nil
	}
	return nil
}

func (b *Backend) Resized(width, height uint32) error {
	b.context.Resize(width, height)
	return nil
}

func (b *Backend) SurfaceFormat() metadata.TextureFormat {
	return fromWGPUTextureFormat(b.context.SurfaceFormat)
}

// UIRenderer lazily creates the imgui draw data renderer.
func (b *Backend) UIRenderer() (*UIRenderer, error) {
	if b.ui != nil {
		return b.ui, nil
	}
	ui, err := NewUIRenderer(b.context)
	if err != nil {
		return nil, err
	}
	b.ui = ui
	return ui, nil
}

func (b *Backend) PipelineCreate(config metadata.PipelineConfig) (*metadata.Pipeline, error) {
	module, err := b.context.Device.CreateShaderModule(&wgpu.ShaderModuleDescriptor{
		Label: config.Name,
		WGSLDescriptor: &wgpu.ShaderModuleWGSLDescriptor{
			Code: config.Source,
		},
	})
	if err != nil {
		core.LogError("failed to compile shader module %s: %s", config.Name, err)
		return nil, fmt.Errorf("%w: %s", core.ErrInvalidShader, err)
	}

	attributes := make([]wgpu.VertexAttribute, len(config.VertexLayout.Attributes))
	for i, a := range config.VertexLayout.Attributes {
		attributes[i] = wgpu.VertexAttribute{
			Format:         toWGPUVertexFormat(a.Format),
			Offset:         a.Offset,
			ShaderLocation: a.Location,
		}
	}

	pipeline, err := b.context.Device.CreateRenderPipeline(&wgpu.RenderPipelineDescriptor{
		Label: config.Name,
		Vertex: wgpu.VertexState{
			Module:     module,
			EntryPoint: config.VertexEntry,
			Buffers: []wgpu.VertexBufferLayout{{
				ArrayStride: config.VertexLayout.Stride,
				StepMode:    wgpu.VertexStepModeVertex,
				Attributes:  attributes,
			}},
		},
		Primitive: wgpu.PrimitiveState{
			Topology:  toWGPUTopology(config.Topology),
			FrontFace: wgpu.FrontFaceCCW,
			CullMode:  toWGPUCullMode(config.CullMode),
		},
		Multisample: wgpu.MultisampleState{
			Count: 1,
			Mask:  0xFFFFFFFF,
		},
		Fragment: &wgpu.FragmentState{
			Module:     module,
			EntryPoint: config.FragmentEntry,
			Targets: []wgpu.ColorTargetState{{
				Format:    toWGPUTextureFormat(config.TargetFormat),
				Blend:     toWGPUBlendState(config.Blend),
				WriteMask: wgpu.ColorWriteMaskAll,
			}},
		},
	})
	if err != nil {
		module.Release()
		core.LogError("failed to create render pipeline %s: %s", config.Name, err)
		return nil, fmt.Errorf("%w: %s", core.ErrPipelineCreate, err)
	}

	p := metadata.NewPipeline(config)
	p.State = metadata.PIPELINE_STATE_READY
	p.InternalData = &pipelineData{module: module, pipeline: pipeline}
	return p, nil
}

func (b *Backend) PipelineDestroy(pipeline *metadata.Pipeline) {
	if pipeline == nil || pipeline.InternalData == nil {
		return
	}
	data := pipeline.InternalData.(*pipelineData)
	data.pipeline.Release()
	data.module.Release()
	pipeline.InternalData = nil
	pipeline.State = metadata.PIPELINE_STATE_RELEASED
}

func (b *Backend) RenderBufferCreate(renderbufferType metadata.RenderBufferType, totalSize uint64) (*metadata.RenderBuffer, error) {
	var usage wgpu.BufferUsage
	switch renderbufferType {
	case metadata.RENDERBUFFER_TYPE_VERTEX:
		usage = wgpu.BufferUsageVertex
	case metadata.RENDERBUFFER_TYPE_INDEX:
		usage = wgpu.BufferUsageIndex
	case metadata.RENDERBUFFER_TYPE_UNIFORM:
		usage = wgpu.BufferUsageUniform
	default:
		return nil, fmt.Errorf("buffer type %s: %w", renderbufferType, core.ErrBufferCreate)
	}

	rb := metadata.NewRenderBuffer(renderbufferType, totalSize)
	buffer, err := b.context.Device.CreateBuffer(&wgpu.BufferDescriptor{
		Label: fmt.Sprintf("%s buffer %s", renderbufferType, rb.ID),
		Size:  totalSize,
		Usage: wgpu.BufferUsageCopyDst | usage,
	})
	if err != nil {
		core.LogError("failed to create %s buffer of %d bytes: %s", renderbufferType, totalSize, err)
		return nil, fmt.Errorf("%w: %s", core.ErrBufferCreate, err)
	}
	rb.InternalData = &bufferData{buffer: buffer}
	return rb, nil
}

func (b *Backend) RenderBufferDestroy(buffer *metadata.RenderBuffer) {
	if buffer == nil || buffer.InternalData == nil {
		return
	}
	data := buffer.InternalData.(*bufferData)
	data.buffer.Destroy()
	data.buffer.Release()
	buffer.InternalData = nil
}

func (b *Backend) RenderBufferLoadRange(buffer *metadata.RenderBuffer, offset uint64, data []byte) error {
	if buffer == nil || buffer.InternalData == nil {
		return core.ErrAlreadyReleased
	}
	if offset+uint64(len(data)) > buffer.TotalSize {
		return fmt.Errorf("write of %d bytes at %d into %d: %w", len(data), offset, buffer.TotalSize, core.ErrBufferOverflow)
	}
	if len(data) == 0 {
		return nil
	}
	return b.context.Queue.WriteBuffer(buffer.InternalData.(*bufferData).buffer, offset, data)
}

func (b *Backend) FrameAcquire() metadata.FrameTarget {
	return b.context.AcquireNextFrameTarget()
}

func (b *Backend) FrameRelease(target *metadata.FrameReady) {
	if target == nil || target.InternalData == nil {
		return
	}
	data := target.InternalData.(*frameData)
	data.view.Release()
	data.texture.Release()
	target.InternalData = nil
}

func (b *Backend) FramePresent() {
	b.context.Present()
}

func (b *Backend) Poll() {
	b.context.Device.Poll(false, nil)
}

func (b *Backend) RenderPassBegin(pass *metadata.RenderPass) error {
	if pass.Target == nil || pass.Target.InternalData == nil {
		return core.ErrSurfaceUnavailable
	}
	encoder, err := b.context.Device.CreateCommandEncoder(&wgpu.CommandEncoderDescriptor{
		Label: pass.Name,
	})
	if err != nil {
		core.LogError("failed to create command encoder: %s", err)
		return err
	}
	view := pass.Target.InternalData.(*frameData).view
	rp := encoder.BeginRenderPass(&wgpu.RenderPassDescriptor{
		Label: pass.Name,
		ColorAttachments: []wgpu.RenderPassColorAttachment{{
			View:       view,
			LoadOp:     wgpu.LoadOpClear,
			StoreOp:    wgpu.StoreOpStore,
			ClearValue: toWGPUColor(pass.ClearColour),
		}},
	})
	pass.InternalData = &passData{encoder: encoder, pass: rp}
	return nil
}

func (b *Backend) RenderPassSetPipeline(pass *metadata.RenderPass, pipeline *metadata.Pipeline) {
	pass.InternalData.(*passData).pass.SetPipeline(pipeline.InternalData.(*pipelineData).pipeline)
}

func (b *Backend) RenderPassSetVertexBuffer(pass *metadata.RenderPass, slot uint32, buffer *metadata.RenderBuffer, offset, size uint64) {
	pass.InternalData.(*passData).pass.SetVertexBuffer(slot, buffer.InternalData.(*bufferData).buffer, offset, size)
}

func (b *Backend) RenderPassDraw(pass *metadata.RenderPass, vertexCount, instanceCount uint32) {
	pass.InternalData.(*passData).pass.Draw(vertexCount, instanceCount, 0, 0)
}

func (b *Backend) RenderPassEnd(pass *metadata.RenderPass) error {
	data := pass.InternalData.(*passData)
	data.pass.End()
	data.pass.Release()
	data.pass = nil
	return nil
}

func (b *Backend) RenderPassSubmit(pass *metadata.RenderPass) error {
	data := pass.InternalData.(*passData)
	defer func() {
		data.encoder.Release()
		pass.InternalData = nil
	}()

	cmd, err := data.encoder.Finish(nil)
	if err != nil {
		core.LogError("failed to finish command encoder: %s", err)
		return err
	}
	defer cmd.Release()
	b.context.Queue.Submit(cmd)
	return nil
}

// encoderFor exposes the native render pass to the UI renderer.
func encoderFor(pass *metadata.RenderPass) *wgpu.RenderPassEncoder {
	if pass == nil || pass.InternalData == nil {
		return nil
	}
	return pass.InternalData.(*passData).pass
}
