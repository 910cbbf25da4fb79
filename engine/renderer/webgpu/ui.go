package webgpu

import (
	"fmt"
	"unsafe"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/inkyblackness/imgui-go/v4"

	"github.com/spaghettifunk/colony/engine/core"
	"github.com/spaghettifunk/colony/engine/renderer/metadata"
)

const uiShader = `
struct Uniforms {
	proj: mat4x4<f32>,
};

@group(0) @binding(0) var<uniform> uniforms: Uniforms;
@group(0) @binding(1) var font_sampler: sampler;
@group(0) @binding(2) var font_texture: texture_2d<f32>;

struct VertexOutput {
	@builtin(position) position: vec4<f32>,
	@location(0) uv: vec2<f32>,
	@location(1) color: vec4<f32>,
};

@vertex
fn vs_main(@location(0) pos: vec2<f32>, @location(1) uv: vec2<f32>, @location(2) color: vec4<f32>) -> VertexOutput {
	var out: VertexOutput;
	out.position = uniforms.proj * vec4<f32>(pos, 0.0, 1.0);
	out.uv = uv;
	out.color = color;
	return out;
}

@fragment
fn fs_main(in: VertexOutput) -> @location(0) vec4<f32> {
	return in.color * textureSample(font_texture, font_sampler, in.uv);
}
`

const uniformSize = 64

// UIRenderer draws imgui draw data into an open render pass.
type UIRenderer struct {
	context *GraphicsContext

	module         *wgpu.ShaderModule
	bindLayout     *wgpu.BindGroupLayout
	pipelineLayout *wgpu.PipelineLayout
	pipeline       *wgpu.RenderPipeline
	uniforms       *wgpu.Buffer
	sampler        *wgpu.Sampler

	fontTexture *wgpu.Texture
	fontView    *wgpu.TextureView
	bindGroup   *wgpu.BindGroup

	vertexBuffer *wgpu.Buffer
	vertexSize   uint64
	indexBuffer  *wgpu.Buffer
	indexSize    uint64
	indexFormat  wgpu.IndexFormat

	vertices []byte
	indices  []byte

	releases core.ReleaseStack
}

func NewUIRenderer(ctx *GraphicsContext) (*UIRenderer, error) {
	r := &UIRenderer{context: ctx}
	if err := r.createPipeline(); err != nil {
		r.releases.Release()
		return nil, err
	}
	return r, nil
}

func (r *UIRenderer) createPipeline() error {
	device := r.context.Device

	module, err := device.CreateShaderModule(&wgpu.ShaderModuleDescriptor{
		Label:          "ui shader",
		WGSLDescriptor: &wgpu.ShaderModuleWGSLDescriptor{Code: uiShader},
	})
	if err != nil {
		return fmt.Errorf("%w: ui shader: %s", core.ErrInvalidShader, err)
	}
	r.module = module
	r.releases.Push("ui shader", module.Release)

	bindLayout, err := device.CreateBindGroupLayout(&wgpu.BindGroupLayoutDescriptor{
		Label: "ui bind group layout",
		Entries: []wgpu.BindGroupLayoutEntry{
			{
				Binding:    0,
				Visibility: wgpu.ShaderStageVertex,
				Buffer: wgpu.BufferBindingLayout{
					Type:           wgpu.BufferBindingTypeUniform,
					MinBindingSize: uniformSize,
				},
			},
			{
				Binding:    1,
				Visibility: wgpu.ShaderStageFragment,
				Sampler: wgpu.SamplerBindingLayout{
					Type: wgpu.SamplerBindingTypeFiltering,
				},
			},
			{
				Binding:    2,
				Visibility: wgpu.ShaderStageFragment,
				Texture: wgpu.TextureBindingLayout{
					SampleType:    wgpu.TextureSampleTypeFloat,
					ViewDimension: wgpu.TextureViewDimension2D,
				},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("%w: ui bind group layout: %s", core.ErrPipelineCreate, err)
	}
	r.bindLayout = bindLayout
	r.releases.Push("ui bind group layout", bindLayout.Release)

	pipelineLayout, err := device.CreatePipelineLayout(&wgpu.PipelineLayoutDescriptor{
		Label:            "ui pipeline layout",
		BindGroupLayouts: []*wgpu.BindGroupLayout{bindLayout},
	})
	if err != nil {
		return fmt.Errorf("%w: ui pipeline layout: %s", core.ErrPipelineCreate, err)
	}
	r.pipelineLayout = pipelineLayout
	r.releases.Push("ui pipeline layout", pipelineLayout.Release)

	stride, posOffset, uvOffset, colOffset := imgui.VertexBufferLayout()
	if imgui.IndexBufferLayout() == 2 {
		r.indexFormat = wgpu.IndexFormatUint16
	} else {
		r.indexFormat = wgpu.IndexFormatUint32
	}

	pipeline, err := device.CreateRenderPipeline(&wgpu.RenderPipelineDescriptor{
		Label:  "ui pipeline",
		Layout: pipelineLayout,
		Vertex: wgpu.VertexState{
			Module:     module,
			EntryPoint: "vs_main",
			Buffers: []wgpu.VertexBufferLayout{{
				ArrayStride: uint64(stride),
				StepMode:    wgpu.VertexStepModeVertex,
				Attributes: []wgpu.VertexAttribute{
					{Format: wgpu.VertexFormatFloat32x2, Offset: uint64(posOffset), ShaderLocation: 0},
					{Format: wgpu.VertexFormatFloat32x2, Offset: uint64(uvOffset), ShaderLocation: 1},
					{Format: wgpu.VertexFormatUnorm8x4, Offset: uint64(colOffset), ShaderLocation: 2},
				},
			}},
		},
		Primitive: wgpu.PrimitiveState{
			Topology:  wgpu.PrimitiveTopologyTriangleList,
			FrontFace: wgpu.FrontFaceCW,
			CullMode:  wgpu.CullModeNone,
		},
		Multisample: wgpu.MultisampleState{
			Count: 1,
			Mask:  0xFFFFFFFF,
		},
		Fragment: &wgpu.FragmentState{
			Module:     module,
			EntryPoint: "fs_main",
			Targets: []wgpu.ColorTargetState{{
				Format: r.context.SurfaceFormat,
				Blend: &wgpu.BlendState{
					Color: wgpu.BlendComponent{
						SrcFactor: wgpu.BlendFactorSrcAlpha,
						DstFactor: wgpu.BlendFactorOneMinusSrcAlpha,
						Operation: wgpu.BlendOperationAdd,
					},
					Alpha: wgpu.BlendComponent{
						SrcFactor: wgpu.BlendFactorOne,
						DstFactor: wgpu.BlendFactorOneMinusSrcAlpha,
						Operation: wgpu.BlendOperationAdd,
					},
				},
				WriteMask: wgpu.ColorWriteMaskAll,
			}},
		},
	})
	if err != nil {
		return fmt.Errorf("%w: ui pipeline: %s", core.ErrPipelineCreate, err)
	}
	r.pipeline = pipeline
	r.releases.Push("ui pipeline", pipeline.Release)

	uniforms, err := device.CreateBuffer(&wgpu.BufferDescriptor{
		Label: "ui uniforms",
		Size:  uniformSize,
		Usage: wgpu.BufferUsageUniform | wgpu.BufferUsageCopyDst,
	})
	if err != nil {
		return fmt.Errorf("%w: ui uniforms: %s", core.ErrBufferCreate, err)
	}
	r.uniforms = uniforms
	r.releases.Push("ui uniforms", uniforms.Release)

	sampler, err := device.CreateSampler(&wgpu.SamplerDescriptor{
		Label:         "ui font sampler",
		AddressModeU:  wgpu.AddressModeClampToEdge,
		AddressModeV:  wgpu.AddressModeClampToEdge,
		AddressModeW:  wgpu.AddressModeClampToEdge,
		MagFilter:     wgpu.FilterModeLinear,
		MinFilter:     wgpu.FilterModeLinear,
		MipmapFilter:  wgpu.MipmapFilterModeLinear,
		LodMaxClamp:   32,
		MaxAnisotropy: 1,
	})
	if err != nil {
		return fmt.Errorf("ui sampler: %w", err)
	}
	r.sampler = sampler
	r.releases.Push("ui sampler", sampler.Release)
	return nil
}

// SetFontTexture uploads the RGBA32 font atlas and rebuilds the bind group.
func (r *UIRenderer) SetFontTexture(width, height int, pixels []byte) error {
	r.releaseFont()

	size := wgpu.Extent3D{Width: uint32(width), Height: uint32(height), DepthOrArrayLayers: 1}
	texture, err := r.context.Device.CreateTexture(&wgpu.TextureDescriptor{
		Label:         "ui font atlas",
		Usage:         wgpu.TextureUsageTextureBinding | wgpu.TextureUsageCopyDst,
		Dimension:     wgpu.TextureDimension2D,
		Size:          size,
		Format:        wgpu.TextureFormatRGBA8Unorm,
		MipLevelCount: 1,
		SampleCount:   1,
	})
	if err != nil {
		core.LogError("failed to create the font texture: %s", err)
		return err
	}
	r.fontTexture = texture

	r.context.Queue.WriteTexture(
		&wgpu.ImageCopyTexture{
			Aspect:   wgpu.TextureAspectAll,
			Texture:  texture,
			MipLevel: 0,
			Origin:   wgpu.Origin3D{X: 0, Y: 0, Z: 0},
		},
		pixels,
		&wgpu.TextureDataLayout{
			Offset:       0,
			BytesPerRow:  4 * uint32(width),
			RowsPerImage: uint32(height),
		},
		&size,
	)

	view, err := texture.CreateView(nil)
	if err != nil {
		core.LogError("failed to create the font texture view: %s", err)
		return err
	}
	r.fontView = view

	bindGroup, err := r.context.Device.CreateBindGroup(&wgpu.BindGroupDescriptor{
		Label:  "ui bind group",
		Layout: r.bindLayout,
		Entries: []wgpu.BindGroupEntry{
			{Binding: 0, Buffer: r.uniforms, Offset: 0, Size: uniformSize},
			{Binding: 1, Sampler: r.sampler},
			{Binding: 2, TextureView: view},
		},
	})
	if err != nil {
		core.LogError("failed to create the ui bind group: %s", err)
		return err
	}
	r.bindGroup = bindGroup
	return nil
}

// Render records the draw lists of data into pass. displaySize is in
// imgui units, framebufferSize in pixels.
func (r *UIRenderer) Render(pass *metadata.RenderPass, displaySize, framebufferSize [2]float32, data imgui.DrawData) error {
	rp := encoderFor(pass)
	if rp == nil || r.bindGroup == nil || !data.Valid() {
		return nil
	}
	if framebufferSize[0] <= 0 || framebufferSize[1] <= 0 {
		return nil
	}
	lists := data.CommandLists()
	if len(lists) == 0 {
		return nil
	}

	r.vertices = r.vertices[:0]
	r.indices = r.indices[:0]
	for _, list := range lists {
		ptr, size := list.VertexBuffer()
		r.vertices = append(r.vertices, unsafe.Slice((*byte)(ptr), size)...)
		ptr, size = list.IndexBuffer()
		r.indices = append(r.indices, unsafe.Slice((*byte)(ptr), size)...)
	}
	// Queue writes must be 4 byte multiples.
	r.indices = padTo4(r.indices)
	r.vertices = padTo4(r.vertices)

	if err := r.ensureBuffers(uint64(len(r.vertices)), uint64(len(r.indices))); err != nil {
		return err
	}
	queue := r.context.Queue
	proj := orthoProjection(displaySize)
	if err := queue.WriteBuffer(r.uniforms, 0, wgpu.ToBytes(proj[:])); err != nil {
		return err
	}
	if err := queue.WriteBuffer(r.vertexBuffer, 0, r.vertices); err != nil {
		return err
	}
	if err := queue.WriteBuffer(r.indexBuffer, 0, r.indices); err != nil {
		return err
	}

	rp.SetPipeline(r.pipeline)
	rp.SetBindGroup(0, r.bindGroup, nil)
	rp.SetVertexBuffer(0, r.vertexBuffer, 0, wgpu.WholeSize)
	rp.SetIndexBuffer(r.indexBuffer, r.indexFormat, 0, wgpu.WholeSize)

	scaleX := framebufferSize[0] / displaySize[0]
	scaleY := framebufferSize[1] / displaySize[1]
	vertexStride, _, _, _ := imgui.VertexBufferLayout()
	indexStride := imgui.IndexBufferLayout()

	var baseVertex int32
	var firstIndex uint32
	for _, list := range lists {
		_, vsize := list.VertexBuffer()
		_, isize := list.IndexBuffer()
		listFirst := firstIndex
		for _, cmd := range list.Commands() {
			if cmd.HasUserCallback() {
				cmd.CallUserCallback(list)
				continue
			}
			count := uint32(cmd.ElementCount())
			clip := cmd.ClipRect()
			x, y, w, h, ok := scissorRect(clip.X*scaleX, clip.Y*scaleY, clip.Z*scaleX, clip.W*scaleY, framebufferSize)
			if ok {
				rp.SetScissorRect(x, y, w, h)
				rp.DrawIndexed(count, 1, listFirst, baseVertex, 0)
			}
			listFirst += count
		}
		baseVertex += int32(vsize / vertexStride)
		firstIndex += uint32(isize / indexStride)
	}
	rp.SetScissorRect(0, 0, uint32(framebufferSize[0]), uint32(framebufferSize[1]))
	return nil
}

func (r *UIRenderer) ensureBuffers(vertexBytes, indexBytes uint64) error {
	if vertexBytes > r.vertexSize {
		if r.vertexBuffer != nil {
			r.vertexBuffer.Release()
		}
		size := growSize(vertexBytes)
		buffer, err := r.context.Device.CreateBuffer(&wgpu.BufferDescriptor{
			Label: "ui vertices",
			Size:  size,
			Usage: wgpu.BufferUsageVertex | wgpu.BufferUsageCopyDst,
		})
		if err != nil {
			r.vertexBuffer, r.vertexSize = nil, 0
			return fmt.Errorf("%w: ui vertices: %s", core.ErrBufferCreate, err)
		}
		r.vertexBuffer, r.vertexSize = buffer, size
	}
	if indexBytes > r.indexSize {
		if r.indexBuffer != nil {
			r.indexBuffer.Release()
		}
		size := growSize(indexBytes)
		buffer, err := r.context.Device.CreateBuffer(&wgpu.BufferDescriptor{
			Label: "ui indices",
			Size:  size,
			Usage: wgpu.BufferUsageIndex | wgpu.BufferUsageCopyDst,
		})
		if err != nil {
			r.indexBuffer, r.indexSize = nil, 0
			return fmt.Errorf("%w: ui indices: %s", core.ErrBufferCreate, err)
		}
		r.indexBuffer, r.indexSize = buffer, size
	}
	return nil
}

func (r *UIRenderer) releaseFont() {
	if r.bindGroup != nil {
		r.bindGroup.Release()
		r.bindGroup = nil
	}
	if r.fontView != nil {
		r.fontView.Release()
		r.fontView = nil
	}
	if r.fontTexture != nil {
		r.fontTexture.Release()
		r.fontTexture = nil
	}
}

func (r *UIRenderer) Release() {
	if r.vertexBuffer != nil {
		r.vertexBuffer.Release()
		r.vertexBuffer, r.vertexSize = nil, 0
	}
	if r.indexBuffer != nil {
		r.indexBuffer.Release()
		r.indexBuffer, r.indexSize = nil, 0
	}
	r.releaseFont()
	r.releases.Release()
}

func orthoProjection(displaySize [2]float32) [16]float32 {
	w, h := displaySize[0], displaySize[1]
	return [16]float32{
		2 / w, 0, 0, 0,
		0, -2 / h, 0, 0,
		0, 0, -1, 0,
		-1, 1, 0, 1,
	}
}

// scissorRect clamps a clip rectangle given as corners to the framebuffer.
func scissorRect(x1, y1, x2, y2 float32, framebufferSize [2]float32) (x, y, w, h uint32, ok bool) {
	x1 = max(x1, 0)
	y1 = max(y1, 0)
	x2 = min(x2, framebufferSize[0])
	y2 = min(y2, framebufferSize[1])
	if x2 <= x1 || y2 <= y1 {
		return 0, 0, 0, 0, false
	}
	return uint32(x1), uint32(y1), uint32(x2 - x1), uint32(y2 - y1), true
}

func padTo4(b []byte) []byte {
	for len(b)%4 != 0 {
		b = append(b, 0)
	}
	return b
}

func growSize(n uint64) uint64 {
	size := uint64(1024)
	for size < n {
		size *= 2
	}
	return size
}
