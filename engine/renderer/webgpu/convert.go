package webgpu

import (
	"github.com/cogentcore/webgpu/wgpu"

	"github.com/spaghettifunk/colony/engine/math"
	"github.com/spaghettifunk/colony/engine/renderer/metadata"
)

func fromWGPUTextureFormat(f wgpu.TextureFormat) metadata.TextureFormat {
	return metadata.TextureFormat(f)
}

func toWGPUTextureFormat(f metadata.TextureFormat) wgpu.TextureFormat {
	return wgpu.TextureFormat(f)
}

func toWGPUVertexFormat(f metadata.VertexFormat) wgpu.VertexFormat {
	switch f {
	case metadata.VertexFormatFloat32x2:
		return wgpu.VertexFormatFloat32x2
	case metadata.VertexFormatFloat32x3:
		return wgpu.VertexFormatFloat32x3
	case metadata.VertexFormatFloat32x4:
		return wgpu.VertexFormatFloat32x4
	case metadata.VertexFormatUnorm8x4:
		return wgpu.VertexFormatUnorm8x4
	}
	return wgpu.VertexFormatUndefined
}

func toWGPUTopology(t metadata.PrimitiveTopology) wgpu.PrimitiveTopology {
	switch t {
	case metadata.PrimitiveTopologyTriangleStrip:
		return wgpu.PrimitiveTopologyTriangleStrip
	case metadata.PrimitiveTopologyLineList:
		return wgpu.PrimitiveTopologyLineList
	case metadata.PrimitiveTopologyPointList:
		return wgpu.PrimitiveTopologyPointList
	}
	return wgpu.PrimitiveTopologyTriangleList
}

func toWGPUCullMode(m metadata.FaceCullMode) wgpu.CullMode {
	switch m {
	case metadata.FaceCullModeFront:
		return wgpu.CullModeFront
	case metadata.FaceCullModeBack:
		return wgpu.CullModeBack
	}
	return wgpu.CullModeNone
}

func toWGPUBlendFactor(f metadata.BlendFactor) wgpu.BlendFactor {
	switch f {
	case metadata.BlendFactorOne:
		return wgpu.BlendFactorOne
	case metadata.BlendFactorSrcAlpha:
		return wgpu.BlendFactorSrcAlpha
	case metadata.BlendFactorOneMinusSrcAlpha:
		return wgpu.BlendFactorOneMinusSrcAlpha
	}
	return wgpu.BlendFactorZero
}

func toWGPUBlendState(b metadata.BlendState) *wgpu.BlendState {
	return &wgpu.BlendState{
		Color: wgpu.BlendComponent{
			SrcFactor: toWGPUBlendFactor(b.Color.SrcFactor),
			DstFactor: toWGPUBlendFactor(b.Color.DstFactor),
			Operation: wgpu.BlendOperationAdd,
		},
		Alpha: wgpu.BlendComponent{
			SrcFactor: toWGPUBlendFactor(b.Alpha.SrcFactor),
			DstFactor: toWGPUBlendFactor(b.Alpha.DstFactor),
			Operation: wgpu.BlendOperationAdd,
		},
	}
}

func toWGPUColor(c math.Vec4) wgpu.Color {
	return wgpu.Color{R: float64(c.X), G: float64(c.Y), B: float64(c.Z), A: float64(c.W)}
}
