package metadata

/** @brief Determines face culling mode during rendering. */
type FaceCullMode int

const (
	/** @brief No faces are culled. */
	FaceCullModeNone FaceCullMode = 0x0
	/** @brief Only front faces are culled. */
	FaceCullModeFront FaceCullMode = 0x1
	/** @brief Only back faces are culled. */
	FaceCullModeBack FaceCullMode = 0x2
)

type PrimitiveTopology int

const (
	PrimitiveTopologyTriangleList PrimitiveTopology = iota
	PrimitiveTopologyTriangleStrip
	PrimitiveTopologyLineList
	PrimitiveTopologyPointList
)

/** @brief Vertex attribute formats understood by the backends. */
type VertexFormat int

const (
	VertexFormatFloat32x2 VertexFormat = iota
	VertexFormatFloat32x3
	VertexFormatFloat32x4
	VertexFormatUnorm8x4
)

// Size returns the byte size of one attribute of this format.
func (f VertexFormat) Size() uint64 {
	switch f {
	case VertexFormatFloat32x2:
		return 8
	case VertexFormatFloat32x3:
		return 12
	case VertexFormatFloat32x4:
		return 16
	case VertexFormatUnorm8x4:
		return 4
	}
	return 0
}

type BlendFactor int

const (
	BlendFactorZero BlendFactor = iota
	BlendFactorOne
	BlendFactorSrcAlpha
	BlendFactorOneMinusSrcAlpha
)

type BlendComponent struct {
	SrcFactor BlendFactor
	DstFactor BlendFactor
}

/** @brief Additive blending for colour and alpha, described per component. */
type BlendState struct {
	Color BlendComponent
	Alpha BlendComponent
}

// BlendAlphaOverOpaque composites colour with standard "over" and keeps the
// destination alpha untouched.
func BlendAlphaOverOpaque() BlendState {
	return BlendState{
		Color: BlendComponent{SrcFactor: BlendFactorSrcAlpha, DstFactor: BlendFactorOneMinusSrcAlpha},
		Alpha: BlendComponent{SrcFactor: BlendFactorZero, DstFactor: BlendFactorOne},
	}
}

/** @brief Opaque handle to a backend texture format. */
type TextureFormat uint32
