package metadata

import (
	"github.com/google/uuid"

	"github.com/spaghettifunk/colony/engine/math"
)

type RendererBackendConfig struct {
	/** @brief The name of the application */
	ApplicationName string
	/** @brief Framebuffer size requested at startup. */
	Width, Height uint32
	/** @brief Upper bound of the vertex buffer, in bytes. */
	MaxBufferSize uint64
	/** @brief When set the host presents the surface, the renderer never does. */
	Embedded bool
}

/**
 * @brief Represents a generic RenderPass. Only valid between
 * RenderPassBegin and RenderPassEnd of a single frame.
 */
type RenderPass struct {
	/** @brief The Name of the renderpass, used as a debug label */
	Name string
	/** @brief The clear colour used for this renderpass. */
	ClearColour math.Vec4
	/** @brief The target this pass draws into. */
	Target *FrameReady
	/** @brief Internal renderpass data */
	InternalData interface{}
}

type RenderBufferType int

const (
	/** @brief Buffer is use is unknown. Default, but usually invalid. */
	RENDERBUFFER_TYPE_UNKNOWN RenderBufferType = iota
	/** @brief Buffer is used for vertex data. */
	RENDERBUFFER_TYPE_VERTEX
	/** @brief Buffer is used for index data. */
	RENDERBUFFER_TYPE_INDEX
	/** @brief Buffer is used for uniform data. */
	RENDERBUFFER_TYPE_UNIFORM
)

func (t RenderBufferType) String() string {
	switch t {
	case RENDERBUFFER_TYPE_VERTEX:
		return "vertex"
	case RENDERBUFFER_TYPE_INDEX:
		return "index"
	case RENDERBUFFER_TYPE_UNIFORM:
		return "uniform"
	}
	return "unknown"
}

type RenderBuffer struct {
	/** @brief Unique identity, fresh for every created buffer. */
	ID uuid.UUID
	/** @brief The type of buffer, which typically determines its use. */
	RenderBufferType RenderBufferType
	/** @brief The total size of the buffer in bytes. */
	TotalSize uint64
	/** @brief Contains internal data for the renderer-API-specific buffer. */
	InternalData interface{}
}

func NewRenderBuffer(bufferType RenderBufferType, totalSize uint64) *RenderBuffer {
	return &RenderBuffer{
		ID:               uuid.New(),
		RenderBufferType: bufferType,
		TotalSize:        totalSize,
	}
}
