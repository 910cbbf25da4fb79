package metadata

import (
	"github.com/google/uuid"
)

/**
 * @brief Represents the current state of a given pipeline.
 */
type PipelineState int

const (
	/** @brief The pipeline has not yet gone through the creation process, and is unusable.*/
	PIPELINE_STATE_NOT_CREATED PipelineState = iota
	/** @brief The pipeline is compiled and ready for use.*/
	PIPELINE_STATE_READY
	/** @brief The pipeline was released by the backend.*/
	PIPELINE_STATE_RELEASED
)

/**
 * @brief Represents a single vertex attribute.
 */
type VertexAttribute struct {
	/** @brief Shader input location. */
	Location uint32
	/** @brief Byte offset inside the vertex record. */
	Offset uint64
	Format VertexFormat
}

/**
 * @brief Layout of one interleaved vertex buffer.
 */
type VertexLayout struct {
	Stride     uint64
	Attributes []VertexAttribute
}

/**
 * @brief Everything needed to compile a render pipeline.
 */
type PipelineConfig struct {
	Name string
	/** @brief Shader text holding both stages. */
	Source string
	/** @brief Entry point of the vertex stage. */
	VertexEntry string
	/** @brief Entry point of the fragment stage. */
	FragmentEntry string
	VertexLayout  VertexLayout
	Topology      PrimitiveTopology
	CullMode      FaceCullMode
	Blend         BlendState
	/** @brief Format of the single colour target. */
	TargetFormat TextureFormat
}

/**
 * @brief Represents a pipeline on the frontend.
 */
type Pipeline struct {
	/** @brief The pipeline identifier */
	ID     uuid.UUID
	Name   string
	State  PipelineState
	Config PipelineConfig
	/** @brief An opaque pointer to hold renderer API specific data. */
	InternalData interface{}
}

func NewPipeline(config PipelineConfig) *Pipeline {
	return &Pipeline{
		ID:     uuid.New(),
		Name:   config.Name,
		State:  PIPELINE_STATE_NOT_CREATED,
		Config: config,
	}
}
