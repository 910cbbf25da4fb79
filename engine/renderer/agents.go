package renderer

import (
	"errors"
	"fmt"

	"github.com/spaghettifunk/colony/engine/core"
	"github.com/spaghettifunk/colony/engine/math"
	"github.com/spaghettifunk/colony/engine/renderer/metadata"
	"github.com/spaghettifunk/colony/engine/simulation"
)

const (
	AgentVertexEntry   = "vs_main"
	AgentFragmentEntry = "fs_main"
)

var AgentClearColour = math.NewVec4Create(0.05, 0.05, 0.05, 1.0)

type AgentRendererConfig struct {
	MaxPopulation int
	// Embedded hosts present the surface themselves.
	Embedded bool
}

// AgentRenderer owns the agent population, the pipeline drawing it and the
// vertex buffer holding one triangle per agent.
type AgentRenderer struct {
	backend    RendererBackend
	overlay    Overlay
	population *simulation.Population
	config     AgentRendererConfig

	pipeline     *metadata.Pipeline
	vertexBuffer *metadata.RenderBuffer
	vertexCount  uint32
	scratch      []float32
}

func NewAgentRenderer(backend RendererBackend, population *simulation.Population, config AgentRendererConfig) *AgentRenderer {
	return &AgentRenderer{
		backend:    backend,
		population: population,
		config:     config,
	}
}

// SetOverlay attaches the UI drawn on top of the agents. nil disables it.
func (r *AgentRenderer) SetOverlay(overlay Overlay) {
	r.overlay = overlay
}

// AgentPipelineConfig describes the agent pipeline for the given shader and target.
func AgentPipelineConfig(source string, format metadata.TextureFormat) metadata.PipelineConfig {
	return metadata.PipelineConfig{
		Name:          "Pipeline.Builtin.Agents",
		Source:        source,
		VertexEntry:   AgentVertexEntry,
		FragmentEntry: AgentFragmentEntry,
		VertexLayout: metadata.VertexLayout{
			Stride: simulation.VertexStride,
			Attributes: []metadata.VertexAttribute{
				{Location: 0, Offset: 0, Format: metadata.VertexFormatFloat32x2},
				{Location: 1, Offset: simulation.ColorOffset, Format: metadata.VertexFormatFloat32x3},
			},
		},
		Topology:     metadata.PrimitiveTopologyTriangleList,
		CullMode:     metadata.FaceCullModeNone,
		Blend:        metadata.BlendAlphaOverOpaque(),
		TargetFormat: format,
	}
}

// BuildPipeline compiles source into the agent pipeline, replacing any
// previous one. On failure the previous pipeline stays in use.
func (r *AgentRenderer) BuildPipeline(source string) error {
	if source == "" {
		core.LogError("agent shader source is empty")
		return fmt.Errorf("build agent pipeline: %w", core.ErrInvalidShader)
	}

	pipeline, err := r.backend.PipelineCreate(AgentPipelineConfig(source, r.backend.SurfaceFormat()))
	if err != nil {
		core.LogError("failed to create the agent pipeline: %s", err)
		return err
	}

	if r.pipeline != nil {
		r.backend.PipelineDestroy(r.pipeline)
	}
	r.pipeline = pipeline
	core.LogDebug("agent pipeline %s ready", pipeline.ID)
	return nil
}

// SetPopulation respawns n agents and reallocates the vertex buffer to fit
// them exactly. The previous buffer is always released first.
func (r *AgentRenderer) SetPopulation(n int) error {
	if n < 0 || n > r.config.MaxPopulation {
		core.LogWarn("population %d outside [0, %d]", n, r.config.MaxPopulation)
		return fmt.Errorf("set population to %d: %w", n, core.ErrPopulationOutOfRange)
	}

	r.releaseVertexBuffer()
	r.vertexCount = 0

	if err := r.population.Reset(n); err != nil {
		return err
	}

	if n > 0 {
		size := uint64(n) * simulation.FloatsPerAgent * simulation.BytesPerFloat
		buffer, err := r.backend.RenderBufferCreate(metadata.RENDERBUFFER_TYPE_VERTEX, size)
		if err != nil {
			core.LogError("failed to create vertex buffer of %d bytes: %s", size, err)
			return err
		}
		r.vertexBuffer = buffer
	}
	r.vertexCount = uint32(n * simulation.VerticesPerAgent)
	core.LogInfo("population set to %d agents (%d vertices)", n, r.vertexCount)
	return nil
}

// AdvanceAndUpload steps the simulation one frame and overwrites the vertex
// buffer with the tessellated population. rotation is in degrees.
func (r *AgentRenderer) AdvanceAndUpload(zoom, rotation float32) error {
	r.population.Step()
	r.scratch = r.population.Tessellate(zoom, rotation, r.scratch)

	if r.vertexBuffer == nil {
		return nil
	}
	if err := r.backend.RenderBufferLoadRange(r.vertexBuffer, 0, float32Bytes(r.scratch)); err != nil {
		core.LogError("failed to upload agent vertices: %s", err)
		return err
	}
	return nil
}

// Draw records and submits one frame. A surface without a texture skips the
// frame without error.
func (r *AgentRenderer) Draw() error {
	if r.pipeline == nil {
		if r.overlay != nil {
			r.overlay.Discard()
		}
		return core.ErrPipelineNotReady
	}

	var target *metadata.FrameReady
	switch t := r.backend.FrameAcquire().(type) {
	case *metadata.FrameReady:
		target = t
	case metadata.SurfaceUnavailable:
		core.LogDebug("skipping frame: %s", t.Reason)
	}
	if target == nil {
		if r.overlay != nil {
			r.overlay.Discard()
		}
		return nil
	}

	pass := &metadata.RenderPass{
		Name:        "Renderpass.Builtin.Agents",
		ClearColour: AgentClearColour,
		Target:      target,
	}
	if err := r.recordPass(pass); err != nil {
		r.backend.FrameRelease(target)
		return err
	}
	if err := r.backend.RenderPassSubmit(pass); err != nil {
		r.backend.FrameRelease(target)
		return err
	}

	r.backend.FrameRelease(target)
	if !r.config.Embedded {
		r.backend.FramePresent()
	}
	r.backend.Poll()
	return nil
}

func (r *AgentRenderer) recordPass(pass *metadata.RenderPass) error {
	if err := r.backend.RenderPassBegin(pass); err != nil {
		if r.overlay != nil {
			r.overlay.Discard()
		}
		return err
	}

	r.backend.RenderPassSetPipeline(pass, r.pipeline)
	if r.vertexBuffer != nil && r.vertexCount > 0 {
		size := uint64(r.vertexCount) * simulation.VertexStride
		r.backend.RenderPassSetVertexBuffer(pass, 0, r.vertexBuffer, 0, size)
		r.backend.RenderPassDraw(pass, r.vertexCount, 1)
	}

	var overlayErr error
	if r.overlay != nil {
		overlayErr = r.overlay.Record(pass)
	}
	return errors.Join(overlayErr, r.backend.RenderPassEnd(pass))
}

// Terminate releases the pipeline and the vertex buffer. Safe to call more
// than once and on a renderer that never finished initializing.
func (r *AgentRenderer) Terminate() {
	r.releaseVertexBuffer()
	r.vertexCount = 0
	if r.pipeline != nil {
		r.backend.PipelineDestroy(r.pipeline)
		r.pipeline = nil
	}
}

func (r *AgentRenderer) releaseVertexBuffer() {
	if r.vertexBuffer != nil {
		r.backend.RenderBufferDestroy(r.vertexBuffer)
		r.vertexBuffer = nil
	}
}

func (r *AgentRenderer) VertexCount() uint32 {
	return r.vertexCount
}

// Agents is a read-only view of the current population.
func (r *AgentRenderer) Agents() []simulation.Agent {
	return r.population.Agents()
}

func (r *AgentRenderer) Population() int {
	return r.population.Len()
}

func (r *AgentRenderer) Pipeline() *metadata.Pipeline {
	return r.pipeline
}

func (r *AgentRenderer) VertexBuffer() *metadata.RenderBuffer {
	return r.vertexBuffer
}
