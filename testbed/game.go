package testbed

import (
	"errors"
	"math/rand/v2"
	"path/filepath"

	"github.com/spaghettifunk/colony/engine"
	"github.com/spaghettifunk/colony/engine/assets/loaders"
	"github.com/spaghettifunk/colony/engine/core"
	"github.com/spaghettifunk/colony/engine/renderer"
	"github.com/spaghettifunk/colony/engine/simulation"
	"github.com/spaghettifunk/colony/engine/ui"
)

const agentShaderName = "agents"

type ColonyGame struct {
	*engine.Game
}

type shaderSource func(name string, params loaders.ShaderParams) (string, error)

type gameState struct {
	config     *engine.Config
	controls   *ui.Controls
	population *simulation.Population
	agents     *renderer.AgentRenderer
	overlay    *ui.Overlay

	loadShader    shaderSource
	shaderChanged <-chan string
	shaderPath    string
	shaderParams  loaders.ShaderParams
	shaderDirty   bool

	width  uint32
	height uint32

	listeners map[core.EventCode]uint32
}

func NewColonyGame(config *engine.Config) *ColonyGame {
	g := &ColonyGame{
		Game: &engine.Game{
			Config: config,
			State: &gameState{
				config:    config,
				listeners: map[core.EventCode]uint32{},
			},
		},
	}

	g.FnInitialize = g.Initialize
	g.FnUpdate = g.Update
	g.FnRender = g.Render
	g.FnOnResize = g.OnResize
	g.FnShutdown = g.Shutdown

	return g
}

func (g *ColonyGame) Initialize() error {
	core.LogDebug("ColonyGame Initialize fn....")

	sm := g.SystemManager
	if sm == nil {
		return errors.New("the engine is not yet initialized with all the system managers")
	}
	config := g.Config
	state := g.State.(*gameState)

	var rng *rand.Rand
	if config.Simulation.Seed != 0 {
		rng = rand.New(rand.NewPCG(config.Simulation.Seed, config.Simulation.Seed))
	}
	fbWidth, fbHeight := sm.Platform.FramebufferSize()
	state.width, state.height = fbWidth, fbHeight
	state.population = simulation.NewPopulation(config.PopulationConfig(fbWidth, fbHeight), rng)
	state.controls = ui.NewControls(config.View.Zoom, config.View.Rotation, config.Simulation.Population)
	state.agents = renderer.NewAgentRenderer(sm.Backend(), state.population, renderer.AgentRendererConfig{
		MaxPopulation: config.Simulation.MaxPopulation,
		Embedded:      config.Application.Embedded,
	})

	state.loadShader = sm.LoadShader
	if sm.AssetManager != nil {
		state.shaderChanged = sm.AssetManager.ShaderChanged()
		state.shaderPath = sm.AssetManager.ShaderPath(agentShaderName)
	}

	state.shaderParams = loaders.ShaderParams{Width: fbWidth, Height: fbHeight}
	if err := state.buildAgentPipeline(); err != nil {
		core.LogError("failed to build the agent pipeline: %s", err)
		return err
	}

	if err := state.agents.SetPopulation(state.controls.Population); err != nil {
		return err
	}

	if uiRenderer, err := sm.UIRenderer(); err != nil {
		core.LogWarn("ui renderer unavailable, running without the control panel: %s", err)
	} else if overlay, err := ui.NewOverlay(state.controls, sm.Metrics, uiRenderer); err != nil {
		core.LogWarn("control panel unavailable: %s", err)
	} else {
		state.overlay = overlay
		state.agents.SetOverlay(overlay)
	}

	state.listeners[core.EVENT_CODE_KEY_PRESSED] = core.EventRegister(core.EVENT_CODE_KEY_PRESSED, state.onKey)
	state.listeners[core.EVENT_CODE_SHADER_CHANGED] = core.EventRegister(core.EVENT_CODE_SHADER_CHANGED, state.onShaderChanged)

	return nil
}

// Update applies the changes requested since the last frame. Nothing here
// runs while a frame is being recorded.
func (g *ColonyGame) Update(deltaTime float64) error {
	state := g.State.(*gameState)
	state.applyPendingPopulation()
	state.drainShaderChanges()
	if state.shaderDirty {
		state.shaderDirty = false
		if err := state.buildAgentPipeline(); err != nil {
			// the previous pipeline keeps drawing
			core.LogWarn("shader reload failed: %s", err)
		}
	}
	return nil
}

func (g *ColonyGame) Render(deltaTime float64) error {
	state := g.State.(*gameState)

	if state.overlay != nil {
		state.overlay.NewFrame(deltaTime)
	}
	if err := state.agents.AdvanceAndUpload(state.controls.Zoom, state.controls.Rotation); err != nil {
		if state.overlay != nil {
			state.overlay.Discard()
		}
		return err
	}
	return state.agents.Draw()
}

func (g *ColonyGame) OnResize(width uint32, height uint32) error {
	state := g.State.(*gameState)
	state.width = width
	state.height = height

	if state.overlay != nil && g.SystemManager != nil {
		ww, wh := g.SystemManager.Platform.WindowSize()
		state.overlay.SetViewport(float32(ww), float32(wh), float32(width), float32(height))
	}
	state.resize(width, height)
	return nil
}

func (g *ColonyGame) Shutdown() error {
	state := g.State.(*gameState)
	for code, id := range state.listeners {
		core.EventUnregister(code, id)
	}
	state.listeners = map[core.EventCode]uint32{}
	if state.overlay != nil {
		state.overlay.Shutdown()
		state.overlay = nil
	}
	if state.agents != nil {
		state.agents.Terminate()
	}
	core.LogInfo("colony shut down")
	return nil
}

// resize moves the wrap edges to the new viewport and marks the pipeline for
// a rebuild when the aspect baked into the shader no longer matches it.
func (s *gameState) resize(width, height uint32) {
	if width == 0 || height == 0 {
		return
	}
	s.population.SetBounds(s.config.WrapBounds(width, height))
	params := loaders.ShaderParams{Width: width, Height: height}
	if params.Aspect() != s.shaderParams.Aspect() {
		s.shaderDirty = true
	}
	s.shaderParams = params
}

func (s *gameState) buildAgentPipeline() error {
	source, err := s.loadShader(agentShaderName, s.shaderParams)
	if err != nil {
		return err
	}
	return s.agents.BuildPipeline(source)
}

func (s *gameState) applyPendingPopulation() {
	n, ok := s.controls.TakePending()
	if !ok {
		return
	}
	if err := s.agents.SetPopulation(n); err != nil {
		core.LogWarn("population change to %d rejected: %s", n, err)
		s.controls.Applied(s.agents.Population())
		return
	}
	s.controls.Applied(n)
	core.EventFire(core.EventContext{
		Type: core.EVENT_CODE_POPULATION_CHANGED,
		Data: &core.PopulationEvent{Population: n},
	})
}

func (s *gameState) drainShaderChanges() {
	if s.shaderChanged == nil {
		return
	}
	for {
		select {
		case path, ok := <-s.shaderChanged:
			if !ok {
				s.shaderChanged = nil
				return
			}
			core.EventFire(core.EventContext{
				Type: core.EVENT_CODE_SHADER_CHANGED,
				Data: &core.AssetEvent{Path: path},
			})
		default:
			return
		}
	}
}

func (s *gameState) onShaderChanged(context core.EventContext) {
	ae, ok := context.Data.(*core.AssetEvent)
	if !ok {
		core.LogError("wrong event associated with the event type `%d`", context.Type)
		return
	}
	if filepath.Clean(ae.Path) != filepath.Clean(s.shaderPath) {
		return
	}
	core.LogInfo("agent shader changed, reloading %s", ae.Path)
	s.shaderDirty = true
}

func (s *gameState) onKey(context core.EventContext) {
	ke, ok := context.Data.(*core.KeyEvent)
	if !ok {
		core.LogError("wrong event associated with the event type `%d`", context.Type)
		return
	}
	s.controls.HandleKey(ke.KeyCode)
}
