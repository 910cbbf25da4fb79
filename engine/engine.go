package engine

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync/atomic"

	"github.com/spaghettifunk/colony/engine/assets"
	"github.com/spaghettifunk/colony/engine/core"
	"github.com/spaghettifunk/colony/engine/platform"
	"github.com/spaghettifunk/colony/engine/renderer/metadata"
	"github.com/spaghettifunk/colony/engine/renderer/webgpu"
	"github.com/spaghettifunk/colony/engine/systems"
)

type Stage uint8

const (
	// Engine is in an uninitialized state
	EngineStageUninitialized Stage = iota
	// Engine is currently initializing
	EngineStageInitializing
	// Engine initialization is complete
	EngineStageInitialized
	// Engine is currently running
	EngineStageRunning
	// Engine is in the process of shutting down
	EngineStageShuttingDown
)

type Engine struct {
	currentStage  Stage
	gameInstance  *Game
	isRunning     bool
	isSuspended   bool
	quitRequested atomic.Bool
	platform      *platform.Platform
	assetManager  *assets.AssetManager
	systemManager *systems.SystemManager
	width         uint32
	height        uint32
	clock         *core.Clock
	lastTime      float64
}

func New(g *Game) (*Engine, error) {
	if g == nil || g.Config == nil {
		return nil, errors.New("game and its configuration are required")
	}
	core.SetLogLevel(g.Config.Application.Level())

	p := platform.New()

	am, err := assets.NewAssetManager()
	if err != nil {
		core.LogError(err.Error())
		return nil, err
	}

	return &Engine{
		currentStage:  EngineStageUninitialized,
		gameInstance:  g,
		clock:         core.NewClock(),
		platform:      p,
		assetManager:  am,
		systemManager: systems.NewSystemManager(p, am),
		isRunning:     true,
		isSuspended:   false,
		width:         g.Config.Application.StartWidth,
		height:        g.Config.Application.StartHeight,
		lastTime:      0,
	}, nil
}

func (e *Engine) Initialize() error {
	e.currentStage = EngineStageInitializing
	config := e.gameInstance.Config.Application

	// initialize input
	if err := core.InputInitialize(); err != nil {
		return err
	}

	// initialize events
	if !core.EventSystemInitialize() {
		return fmt.Errorf("failed to initialize the event system")
	}

	// register some events
	core.EventRegister(core.EVENT_CODE_APPLICATION_QUIT, e.onEvent)
	core.EventRegister(core.EVENT_CODE_KEY_PRESSED, e.onKey)
	core.EventRegister(core.EVENT_CODE_RESIZED, e.onResized)

	if err := e.platform.Startup(config.Name, config.StartPosX, config.StartPosY, config.StartWidth, config.StartHeight); err != nil {
		return err
	}

	// the asset directory is optional, builtin shaders cover its absence
	wd, err := os.Getwd()
	if err != nil {
		return err
	}
	if err := e.assetManager.Initialize(filepath.Join(wd, "assets")); err != nil {
		core.LogWarn("assets directory not available, hot reload disabled: %s", err)
	}

	// the surface is configured in pixels, which differ from the window size on HiDPI screens
	fbWidth, fbHeight := e.platform.FramebufferSize()
	if fbWidth == 0 || fbHeight == 0 {
		fbWidth, fbHeight = config.StartWidth, config.StartHeight
	}
	e.width, e.height = fbWidth, fbHeight
	if err := e.systemManager.Initialize(metadata.RendererBackendConfig{
		ApplicationName: config.Name,
		Width:           fbWidth,
		Height:          fbHeight,
		MaxBufferSize:   webgpu.MaxBufferSizeFor(e.gameInstance.Config.Simulation.MaxPopulation),
		Embedded:        config.Embedded,
	}); err != nil {
		core.LogError("failed to initialize the renderer: %s", err)
		return err
	}

	e.gameInstance.SystemManager = e.systemManager
	if err := e.gameInstance.FnInitialize(); err != nil {
		core.LogError("game initialization failed: %s", err)
		return err
	}

	if err := e.gameInstance.FnOnResize(e.width, e.height); err != nil {
		return err
	}
	e.currentStage = EngineStageInitialized
	return nil
}

func (e *Engine) Run() error {
	e.currentStage = EngineStageRunning
	e.clock.Start()
	e.clock.Update()

	e.lastTime = e.clock.Elapsed()
	metrics := e.systemManager.Metrics

	for e.isRunning {
		if !e.platform.PumpMessages() || e.quitRequested.Load() {
			e.isRunning = false
			break
		}

		if e.isSuspended {
			e.platform.WaitMessages(0.1)
			continue
		}

		// Update clock and get delta time.
		e.clock.Update()

		var currentTime float64 = e.clock.Elapsed()
		var delta float64 = (currentTime - e.lastTime)

		if err := e.gameInstance.FnUpdate(delta); err != nil {
			core.LogError("game update failed, shutting down: %s", err)
			e.isRunning = false
			return err
		}

		// Call the game's render routine.
		if err := e.gameInstance.FnRender(delta); err != nil {
			core.LogError("game render failed, shutting down: %s", err)
			e.isRunning = false
			return err
		}

		metrics.Update(delta)

		// NOTE: Input update/state copying should always be handled
		// after any input should be recorded; I.E. before this line.
		// As a safety, input is the last thing to be updated before
		// this frame ends.
		core.InputUpdate(delta)

		// Update last time
		e.lastTime = currentTime
	}

	return nil
}

// RequestQuit stops the frame loop before the next frame. Safe to call from
// any goroutine, e.g. a signal handler.
func (e *Engine) RequestQuit() {
	e.quitRequested.Store(true)
}

func (e *Engine) Shutdown() error {
	if e.currentStage == EngineStageShuttingDown {
		return nil
	}
	e.currentStage = EngineStageShuttingDown

	var errs []error
	if e.gameInstance.FnShutdown != nil {
		if err := e.gameInstance.FnShutdown(); err != nil {
			errs = append(errs, err)
		}
	}
	if err := e.systemManager.Shutdown(); err != nil {
		errs = append(errs, err)
	}
	if err := core.EventSystemShutdown(); err != nil {
		errs = append(errs, err)
	}
	if err := core.InputShutdown(); err != nil {
		errs = append(errs, err)
	}
	if err := e.platform.Shutdown(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// GetFramebufferSize returns the width and height (in this order)
// of the application framebuffer
func (e *Engine) GetFramebufferSize() (uint32, uint32) {
	return e.width, e.height
}

func (e *Engine) onEvent(context core.EventContext) {
	switch context.Type {
	case core.EVENT_CODE_APPLICATION_QUIT:
		{
			core.LogInfo("EVENT_CODE_APPLICATION_QUIT received, shutting down.")
			e.isRunning = false
		}
	}
}

func (e *Engine) onKey(context core.EventContext) {
	ke, ok := context.Data.(*core.KeyEvent)
	if !ok {
		core.LogError("wrong event associated with the event type `%d`", context.Type)
		return
	}

	if ke.KeyCode == core.KEY_ESCAPE {
		// NOTE: Technically firing an event to itself, but there may be other listeners.
		core.EventFire(core.EventContext{
			Type: core.EVENT_CODE_APPLICATION_QUIT,
		})
	}
}

func (e *Engine) onResized(context core.EventContext) {
	se, ok := context.Data.(*core.SystemEvent)
	if !ok {
		core.LogError("wrong event associated with the event type `%d`", context.Type)
		return
	}

	width := se.WindowWidth
	height := se.WindowHeight

	if width == e.width && height == e.height {
		return
	}
	e.width = width
	e.height = height

	core.LogDebug("Window resize: %d, %d", width, height)

	// Handle minimization
	if width == 0 || height == 0 {
		core.LogInfo("Window minimized, suspending application.")
		e.isSuspended = true
		return
	}
	if e.isSuspended {
		core.LogInfo("Window restored, resuming application.")
		e.isSuspended = false
	}
	if err := e.systemManager.OnResize(width, height); err != nil {
		core.LogError(err.Error())
	}
	if err := e.gameInstance.FnOnResize(width, height); err != nil {
		core.LogError(err.Error())
	}
}
