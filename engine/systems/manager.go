package systems

import (
	"errors"
	"fmt"

	"github.com/spaghettifunk/colony/engine/assets"
	"github.com/spaghettifunk/colony/engine/assets/loaders"
	"github.com/spaghettifunk/colony/engine/core"
	"github.com/spaghettifunk/colony/engine/platform"
	"github.com/spaghettifunk/colony/engine/renderer"
	"github.com/spaghettifunk/colony/engine/renderer/metadata"
	"github.com/spaghettifunk/colony/engine/renderer/webgpu"
)

// SystemManager owns the long lived engine services handed to the game.
type SystemManager struct {
	Platform     *platform.Platform
	AssetManager *assets.AssetManager
	Metrics      *core.Metrics

	graphics *webgpu.GraphicsContext
	backend  *webgpu.Backend
}

func NewSystemManager(p *platform.Platform, am *assets.AssetManager) *SystemManager {
	return &SystemManager{
		Platform:     p,
		AssetManager: am,
		Metrics:      core.NewMetrics(),
	}
}

// Initialize brings the GPU up against the platform window and installs the
// WebGPU backend as the renderer frontend's backend.
func (sm *SystemManager) Initialize(config metadata.RendererBackendConfig) error {
	if sm.Platform == nil || sm.Platform.Window == nil {
		return errors.New("the platform window is not started")
	}

	gc, err := webgpu.NewGraphicsContext(sm.Platform.Window, config)
	if err != nil {
		core.LogError("failed to create the graphics context: %s", err)
		return err
	}
	sm.graphics = gc
	sm.backend = webgpu.NewBackend(gc)

	if err := renderer.Initialize(sm.backend); err != nil {
		return err
	}
	core.LogInfo("%s renderer initialized", renderer.WebGPU)
	return nil
}

// Backend is the renderer backend the game draws through.
func (sm *SystemManager) Backend() renderer.RendererBackend {
	return renderer.Backend()
}

func (sm *SystemManager) UIRenderer() (*webgpu.UIRenderer, error) {
	if sm.backend == nil {
		return nil, errors.New("renderer backend is not initialized")
	}
	return sm.backend.UIRenderer()
}

// LoadShader renders the named shader from the assets directory. The copy
// compiled into the binary is used when the file is not there.
func (sm *SystemManager) LoadShader(name string, params loaders.ShaderParams) (string, error) {
	if sm.AssetManager != nil && sm.AssetManager.Root() != "" {
		res, err := sm.AssetManager.LoadAsset(name, loaders.ResourceTypeShader, params)
		if err == nil {
			if source, ok := res.Data.(string); ok {
				return source, nil
			}
			err = fmt.Errorf("unexpected %T data", res.Data)
		}
		core.LogWarn("shader %s not loaded from assets, using the builtin one: %s", name, err)
	}
	if name != "agents" {
		return "", fmt.Errorf("no builtin shader named %s", name)
	}
	return loaders.BuiltinAgentShader(params)
}

func (sm *SystemManager) OnResize(width, height uint32) error {
	return renderer.OnResize(width, height)
}

func (sm *SystemManager) Shutdown() error {
	var errs []error
	if err := renderer.Shutdown(); err != nil {
		errs = append(errs, err)
	}
	if sm.graphics != nil {
		if err := sm.graphics.Shutdown(); err != nil {
			errs = append(errs, err)
		}
	}
	if sm.AssetManager != nil {
		if err := sm.AssetManager.Shutdown(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
