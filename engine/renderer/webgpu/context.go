package webgpu

import (
	"fmt"
	"slices"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/cogentcore/webgpu/wgpuglfw"
	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/spaghettifunk/colony/engine/core"
	"github.com/spaghettifunk/colony/engine/renderer/metadata"
)

// GraphicsContext bundles the instance, surface, adapter, device and queue of
// the process. Everything else borrows these handles.
type GraphicsContext struct {
	Instance *wgpu.Instance
	Surface  *wgpu.Surface
	Adapter  *wgpu.Adapter
	Device   *wgpu.Device
	Queue    *wgpu.Queue

	SurfaceFormat wgpu.TextureFormat
	AlphaMode     wgpu.CompositeAlphaMode

	FramebufferWidth  uint32
	FramebufferHeight uint32

	releases core.ReleaseStack
}

// NewGraphicsContext acquires every handle in dependency order. On failure
// the handles acquired so far are released in reverse.
func NewGraphicsContext(window *glfw.Window, config metadata.RendererBackendConfig) (*GraphicsContext, error) {
	ctx := &GraphicsContext{
		FramebufferWidth:  config.Width,
		FramebufferHeight: config.Height,
	}
	if err := ctx.initialize(window, config); err != nil {
		ctx.releases.Release()
		return nil, err
	}
	return ctx, nil
}

func (c *GraphicsContext) initialize(window *glfw.Window, config metadata.RendererBackendConfig) error {
	c.Instance = wgpu.CreateInstance(nil)
	c.releases.Push("instance", c.Instance.Release)

	c.Surface = c.Instance.CreateSurface(wgpuglfw.GetSurfaceDescriptor(window))
	if c.Surface == nil {
		core.LogError("failed to create the window surface")
		return fmt.Errorf("create surface: %w", core.ErrSurfaceConfigure)
	}
	c.releases.Push("surface", c.Surface.Release)

	adapter, err := c.Instance.RequestAdapter(&wgpu.RequestAdapterOptions{
		CompatibleSurface: c.Surface,
		PowerPreference:   wgpu.PowerPreferenceHighPerformance,
	})
	if err != nil {
		core.LogError("no adapter compatible with the surface: %s", err)
		return fmt.Errorf("%w: %s", core.ErrNoAdapter, err)
	}
	c.Adapter = adapter
	c.releases.Push("adapter", c.Adapter.Release)

	core.LogDebug("GPU adapter acquired")

	limits := requiredLimits(c.Adapter.GetLimits().Limits, config.MaxBufferSize)
	device, err := c.Adapter.RequestDevice(&wgpu.DeviceDescriptor{
		Label: config.ApplicationName + " device",
		RequiredLimits: &wgpu.RequiredLimits{
			Limits: limits,
		},
	})
	if err != nil {
		core.LogError("failed to request a device: %s", err)
		return fmt.Errorf("%w: %s", core.ErrNoDevice, err)
	}
	c.Device = device
	c.releases.Push("device", c.Device.Release)

	c.Queue = c.Device.GetQueue()
	c.releases.Push("queue", c.Queue.Release)

	caps := c.Surface.GetCapabilities(c.Adapter)
	if len(caps.Formats) == 0 {
		core.LogError("surface reports no supported formats")
		return fmt.Errorf("no surface formats: %w", core.ErrSurfaceConfigure)
	}
	c.SurfaceFormat = caps.Formats[0]
	c.AlphaMode = wgpu.CompositeAlphaModeOpaque
	if len(caps.AlphaModes) > 0 && !slices.Contains(caps.AlphaModes, c.AlphaMode) {
		c.AlphaMode = caps.AlphaModes[0]
	}

	if c.FramebufferWidth == 0 || c.FramebufferHeight == 0 {
		w, h := window.GetFramebufferSize()
		c.FramebufferWidth, c.FramebufferHeight = uint32(w), uint32(h)
	}
	c.configureSurface()
	pushUnconfigure(&c.releases, c.Surface)

	core.LogInfo("graphics context ready: format %v, %dx%d", c.SurfaceFormat, c.FramebufferWidth, c.FramebufferHeight)
	return nil
}

type unconfigurer interface {
	Unconfigure()
}

// pushUnconfigure drops the surface configuration before the device and queue
// it references are released. Bindings without Unconfigure push nothing.
func pushUnconfigure(releases *core.ReleaseStack, surface any) {
	if u, ok := surface.(unconfigurer); ok {
		releases.Push("surface configuration", u.Unconfigure)
	}
}

func (c *GraphicsContext) configureSurface() {
	c.Surface.Configure(c.Adapter, c.Device, &wgpu.SurfaceConfiguration{
		Usage:       wgpu.TextureUsageRenderAttachment,
		Format:      c.SurfaceFormat,
		Width:       c.FramebufferWidth,
		Height:      c.FramebufferHeight,
		PresentMode: wgpu.PresentModeFifo,
		AlphaMode:   c.AlphaMode,
	})
}

// AcquireNextFrameTarget returns a view on the next presentable texture, or
// SurfaceUnavailable when the surface has none to give.
func (c *GraphicsContext) AcquireNextFrameTarget() metadata.FrameTarget {
	if c.Surface == nil {
		return metadata.SurfaceUnavailable{Reason: "no surface"}
	}
	texture, err := c.Surface.GetCurrentTexture()
	if err != nil || texture == nil {
		reason := "no texture"
		if err != nil {
			reason = err.Error()
		}
		return metadata.SurfaceUnavailable{Reason: reason}
	}
	view, err := texture.CreateView(nil)
	if err != nil {
		texture.Release()
		return metadata.SurfaceUnavailable{Reason: err.Error()}
	}
	return &metadata.FrameReady{
		Width:        c.FramebufferWidth,
		Height:       c.FramebufferHeight,
		InternalData: &frameData{texture: texture, view: view},
	}
}

// Resize reconfigures the surface. Zero sizes are ignored.
func (c *GraphicsContext) Resize(width, height uint32) {
	if width == 0 || height == 0 {
		return
	}
	if width == c.FramebufferWidth && height == c.FramebufferHeight {
		return
	}
	c.FramebufferWidth = width
	c.FramebufferHeight = height
	c.configureSurface()
	core.LogDebug("surface reconfigured to %dx%d", width, height)
}

// Present shows the last acquired texture.
func (c *GraphicsContext) Present() {
	c.Surface.Present()
}

// Shutdown releases every handle in reverse acquisition order. Idempotent.
func (c *GraphicsContext) Shutdown() error {
	if c.releases.Len() == 0 {
		return nil
	}
	c.releases.Release()
	c.Queue = nil
	c.Device = nil
	c.Adapter = nil
	c.Surface = nil
	c.Instance = nil
	core.LogInfo("graphics context released")
	return nil
}
