package ui

import (
	"fmt"
	"unsafe"

	"github.com/inkyblackness/imgui-go/v4"

	"github.com/spaghettifunk/colony/engine/core"
	"github.com/spaghettifunk/colony/engine/renderer/metadata"
)

const fontTextureID imgui.TextureID = 1

// DrawDataRenderer turns imgui draw data into GPU commands.
type DrawDataRenderer interface {
	SetFontTexture(width, height int, pixels []byte) error
	Render(pass *metadata.RenderPass, displaySize, framebufferSize [2]float32, data imgui.DrawData) error
}

// Overlay is the control panel drawn on top of the agents.
type Overlay struct {
	context  *imgui.Context
	io       imgui.IO
	renderer DrawDataRenderer
	controls *Controls
	metrics  *core.Metrics

	frameOpen       bool
	displaySize     [2]float32
	framebufferSize [2]float32
	listeners       map[core.EventCode]uint32
}

func NewOverlay(controls *Controls, metrics *core.Metrics, renderer DrawDataRenderer) (*Overlay, error) {
	o := &Overlay{
		context:   imgui.CreateContext(nil),
		renderer:  renderer,
		controls:  controls,
		metrics:   metrics,
		listeners: map[core.EventCode]uint32{},
	}
	o.io = imgui.CurrentIO()
	o.io.SetIniFilename("")

	fonts := o.io.Fonts()
	image := fonts.TextureDataRGBA32()
	pixels := unsafe.Slice((*byte)(image.Pixels), image.Width*image.Height*4)
	if err := renderer.SetFontTexture(image.Width, image.Height, pixels); err != nil {
		o.context.Destroy()
		core.LogError("failed to upload the ui font atlas: %s", err)
		return nil, err
	}
	fonts.SetTextureID(fontTextureID)

	for _, code := range []core.EventCode{
		core.EVENT_CODE_MOUSE_MOVED,
		core.EVENT_CODE_BUTTON_PRESSED,
		core.EVENT_CODE_BUTTON_RELEASED,
		core.EVENT_CODE_MOUSE_WHEEL,
	} {
		o.listeners[code] = core.EventRegister(code, o.onMouse)
	}
	return o, nil
}

// SetViewport updates the logical window size and the framebuffer size in pixels.
func (o *Overlay) SetViewport(width, height, framebufferWidth, framebufferHeight float32) {
	o.displaySize = [2]float32{width, height}
	o.framebufferSize = [2]float32{framebufferWidth, framebufferHeight}
	o.io.SetDisplaySize(imgui.Vec2{X: width, Y: height})
}

// NewFrame begins a UI frame and builds the control panel.
func (o *Overlay) NewFrame(deltaTime float64) {
	if o.frameOpen {
		o.Discard()
	}
	if deltaTime > 0 {
		o.io.SetDeltaTime(float32(deltaTime))
	}
	imgui.NewFrame()
	o.frameOpen = true
	o.buildPanel()
}

func (o *Overlay) buildPanel() {
	imgui.SetNextWindowPosV(imgui.Vec2{X: 10, Y: 10}, imgui.ConditionFirstUseEver, imgui.Vec2{})
	imgui.Begin("Colony")
	defer imgui.End()

	zoom := o.controls.Zoom
	if imgui.SliderFloat("Zoom", &zoom, MinZoom, MaxZoom) {
		o.controls.SetZoom(zoom)
	}
	rotation := o.controls.Rotation
	if imgui.SliderFloat("Rotation", &rotation, 0, 359.9) {
		o.controls.SetRotation(rotation)
	}

	imgui.Separator()
	imgui.Text(fmt.Sprintf("Agents: %d", o.controls.Population))
	for i, n := range PopulationPresets {
		if i > 0 {
			imgui.SameLine()
		}
		if imgui.Button(presetLabel(n)) {
			o.controls.RequestPopulation(n)
		}
	}
	if imgui.Button("Respawn") {
		o.controls.RequestRespawn()
	}

	if o.metrics != nil {
		imgui.Separator()
		fps, ms := o.metrics.Frame()
		imgui.Text(fmt.Sprintf("%.0f FPS  %.2f ms", fps, ms))
	}
}

// Discard ends a frame that will not be rendered.
func (o *Overlay) Discard() {
	if !o.frameOpen {
		return
	}
	imgui.EndFrame()
	o.frameOpen = false
}

// Record finalizes the UI frame and appends its draw commands to pass.
func (o *Overlay) Record(pass *metadata.RenderPass) error {
	if !o.frameOpen {
		return nil
	}
	imgui.Render()
	o.frameOpen = false
	return o.renderer.Render(pass, o.displaySize, o.framebufferSize, imgui.RenderedDrawData())
}

func (o *Overlay) Shutdown() {
	for code, id := range o.listeners {
		core.EventUnregister(code, id)
	}
	o.listeners = map[core.EventCode]uint32{}
	if o.context != nil {
		o.context.Destroy()
		o.context = nil
	}
}

func (o *Overlay) onMouse(ctx core.EventContext) {
	e, ok := ctx.Data.(*core.MouseEvent)
	if !ok {
		return
	}
	switch ctx.Type {
	case core.EVENT_CODE_MOUSE_MOVED:
		o.io.SetMousePosition(imgui.Vec2{X: float32(e.PosX), Y: float32(e.PosY)})
	case core.EVENT_CODE_BUTTON_PRESSED:
		o.io.SetMouseButtonDown(imguiButton(e.Button), true)
	case core.EVENT_CODE_BUTTON_RELEASED:
		o.io.SetMouseButtonDown(imguiButton(e.Button), false)
	case core.EVENT_CODE_MOUSE_WHEEL:
		o.io.AddMouseWheelDelta(0, float32(e.Scroll))
	}
}

func imguiButton(b core.Button) int {
	switch b {
	case core.BUTTON_RIGHT:
		return 1
	case core.BUTTON_MIDDLE:
		return 2
	}
	return 0
}

func presetLabel(n int) string {
	switch {
	case n >= 1000 && n%1000 == 0:
		return fmt.Sprintf("%dk", n/1000)
	default:
		return fmt.Sprintf("%d", n)
	}
}
