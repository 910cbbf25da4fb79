package metadata

import "fmt"

// FrameTarget is the outcome of asking the surface for the next frame.
// It is either FrameReady or SurfaceUnavailable.
type FrameTarget interface {
	isFrameTarget()
}

// FrameReady carries the view of the presentable texture for exactly one
// draw and present cycle.
type FrameReady struct {
	Width, Height uint32
	InternalData  interface{}
}

// SurfaceUnavailable means the surface yielded no texture this frame,
// typically while the window is resized or minimized.
type SurfaceUnavailable struct {
	Reason string
}

func (*FrameReady) isFrameTarget()        {}
func (SurfaceUnavailable) isFrameTarget() {}

func (s SurfaceUnavailable) String() string {
	return fmt.Sprintf("surface unavailable: %s", s.Reason)
}
