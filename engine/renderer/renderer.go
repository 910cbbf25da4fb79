package renderer

import (
	"errors"
	"sync"
	"unsafe"

	"github.com/spaghettifunk/colony/engine/core"
)

type RendererType uint8

const (
	WebGPU RendererType = iota
)

func (t RendererType) String() string {
	switch t {
	case WebGPU:
		return "webgpu"
	}
	return "unknown"
}

type Renderer struct {
	backend RendererBackend
}

var initRenderer sync.Once
var renderer *Renderer

// Initialize installs the process wide backend. Only the first call wins.
func Initialize(backend RendererBackend) error {
	if backend == nil {
		return errors.New("renderer backend is nil")
	}
	initRenderer.Do(func() {
		renderer = &Renderer{
			backend: backend,
		}
	})
	return nil
}

func Shutdown() error {
	if renderer == nil {
		return nil
	}
	if err := renderer.backend.Shutdown(); err != nil {
		core.LogError("failed to shut the renderer backend down: %s", err)
		return err
	}
	return nil
}

func OnResize(width, height uint32) error {
	if renderer == nil {
		return nil
	}
	return renderer.backend.Resized(width, height)
}

// Backend returns the active backend. Nil before Initialize.
func Backend() RendererBackend {
	if renderer == nil {
		return nil
	}
	return renderer.backend
}

// float32Bytes reinterprets vertex floats as the byte stream the GPU reads.
func float32Bytes(data []float32) []byte {
	if len(data) == 0 {
		return nil
	}
	return unsafe.Slice((*byte)(unsafe.Pointer(&data[0])), len(data)*4)
}
