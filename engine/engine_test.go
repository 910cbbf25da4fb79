package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spaghettifunk/colony/engine/core"
)

type resizeRecorder struct {
	sizes [][2]uint32
}

func newTestEngine(t *testing.T) (*Engine, *resizeRecorder) {
	t.Helper()
	config := DefaultConfig()
	rec := &resizeRecorder{}
	g := &Game{
		Config: &config,
		FnOnResize: func(width, height uint32) error {
			rec.sizes = append(rec.sizes, [2]uint32{width, height})
			return nil
		},
	}
	e, err := New(g)
	require.NoError(t, err)
	t.Cleanup(func() { _ = e.assetManager.Shutdown() })
	return e, rec
}

func TestNewRequiresConfig(t *testing.T) {
	_, err := New(&Game{})
	assert.Error(t, err)
	_, err = New(nil)
	assert.Error(t, err)
}

func TestResizeSuspendsWhileMinimized(t *testing.T) {
	e, rec := newTestEngine(t)

	e.onResized(core.EventContext{Type: core.EVENT_CODE_RESIZED, Data: &core.SystemEvent{WindowWidth: 0, WindowHeight: 0}})
	assert.True(t, e.isSuspended)
	assert.Empty(t, rec.sizes)

	e.onResized(core.EventContext{Type: core.EVENT_CODE_RESIZED, Data: &core.SystemEvent{WindowWidth: 640, WindowHeight: 480}})
	assert.False(t, e.isSuspended)
	assert.Equal(t, [][2]uint32{{640, 480}}, rec.sizes)

	// same size again is not forwarded
	e.onResized(core.EventContext{Type: core.EVENT_CODE_RESIZED, Data: &core.SystemEvent{WindowWidth: 640, WindowHeight: 480}})
	assert.Len(t, rec.sizes, 1)

	w, h := e.GetFramebufferSize()
	assert.Equal(t, uint32(640), w)
	assert.Equal(t, uint32(480), h)
}

func TestEscapeFiresQuit(t *testing.T) {
	require.True(t, core.EventSystemInitialize())
	t.Cleanup(func() { _ = core.EventSystemShutdown() })

	e, _ := newTestEngine(t)
	core.EventRegister(core.EVENT_CODE_APPLICATION_QUIT, e.onEvent)

	e.onKey(core.EventContext{Type: core.EVENT_CODE_KEY_PRESSED, Data: &core.KeyEvent{KeyCode: core.KEY_A}})
	assert.True(t, e.isRunning)

	e.onKey(core.EventContext{Type: core.EVENT_CODE_KEY_PRESSED, Data: &core.KeyEvent{KeyCode: core.KEY_ESCAPE}})
	assert.False(t, e.isRunning)
}

func TestRequestQuit(t *testing.T) {
	e, _ := newTestEngine(t)
	assert.False(t, e.quitRequested.Load())
	e.RequestQuit()
	assert.True(t, e.quitRequested.Load())
}
