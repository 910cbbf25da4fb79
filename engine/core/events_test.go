package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func withEventSystem(t *testing.T) {
	t.Helper()
	require.True(t, EventSystemInitialize())
	t.Cleanup(func() { _ = EventSystemShutdown() })
}

func TestEventFireDispatchesInRegistrationOrder(t *testing.T) {
	withEventSystem(t)

	var calls []int
	EventRegister(EVENT_CODE_POPULATION_CHANGED, func(ctx EventContext) { calls = append(calls, 1) })
	EventRegister(EVENT_CODE_POPULATION_CHANGED, func(ctx EventContext) {
		pe, ok := ctx.Data.(*PopulationEvent)
		require.True(t, ok)
		calls = append(calls, pe.Population)
	})

	handled := EventFire(EventContext{Type: EVENT_CODE_POPULATION_CHANGED, Data: &PopulationEvent{Population: 100}})
	assert.True(t, handled)
	assert.Equal(t, []int{1, 100}, calls)
}

func TestEventUnregister(t *testing.T) {
	withEventSystem(t)

	count := 0
	id := EventRegister(EVENT_CODE_APPLICATION_QUIT, func(EventContext) { count++ })
	assert.NotZero(t, id)
	assert.True(t, EventUnregister(EVENT_CODE_APPLICATION_QUIT, id))
	assert.False(t, EventUnregister(EVENT_CODE_APPLICATION_QUIT, id))

	assert.False(t, EventFire(EventContext{Type: EVENT_CODE_APPLICATION_QUIT}))
	assert.Zero(t, count)
}

func TestEventSystemNotInitialized(t *testing.T) {
	assert.Zero(t, EventRegister(EVENT_CODE_RESIZED, func(EventContext) {}))
	assert.False(t, EventFire(EventContext{Type: EVENT_CODE_RESIZED}))
}

func TestInputProcessKeyFiresOnTransitionOnly(t *testing.T) {
	withEventSystem(t)
	require.NoError(t, InputInitialize())
	t.Cleanup(func() { _ = InputShutdown() })

	pressed := 0
	EventRegister(EVENT_CODE_KEY_PRESSED, func(ctx EventContext) {
		ke := ctx.Data.(*KeyEvent)
		assert.Equal(t, KEY_Q, ke.KeyCode)
		pressed++
	})

	InputProcessKey(KEY_Q, true)
	InputProcessKey(KEY_Q, true)
	assert.Equal(t, 1, pressed)
	assert.True(t, InputIsKeyDown(KEY_Q))
	assert.False(t, InputWasKeyDown(KEY_Q))

	InputUpdate(0.016)
	assert.True(t, InputWasKeyDown(KEY_Q))
}
