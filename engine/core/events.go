package core

import "sync"

// EventCode identifies an event kind. System codes live below 0xFF,
// application codes start at EVENT_CODE_APPLICATION_BASE.
type EventCode uint16

const (
	// Shuts the application down on the next frame.
	EVENT_CODE_APPLICATION_QUIT EventCode = 0x01
	// Keyboard key pressed. Data: *KeyEvent
	EVENT_CODE_KEY_PRESSED EventCode = 0x02
	// Keyboard key released. Data: *KeyEvent
	EVENT_CODE_KEY_RELEASED EventCode = 0x03
	// Mouse button pressed. Data: *MouseEvent
	EVENT_CODE_BUTTON_PRESSED EventCode = 0x04
	// Mouse button released. Data: *MouseEvent
	EVENT_CODE_BUTTON_RELEASED EventCode = 0x05
	// Mouse moved. Data: *MouseEvent
	EVENT_CODE_MOUSE_MOVED EventCode = 0x06
	// Mouse wheel. Data: *MouseEvent
	EVENT_CODE_MOUSE_WHEEL EventCode = 0x07
	// Resized/resolution changed from the OS. Data: *SystemEvent
	EVENT_CODE_RESIZED EventCode = 0x08

	EVENT_CODE_APPLICATION_BASE EventCode = 0xFF

	// The requested agent population changed. Data: *PopulationEvent
	EVENT_CODE_POPULATION_CHANGED EventCode = 0x100
	// A shader asset changed on disk. Data: *AssetEvent
	EVENT_CODE_SHADER_CHANGED EventCode = 0x101

	MAX_EVENT_CODE EventCode = 0x200
)

type EventContext struct {
	Type EventCode
	Data interface{}
}

type KeyEvent struct {
	KeyCode KeyCode
}

type MouseEvent struct {
	Button Button
	PosX   uint16
	PosY   uint16
	Scroll int8
}

type SystemEvent struct {
	WindowWidth  uint32
	WindowHeight uint32
}

type PopulationEvent struct {
	Population int
}

type AssetEvent struct {
	Path string
}

type FnOnEvent func(context EventContext)

type registeredEvent struct {
	id       uint32
	callback FnOnEvent
}

type eventSystemState struct {
	mutex      sync.Mutex
	nextID     uint32
	registered map[EventCode][]*registeredEvent
}

var eventState *eventSystemState

// EventSystemInitialize prepares the event registry. Returns false if it
// was already initialized.
func EventSystemInitialize() bool {
	if eventState != nil {
		return false
	}
	eventState = &eventSystemState{
		registered: make(map[EventCode][]*registeredEvent),
	}
	return true
}

func EventSystemShutdown() error {
	eventState = nil
	return nil
}

// EventRegister adds a listener for the given code and returns the listener id
// used to unregister it. Returns 0 if the event system is not initialized.
func EventRegister(code EventCode, onEvent FnOnEvent) uint32 {
	if eventState == nil || onEvent == nil || code >= MAX_EVENT_CODE {
		return 0
	}
	eventState.mutex.Lock()
	defer eventState.mutex.Unlock()

	eventState.nextID++
	eventState.registered[code] = append(eventState.registered[code], &registeredEvent{
		id:       eventState.nextID,
		callback: onEvent,
	})
	return eventState.nextID
}

func EventUnregister(code EventCode, id uint32) bool {
	if eventState == nil {
		return false
	}
	eventState.mutex.Lock()
	defer eventState.mutex.Unlock()

	events := eventState.registered[code]
	for i, e := range events {
		if e.id == id {
			eventState.registered[code] = append(events[:i], events[i+1:]...)
			return true
		}
	}
	return false
}

// EventFire synchronously notifies every listener of context.Type, in
// registration order. Returns true if at least one listener was called.
func EventFire(context EventContext) bool {
	if eventState == nil {
		return false
	}
	eventState.mutex.Lock()
	events := make([]*registeredEvent, len(eventState.registered[context.Type]))
	copy(events, eventState.registered[context.Type])
	eventState.mutex.Unlock()

	for _, e := range events {
		e.callback(context)
	}
	return len(events) > 0
}
