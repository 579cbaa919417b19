package core

import "sync"

// EventContext carries the payload of a fired event. Only the fields a given
// event code documents are meaningful.
type EventContext struct {
	Data struct {
		U64 [2]uint64
		U32 [4]uint32
		U16 [8]uint16
	}
}

// System internal event codes. Application should use codes beyond 255.
type SystemEventCode int

const (
	// Shuts the application down on the next frame.
	EVENT_CODE_APPLICATION_QUIT SystemEventCode = 0x01

	// Resized/resolution changed from the OS.
	// u16 width = data.U16[0]; u16 height = data.U16[1]
	EVENT_CODE_RESIZED SystemEventCode = 0x08

	MAX_EVENT_CODE SystemEventCode = 0xFF
)

// Should return true if handled.
type FnOnEvent func(code SystemEventCode, sender interface{}, data EventContext) bool

type registeredEvent struct {
	listener interface{}
	callback FnOnEvent
}

type eventSystemState struct {
	registered map[SystemEventCode][]*registeredEvent
}

var onceEvent sync.Once
var eventState *eventSystemState = nil

func EventSystemInitialize() bool {
	onceEvent.Do(func() {
		eventState = &eventSystemState{
			registered: make(map[SystemEventCode][]*registeredEvent),
		}
	})
	return eventState != nil
}

func EventSystemShutdown() {
	eventState = nil
}

// EventRegister subscribes a callback to an event code. The same listener may
// not register twice for one code.
func EventRegister(code SystemEventCode, listener interface{}, onEvent FnOnEvent) bool {
	if eventState == nil {
		return false
	}
	for _, re := range eventState.registered[code] {
		if re.listener == listener {
			LogWarn("event listener already registered for code %d", code)
			return false
		}
	}
	eventState.registered[code] = append(eventState.registered[code], &registeredEvent{
		listener: listener,
		callback: onEvent,
	})
	return true
}

// EventFire notifies every listener of the code in registration order. Stops
// early when a callback reports the event as handled.
func EventFire(code SystemEventCode, sender interface{}, data EventContext) bool {
	if eventState == nil {
		return false
	}
	for _, re := range eventState.registered[code] {
		if re.callback(code, sender, data) {
			return true
		}
	}
	return false
}
