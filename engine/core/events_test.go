package core

import "testing"

func TestEventSystem(t *testing.T) {
	if !EventSystemInitialize() {
		t.Fatal("event system failed to initialize")
	}

	type listener struct{ hits int }
	first := &listener{}
	second := &listener{}

	if !EventRegister(EVENT_CODE_RESIZED, first, func(code SystemEventCode, sender interface{}, data EventContext) bool {
		first.hits++
		return false
	}) {
		t.Fatal("first registration rejected")
	}
	if !EventRegister(EVENT_CODE_RESIZED, second, func(code SystemEventCode, sender interface{}, data EventContext) bool {
		second.hits++
		return true
	}) {
		t.Fatal("second registration rejected")
	}

	// The same listener may not register twice for one code.
	if EventRegister(EVENT_CODE_RESIZED, first, func(SystemEventCode, interface{}, EventContext) bool {
		return false
	}) {
		t.Error("duplicate registration accepted")
	}

	var ctx EventContext
	ctx.Data.U16[0] = 800
	ctx.Data.U16[1] = 600
	if !EventFire(EVENT_CODE_RESIZED, nil, ctx) {
		t.Error("fired event reported unhandled")
	}
	if first.hits != 1 || second.hits != 1 {
		t.Errorf("hits = %d, %d, want 1, 1", first.hits, second.hits)
	}

	// The second listener handles the event, so a third never runs.
	third := &listener{}
	EventRegister(EVENT_CODE_RESIZED, third, func(SystemEventCode, interface{}, EventContext) bool {
		third.hits++
		return false
	})
	EventFire(EVENT_CODE_RESIZED, nil, ctx)
	if third.hits != 0 {
		t.Errorf("third listener ran %d times, want 0", third.hits)
	}

	if EventFire(EVENT_CODE_APPLICATION_QUIT, nil, EventContext{}) {
		t.Error("event with no listeners reported handled")
	}
}
