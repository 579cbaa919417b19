package frame

import (
	"errors"
	"fmt"
	"testing"

	"github.com/quadra-gfx/quadra/engine/core"
)

// fakeBackend records every call with its slot so the tests can assert the
// protocol ordering. Each slot's fence state is tracked the way the real
// fence behaves: created signaled, unsignaled by reset, re-signaled by the
// (instantly completing) fake submission.
type fakeBackend struct {
	calls        []string
	fenceArmed   []bool // true = signaled
	nextImage    uint32
	failAcquire  error
	failSubmit   error
	recordedSlot []int
}

func newFakeBackend(slots int) *fakeBackend {
	f := &fakeBackend{fenceArmed: make([]bool, slots)}
	for i := range f.fenceArmed {
		f.fenceArmed[i] = true // pre-signaled, like the real fences
	}
	return f
}

func (f *fakeBackend) WaitForFence(slot int) error {
	f.calls = append(f.calls, fmt.Sprintf("wait:%d", slot))
	if !f.fenceArmed[slot] {
		return fmt.Errorf("slot %d fence would never signal", slot)
	}
	return nil
}

func (f *fakeBackend) AcquireImage(slot int) (uint32, error) {
	f.calls = append(f.calls, fmt.Sprintf("acquire:%d", slot))
	if f.failAcquire != nil {
		return 0, f.failAcquire
	}
	img := f.nextImage
	f.nextImage = (f.nextImage + 1) % 3 // pretend a 3-image swapchain
	return img, nil
}

func (f *fakeBackend) ResetFence(slot int) error {
	f.calls = append(f.calls, fmt.Sprintf("reset:%d", slot))
	f.fenceArmed[slot] = false
	return nil
}

func (f *fakeBackend) Record(slot int, imageIndex uint32) error {
	f.calls = append(f.calls, fmt.Sprintf("record:%d:%d", slot, imageIndex))
	if f.fenceArmed[slot] {
		return fmt.Errorf("slot %d recorded before its fence was reset", slot)
	}
	f.recordedSlot = append(f.recordedSlot, slot)
	return nil
}

func (f *fakeBackend) Submit(slot int, imageIndex uint32) error {
	f.calls = append(f.calls, fmt.Sprintf("submit:%d:%d", slot, imageIndex))
	if f.failSubmit != nil {
		return f.failSubmit
	}
	// The fake GPU finishes instantly, signaling the fence.
	f.fenceArmed[slot] = true
	return nil
}

func (f *fakeBackend) Present(slot int, imageIndex uint32) error {
	f.calls = append(f.calls, fmt.Sprintf("present:%d:%d", slot, imageIndex))
	return nil
}

func mustDriver(t *testing.T, slots int, b Backend) *Driver {
	t.Helper()
	r, err := NewRing(slots)
	if err != nil {
		t.Fatal(err)
	}
	d, err := NewDriver(r, b, core.NopLogger{})
	if err != nil {
		t.Fatal(err)
	}
	return d
}

func TestRunFrameOrdering(t *testing.T) {
	fb := newFakeBackend(2)
	d := mustDriver(t, 2, fb)

	if err := d.RunFrame(); err != nil {
		t.Fatal(err)
	}

	want := []string{"wait:0", "acquire:0", "reset:0", "record:0:0", "submit:0:0", "present:0:0"}
	if len(fb.calls) != len(want) {
		t.Fatalf("calls = %v", fb.calls)
	}
	for i, w := range want {
		if fb.calls[i] != w {
			t.Errorf("call %d = %s, want %s", i, fb.calls[i], w)
		}
	}
}

func TestFiveFramesCycleSlots(t *testing.T) {
	fb := newFakeBackend(2)
	d := mustDriver(t, 2, fb)

	for i := 0; i < 5; i++ {
		if err := d.RunFrame(); err != nil {
			t.Fatalf("frame %d: %v", i, err)
		}
	}

	want := []int{0, 1, 0, 1, 0}
	if len(fb.recordedSlot) != len(want) {
		t.Fatalf("recorded slots = %v", fb.recordedSlot)
	}
	for i, w := range want {
		if fb.recordedSlot[i] != w {
			t.Errorf("frame %d recorded slot %d, want %d", i, fb.recordedSlot[i], w)
		}
	}
	if d.Ring().FrameNumber() != 5 {
		t.Errorf("frame number = %d, want 5", d.Ring().FrameNumber())
	}
}

// Every reuse of a slot must wait on its fence before the command buffer is
// touched. The fake backend errors from Record if the fence was not reset
// first, and from WaitForFence if the fence could never signal, so driving
// more frames than slots proves the bounding.
func TestFenceWaitPrecedesRecordOnEverySlotReuse(t *testing.T) {
	fb := newFakeBackend(2)
	d := mustDriver(t, 2, fb)

	const frames = 6
	for i := 0; i < frames; i++ {
		if err := d.RunFrame(); err != nil {
			t.Fatalf("frame %d: %v", i, err)
		}
	}

	// For each slot, the call list must show wait:k before every record:k.
	lastEvent := map[int]string{}
	for _, c := range fb.calls {
		var slot, img int
		switch {
		case scan(c, "wait:%d", &slot):
			lastEvent[slot] = "wait"
		case scan(c, "record:%d:%d", &slot, &img):
			if lastEvent[slot] != "wait" {
				t.Fatalf("slot %d recorded without a preceding fence wait (calls: %v)", slot, fb.calls)
			}
			lastEvent[slot] = "record"
		}
	}
}

func scan(s, format string, args ...interface{}) bool {
	n, err := fmt.Sscanf(s, format, args...)
	return err == nil && n == len(args)
}

func TestAcquireFailureIsFatal(t *testing.T) {
	fb := newFakeBackend(2)
	fb.failAcquire = errors.New("surface lost")
	d := mustDriver(t, 2, fb)

	err := d.RunFrame()
	if err == nil {
		t.Fatal("expected acquire failure to surface")
	}
	if !errors.Is(err, fb.failAcquire) {
		t.Fatalf("err = %v", err)
	}
	// The frame must not advance on failure.
	if d.Ring().FrameNumber() != 0 {
		t.Errorf("frame number advanced to %d on a failed frame", d.Ring().FrameNumber())
	}
}

func TestSubmitFailureStopsBeforePresent(t *testing.T) {
	fb := newFakeBackend(2)
	fb.failSubmit = errors.New("device lost")
	d := mustDriver(t, 2, fb)

	if err := d.RunFrame(); err == nil {
		t.Fatal("expected submit failure to surface")
	}
	for _, c := range fb.calls {
		if c == "present:0:0" {
			t.Fatal("present must not run after a failed submit")
		}
	}
}
