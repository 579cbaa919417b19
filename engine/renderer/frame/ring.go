// Package frame owns the frames-in-flight protocol: a ring of N frame slots
// driven by a monotonically advancing counter, and a driver that runs one
// frame iteration in the required synchronization order. The device work is
// behind the Backend interface so the ordering rules can be verified without
// a GPU.
package frame

import "fmt"

// DefaultSlotCount is the frames-in-flight bound used when the config does
// not override it.
const DefaultSlotCount = 2

// Ring tracks which of the N frame slots the CPU is currently recording
// into. The counter only ever moves forward; the slot index is the counter
// modulo the slot count. Bounding reuse of a slot to once every N frames is
// what lets the fence wait guarantee the GPU is done with that slot's
// resources.
type Ring struct {
	slotCount   int
	frameNumber uint64
}

func NewRing(slotCount int) (*Ring, error) {
	if slotCount < 1 {
		return nil, fmt.Errorf("frame ring needs at least one slot, got %d", slotCount)
	}
	return &Ring{slotCount: slotCount}, nil
}

// Slot returns the index of the slot the current frame uses.
func (r *Ring) Slot() int {
	return int(r.frameNumber % uint64(r.slotCount))
}

// SlotCount returns N, the frames-in-flight bound.
func (r *Ring) SlotCount() int {
	return r.slotCount
}

// FrameNumber returns how many frames have been submitted so far.
func (r *Ring) FrameNumber() uint64 {
	return r.frameNumber
}

// Advance moves to the next frame. Called exactly once per iteration, after
// presentation has been queued.
func (r *Ring) Advance() {
	r.frameNumber++
}
