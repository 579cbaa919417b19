package frame

import (
	"fmt"

	"github.com/quadra-gfx/quadra/engine/core"
)

// Backend is the device-facing half of one frame iteration. Slot arguments
// index the backend's per-slot resources (command buffer, semaphores, fence,
// uniform region); imageIndex is whichever presentable image the acquire
// returned, which need not equal the slot index.
//
// Every method is allowed to block; every error is fatal to the frame loop.
type Backend interface {
	// WaitForFence blocks until slot's in-flight fence signals, meaning the
	// GPU has fully consumed the slot's previous submission.
	WaitForFence(slot int) error
	// AcquireImage obtains the next presentable image, signaling slot's
	// image-available semaphore when the image is ready.
	AcquireImage(slot int) (imageIndex uint32, err error)
	// ResetFence re-arms slot's fence before the new submission.
	ResetFence(slot int) error
	// Record resets and re-records slot's command buffer targeting
	// imageIndex, updating the slot's uniform region first.
	Record(slot int, imageIndex uint32) error
	// Submit queues the recorded work: waits on the image-available
	// semaphore at color-attachment-output, signals the render-finished
	// semaphore and slot's fence.
	Submit(slot int, imageIndex uint32) error
	// Present hands imageIndex back to the presentation engine, waiting on
	// the render-finished semaphore.
	Present(slot int, imageIndex uint32) error
}

// Driver runs the per-frame protocol against a backend. One instance drives
// the whole loop from a single goroutine; nothing here is safe for
// concurrent use.
type Driver struct {
	ring    *Ring
	backend Backend
	logger  core.Logger
}

func NewDriver(ring *Ring, backend Backend, logger core.Logger) (*Driver, error) {
	if ring == nil || backend == nil {
		return nil, fmt.Errorf("frame driver needs a ring and a backend")
	}
	if logger == nil {
		logger = core.DefaultLogger()
	}
	return &Driver{ring: ring, backend: backend, logger: logger}, nil
}

func (d *Driver) Ring() *Ring {
	return d.ring
}

// RunFrame executes one frame iteration:
//
//	wait fence -> acquire image -> reset fence -> record -> submit ->
//	present -> advance.
//
// The fence wait must come before anything touches the slot's command buffer
// or uniform memory; the reset must land after the wait and before the
// submission that re-arms the fence. Any error leaves the slot in an
// unknown state, so the caller is expected to stop the loop.
func (d *Driver) RunFrame() error {
	slot := d.ring.Slot()

	if err := d.backend.WaitForFence(slot); err != nil {
		return fmt.Errorf("frame %d slot %d: fence wait: %w", d.ring.FrameNumber(), slot, err)
	}

	imageIndex, err := d.backend.AcquireImage(slot)
	if err != nil {
		return fmt.Errorf("frame %d slot %d: acquire: %w", d.ring.FrameNumber(), slot, err)
	}

	if err := d.backend.ResetFence(slot); err != nil {
		return fmt.Errorf("frame %d slot %d: fence reset: %w", d.ring.FrameNumber(), slot, err)
	}

	if err := d.backend.Record(slot, imageIndex); err != nil {
		return fmt.Errorf("frame %d slot %d: record: %w", d.ring.FrameNumber(), slot, err)
	}

	if err := d.backend.Submit(slot, imageIndex); err != nil {
		return fmt.Errorf("frame %d slot %d: submit: %w", d.ring.FrameNumber(), slot, err)
	}

	if err := d.backend.Present(slot, imageIndex); err != nil {
		return fmt.Errorf("frame %d slot %d: present: %w", d.ring.FrameNumber(), slot, err)
	}

	d.ring.Advance()
	return nil
}
