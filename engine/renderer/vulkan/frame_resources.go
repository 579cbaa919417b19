package vulkan

import (
	vk "github.com/goki/vulkan"

	"github.com/quadra-gfx/quadra/engine/core"
)

// FrameSlot holds everything one in-flight frame owns: a primary command
// buffer, the two semaphores ordering acquire/submit/present, and the fence
// gating CPU reuse of the slot. The fence starts signaled so the very first
// wait on the slot returns immediately.
type FrameSlot struct {
	CommandBuffer  *VulkanCommandBuffer
	ImageAvailable vk.Semaphore
	RenderFinished vk.Semaphore
	InFlight       *VulkanFence
}

// FrameSlotsCreate builds slotCount independent slots. On failure the slots
// created so far are torn down before returning.
func FrameSlotsCreate(context *VulkanContext, slotCount int) ([]*FrameSlot, error) {
	slots := make([]*FrameSlot, 0, slotCount)

	destroyAll := func() {
		for _, s := range slots {
			s.Destroy(context)
		}
	}

	for i := 0; i < slotCount; i++ {
		slot := &FrameSlot{}

		cb, err := NewVulkanCommandBuffer(context, context.Device.GraphicsCommandPool, true)
		if err != nil {
			destroyAll()
			return nil, err
		}
		slot.CommandBuffer = cb

		if slot.ImageAvailable, err = NewSemaphore(context); err != nil {
			slot.Destroy(context)
			destroyAll()
			return nil, err
		}
		if slot.RenderFinished, err = NewSemaphore(context); err != nil {
			slot.Destroy(context)
			destroyAll()
			return nil, err
		}

		// Signaled at creation so frame number i < slotCount does not wait
		// on work that was never submitted.
		if slot.InFlight, err = NewFence(context, true); err != nil {
			slot.Destroy(context)
			destroyAll()
			return nil, err
		}

		slots = append(slots, slot)
	}

	core.LogDebug("Created %d frame slots.", slotCount)
	return slots, nil
}

func (fs *FrameSlot) Destroy(context *VulkanContext) {
	if fs.CommandBuffer != nil && fs.CommandBuffer.Handle != nil {
		fs.CommandBuffer.Free(context, context.Device.GraphicsCommandPool)
		fs.CommandBuffer = nil
	}
	DestroySemaphore(context, fs.ImageAvailable)
	fs.ImageAvailable = vk.NullSemaphore
	DestroySemaphore(context, fs.RenderFinished)
	fs.RenderFinished = vk.NullSemaphore
	if fs.InFlight != nil {
		fs.InFlight.FenceDestroy(context)
		fs.InFlight = nil
	}
}
