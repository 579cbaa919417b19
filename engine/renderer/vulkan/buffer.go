package vulkan

import (
	"fmt"

	vk "github.com/goki/vulkan"

	"github.com/quadra-gfx/quadra/engine/core"
	"github.com/quadra-gfx/quadra/engine/renderer/memory"
)

// VulkanBuffer is an unbound buffer handle plus its queried memory
// requirements. Backing memory is bound later by a BufferGroup, never by the
// buffer itself.
type VulkanBuffer struct {
	Handle vk.Buffer
	Size   vk.DeviceSize
	Usage  vk.BufferUsageFlags

	Requirements vk.MemoryRequirements
}

func BufferCreate(context *VulkanContext, size vk.DeviceSize, usage vk.BufferUsageFlags) (*VulkanBuffer, error) {
	buffer := &VulkanBuffer{
		Size:  size,
		Usage: usage,
	}

	bufferCreateInfo := vk.BufferCreateInfo{
		SType:       vk.StructureTypeBufferCreateInfo,
		Size:        size,
		Usage:       usage,
		SharingMode: vk.SharingModeExclusive, // Only used in one queue.
	}

	var handle vk.Buffer
	if res := vk.CreateBuffer(context.Device.LogicalDevice, &bufferCreateInfo, context.Allocator, &handle); res != vk.Success {
		err := fmt.Errorf("failed to create buffer of %d bytes: %s", size, VulkanResultString(res, true))
		core.LogError(err.Error())
		return nil, err
	}
	buffer.Handle = handle

	vk.GetBufferMemoryRequirements(context.Device.LogicalDevice, buffer.Handle, &buffer.Requirements)
	buffer.Requirements.Deref()

	return buffer, nil
}

// Block reduces the queried requirements to the planner's device-free form.
func (vb *VulkanBuffer) Block() memory.Block {
	return memory.Block{
		Size:      uint64(vb.Requirements.Size),
		Alignment: uint64(vb.Requirements.Alignment),
		TypeBits:  vb.Requirements.MemoryTypeBits,
	}
}

func (vb *VulkanBuffer) Destroy(context *VulkanContext) {
	if vb.Handle != nil {
		vk.DestroyBuffer(context.Device.LogicalDevice, vb.Handle, context.Allocator)
		vb.Handle = nil
	}
}
