package vulkan

import (
	vk "github.com/goki/vulkan"

	"github.com/quadra-gfx/quadra/engine/renderer/memory"
)

type VulkanContext struct {
	// The framebuffer's current width.
	FramebufferWidth uint32
	// The framebuffer's current height.
	FramebufferHeight uint32

	Instance  vk.Instance
	Allocator *vk.AllocationCallbacks
	Surface   vk.Surface

	debugMessenger vk.DebugReportCallback

	Device *VulkanDevice

	Swapchain      *VulkanSwapchain
	MainRenderpass *VulkanRenderpass
}

// MemoryTypeTable reduces the physical device's memory properties to the
// per-type flag table the planner classifies against.
func (vc *VulkanContext) MemoryTypeTable() memory.TypeTable {
	var memoryProperties vk.PhysicalDeviceMemoryProperties
	vk.GetPhysicalDeviceMemoryProperties(vc.Device.PhysicalDevice, &memoryProperties)
	memoryProperties.Deref()

	table := make(memory.TypeTable, memoryProperties.MemoryTypeCount)
	for i := uint32(0); i < memoryProperties.MemoryTypeCount; i++ {
		memoryProperties.MemoryTypes[i].Deref()
		table[i] = uint32(memoryProperties.MemoryTypes[i].PropertyFlags)
	}
	return table
}
