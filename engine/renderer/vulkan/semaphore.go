package vulkan

import (
	"fmt"

	vk "github.com/goki/vulkan"

	"github.com/quadra-gfx/quadra/engine/core"
)

func NewSemaphore(context *VulkanContext) (vk.Semaphore, error) {
	semaphoreCreateInfo := vk.SemaphoreCreateInfo{
		SType: vk.StructureTypeSemaphoreCreateInfo,
	}
	var pSemaphore vk.Semaphore
	if res := vk.CreateSemaphore(context.Device.LogicalDevice, &semaphoreCreateInfo, context.Allocator, &pSemaphore); res != vk.Success {
		err := fmt.Errorf("failed to create semaphore: %s", VulkanResultString(res, true))
		core.LogError(err.Error())
		return vk.NullSemaphore, err
	}
	return pSemaphore, nil
}

func DestroySemaphore(context *VulkanContext, semaphore vk.Semaphore) {
	if semaphore != vk.NullSemaphore {
		vk.DestroySemaphore(context.Device.LogicalDevice, semaphore, context.Allocator)
	}
}
