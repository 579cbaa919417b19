package vulkan

import (
	"fmt"

	vk "github.com/goki/vulkan"

	"github.com/quadra-gfx/quadra/engine/core"
)

// UploadToBuffer pushes data into a device-local buffer through a throwaway
// host-visible staging buffer. The copy is recorded into a single-use command
// buffer and the call blocks until the queue drains, so this is strictly a
// setup path.
func UploadToBuffer(context *VulkanContext, dst *VulkanBuffer, dstOffset vk.DeviceSize, data []byte) error {
	if uint64(len(data))+uint64(dstOffset) > uint64(dst.Size) {
		err := fmt.Errorf("upload of %d bytes at offset %d exceeds buffer size %d", len(data), dstOffset, dst.Size)
		core.LogError(err.Error())
		return err
	}

	staging, group, err := createStaging(context, data)
	if err != nil {
		return err
	}
	defer func() {
		staging.Destroy(context)
		group.Destroy(context)
	}()

	cb, err := AllocateAndBeginSingleUse(context, context.Device.GraphicsCommandPool)
	if err != nil {
		return err
	}

	copyRegion := vk.BufferCopy{
		SrcOffset: 0,
		DstOffset: dstOffset,
		Size:      vk.DeviceSize(len(data)),
	}
	vk.CmdCopyBuffer(cb.Handle, staging.Handle, dst.Handle, 1, []vk.BufferCopy{copyRegion})

	return cb.EndSingleUse(context, context.Device.GraphicsCommandPool, context.Device.GraphicsQueue)
}

// UploadToImage stages pixel data and records a buffer-to-image copy. The
// image must already be in transfer-dst layout.
func UploadToImage(context *VulkanContext, dst *VulkanImage, data []byte) error {
	staging, group, err := createStaging(context, data)
	if err != nil {
		return err
	}
	defer func() {
		staging.Destroy(context)
		group.Destroy(context)
	}()

	cb, err := AllocateAndBeginSingleUse(context, context.Device.GraphicsCommandPool)
	if err != nil {
		return err
	}

	region := vk.BufferImageCopy{
		BufferOffset:      0,
		BufferRowLength:   0,
		BufferImageHeight: 0,
		ImageSubresource: vk.ImageSubresourceLayers{
			AspectMask:     vk.ImageAspectFlags(vk.ImageAspectColorBit),
			MipLevel:       0,
			BaseArrayLayer: 0,
			LayerCount:     1,
		},
		ImageExtent: vk.Extent3D{
			Width:  dst.Width,
			Height: dst.Height,
			Depth:  1,
		},
	}
	vk.CmdCopyBufferToImage(cb.Handle, staging.Handle, dst.Handle, vk.ImageLayoutTransferDstOptimal, 1, []vk.BufferImageCopy{region})

	return cb.EndSingleUse(context, context.Device.GraphicsCommandPool, context.Device.GraphicsQueue)
}

func createStaging(context *VulkanContext, data []byte) (*VulkanBuffer, *BufferGroup, error) {
	staging, err := BufferCreate(context, vk.DeviceSize(len(data)), vk.BufferUsageFlags(vk.BufferUsageTransferSrcBit))
	if err != nil {
		return nil, nil, err
	}

	properties := vk.MemoryPropertyFlags(vk.MemoryPropertyHostVisibleBit) | vk.MemoryPropertyFlags(vk.MemoryPropertyHostCoherentBit)
	group, err := BufferGroupCreate(context, []*VulkanBuffer{staging}, properties, true)
	if err != nil {
		staging.Destroy(context)
		return nil, nil, err
	}

	if err := group.Write(0, data); err != nil {
		staging.Destroy(context)
		group.Destroy(context)
		return nil, nil, err
	}

	return staging, group, nil
}
