package vulkan

import (
	"fmt"
	"unsafe"

	vk "github.com/goki/vulkan"

	"github.com/quadra-gfx/quadra/engine/core"
	"github.com/quadra-gfx/quadra/engine/renderer/memory"
)

// BufferGroup backs a set of buffers with a single device memory allocation.
// The placement of each buffer inside the allocation comes from the planner,
// so an unsatisfiable combination of buffers fails before any device memory
// is touched.
type BufferGroup struct {
	Memory  vk.DeviceMemory
	Layout  *memory.Layout
	Buffers []*VulkanBuffer

	// Base of the persistent mapping, nil when the group is not host visible.
	Mapped unsafe.Pointer
}

// BufferGroupCreate plans a layout for the buffers, makes one device memory
// allocation and binds every buffer at its planned offset. Buffer order is
// preserved: placement i always refers to buffers[i] regardless of how the
// planner packed them. When mapped is true the whole allocation is mapped
// once and stays mapped until the group is destroyed.
func BufferGroupCreate(context *VulkanContext, buffers []*VulkanBuffer, properties vk.MemoryPropertyFlags, mapped bool) (*BufferGroup, error) {
	if len(buffers) == 0 {
		err := fmt.Errorf("buffer group requires at least one buffer")
		core.LogError(err.Error())
		return nil, err
	}

	blocks := make([]memory.Block, len(buffers))
	for i, b := range buffers {
		blocks[i] = b.Block()
	}

	layout, err := memory.Plan(blocks, context.MemoryTypeTable(), uint32(properties), core.DefaultLogger())
	if err != nil {
		return nil, err
	}

	group := &BufferGroup{
		Layout:  layout,
		Buffers: buffers,
	}

	allocateInfo := vk.MemoryAllocateInfo{
		SType:           vk.StructureTypeMemoryAllocateInfo,
		AllocationSize:  vk.DeviceSize(layout.TotalSize),
		MemoryTypeIndex: uint32(layout.TypeIndex),
	}
	var deviceMemory vk.DeviceMemory
	if res := vk.AllocateMemory(context.Device.LogicalDevice, &allocateInfo, context.Allocator, &deviceMemory); res != vk.Success {
		err := fmt.Errorf("failed to allocate %d bytes of device memory: %s", layout.TotalSize, VulkanResultString(res, true))
		core.LogError(err.Error())
		return nil, err
	}
	group.Memory = deviceMemory

	for i, b := range buffers {
		offset, ok := layout.OffsetOf(i)
		if !ok {
			group.Destroy(context)
			err := fmt.Errorf("planned layout has no placement for buffer %d", i)
			core.LogError(err.Error())
			return nil, err
		}
		if res := vk.BindBufferMemory(context.Device.LogicalDevice, b.Handle, group.Memory, vk.DeviceSize(offset)); res != vk.Success {
			group.Destroy(context)
			err := fmt.Errorf("failed to bind buffer %d at offset %d: %s", i, offset, VulkanResultString(res, true))
			core.LogError(err.Error())
			return nil, err
		}
	}

	if mapped {
		var data unsafe.Pointer
		if res := vk.MapMemory(context.Device.LogicalDevice, group.Memory, 0, vk.DeviceSize(layout.TotalSize), 0, &data); res != vk.Success {
			group.Destroy(context)
			err := fmt.Errorf("failed to map buffer group memory: %s", VulkanResultString(res, true))
			core.LogError(err.Error())
			return nil, err
		}
		group.Mapped = data
	}

	core.LogDebug("Buffer group created: %d buffers, %d bytes, memory type %d.", len(buffers), layout.TotalSize, layout.TypeIndex)

	return group, nil
}

// OffsetOf reports the allocation offset of the i-th buffer passed to
// BufferGroupCreate.
func (bg *BufferGroup) OffsetOf(i int) (uint64, error) {
	offset, ok := bg.Layout.OffsetOf(i)
	if !ok {
		return 0, fmt.Errorf("no placement for buffer %d", i)
	}
	return offset, nil
}

// Write copies data into the i-th buffer's region of the persistent mapping.
// The group must have been created mapped, and the memory must be host
// coherent for the write to become visible without an explicit flush.
func (bg *BufferGroup) Write(i int, data []byte) error {
	if bg.Mapped == nil {
		return fmt.Errorf("buffer group is not mapped")
	}
	offset, err := bg.OffsetOf(i)
	if err != nil {
		return err
	}
	if uint64(len(data)) > uint64(bg.Buffers[i].Size) {
		return fmt.Errorf("write of %d bytes exceeds buffer %d size %d", len(data), i, bg.Buffers[i].Size)
	}
	memory.CopyToMapped(bg.Mapped, offset, data)
	return nil
}

// Destroy unmaps and frees the backing allocation. The grouped buffers must
// be destroyed by their owners first; freeing memory out from under a live
// bound buffer is a validation error.
func (bg *BufferGroup) Destroy(context *VulkanContext) {
	if bg.Mapped != nil {
		vk.UnmapMemory(context.Device.LogicalDevice, bg.Memory)
		bg.Mapped = nil
	}
	if bg.Memory != vk.NullDeviceMemory {
		vk.FreeMemory(context.Device.LogicalDevice, bg.Memory, context.Allocator)
		bg.Memory = vk.NullDeviceMemory
	}
	bg.Buffers = nil
}
