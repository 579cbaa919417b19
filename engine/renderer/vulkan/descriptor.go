package vulkan

import (
	"fmt"

	vk "github.com/goki/vulkan"

	"github.com/quadra-gfx/quadra/engine/core"
)

// VulkanDescriptors carries the set layout, the pool and one descriptor set
// per frame slot. Each slot's set points at that slot's uniform region, so a
// set is only rewritten while its slot's fence guarantees the GPU is done
// with it.
type VulkanDescriptors struct {
	SetLayout vk.DescriptorSetLayout
	Pool      vk.DescriptorPool
	Sets      []vk.DescriptorSet
}

// DescriptorsCreate builds the layout shared by all slots: a uniform buffer
// at binding 0 for the vertex stage and a combined image sampler at binding 1
// for the fragment stage.
func DescriptorsCreate(context *VulkanContext, slotCount int) (*VulkanDescriptors, error) {
	d := &VulkanDescriptors{}

	bindings := []vk.DescriptorSetLayoutBinding{
		{
			Binding:         0,
			DescriptorType:  vk.DescriptorTypeUniformBuffer,
			DescriptorCount: 1,
			StageFlags:      vk.ShaderStageFlags(vk.ShaderStageVertexBit),
		},
		{
			Binding:         1,
			DescriptorType:  vk.DescriptorTypeCombinedImageSampler,
			DescriptorCount: 1,
			StageFlags:      vk.ShaderStageFlags(vk.ShaderStageFragmentBit),
		},
	}

	layoutInfo := vk.DescriptorSetLayoutCreateInfo{
		SType:        vk.StructureTypeDescriptorSetLayoutCreateInfo,
		BindingCount: uint32(len(bindings)),
		PBindings:    bindings,
	}
	var setLayout vk.DescriptorSetLayout
	if res := vk.CreateDescriptorSetLayout(context.Device.LogicalDevice, &layoutInfo, context.Allocator, &setLayout); res != vk.Success {
		err := fmt.Errorf("failed to create descriptor set layout: %s", VulkanResultString(res, true))
		core.LogError(err.Error())
		return nil, err
	}
	d.SetLayout = setLayout

	poolSizes := []vk.DescriptorPoolSize{
		{
			Type:            vk.DescriptorTypeUniformBuffer,
			DescriptorCount: uint32(slotCount),
		},
		{
			Type:            vk.DescriptorTypeCombinedImageSampler,
			DescriptorCount: uint32(slotCount),
		},
	}
	poolInfo := vk.DescriptorPoolCreateInfo{
		SType:         vk.StructureTypeDescriptorPoolCreateInfo,
		PoolSizeCount: uint32(len(poolSizes)),
		PPoolSizes:    poolSizes,
		MaxSets:       uint32(slotCount),
	}
	var pool vk.DescriptorPool
	if res := vk.CreateDescriptorPool(context.Device.LogicalDevice, &poolInfo, context.Allocator, &pool); res != vk.Success {
		d.Destroy(context)
		err := fmt.Errorf("failed to create descriptor pool: %s", VulkanResultString(res, true))
		core.LogError(err.Error())
		return nil, err
	}
	d.Pool = pool

	layouts := make([]vk.DescriptorSetLayout, slotCount)
	for i := range layouts {
		layouts[i] = d.SetLayout
	}
	allocInfo := vk.DescriptorSetAllocateInfo{
		SType:              vk.StructureTypeDescriptorSetAllocateInfo,
		DescriptorPool:     d.Pool,
		DescriptorSetCount: uint32(slotCount),
		PSetLayouts:        layouts,
	}
	d.Sets = make([]vk.DescriptorSet, slotCount)
	if res := vk.AllocateDescriptorSets(context.Device.LogicalDevice, &allocInfo, &d.Sets[0]); res != vk.Success {
		d.Destroy(context)
		err := fmt.Errorf("failed to allocate descriptor sets: %s", VulkanResultString(res, true))
		core.LogError(err.Error())
		return nil, err
	}

	return d, nil
}

// UpdateSet points the slot's descriptor set at its uniform region and the
// shared texture. Called once during setup, before any frame is recorded.
func (d *VulkanDescriptors) UpdateSet(context *VulkanContext, slot int, uniformBuffer vk.Buffer, uniformSize vk.DeviceSize, texture *VulkanImage) {
	bufferInfo := []vk.DescriptorBufferInfo{
		{
			Buffer: uniformBuffer,
			Offset: 0,
			Range:  uniformSize,
		},
	}
	imageInfo := []vk.DescriptorImageInfo{
		{
			ImageLayout: vk.ImageLayoutShaderReadOnlyOptimal,
			ImageView:   texture.View,
			Sampler:     texture.Sampler,
		},
	}

	descriptorWrites := []vk.WriteDescriptorSet{
		{
			SType:           vk.StructureTypeWriteDescriptorSet,
			DstSet:          d.Sets[slot],
			DstBinding:      0,
			DstArrayElement: 0,
			DescriptorCount: 1,
			DescriptorType:  vk.DescriptorTypeUniformBuffer,
			PBufferInfo:     bufferInfo,
		},
		{
			SType:           vk.StructureTypeWriteDescriptorSet,
			DstSet:          d.Sets[slot],
			DstBinding:      1,
			DstArrayElement: 0,
			DescriptorCount: 1,
			DescriptorType:  vk.DescriptorTypeCombinedImageSampler,
			PImageInfo:      imageInfo,
		},
	}
	vk.UpdateDescriptorSets(context.Device.LogicalDevice, uint32(len(descriptorWrites)), descriptorWrites, 0, nil)
}

func (d *VulkanDescriptors) Destroy(context *VulkanContext) {
	// Sets are returned with the pool.
	if d.Pool != vk.NullDescriptorPool {
		vk.DestroyDescriptorPool(context.Device.LogicalDevice, d.Pool, context.Allocator)
		d.Pool = vk.NullDescriptorPool
	}
	if d.SetLayout != vk.NullDescriptorSetLayout {
		vk.DestroyDescriptorSetLayout(context.Device.LogicalDevice, d.SetLayout, context.Allocator)
		d.SetLayout = vk.NullDescriptorSetLayout
	}
	d.Sets = nil
}
