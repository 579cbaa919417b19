package vulkan

import (
	"encoding/binary"
	"fmt"
	"os"

	vk "github.com/goki/vulkan"

	"github.com/quadra-gfx/quadra/engine/core"
)

// VulkanShaderStage is a single compiled shader stage.
type VulkanShaderStage struct {
	Handle                vk.ShaderModule
	ShaderStageCreateInfo vk.PipelineShaderStageCreateInfo
}

// NewShaderStage reads a SPIR-V binary from disk and wraps it in a shader
// module plus the pipeline stage info referencing it.
func NewShaderStage(context *VulkanContext, path string, shaderStageFlag vk.ShaderStageFlagBits) (*VulkanShaderStage, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		err = fmt.Errorf("unable to read shader module %s: %w", path, err)
		core.LogError(err.Error())
		return nil, err
	}
	if len(data) == 0 || len(data)%4 != 0 {
		err = fmt.Errorf("shader module %s is not valid SPIR-V: %d bytes", path, len(data))
		core.LogError(err.Error())
		return nil, err
	}

	createInfo := vk.ShaderModuleCreateInfo{
		SType:    vk.StructureTypeShaderModuleCreateInfo,
		CodeSize: uint(len(data)),
		PCode:    repackUint32(data),
	}

	stage := &VulkanShaderStage{}
	if res := vk.CreateShaderModule(
		context.Device.LogicalDevice,
		&createInfo,
		context.Allocator,
		&stage.Handle); res != vk.Success {
		err = fmt.Errorf("failed to create shader module %s: %s", path, VulkanResultString(res, true))
		core.LogError(err.Error())
		return nil, err
	}

	stage.ShaderStageCreateInfo = vk.PipelineShaderStageCreateInfo{
		SType:  vk.StructureTypePipelineShaderStageCreateInfo,
		Stage:  shaderStageFlag,
		Module: stage.Handle,
		PName:  VulkanSafeString("main"),
	}

	return stage, nil
}

func (ss *VulkanShaderStage) Destroy(context *VulkanContext) {
	if ss.Handle != vk.NullShaderModule {
		vk.DestroyShaderModule(context.Device.LogicalDevice, ss.Handle, context.Allocator)
		ss.Handle = vk.NullShaderModule
	}
}

// SPIR-V words are little-endian on disk.
func repackUint32(data []byte) []uint32 {
	buf := make([]uint32, len(data)/4)
	for i := range buf {
		buf[i] = binary.LittleEndian.Uint32(data[i*4:])
	}
	return buf
}
