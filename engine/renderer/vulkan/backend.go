package vulkan

import (
	"encoding/binary"
	"fmt"
	stdmath "math"
	"runtime"
	"unsafe"

	"github.com/go-gl/glfw/v3.3/glfw"
	vk "github.com/goki/vulkan"

	"github.com/quadra-gfx/quadra/engine/core"
	"github.com/quadra-gfx/quadra/engine/math"
	"github.com/quadra-gfx/quadra/engine/platform"
)

// Config is everything the backend needs to come up: window identity,
// slot count, compiled shader locations and decoded texture pixels.
type Config struct {
	AppName        string
	Width          uint32
	Height         uint32
	FramesInFlight int
	Debug          bool

	VertexShaderPath   string
	FragmentShaderPath string

	TexturePixels []byte
	TextureWidth  uint32
	TextureHeight uint32
}

// UniformObject is the per-frame shader input: a model rotation plus fixed
// view and projection matrices. Layout matches the std140 block in the
// vertex shader, three column-major mat4s.
type UniformObject struct {
	Model      math.Mat4
	View       math.Mat4
	Projection math.Mat4
}

const uniformObjectSize = 3 * 16 * 4

// VulkanRenderer owns the whole device-side state of the demo and satisfies
// the frame driver's backend contract. All methods must run on the thread
// that owns the GLFW window.
type VulkanRenderer struct {
	platform *platform.Platform
	config   Config
	context  *VulkanContext
	clock    *core.Clock

	cachedFramebufferWidth  uint32
	cachedFramebufferHeight uint32
	framebufferGeneration   uint64
	lastGeneration          uint64
	recreatingSwapchain     bool

	slots []*FrameSlot

	vertShader *VulkanShaderStage
	fragShader *VulkanShaderStage
	pipeline   *VulkanPipeline

	geometry     *QuadGeometry
	vertexBuffer *VulkanBuffer
	indexBuffer  *VulkanBuffer
	meshGroup    *BufferGroup

	uniformBuffers []*VulkanBuffer
	uniformGroup   *BufferGroup

	texture     *VulkanImage
	descriptors *VulkanDescriptors
}

func New(p *platform.Platform, config Config) *VulkanRenderer {
	return &VulkanRenderer{
		platform: p,
		config:   config,
		context: &VulkanContext{
			FramebufferWidth:  config.Width,
			FramebufferHeight: config.Height,
			Allocator:         nil,
		},
		clock: core.NewClock(),
	}
}

func (vr *VulkanRenderer) Initialize() error {
	procAddr := glfw.GetVulkanGetInstanceProcAddress()
	if procAddr == nil {
		err := fmt.Errorf("GetInstanceProcAddress is nil")
		core.LogError(err.Error())
		return err
	}
	vk.SetGetInstanceProcAddr(procAddr)

	if err := vk.Init(); err != nil {
		core.LogError("failed to initialize vk: %s", err)
		return err
	}

	if err := vr.createInstance(); err != nil {
		return err
	}

	core.LogDebug("Creating Vulkan surface...")
	if err := CreateVulkanSurface(vr.platform, vr.context); err != nil {
		return err
	}
	core.LogDebug("Vulkan surface created.")

	if err := DeviceCreate(vr.context); err != nil {
		return err
	}

	sc, err := SwapchainCreate(vr.context, vr.context.FramebufferWidth, vr.context.FramebufferHeight)
	if err != nil {
		return err
	}
	vr.context.Swapchain = sc

	rp, err := RenderpassCreate(
		vr.context,
		0, 0, float32(vr.context.FramebufferWidth), float32(vr.context.FramebufferHeight),
		0.0, 0.0, 0.2, 1.0)
	if err != nil {
		return err
	}
	vr.context.MainRenderpass = rp

	vr.context.Swapchain.Framebuffers = make([]*VulkanFramebuffer, vr.context.Swapchain.ImageCount)
	if err := vr.regenerateFramebuffers(); err != nil {
		return err
	}

	if vr.vertShader, err = NewShaderStage(vr.context, vr.config.VertexShaderPath, vk.ShaderStageVertexBit); err != nil {
		return err
	}
	if vr.fragShader, err = NewShaderStage(vr.context, vr.config.FragmentShaderPath, vk.ShaderStageFragmentBit); err != nil {
		return err
	}

	if err := vr.createGeometryBuffers(); err != nil {
		return err
	}
	if err := vr.createTexture(); err != nil {
		return err
	}
	if err := vr.createUniformBuffers(); err != nil {
		return err
	}

	if vr.descriptors, err = DescriptorsCreate(vr.context, vr.config.FramesInFlight); err != nil {
		return err
	}
	for i := range vr.uniformBuffers {
		vr.descriptors.UpdateSet(vr.context, i, vr.uniformBuffers[i].Handle, uniformObjectSize, vr.texture)
	}

	if err := vr.createPipeline(); err != nil {
		return err
	}

	if vr.slots, err = FrameSlotsCreate(vr.context, vr.config.FramesInFlight); err != nil {
		return err
	}

	vr.clock.Start()

	core.LogInfo("Vulkan renderer initialized successfully.")
	return nil
}

func (vr *VulkanRenderer) createInstance() error {
	appInfo := &vk.ApplicationInfo{
		SType:              vk.StructureTypeApplicationInfo,
		ApiVersion:         uint32(vk.MakeVersion(1, 0, 0)),
		ApplicationVersion: uint32(vk.MakeVersion(1, 0, 0)),
		PApplicationName:   VulkanSafeString(vr.config.AppName),
		PEngineName:        VulkanSafeString("Quadra Engine"),
	}

	createInfo := vk.InstanceCreateInfo{
		SType:            vk.StructureTypeInstanceCreateInfo,
		PApplicationInfo: appInfo,
	}

	requiredExtensions := []string{"VK_KHR_surface"}
	requiredExtensions = append(requiredExtensions, vr.platform.GetRequiredExtensionNames()...)

	if runtime.GOOS == "darwin" {
		requiredExtensions = append(requiredExtensions,
			"VK_KHR_portability_enumeration",
			"VK_KHR_get_physical_device_properties2",
		)
	}

	if vr.config.Debug {
		requiredExtensions = append(requiredExtensions, vk.ExtDebugReportExtensionName)
		core.LogInfo("Required extensions:")
		for i := range requiredExtensions {
			core.LogInfo(requiredExtensions[i])
		}
	}

	createInfo.EnabledExtensionCount = uint32(len(requiredExtensions))
	createInfo.PpEnabledExtensionNames = VulkanSafeStrings(requiredExtensions)

	requiredValidationLayerNames := []string{}
	if vr.config.Debug {
		core.LogInfo("Validation layers enabled. Enumerating...")
		requiredValidationLayerNames = []string{"VK_LAYER_KHRONOS_validation"}

		if runtime.GOOS == "darwin" {
			createInfo.Flags |= 1
		}

		var availableLayerCount uint32
		if res := vk.EnumerateInstanceLayerProperties(&availableLayerCount, nil); res != vk.Success {
			err := fmt.Errorf("failed to enumerate instance layers: %s", VulkanResultString(res, true))
			core.LogError(err.Error())
			return err
		}
		availableLayers := make([]vk.LayerProperties, availableLayerCount)
		if res := vk.EnumerateInstanceLayerProperties(&availableLayerCount, availableLayers); res != vk.Success {
			err := fmt.Errorf("failed to enumerate instance layers: %s", VulkanResultString(res, true))
			core.LogError(err.Error())
			return err
		}

		for i := range requiredValidationLayerNames {
			found := false
			for j := range availableLayers {
				availableLayers[j].Deref()
				end := FindFirstZeroInByteArray(availableLayers[j].LayerName[:])
				if requiredValidationLayerNames[i] == vk.ToString(availableLayers[j].LayerName[:end+1]) {
					found = true
					break
				}
			}
			if !found {
				err := fmt.Errorf("required validation layer is missing: %s", requiredValidationLayerNames[i])
				core.LogError(err.Error())
				return err
			}
		}
		core.LogInfo("All required validation layers are present.")
	}

	createInfo.EnabledLayerCount = uint32(len(requiredValidationLayerNames))
	createInfo.PpEnabledLayerNames = VulkanSafeStrings(requiredValidationLayerNames)

	if res := vk.CreateInstance(&createInfo, vr.context.Allocator, &vr.context.Instance); res != vk.Success {
		err := fmt.Errorf("failed to create Vulkan instance: %s", VulkanResultString(res, true))
		core.LogError(err.Error())
		return err
	}
	if err := vk.InitInstance(vr.context.Instance); err != nil {
		core.LogError(err.Error())
		return err
	}
	core.LogInfo("Vulkan Instance created.")

	if vr.config.Debug {
		core.LogDebug("Creating Vulkan debugger...")
		debugCreateInfo := vk.DebugReportCallbackCreateInfo{
			SType:       vk.StructureTypeDebugReportCallbackCreateInfo,
			Flags:       vk.DebugReportFlags(vk.DebugReportErrorBit | vk.DebugReportWarningBit),
			PfnCallback: dbgCallbackFunc,
		}
		var dbg vk.DebugReportCallback
		if err := vk.Error(vk.CreateDebugReportCallback(vr.context.Instance, &debugCreateInfo, nil, &dbg)); err != nil {
			core.LogError("vk.CreateDebugReportCallback failed with %s", err)
			return err
		}
		vr.context.debugMessenger = dbg
		core.LogDebug("Vulkan debugger created.")
	}

	return nil
}

// createGeometryBuffers makes the device-local vertex and index buffers,
// backs them with one shared allocation and fills them through staging.
func (vr *VulkanRenderer) createGeometryBuffers() error {
	vr.geometry = NewQuadGeometry()
	core.LogDebug("Quad geometry %s created.", vr.geometry.ID)

	vertexBytes := vr.geometry.VertexBytes()
	indexBytes := vr.geometry.IndexBytes()

	var err error
	vr.vertexBuffer, err = BufferCreate(vr.context, vk.DeviceSize(len(vertexBytes)),
		vk.BufferUsageFlags(vk.BufferUsageVertexBufferBit)|vk.BufferUsageFlags(vk.BufferUsageTransferDstBit))
	if err != nil {
		return err
	}
	vr.indexBuffer, err = BufferCreate(vr.context, vk.DeviceSize(len(indexBytes)),
		vk.BufferUsageFlags(vk.BufferUsageIndexBufferBit)|vk.BufferUsageFlags(vk.BufferUsageTransferDstBit))
	if err != nil {
		return err
	}

	vr.meshGroup, err = BufferGroupCreate(vr.context,
		[]*VulkanBuffer{vr.vertexBuffer, vr.indexBuffer},
		vk.MemoryPropertyFlags(vk.MemoryPropertyDeviceLocalBit),
		false)
	if err != nil {
		return err
	}

	if err := UploadToBuffer(vr.context, vr.vertexBuffer, 0, vertexBytes); err != nil {
		return err
	}
	return UploadToBuffer(vr.context, vr.indexBuffer, 0, indexBytes)
}

func (vr *VulkanRenderer) createTexture() error {
	expected := int(vr.config.TextureWidth) * int(vr.config.TextureHeight) * 4
	if len(vr.config.TexturePixels) != expected {
		err := fmt.Errorf("texture pixel data is %d bytes, expected %d for %dx%d RGBA",
			len(vr.config.TexturePixels), expected, vr.config.TextureWidth, vr.config.TextureHeight)
		core.LogError(err.Error())
		return err
	}

	texture, err := ImageCreate(
		vr.context,
		vr.config.TextureWidth,
		vr.config.TextureHeight,
		vk.FormatR8g8b8a8Srgb,
		vk.ImageUsageFlags(vk.ImageUsageTransferDstBit)|vk.ImageUsageFlags(vk.ImageUsageSampledBit),
		vk.MemoryPropertyFlags(vk.MemoryPropertyDeviceLocalBit),
		true)
	if err != nil {
		return err
	}
	vr.texture = texture

	if err := vr.texture.TransitionLayout(vr.context, vk.ImageLayoutUndefined, vk.ImageLayoutTransferDstOptimal); err != nil {
		return err
	}
	if err := UploadToImage(vr.context, vr.texture, vr.config.TexturePixels); err != nil {
		return err
	}
	return vr.texture.TransitionLayout(vr.context, vk.ImageLayoutTransferDstOptimal, vk.ImageLayoutShaderReadOnlyOptimal)
}

// createUniformBuffers makes one host-visible uniform buffer per frame slot,
// all in a single persistently mapped allocation.
func (vr *VulkanRenderer) createUniformBuffers() error {
	vr.uniformBuffers = make([]*VulkanBuffer, vr.config.FramesInFlight)
	for i := range vr.uniformBuffers {
		b, err := BufferCreate(vr.context, uniformObjectSize, vk.BufferUsageFlags(vk.BufferUsageUniformBufferBit))
		if err != nil {
			return err
		}
		vr.uniformBuffers[i] = b
	}

	properties := vk.MemoryPropertyFlags(vk.MemoryPropertyHostVisibleBit) | vk.MemoryPropertyFlags(vk.MemoryPropertyHostCoherentBit)
	group, err := BufferGroupCreate(vr.context, vr.uniformBuffers, properties, true)
	if err != nil {
		return err
	}
	vr.uniformGroup = group
	return nil
}

func (vr *VulkanRenderer) createPipeline() error {
	// Matches QuadGeometry's packed vertex layout.
	attributes := []vk.VertexInputAttributeDescription{
		{Location: 0, Binding: 0, Format: vk.FormatR32g32Sfloat, Offset: 0},
		{Location: 1, Binding: 0, Format: vk.FormatR32g32b32Sfloat, Offset: 2 * 4},
		{Location: 2, Binding: 0, Format: vk.FormatR32g32Sfloat, Offset: 5 * 4},
	}

	pipelineConfig := &VulkanPipelineConfig{
		Renderpass:           vr.context.MainRenderpass,
		Stride:               VertexStride,
		Attributes:           attributes,
		DescriptorSetLayouts: []vk.DescriptorSetLayout{vr.descriptors.SetLayout},
		Stages: []vk.PipelineShaderStageCreateInfo{
			vr.vertShader.ShaderStageCreateInfo,
			vr.fragShader.ShaderStageCreateInfo,
		},
		Viewport: vk.Viewport{
			X:        0,
			Y:        0,
			Width:    float32(vr.context.FramebufferWidth),
			Height:   float32(vr.context.FramebufferHeight),
			MinDepth: 0,
			MaxDepth: 1,
		},
		Scissor: vk.Rect2D{
			Offset: vk.Offset2D{X: 0, Y: 0},
			Extent: vk.Extent2D{Width: vr.context.FramebufferWidth, Height: vr.context.FramebufferHeight},
		},
	}

	pipeline, err := NewGraphicsPipeline(vr.context, pipelineConfig)
	if err != nil {
		return err
	}
	vr.pipeline = pipeline
	return nil
}

// WaitForFence blocks until the slot's previous submission has retired.
func (vr *VulkanRenderer) WaitForFence(slot int) error {
	if !vr.slots[slot].InFlight.FenceWait(vr.context, stdmath.MaxUint64) {
		return fmt.Errorf("in-flight fence wait failure on slot %d", slot)
	}
	return nil
}

// AcquireImage hands back the next swapchain image index. A stale surface
// triggers recreation and reports core.ErrSwapchainBooting so the driver
// retries the frame without advancing.
func (vr *VulkanRenderer) AcquireImage(slot int) (uint32, error) {
	if vr.framebufferGeneration != vr.lastGeneration {
		if err := vr.recreateSwapchain(); err != nil {
			return 0, err
		}
		return 0, core.ErrSwapchainBooting
	}

	imageIndex, err := vr.context.Swapchain.SwapchainAcquireNextImageIndex(
		vr.context, stdmath.MaxUint64, vr.slots[slot].ImageAvailable, vk.NullFence)
	if err == core.ErrSwapchainBooting {
		if rerr := vr.recreateSwapchain(); rerr != nil {
			return 0, rerr
		}
		return 0, core.ErrSwapchainBooting
	}
	return imageIndex, err
}

func (vr *VulkanRenderer) ResetFence(slot int) error {
	return vr.slots[slot].InFlight.FenceReset(vr.context)
}

// Record rewrites the slot's command buffer and its uniform region for this
// frame. Safe because the slot's fence was waited before we got here.
func (vr *VulkanRenderer) Record(slot int, imageIndex uint32) error {
	if err := vr.updateUniform(slot); err != nil {
		return err
	}

	cb := vr.slots[slot].CommandBuffer
	if err := cb.Reset(); err != nil {
		return err
	}
	if err := cb.Begin(false, false, false); err != nil {
		return err
	}

	viewport := vk.Viewport{
		X:        0,
		Y:        0,
		Width:    float32(vr.context.FramebufferWidth),
		Height:   float32(vr.context.FramebufferHeight),
		MinDepth: 0,
		MaxDepth: 1,
	}
	scissor := vk.Rect2D{
		Offset: vk.Offset2D{X: 0, Y: 0},
		Extent: vk.Extent2D{Width: vr.context.FramebufferWidth, Height: vr.context.FramebufferHeight},
	}
	vk.CmdSetViewport(cb.Handle, 0, 1, []vk.Viewport{viewport})
	vk.CmdSetScissor(cb.Handle, 0, 1, []vk.Rect2D{scissor})

	vr.context.MainRenderpass.W = float32(vr.context.FramebufferWidth)
	vr.context.MainRenderpass.H = float32(vr.context.FramebufferHeight)
	vr.context.MainRenderpass.RenderpassBegin(cb, vr.context.Swapchain.Framebuffers[imageIndex].Handle)

	vr.pipeline.Bind(cb, vk.PipelineBindPointGraphics)
	vk.CmdBindVertexBuffers(cb.Handle, 0, 1, []vk.Buffer{vr.vertexBuffer.Handle}, []vk.DeviceSize{0})
	vk.CmdBindIndexBuffer(cb.Handle, vr.indexBuffer.Handle, 0, vk.IndexTypeUint16)
	vk.CmdBindDescriptorSets(cb.Handle, vk.PipelineBindPointGraphics, vr.pipeline.PipelineLayout,
		0, 1, []vk.DescriptorSet{vr.descriptors.Sets[slot]}, 0, nil)
	vk.CmdDrawIndexed(cb.Handle, uint32(len(vr.geometry.Indices)), 1, 0, 0, 0)

	vr.context.MainRenderpass.RenderpassEnd(cb)
	return cb.End()
}

// Submit queues the slot's command buffer. Color attachment writes wait on
// the acquired image, the render-finished semaphore and the slot fence
// signal on completion.
func (vr *VulkanRenderer) Submit(slot int, imageIndex uint32) error {
	s := vr.slots[slot]

	submitInfo := vk.SubmitInfo{
		SType:                vk.StructureTypeSubmitInfo,
		CommandBufferCount:   1,
		PCommandBuffers:      []vk.CommandBuffer{s.CommandBuffer.Handle},
		WaitSemaphoreCount:   1,
		PWaitSemaphores:      []vk.Semaphore{s.ImageAvailable},
		PWaitDstStageMask:    []vk.PipelineStageFlags{vk.PipelineStageFlags(vk.PipelineStageColorAttachmentOutputBit)},
		SignalSemaphoreCount: 1,
		PSignalSemaphores:    []vk.Semaphore{s.RenderFinished},
	}

	if result := vk.QueueSubmit(vr.context.Device.GraphicsQueue, 1, []vk.SubmitInfo{submitInfo}, s.InFlight.Handle); result != vk.Success {
		err := fmt.Errorf("vkQueueSubmit failed with result: %s", VulkanResultString(result, true))
		core.LogError(err.Error())
		return err
	}
	// The fence will signal when this submission retires.
	s.InFlight.IsSignaled = false
	s.CommandBuffer.UpdateSubmitted()
	return nil
}

func (vr *VulkanRenderer) Present(slot int, imageIndex uint32) error {
	err := vr.context.Swapchain.SwapchainPresent(vr.context, vr.context.Device.PresentQueue, vr.slots[slot].RenderFinished, imageIndex)
	if err == core.ErrSwapchainBooting {
		// The frame was fully submitted, so recreate and report success.
		return vr.recreateSwapchain()
	}
	return err
}

func (vr *VulkanRenderer) Resized(width, height uint16) {
	vr.cachedFramebufferWidth = uint32(width)
	vr.cachedFramebufferHeight = uint32(height)
	vr.framebufferGeneration++
	core.LogDebug("Vulkan renderer resized: w/h/gen: %d/%d/%d", width, height, vr.framebufferGeneration)
}

func (vr *VulkanRenderer) updateUniform(slot int) error {
	vr.clock.Update()
	elapsed := float32(vr.clock.ElapsedSeconds())

	ubo := UniformObject{
		Model: math.NewMat4EulerZ(elapsed * math.DegToRad(90.0)),
		View: math.NewMat4LookAt(
			math.Vec3{X: 2, Y: 2, Z: 2},
			math.Vec3{X: 0, Y: 0, Z: 0},
			math.Vec3{X: 0, Y: 0, Z: 1}),
		Projection: math.NewMat4Perspective(
			math.DegToRad(45.0),
			float32(vr.context.FramebufferWidth)/float32(vr.context.FramebufferHeight),
			0.1, 10.0),
	}
	// GLSL clip space has Y pointing down.
	ubo.Projection.Data[5] *= -1

	return vr.uniformGroup.Write(slot, uniformBytes(&ubo))
}

func uniformBytes(ubo *UniformObject) []byte {
	out := make([]byte, 0, uniformObjectSize)
	for _, m := range []math.Mat4{ubo.Model, ubo.View, ubo.Projection} {
		for _, f := range m.Data {
			var b [4]byte
			binary.LittleEndian.PutUint32(b[:], stdmath.Float32bits(f))
			out = append(out, b[:]...)
		}
	}
	return out
}

func (vr *VulkanRenderer) regenerateFramebuffers() error {
	for i := 0; i < int(vr.context.Swapchain.ImageCount); i++ {
		attachments := []vk.ImageView{vr.context.Swapchain.Views[i]}
		fb, err := FramebufferCreate(vr.context, vr.context.MainRenderpass, vr.context.FramebufferWidth, vr.context.FramebufferHeight, attachments)
		if err != nil {
			return err
		}
		vr.context.Swapchain.Framebuffers[i] = fb
	}
	return nil
}

func (vr *VulkanRenderer) recreateSwapchain() error {
	if vr.recreatingSwapchain {
		core.LogDebug("recreateSwapchain called while already recreating. Booting.")
		return nil
	}

	width := vr.cachedFramebufferWidth
	height := vr.cachedFramebufferHeight
	if width == 0 || height == 0 {
		width = vr.context.FramebufferWidth
		height = vr.context.FramebufferHeight
	}
	if width == 0 || height == 0 {
		core.LogDebug("recreateSwapchain called when window is < 1 in a dimension. Booting.")
		return nil
	}

	vr.recreatingSwapchain = true
	defer func() { vr.recreatingSwapchain = false }()

	vk.DeviceWaitIdle(vr.context.Device.LogicalDevice)

	// Requery support since surface capabilities changed with the window.
	if err := DeviceQuerySwapchainSupport(vr.context.Device.PhysicalDevice, vr.context.Surface, &vr.context.Device.SwapchainSupport); err != nil {
		return err
	}

	for i := 0; i < int(vr.context.Swapchain.ImageCount); i++ {
		vr.context.Swapchain.Framebuffers[i].Destroy(vr.context)
	}
	vr.context.Swapchain.SwapchainDestroy(vr.context)

	sc, err := SwapchainCreate(vr.context, width, height)
	if err != nil {
		return err
	}
	vr.context.Swapchain = sc
	vr.context.FramebufferWidth = sc.Extent.Width
	vr.context.FramebufferHeight = sc.Extent.Height
	vr.context.MainRenderpass.W = float32(vr.context.FramebufferWidth)
	vr.context.MainRenderpass.H = float32(vr.context.FramebufferHeight)

	vr.context.Swapchain.Framebuffers = make([]*VulkanFramebuffer, vr.context.Swapchain.ImageCount)
	if err := vr.regenerateFramebuffers(); err != nil {
		return err
	}

	vr.lastGeneration = vr.framebufferGeneration
	core.LogInfo("Swapchain recreated at %dx%d.", vr.context.FramebufferWidth, vr.context.FramebufferHeight)
	return nil
}

// ReloadShaders rebuilds the pipeline from the shader binaries currently on
// disk. Drains the device first, so this stalls the frame loop briefly.
func (vr *VulkanRenderer) ReloadShaders() error {
	vk.DeviceWaitIdle(vr.context.Device.LogicalDevice)

	vertShader, err := NewShaderStage(vr.context, vr.config.VertexShaderPath, vk.ShaderStageVertexBit)
	if err != nil {
		return err
	}
	fragShader, err := NewShaderStage(vr.context, vr.config.FragmentShaderPath, vk.ShaderStageFragmentBit)
	if err != nil {
		vertShader.Destroy(vr.context)
		return err
	}

	oldPipeline := vr.pipeline
	vr.vertShader.Destroy(vr.context)
	vr.fragShader.Destroy(vr.context)
	vr.vertShader = vertShader
	vr.fragShader = fragShader

	if err := vr.createPipeline(); err != nil {
		return err
	}
	oldPipeline.Destroy(vr.context)

	core.LogInfo("Shaders reloaded.")
	return nil
}

// Shutdown tears everything down in reverse creation order after draining
// the device.
func (vr *VulkanRenderer) Shutdown() error {
	vk.DeviceWaitIdle(vr.context.Device.LogicalDevice)

	for _, s := range vr.slots {
		s.Destroy(vr.context)
	}
	vr.slots = nil

	if vr.pipeline != nil {
		vr.pipeline.Destroy(vr.context)
		vr.pipeline = nil
	}
	if vr.descriptors != nil {
		vr.descriptors.Destroy(vr.context)
		vr.descriptors = nil
	}

	for _, b := range vr.uniformBuffers {
		b.Destroy(vr.context)
	}
	vr.uniformBuffers = nil
	if vr.uniformGroup != nil {
		vr.uniformGroup.Destroy(vr.context)
		vr.uniformGroup = nil
	}

	if vr.texture != nil {
		vr.texture.Destroy(vr.context)
		vr.texture = nil
	}

	if vr.vertexBuffer != nil {
		vr.vertexBuffer.Destroy(vr.context)
		vr.vertexBuffer = nil
	}
	if vr.indexBuffer != nil {
		vr.indexBuffer.Destroy(vr.context)
		vr.indexBuffer = nil
	}
	if vr.meshGroup != nil {
		vr.meshGroup.Destroy(vr.context)
		vr.meshGroup = nil
	}

	if vr.vertShader != nil {
		vr.vertShader.Destroy(vr.context)
		vr.vertShader = nil
	}
	if vr.fragShader != nil {
		vr.fragShader.Destroy(vr.context)
		vr.fragShader = nil
	}

	for i := 0; i < int(vr.context.Swapchain.ImageCount); i++ {
		vr.context.Swapchain.Framebuffers[i].Destroy(vr.context)
	}
	vr.context.MainRenderpass.RenderpassDestroy(vr.context)
	vr.context.Swapchain.SwapchainDestroy(vr.context)

	core.LogDebug("Destroying Vulkan device...")
	DeviceDestroy(vr.context)

	core.LogDebug("Destroying Vulkan surface...")
	if vr.context.Surface != vk.NullSurface {
		vk.DestroySurface(vr.context.Instance, vr.context.Surface, vr.context.Allocator)
		vr.context.Surface = vk.NullSurface
	}

	if vr.context.debugMessenger != vk.NullDebugReportCallback {
		core.LogDebug("Destroying Vulkan debugger...")
		vk.DestroyDebugReportCallback(vr.context.Instance, vr.context.debugMessenger, vr.context.Allocator)
	}

	core.LogDebug("Destroying Vulkan instance...")
	vk.DestroyInstance(vr.context.Instance, vr.context.Allocator)

	return nil
}

func dbgCallbackFunc(flags vk.DebugReportFlags, objectType vk.DebugReportObjectType, object uint64, location uint64, messageCode int32, pLayerPrefix string, pMessage string, pUserData unsafe.Pointer) vk.Bool32 {
	switch {
	case flags&vk.DebugReportFlags(vk.DebugReportErrorBit) != 0:
		core.LogError("ERROR: [%s] Code %d : %s", pLayerPrefix, messageCode, pMessage)
	case flags&vk.DebugReportFlags(vk.DebugReportWarningBit) != 0:
		core.LogWarn("WARNING: [%s] Code %d : %s", pLayerPrefix, messageCode, pMessage)
	case flags&vk.DebugReportFlags(vk.DebugReportPerformanceWarningBit) != 0:
		core.LogWarn("PERFORMANCE WARNING: [%s] Code %d : %s", pLayerPrefix, messageCode, pMessage)
	default:
		core.LogInfo("INFORMATION: [%s] Code %d : %s", pLayerPrefix, messageCode, pMessage)
	}
	return vk.Bool32(vk.False)
}
