// Package renderer is the engine-facing front of the rendering stack. It
// owns the Vulkan backend and the frame driver and exposes the handful of
// calls the engine loop needs.
package renderer

import (
	"errors"

	"github.com/quadra-gfx/quadra/engine/core"
	"github.com/quadra-gfx/quadra/engine/platform"
	"github.com/quadra-gfx/quadra/engine/renderer/frame"
	"github.com/quadra-gfx/quadra/engine/renderer/vulkan"
)

type Renderer struct {
	backend *vulkan.VulkanRenderer
	driver  *frame.Driver
}

func New(p *platform.Platform, backendConfig vulkan.Config) *Renderer {
	if backendConfig.FramesInFlight < 1 {
		backendConfig.FramesInFlight = frame.DefaultSlotCount
	}
	return &Renderer{
		backend: vulkan.New(p, backendConfig),
	}
}

func (r *Renderer) Initialize(slotCount int) error {
	if err := r.backend.Initialize(); err != nil {
		return err
	}

	ring, err := frame.NewRing(slotCount)
	if err != nil {
		return err
	}
	r.driver, err = frame.NewDriver(ring, r.backend, core.DefaultLogger())
	return err
}

// DrawFrame runs one frame iteration. A booting swapchain is not an error:
// the frame is simply skipped and the next iteration runs against the
// recreated swapchain.
func (r *Renderer) DrawFrame() error {
	err := r.driver.RunFrame()
	if err != nil && errors.Is(err, core.ErrSwapchainBooting) {
		core.LogDebug("Swapchain booting, frame skipped.")
		return nil
	}
	return err
}

func (r *Renderer) OnResize(width, height uint16) {
	r.backend.Resized(width, height)
}

func (r *Renderer) FrameNumber() uint64 {
	return r.driver.Ring().FrameNumber()
}

// ReloadShaders swaps the pipeline for one built from the shader binaries
// currently on disk. Must be called from the render thread between frames.
func (r *Renderer) ReloadShaders() error {
	return r.backend.ReloadShaders()
}

func (r *Renderer) Shutdown() error {
	return r.backend.Shutdown()
}
