package core

import (
	"errors"
)

var (
	// ErrNoSharedMemoryType is returned by the memory planner when the
	// buffers handed to it have no memory type in common and therefore can
	// never share a single device allocation.
	ErrNoSharedMemoryType = errors.New("no memory type is compatible with every buffer in the group")

	// ErrNoSuitableMemoryType is returned when the shared memory types exist
	// but none of them carries the requested property flags.
	ErrNoSuitableMemoryType = errors.New("no shared memory type satisfies the requested properties")

	// ErrSwapchainBooting signals that the swapchain was resized or went out
	// of date mid-frame. Rebuilding it is not handled by the frame driver.
	ErrSwapchainBooting = errors.New("swapchain resized or recreated, booting")

	ErrUnknown = errors.New("unknown")
)
