package vulkan

import (
	"encoding/binary"
	"testing"
)

func TestVulkanSafeString(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", "\x00"},
		{"main", "main\x00"},
		{"main\x00", "main\x00"},
	}
	for _, tc := range tests {
		if got := VulkanSafeString(tc.in); got != tc.want {
			t.Errorf("VulkanSafeString(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestVulkanSafeStrings(t *testing.T) {
	got := VulkanSafeStrings([]string{"VK_KHR_surface", "VK_KHR_swapchain\x00"})
	want := []string{"VK_KHR_surface\x00", "VK_KHR_swapchain\x00"}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("element %d = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestFindFirstZeroInByteArray(t *testing.T) {
	arr := []byte{'V', 'K', '_', 0, 0, 0}
	if got := FindFirstZeroInByteArray(arr); got != 3 {
		t.Errorf("FindFirstZeroInByteArray = %d, want 3", got)
	}
	full := []byte{'a', 'b', 'c'}
	if got := FindFirstZeroInByteArray(full); got != len(full)-1 {
		t.Errorf("FindFirstZeroInByteArray with no zero = %d, want %d", got, len(full)-1)
	}
}

func TestConditionalOperator(t *testing.T) {
	if got := ConditionalOperator(true, "short", "long"); got != "short" {
		t.Errorf("got %q, want %q", got, "short")
	}
	if got := ConditionalOperator(false, "short", "long"); got != "long" {
		t.Errorf("got %q, want %q", got, "long")
	}
}

func TestRepackUint32(t *testing.T) {
	// The SPIR-V magic number followed by one more word.
	data := make([]byte, 8)
	binary.LittleEndian.PutUint32(data[0:], 0x07230203)
	binary.LittleEndian.PutUint32(data[4:], 0x00010000)

	words := repackUint32(data)
	if len(words) != 2 {
		t.Fatalf("word count = %d, want 2", len(words))
	}
	if words[0] != 0x07230203 {
		t.Errorf("magic word = %#x, want 0x07230203", words[0])
	}
	if words[1] != 0x00010000 {
		t.Errorf("second word = %#x, want 0x00010000", words[1])
	}
}

func TestVulkanResultIsSuccess(t *testing.T) {
	// vk.Success and vk.Suboptimal count as success, hard errors do not.
	// Values mirror the VkResult enum.
	if !VulkanResultIsSuccess(0) {
		t.Error("VK_SUCCESS should be a success")
	}
	if VulkanResultIsSuccess(-4) {
		t.Error("VK_ERROR_DEVICE_LOST should not be a success")
	}
}
