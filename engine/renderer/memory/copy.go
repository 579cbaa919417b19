package memory

import (
	"unsafe"
)

const maxMapped = 0x7fffffff

// CopyToMapped writes data into a mapped memory region at the given offset.
// The caller guarantees the mapping covers offset+len(data) bytes; for the
// coherent host-visible allocations this demo uses, no flush is needed
// afterwards.
func CopyToMapped(base unsafe.Pointer, offset uint64, data []byte) {
	dst := (*[maxMapped]byte)(unsafe.Add(base, uintptr(offset)))[:len(data):len(data)]
	copy(dst, data)
}

// ReadMapped copies size bytes out of a mapped memory region starting at
// offset. Only test harnesses and the transfer round-trip verification read
// back through this.
func ReadMapped(base unsafe.Pointer, offset uint64, size uint64) []byte {
	src := (*[maxMapped]byte)(unsafe.Add(base, uintptr(offset)))[:size:size]
	out := make([]byte, size)
	copy(out, src)
	return out
}
