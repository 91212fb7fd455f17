// Package utils holds small, dependency-free helpers shared by the
// storage, import, and editing layers: pooled scratch buffers,
// endian-aware word reads, and overflow-safe arithmetic.
package utils

import "sync"

var bufferPool = sync.Pool{
	New: func() interface{} {
		return make([]byte, 0, 4096)
	},
}

// GetBuffer returns a byte slice of the requested size from the pool,
// for transient reads (the endian word readers and the inspect tool's
// hex dump) that would otherwise allocate on every call. A request
// larger than the pooled buffer's capacity gets a fresh slice.
func GetBuffer(size int) []byte {
	buf := bufferPool.Get().([]byte)
	if cap(buf) < size {
		return make([]byte, size, size*2)
	}
	return buf[:size]
}

// ReleaseBuffer returns a buffer to the pool.
func ReleaseBuffer(buf []byte) {
	//nolint:staticcheck // SA6002: slice descriptor copy is acceptable for sync.Pool
	bufferPool.Put(buf[:0])
}
