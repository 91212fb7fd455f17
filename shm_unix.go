//go:build linux || darwin

package voxeldag

import (
	"fmt"
	"os"
	"unsafe"

	"golang.org/x/sys/unix"
)

// mapWords opens (creating if absent) the file at path, sizes it to
// hold words 32-bit words, and maps it MAP_SHARED so a second process
// opening the same path sees the same bytes. fresh reports whether the
// file was empty before this call (and so needs sentinel-filling by
// the caller).
func mapWords(path string, words uint64) (data []uint32, fresh bool, closer func() error, err error) {
	size := int64(words) * 4

	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE, 0o644)
	if err != nil {
		return nil, false, nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, false, nil, fmt.Errorf("stat %s: %w", path, err)
	}
	fresh = info.Size() == 0
	if info.Size() != size {
		if err := f.Truncate(size); err != nil {
			return nil, false, nil, fmt.Errorf("truncating %s to %d bytes: %w", path, size, err)
		}
	}

	raw, err := unix.Mmap(int(f.Fd()), 0, int(size), unix.PROT_READ|unix.PROT_WRITE, unix.MAP_SHARED)
	if err != nil {
		return nil, false, nil, fmt.Errorf("mmap %s: %w", path, err)
	}

	words32 := unsafe.Slice((*uint32)(unsafe.Pointer(&raw[0])), words)
	closer = func() error {
		if err := unix.Msync(raw, unix.MS_SYNC); err != nil {
			return fmt.Errorf("syncing %s: %w", path, err)
		}
		return unix.Munmap(raw)
	}
	return words32, fresh, closer, nil
}
