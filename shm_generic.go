//go:build !linux && !darwin

package voxeldag

// mapWords is the portable fallback for platforms without a POSIX
// shared-memory mapping path: it hands back a private heap slice
// rather than a mapping of path, so cross-process sharing is
// unavailable but every other guarantee (fresh regions start zeroed)
// still holds. fresh is always true since nothing persists between
// runs.
func mapWords(path string, words uint64) (data []uint32, fresh bool, closer func() error, err error) {
	return make([]uint32, words), true, func() error { return nil }, nil
}
