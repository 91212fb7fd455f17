package utils

import (
	"fmt"
	"math"
)

// CheckMultiplyOverflow reports whether a*b would overflow uint64.
func CheckMultiplyOverflow(a, b uint64) error {
	if a == 0 || b == 0 {
		return nil
	}

	if a > math.MaxUint64/b {
		return fmt.Errorf("multiplication overflow: %d * %d exceeds uint64 max", a, b)
	}

	return nil
}

// SafeMultiply multiplies two uint64 values, failing on overflow rather
// than wrapping silently. Pow8 builds on it; the vptr and bucket
// arithmetic in internal/core does not call it.
func SafeMultiply(a, b uint64) (uint64, error) {
	if err := CheckMultiplyOverflow(a, b); err != nil {
		return 0, err
	}
	return a * b, nil
}

// Pow8 computes 8^exp, the voxel count of a fully solid subtree exp
// levels deep, failing if the result would not fit in a uint64 (never
// happens for the supported level range, but the octree depth is a
// caller-controlled parameter so the bound is checked rather than
// assumed).
func Pow8(exp uint) (uint64, error) {
	result := uint64(1)
	for i := uint(0); i < exp; i++ {
		next, err := SafeMultiply(result, 8)
		if err != nil {
			return 0, fmt.Errorf("8^%d overflows uint64: %w", exp, err)
		}
		result = next
	}
	return result, nil
}

// Fits24Bit reports whether count fits in the 24-bit voxel-count field
// carried by color-tree interior node headers.
func Fits24Bit(count uint64) bool {
	return count <= 0xFF_FFFF
}

// ValidateBufferSize validates that a size is within [1, maxSize],
// naming the quantity (description) in the error. No other package of
// this module calls it.
func ValidateBufferSize(size, maxSize uint64, description string) error {
	if size == 0 {
		return fmt.Errorf("%s: size cannot be zero", description)
	}

	if size > maxSize {
		return fmt.Errorf("%s: size %d exceeds maximum %d", description, size, maxSize)
	}

	return nil
}
