package core

import "math/bits"

// These MurmurHash3 constants and rotation amounts are part of the
// on-disk/wire contract: the same bucket must be found again on
// restart, so they are hand-written rather than routed through a
// general-purpose hash library that does not guarantee this exact
// bit-for-bit finalizer behavior across versions.
const (
	murmur3C1 = 0xcc9e2d51
	murmur3C2 = 0x1b873593
)

// hashInteriorBlock is the 32-bit MurmurHash3 block hash (seed 0) over
// an interior node's full word slice, header included.
func hashInteriorBlock(words []uint32) uint32 {
	h := uint32(0)
	for _, w := range words {
		k := w * murmur3C1
		k = bits.RotateLeft32(k, 15)
		k *= murmur3C2

		h ^= k
		h = bits.RotateLeft32(h, 13)
		h = h*5 + 0xe6546b64
	}

	h ^= uint32(len(words)) * 4
	return murmur3Fmix32(h)
}

func murmur3Fmix32(h uint32) uint32 {
	h ^= h >> 16
	h *= 0x85ebca6b
	h ^= h >> 13
	h *= 0xc2b2ae35
	h ^= h >> 16
	return h
}

// hashLeaf is the 64-bit MurmurHash3 finalizer over the packed 64-bit
// leaf mask (word 0 in the low half, word 1 in the high half),
// truncated to 32 bits.
func hashLeaf(leaf [2]uint32) uint32 {
	packed := uint64(leaf[0]) | uint64(leaf[1])<<32
	return uint32(murmur3Fmix64(packed))
}

func murmur3Fmix64(k uint64) uint64 {
	k ^= k >> 33
	k *= 0xff51afd7ed558ccd
	k ^= k >> 33
	k *= 0xc4ceb9fe1a85ec53
	k ^= k >> 33
	return k
}
