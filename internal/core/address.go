package core

import "github.com/naomijub/voxeldag/internal/errs"

// NewVPtr encodes (level, bucket, offset) into a vptr. It fails with
// ErrOutOfBounds if bucket or offset exceed that level's capacity, or
// if the resulting vptr would fall outside TotalVirtSpace.
func NewVPtr(level Level, bucket, offset uint32) (VPtr, error) {
	if bucket >= BucketsPerLevel(level) {
		return NullVPtr, errs.Wrapf(errs.ErrOutOfBounds, "bucket %d exceeds capacity at level %d", bucket, level)
	}
	if offset >= BucketCapacity(level) {
		return NullVPtr, errs.Wrapf(errs.ErrOutOfBounds, "offset %d exceeds bucket capacity at level %d", offset, level)
	}

	var v uint64
	if level < HiLevels {
		v = (uint64(level)*BucketsPerHiLevel+uint64(bucket))*HiBucketLen + uint64(offset)
	} else {
		loLevel := uint64(level) - HiLevels
		v = HiVirtSpace + (loLevel*BucketsPerLoLevel+uint64(bucket))*LoBucketLen + uint64(offset)
	}

	if v >= TotalVirtSpace {
		return NullVPtr, errs.Wrapf(errs.ErrOutOfBounds, "vptr %d exceeds total virtual space", v)
	}
	return VPtr(v), nil
}

// VPtrToLevel recovers the level a vptr was encoded at.
func VPtrToLevel(v VPtr) Level {
	if uint64(v) < HiVirtSpace {
		perLevel := uint64(BucketsPerHiLevel) * HiBucketLen
		return Level(uint64(v) / perLevel)
	}
	loOffset := uint64(v) - HiVirtSpace
	perLevel := uint64(BucketsPerLoLevel) * LoBucketLen
	return Level(HiLevels + loOffset/perLevel)
}

// bucketFromHash reduces a hash to a bucket index for the given level.
// BucketsPerLevel is always a power of two, so a mask substitutes for
// a modulo.
func bucketFromHash(level Level, h uint32) uint32 {
	return h & (BucketsPerLevel(level) - 1)
}

// bucketBaseVPtr is the vptr of word offset 0 within (level, bucket).
func bucketBaseVPtr(level Level, bucket uint32) (VPtr, error) {
	return NewVPtr(level, bucket, 0)
}
