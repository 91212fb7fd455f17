package core

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestConstantInvariants(t *testing.T) {
	require.Zero(t, TotalVirtSpace%PageLen)
	require.Zero(t, TotalPages%128)
	require.Zero(t, HiBucketLen%PageLen)
	require.Zero(t, LoBucketLen%PageLen)
	require.Equal(t, Level(15), LeafLevel)
	require.Equal(t, Level(10), ColorTreeLevels)
}

func TestBucketsPerLevel(t *testing.T) {
	require.EqualValues(t, BucketsPerHiLevel, BucketsPerLevel(0))
	require.EqualValues(t, BucketsPerHiLevel, BucketsPerLevel(HiLevels-1))
	require.EqualValues(t, BucketsPerLoLevel, BucketsPerLevel(HiLevels))
	require.EqualValues(t, BucketsPerLoLevel, BucketsPerLevel(LeafLevel))
}

func TestBucketCapacity(t *testing.T) {
	require.EqualValues(t, HiBucketLen, BucketCapacity(0))
	require.EqualValues(t, LoBucketLen, BucketCapacity(LeafLevel))
}
