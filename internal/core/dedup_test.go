package core

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/naomijub/voxeldag/internal/errs"
)

func newTestTable(t *testing.T, words uint64) *Table {
	t.Helper()
	store, err := NewPagedStore(words)
	require.NoError(t, err)
	return NewTable(store, nil)
}

func TestFindOrAddLeaf_Idempotent(t *testing.T) {
	table := newTestTable(t, 16*PageLen)

	leaf := [2]uint32{0b1010, 0}
	v1, err := table.FindOrAddLeaf(Strict, leaf)
	require.NoError(t, err)

	lenBefore := table.Len(LeafLevel, bucketFromHash(LeafLevel, hashLeaf(leaf)))

	v2, err := table.FindOrAddLeaf(Strict, leaf)
	require.NoError(t, err)

	require.Equal(t, v1, v2)
	require.Equal(t, lenBefore, table.Len(LeafLevel, bucketFromHash(LeafLevel, hashLeaf(leaf))))
}

func TestFindOrAddLeaf_RejectsEmptyMask(t *testing.T) {
	table := newTestTable(t, 16*PageLen)
	_, err := table.FindOrAddLeaf(Strict, [2]uint32{0, 0})
	require.True(t, errors.Is(err, errs.ErrInvalidNode))
}

func TestFindOrAddInterior_Idempotent(t *testing.T) {
	table := newTestTable(t, 16*PageLen)

	leaf := [2]uint32{0b1, 0}
	leafVPtr, err := table.FindOrAddLeaf(Strict, leaf)
	require.NoError(t, err)

	node := []uint32{0x01 | 1<<8, uint32(leafVPtr)} // voxel count 1 at a color-tree level
	v1, err := table.FindOrAddInterior(Strict, LeafLevel-1, node)
	require.NoError(t, err)
	v2, err := table.FindOrAddInterior(Strict, LeafLevel-1, node)
	require.NoError(t, err)

	require.Equal(t, v1, v2)
}

func TestFindOrAddInterior_RejectsBadMaskLength(t *testing.T) {
	table := newTestTable(t, 16*PageLen)
	_, err := table.FindOrAddInterior(Strict, LeafLevel-1, []uint32{0x03, 1})
	require.True(t, errors.Is(err, errs.ErrInvalidNode))
}

func TestBootstrap_RootIsValidAndNonZero(t *testing.T) {
	table := newTestTable(t, SupportedLevels*PageLen)

	root, err := table.Bootstrap()
	require.NoError(t, err)
	require.NotEqual(t, NullVPtr, root)
	require.Equal(t, table.FullNodePtr(0), root)

	result, err := table.Validate(root)
	require.NoError(t, err)
	require.True(t, result.Valid, result.Reason)
}

func TestBootstrap_FullNodesDedupAcrossLevels(t *testing.T) {
	table := newTestTable(t, SupportedLevels*PageLen)
	_, err := table.Bootstrap()
	require.NoError(t, err)

	for level := Level(0); level <= LeafLevel; level++ {
		bucket := uint32(0)
		var lenBefore uint32
		var again VPtr

		if level == LeafLevel {
			fullLeaf := [2]uint32{0xFFFFFFFF, 0xFFFFFFFF}
			bucket = bucketFromHash(level, hashLeaf(fullLeaf))
			lenBefore = table.Len(level, bucket)
			again, err = table.FindOrAddLeaf(Strict, fullLeaf)
		} else {
			children := table.FullNodePtr(level + 1)
			node := make([]uint32, 9)
			for i := 1; i <= 8; i++ {
				node[i] = uint32(children)
			}
			node[0] = 0xff
			if level >= ColorTreeLevels {
				header, _ := table.store.ReadWord(table.FullNodePtr(level))
				node[0] = header
			}
			bucket = bucketFromHash(level, hashInteriorBlock(node))
			lenBefore = table.Len(level, bucket)
			again, err = table.FindOrAddInterior(Strict, level, node)
		}

		require.NoError(t, err)
		require.Equal(t, table.FullNodePtr(level), again)
		require.Equal(t, lenBefore, table.Len(level, bucket))
	}
}
