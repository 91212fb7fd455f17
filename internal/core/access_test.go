package core

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAccess_LeafAndInterior(t *testing.T) {
	table := newTestTable(t, 16*PageLen)

	leaf := [2]uint32{0b1010, 0}
	leafVPtr, err := table.FindOrAddLeaf(Strict, leaf)
	require.NoError(t, err)

	got, err := table.Leaf(leafVPtr)
	require.NoError(t, err)
	require.Equal(t, leaf, got)

	// LeafLevel-1 is a color-tree level: the header carries the child's
	// voxel count (2 bits set in the leaf) above the child mask.
	node := []uint32{0x01 | 2<<8, uint32(leafVPtr)}
	root, err := table.FindOrAddInterior(Strict, LeafLevel-1, node)
	require.NoError(t, err)

	interior, err := table.Interior(root)
	require.NoError(t, err)
	require.Equal(t, node, interior)

	header, err := table.Get(root)
	require.NoError(t, err)
	require.Equal(t, uint32(0x01|2<<8), header)
}

func TestAccess_Dump(t *testing.T) {
	table := newTestTable(t, 16*PageLen)
	_, err := table.FindOrAddLeaf(Strict, [2]uint32{0b1, 0})
	require.NoError(t, err)

	pool, lut := table.Dump()
	require.NotEmpty(t, pool)
	require.NotEmpty(t, lut)
}
