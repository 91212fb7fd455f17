package core

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestValidate_LeafBFS(t *testing.T) {
	table := newTestTable(t, 16*PageLen)

	leafA := [2]uint32{0b1, 0}
	leafB := [2]uint32{0b10, 0}

	a, err := table.FindOrAddLeaf(Strict, leafA)
	require.NoError(t, err)
	b, err := table.FindOrAddLeaf(Strict, leafB)
	require.NoError(t, err)

	node := []uint32{0x03 | 2<<8, uint32(a), uint32(b)} // voxel count 1+1 at a color-tree level
	root, err := table.FindOrAddInterior(Strict, LeafLevel-1, node)
	require.NoError(t, err)

	result, err := table.Validate(root)
	require.NoError(t, err)
	require.True(t, result.Valid)
}

func TestValidate_VisitsSharedChildOnce(t *testing.T) {
	table := newTestTable(t, 16*PageLen)

	shared, err := table.FindOrAddLeaf(Strict, [2]uint32{0b1, 0})
	require.NoError(t, err)

	// Both children of the root point at the same shared leaf; each
	// contributes its one voxel to the header's count.
	node := []uint32{0x03 | 2<<8, uint32(shared), uint32(shared)}
	root, err := table.FindOrAddInterior(Strict, LeafLevel-1, node)
	require.NoError(t, err)

	result, err := table.Validate(root)
	require.NoError(t, err)
	require.True(t, result.Valid)
}
