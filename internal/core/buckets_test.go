package core

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/naomijub/voxeldag/internal/errs"
)

func newTestBucketTable(t *testing.T) *BucketTable {
	t.Helper()
	store, err := NewPagedStore(32 * PageLen)
	require.NoError(t, err)
	return NewBucketTable(store, nil)
}

func TestBucketTable_AddLeafAndFind(t *testing.T) {
	bt := newTestBucketTable(t)

	leaf := [2]uint32{1, 2}
	v, err := bt.AddLeaf(LeafLevel, 0, leaf)
	require.NoError(t, err)

	found, ok, err := bt.FindLeaf(LeafLevel, 0, leaf)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, v, found)
}

func TestBucketTable_FindLeaf_NotFound(t *testing.T) {
	bt := newTestBucketTable(t)
	_, err := bt.AddLeaf(LeafLevel, 0, [2]uint32{1, 2})
	require.NoError(t, err)

	_, ok, err := bt.FindLeaf(LeafLevel, 0, [2]uint32{9, 9})
	require.NoError(t, err)
	require.False(t, ok)
}

func TestBucketTable_AddInterior_NoStraddle(t *testing.T) {
	bt := newTestBucketTable(t)

	// Fill the bucket close to a page boundary with 9-word nodes, then
	// confirm a node never straddles into the next page.
	var last VPtr
	for i := 0; i < (PageLen/9)+2; i++ {
		node := []uint32{0xff, 1, 2, 3, 4, 5, 6, 7, 8}
		v, err := bt.AddInterior(0, 0, node)
		require.NoError(t, err)
		last = v
	}

	pageOfStart := uint32(last) / PageLen
	pageOfEnd := (uint32(last) + 8) / PageLen
	require.Equal(t, pageOfStart, pageOfEnd)
}

func TestBucketTable_AddLeaf_BucketOverflow(t *testing.T) {
	bt := newTestBucketTable(t)

	var err error
	for i := 0; i < int(LoBucketLen/2); i++ {
		_, err = bt.AddLeaf(LeafLevel, 0, [2]uint32{uint32(i) + 1, 0})
		if err != nil {
			break
		}
	}
	require.True(t, errors.Is(err, errs.ErrBucketOverflow))
}

func TestBucketTable_FindInterior_PageBoundaryScan(t *testing.T) {
	bt := newTestBucketTable(t)

	node1 := []uint32{0x01, 100}
	node2 := []uint32{0x03, 200, 300}

	v1, err := bt.AddInterior(0, 0, node1)
	require.NoError(t, err)
	_, err = bt.AddInterior(0, 0, node2)
	require.NoError(t, err)

	found, ok, err := bt.FindInterior(0, 0, node1)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, v1, found)
}
