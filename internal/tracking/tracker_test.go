package tracking

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/naomijub/voxeldag/internal/core"
)

func TestNewBasicTracker_RejectsBadPageCount(t *testing.T) {
	_, err := NewBasicTracker(0)
	require.Error(t, err)

	_, err = NewBasicTracker(7) // not a multiple of 8
	require.Error(t, err)
}

func TestBasicTracker_RegisterSetsBothMasks(t *testing.T) {
	tr, err := NewBasicTracker(1024)
	require.NoError(t, err)

	vptr := core.VPtr(3 * core.PageLen)
	poolIdx := uint32(3 * core.PageLen)
	tr.Register(vptr, poolIdx, 2)

	assert.True(t, tr.PoolMask().Test(3))
	assert.Equal(t, uint(1), tr.PoolMask().Count())

	partition := 3 / tr.PartitionLen()
	assert.True(t, tr.LUTMask().Test(partition))
}

func TestBasicTracker_RegisterUsesPhysicalIndexForPoolMask(t *testing.T) {
	tr, err := NewBasicTracker(1024)
	require.NoError(t, err)

	// A high virtual page remapped onto physical page 5 by the LUT:
	// the pool mask must track the physical page, not the virtual one.
	vptr := core.VPtr(900 * core.PageLen)
	poolIdx := uint32(5 * core.PageLen)
	tr.Register(vptr, poolIdx, 2)

	assert.True(t, tr.PoolMask().Test(5))
	assert.Equal(t, uint(1), tr.PoolMask().Count())

	partition := 900 / tr.PartitionLen()
	assert.True(t, tr.LUTMask().Test(partition))
}

func TestBasicTracker_RegisterZeroWordsIsNoop(t *testing.T) {
	tr, err := NewBasicTracker(1024)
	require.NoError(t, err)

	tr.Register(core.VPtr(5*core.PageLen), uint32(5*core.PageLen), 0)
	assert.Equal(t, uint(0), tr.PoolMask().Count())
}

func TestBasicTracker_RegisterPanicsOnPageStraddle(t *testing.T) {
	tr, err := NewBasicTracker(1024)
	require.NoError(t, err)

	lastWordOfPage := uint32(core.PageLen - 1)
	assert.Panics(t, func() {
		tr.Register(core.VPtr(lastWordOfPage), lastWordOfPage, 2)
	})
}

func TestBasicTracker_Clear(t *testing.T) {
	tr, err := NewBasicTracker(1024)
	require.NoError(t, err)

	tr.Register(core.VPtr(10*core.PageLen), uint32(10*core.PageLen), 2)
	require.Equal(t, uint(1), tr.PoolMask().Count())

	tr.Clear()
	assert.Equal(t, uint(0), tr.PoolMask().Count())
	assert.Equal(t, uint(0), tr.LUTMask().Count())
}

func TestDummyTracker_IsNoop(t *testing.T) {
	var d DummyTracker
	assert.NotPanics(t, func() {
		d.Register(core.VPtr(0), 0, 100)
	})
}

func TestBasicTracker_SatisfiesCoreTracker(t *testing.T) {
	var _ core.Tracker = (*BasicTracker)(nil)
	var _ core.Tracker = DummyTracker{}
}
