// Package tracking records which pages of the pool and which
// partitions of the page lookup table have changed since the last
// checkpoint, so a secondary mirror (e.g. a GPU-resident copy) can be
// brought up to date without re-copying the whole pool.
package tracking

import (
	"fmt"

	"github.com/bits-and-blooms/bitset"

	"github.com/naomijub/voxeldag/internal/core"
)

// lutPartitions is the fixed fan-out of the LUT mask: bit i covers a
// contiguous 1/8 partition of the page lookup table.
const lutPartitions = 8

// BasicTracker is the default Tracker: a pool mask with one bit per
// page, and an 8-bit LUT mask with one bit per LUT partition.
type BasicTracker struct {
	poolMask     *bitset.BitSet
	lutMask      *bitset.BitSet
	totalPages   uint
	partitionLen uint
}

// NewBasicTracker creates a tracker sized for totalPages pages. totalPages
// must be a multiple of lutPartitions so every partition covers an equal
// span of the LUT.
func NewBasicTracker(totalPages uint32) (*BasicTracker, error) {
	if totalPages == 0 || uint(totalPages)%lutPartitions != 0 {
		return nil, fmt.Errorf("total pages %d must be a positive multiple of %d", totalPages, lutPartitions)
	}
	return &BasicTracker{
		poolMask:     bitset.New(uint(totalPages)),
		lutMask:      bitset.New(lutPartitions),
		totalPages:   uint(totalPages),
		partitionLen: uint(totalPages) / lutPartitions,
	}, nil
}

// Register marks the physical pool page containing [poolIdx,
// poolIdx+words) dirty in the pool mask, and the LUT partition
// covering vptr's virtual page dirty in the LUT mask. The physical
// range must fit within a single page — node words never straddle a
// page boundary, so callers that obey that invariant always satisfy
// this. vptr and poolIdx address different spaces (virtual vs.
// physical) precisely because the LUT maps one onto the other out of
// order.
func (t *BasicTracker) Register(vptr core.VPtr, poolIdx, words uint32) {
	if words == 0 {
		return
	}
	page := uint(poolIdx) / uint(core.PageLen)
	lastPage := uint(poolIdx+words-1) / uint(core.PageLen)
	if page != lastPage {
		panic("tracking: range spans more than one page")
	}
	if page < t.totalPages {
		t.poolMask.Set(page)
	}

	lutPage := uint(vptr) / uint(core.PageLen)
	partition := lutPage / t.partitionLen
	if partition < lutPartitions {
		t.lutMask.Set(partition)
	}
}

// Clear resets both masks to all-zero, the state after a successful
// stage-and-flush cycle.
func (t *BasicTracker) Clear() {
	t.poolMask.ClearAll()
	t.lutMask.ClearAll()
}

// PoolMask exposes the page dirty-bit set for staging.
func (t *BasicTracker) PoolMask() *bitset.BitSet { return t.poolMask }

// LUTMask exposes the LUT partition dirty-bit set for staging.
func (t *BasicTracker) LUTMask() *bitset.BitSet { return t.lutMask }

// PartitionLen returns the number of pages covered by one LUT
// partition.
func (t *BasicTracker) PartitionLen() uint { return t.partitionLen }

// DummyTracker implements core.Tracker as a no-op, for callers that
// never mirror to a secondary device.
type DummyTracker struct{}

func (DummyTracker) Register(core.VPtr, uint32, uint32) {}
