package voxeldag

import "github.com/naomijub/voxeldag/internal/core"

// Report is a snapshot of how much of a table's shared-memory footprint
// is actually in use, useful for logging and capacity planning.
type Report struct {
	AllocatedPagesInMB float32
	PageTableInMB      float32
	PoolInMB           float32
	TotalPages         uint32
	AllocatedPages     uint32
}

const bytesPerWord = 4
const bytesToMB = 1e6

// AllocatedPagesInMB is the allocated page count times 4 bytes, in MB.
// It does not multiply by PageLen, so it is not the byte footprint of
// those pages (that would be PageLen times larger).
func (t *Table) AllocatedPagesInMB() float32 {
	return float32(bytesPerWord*t.AllocatedPages()) / bytesToMB
}

// PageTableInMB is the footprint of the full page lookup table,
// regardless of how much of it is in use.
func (t *Table) PageTableInMB() float32 {
	_, lut := t.Core.Dump()
	return float32(bytesPerWord*len(lut)) / bytesToMB
}

// PoolInMB is the footprint of the full node pool, regardless of how
// much of it is in use.
func (t *Table) PoolInMB() float32 {
	pool, _ := t.Core.Dump()
	return float32(bytesPerWord*len(pool)) / bytesToMB
}

// TotalPages is the pool's physical page capacity.
func (t *Table) TotalPages() uint32 {
	pool, _ := t.Core.Dump()
	return uint32(len(pool)) / core.PageLen
}

// AllocatedPages is the number of physical pages handed out so far.
func (t *Table) AllocatedPages() uint32 {
	return t.Core.HiPages()
}

// Report gathers every figure above into a single snapshot.
func (t *Table) Report() Report {
	return Report{
		AllocatedPagesInMB: t.AllocatedPagesInMB(),
		PageTableInMB:      t.PageTableInMB(),
		PoolInMB:           t.PoolInMB(),
		TotalPages:         t.TotalPages(),
		AllocatedPages:     t.AllocatedPages(),
	}
}
