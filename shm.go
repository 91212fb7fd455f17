package voxeldag

import (
	"fmt"

	"github.com/naomijub/voxeldag/internal/core"
)

const (
	pageTableSuffix = "page_table.flink"
	freeStoreSuffix = "free_store.flink"
	dataPoolSuffix  = "data_pool.flink"
)

// unallocatedFill is the LUT sentinel: every entry reads "all ones"
// until a page is allocated into it.
const unallocatedFill = ^uint32(0)

// Regions is the three file-linked backing arrays a table's storage
// layer reads and writes: the page lookup table, the bucket-length
// table, and the node pool. Where the platform supports it
// (shm_unix.go) they are POSIX shared-memory mappings a second
// process can attach to read-only; otherwise (shm_generic.go) they
// fall back to ordinary heap slices private to this process.
type Regions struct {
	LUT  []uint32 // TotalPages entries plus one trailing "hi" word
	Lens []uint32 // TotalBuckets entries
	Pool []uint32 // capacityPages * PageLen entries

	closers []func() error
}

// Hi returns the persisted allocator cursor: the number of physical
// pages already handed out.
func (r *Regions) Hi() uint64 {
	return uint64(r.LUT[len(r.LUT)-1])
}

// SetHi persists the allocator cursor into the LUT region's trailing
// word, so a process reattaching to these regions later resumes
// allocation where this one left off.
func (r *Regions) SetHi(hi uint64) {
	r.LUT[len(r.LUT)-1] = uint32(hi)
}

// Close unmaps (or releases) every region. Safe to call more than
// once; only the first error, if any, is returned.
func (r *Regions) Close() error {
	var firstErr error
	for _, c := range r.closers {
		if err := c(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	r.closers = nil
	return firstErr
}

// OpenRegions opens, creating if absent, the three regions named
// <root>page_table.flink, <root>free_store.flink and
// <root>data_pool.flink, sized for a pool of capacityPages physical
// pages (rounded up to the nearest 128, per the core package's
// invariant). A freshly created page table is filled with the
// unallocated sentinel; an existing one is left untouched so a
// process can reattach to a table another process already populated.
func OpenRegions(root string, capacityPages uint64) (*Regions, error) {
	capacityPages = ((capacityPages + 127) / 128) * 128
	if capacityPages < 128 {
		capacityPages = 128
	}

	lut, lutFresh, closeLUT, err := mapWords(root+pageTableSuffix, core.TotalPages+1)
	if err != nil {
		return nil, fmt.Errorf("opening page table: %w", err)
	}
	if lutFresh {
		for i := range lut[:core.TotalPages] {
			lut[i] = unallocatedFill
		}
	}

	lens, _, closeLens, err := mapWords(root+freeStoreSuffix, core.TotalBuckets)
	if err != nil {
		_ = closeLUT()
		return nil, fmt.Errorf("opening free store: %w", err)
	}

	pool, _, closePool, err := mapWords(root+dataPoolSuffix, capacityPages*core.PageLen)
	if err != nil {
		_ = closeLUT()
		_ = closeLens()
		return nil, fmt.Errorf("opening data pool: %w", err)
	}

	return &Regions{
		LUT:     lut,
		Lens:    lens,
		Pool:    pool,
		closers: []func() error{closeLUT, closeLens, closePool},
	}, nil
}
