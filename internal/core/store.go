package core

import (
	"fmt"

	"github.com/naomijub/voxeldag/internal/errs"
	"github.com/naomijub/voxeldag/internal/writer"
)

// unallocatedPage is the LUT sentinel ("all ones").
const unallocatedPage = ^uint32(0)

// PagedStore is a single word-indexed array plus a page lookup table
// mapping a virtual page index to a physical page slot. It knows
// nothing about levels, buckets, or node shapes.
type PagedStore struct {
	lut   []uint32 // TotalPages entries: physical word offset, or unallocatedPage
	pool  []uint32 // physical words, capacityPages*PageLen long
	pages *writer.PageAllocator
}

// NewPagedStore allocates a pool rounded up to the nearest multiple of
// 128 pages (minimum 128), per the shared-memory layout contract in
// the external interface description. requestedWords of 0 is rejected.
func NewPagedStore(requestedWords uint64) (*PagedStore, error) {
	if requestedWords == 0 {
		return nil, fmt.Errorf("Cannot allocate 0 words to a pool!")
	}

	pages := (requestedWords + PageLen - 1) / PageLen
	pages = ((pages + 127) / 128) * 128
	if pages < 128 {
		pages = 128
	}

	lut := make([]uint32, TotalPages)
	for i := range lut {
		lut[i] = unallocatedPage
	}

	return &PagedStore{
		lut:   lut,
		pool:  make([]uint32, pages*PageLen),
		pages: writer.NewPageAllocator(pages),
	}, nil
}

// NewPagedStoreFromRegions wires a PagedStore over externally-owned
// lut and pool slices — typically shared-memory mappings — instead of
// allocating its own backing arrays. hi is the page count persisted in
// the LUT region's trailing word, restoring the allocator's cursor
// without replaying individual allocations.
func NewPagedStoreFromRegions(lut, pool []uint32, hi uint64) (*PagedStore, error) {
	if uint64(len(lut)) != TotalPages {
		return nil, fmt.Errorf("lut region has %d entries, want %d", len(lut), TotalPages)
	}
	if len(pool)%PageLen != 0 {
		return nil, fmt.Errorf("pool region length %d is not a multiple of PageLen %d", len(pool), PageLen)
	}

	capacityPages := uint64(len(pool)) / PageLen
	pages, err := writer.NewPageAllocatorResumed(capacityPages, hi)
	if err != nil {
		return nil, err
	}

	return &PagedStore{
		lut:   lut,
		pool:  pool,
		pages: pages,
	}, nil
}

// IsAllocated reports whether the given virtual page has a physical
// backing.
func (s *PagedStore) IsAllocated(page uint32) bool {
	return page < uint32(len(s.lut)) && s.lut[page] != unallocatedPage
}

// Allocate binds the next physical page to the given virtual page.
// Allocating an already-allocated page is a precondition violation —
// it panics rather than returning an error, matching the source's
// debug assertion.
func (s *PagedStore) Allocate(page uint32) error {
	if s.IsAllocated(page) {
		panic("Trying to allocate an allocated page.")
	}

	physPage, err := s.pages.Allocate(1)
	if err != nil {
		return errs.Wrapf(errs.ErrOutOfSpace, "allocating page %d: %v", page, err)
	}

	s.lut[page] = uint32(physPage) * PageLen
	return nil
}

// PoolIdx resolves a vptr to a physical word index.
func (s *PagedStore) PoolIdx(v VPtr) (uint32, error) {
	if uint64(v) >= TotalVirtSpace {
		return 0, errs.Wrap("Trying to lookup a non-existing page.", errs.ErrOutOfBounds)
	}

	page := uint32(v) / PageLen
	if !s.IsAllocated(page) {
		return 0, errs.Wrap("Virtual pointer points to unallocated memory.", errs.ErrUnallocated)
	}

	idx := s.lut[page] + uint32(v)%PageLen
	if idx >= uint32(s.pages.EndOfPool())*PageLen {
		return 0, errs.Wrap("Trying to lookup a non-existing page.", errs.ErrOutOfBounds)
	}
	return idx, nil
}

// ReadWord reads the pool word addressed by vptr.
func (s *PagedStore) ReadWord(v VPtr) (uint32, error) {
	idx, err := s.PoolIdx(v)
	if err != nil {
		return 0, err
	}
	return s.pool[idx], nil
}

// ReadWords reads n consecutive words starting at vptr. All words must
// lie on the same page (the caller — the bucket layer — guarantees
// this by never letting a node straddle a page boundary).
func (s *PagedStore) ReadWords(v VPtr, n int) ([]uint32, error) {
	out := make([]uint32, n)
	for i := 0; i < n; i++ {
		idx, err := s.PoolIdx(v + VPtr(i))
		if err != nil {
			return nil, err
		}
		out[i] = s.pool[idx]
	}
	return out, nil
}

// WriteWord writes a single word at vptr. The caller must have
// allocated the backing page first.
func (s *PagedStore) WriteWord(v VPtr, word uint32) error {
	idx, err := s.PoolIdx(v)
	if err != nil {
		return err
	}
	s.pool[idx] = word
	return nil
}

// EnsurePage allocates the virtual page containing vptr if it is not
// already allocated.
func (s *PagedStore) EnsurePage(v VPtr) error {
	page := uint32(v) / PageLen
	if s.IsAllocated(page) {
		return nil
	}
	return s.Allocate(page)
}

// HiPages returns the number of physical pages allocated so far.
func (s *PagedStore) HiPages() uint32 {
	return uint32(s.pages.EndOfPool())
}

// CapacityPages returns the physical page capacity of the pool.
func (s *PagedStore) CapacityPages() uint32 {
	return uint32(s.pages.CapacityPages())
}

// Pool exposes the raw physical word array, for staging and shared
// memory mirroring.
func (s *PagedStore) Pool() []uint32 {
	return s.pool
}

// LUT exposes the raw page lookup table, for staging and shared
// memory mirroring.
func (s *PagedStore) LUT() []uint32 {
	return s.lut
}
