package core

import (
	"math/bits"
	"sync/atomic"

	"github.com/naomijub/voxeldag/internal/errs"
)

// Tracker receives notice of every word range written to the pool.
// vptr addresses the virtual page whose LUT entry just changed or was
// read through; poolIdx is the physical pool word offset the range
// was actually written at — the two differ because the LUT maps
// virtual pages onto physical ones out of order, and a mirror needs
// the physical offset to know what to copy.
type Tracker interface {
	Register(vptr VPtr, poolIdx, words uint32)
}

// NopTracker implements Tracker as a no-op, for scenarios that don't
// mirror to a secondary device.
type NopTracker struct{}

// Register does nothing.
func (NopTracker) Register(VPtr, uint32, uint32) {}

// BucketTable owns the per-(level,bucket) virtual ranges backed by a
// PagedStore: it tracks how many words of each bucket are in use and
// implements the sequential-scan search and append operations that
// the deduplication layer builds on.
type BucketTable struct {
	store   *PagedStore
	lens    []uint32 // flat TotalBuckets entries, used-word prefix per bucket
	tracker Tracker
}

// NewBucketTable wraps a PagedStore with a zeroed bucket-length table.
func NewBucketTable(store *PagedStore, tracker Tracker) *BucketTable {
	if tracker == nil {
		tracker = NopTracker{}
	}
	return &BucketTable{
		store:   store,
		lens:    make([]uint32, TotalBuckets),
		tracker: tracker,
	}
}

// NewBucketTableFromLens wraps a PagedStore over an externally-owned
// bucket-length region (e.g. a shared-memory mapping) instead of a
// freshly zeroed slice.
func NewBucketTableFromLens(store *PagedStore, lens []uint32, tracker Tracker) (*BucketTable, error) {
	if uint64(len(lens)) != TotalBuckets {
		return nil, errs.Wrapf(errs.ErrOutOfBounds, "bucket-length region has %d entries, want %d", len(lens), TotalBuckets)
	}
	if tracker == nil {
		tracker = NopTracker{}
	}
	return &BucketTable{
		store:   store,
		lens:    lens,
		tracker: tracker,
	}, nil
}

func bucketFlatIndex(level Level, bucket uint32) uint32 {
	if level < HiLevels {
		return uint32(level)*BucketsPerHiLevel + bucket
	}
	return HiLevels*BucketsPerHiLevel + uint32(level-HiLevels)*BucketsPerLoLevel + bucket
}

// Len returns the used-word prefix of a bucket.
func (t *BucketTable) Len(level Level, bucket uint32) uint32 {
	return t.lens[bucketFlatIndex(level, bucket)]
}

// FindLeaf sequentially scans bucket in 2-word steps looking for an
// exact match. It fails with ErrOutOfBounds if len exceeds the level's
// bucket capacity.
func (t *BucketTable) FindLeaf(level Level, bucket uint32, leaf [2]uint32) (VPtr, bool, error) {
	length := t.Len(level, bucket)
	if length > BucketCapacity(level) {
		return NullVPtr, false, errs.Wrapf(errs.ErrOutOfBounds, "bucket length %d exceeds capacity at level %d", length, level)
	}

	base, err := bucketBaseVPtr(level, bucket)
	if err != nil {
		return NullVPtr, false, err
	}

	for off := uint32(0); off+2 <= length; off += 2 {
		words, err := t.store.ReadWords(base+VPtr(off), 2)
		if err != nil {
			return NullVPtr, false, err
		}
		if words[0] == leaf[0] && words[1] == leaf[1] {
			return base + VPtr(off), true, nil
		}
	}
	return NullVPtr, false, nil
}

// FindInterior sequentially scans bucket, page by page, for an exact
// match of node (header word included). A node never straddles a
// page, so each page is scanned independently by hopping
// popcount(header&0xff)+1 words at a time; the final partial-page tail
// is only scanned if the preceding full pages found nothing and the
// remaining words are at least len(node) long.
func (t *BucketTable) FindInterior(level Level, bucket uint32, node []uint32) (VPtr, bool, error) {
	length := t.Len(level, bucket)
	base, err := bucketBaseVPtr(level, bucket)
	if err != nil {
		return NullVPtr, false, err
	}

	fullPages := length / PageLen
	tailLen := length % PageLen

	for page := uint32(0); page < fullPages; page++ {
		pageStart := page * PageLen
		found, vptr, err := scanPage(t.store, base, pageStart, PageLen, node)
		if err != nil {
			return NullVPtr, false, err
		}
		if found {
			return vptr, true, nil
		}
	}

	if tailLen >= uint32(len(node)) {
		pageStart := fullPages * PageLen
		found, vptr, err := scanPage(t.store, base, pageStart, tailLen, node)
		if err != nil {
			return NullVPtr, false, err
		}
		if found {
			return vptr, true, nil
		}
	}

	return NullVPtr, false, nil
}

func scanPage(store *PagedStore, base VPtr, pageStart, pageLen uint32, node []uint32) (bool, VPtr, error) {
	off := uint32(0)
	for off < pageLen {
		header, err := store.ReadWord(base + VPtr(pageStart+off))
		if err != nil {
			return false, NullVPtr, err
		}
		step := uint32(bits.OnesCount8(uint8(header&0xff))) + 1

		if off+step <= pageLen {
			words, err := store.ReadWords(base+VPtr(pageStart+off), int(step))
			if err != nil {
				return false, NullVPtr, err
			}
			if sameWords(words, node) {
				return true, base + VPtr(pageStart+off), nil
			}
		}
		off += step
	}
	return false, NullVPtr, nil
}

func sameWords(a, b []uint32) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// AddLeaf appends a 2-word leaf to the end of bucket's used range,
// allocating the next page first if the bucket's first page is
// unallocated or the current length sits on a page boundary.
func (t *BucketTable) AddLeaf(level Level, bucket uint32, leaf [2]uint32) (VPtr, error) {
	idx := bucketFlatIndex(level, bucket)
	curLen := t.lens[idx]
	capacity := BucketCapacity(level)

	if curLen+2 >= capacity {
		return NullVPtr, errs.Wrapf(errs.ErrBucketOverflow, "bucket (%d,%d) would reach capacity %d", level, bucket, capacity)
	}

	vptr, err := NewVPtr(level, bucket, curLen)
	if err != nil {
		return NullVPtr, err
	}

	if curLen%PageLen == 0 {
		if err := t.store.EnsurePage(vptr); err != nil {
			return NullVPtr, err
		}
	}

	if err := t.store.WriteWord(vptr, leaf[0]); err != nil {
		return NullVPtr, err
	}
	if err := t.store.WriteWord(vptr+1, leaf[1]); err != nil {
		return NullVPtr, err
	}

	poolIdx, err := t.store.PoolIdx(vptr)
	if err != nil {
		return NullVPtr, err
	}

	atomic.StoreUint32(&t.lens[idx], curLen+2)
	t.tracker.Register(vptr, poolIdx, 2)
	return vptr, nil
}

// AddInterior appends node to bucket, wasting the remainder of the
// current page if node does not fit, so that no node ever straddles a
// page.
func (t *BucketTable) AddInterior(level Level, bucket uint32, node []uint32) (VPtr, error) {
	idx := bucketFlatIndex(level, bucket)
	curLen := t.lens[idx]
	capacity := BucketCapacity(level)
	nodeLen := uint32(len(node))

	offsetInPage := curLen % PageLen
	spaceLeft := PageLen - offsetInPage
	if nodeLen > spaceLeft {
		curLen += spaceLeft
	}

	if curLen+nodeLen >= capacity {
		return NullVPtr, errs.Wrapf(errs.ErrBucketOverflow, "bucket (%d,%d) would reach capacity %d", level, bucket, capacity)
	}

	vptr, err := NewVPtr(level, bucket, curLen)
	if err != nil {
		return NullVPtr, err
	}

	if curLen%PageLen == 0 {
		if err := t.store.EnsurePage(vptr); err != nil {
			return NullVPtr, err
		}
	}

	for i, w := range node {
		if err := t.store.WriteWord(vptr+VPtr(i), w); err != nil {
			return NullVPtr, err
		}
	}

	poolIdx, err := t.store.PoolIdx(vptr)
	if err != nil {
		return NullVPtr, err
	}

	atomic.StoreUint32(&t.lens[idx], curLen+nodeLen)
	t.tracker.Register(vptr, poolIdx, nodeLen)
	return vptr, nil
}
