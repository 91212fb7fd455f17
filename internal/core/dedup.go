package core

import (
	"math/bits"

	"github.com/naomijub/voxeldag/internal/errs"
)

// Validation selects whether an insert is pre-validated by the caller
// (Pass) or must be checked here (Strict).
type Validation int

const (
	Strict Validation = iota
	Pass
)

// Table is the canonicalizing hash table: a BucketTable plus the
// per-level full-node cache populated at bootstrap. FindOrAddLeaf and
// FindOrAddInterior search before appending, so they never duplicate
// content. AddLeaf/AddInterior, promoted from the embedded BucketTable,
// are exported too and append without searching, so calling them
// directly can store the same node twice.
type Table struct {
	*BucketTable
	store    *PagedStore
	fullNode [LeafLevel + 1]VPtr // canonical fully-solid node per level
}

// NewTable wires a fresh PagedStore and BucketTable together. Callers
// must run Bootstrap before any FindOrAdd* call.
func NewTable(store *PagedStore, tracker Tracker) *Table {
	return &Table{
		BucketTable: NewBucketTable(store, tracker),
		store:       store,
	}
}

// NewTableFromRegions wires a Table over externally-owned store and
// bucket-length regions. Callers must still run Bootstrap: the
// full-node cache is never persisted in the shared-memory mirror, only
// the pool, LUT, and bucket lengths are.
func NewTableFromRegions(store *PagedStore, lens []uint32, tracker Tracker) (*Table, error) {
	buckets, err := NewBucketTableFromLens(store, lens, tracker)
	if err != nil {
		return nil, err
	}
	return &Table{
		BucketTable: buckets,
		store:       store,
	}, nil
}

// FullNodePtr returns the canonical fully-solid node vptr at level.
func (t *Table) FullNodePtr(level Level) VPtr {
	return t.fullNode[level]
}

// FindOrAddLeaf canonicalizes a 2-word leaf mask, returning the vptr
// of either an existing identical leaf or a freshly appended one.
func (t *Table) FindOrAddLeaf(how Validation, leaf [2]uint32) (VPtr, error) {
	if how == Strict {
		if leaf[0] == 0 && leaf[1] == 0 {
			return NullVPtr, errs.Wrap("leaf with empty mask", errs.ErrInvalidNode)
		}
	}

	bucket := bucketFromHash(LeafLevel, hashLeaf(leaf))

	if full := t.fullNode[LeafLevel]; full != NullVPtr {
		fullWords, err := t.store.ReadWords(full, 2)
		if err == nil && fullWords[0] == leaf[0] && fullWords[1] == leaf[1] {
			return full, nil
		}
	}

	baseVPtr, err := bucketBaseVPtr(LeafLevel, bucket)
	if err != nil {
		return NullVPtr, err
	}
	if page := uint32(baseVPtr) / PageLen; !t.store.IsAllocated(page) {
		return t.AddLeaf(LeafLevel, bucket, leaf)
	}

	if found, ok, err := t.FindLeaf(LeafLevel, bucket, leaf); err != nil {
		return NullVPtr, err
	} else if ok {
		return found, nil
	}

	return t.AddLeaf(LeafLevel, bucket, leaf)
}

// FindOrAddInterior canonicalizes an interior node (header word
// followed by up to 8 child vptrs), returning the vptr of either an
// existing identical node or a freshly appended one.
func (t *Table) FindOrAddInterior(how Validation, level Level, node []uint32) (VPtr, error) {
	if how == Strict {
		if err := t.validateInterior(level, node); err != nil {
			return NullVPtr, err
		}
	}

	bucket := bucketFromHash(level, hashInteriorBlock(node))

	if full := t.fullNode[level]; full != NullVPtr {
		fullLen := uint32(bits.OnesCount8(uint8(t.fullNodeHeader(level)&0xff))) + 1
		if fullLen == uint32(len(node)) {
			fullWords, err := t.store.ReadWords(full, len(node))
			if err == nil && sameWords(fullWords, node) {
				return full, nil
			}
		}
	}

	baseVPtr, err := bucketBaseVPtr(level, bucket)
	if err != nil {
		return NullVPtr, err
	}
	if page := uint32(baseVPtr) / PageLen; !t.store.IsAllocated(page) {
		return t.AddInterior(level, bucket, node)
	}

	if found, ok, err := t.FindInterior(level, bucket, node); err != nil {
		return NullVPtr, err
	} else if ok {
		return found, nil
	}

	return t.AddInterior(level, bucket, node)
}

func (t *Table) fullNodeHeader(level Level) uint32 {
	v := t.fullNode[level]
	if v == NullVPtr {
		return 0
	}
	w, err := t.store.ReadWord(v)
	if err != nil {
		return 0
	}
	return w
}

// validateInterior checks: 1 < len <= 9; popcount(header low 8) + 1 ==
// len; and, in the color-tree range, that the header's high-24 voxel
// count equals the sum of child subtree counts.
func (t *Table) validateInterior(level Level, node []uint32) error {
	if len(node) <= 1 || len(node) > 9 {
		return errs.Wrapf(errs.ErrInvalidNode, "interior node length %d out of range", len(node))
	}

	header := node[0]
	mask := uint8(header & 0xff)
	childCount := bits.OnesCount8(mask)
	if childCount+1 != len(node) {
		return errs.Wrapf(errs.ErrInvalidNode, "mask popcount %d does not match node length %d", childCount, len(node))
	}

	if level < ColorTreeLevels {
		return nil
	}

	var sum uint64
	ci := 0
	for bit := 0; bit < 8; bit++ {
		if mask&(1<<uint(bit)) == 0 {
			continue
		}
		child := VPtr(node[1+ci])
		ci++

		count, err := t.subtreeVoxelCount(level+1, child)
		if err != nil {
			return err
		}
		sum += count
	}

	if sum != uint64(header>>8) {
		return errs.Wrapf(errs.ErrInvalidNode, "voxel count %d does not match child sum %d", header>>8, sum)
	}
	return nil
}

// subtreeVoxelCount reads a child's contribution to its parent's voxel
// count: the child header's high-24 bits for an interior child, or the
// leaf mask popcount for a leaf child.
func (t *Table) subtreeVoxelCount(level Level, child VPtr) (uint64, error) {
	if level == LeafLevel {
		words, err := t.store.ReadWords(child, 2)
		if err != nil {
			return 0, err
		}
		return uint64(bits.OnesCount32(words[0]) + bits.OnesCount32(words[1])), nil
	}

	header, err := t.store.ReadWord(child)
	if err != nil {
		return 0, err
	}
	return uint64(header >> 8), nil
}
