package core

import (
	"math/bits"

	"github.com/naomijub/voxeldag/internal/errs"
	"github.com/naomijub/voxeldag/internal/utils"
)

// BasicDAG is a non-canonical octree as read from the on-disk import
// format: a flat pool of words using the same header bit-layout as
// this table's interior nodes, except children are indices into Pool
// rather than vptrs. Root is always index 0.
type BasicDAG struct {
	Pool   []uint32
	Levels int
}

const basicDAGUnvisited = ^uint32(0)

// importResult pairs a canonicalized vptr with its voxel count, so the
// recursive import can propagate counts upward without re-reading
// headers it just wrote.
type importResult struct {
	vptr  VPtr
	count uint64
}

// Import deduplicates src into t, starting recursion at the given
// root level (conventionally 0), optionally collapsing every subtree
// at or below stopLevel (relative to the whole table, not to src) to
// the canonical full node. stopLevel must be strictly less than
// LeafLevel; pass -1 to disable collapsing.
func (t *Table) Import(how Validation, src *BasicDAG, rootLevel Level, stopLevel int) (VPtr, error) {
	if stopLevel >= int(LeafLevel) {
		return NullVPtr, errs.Wrapf(errs.ErrImportError, "stop level %d must be strictly less than LeafLevel", stopLevel)
	}

	memo := make([]uint32, len(src.Pool))
	memoCount := make([]uint64, len(src.Pool))
	for i := range memo {
		memo[i] = basicDAGUnvisited
	}

	result, err := t.importNode(how, src, 0, rootLevel, stopLevel, memo, memoCount)
	if err != nil {
		return NullVPtr, err
	}
	return result.vptr, nil
}

func (t *Table) importNode(how Validation, src *BasicDAG, srcIdx uint32, level Level, stopLevel int, memo []uint32, memoCount []uint64) (importResult, error) {
	if stopLevel >= 0 && int(level) >= stopLevel {
		full := t.FullNodePtr(level)
		count := uint64(0)
		if level >= ColorTreeLevels {
			c, err := utils.Pow8(uint(SupportedLevels - int(level)))
			if err != nil {
				return importResult{}, err
			}
			count = c
		}
		return importResult{vptr: full, count: count}, nil
	}

	if int(srcIdx) >= len(src.Pool) {
		return importResult{}, errs.Wrapf(errs.ErrImportError, "source node index %d out of range", srcIdx)
	}

	if memo[srcIdx] != basicDAGUnvisited {
		return importResult{vptr: VPtr(memo[srcIdx]), count: memoCount[srcIdx]}, nil
	}

	if level == LeafLevel {
		leaf := [2]uint32{src.Pool[srcIdx], src.Pool[srcIdx+1]}
		vptr, err := t.FindOrAddLeaf(how, leaf)
		if err != nil {
			return importResult{}, err
		}
		count := uint64(bits.OnesCount32(leaf[0]) + bits.OnesCount32(leaf[1]))
		memo[srcIdx] = uint32(vptr)
		memoCount[srcIdx] = count
		return importResult{vptr: vptr, count: count}, nil
	}

	header := src.Pool[srcIdx]
	mask := uint8(header & 0xff)
	childCount := bits.OnesCount8(mask)

	node := make([]uint32, childCount+1)
	var voxelSum uint64
	ci := 0
	for bit := 0; bit < 8; bit++ {
		if mask&(1<<uint(bit)) == 0 {
			continue
		}
		childSrcIdx := src.Pool[srcIdx+1+uint32(ci)]
		child, err := t.importNode(how, src, childSrcIdx, level+1, stopLevel, memo, memoCount)
		if err != nil {
			return importResult{}, err
		}
		node[1+ci] = uint32(child.vptr)
		voxelSum += child.count
		ci++
	}

	newHeader := uint32(mask)
	if level >= ColorTreeLevels {
		newHeader |= uint32(voxelSum) << 8
	}
	node[0] = newHeader

	vptr, err := t.FindOrAddInterior(how, level, node)
	if err != nil {
		return importResult{}, err
	}

	memo[srcIdx] = uint32(vptr)
	memoCount[srcIdx] = voxelSum
	return importResult{vptr: vptr, count: voxelSum}, nil
}
