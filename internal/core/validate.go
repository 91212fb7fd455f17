package core

import (
	"fmt"
	"math/bits"
)

// ValidationResult is the outcome of Validate: either Valid, or
// Invalid carrying a human-readable reason.
type ValidationResult struct {
	Valid  bool
	Reason string
}

// Validate performs a breadth-first traversal from root, applying
// interior validation at every level above LeafLevel and leaf
// validation at LeafLevel. Each physical pool index is visited at most
// once. Resolvability of every pointer is implicitly asserted by the
// PagedStore reads this performs.
func (t *Table) Validate(root VPtr) (ValidationResult, error) {
	type queued struct {
		v     VPtr
		level Level
	}

	visited := make(map[uint32]bool)
	queue := []queued{{root, VPtrToLevel(root)}}

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]

		idx, err := t.store.PoolIdx(cur.v)
		if err != nil {
			return ValidationResult{}, err
		}
		if visited[idx] {
			continue
		}
		visited[idx] = true

		if cur.level == LeafLevel {
			words, err := t.store.ReadWords(cur.v, 2)
			if err != nil {
				return ValidationResult{}, err
			}
			if words[0] == 0 && words[1] == 0 {
				return ValidationResult{Valid: false, Reason: "leaf with empty mask"}, nil
			}
			continue
		}

		header, err := t.store.ReadWord(cur.v)
		if err != nil {
			return ValidationResult{}, err
		}
		mask := uint8(header & 0xff)
		childCount := bits.OnesCount8(mask)
		if childCount == 0 {
			return ValidationResult{Valid: false, Reason: "interior node with no children"}, nil
		}

		children, err := t.store.ReadWords(cur.v+1, childCount)
		if err != nil {
			return ValidationResult{}, err
		}

		if cur.level >= ColorTreeLevels {
			var sum uint64
			ci := 0
			for bit := 0; bit < 8; bit++ {
				if mask&(1<<uint(bit)) == 0 {
					continue
				}
				count, err := t.subtreeVoxelCount(cur.level+1, VPtr(children[ci]))
				if err != nil {
					return ValidationResult{}, err
				}
				sum += count
				ci++
			}
			if sum != uint64(header>>8) {
				return ValidationResult{
					Valid:  false,
					Reason: fmt.Sprintf("voxel count %d does not match child sum %d at level %d", header>>8, sum, cur.level),
				}, nil
			}
		}

		for _, c := range children {
			queue = append(queue, queued{VPtr(c), cur.level + 1})
		}
	}

	return ValidationResult{Valid: true}, nil
}
