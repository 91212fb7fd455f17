// Package edit implements in-place mutation of a hashed octree DAG:
// linking or unlinking the voxels a Shape covers, re-canonicalizing
// every node the edit touches so the DAG stays fully deduplicated.
package edit

import (
	"github.com/naomijub/voxeldag/internal/core"
	"github.com/naomijub/voxeldag/internal/errs"
)

// Editor applies Link/Unlink edits against a dedup table.
type Editor struct {
	table *core.Table
}

// NewEditor wraps a bootstrapped dedup table for editing.
func NewEditor(table *core.Table) *Editor {
	return &Editor{table: table}
}

// Edit links or unlinks shape's footprint into the subtree rooted at
// vptr, returning the new root (which may equal vptr unchanged) or
// ErrEmptyDAG if the edit would leave nothing behind.
func (e *Editor) Edit(vptr core.VPtr, op Operation, shape Shape) (core.VPtr, error) {
	root := nodeState{level: core.VPtrToLevel(vptr), vptr: vptr}

	var result core.VPtr
	var err error
	if root.level >= core.ColorTreeLevels {
		result, _, err = e.editDeep(op, shape, root)
	} else {
		result, err = e.editShallow(op, shape, root)
	}
	if err != nil {
		return core.NullVPtr, err
	}
	if result == core.NullVPtr {
		return core.NullVPtr, errs.Wrap("edit removed every voxel", errs.ErrEmptyDAG)
	}
	return result, nil
}

// editShallow is used above the color-tree range, where nodes carry no
// voxel count: it recurses into every child the shape collides with
// (children it misses are kept as they are), re-assembling the node
// only if some child's vptr actually changed.
func (e *Editor) editShallow(op Operation, shape Shape, node nodeState) (core.VPtr, error) {
	result, _, err := e.editInterior(node, func(child nodeState) (bool, core.VPtr, uint64, error) {
		before := child.vptr
		edit := shape.EditProjection(child.octVox())
		if !shape.Collides(edit) {
			return false, before, 0, nil
		}

		var after core.VPtr
		var err error
		if child.level == core.ColorTreeLevels {
			after, _, err = e.editDeep(op, shape, child)
		} else {
			after, err = e.editShallow(op, shape, child)
		}
		if err != nil {
			return false, core.NullVPtr, 0, err
		}
		return after != before, after, 0, nil
	})
	return result, err
}

// editDeep is used at and below the color-tree range, where nodes
// carry a running voxel count alongside the child bitmask.
func (e *Editor) editDeep(op Operation, shape Shape, node nodeState) (core.VPtr, uint64, error) {
	edit := shape.EditProjection(node.octVox())

	if !shape.Collides(edit) {
		if node.vptr == core.NullVPtr {
			return core.NullVPtr, 0, nil
		}
		count, err := e.subtreeVoxelCount(node.level, node.vptr)
		if err != nil {
			return core.NullVPtr, 0, err
		}
		return node.vptr, count, nil
	}

	if shape.WillBeEmpty(op, edit) {
		return core.NullVPtr, 0, nil
	}
	if shape.WillBeFull(op, edit) {
		full := e.table.FullNodePtr(node.level)
		return full, fullSubtreeVoxelCount(node.level), nil
	}

	if node.level == core.LeafLevel {
		return e.editLeaf(op, shape, node)
	}

	return e.editInterior(node, func(child nodeState) (bool, core.VPtr, uint64, error) {
		before := child.vptr
		after, count, err := e.editDeep(op, shape, child)
		if err != nil {
			return false, core.NullVPtr, 0, err
		}
		return after != before, after, count, nil
	})
}

// editInterior reads the 8 existing children of node (or treats all 8
// as absent if node.vptr is NullVPtr), calls next on every one, and
// reassembles a new interior node only if next reported a change for
// at least one child. next returns whether this child's vptr changed,
// the child's (possibly unchanged) resulting vptr, and its voxel
// count contribution.
func (e *Editor) editInterior(node nodeState, next func(nodeState) (bool, core.VPtr, uint64, error)) (core.VPtr, uint64, error) {
	var existingChildren []core.VPtr
	var mask uint8
	if node.vptr != core.NullVPtr {
		interior, err := e.table.Interior(node.vptr)
		if err != nil {
			return core.NullVPtr, 0, err
		}
		mask = uint8(interior[0] & 0xff)
		existingChildren = interior[1:]
	}

	invalidated := false
	var voxelCount uint64
	children := make([]core.VPtr, 8)
	ci := 0
	for child := 0; child < 8; child++ {
		childState := node.descend(child)
		if mask&(1<<uint(child)) != 0 {
			childState.vptr = existingChildren[ci]
			ci++
		} else {
			childState.vptr = core.NullVPtr
		}

		changed, vptr, count, err := next(childState)
		if err != nil {
			return core.NullVPtr, 0, err
		}
		invalidated = invalidated || changed
		children[child] = vptr
		voxelCount += count
	}

	if !invalidated {
		return node.vptr, voxelCount, nil
	}

	newMask := uint8(0)
	present := make([]core.VPtr, 0, 8)
	for child := 0; child < 8; child++ {
		if children[child] != core.NullVPtr {
			newMask |= 1 << uint(child)
			present = append(present, children[child])
		}
	}
	if newMask == 0 {
		return core.NullVPtr, 0, nil
	}

	header := uint32(newMask)
	if node.level >= core.ColorTreeLevels {
		header |= uint32(voxelCount) << 8
	}
	newNode := make([]uint32, len(present)+1)
	newNode[0] = header
	for i, c := range present {
		newNode[1+i] = uint32(c)
	}

	vptr, err := e.table.FindOrAddInterior(core.Pass, node.level, newNode)
	if err != nil {
		return core.NullVPtr, 0, err
	}
	return vptr, voxelCount, nil
}

// editLeaf rewrites the 64-bit voxel mask at LeafLevel, testing each
// unit voxel's full-resolution OctVox against shape.
func (e *Editor) editLeaf(op Operation, shape Shape, node nodeState) (core.VPtr, uint64, error) {
	var leaf [2]uint32
	if node.vptr != core.NullVPtr {
		existing, err := e.table.Leaf(node.vptr)
		if err != nil {
			return core.NullVPtr, 0, err
		}
		leaf = existing
	}
	initial := leaf

	editBit := func(wordIdx, bit int, path [3]int64) {
		voxel := core.LevelOctVox(core.SupportedLevels, path)
		edit := shape.EditProjection(voxel)
		if !shape.Collides(edit) {
			return
		}
		if op == Link {
			leaf[wordIdx] |= 1 << uint(bit)
		} else {
			leaf[wordIdx] &= ^uint32(1 << uint(bit))
		}
	}

	for upper := 0; upper < 4; upper++ {
		upperVox := node.octVox().Descend(upper)
		base := (upper % 4) * 8
		for bottom := 0; bottom < 8; bottom++ {
			bottomVox := upperVox.Descend(bottom)
			editBit(0, base+bottom, bottomVox.Path)
		}
	}
	for upper := 4; upper < 8; upper++ {
		upperVox := node.octVox().Descend(upper)
		base := (upper % 4) * 8
		for bottom := 0; bottom < 8; bottom++ {
			bottomVox := upperVox.Descend(bottom)
			editBit(1, base+bottom, bottomVox.Path)
		}
	}

	switch {
	case leaf == [2]uint32{}:
		return core.NullVPtr, 0, nil
	case leaf == initial:
		return node.vptr, countLeaves(leaf), nil
	default:
		vptr, err := e.table.FindOrAddLeaf(core.Pass, leaf)
		if err != nil {
			return core.NullVPtr, 0, err
		}
		return vptr, countLeaves(leaf), nil
	}
}

// subtreeVoxelCount reads a resolved child's contribution to its
// parent's running voxel count.
func (e *Editor) subtreeVoxelCount(level core.Level, vptr core.VPtr) (uint64, error) {
	if level == core.LeafLevel {
		leaf, err := e.table.Leaf(vptr)
		if err != nil {
			return 0, err
		}
		return countLeaves(leaf), nil
	}
	header, err := e.table.Get(vptr)
	if err != nil {
		return 0, err
	}
	return uint64(header >> 8), nil
}

// fullSubtreeVoxelCount is 8^(SupportedLevels-level), the voxel count
// of a fully solid subtree rooted at level.
func fullSubtreeVoxelCount(level core.Level) uint64 {
	return uint64(1) << uint(3*(int(core.SupportedLevels)-int(level)))
}
