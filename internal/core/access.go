package core

import "math/bits"

// Get reads a single pool word at vptr — usually a leaf mask word or
// an interior header, but it fetches whatever is there.
func (t *Table) Get(vptr VPtr) (uint32, error) {
	return t.store.ReadWord(vptr)
}

// Leaf reads the 2-word mask at vptr.
func (t *Table) Leaf(vptr VPtr) ([2]uint32, error) {
	words, err := t.store.ReadWords(vptr, 2)
	if err != nil {
		return [2]uint32{}, err
	}
	return [2]uint32{words[0], words[1]}, nil
}

// Interior reads the header word and every present child of the
// interior node at vptr: node[0] is the header, node[1:] are child
// vptrs in bitmask order.
func (t *Table) Interior(vptr VPtr) ([]uint32, error) {
	header, err := t.store.ReadWord(vptr)
	if err != nil {
		return nil, err
	}
	children := bits.OnesCount8(uint8(header & 0xff))
	return t.store.ReadWords(vptr, children+1)
}

// Dump exposes the raw pool and LUT, for shared-memory mirroring and
// diagnostics.
func (t *Table) Dump() (pool, lut []uint32) {
	return t.store.Pool(), t.store.LUT()
}

// HiPages returns the number of physical pages allocated so far, for
// callers that need to persist the allocator cursor (e.g. into a
// shared-memory region's trailing word) on teardown.
func (t *Table) HiPages() uint32 {
	return t.store.HiPages()
}
