package core

// SparseVoxelsSequential is a test fixture shape: a flat node pool plus
// its level count, deserialized from JSON rather than built by hand in
// every test that needs a small BasicDAG.
type SparseVoxelsSequential struct {
	Nodes  []uint32 `json:"nodes"`
	Levels uint32   `json:"levels"`
}

// SparseVoxelsSegmented is the two-segment variant: nodes grouped into
// sub-slices (e.g. one per import pass) before being concatenated into
// a single BasicDAG pool.
type SparseVoxelsSegmented struct {
	Nodes  [][]uint32 `json:"nodes"`
	Levels uint32     `json:"levels"`
}

// BasicDAG flattens the fixture into the pool format Import expects.
func (s SparseVoxelsSequential) BasicDAG() *BasicDAG {
	return &BasicDAG{Pool: s.Nodes, Levels: int(s.Levels)}
}

// BasicDAG concatenates every segment into a single flat pool.
func (s SparseVoxelsSegmented) BasicDAG() *BasicDAG {
	var total int
	for _, seg := range s.Nodes {
		total += len(seg)
	}
	pool := make([]uint32, 0, total)
	for _, seg := range s.Nodes {
		pool = append(pool, seg...)
	}
	return &BasicDAG{Pool: pool, Levels: int(s.Levels)}
}
