package tracking

import (
	"github.com/bits-and-blooms/bitset"

	"github.com/naomijub/voxeldag/internal/core"
)

// Range is a half-open [Start, End) span of words.
type Range struct {
	Start, End uint
}

func (r Range) Len() uint { return r.End - r.Start }

// WriteRange is called once per coalesced run with matching source and
// destination ranges of equal length.
type WriteRange func(src, dst Range)

// Stage walks both masks of t, coalescing consecutive dirty units into
// single ranges, and invokes writePool/writeLUT once per run. Calling
// Stage twice with the source/destination roles swapped lets a caller
// first fill a staging buffer from the pool and then flush it to a
// mirror, emitting the identical range pairs both times: the source
// side is always compact (only dirty units occupy it), the destination
// side always reflects true positions in the full address space, so an
// unset bit advances only the destination cursor.
func Stage(t *BasicTracker, writePool, writeLUT WriteRange) {
	stageMask(t.lutMask, t.partitionLen, writeLUT)
	stageMask(t.poolMask, uint(core.PageLen), writePool)
}

// stageMask coalesces consecutive set bits of mask into runs, each unit
// spanning unitLen words, emitting write(src, dst) once per run.
//
// NextSetMany lets long runs of both set and unset bits be consumed a
// batch at a time instead of probed one bit at a time, which matters
// once the pool mask spans hundreds of thousands of pages.
func stageMask(mask *bitset.BitSet, unitLen uint, write WriteRange) {
	var srcIdx, dstIdx, runLen uint
	buf := make([]uint, 256)

	flush := func() {
		if runLen == 0 {
			return
		}
		write(Range{srcIdx, srcIdx + runLen}, Range{dstIdx, dstIdx + runLen})
		srcIdx += runLen
		dstIdx += runLen
		runLen = 0
	}

	lastSeen := -1 // position of the previous set bit; -1 means none yet
	next := uint(0)
	for {
		var bits []uint
		next, bits = mask.NextSetMany(next, buf)
		if len(bits) == 0 {
			break
		}
		for _, bit := range bits {
			gap := int(bit) - lastSeen - 1
			if gap > 0 {
				flush()
				dstIdx += uint(gap) * unitLen
			}
			runLen += unitLen
			lastSeen = int(bit)
		}
	}
	flush()
}

// StagingSpecs reports the total pool words and LUT words a stage pass
// will move, for sizing temporary buffers up front.
type StagingSpecs struct {
	PoolWords uint
	LUTWords  uint
}

func (t *BasicTracker) StagingSpecs() StagingSpecs {
	return StagingSpecs{
		PoolWords: t.poolMask.Count() * uint(core.PageLen),
		LUTWords:  t.lutMask.Count() * t.partitionLen,
	}
}
