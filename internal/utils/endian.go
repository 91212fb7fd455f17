package utils

import "encoding/binary"

// ReaderAt is a simplified interface for io.ReaderAt, letting callers
// that only need random-access byte reads (mmap-backed stores, on-disk
// import files) avoid depending on the full io package surface.
type ReaderAt interface {
	ReadAt(p []byte, off int64) (n int, err error)
}

// ReadUint32 reads a 32-bit word at the given byte offset. The on-disk
// node pool and BasicDAG import format are both little-endian.
func ReadUint32(r ReaderAt, offset int64, order binary.ByteOrder) (uint32, error) {
	buf := GetBuffer(4)
	defer ReleaseBuffer(buf)

	if _, err := r.ReadAt(buf, offset); err != nil {
		return 0, err
	}
	return order.Uint32(buf), nil
}

// ReadUint64 reads a 64-bit value at the given byte offset.
func ReadUint64(r ReaderAt, offset int64, order binary.ByteOrder) (uint64, error) {
	buf := GetBuffer(8)
	defer ReleaseBuffer(buf)

	if _, err := r.ReadAt(buf, offset); err != nil {
		return 0, err
	}
	return order.Uint64(buf), nil
}

// ReadUint32Slice reads count consecutive 32-bit words in the given
// byte order starting at offset, used to pull a BasicDAG's raw node pool out of a
// file in one pass instead of word-at-a-time.
func ReadUint32Slice(r ReaderAt, offset int64, count int, order binary.ByteOrder) ([]uint32, error) {
	buf := GetBuffer(count * 4)
	defer ReleaseBuffer(buf)

	if _, err := r.ReadAt(buf, offset); err != nil {
		return nil, err
	}

	out := make([]uint32, count)
	for i := range out {
		out[i] = order.Uint32(buf[i*4 : i*4+4])
	}
	return out, nil
}
