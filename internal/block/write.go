package block

import (
	"github.com/robert-malhotra/go-mdf4/internal/binary"
)

// Size returns the total length of a block with the given link count and
// data size.
func Size(linkCount, dataSize int) uint64 {
	return uint64(HeaderSize + 8*linkCount + dataSize)
}

// Write encodes a block at offset and returns its total length. It exists to
// produce synthetic files for tests; the reader never writes.
func Write(w *binary.Writer, offset uint64, sig Signature, links []uint64, data []byte) (uint64, error) {
	w = w.At(int64(offset))
	length := Size(len(links), len(data))

	if err := w.WriteBytes([]byte(sig)); err != nil {
		return 0, err
	}
	if err := w.WriteZeros(4); err != nil {
		return 0, err
	}
	if err := w.WriteUint64(length); err != nil {
		return 0, err
	}
	if err := w.WriteUint64(uint64(len(links))); err != nil {
		return 0, err
	}
	for _, l := range links {
		if err := w.WriteUint64(l); err != nil {
			return 0, err
		}
	}
	if err := w.WriteBytes(data); err != nil {
		return 0, err
	}
	return length, nil
}
