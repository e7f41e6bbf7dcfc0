package binary

import (
	"encoding/binary"
	"io"
	"math"
)

// Engine combines binary.ByteOrder and binary.AppendByteOrder; both
// binary.LittleEndian and binary.BigEndian satisfy it.
type Engine interface {
	binary.ByteOrder
	binary.AppendByteOrder
}

// EngineFor returns the byte order engine for the given endianness.
func EngineFor(bigEndian bool) Engine {
	if bigEndian {
		return binary.BigEndian
	}
	return binary.LittleEndian
}

// Writer writes little-endian MDF4 structures at explicit positions.
// It backs the synthetic file builder used in tests.
type Writer struct {
	w     io.WriterAt
	order Engine
	pos   int64
}

// NewWriter creates a little-endian writer positioned at 0.
func NewWriter(w io.WriterAt) *Writer {
	return &Writer{
		w:     w,
		order: binary.LittleEndian,
	}
}

// At returns a new writer positioned at the given offset.
// The new writer shares the underlying io.WriterAt but has independent position.
func (w *Writer) At(offset int64) *Writer {
	return &Writer{
		w:     w.w,
		order: w.order,
		pos:   offset,
	}
}

// Pos returns the current write position.
func (w *Writer) Pos() int64 {
	return w.pos
}

// WriteBytes writes the given bytes at the current position.
func (w *Writer) WriteBytes(data []byte) error {
	if len(data) == 0 {
		return nil
	}
	n, err := w.w.WriteAt(data, w.pos)
	w.pos += int64(n)
	return err
}

// WriteZeros writes n zero bytes.
func (w *Writer) WriteZeros(n int) error {
	return w.WriteBytes(make([]byte, n))
}

// WriteUint8 writes an unsigned 8-bit integer.
func (w *Writer) WriteUint8(v uint8) error {
	return w.WriteBytes([]byte{v})
}

// WriteUint16 writes an unsigned 16-bit integer.
func (w *Writer) WriteUint16(v uint16) error {
	return w.WriteBytes(w.order.AppendUint16(nil, v))
}

// WriteUint32 writes an unsigned 32-bit integer.
func (w *Writer) WriteUint32(v uint32) error {
	return w.WriteBytes(w.order.AppendUint32(nil, v))
}

// WriteUint64 writes an unsigned 64-bit integer.
func (w *Writer) WriteUint64(v uint64) error {
	return w.WriteBytes(w.order.AppendUint64(nil, v))
}

// WriteFloat64 writes an IEEE 754 double.
func (w *Writer) WriteFloat64(v float64) error {
	return w.WriteUint64(math.Float64bits(v))
}

// Buffer is a growable in-memory io.WriterAt.
type Buffer struct {
	data []byte
}

// WriteAt implements io.WriterAt, extending the buffer as needed.
func (b *Buffer) WriteAt(p []byte, off int64) (int, error) {
	end := int(off) + len(p)
	if end > len(b.data) {
		if end > cap(b.data) {
			grown := make([]byte, end, 2*end)
			copy(grown, b.data)
			b.data = grown
		} else {
			b.data = b.data[:end]
		}
	}
	copy(b.data[off:], p)
	return len(p), nil
}

// Bytes returns the written contents.
func (b *Buffer) Bytes() []byte {
	return b.data
}
