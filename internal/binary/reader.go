// Package binary provides low-level positioned binary I/O for MDF4 file parsing.
package binary

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/robert-malhotra/go-mdf4/internal/errs"
)

// Source is a random-access byte store with a known size.
// ReadAt must be safe for concurrent use with non-overlapping or overlapping
// ranges; implementations must not rely on a shared seek cursor.
type Source interface {
	io.ReaderAt
	Size() int64
}

// Reader reads little-endian MDF4 structures from a Source.
// Each Reader carries its own position; readers derived with At share the
// Source but never the cursor.
type Reader struct {
	src   Source
	order binary.ByteOrder
	pos   int64
}

// NewReader creates a little-endian reader positioned at 0.
func NewReader(src Source) *Reader {
	return &Reader{
		src:   src,
		order: binary.LittleEndian,
	}
}

// At returns a new reader positioned at the given offset.
func (r *Reader) At(offset int64) *Reader {
	return &Reader{
		src:   r.src,
		order: r.order,
		pos:   offset,
	}
}

// Pos returns the current read position.
func (r *Reader) Pos() int64 {
	return r.pos
}

// Size returns the size of the underlying source.
func (r *Reader) Size() int64 {
	return r.src.Size()
}

// ReadAt reads exactly n bytes at offset without touching the cursor.
// A range that ends past the source size fails before any I/O is issued.
func (r *Reader) ReadAt(offset int64, n int) ([]byte, error) {
	if n < 0 || offset < 0 {
		return nil, fmt.Errorf("%w: invalid range offset=%d length=%d", errs.ErrIO, offset, n)
	}
	if n == 0 {
		return []byte{}, nil
	}
	size := r.src.Size()
	if offset > size || int64(n) > size-offset {
		return nil, fmt.Errorf("%w: range [%#x, %#x) exceeds file size %d", errs.ErrIO, offset, offset+int64(n), size)
	}
	buf := make([]byte, n)
	got, err := r.src.ReadAt(buf, offset)
	if got == n {
		return buf, nil
	}
	if err == nil || errors.Is(err, io.EOF) {
		err = io.ErrUnexpectedEOF
	}
	return nil, fmt.Errorf("%w: reading %d bytes at %#x: %w", errs.ErrIO, n, offset, err)
}

// ReadBytes reads exactly n bytes from the current position.
func (r *Reader) ReadBytes(n int) ([]byte, error) {
	buf, err := r.ReadAt(r.pos, n)
	if err != nil {
		return nil, err
	}
	r.pos += int64(n)
	return buf, nil
}

// ReadUint8 reads an unsigned 8-bit integer.
func (r *Reader) ReadUint8() (uint8, error) {
	buf, err := r.ReadBytes(1)
	if err != nil {
		return 0, err
	}
	return buf[0], nil
}

// ReadUint16 reads an unsigned 16-bit integer.
func (r *Reader) ReadUint16() (uint16, error) {
	buf, err := r.ReadBytes(2)
	if err != nil {
		return 0, err
	}
	return r.order.Uint16(buf), nil
}

// ReadUint32 reads an unsigned 32-bit integer.
func (r *Reader) ReadUint32() (uint32, error) {
	buf, err := r.ReadBytes(4)
	if err != nil {
		return 0, err
	}
	return r.order.Uint32(buf), nil
}

// ReadUint64 reads an unsigned 64-bit integer.
func (r *Reader) ReadUint64() (uint64, error) {
	buf, err := r.ReadBytes(8)
	if err != nil {
		return 0, err
	}
	return r.order.Uint64(buf), nil
}

// ReadFloat64 reads an IEEE 754 double.
func (r *Reader) ReadFloat64() (float64, error) {
	v, err := r.ReadUint64()
	if err != nil {
		return 0, err
	}
	return math.Float64frombits(v), nil
}

// Skip advances the position by n bytes.
func (r *Reader) Skip(n int64) {
	r.pos += n
}

// Peek reads n bytes without advancing the position.
func (r *Reader) Peek(n int) ([]byte, error) {
	return r.ReadAt(r.pos, n)
}

// ByteOrder returns the byte order used for structure fields.
func (r *Reader) ByteOrder() binary.ByteOrder {
	return r.order
}

// Fields decodes consecutive little-endian fields from an in-memory payload.
// It is used after a block's fixed payload has been read in one call.
type Fields struct {
	buf []byte
	pos int
}

// NewFields wraps buf for sequential decoding.
func NewFields(buf []byte) *Fields {
	return &Fields{buf: buf}
}

// Uint8 decodes one byte. Reads past the end yield zero; callers size the
// payload before decoding.
func (f *Fields) Uint8() uint8 {
	if f.pos+1 > len(f.buf) {
		f.pos++
		return 0
	}
	v := f.buf[f.pos]
	f.pos++
	return v
}

// Uint16 decodes a little-endian uint16.
func (f *Fields) Uint16() uint16 {
	b := f.take(2)
	if b == nil {
		return 0
	}
	return binary.LittleEndian.Uint16(b)
}

// Uint32 decodes a little-endian uint32.
func (f *Fields) Uint32() uint32 {
	b := f.take(4)
	if b == nil {
		return 0
	}
	return binary.LittleEndian.Uint32(b)
}

// Uint64 decodes a little-endian uint64.
func (f *Fields) Uint64() uint64 {
	b := f.take(8)
	if b == nil {
		return 0
	}
	return binary.LittleEndian.Uint64(b)
}

// Int16 decodes a little-endian int16.
func (f *Fields) Int16() int16 {
	return int16(f.Uint16())
}

// Float64 decodes a little-endian IEEE 754 double.
func (f *Fields) Float64() float64 {
	return math.Float64frombits(f.Uint64())
}

// Skip advances past n bytes.
func (f *Fields) Skip(n int) {
	f.pos += n
}

// Pos returns the number of bytes consumed.
func (f *Fields) Pos() int {
	return f.pos
}

func (f *Fields) take(n int) []byte {
	start := f.pos
	f.pos += n
	if f.pos > len(f.buf) {
		return nil
	}
	return f.buf[start:f.pos]
}
