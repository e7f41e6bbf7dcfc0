package dtype

import (
	"fmt"
	"math"

	"github.com/robert-malhotra/go-mdf4/internal/errs"
)

// Field locates one channel value inside the data part of a record.
type Field struct {
	Type       DataType
	ByteOffset uint32
	BitOffset  uint8
	BitCount   uint32
}

// Validate checks the field against the number of data bytes per record.
// Width problems are errs.ErrInvalidChannelLayout; a field that does not fit
// the record is errs.ErrRange.
func (f Field) Validate(dataBytes uint32) error {
	if !f.Type.Known() {
		return fmt.Errorf("%w: unknown data type %d", errs.ErrInvalidChannelLayout, uint8(f.Type))
	}
	if f.BitOffset > 7 {
		return fmt.Errorf("%w: bit offset %d", errs.ErrInvalidChannelLayout, f.BitOffset)
	}
	switch {
	case f.BitCount == 0:
		return fmt.Errorf("%w: zero bit count", errs.ErrInvalidChannelLayout)
	case f.Type.IsInteger() && f.BitCount > 64:
		return fmt.Errorf("%w: %d-bit %s", errs.ErrInvalidChannelLayout, f.BitCount, f.Type)
	case f.Type.IsFloat() && f.BitCount != 32 && f.BitCount != 64:
		return fmt.Errorf("%w: %d-bit %s, need 32 or 64", errs.ErrInvalidChannelLayout, f.BitCount, f.Type)
	case !f.Type.IsNumeric() && (f.BitCount%8 != 0 || f.BitOffset != 0):
		return fmt.Errorf("%w: %s field is not byte aligned", errs.ErrInvalidChannelLayout, f.Type)
	}

	end := uint64(f.ByteOffset)*8 + uint64(f.BitOffset) + uint64(f.BitCount)
	if end > uint64(dataBytes)*8 {
		return fmt.Errorf("%w: field ends at bit %d, record data has %d bits", errs.ErrRange, end, uint64(dataBytes)*8)
	}
	return nil
}

// ByteLen returns the number of bytes the field touches.
func (f Field) ByteLen() int {
	return int((uint32(f.BitOffset) + f.BitCount + 7) / 8)
}

// Raw extracts the field's bits as an unsigned integer. The field must have
// been validated and be at most 64 bits wide.
func (f Field) Raw(data []byte) uint64 {
	n := f.ByteLen()
	src := data[f.ByteOffset : int(f.ByteOffset)+n]

	var tmp [9]byte
	if f.Type.BigEndian() {
		for i := 0; i < n; i++ {
			tmp[i] = src[n-1-i]
		}
	} else {
		copy(tmp[:], src)
	}

	var lo uint64
	for i := min(n, 8) - 1; i >= 0; i-- {
		lo = lo<<8 | uint64(tmp[i])
	}
	v := lo >> f.BitOffset
	if n == 9 {
		v |= uint64(tmp[8]) << (64 - f.BitOffset)
	}
	if f.BitCount < 64 {
		v &= (uint64(1) << f.BitCount) - 1
	}
	return v
}

// Float64 extracts a numeric field as float64.
func (f Field) Float64(data []byte) float64 {
	raw := f.Raw(data)
	switch {
	case f.Type.IsFloat():
		if f.BitCount == 32 {
			return float64(math.Float32frombits(uint32(raw)))
		}
		return math.Float64frombits(raw)
	case f.Type.IsSigned():
		if f.BitCount < 64 {
			shift := 64 - f.BitCount
			return float64(int64(raw<<shift) >> shift)
		}
		return float64(int64(raw))
	default:
		return float64(raw)
	}
}

// Bytes returns a copy of the bytes the field spans, unshifted.
func (f Field) Bytes(data []byte) []byte {
	n := f.ByteLen()
	out := make([]byte, n)
	copy(out, data[f.ByteOffset:int(f.ByteOffset)+n])
	return out
}
