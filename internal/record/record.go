package record

import (
	"bufio"
	"errors"
	"fmt"
	"io"

	"github.com/robert-malhotra/go-mdf4/internal/errs"
	"github.com/robert-malhotra/go-mdf4/internal/layout"
)

// readBufferSize bounds a single read from the underlying stream.
const readBufferSize = 64 << 10

// Layout describes the fixed-length records of one channel group.
type Layout struct {
	RecordIDSize uint8
	DataBytes    uint32
	InvalBytes   uint32
}

// NewLayout returns the layout for a channel group inside a data group with
// the given record id size.
func NewLayout(recIDSize uint8, dataBytes, invalBytes uint32) Layout {
	return Layout{
		RecordIDSize: recIDSize,
		DataBytes:    dataBytes,
		InvalBytes:   invalBytes,
	}
}

// Stride returns the distance in bytes between consecutive records.
func (l Layout) Stride() uint64 {
	return uint64(l.RecordIDSize) + l.PayloadSize()
}

// PayloadSize returns the record size without the record id.
func (l Layout) PayloadSize() uint64 {
	return uint64(l.DataBytes) + uint64(l.InvalBytes)
}

// Invalid reports whether the invalidation bit at bitPos is set in rec.
// rec is a record payload as passed to a VisitFunc.
func (l Layout) Invalid(rec []byte, bitPos uint32) bool {
	idx := uint64(l.DataBytes) + uint64(bitPos>>3)
	if bitPos>>3 >= l.InvalBytes || idx >= uint64(len(rec)) {
		return false
	}
	return rec[idx]&(1<<(bitPos&7)) != 0
}

// VisitFunc receives the payload of record index (data bytes followed by
// invalidation bytes). rec is reused between calls.
type VisitFunc func(index uint64, rec []byte) error

// Sorted visits count records of a sorted data group in order.
func Sorted(stream layout.Layout, l Layout, count uint64, fn VisitFunc) error {
	if err := stream.Validate(); err != nil {
		return err
	}
	stride := l.Stride()
	if count == 0 {
		return nil
	}
	if stride == 0 {
		return fmt.Errorf("%w: zero-length records", errs.ErrInvalidChannelLayout)
	}
	if count > stream.Size()/stride {
		return fmt.Errorf("%w: %d records of %d bytes need %d bytes, data holds %d",
			errs.ErrTruncatedBlock, count, stride, satMul(count, stride), stream.Size())
	}

	br := bufio.NewReaderSize(&streamReader{s: stream}, readBufferSize)
	rec := make([]byte, stride)
	for i := uint64(0); i < count; i++ {
		if _, err := io.ReadFull(br, rec); err != nil {
			return fmt.Errorf("reading record %d: %w", i, err)
		}
		if err := fn(i, rec[l.RecordIDSize:]); err != nil {
			return err
		}
	}
	return nil
}

// Group is one channel group taking part in an unsorted data group.
type Group struct {
	RecordID   uint64
	DataBytes  uint32
	InvalBytes uint32
	VLSD       bool // records carry a u32 length prefix
}

// Unsorted scans an unsorted data group and visits the first count records
// whose id is target. groups must list every channel group of the data group.
func Unsorted(stream layout.Layout, idSize uint8, groups []Group, target, count uint64, fn VisitFunc) error {
	if err := stream.Validate(); err != nil {
		return err
	}
	if !validIDSize(idSize) || idSize == 0 {
		return fmt.Errorf("%w: unsorted data group with record id size %d", errs.ErrFormat, idSize)
	}
	byID := make(map[uint64]Group, len(groups))
	for _, g := range groups {
		byID[g.RecordID] = g
	}
	if _, ok := byID[target]; !ok {
		return fmt.Errorf("%w: no channel group with record id %d", errs.ErrRange, target)
	}
	if count == 0 {
		return nil
	}

	br := bufio.NewReaderSize(&streamReader{s: stream}, readBufferSize)
	idBuf := make([]byte, idSize)
	total := stream.Size()
	var buf []byte
	var found, consumed uint64
	for found < count {
		if _, err := io.ReadFull(br, idBuf); err != nil {
			if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
				return fmt.Errorf("%w: found %d of %d records with id %d",
					errs.ErrTruncatedBlock, found, count, target)
			}
			return fmt.Errorf("reading record id: %w", err)
		}
		consumed += uint64(idSize)
		id := decodeID(idBuf)
		g, ok := byID[id]
		if !ok {
			return fmt.Errorf("%w: unknown record id %d", errs.ErrFormat, id)
		}

		size := uint64(g.DataBytes) + uint64(g.InvalBytes)
		if g.VLSD {
			var lenBuf [4]byte
			if _, err := io.ReadFull(br, lenBuf[:]); err != nil {
				return fmt.Errorf("%w: record %d length: %v", errs.ErrTruncatedBlock, id, err)
			}
			consumed += uint64(len(lenBuf))
			size = uint64(decodeID(lenBuf[:]))
		}
		if size > total-consumed {
			return fmt.Errorf("%w: record with id %d needs %d bytes at stream offset %d, stream has %d",
				errs.ErrTruncatedBlock, id, size, consumed, total)
		}
		consumed += size

		if id != target {
			if _, err := br.Discard(int(size)); err != nil {
				return fmt.Errorf("%w: skipping record with id %d: %v", errs.ErrTruncatedBlock, id, err)
			}
			continue
		}

		if uint64(cap(buf)) < size {
			buf = make([]byte, size)
		}
		buf = buf[:size]
		if _, err := io.ReadFull(br, buf); err != nil {
			return fmt.Errorf("%w: record with id %d: %v", errs.ErrTruncatedBlock, id, err)
		}
		if err := fn(found, buf); err != nil {
			return err
		}
		found++
	}
	return nil
}

func validIDSize(n uint8) bool {
	switch n {
	case 0, 1, 2, 4, 8:
		return true
	}
	return false
}

// decodeID assembles a little-endian unsigned value of up to 8 bytes.
func decodeID(b []byte) uint64 {
	var v uint64
	for i := len(b) - 1; i >= 0; i-- {
		v = v<<8 | uint64(b[i])
	}
	return v
}

func satMul(a, b uint64) uint64 {
	if a != 0 && b > ^uint64(0)/a {
		return ^uint64(0)
	}
	return a * b
}

// streamReader adapts a logical record stream to io.Reader.
type streamReader struct {
	s   layout.Layout
	off uint64
}

func (r *streamReader) Read(p []byte) (int, error) {
	size := r.s.Size()
	if r.off >= size {
		return 0, io.EOF
	}
	n := min(uint64(len(p)), size-r.off)
	buf, err := r.s.ReadAt(r.off, int(n))
	if err != nil {
		return 0, err
	}
	r.off += n
	return copy(p, buf), nil
}
