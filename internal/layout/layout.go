package layout

import (
	"fmt"

	"github.com/robert-malhotra/go-mdf4/internal/binary"
	"github.com/robert-malhotra/go-mdf4/internal/block"
	"github.com/robert-malhotra/go-mdf4/internal/errs"
)

// Layout is the logical record stream of one data group.
type Layout interface {
	// Size returns the total number of bytes in the stream.
	Size() uint64

	// ReadAt reads exactly n bytes starting at logical offset off.
	ReadAt(off uint64, n int) ([]byte, error)

	// Spans returns the file ranges making up the stream, in order.
	Spans() []Span

	// Validate reports whether the stream can be read at all.
	Validate() error
}

// Span is a contiguous range of record bytes in the file.
type Span struct {
	Offset uint64 // file offset of the first byte
	Length uint64
}

// New resolves the data link of a data group.
func New(r *binary.Reader, link uint64) (Layout, error) {
	if link == 0 {
		return NewContiguous(r, Span{}), nil
	}
	h, err := block.ReadHeader(r, link, block.SigDT, block.SigDL, block.SigDZ, block.SigHL)
	if err != nil {
		return nil, fmt.Errorf("resolving data link: %w", err)
	}

	switch h.Signature {
	case block.SigDT:
		return NewContiguous(r, Span{Offset: h.DataOffset(), Length: h.DataSize()}), nil
	case block.SigDL:
		return NewList(r, link)
	default:
		return &Unsupported{Signature: h.Signature, Offset: link}, nil
	}
}

// Unsupported stands in for compressed storage.
type Unsupported struct {
	Signature block.Signature
	Offset    uint64
}

func (u *Unsupported) Size() uint64    { return 0 }
func (u *Unsupported) Spans() []Span   { return nil }
func (u *Unsupported) Validate() error { return u.err() }

func (u *Unsupported) ReadAt(off uint64, n int) ([]byte, error) {
	return nil, u.err()
}

func (u *Unsupported) err() error {
	return fmt.Errorf("%w: %s data block at %#x", errs.ErrUnsupported, u.Signature, u.Offset)
}
