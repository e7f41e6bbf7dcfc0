package block

import (
	"fmt"

	"github.com/robert-malhotra/go-mdf4/internal/binary"
	"github.com/robert-malhotra/go-mdf4/internal/errs"
)

// Signature is a four-character block identifier such as "##CG".
type Signature string

// Block signatures
const (
	SigHD Signature = "##HD"
	SigDG Signature = "##DG"
	SigCG Signature = "##CG"
	SigCN Signature = "##CN"
	SigCC Signature = "##CC"
	SigSI Signature = "##SI"
	SigTX Signature = "##TX"
	SigMD Signature = "##MD"
	SigDT Signature = "##DT"
	SigDL Signature = "##DL"
	SigDZ Signature = "##DZ"
	SigHL Signature = "##HL"
	SigSD Signature = "##SD"
	SigRD Signature = "##RD"
)

// HeaderSize is the size of the generic block header.
const HeaderSize = 24

// Header is the generic part of every block.
type Header struct {
	Offset    uint64
	Signature Signature
	Length    uint64
	LinkCount uint64
}

// LinksEnd returns the file offset just past the link table.
func (h *Header) LinksEnd() uint64 {
	return h.Offset + HeaderSize + h.LinkCount*8
}

// DataOffset returns the file offset of the block-specific data.
func (h *Header) DataOffset() uint64 {
	return h.LinksEnd()
}

// DataSize returns the number of bytes after the link table.
func (h *Header) DataSize() uint64 {
	return h.Length - HeaderSize - h.LinkCount*8
}

// ReadHeader decodes the generic header at offset. The signature must be one
// of allowed; with no allowed signatures any "##" signature is accepted.
func ReadHeader(r *binary.Reader, offset uint64, allowed ...Signature) (*Header, error) {
	if offset == 0 {
		return nil, fmt.Errorf("%w: null link dereferenced", errs.ErrFormat)
	}
	size := uint64(r.Size())
	if offset > size || size-offset < HeaderSize {
		return nil, fmt.Errorf("%w: block header at %#x lies outside the file (size %d)", errs.ErrTruncatedBlock, offset, size)
	}
	buf, err := r.ReadAt(int64(offset), HeaderSize)
	if err != nil {
		return nil, err
	}

	sig := Signature(buf[0:4])
	if sig[0:2] != "##" || !admissible(sig, allowed) {
		return nil, fmt.Errorf("%w: %q at %#x, expected %v", errs.ErrBadSignature, string(buf[0:4]), offset, allowed)
	}

	f := binary.NewFields(buf[8:])
	h := &Header{
		Offset:    offset,
		Signature: sig,
		Length:    f.Uint64(),
		LinkCount: f.Uint64(),
	}

	if h.Length < HeaderSize || h.LinkCount > (h.Length-HeaderSize)/8 {
		return nil, fmt.Errorf("%w: %s at %#x has length %d but %d links", errs.ErrTruncatedBlock, sig, offset, h.Length, h.LinkCount)
	}
	if h.Length > size-offset {
		return nil, fmt.Errorf("%w: %s at %#x has length %d beyond end of file", errs.ErrTruncatedBlock, sig, offset, h.Length)
	}
	return h, nil
}

func admissible(sig Signature, allowed []Signature) bool {
	if len(allowed) == 0 {
		return true
	}
	for _, a := range allowed {
		if sig == a {
			return true
		}
	}
	return false
}

// ReadLinks reads the link table that follows h. Links are returned as
// stored; null links are 0 and no target is validated.
func ReadLinks(r *binary.Reader, h *Header) ([]uint64, error) {
	if h.LinkCount == 0 {
		return nil, nil
	}
	buf, err := r.ReadAt(int64(h.Offset+HeaderSize), int(h.LinkCount*8))
	if err != nil {
		return nil, fmt.Errorf("reading %s links at %#x: %w", h.Signature, h.Offset, err)
	}
	f := binary.NewFields(buf)
	links := make([]uint64, h.LinkCount)
	for i := range links {
		links[i] = f.Uint64()
	}
	return links, nil
}

// ReadFixed reads size bytes of block data starting at the given offset
// within the data section (0 = just after the link table).
func ReadFixed(r *binary.Reader, h *Header, at, size uint64) ([]byte, error) {
	if at > h.DataSize() || size > h.DataSize()-at {
		return nil, fmt.Errorf("%w: %s at %#x needs %d data bytes, has %d", errs.ErrTruncatedBlock, h.Signature, h.Offset, at+size, h.DataSize())
	}
	return r.ReadAt(int64(h.DataOffset()+at), int(size))
}

// Block is a decoded header with its link table.
type Block struct {
	Header
	Links []uint64
}

// Read decodes the header and links of the block at offset, requiring at
// least minLinks links.
func Read(r *binary.Reader, offset uint64, minLinks int, allowed ...Signature) (*Block, error) {
	h, err := ReadHeader(r, offset, allowed...)
	if err != nil {
		return nil, err
	}
	if h.LinkCount < uint64(minLinks) {
		return nil, fmt.Errorf("%w: %s at %#x has %d links, needs %d", errs.ErrLinkCount, h.Signature, offset, h.LinkCount, minLinks)
	}
	links, err := ReadLinks(r, h)
	if err != nil {
		return nil, err
	}
	return &Block{Header: *h, Links: links}, nil
}

// Link returns link i, or 0 when the block has fewer links.
func (b *Block) Link(i int) uint64 {
	if i < 0 || i >= len(b.Links) {
		return 0
	}
	return b.Links[i]
}

// Fixed reads the fixed payload of the block.
func (b *Block) Fixed(r *binary.Reader, size uint64) (*binary.Fields, error) {
	buf, err := ReadFixed(r, &b.Header, 0, size)
	if err != nil {
		return nil, err
	}
	return binary.NewFields(buf), nil
}
