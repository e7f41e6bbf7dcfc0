package layout

import (
	"fmt"
	"sort"

	"github.com/robert-malhotra/go-mdf4/internal/binary"
	"github.com/robert-malhotra/go-mdf4/internal/block"
	"github.com/robert-malhotra/go-mdf4/internal/errs"
)

// List is a record stream spread over the data blocks of a DL chain.
type List struct {
	spans  []Span
	starts []uint64 // logical offset of each span
	size   uint64
	reader *binary.Reader
	unsupp error
}

// NewList walks the DL chain starting at offset. The block lengths must agree
// with the equal length or logical offsets each list declares; only the last
// block of the chain may be shorter than the equal length.
func NewList(r *binary.Reader, offset uint64) (*List, error) {
	l := &List{reader: r}
	visited := make(map[uint64]bool)
	var short uint64 // offset of a block shorter than its equal length

	for dl := offset; dl != 0; {
		if visited[dl] {
			return nil, fmt.Errorf("%w: data list at %#x revisited", errs.ErrCyclicLink, dl)
		}
		visited[dl] = true

		list, err := block.ReadDL(r, dl)
		if err != nil {
			return nil, fmt.Errorf("reading data list at %#x: %w", dl, err)
		}
		for j, link := range list.Data {
			if link == 0 {
				continue
			}
			if short != 0 {
				return nil, fmt.Errorf("%w: data block at %#x is shorter than the equal length of list %#x but not last",
					errs.ErrFormat, short, dl)
			}
			h, err := block.ReadHeader(r, link, block.SigDT, block.SigDZ)
			if err != nil {
				return nil, fmt.Errorf("reading data list entry: %w", err)
			}
			if h.Signature != block.SigDT {
				if l.unsupp == nil {
					l.unsupp = fmt.Errorf("%w: %s data block at %#x", errs.ErrUnsupported, h.Signature, link)
				}
				continue
			}
			if l.unsupp == nil {
				if err := checkEntry(list, j, l.size, h); err != nil {
					return nil, err
				}
			}
			if list.Flags&block.DLFlagEqualLength != 0 && h.DataSize() < list.EqualLength {
				short = link
			}
			l.add(Span{Offset: h.DataOffset(), Length: h.DataSize()})
		}
		dl = list.Next
	}
	return l, nil
}

// checkEntry compares data block j of list, found at logical position pos,
// with the length or offset the list declares for it.
func checkEntry(list *block.DL, j int, pos uint64, h *block.Header) error {
	if list.Flags&block.DLFlagEqualLength != 0 {
		if h.DataSize() > list.EqualLength {
			return fmt.Errorf("%w: data block at %#x holds %d bytes, list %#x declares %d per block",
				errs.ErrFormat, h.Offset, h.DataSize(), list.Offset, list.EqualLength)
		}
		return nil
	}
	if j < len(list.Offsets) && list.Offsets[j] != pos {
		return fmt.Errorf("%w: data block at %#x starts at logical offset %d, list %#x declares %d",
			errs.ErrFormat, h.Offset, pos, list.Offset, list.Offsets[j])
	}
	return nil
}

func (l *List) add(s Span) {
	if s.Length == 0 {
		return
	}
	l.spans = append(l.spans, s)
	l.starts = append(l.starts, l.size)
	l.size += s.Length
}

func (l *List) Size() uint64 {
	return l.size
}

func (l *List) Spans() []Span {
	return l.spans
}

func (l *List) Validate() error {
	return l.unsupp
}

// ReadAt reads n logical bytes, stitching across block boundaries.
func (l *List) ReadAt(off uint64, n int) ([]byte, error) {
	if l.unsupp != nil {
		return nil, l.unsupp
	}
	if off > l.size || uint64(n) > l.size-off {
		return nil, fmt.Errorf("%w: read [%d, %d) beyond data list of %d bytes", errs.ErrTruncatedBlock, off, off+uint64(n), l.size)
	}

	out := make([]byte, 0, n)
	i := sort.Search(len(l.starts), func(i int) bool { return l.starts[i] > off }) - 1
	for remaining := uint64(n); remaining > 0; i++ {
		s := l.spans[i]
		within := off - l.starts[i]
		take := min(s.Length-within, remaining)
		buf, err := l.reader.ReadAt(int64(s.Offset+within), int(take))
		if err != nil {
			return nil, fmt.Errorf("reading record data: %w", err)
		}
		out = append(out, buf...)
		off += take
		remaining -= take
	}
	return out, nil
}
