package layout

import (
	"fmt"

	"github.com/robert-malhotra/go-mdf4/internal/binary"
	"github.com/robert-malhotra/go-mdf4/internal/errs"
)

// Contiguous is a record stream held in a single data block.
type Contiguous struct {
	span   Span
	reader *binary.Reader
}

// NewContiguous creates a stream over one span.
func NewContiguous(r *binary.Reader, span Span) *Contiguous {
	return &Contiguous{span: span, reader: r}
}

func (c *Contiguous) Size() uint64 {
	return c.span.Length
}

func (c *Contiguous) Validate() error {
	return nil
}

func (c *Contiguous) Spans() []Span {
	if c.span.Length == 0 {
		return nil
	}
	return []Span{c.span}
}

// ReadAt reads directly from the file.
func (c *Contiguous) ReadAt(off uint64, n int) ([]byte, error) {
	if off > c.span.Length || uint64(n) > c.span.Length-off {
		return nil, fmt.Errorf("%w: read [%d, %d) beyond data block of %d bytes", errs.ErrTruncatedBlock, off, off+uint64(n), c.span.Length)
	}
	data, err := c.reader.ReadAt(int64(c.span.Offset+off), n)
	if err != nil {
		return nil, fmt.Errorf("reading record data: %w", err)
	}
	return data, nil
}
