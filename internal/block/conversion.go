package block

import (
	"fmt"

	"github.com/robert-malhotra/go-mdf4/internal/binary"
	"github.com/robert-malhotra/go-mdf4/internal/errs"
)

/*
CC block
Links:  tx_name, md_unit, md_comment, cc_inverse, ref[ref_count]
Data:
Offset  Size      Description
0       1         Conversion type
1       1         Precision
2       2         Flags
4       2         Reference count
6       2         Value count
8       8         Physical range minimum
16      8         Physical range maximum
24      8*count   Parameter values
*/

const (
	ccLinks     = 4
	ccFixedSize = 24
)

// CC is a channel conversion block.
type CC struct {
	Offset uint64

	TXName    uint64
	MDUnit    uint64
	MDComment uint64
	Inverse   uint64
	Refs      []uint64

	Type         uint8
	Precision    uint8
	Flags        uint16
	PhysRangeMin float64
	PhysRangeMax float64
	Values       []float64
}

// ReadCC parses the ##CC block at offset.
func ReadCC(r *binary.Reader, offset uint64) (*CC, error) {
	b, err := Read(r, offset, ccLinks, SigCC)
	if err != nil {
		return nil, err
	}
	f, err := b.Fixed(r, ccFixedSize)
	if err != nil {
		return nil, err
	}
	cc := &CC{
		Offset:    offset,
		TXName:    b.Link(0),
		MDUnit:    b.Link(1),
		MDComment: b.Link(2),
		Inverse:   b.Link(3),
	}
	cc.Type = f.Uint8()
	cc.Precision = f.Uint8()
	cc.Flags = f.Uint16()
	refCount := f.Uint16()
	valCount := f.Uint16()
	cc.PhysRangeMin = f.Float64()
	cc.PhysRangeMax = f.Float64()

	if uint64(len(b.Links)) < ccLinks+uint64(refCount) {
		return nil, fmt.Errorf("%w: CC at %#x declares %d references but has %d links", errs.ErrLinkCount, offset, refCount, len(b.Links))
	}
	cc.Refs = b.Links[ccLinks : ccLinks+int(refCount)]

	if valCount > 0 {
		buf, err := ReadFixed(r, &b.Header, ccFixedSize, uint64(valCount)*8)
		if err != nil {
			return nil, err
		}
		vf := binary.NewFields(buf)
		cc.Values = make([]float64, valCount)
		for i := range cc.Values {
			cc.Values[i] = vf.Float64()
		}
	}
	return cc, nil
}
