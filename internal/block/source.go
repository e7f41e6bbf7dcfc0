package block

import (
	"github.com/robert-malhotra/go-mdf4/internal/binary"
)

/*
SI block
Links:  tx_name, tx_path, md_comment
Data:
Offset  Size  Description
0       1     Source type
1       1     Bus type
2       1     Flags
3       5     Reserved
*/

const (
	siLinks     = 3
	siFixedSize = 8
)

// SI is a source information block.
type SI struct {
	Offset uint64

	TXName    uint64
	TXPath    uint64
	MDComment uint64

	Type    uint8
	BusType uint8
	Flags   uint8
}

// ReadSI parses the ##SI block at offset.
func ReadSI(r *binary.Reader, offset uint64) (*SI, error) {
	b, err := Read(r, offset, siLinks, SigSI)
	if err != nil {
		return nil, err
	}
	f, err := b.Fixed(r, siFixedSize)
	if err != nil {
		return nil, err
	}
	return &SI{
		Offset:    offset,
		TXName:    b.Link(0),
		TXPath:    b.Link(1),
		MDComment: b.Link(2),
		Type:      f.Uint8(),
		BusType:   f.Uint8(),
		Flags:     f.Uint8(),
	}, nil
}
