package block

import (
	"github.com/robert-malhotra/go-mdf4/internal/binary"
)

/*
HD block
Links:  dg_first, fh_first, ch_first, at_first, ev_first, md_comment
Data:
Offset  Size  Description
0       8     Start time, ns since 1970-01-01
8       2     Time zone offset in minutes (signed)
10      2     DST offset in minutes (signed)
12      1     Time flags
13      1     Time quality class
14      1     Flags
15      1     Reserved
16      8     Start angle (rad)
24      8     Start distance (m)
*/

const (
	hdLinks     = 6
	hdFixedSize = 32
)

// HD time flags
const (
	HDTimeLocal      = 0x01
	HDTimeOffsetsSet = 0x02
)

// HD is the file header block.
type HD struct {
	Offset uint64

	DGFirst   uint64
	MDComment uint64

	StartTimeNs      uint64
	TZOffsetMinutes  int16
	DSTOffsetMinutes int16
	TimeFlags        uint8
	TimeClass        uint8
	Flags            uint8
	StartAngle       float64
	StartDistance    float64
}

// ReadHD parses the ##HD block at offset.
func ReadHD(r *binary.Reader, offset uint64) (*HD, error) {
	b, err := Read(r, offset, hdLinks, SigHD)
	if err != nil {
		return nil, err
	}
	f, err := b.Fixed(r, hdFixedSize)
	if err != nil {
		return nil, err
	}
	hd := &HD{
		Offset:    offset,
		DGFirst:   b.Link(0),
		MDComment: b.Link(5),
	}
	hd.StartTimeNs = f.Uint64()
	hd.TZOffsetMinutes = f.Int16()
	hd.DSTOffsetMinutes = f.Int16()
	hd.TimeFlags = f.Uint8()
	hd.TimeClass = f.Uint8()
	hd.Flags = f.Uint8()
	f.Skip(1)
	hd.StartAngle = f.Float64()
	hd.StartDistance = f.Float64()
	return hd, nil
}
