package block

import (
	"github.com/robert-malhotra/go-mdf4/internal/binary"
)

/*
DG block
Links:  dg_next, cg_first, data, md_comment
Data:
Offset  Size  Description
0       1     Record ID size in bytes (0, 1, 2, 4, 8)
1       7     Reserved

CG block
Links:  cg_next, cn_first, tx_acq_name, si_acq_source, sr_first, md_comment
Data:
Offset  Size  Description
0       8     Record ID
8       8     Cycle count (number of records)
16      2     Flags
18      2     Path separator (UTF-16 code unit)
20      4     Reserved
24      4     Data bytes per record
28      4     Invalidation bytes per record
*/

const (
	dgLinks     = 4
	dgFixedSize = 8
	cgLinks     = 6
	cgFixedSize = 32
)

// CG flags
const (
	CGFlagVLSD          = 0x0001
	CGFlagBusEvent      = 0x0002
	CGFlagPlainBusEvent = 0x0004
	CGFlagRemoteMaster  = 0x0008
	CGFlagEventSignal   = 0x0010
)

// DG is a data group block.
type DG struct {
	Offset uint64

	Next      uint64
	CGFirst   uint64
	Data      uint64
	MDComment uint64

	RecordIDSize uint8
}

// ReadDG parses the ##DG block at offset.
func ReadDG(r *binary.Reader, offset uint64) (*DG, error) {
	b, err := Read(r, offset, dgLinks, SigDG)
	if err != nil {
		return nil, err
	}
	f, err := b.Fixed(r, dgFixedSize)
	if err != nil {
		return nil, err
	}
	return &DG{
		Offset:       offset,
		Next:         b.Link(0),
		CGFirst:      b.Link(1),
		Data:         b.Link(2),
		MDComment:    b.Link(3),
		RecordIDSize: f.Uint8(),
	}, nil
}

// CG is a channel group block.
type CG struct {
	Offset uint64

	Next        uint64
	CNFirst     uint64
	TXAcqName   uint64
	SIAcqSource uint64
	MDComment   uint64

	RecordID      uint64
	CycleCount    uint64
	Flags         uint16
	PathSeparator uint16
	DataBytes     uint32
	InvalBytes    uint32
}

// ReadCG parses the ##CG block at offset.
func ReadCG(r *binary.Reader, offset uint64) (*CG, error) {
	b, err := Read(r, offset, cgLinks, SigCG)
	if err != nil {
		return nil, err
	}
	f, err := b.Fixed(r, cgFixedSize)
	if err != nil {
		return nil, err
	}
	cg := &CG{
		Offset:      offset,
		Next:        b.Link(0),
		CNFirst:     b.Link(1),
		TXAcqName:   b.Link(2),
		SIAcqSource: b.Link(3),
		MDComment:   b.Link(5),
	}
	cg.RecordID = f.Uint64()
	cg.CycleCount = f.Uint64()
	cg.Flags = f.Uint16()
	cg.PathSeparator = f.Uint16()
	f.Skip(4)
	cg.DataBytes = f.Uint32()
	cg.InvalBytes = f.Uint32()
	return cg, nil
}
