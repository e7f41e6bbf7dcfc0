package block

import (
	"github.com/robert-malhotra/go-mdf4/internal/binary"
)

/*
CN block
Links:  cn_next, composition, tx_name, si_source, cc_conversion, data,
        md_unit, md_comment, [at_reference...], [default_x...]
Data:
Offset  Size  Description
0       1     Channel type
1       1     Sync type
2       1     Data type
3       1     Bit offset (0..7)
4       4     Byte offset within the record data
8       4     Bit count
12      4     Flags
16      4     Invalidation bit position
20      1     Precision
21      1     Reserved
22      2     Attachment count
24      8     Value range minimum
32      8     Value range maximum
40      8     Limit minimum
48      8     Limit maximum
56      8     Extended limit minimum
64      8     Extended limit maximum
*/

const (
	cnLinks     = 8
	cnFixedSize = 72
)

// Channel types
const (
	CNTypeFixed         = 0
	CNTypeVLSD          = 1
	CNTypeMaster        = 2
	CNTypeVirtualMaster = 3
	CNTypeSync          = 4
	CNTypeMaxLength     = 5
	CNTypeVirtualData   = 6
)

// CN flags
const (
	CNFlagAllInvalid      = 0x0001
	CNFlagInvalBitValid   = 0x0002
	CNFlagPrecisionValid  = 0x0004
	CNFlagValueRangeValid = 0x0008
)

// CN is a channel block.
type CN struct {
	Offset uint64

	Next         uint64
	Composition  uint64
	TXName       uint64
	SISource     uint64
	CCConversion uint64
	Data         uint64
	MDUnit       uint64
	MDComment    uint64

	Type        uint8
	SyncType    uint8
	DataType    uint8
	BitOffset   uint8
	ByteOffset  uint32
	BitCount    uint32
	Flags       uint32
	InvalBitPos uint32
	Precision   uint8
	ValRangeMin float64
	ValRangeMax float64
	LimitMin    float64
	LimitMax    float64
	LimitExtMin float64
	LimitExtMax float64
}

// ReadCN parses the ##CN block at offset.
func ReadCN(r *binary.Reader, offset uint64) (*CN, error) {
	b, err := Read(r, offset, cnLinks, SigCN)
	if err != nil {
		return nil, err
	}
	f, err := b.Fixed(r, cnFixedSize)
	if err != nil {
		return nil, err
	}
	cn := &CN{
		Offset:       offset,
		Next:         b.Link(0),
		Composition:  b.Link(1),
		TXName:       b.Link(2),
		SISource:     b.Link(3),
		CCConversion: b.Link(4),
		Data:         b.Link(5),
		MDUnit:       b.Link(6),
		MDComment:    b.Link(7),
	}
	cn.Type = f.Uint8()
	cn.SyncType = f.Uint8()
	cn.DataType = f.Uint8()
	cn.BitOffset = f.Uint8()
	cn.ByteOffset = f.Uint32()
	cn.BitCount = f.Uint32()
	cn.Flags = f.Uint32()
	cn.InvalBitPos = f.Uint32()
	cn.Precision = f.Uint8()
	f.Skip(1)
	f.Skip(2) // attachment count; attachments are not followed
	cn.ValRangeMin = f.Float64()
	cn.ValRangeMax = f.Float64()
	cn.LimitMin = f.Float64()
	cn.LimitMax = f.Float64()
	cn.LimitExtMin = f.Float64()
	cn.LimitExtMax = f.Float64()
	return cn, nil
}
