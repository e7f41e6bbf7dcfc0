package block

import (
	"fmt"

	"github.com/robert-malhotra/go-mdf4/internal/binary"
	"github.com/robert-malhotra/go-mdf4/internal/errs"
)

/*
DL block
Links:  dl_next, data[count]
Data:
Offset  Size      Description
0       1         Flags (bit 0: equal length)
1       3         Reserved
4       4         Number of referenced data blocks
8       8         Equal length               (flag bit 0 set)
8       8*count   Offsets into the logical stream (flag bit 0 clear)
*/

const dlFixedSize = 8

// DL flags
const DLFlagEqualLength = 0x01

// DL is a data list block.
type DL struct {
	Offset uint64

	Next uint64
	Data []uint64

	Flags       uint8
	EqualLength uint64
	Offsets     []uint64
}

// ReadDL parses the ##DL block at offset.
func ReadDL(r *binary.Reader, offset uint64) (*DL, error) {
	b, err := Read(r, offset, 1, SigDL)
	if err != nil {
		return nil, err
	}
	f, err := b.Fixed(r, dlFixedSize)
	if err != nil {
		return nil, err
	}
	dl := &DL{
		Offset: offset,
		Next:   b.Link(0),
	}
	dl.Flags = f.Uint8()
	f.Skip(3)
	count := f.Uint32()

	if uint64(len(b.Links)) < 1+uint64(count) {
		return nil, fmt.Errorf("%w: DL at %#x lists %d blocks but has %d links", errs.ErrLinkCount, offset, count, len(b.Links))
	}
	dl.Data = b.Links[1 : 1+int(count)]

	if dl.Flags&DLFlagEqualLength != 0 {
		buf, err := ReadFixed(r, &b.Header, dlFixedSize, 8)
		if err != nil {
			return nil, err
		}
		dl.EqualLength = binary.NewFields(buf).Uint64()
		return dl, nil
	}
	if count > 0 {
		buf, err := ReadFixed(r, &b.Header, dlFixedSize, uint64(count)*8)
		if err != nil {
			return nil, err
		}
		of := binary.NewFields(buf)
		dl.Offsets = make([]uint64, count)
		for i := range dl.Offsets {
			dl.Offsets[i] = of.Uint64()
		}
	}
	return dl, nil
}
