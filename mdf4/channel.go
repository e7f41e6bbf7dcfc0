package mdf4

import (
	"github.com/robert-malhotra/go-mdf4/internal/block"
	"github.com/robert-malhotra/go-mdf4/internal/conversion"
	"github.com/robert-malhotra/go-mdf4/internal/dtype"
)

// Channel is one signal of a channel group.
type Channel struct {
	cg          *ChannelGroup
	index       int
	offset      uint64
	name        string
	unit        string
	comment     string
	kind        ChannelType
	syncType    uint8
	flags       uint32
	invalBitPos uint32
	field       dtype.Field
	conv        *conversion.Conversion
	source      *SourceInfo
}

// Group returns the owning channel group.
func (ch *Channel) Group() *ChannelGroup { return ch.cg }

// Index returns the position of the channel in its group.
func (ch *Channel) Index() int { return ch.index }

// Offset returns the file offset of the ##CN block.
func (ch *Channel) Offset() uint64 { return ch.offset }

// Name returns the channel name.
func (ch *Channel) Name() string { return ch.name }

// Unit returns the physical unit. Channels without their own unit report
// the unit of their conversion.
func (ch *Channel) Unit() string { return ch.unit }

// Comment returns the channel comment.
func (ch *Channel) Comment() string { return ch.comment }

// Type returns the channel type.
func (ch *Channel) Type() ChannelType { return ch.kind }

// SyncType returns the raw cn_sync_type (1 time, 2 angle, 3 distance, 4 index).
func (ch *Channel) SyncType() uint8 { return ch.syncType }

// DataType returns the storage type of the channel values.
func (ch *Channel) DataType() DataType { return ch.field.Type }

// ByteOffset returns the offset of the value within the record data.
func (ch *Channel) ByteOffset() uint32 { return ch.field.ByteOffset }

// BitOffset returns the bit position of the value within its first byte.
func (ch *Channel) BitOffset() uint8 { return ch.field.BitOffset }

// BitCount returns the width of the value in bits.
func (ch *Channel) BitCount() uint32 { return ch.field.BitCount }

// Conversion returns the conversion rule; nil means identity.
func (ch *Channel) Conversion() *Conversion { return ch.conv }

// Source returns the source information, or nil.
func (ch *Channel) Source() *SourceInfo { return ch.source }

// IsMaster reports whether the channel is the time base of its group.
func (ch *Channel) IsMaster() bool {
	return ch.kind == ChannelMaster || ch.kind == ChannelVirtualMaster
}

// IsVirtual reports whether the channel has no bits in the record; its
// raw value is the record index.
func (ch *Channel) IsVirtual() bool {
	return ch.kind == ChannelVirtualMaster || ch.kind == ChannelVirtualData
}

// AllInvalid reports whether every value of the channel is flagged invalid.
func (ch *Channel) AllInvalid() bool { return ch.flags&block.CNFlagAllInvalid != 0 }

// ReadFloat64 decodes the channel and applies its conversion. See
// ChannelGroup.ReadPhysical.
func (ch *Channel) ReadFloat64() ([]float64, error) {
	return ch.cg.ReadPhysical(ch)
}

// ReadRaw decodes the channel without applying its conversion.
func (ch *Channel) ReadRaw() ([]float64, error) {
	return ch.cg.DecodeFloat64(ch)
}
