package mdf4

import (
	"github.com/robert-malhotra/go-mdf4/internal/block"
	"github.com/robert-malhotra/go-mdf4/internal/layout"
	"github.com/robert-malhotra/go-mdf4/internal/record"
)

// DataGroup owns one or more channel groups whose records share a data
// stream.
type DataGroup struct {
	file         *File
	index        int
	offset       uint64
	recordIDSize uint8
	comment      string
	groups       []*ChannelGroup
	data         layout.Layout
}

// File returns the file the data group belongs to.
func (dg *DataGroup) File() *File { return dg.file }

// Index returns the position of the data group in the file.
func (dg *DataGroup) Index() int { return dg.index }

// Offset returns the file offset of the ##DG block.
func (dg *DataGroup) Offset() uint64 { return dg.offset }

// Comment returns the data group comment.
func (dg *DataGroup) Comment() string { return dg.comment }

// RecordIDSize returns the size in bytes of the record id prefix.
func (dg *DataGroup) RecordIDSize() int { return int(dg.recordIDSize) }

// ChannelGroups returns the channel groups in file order.
func (dg *DataGroup) ChannelGroups() []*ChannelGroup { return dg.groups }

// Sorted reports whether the data group holds the records of a single
// channel group.
func (dg *DataGroup) Sorted() bool { return len(dg.groups) <= 1 }

// DataSize returns the number of record bytes referenced by the data group.
func (dg *DataGroup) DataSize() uint64 { return dg.data.Size() }

// DataBlocks returns the number of data blocks holding the records.
func (dg *DataGroup) DataBlocks() int { return len(dg.data.Spans()) }

func (dg *DataGroup) recordGroups() []record.Group {
	out := make([]record.Group, len(dg.groups))
	for i, cg := range dg.groups {
		out[i] = record.Group{
			RecordID:   cg.recordID,
			DataBytes:  cg.dataBytes,
			InvalBytes: cg.invalBytes,
			VLSD:       cg.IsVLSD(),
		}
	}
	return out
}

// ChannelGroup is a set of channels sampled together into fixed-length
// records.
type ChannelGroup struct {
	dg         *DataGroup
	index      int
	offset     uint64
	name       string
	comment    string
	source     *SourceInfo
	recordID   uint64
	cycles     uint64
	flags      uint16
	dataBytes  uint32
	invalBytes uint32
	channels   []*Channel
}

// DataGroup returns the owning data group.
func (cg *ChannelGroup) DataGroup() *DataGroup { return cg.dg }

// Index returns the position of the channel group in its data group.
func (cg *ChannelGroup) Index() int { return cg.index }

// Offset returns the file offset of the ##CG block.
func (cg *ChannelGroup) Offset() uint64 { return cg.offset }

// Name returns the acquisition name.
func (cg *ChannelGroup) Name() string { return cg.name }

// Comment returns the channel group comment.
func (cg *ChannelGroup) Comment() string { return cg.comment }

// Source returns the acquisition source, or nil.
func (cg *ChannelGroup) Source() *SourceInfo { return cg.source }

// RecordID returns the id that prefixes the group's records in an unsorted
// data group.
func (cg *ChannelGroup) RecordID() uint64 { return cg.recordID }

// CycleCount returns the number of records.
func (cg *ChannelGroup) CycleCount() uint64 { return cg.cycles }

// Flags returns the raw cg_flags.
func (cg *ChannelGroup) Flags() uint16 { return cg.flags }

// DataBytes returns the size of the data part of a record.
func (cg *ChannelGroup) DataBytes() uint32 { return cg.dataBytes }

// InvalBytes returns the size of the invalidation part of a record.
func (cg *ChannelGroup) InvalBytes() uint32 { return cg.invalBytes }

// RecordLength returns the stride between consecutive records, including
// the record id and invalidation bytes.
func (cg *ChannelGroup) RecordLength() uint64 { return cg.layout().Stride() }

// IsVLSD reports whether the group stores variable length signal data.
func (cg *ChannelGroup) IsVLSD() bool { return cg.flags&block.CGFlagVLSD != 0 }

// IsBusEvent reports whether the group holds bus logging events.
func (cg *ChannelGroup) IsBusEvent() bool {
	return cg.flags&(block.CGFlagBusEvent|block.CGFlagPlainBusEvent) != 0
}

// Channels returns the channels in file order.
func (cg *ChannelGroup) Channels() []*Channel { return cg.channels }

// Channel returns the first channel called name.
func (cg *ChannelGroup) Channel(name string) (*Channel, bool) {
	for _, ch := range cg.channels {
		if ch.name == name {
			return ch, true
		}
	}
	return nil, false
}

// Master returns the master (time base) channel of the group, or nil.
func (cg *ChannelGroup) Master() *Channel {
	for _, ch := range cg.channels {
		if ch.IsMaster() {
			return ch
		}
	}
	return nil
}

func (cg *ChannelGroup) layout() record.Layout {
	return record.NewLayout(cg.dg.recordIDSize, cg.dataBytes, cg.invalBytes)
}
