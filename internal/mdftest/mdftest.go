package mdftest

import (
	"encoding/binary"
	"math"
)

// File describes a synthetic MDF4 file.
type File struct {
	Version     uint16 // defaults to 410
	Program     string
	StartTimeNs uint64
	Comment     string // written as ##MD

	Groups []DataGroup

	// CycleDataGroups links the last data group back to the first.
	CycleDataGroups bool
}

// DataGroup describes a ##DG block and its data.
type DataGroup struct {
	RecordIDSize  uint8
	Comment       string
	ChannelGroups []ChannelGroup

	// Data overrides the records of the channel groups when non-nil.
	Data []byte

	// Interleave writes the records of all channel groups round-robin.
	Interleave bool

	// Split stores the data in a ##DL chain of ##DT blocks with these sizes.
	// The last block takes whatever is left.
	Split []int
	// PerList limits the number of data blocks per ##DL; 0 means one list.
	PerList int

	// Compressed replaces the data block with a ##DZ block.
	Compressed bool
}

// ChannelGroup describes a ##CG block.
type ChannelGroup struct {
	RecordID   uint64
	AcqName    string
	Comment    string
	Source     *Source
	Flags      uint16
	DataBytes  uint32
	InvalBytes uint32

	// Cycles overrides len(Records) as the cycle count.
	Cycles uint64

	Channels []Channel
	// Records holds the payload of each record without the record id.
	Records [][]byte

	// CycleChannels links the last channel back to the first.
	CycleChannels bool
}

// Channel describes a ##CN block.
type Channel struct {
	Name     string
	Unit     string
	Comment  string
	Type     uint8 // cn_type
	SyncType uint8
	DataType uint8

	ByteOffset  uint32
	BitOffset   uint8
	BitCount    uint32
	Flags       uint32
	InvalBitPos uint32

	Conversion *Conversion
	Source     *Source
}

// Conversion describes a ##CC block.
type Conversion struct {
	Type   uint8
	Name   string
	Unit   string
	Values []float64
}

// Source describes a ##SI block.
type Source struct {
	Name    string
	Path    string
	Comment string
	Type    uint8
	BusType uint8
}

// Channel data types used by the helpers below.
const (
	uintLE  = 0
	intLE   = 2
	floatLE = 4
)

// Float64 returns a little-endian double channel.
func Float64(name string, byteOffset uint32) Channel {
	return Channel{Name: name, DataType: floatLE, ByteOffset: byteOffset, BitCount: 64}
}

// Uint returns a little-endian unsigned channel.
func Uint(name string, byteOffset uint32, bitOffset uint8, bits uint32) Channel {
	return Channel{Name: name, DataType: uintLE, ByteOffset: byteOffset, BitOffset: bitOffset, BitCount: bits}
}

// Int returns a little-endian signed channel.
func Int(name string, byteOffset uint32, bits uint32) Channel {
	return Channel{Name: name, DataType: intLE, ByteOffset: byteOffset, BitCount: bits}
}

// Linear returns a linear conversion phys = a*raw + b.
func Linear(a, b float64) *Conversion {
	return &Conversion{Type: 1, Values: []float64{b, a}}
}

// Float64Records encodes one 8-byte record per value.
func Float64Records(vals ...float64) [][]byte {
	recs := make([][]byte, len(vals))
	for i, v := range vals {
		recs[i] = binary.LittleEndian.AppendUint64(nil, math.Float64bits(v))
	}
	return recs
}

// Uint32Records encodes one 4-byte record per value.
func Uint32Records(vals ...uint32) [][]byte {
	recs := make([][]byte, len(vals))
	for i, v := range vals {
		recs[i] = binary.LittleEndian.AppendUint32(nil, v)
	}
	return recs
}
