package mdf4

import (
	"fmt"

	"github.com/robert-malhotra/go-mdf4/internal/block"
	"github.com/robert-malhotra/go-mdf4/internal/conversion"
	"github.com/robert-malhotra/go-mdf4/internal/dtype"
)

// DataType is the storage type of a channel value (cn_data_type).
type DataType = dtype.DataType

// Channel data types
const (
	UintLE        = dtype.UintLE
	UintBE        = dtype.UintBE
	IntLE         = dtype.IntLE
	IntBE         = dtype.IntBE
	FloatLE       = dtype.FloatLE
	FloatBE       = dtype.FloatBE
	StringLatin1  = dtype.StringLatin1
	StringUTF8    = dtype.StringUTF8
	StringUTF16LE = dtype.StringUTF16LE
	StringUTF16BE = dtype.StringUTF16BE
	ByteArray     = dtype.ByteArray
	MIMESample    = dtype.MIMESample
	MIMEStream    = dtype.MIMEStream
	CANopenDate   = dtype.CANopenDate
	CANopenTime   = dtype.CANopenTime
)

// Conversion maps raw values to physical values. A nil *Conversion is the
// identity.
type Conversion = conversion.Conversion

// ConversionKind is the formula family of a Conversion.
type ConversionKind = conversion.Kind

// Conversion kinds
const (
	ConversionIdentity     = conversion.Identity
	ConversionLinear       = conversion.Linear
	ConversionRational     = conversion.Rational
	ConversionAlgebraic    = conversion.Algebraic
	ConversionTableInterp  = conversion.TableInterp
	ConversionTable        = conversion.Table
	ConversionRangeTable   = conversion.RangeTable
	ConversionValueToText  = conversion.ValueToText
	ConversionRangeToText  = conversion.RangeToText
	ConversionTextToValue  = conversion.TextToValue
	ConversionTextToText   = conversion.TextToText
	ConversionBitfieldText = conversion.BitfieldText
)

// NewConversion builds a conversion from ASAM parameters.
func NewConversion(kind ConversionKind, params []float64) (*Conversion, error) {
	return conversion.New(kind, params)
}

// ApplyAll converts values in place. See Conversion.Apply.
func ApplyAll(c *Conversion, values []float64) error {
	return conversion.ApplyAll(c, values)
}

// ChannelType is the role of a channel in its group (cn_type).
type ChannelType uint8

// Channel types
const (
	ChannelFixed         ChannelType = block.CNTypeFixed
	ChannelVLSD          ChannelType = block.CNTypeVLSD
	ChannelMaster        ChannelType = block.CNTypeMaster
	ChannelVirtualMaster ChannelType = block.CNTypeVirtualMaster
	ChannelSync          ChannelType = block.CNTypeSync
	ChannelMaxLength     ChannelType = block.CNTypeMaxLength
	ChannelVirtualData   ChannelType = block.CNTypeVirtualData
)

var channelTypeNames = [...]string{
	"fixed", "vlsd", "master", "virtual master", "sync", "max length", "virtual data",
}

func (t ChannelType) String() string {
	if int(t) < len(channelTypeNames) {
		return channelTypeNames[t]
	}
	return fmt.Sprintf("channeltype(%d)", uint8(t))
}

// SourceType classifies a source information block.
type SourceType uint8

// Source types
const (
	SourceOther SourceType = iota
	SourceECU
	SourceBus
	SourceIO
	SourceTool
	SourceUser
)

var sourceTypeNames = [...]string{"other", "ecu", "bus", "i/o", "tool", "user"}

func (t SourceType) String() string {
	if int(t) < len(sourceTypeNames) {
		return sourceTypeNames[t]
	}
	return fmt.Sprintf("sourcetype(%d)", uint8(t))
}

// SourceInfo describes where a channel or channel group was acquired.
type SourceInfo struct {
	Name    string
	Path    string
	Comment string
	Type    SourceType
	BusType uint8
}
