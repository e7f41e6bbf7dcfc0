package dtype

import "fmt"

// DataType is the cn_data_type tag of a channel.
type DataType uint8

// Channel data types
const (
	UintLE        DataType = 0
	UintBE        DataType = 1
	IntLE         DataType = 2
	IntBE         DataType = 3
	FloatLE       DataType = 4
	FloatBE       DataType = 5
	StringLatin1  DataType = 6
	StringUTF8    DataType = 7
	StringUTF16LE DataType = 8
	StringUTF16BE DataType = 9
	ByteArray     DataType = 10
	MIMESample    DataType = 11
	MIMEStream    DataType = 12
	CANopenDate   DataType = 13
	CANopenTime   DataType = 14
)

var typeNames = [...]string{
	"uint-le", "uint-be", "int-le", "int-be", "float-le", "float-be",
	"string-latin1", "string-utf8", "string-utf16le", "string-utf16be",
	"bytes", "mime-sample", "mime-stream", "canopen-date", "canopen-time",
}

func (d DataType) String() string {
	if int(d) < len(typeNames) {
		return typeNames[d]
	}
	return fmt.Sprintf("datatype(%d)", uint8(d))
}

// Known reports whether d is a defined data type.
func (d DataType) Known() bool {
	return d <= CANopenTime
}

// IsInteger reports whether d is a signed or unsigned integer type.
func (d DataType) IsInteger() bool {
	return d <= IntBE
}

// IsSigned reports whether d is a signed integer type.
func (d DataType) IsSigned() bool {
	return d == IntLE || d == IntBE
}

// IsFloat reports whether d is an IEEE 754 type.
func (d DataType) IsFloat() bool {
	return d == FloatLE || d == FloatBE
}

// IsNumeric reports whether values of d can be decoded as float64.
func (d DataType) IsNumeric() bool {
	return d <= FloatBE
}

// IsString reports whether d is a text type.
func (d DataType) IsString() bool {
	return d >= StringLatin1 && d <= StringUTF16BE
}

// BigEndian reports whether the value bytes are stored most significant first.
func (d DataType) BigEndian() bool {
	switch d {
	case UintBE, IntBE, FloatBE, StringUTF16BE:
		return true
	}
	return false
}
