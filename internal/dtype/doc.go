// Package dtype describes MDF4 channel data types and extracts channel values
// from raw record bytes.
//
// A channel value occupies BitCount bits starting at bit
// ByteOffset*8 + BitOffset of the record data. Extraction gathers the bytes
// covering that range, assembles them in the channel's byte order, shifts out
// the bit offset and masks to the bit count. The same routine serves every
// numeric type; only the final interpretation differs.
//
// # Type Mapping
//
//	cn_data_type       | Go value
//	-------------------|------------------------------------------
//	0, 1  unsigned int | uint64 zero-extended, then float64
//	2, 3  signed int   | int64 sign-extended from BitCount, then float64
//	4, 5  IEEE float   | float32 (32 bits) or float64 (64 bits)
//	6..9  string       | string (Latin-1, UTF-8, UTF-16 LE/BE decoded)
//	10..14 bytes       | []byte, never coerced to a number
//
// Odd type numbers up to 5 are big-endian (Motorola) layouts.
//
// # Key Types and Functions
//
//   - [DataType]: the cn_data_type tag with classification helpers
//   - [Field]: location and type of one channel in a record
//   - [Field.Validate]: checks widths and that the field fits the record
//   - [Field.Float64]: numeric extraction
//   - [Field.Bytes]: raw field bytes
//   - [DecodeString]: text decoding for string types
package dtype
