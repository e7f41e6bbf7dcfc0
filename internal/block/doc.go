// Package block decodes MDF4 blocks: the generic "##XX" header, the link
// table, and the fixed payload of each block type the reader understands.
//
// # Generic Block Layout
//
//	Offset  Size        Description
//	0       4           Signature, "##" followed by a two-letter type
//	4       4           Reserved
//	8       8           Total block length in bytes (header + links + data)
//	16      8           Link count
//	24      8*count     Absolute file offsets of linked blocks, 0 = null
//	var     var         Block-type specific fixed fields and trailing data
//
// All fields are little-endian.
//
// # Reading
//
// [ReadHeader] validates the signature against the set admissible for the
// link being followed and checks that the declared length can hold the
// header and link table. [ReadLinks] returns the link table without
// dereferencing it: a link is only bounds-checked when the block it names is
// itself read. [ReadFixed] returns the fixed payload after the link table.
//
// The typed parsers ([ReadHD], [ReadDG], [ReadCG], [ReadCN], [ReadCC],
// [ReadSI], [ReadDL], [ReadText]) combine the three steps for one block type
// and enforce the minimum link count of that type.
//
// # Errors
//
// Structural problems wrap errs.ErrFormat:
//
//   - errs.ErrBadSignature: signature not admissible at this link
//   - errs.ErrTruncatedBlock: block or payload extends beyond its length or the file
//   - errs.ErrLinkCount: fewer links than the block type defines
//
// Failures of the underlying Source wrap errs.ErrIO.
package block
