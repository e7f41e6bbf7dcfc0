// Package idblock handles the fixed-format identification block at the start
// of every MDF4 file.
//
// The ID block is the only block without the generic "##XX" header. It is
// always 64 bytes long, sits at file offset 0, and is followed directly by
// the header block (##HD) at offset 64.
//
// # Layout
//
//	Offset  Size  Description
//	0       8     File identifier, "MDF     " (or "UnFinMF " while recording)
//	8       8     Format version string, e.g. "4.10    "
//	16      8     Program identifier
//	24      4     Reserved
//	28      2     Version number, e.g. 410
//	30      30    Reserved
//	60      2     Standard unfinalized flags
//	62      2     Custom unfinalized flags
//
// # Usage
//
//	id, err := idblock.Read(reader)
//	if errors.Is(err, errs.ErrNotMDF4) {
//	    // not an MDF4 file
//	}
//
// [Read] touches nothing beyond the first 64 bytes, so a file that fails
// identification never causes further I/O.
package idblock
