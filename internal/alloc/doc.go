// Package alloc places blocks when encoding synthetic MDF4 files.
//
// MDF4 blocks start on 8-byte boundaries and never overlap. The [Allocator]
// hands out offsets append-only from a base address (the end of the ID
// block, or the end of the HD block once that is placed) and records every
// allocation so a finished file can be checked with Validate.
//
//	a := alloc.New(64)
//	hd := a.Alloc(block.Size(6, 32), "##HD")
//	dg := a.Alloc(block.Size(4, 8), "##DG")
//
// Offsets are reserved before the block is written so that a parent can link
// to children that are written after it.
package alloc
