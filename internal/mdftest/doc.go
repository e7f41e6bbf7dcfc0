// Package mdftest encodes small MDF4 files for tests.
//
// A File value describes the block graph declaratively; Bytes lays the blocks
// out with an alloc.Allocator and encodes them with block.Write. Conversion
// and Source values are written once per pointer, so sharing a pointer
// between channels produces a shared block.
//
//	data := mdftest.Build(t, &mdftest.File{
//		Groups: []mdftest.DataGroup{{
//			ChannelGroups: []mdftest.ChannelGroup{{
//				DataBytes: 8,
//				Channels:  []mdftest.Channel{mdftest.Float64("speed", 0)},
//				Records:   mdftest.Float64Records(1, 2, 3),
//			}},
//		}},
//	})
package mdftest
