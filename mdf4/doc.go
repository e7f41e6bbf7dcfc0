// Package mdf4 reads ASAM MDF 4.x measurement files.
//
// An MDF4 file is a graph of blocks linked by absolute file offsets. Open
// walks that graph once and builds an immutable index:
//
//	File
//	└── DataGroup        (##DG, owns the record data ##DT / ##DL)
//	    └── ChannelGroup (##CG, fixed-length records)
//	        └── Channel  (##CN, bit field within a record, ##CC conversion, ##SI source)
//
// Channel values are decoded on demand:
//
//	f, err := mdf4.Open("recording.mf4")
//	if err != nil {
//	    return err
//	}
//	defer f.Close()
//
//	for _, dg := range f.DataGroups() {
//	    for _, cg := range dg.ChannelGroups() {
//	        for _, ch := range cg.Channels() {
//	            values, err := ch.ReadFloat64()
//	            ...
//	        }
//	    }
//	}
//
// Errors wrap the category sentinels ErrIO, ErrFormat, ErrRange,
// ErrUnsupported, ErrTypeMismatch and ErrArithmetic; test them with
// errors.Is. Structural problems abort Open. Problems with a single channel
// only fail the decode of that channel.
//
// Compressed data blocks (##DZ, ##HL), VLSD and bus event channel groups,
// and text based conversions are recognised and reported as ErrUnsupported.
package mdf4
