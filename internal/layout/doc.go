// Package layout resolves where the record bytes of an MDF4 data group live.
//
// A data group's data link names either a single data block or a data list
// that strings several data blocks together. Either way the records form one
// logical byte stream; this package maps offsets in that stream back to file
// offsets without copying the payload.
//
// # Storage Forms
//
//   - Null link: the group has no records. Implemented by an empty [Contiguous].
//
//   - ##DT: one block, the stream is its payload. Implemented by [Contiguous].
//
//   - ##DL: a chain of list blocks, each naming data blocks in order. The
//     stream is the concatenation of all their payloads; records may straddle
//     block boundaries. Implemented by [List].
//
//   - ##DZ and ##HL: compressed storage. Recognized and reported through
//     [Layout.Validate] as errs.ErrUnsupported so that the file still opens
//     and only decodes of the affected groups fail. Implemented by [Unsupported].
//
// # Reading Data
//
// Use [New] to resolve a data link:
//
//	l, err := layout.New(reader, dg.Data)
//	if err := l.Validate(); err != nil {
//	    // compressed, skip
//	}
//	buf, err := l.ReadAt(recordOffset, recordLength)
//
// DL chains are walked with a visited set; a list that links back to itself
// fails with errs.ErrCyclicLink.
package layout
