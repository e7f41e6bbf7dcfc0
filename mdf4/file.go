package mdf4

import (
	"fmt"
	"io"
	"sync/atomic"
	"time"

	"github.com/go-kit/log/level"

	"github.com/robert-malhotra/go-mdf4/internal/binary"
	"github.com/robert-malhotra/go-mdf4/internal/block"
	"github.com/robert-malhotra/go-mdf4/internal/idblock"
)

// File is an open MDF4 file. The graph of data groups, channel groups and
// channels is built by Open and never changes afterwards, so a File may be
// used from several goroutines at once.
type File struct {
	path   string
	closer io.Closer
	closed atomic.Bool
	reader *binary.Reader
	opts   *options

	id      *idblock.ID
	hd      *block.HD
	comment string
	groups  []*DataGroup
}

// Open opens the MDF4 file at path. The file is memory mapped where the
// platform allows it.
func Open(path string, opts ...Option) (*File, error) {
	src, closer, err := openPath(path)
	if err != nil {
		return nil, err
	}
	f, err := OpenSource(src, opts...)
	if err != nil {
		closer.Close()
		return nil, err
	}
	f.path = path
	f.closer = closer
	return f, nil
}

// OpenSource parses an MDF4 file from src. The returned File does not own
// src; Close is a no-op apart from marking the file closed.
func OpenSource(src Source, opts ...Option) (*File, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}
	src = InstrumentSource(src, o.metrics)

	f := &File{
		reader: binary.NewReader(src),
		opts:   o,
	}

	id, err := idblock.Read(f.reader)
	if err != nil {
		return nil, fmt.Errorf("reading id block: %w", err)
	}
	f.id = id
	level.Debug(o.logger).Log("msg", "id block", "version", id.Version, "program", id.Program)

	hd, err := block.ReadHD(f.reader, idblock.HeaderOffset)
	if err != nil {
		return nil, fmt.Errorf("reading header block: %w", err)
	}
	f.hd = hd
	if f.comment, err = block.ReadText(f.reader, hd.MDComment); err != nil {
		return nil, fmt.Errorf("reading header comment: %w", err)
	}

	ix := newIndexer(f)
	if f.groups, err = ix.dataGroups(hd.DGFirst); err != nil {
		return nil, err
	}
	level.Debug(o.logger).Log("msg", "file indexed", "data_groups", len(f.groups), "conversions", len(ix.convs), "sources", len(ix.sources))
	return f, nil
}

// Close releases the file. Decoding from a closed file fails with ErrClosed.
func (f *File) Close() error {
	if f.closed.Swap(true) {
		return nil
	}
	if f.closer != nil {
		return f.closer.Close()
	}
	return nil
}

// Path returns the path passed to Open, or "" for OpenSource.
func (f *File) Path() string {
	return f.path
}

// Version returns the format version number, e.g. 410 for MDF 4.10.
func (f *File) Version() int {
	return int(f.id.Version)
}

// VersionString returns the version as written in the ID block.
func (f *File) VersionString() string {
	return f.id.VersionString
}

// Program returns the identifier of the program that wrote the file.
func (f *File) Program() string {
	return f.id.Program
}

// StartTime returns the recording start time. Local-time recordings without
// offsets are returned as UTC wall time.
func (f *File) StartTime() time.Time {
	t := time.Unix(0, int64(f.hd.StartTimeNs)).UTC()
	if f.hd.TimeFlags&block.HDTimeOffsetsSet != 0 {
		offset := (int(f.hd.TZOffsetMinutes) + int(f.hd.DSTOffsetMinutes)) * 60
		return t.In(time.FixedZone("", offset))
	}
	return t
}

// Comment returns the header comment, usually an XML fragment.
func (f *File) Comment() string {
	return f.comment
}

// DataGroups returns the data groups in file order.
func (f *File) DataGroups() []*DataGroup {
	return f.groups
}

// DataGroup returns the data group at index i.
func (f *File) DataGroup(i int) (*DataGroup, error) {
	if i < 0 || i >= len(f.groups) {
		return nil, fmt.Errorf("%w: data group %d of %d", ErrRange, i, len(f.groups))
	}
	return f.groups[i], nil
}

func (f *File) checkOpen() error {
	if f.closed.Load() {
		return ErrClosed
	}
	return nil
}
