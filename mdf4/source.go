package mdf4

import (
	"fmt"
	"io"
	"os"

	"golang.org/x/exp/mmap"
)

// Source is random-access storage for an MDF4 file. ReadAt must be safe for
// concurrent use; *bytes.Reader, *os.File and memory maps all are.
type Source interface {
	io.ReaderAt
	Size() int64
}

// mappedSource adapts a read-only memory map.
type mappedSource struct {
	*mmap.ReaderAt
}

func (m mappedSource) Size() int64 {
	return int64(m.Len())
}

// fileSource reads with pread on an open file.
type fileSource struct {
	*os.File
	size int64
}

func (f fileSource) Size() int64 {
	return f.size
}

// openPath maps path into memory, falling back to positioned reads when the
// platform cannot map it.
func openPath(path string) (Source, io.Closer, error) {
	m, err := mmap.Open(path)
	if err == nil {
		return mappedSource{m}, m, nil
	}

	f, ferr := os.Open(path)
	if ferr != nil {
		return nil, nil, fmt.Errorf("%w: opening file: %w", ErrIO, ferr)
	}
	fi, ferr := f.Stat()
	if ferr != nil {
		f.Close()
		return nil, nil, fmt.Errorf("%w: stat: %w", ErrIO, ferr)
	}
	return fileSource{File: f, size: fi.Size()}, f, nil
}
