package idblock

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/robert-malhotra/go-mdf4/internal/binary"
	"github.com/robert-malhotra/go-mdf4/internal/errs"
)

// Size is the fixed size of the ID block.
const Size = 64

// HeaderOffset is where the ##HD block starts.
const HeaderOffset = Size

// File identifiers
var (
	FileID        = []byte("MDF     ")
	UnfinalizedID = []byte("UnFinMF ")
)

const (
	minVersion       = 400
	maxVersion       = 499
	unfinFlagsOffset = 60
)

// ID contains the decoded identification block.
type ID struct {
	// VersionString is the trimmed format identifier, e.g. "4.10".
	VersionString string

	// Program is the trimmed identifier of the writing application.
	Program string

	// Version is the numeric format version, e.g. 410.
	Version uint16

	// UnfinalizedFlags and CustomUnfinalizedFlags are non-zero only in files
	// that were not finalized by the writer.
	UnfinalizedFlags       uint16
	CustomUnfinalizedFlags uint16
}

// Read parses and validates the ID block at offset 0.
func Read(r *binary.Reader) (*ID, error) {
	buf, err := r.ReadAt(0, Size)
	if err != nil {
		if r.Size() < Size {
			return nil, fmt.Errorf("%w: file is %d bytes, shorter than the ID block", errs.ErrNotMDF4, r.Size())
		}
		return nil, err
	}

	fileID := buf[0:8]
	switch {
	case bytes.Equal(fileID, FileID):
	case bytes.Equal(fileID, UnfinalizedID):
		return nil, fmt.Errorf("%w: unfinalized file", errs.ErrUnsupported)
	default:
		return nil, fmt.Errorf("%w: file identifier %q", errs.ErrNotMDF4, fileID)
	}

	f := binary.NewFields(buf[28:])
	id := &ID{
		VersionString: strings.TrimRight(string(buf[8:16]), " \x00"),
		Program:       strings.TrimRight(string(buf[16:24]), " \x00"),
		Version:       f.Uint16(),
	}
	tail := binary.NewFields(buf[unfinFlagsOffset:])
	id.UnfinalizedFlags = tail.Uint16()
	id.CustomUnfinalizedFlags = tail.Uint16()

	if id.Version < minVersion {
		return nil, fmt.Errorf("%w: version %d is not MDF 4.x", errs.ErrNotMDF4, id.Version)
	}
	if id.Version > maxVersion {
		return nil, fmt.Errorf("%w: %d", errs.ErrUnsupportedVersion, id.Version)
	}
	return id, nil
}

// Major returns the major format version.
func (id *ID) Major() int {
	return int(id.Version) / 100
}

// Minor returns the minor format version.
func (id *ID) Minor() int {
	return int(id.Version) % 100
}
