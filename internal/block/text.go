package block

import (
	"bytes"

	"github.com/robert-malhotra/go-mdf4/internal/binary"
)

// ReadText returns the zero-terminated string of a ##TX or ##MD block.
// A null link yields the empty string. MD content is returned verbatim.
func ReadText(r *binary.Reader, offset uint64) (string, error) {
	if offset == 0 {
		return "", nil
	}
	h, err := ReadHeader(r, offset, SigTX, SigMD)
	if err != nil {
		return "", err
	}
	buf, err := ReadFixed(r, h, 0, h.DataSize())
	if err != nil {
		return "", err
	}
	if i := bytes.IndexByte(buf, 0); i >= 0 {
		buf = buf[:i]
	}
	return string(buf), nil
}
