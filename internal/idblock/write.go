package idblock

import (
	"fmt"

	"github.com/robert-malhotra/go-mdf4/internal/binary"
)

// Write encodes an ID block at offset 0. Only synthetic test files are
// produced this way.
func Write(w *binary.Writer, version uint16, program string) error {
	w = w.At(0)
	if err := w.WriteBytes(FileID); err != nil {
		return err
	}
	vs := fmt.Sprintf("%-8s", fmt.Sprintf("%d.%02d", version/100, version%100))
	if err := w.WriteBytes([]byte(vs[:8])); err != nil {
		return err
	}
	prog := fmt.Sprintf("%-8s", program)
	if err := w.WriteBytes([]byte(prog[:8])); err != nil {
		return err
	}
	if err := w.WriteZeros(4); err != nil {
		return err
	}
	if err := w.WriteUint16(version); err != nil {
		return err
	}
	// reserved + unfinalized flags
	return w.WriteZeros(30 + 2 + 2)
}
