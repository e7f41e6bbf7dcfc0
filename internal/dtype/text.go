package dtype

import (
	"bytes"
	"fmt"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"

	"github.com/robert-malhotra/go-mdf4/internal/errs"
)

// DecodeString converts a string field's bytes to UTF-8. Trailing zero
// padding is removed.
func DecodeString(t DataType, b []byte) (string, error) {
	var dec *encoding.Decoder
	switch t {
	case StringUTF8:
		if i := bytes.IndexByte(b, 0); i >= 0 {
			b = b[:i]
		}
		return string(b), nil
	case StringLatin1:
		dec = charmap.ISO8859_1.NewDecoder()
	case StringUTF16LE:
		dec = unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM).NewDecoder()
	case StringUTF16BE:
		dec = unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM).NewDecoder()
	default:
		return "", fmt.Errorf("%w: %s is not a string type", errs.ErrTypeMismatch, t)
	}

	out, err := dec.Bytes(b)
	if err != nil {
		return "", fmt.Errorf("decoding %s: %w", t, err)
	}
	s := string(out)
	if i := strings.IndexByte(s, 0); i >= 0 {
		s = s[:i]
	}
	return s, nil
}
