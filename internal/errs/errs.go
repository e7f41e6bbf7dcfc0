// Package errs defines the error taxonomy shared by the MDF4 parser packages.
//
// Errors form a two-level hierarchy. The category sentinels (ErrIO, ErrFormat,
// ErrRange, ErrUnsupported, ErrTypeMismatch, ErrArithmetic) are what callers
// branch on; the specific format errors wrap ErrFormat so that both
// errors.Is(err, ErrFormat) and errors.Is(err, ErrCyclicLink) hold.
package errs

import (
	"errors"
	"fmt"
)

// Categories
var (
	ErrIO           = errors.New("mdf4: i/o error")
	ErrFormat       = errors.New("mdf4: format error")
	ErrRange        = errors.New("mdf4: out of range")
	ErrUnsupported  = errors.New("mdf4: unsupported feature")
	ErrTypeMismatch = errors.New("mdf4: type mismatch")
	ErrArithmetic   = errors.New("mdf4: arithmetic error")
)

// Format errors
var (
	ErrNotMDF4              = fmt.Errorf("%w: not an MDF4 file", ErrFormat)
	ErrUnsupportedVersion   = fmt.Errorf("%w: unsupported MDF version", ErrFormat)
	ErrBadSignature         = fmt.Errorf("%w: unexpected block signature", ErrFormat)
	ErrTruncatedBlock       = fmt.Errorf("%w: truncated block", ErrFormat)
	ErrLinkCount            = fmt.Errorf("%w: link count too small for block type", ErrFormat)
	ErrCyclicLink           = fmt.Errorf("%w: cyclic link chain", ErrFormat)
	ErrInvalidChannelLayout = fmt.Errorf("%w: invalid channel layout", ErrFormat)
)

// ErrDivisionByZero is reported by conversions whose denominator vanishes.
var ErrDivisionByZero = fmt.Errorf("%w: division by zero", ErrArithmetic)
