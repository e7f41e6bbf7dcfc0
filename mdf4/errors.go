package mdf4

import (
	"fmt"

	"github.com/robert-malhotra/go-mdf4/internal/errs"
)

// Error categories. Match them with errors.Is; the specific format errors
// below also match ErrFormat.
var (
	ErrIO           = errs.ErrIO
	ErrFormat       = errs.ErrFormat
	ErrRange        = errs.ErrRange
	ErrUnsupported  = errs.ErrUnsupported
	ErrTypeMismatch = errs.ErrTypeMismatch
	ErrArithmetic   = errs.ErrArithmetic
)

// Format errors
var (
	ErrNotMDF4              = errs.ErrNotMDF4
	ErrUnsupportedVersion   = errs.ErrUnsupportedVersion
	ErrBadSignature         = errs.ErrBadSignature
	ErrTruncatedBlock       = errs.ErrTruncatedBlock
	ErrLinkCount            = errs.ErrLinkCount
	ErrCyclicLink           = errs.ErrCyclicLink
	ErrInvalidChannelLayout = errs.ErrInvalidChannelLayout
)

// ErrDivisionByZero is returned by Conversion.Eval; Apply turns it into NaN.
var ErrDivisionByZero = errs.ErrDivisionByZero

// ErrClosed is returned when decoding from a closed file.
var ErrClosed = fmt.Errorf("%w: file is closed", errs.ErrIO)
