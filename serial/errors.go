package serial

import "errors"

var (
	ErrTruncated    = errors.New("serial: truncated data")
	ErrNonCanonical = errors.New("serial: non-canonical varint")
	ErrInvalidBool  = errors.New("serial: invalid bool value")
	ErrInvalidUTF8  = errors.New("serial: invalid utf-8 string")
	ErrTrailingData = errors.New("serial: trailing data")
	ErrOutOfRange   = errors.New("serial: value out of range")
)
