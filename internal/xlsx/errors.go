package xlsx

import "errors"

var (
	// ErrInvalidRange indicates a malformed A1-style range address.
	ErrInvalidRange = errors.New("invalid range address")

	// ErrShapeMismatch indicates values do not fit the target range.
	ErrShapeMismatch = errors.New("values do not match range shape")
)
