package profile

import "errors"

var (
	// ErrInvalidRecord indicates the input is not a JSON object.
	ErrInvalidRecord = errors.New("invalid profile record")

	// ErrNotFound indicates the profile file does not exist.
	ErrNotFound = errors.New("profile file not found")
)
