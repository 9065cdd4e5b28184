package signature

import "errors"

var (
	// ErrTemplate indicates a signature template could not be read or parsed.
	ErrTemplate = errors.New("invalid signature template")

	// ErrRender indicates template execution failed.
	ErrRender = errors.New("signature render failed")
)
