package config

import "errors"

var (
	// ErrInvalidKey indicates a key that cannot be stored in the key=value file.
	ErrInvalidKey = errors.New("invalid config key")

	// ErrUnknownKey indicates a key that is not a recognized setting.
	ErrUnknownKey = errors.New("unknown config key")

	// ErrInvalidValue indicates a value rejected for its key.
	ErrInvalidValue = errors.New("invalid config value")
)
