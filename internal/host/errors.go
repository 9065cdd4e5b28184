package host

import "errors"

// ErrUnknownKind indicates a host name that ParseKind does not recognize.
var ErrUnknownKind = errors.New("unknown host kind")
