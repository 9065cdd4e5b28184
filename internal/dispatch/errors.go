package dispatch

import (
	"errors"

	"github.com/alnah/go-profilestamp/internal/host"
)

var (
	// ErrUnsupportedHost indicates the target is not one of the four known hosts.
	ErrUnsupportedHost = errors.New("Unsupported Office host application: this tool only writes to spreadsheet, mail, presentation, or document hosts")

	// ErrHostUnavailable indicates the target kind is known but no backend was opened for it.
	ErrHostUnavailable = errors.New("host backend not available")
)

// writeErrorPrefix opens every dispatch failure message.
const writeErrorPrefix = "Unable to write data to document. "

// WriteError reports a failed write, including the host it was aimed at.
type WriteError struct {
	Kind host.Kind
	Err  error
}

func (e *WriteError) Error() string {
	return writeErrorPrefix + e.Err.Error()
}

func (e *WriteError) Unwrap() error {
	return e.Err
}
