package cli

import "errors"

// CLI-specific sentinel errors.
// These are validation/usage errors that don't belong to domain packages.

var (
	// ErrNoProfileSource indicates neither --profile nor --graph was given.
	ErrNoProfileSource = errors.New("no profile source: pass --profile <file|-> or --graph")

	// ErrIncomplete indicates the mail host never reported an outcome.
	ErrIncomplete = errors.New("mail host did not report completion")

	// ErrOutputExists indicates the output file already exists.
	ErrOutputExists = errors.New("output file already exists")
)
