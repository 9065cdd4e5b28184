package host

import "context"

// SpreadsheetHost writes cell ranges on the active worksheet.
// SetValues and AutofitColumns are queued; Sync applies them as one batch.
type SpreadsheetHost interface {
	SetValues(ctx context.Context, address string, values [][]string) error
	AutofitColumns(ctx context.Context, address string) error
	Sync(ctx context.Context) error
}

// MailHost inserts HTML at the current selection of a mail body.
// InsertHTML returns only once the host has reported the final outcome.
type MailHost interface {
	InsertHTML(ctx context.Context, html string) error
}

// PresentationHost replaces the current selection with plain text.
type PresentationHost interface {
	ReplaceSelection(ctx context.Context, text string) error
}

// DocumentHost appends paragraphs to the end of the document body.
// AppendParagraph is queued; Sync applies the batch.
type DocumentHost interface {
	AppendParagraph(ctx context.Context, text string) error
	Sync(ctx context.Context) error
}

// Target is the host selected for one invocation. Only the collaborator
// matching Kind is consulted.
type Target struct {
	Kind Kind

	Spreadsheet  SpreadsheetHost
	Mail         MailHost
	Presentation PresentationHost
	Document     DocumentHost
}

// Completion is invoked once a mail write has finished, with the host's
// final outcome. It lets the calling command mark itself complete.
type Completion func(err error)
