// Package dispatch writes a profile record into whichever host document is
// targeted, choosing one of four host-specific write routines.
//
// Every routine waits for its host call to finish; host-reported failures
// are logged and returned to the caller.
package dispatch

import (
	"context"
	"fmt"
	"strings"

	"github.com/alnah/go-profilestamp/internal/host"
	"github.com/alnah/go-profilestamp/internal/logger"
	"github.com/alnah/go-profilestamp/internal/profile"
)

// Spreadsheet anchor: the first selected field lands in B5.
const (
	anchorColumn = "B"
	anchorRow    = 5
)

// SignatureRenderer renders the mail signature from a raw record.
type SignatureRenderer interface {
	Render(rec profile.Record) (string, error)
}

// Writer dispatches profile writes to hosts.
type Writer struct {
	signature SignatureRenderer
	log       *logger.Logger
}

// Option configures a Writer.
type Option func(*Writer)

// WithLogger sets the logger. Defaults to a no-op logger.
func WithLogger(l *logger.Logger) Option {
	return func(w *Writer) {
		if l != nil {
			w.log = l
		}
	}
}

// NewWriter creates a Writer rendering mail signatures with sig.
func NewWriter(sig SignatureRenderer, opts ...Option) *Writer {
	w := &Writer{
		signature: sig,
		log:       logger.NewNop(),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Write renders rec into the target host. done is invoked once the mail
// host finishes, whatever the outcome; other hosts ignore it and it may be nil.
// Failures are returned as *WriteError.
func (w *Writer) Write(ctx context.Context, target host.Target, rec profile.Record, done host.Completion) error {
	log := w.log.With("host", target.Kind.String())

	var err error
	switch target.Kind {
	case host.Spreadsheet:
		err = w.writeSpreadsheet(ctx, target.Spreadsheet, rec)
	case host.Mail:
		err = w.writeMail(ctx, target.Mail, rec, done)
	case host.Presentation:
		err = w.writePresentation(ctx, target.Presentation, rec)
	case host.DocumentEditor:
		err = w.writeDocument(ctx, target.Document, rec)
	default:
		err = ErrUnsupportedHost
	}

	if err != nil {
		log.Error("write failed", "error", err)
		return &WriteError{Kind: target.Kind, Err: err}
	}
	log.Debug("write complete")
	return nil
}

// ColumnRange returns the single-column address covering n rows from the anchor.
func ColumnRange(n int) string {
	if n < 1 {
		n = 1
	}
	return fmt.Sprintf("%s%d:%s%d", anchorColumn, anchorRow, anchorColumn, anchorRow+n-1)
}

func (w *Writer) writeSpreadsheet(ctx context.Context, sheet host.SpreadsheetHost, rec profile.Record) error {
	if sheet == nil {
		return ErrHostUnavailable
	}

	fields := profile.Select(rec)
	if len(fields) > 0 {
		rows := make([][]string, len(fields))
		for i, f := range fields {
			rows[i] = []string{f}
		}

		address := ColumnRange(len(rows))
		if err := sheet.SetValues(ctx, address, rows); err != nil {
			return fmt.Errorf("set values %s: %w", address, err)
		}
		if err := sheet.AutofitColumns(ctx, address); err != nil {
			return fmt.Errorf("autofit %s: %w", address, err)
		}
	}

	if err := sheet.Sync(ctx); err != nil {
		return fmt.Errorf("sync workbook: %w", err)
	}
	return nil
}

func (w *Writer) writeMail(ctx context.Context, mail host.MailHost, rec profile.Record, done host.Completion) (err error) {
	if done != nil {
		defer func() { done(err) }()
	}
	if mail == nil {
		return ErrHostUnavailable
	}

	html, err := w.signature.Render(rec)
	if err != nil {
		return err
	}
	if err := mail.InsertHTML(ctx, html); err != nil {
		w.log.Warn("failed to set signature", "error", err)
		return fmt.Errorf("set signature: %w", err)
	}
	return nil
}

func (w *Writer) writePresentation(ctx context.Context, pres host.PresentationHost, rec profile.Record) error {
	if pres == nil {
		return ErrHostUnavailable
	}

	if err := pres.ReplaceSelection(ctx, JoinLines(profile.Select(rec))); err != nil {
		return fmt.Errorf("replace selection: %w", err)
	}
	return nil
}

func (w *Writer) writeDocument(ctx context.Context, doc host.DocumentHost, rec profile.Record) error {
	if doc == nil {
		return ErrHostUnavailable
	}

	for _, f := range profile.Select(rec) {
		if err := doc.AppendParagraph(ctx, f); err != nil {
			return fmt.Errorf("append paragraph: %w", err)
		}
	}
	if err := doc.Sync(ctx); err != nil {
		return fmt.Errorf("sync document: %w", err)
	}
	return nil
}

// JoinLines terminates every field with a newline.
func JoinLines(fields []string) string {
	var b strings.Builder
	for _, f := range fields {
		b.WriteString(f)
		b.WriteByte('\n')
	}
	return b.String()
}
