// Package mailfile is a mail host whose message body is an HTML file on disk.
package mailfile

import (
	"context"
	"fmt"
	"os"

	"github.com/alnah/go-profilestamp/internal/host"
)

// Body is a mail body stored as an HTML file. The selection is the first
// occurrence of the marker; without one, HTML is appended to the body.
type Body struct {
	path   string
	marker string
}

// Open returns the mail body at path. The file need not exist yet.
// An empty marker uses host.DefaultSelectionMarker.
func Open(path, marker string) *Body {
	if marker == "" {
		marker = host.DefaultSelectionMarker
	}
	return &Body{path: path, marker: marker}
}

// InsertHTML inserts html at the selection and rewrites the file.
func (b *Body) InsertHTML(ctx context.Context, html string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	existing, err := os.ReadFile(b.path)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("read mail body: %w", err)
	}

	out := host.InsertAtSelection(string(existing), html, b.marker)
	// #nosec G306 -- user-owned mail body
	if err := os.WriteFile(b.path, []byte(out), 0644); err != nil {
		return fmt.Errorf("write mail body: %w", err)
	}
	return nil
}

var _ host.MailHost = (*Body)(nil)
