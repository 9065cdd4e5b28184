package ooxml

import (
	"context"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/alnah/go-profilestamp/internal/host"
)

const documentPart = "word/document.xml"

// Minimal parts for a new, empty word-processing document.
const (
	emptyDocxContentTypes = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types"><Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/><Default Extension="xml" ContentType="application/xml"/><Override PartName="/word/document.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"/></Types>`

	emptyDocxRels = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships"><Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument" Target="word/document.xml"/></Relationships>`

	emptyDocxDocument = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body><w:sectPr/></w:body></w:document>`
)

// Document is a document-editor host backed by a .docx file.
// Paragraphs are queued and written to the end of the body on Sync.
type Document struct {
	path string
	pkg  *pkg

	mu      sync.Mutex
	pending []string
}

// OpenDocument opens the .docx at path, or starts an empty one if it does not exist.
func OpenDocument(path string) (*Document, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		p := &pkg{}
		p.add("[Content_Types].xml", []byte(emptyDocxContentTypes))
		p.add("_rels/.rels", []byte(emptyDocxRels))
		p.add(documentPart, []byte(emptyDocxDocument))
		return &Document{path: path, pkg: p}, nil
	}

	p, err := readPackage(path)
	if err != nil {
		return nil, err
	}
	if _, ok := p.get(documentPart); !ok {
		return nil, fmt.Errorf("%w: %s", ErrMissingPart, documentPart)
	}
	return &Document{path: path, pkg: p}, nil
}

// AppendParagraph queues text as a new paragraph at the end of the body.
func (d *Document) AppendParagraph(_ context.Context, text string) error {
	d.mu.Lock()
	d.pending = append(d.pending, text)
	d.mu.Unlock()
	return nil
}

// Sync writes queued paragraphs and saves the document.
func (d *Document) Sync(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	d.mu.Lock()
	paragraphs := d.pending
	d.pending = nil
	d.mu.Unlock()

	pt, _ := d.pkg.get(documentPart)
	body, err := appendParagraphs(string(pt.data), paragraphs)
	if err != nil {
		return err
	}
	pt.data = []byte(body)

	return d.pkg.write(d.path)
}

// appendParagraphs inserts one w:p per text at the end of the body, ahead
// of the body-level section properties when present.
func appendParagraphs(doc string, texts []string) (string, error) {
	end := strings.LastIndex(doc, "</w:body>")
	if end < 0 {
		return "", fmt.Errorf("%w: %s has no </w:body>", ErrMalformedPart, documentPart)
	}

	at := end
	if sect := bodySectPr(doc[:end]); sect >= 0 {
		at = sect
	}

	var b strings.Builder
	for _, t := range texts {
		b.WriteString(`<w:p><w:r><w:t xml:space="preserve">`)
		b.WriteString(escapeText(t))
		b.WriteString(`</w:t></w:r></w:p>`)
	}
	return doc[:at] + b.String() + doc[at:], nil
}

// bodySectPr returns the index of the body-level w:sectPr in body, or -1.
// It is the first one after the last block, so a w:sectPr nested in its
// own w:sectPrChange is never matched.
func bodySectPr(body string) int {
	from := max(lastBlockEnd(body), 0)
	rest := body[from:]
	for off := 0; ; {
		i := strings.Index(rest[off:], "<w:sectPr")
		if i < 0 {
			return -1
		}
		i += off
		if next := i + len("<w:sectPr"); next < len(rest) {
			switch rest[next] {
			case '>', '/', ' ', '\t', '\n', '\r':
				return from + i
			}
		}
		off = i + 1
	}
}

// lastBlockEnd returns the index of the last closing paragraph or table tag.
// A w:sectPr before it belongs to a paragraph, not to the body.
func lastBlockEnd(s string) int {
	return max(strings.LastIndex(s, "</w:p>"), strings.LastIndex(s, "</w:tbl>"))
}

var _ host.DocumentHost = (*Document)(nil)
