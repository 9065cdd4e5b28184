package ooxml

import (
	"context"
	"fmt"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"github.com/alnah/go-profilestamp/internal/host"
)

// slidePart matches slide parts and captures the slide number.
var slidePart = regexp.MustCompile(`^ppt/slides/slide(\d+)\.xml$`)

// Presentation is a presentation host backed by a .pptx file. The current
// selection is the text paragraph holding the selection marker.
type Presentation struct {
	path   string
	pkg    *pkg
	marker string
}

// OpenPresentation opens the .pptx at path. An empty marker uses
// host.DefaultSelectionMarker.
func OpenPresentation(path, marker string) (*Presentation, error) {
	if marker == "" {
		marker = host.DefaultSelectionMarker
	}
	p, err := readPackage(path)
	if err != nil {
		return nil, err
	}
	return &Presentation{path: path, pkg: p, marker: marker}, nil
}

// ReplaceSelection replaces the marked paragraph with one paragraph per
// line of text and saves the presentation.
func (p *Presentation) ReplaceSelection(ctx context.Context, text string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	for _, pt := range p.slides() {
		replaced, ok := replaceMarkedParagraph(string(pt.data), escapeText(p.marker), text)
		if !ok {
			continue
		}
		pt.data = []byte(replaced)
		return p.pkg.write(p.path)
	}
	return fmt.Errorf("%w: %q", ErrNoSelection, p.marker)
}

// slides returns slide parts in slide-number order.
func (p *Presentation) slides() []*part {
	type numbered struct {
		n  int
		pt *part
	}
	var found []numbered
	for _, pt := range p.pkg.parts {
		m := slidePart.FindStringSubmatch(pt.header.Name)
		if m == nil {
			continue
		}
		n, _ := strconv.Atoi(m[1])
		found = append(found, numbered{n: n, pt: pt})
	}
	slices.SortFunc(found, func(a, b numbered) int { return a.n - b.n })

	out := make([]*part, len(found))
	for i, f := range found {
		out[i] = f.pt
	}
	return out
}

// replaceMarkedParagraph swaps the a:p containing <a:t>marker</a:t> for
// paragraphs built from text. Run properties of the marker run are kept.
func replaceMarkedParagraph(slide, marker, text string) (string, bool) {
	run := "<a:t>" + marker + "</a:t>"
	at := strings.Index(slide, run)
	if at < 0 {
		return slide, false
	}

	start := max(strings.LastIndex(slide[:at], "<a:p>"), strings.LastIndex(slide[:at], "<a:p "))
	rel := strings.Index(slide[at:], "</a:p>")
	if start < 0 || rel < 0 {
		return slide, false
	}
	end := at + rel + len("</a:p>")

	rPr := ""
	if r := strings.LastIndex(slide[start:at], "<a:r>"); r >= 0 {
		rPr = strings.TrimSpace(slide[start+r+len("<a:r>") : at])
	}

	lines := strings.Split(strings.TrimSuffix(text, "\n"), "\n")
	var b strings.Builder
	for _, line := range lines {
		if line == "" {
			b.WriteString("<a:p/>")
			continue
		}
		b.WriteString("<a:p><a:r>")
		b.WriteString(rPr)
		b.WriteString("<a:t>")
		b.WriteString(escapeText(line))
		b.WriteString("</a:t></a:r></a:p>")
	}
	return slide[:start] + b.String() + slide[end:], true
}

var _ host.PresentationHost = (*Presentation)(nil)
