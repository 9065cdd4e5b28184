package ooxml_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alnah/go-profilestamp/internal/ooxml"
)

func writeFile(p, content string) error {
	return os.WriteFile(p, []byte(content), 0600)
}

const slideWithMarker = `<p:sld><p:cSld><p:spTree><p:sp><p:txBody><a:bodyPr/>` +
	`<a:p><a:r><a:rPr lang="en-US" sz="1800"/><a:t>{{selection}}</a:t></a:r></a:p>` +
	`</p:txBody></p:sp></p:spTree></p:cSld></p:sld>`

const slideWithoutMarker = `<p:sld><p:cSld><p:spTree><p:sp><p:txBody>` +
	`<a:p><a:r><a:t>Title</a:t></a:r></a:p></p:txBody></p:sp></p:spTree></p:cSld></p:sld>`

func TestPresentation_ReplaceSelection(t *testing.T) {
	t.Parallel()

	p := writeZip(t, t.TempDir(), "deck.pptx",
		"[Content_Types].xml", "<Types/>",
		"ppt/slides/slide10.xml", slideWithMarker,
		"ppt/slides/slide2.xml", slideWithoutMarker,
	)

	pres, err := ooxml.OpenPresentation(p, "")
	if err != nil {
		t.Fatalf("OpenPresentation() unexpected error: %v", err)
	}
	if err := pres.ReplaceSelection(context.Background(), "Ann\na@x.com & co\nHQ\n"); err != nil {
		t.Fatalf("ReplaceSelection() unexpected error: %v", err)
	}

	slide := readPart(t, p, "ppt/slides/slide10.xml")
	want := `<a:bodyPr/>` +
		`<a:p><a:r><a:rPr lang="en-US" sz="1800"/><a:t>Ann</a:t></a:r></a:p>` +
		`<a:p><a:r><a:rPr lang="en-US" sz="1800"/><a:t>a@x.com &amp; co</a:t></a:r></a:p>` +
		`<a:p><a:r><a:rPr lang="en-US" sz="1800"/><a:t>HQ</a:t></a:r></a:p>` +
		`</p:txBody>`
	if !strings.Contains(slide, want) {
		t.Errorf("slide = %s\nwant one paragraph per line", slide)
	}
	if strings.Contains(slide, "{{selection}}") {
		t.Error("selection marker survived")
	}
	if got := readPart(t, p, "ppt/slides/slide2.xml"); got != slideWithoutMarker {
		t.Errorf("unmarked slide changed: %s", got)
	}
}

func TestPresentation_FirstMarkedSlideWins(t *testing.T) {
	t.Parallel()

	p := writeZip(t, t.TempDir(), "deck.pptx",
		"ppt/slides/slide3.xml", slideWithMarker,
		"ppt/slides/slide1.xml", slideWithMarker,
	)

	pres, err := ooxml.OpenPresentation(p, "")
	if err != nil {
		t.Fatal(err)
	}
	if err := pres.ReplaceSelection(context.Background(), "Ann\n"); err != nil {
		t.Fatal(err)
	}

	if got := readPart(t, p, "ppt/slides/slide1.xml"); strings.Contains(got, "{{selection}}") {
		t.Error("slide1 not replaced")
	}
	if got := readPart(t, p, "ppt/slides/slide3.xml"); !strings.Contains(got, "{{selection}}") {
		t.Error("slide3 replaced; only the first marked slide should change")
	}
}

func TestPresentation_CustomMarker(t *testing.T) {
	t.Parallel()

	slide := strings.ReplaceAll(slideWithMarker, "{{selection}}", "[here]")
	p := writeZip(t, t.TempDir(), "deck.pptx", "ppt/slides/slide1.xml", slide)

	pres, err := ooxml.OpenPresentation(p, "[here]")
	if err != nil {
		t.Fatal(err)
	}
	if err := pres.ReplaceSelection(context.Background(), "Ann\n"); err != nil {
		t.Fatalf("ReplaceSelection() unexpected error: %v", err)
	}
	if got := readPart(t, p, "ppt/slides/slide1.xml"); !strings.Contains(got, "<a:t>Ann</a:t>") {
		t.Errorf("slide = %s", got)
	}
}

func TestPresentation_EmptyText(t *testing.T) {
	t.Parallel()

	p := writeZip(t, t.TempDir(), "deck.pptx", "ppt/slides/slide1.xml", slideWithMarker)
	pres, err := ooxml.OpenPresentation(p, "")
	if err != nil {
		t.Fatal(err)
	}
	if err := pres.ReplaceSelection(context.Background(), ""); err != nil {
		t.Fatalf("ReplaceSelection() unexpected error: %v", err)
	}
	if got := readPart(t, p, "ppt/slides/slide1.xml"); !strings.Contains(got, "<a:bodyPr/><a:p/></p:txBody>") {
		t.Errorf("slide = %s", got)
	}
}

func TestPresentation_NoMarker(t *testing.T) {
	t.Parallel()

	p := writeZip(t, t.TempDir(), "deck.pptx", "ppt/slides/slide1.xml", slideWithoutMarker)
	pres, err := ooxml.OpenPresentation(p, "")
	if err != nil {
		t.Fatal(err)
	}
	err = pres.ReplaceSelection(context.Background(), "Ann\n")
	if !errors.Is(err, ooxml.ErrNoSelection) {
		t.Errorf("ReplaceSelection() error = %v, want %v", err, ooxml.ErrNoSelection)
	}
}

func TestOpenPresentation_Missing(t *testing.T) {
	t.Parallel()

	if _, err := ooxml.OpenPresentation(filepath.Join(t.TempDir(), "none.pptx"), ""); err == nil {
		t.Error("OpenPresentation() accepted a missing file")
	}
}
