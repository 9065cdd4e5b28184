// Package ooxml implements the document-editor (.docx) and presentation
// (.pptx) hosts by editing Office Open XML packages in place.
package ooxml

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// part is one entry of an OOXML zip package.
type part struct {
	header zip.FileHeader
	data   []byte
}

// pkg is an OOXML package held in memory. Entry order is preserved so
// [Content_Types].xml stays first on write.
type pkg struct {
	parts []*part
}

func readPackage(path string) (*pkg, error) {
	zr, err := zip.OpenReader(path)
	if err != nil {
		return nil, fmt.Errorf("open package: %w", err)
	}
	defer func() { _ = zr.Close() }()

	p := &pkg{}
	for _, f := range zr.File {
		rc, err := f.Open()
		if err != nil {
			return nil, fmt.Errorf("open %s: %w", f.Name, err)
		}
		data, err := io.ReadAll(rc)
		_ = rc.Close()
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", f.Name, err)
		}
		p.parts = append(p.parts, &part{header: f.FileHeader, data: data})
	}
	return p, nil
}

func (p *pkg) get(name string) (*part, bool) {
	for _, pt := range p.parts {
		if pt.header.Name == name {
			return pt, true
		}
	}
	return nil, false
}

func (p *pkg) add(name string, data []byte) {
	p.parts = append(p.parts, &part{
		header: zip.FileHeader{Name: name, Method: zip.Deflate},
		data:   data,
	})
}

// newFileMode is the mode of a package written to a new path.
const newFileMode os.FileMode = 0o644

// write saves the package to path through a temp file in the same directory.
// An existing file keeps its permissions.
func (p *pkg) write(path string) error {
	mode := newFileMode
	if fi, err := os.Stat(path); err == nil {
		mode = fi.Mode().Perm()
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), ".profilestamp-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer func() { _ = os.Remove(tmpName) }()

	zw := zip.NewWriter(tmp)
	for _, pt := range p.parts {
		hdr := zip.FileHeader{
			Name:     pt.header.Name,
			Method:   pt.header.Method,
			Modified: pt.header.Modified,
		}
		w, err := zw.CreateHeader(&hdr)
		if err != nil {
			_ = tmp.Close()
			return fmt.Errorf("write %s: %w", hdr.Name, err)
		}
		if _, err := w.Write(pt.data); err != nil {
			_ = tmp.Close()
			return fmt.Errorf("write %s: %w", hdr.Name, err)
		}
	}
	if err := zw.Close(); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("finish package: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close package: %w", err)
	}
	if err := os.Chmod(tmpName, mode); err != nil {
		return fmt.Errorf("set package mode: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("replace package: %w", err)
	}
	return nil
}

// escapeText returns s escaped for XML character data.
func escapeText(s string) string {
	var buf bytes.Buffer
	_ = xml.EscapeText(&buf, []byte(s))
	return buf.String()
}
