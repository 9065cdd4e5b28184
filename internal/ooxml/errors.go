package ooxml

import "errors"

var (
	// ErrMissingPart indicates the package lacks a required part, such as word/document.xml.
	ErrMissingPart = errors.New("missing package part")

	// ErrMalformedPart indicates a part lacks the element a write needs.
	ErrMalformedPart = errors.New("malformed package part")

	// ErrNoSelection indicates no slide carries the selection marker.
	ErrNoSelection = errors.New("no selection marker found")
)
