// Package host defines the document hosts profile data can be written to
// and the collaborator interfaces each host backend implements.
package host

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Kind identifies the host application owning the target document.
// The zero value is Unknown.
type Kind int

const (
	Unknown Kind = iota
	Spreadsheet
	Mail
	Presentation
	DocumentEditor
)

// String returns the lower-case host name.
func (k Kind) String() string {
	switch k {
	case Spreadsheet:
		return "spreadsheet"
	case Mail:
		return "mail"
	case Presentation:
		return "presentation"
	case DocumentEditor:
		return "document"
	case Unknown:
		return "unknown"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// kindNames maps accepted names, including application aliases, to kinds.
var kindNames = map[string]Kind{
	"spreadsheet":  Spreadsheet,
	"excel":        Spreadsheet,
	"mail":         Mail,
	"outlook":      Mail,
	"presentation": Presentation,
	"powerpoint":   Presentation,
	"document":     DocumentEditor,
	"word":         DocumentEditor,
}

// ParseKind converts a user-supplied host name to a Kind.
func ParseKind(s string) (Kind, error) {
	k, ok := kindNames[strings.ToLower(strings.TrimSpace(s))]
	if !ok {
		return Unknown, fmt.Errorf("%w: %q (valid: spreadsheet, mail, presentation, document)", ErrUnknownKind, s)
	}
	return k, nil
}

// GraphDraftScheme prefixes mail targets that live in a Graph mailbox.
// "graph:draft" creates a new draft, "graph:draft/<id>" edits an existing one.
const GraphDraftScheme = "graph:draft"

// Detect infers the host kind from a target reference.
// Unrecognized targets yield Unknown; the dispatcher rejects them.
func Detect(target string) Kind {
	if IsGraphDraft(target) {
		return Mail
	}
	switch strings.ToLower(filepath.Ext(target)) {
	case ".xlsx", ".xlsm":
		return Spreadsheet
	case ".docx":
		return DocumentEditor
	case ".pptx":
		return Presentation
	case ".html", ".htm":
		return Mail
	default:
		return Unknown
	}
}

// IsGraphDraft reports whether target names a Graph mail draft.
func IsGraphDraft(target string) bool {
	return target == GraphDraftScheme || strings.HasPrefix(target, GraphDraftScheme+"/")
}

// GraphDraftID returns the draft id of a "graph:draft/<id>" target,
// or "" for a new draft.
func GraphDraftID(target string) string {
	return strings.TrimPrefix(strings.TrimPrefix(target, GraphDraftScheme), "/")
}
