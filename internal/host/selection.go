package host

import "strings"

// DefaultSelectionMarker stands in for the cursor in file-backed hosts.
const DefaultSelectionMarker = "{{selection}}"

// InsertAtSelection replaces the first occurrence of marker in doc with
// fragment. Without a marker the fragment goes before a closing </body>
// tag if doc has one, otherwise at the end.
func InsertAtSelection(doc, fragment, marker string) string {
	if marker != "" {
		if i := strings.Index(doc, marker); i >= 0 {
			return doc[:i] + fragment + doc[i+len(marker):]
		}
	}
	if i := lastIndexFold(doc, "</body>"); i >= 0 {
		return doc[:i] + fragment + doc[i:]
	}
	return doc + fragment
}

// lastIndexFold is strings.LastIndex with ASCII case folding. Byte offsets
// stay valid for doc, unlike searching a lowered copy.
func lastIndexFold(doc, tag string) int {
	for i := len(doc) - len(tag); i >= 0; i-- {
		if strings.EqualFold(doc[i:i+len(tag)], tag) {
			return i
		}
	}
	return -1
}
