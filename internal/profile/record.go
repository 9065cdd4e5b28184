// Package profile models a directory profile record and selects the
// fields rendered into host documents.
//
// A Record is the untyped shape returned by a Microsoft Graph /me call.
// Any key may be missing, null, or carry the literal string "undefined";
// all three read as absent.
package profile

import (
	"fmt"
	"strconv"
	"strings"
)

// Recognized record keys.
const (
	KeyDisplayName    = "displayName"
	KeyJobTitle       = "jobTitle"
	KeyMail           = "mail"
	KeyMobilePhone    = "mobilePhone"
	KeyOfficeLocation = "officeLocation"
	KeyBusinessPhones = "businessPhones"
	KeyGivenName      = "givenName"
	KeySurname        = "surname"
)

// Keys lists every recognized key, in the order used for Graph $select.
var Keys = []string{
	KeyDisplayName,
	KeyGivenName,
	KeySurname,
	KeyJobTitle,
	KeyMail,
	KeyMobilePhone,
	KeyOfficeLocation,
	KeyBusinessPhones,
}

// undefinedSentinel is the marker some clients write for a missing value.
const undefinedSentinel = "undefined"

// Record is a profile record keyed by Graph property name.
type Record map[string]any

// String returns the value stored under key and whether it is present.
// Non-string scalars are formatted with fmt; sequences are not strings
// and report absent.
func (r Record) String(key string) (string, bool) {
	v, ok := r[key]
	if !ok {
		return "", false
	}
	return scalar(v)
}

// Strings returns the present elements of the sequence stored under key.
// A scalar value is treated as a one-element sequence.
func (r Record) Strings(key string) []string {
	v, ok := r[key]
	if !ok || v == nil {
		return nil
	}

	var items []any
	switch t := v.(type) {
	case []any:
		items = t
	case []string:
		items = make([]any, len(t))
		for i, s := range t {
			items[i] = s
		}
	default:
		items = []any{t}
	}

	out := make([]string, 0, len(items))
	for _, item := range items {
		if s, ok := scalar(item); ok {
			out = append(out, s)
		}
	}
	return out
}

// FirstString returns the first present element of the sequence under key.
func (r Record) FirstString(key string) (string, bool) {
	values := r.Strings(key)
	if len(values) == 0 {
		return "", false
	}
	return values[0], true
}

// scalar converts a JSON scalar to its display string.
func scalar(v any) (string, bool) {
	switch t := v.(type) {
	case nil:
		return "", false
	case string:
		if t == undefinedSentinel {
			return "", false
		}
		return t, true
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64), true
	case []any, []string, map[string]any:
		return "", false
	default:
		return strings.TrimSpace(fmt.Sprint(t)), true
	}
}
