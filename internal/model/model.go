// Package model defines the persisted entity records and their canonical
// JSON representations. Entity structs mirror table rows one to one and
// are used by the repository layer; the View types are what handlers send
// over the wire. Keeping the two apart means a stored field (such as a
// password hash) is only ever exposed when its View says so.
package model

import "time"

const dateLayout = "2006-01-02"

// DateString renders an optional calendar date as YYYY-MM-DD, or nil when
// unset, for JSON output.
func DateString(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(dateLayout)
	return &s
}

// Timestamp renders a stored UTC datetime in RFC 3339 form.
func Timestamp(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

func timestampPtr(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := Timestamp(*t)
	return &s
}
