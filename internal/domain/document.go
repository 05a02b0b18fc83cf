package domain

import "fmt"

// Document is a single search hit as returned by the index (opaque field map).
type Document map[string]any

// ID returns the document identifier ("id" field), or "" when absent.
func (d Document) ID() string {
	switch v := d["id"].(type) {
	case string:
		return v
	case nil:
		return ""
	default:
		return fmt.Sprint(v)
	}
}
