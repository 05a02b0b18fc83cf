// Package preferences holds per-profile desk settings.
package preferences

import "github.com/kailas-cloud/solrdesk/internal/domain/collection"

// Preferences are the persisted choices of one desk profile.
type Preferences struct {
	Collections      []string `json:"collections"`
	ActiveCollection string   `json:"active_collection,omitempty"`
	Language         string   `json:"language,omitempty"`
}

// Normalized returns a copy with cleaned collection names. An active
// collection outside the selection is dropped.
func (p Preferences) Normalized() Preferences {
	out := Preferences{
		Collections: collection.Normalize(p.Collections),
		Language:    p.Language,
	}
	for _, c := range out.Collections {
		if c == p.ActiveCollection {
			out.ActiveCollection = c
			break
		}
	}
	return out
}

// IsZero reports whether nothing has been saved.
func (p Preferences) IsZero() bool {
	return len(p.Collections) == 0 && p.ActiveCollection == "" && p.Language == ""
}
