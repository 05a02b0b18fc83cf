package collection

import (
	"fmt"
	"strings"
)

// Descriptor identifies a searchable collection (immutable value object).
type Descriptor struct {
	name        string
	displayName string
}

// NewDescriptor validates and creates a Descriptor.
// Name is the identifier used in API calls; an empty display name falls back to it.
func NewDescriptor(name, displayName string) (Descriptor, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Descriptor{}, fmt.Errorf("collection name is required")
	}
	displayName = strings.TrimSpace(displayName)
	if displayName == "" {
		displayName = name
	}
	return Descriptor{name: name, displayName: displayName}, nil
}

// Name returns the collection identifier.
func (d Descriptor) Name() string { return d.name }

// DisplayName returns the presentation label.
func (d Descriptor) DisplayName() string { return d.displayName }

// Normalize trims names, drops blanks and duplicates, preserving first-seen order.
func Normalize(names []string) []string {
	seen := make(map[string]struct{}, len(names))
	out := make([]string, 0, len(names))
	for _, n := range names {
		n = strings.TrimSpace(n)
		if n == "" {
			continue
		}
		if _, ok := seen[n]; ok {
			continue
		}
		seen[n] = struct{}{}
		out = append(out, n)
	}
	return out
}
