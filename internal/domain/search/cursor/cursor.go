// Package cursor holds the opaque per-collection pagination tokens issued by the index.
package cursor

// Mark is a server-issued cursor token, valid only for the (query, collection)
// pair it was issued under.
type Mark string

// Start is the sentinel mark of the first page.
const Start Mark = "*"

// String returns the raw token.
func (m Mark) String() string { return string(m) }

// OrStart returns Start for an empty mark.
func OrStart(m Mark) Mark {
	if m == "" {
		return Start
	}
	return m
}

// Marks maps collection names to their latest cursor.
type Marks map[string]Mark

// For returns the mark of a collection, Start when unknown.
func (m Marks) For(collection string) Mark {
	return OrStart(m[collection])
}

// Subset returns marks for the given collections, seeding Start for unknown ones.
func (m Marks) Subset(collections []string) Marks {
	c := make(Marks, len(collections))
	for _, col := range collections {
		c[col] = m.For(col)
	}
	return c
}
