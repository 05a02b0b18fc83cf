package result

import (
	"github.com/kailas-cloud/solrdesk/internal/domain"
	"github.com/kailas-cloud/solrdesk/internal/domain/search/cursor"
)

// Snapshot is a point-in-time copy of an Aggregator.
type Snapshot struct {
	Query       string
	State       State
	Epoch       uint64
	Active      string
	Err         error
	Collections []CollectionState
}

// Collection returns the state of one collection.
func (s Snapshot) Collection(name string) (CollectionState, bool) {
	for _, c := range s.Collections {
		if c.Name == name {
			return c, true
		}
	}
	return CollectionState{}, false
}

// CollectionState describes one collection tab.
// Disabled is true while no document has been accumulated.
type CollectionState struct {
	Name      string
	Count     int
	NumFound  int
	Cursor    cursor.Mark
	Fetched   bool
	Exhausted bool
	Disabled  bool
	Page      int
	PageCount int
	Err       error
}

// PageView is one local page of a collection.
type PageView struct {
	Collection string
	Page       int
	PageCount  int
	PageSize   int
	Total      int
	Exhausted  bool
	Documents  []domain.Document
}
