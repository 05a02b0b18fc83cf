package solrdesk

import (
	"github.com/kailas-cloud/solrdesk/internal/domain"
	domcol "github.com/kailas-cloud/solrdesk/internal/domain/collection"
	dompref "github.com/kailas-cloud/solrdesk/internal/domain/preferences"
	"github.com/kailas-cloud/solrdesk/internal/domain/search/result"
	domtr "github.com/kailas-cloud/solrdesk/internal/domain/translation"
	searchuc "github.com/kailas-cloud/solrdesk/internal/usecase/search"
	translationuc "github.com/kailas-cloud/solrdesk/internal/usecase/translation"
)

// Document is a search hit as returned by the index (opaque field map).
type Document map[string]any

// ID returns the document identifier ("id" field), or "" when absent.
func (d Document) ID() string { return domain.Document(d).ID() }

// CollectionInfo describes a searchable collection.
type CollectionInfo struct {
	Name        string
	DisplayName string
}

// SearchState is the lifecycle stage of a search.
type SearchState string

// Search states.
const (
	StateIdle      SearchState = "idle"
	StateSearching SearchState = "searching"
	StatePopulated SearchState = "populated"
	StateFailed    SearchState = "failed"
)

// Snapshot is the aggregation state of a search session.
type Snapshot struct {
	Query       string
	State       SearchState
	Active      string
	Err         error
	Collections []CollectionState
}

// CollectionState describes one collection of a search.
type CollectionState struct {
	Name      string
	Count     int
	NumFound  int
	Cursor    string
	Exhausted bool
	Disabled  bool
	Page      int
	PageCount int
	Err       error
}

// Page is one local page of accumulated documents.
type Page struct {
	Collection string
	Number     int
	PageCount  int
	Total      int
	Exhausted  bool
	Documents  []Document
}

// Batch is the outcome of one load-more fetch.
type Batch struct {
	Collection string
	Documents  []Document
	Cursor     string
	Exhausted  bool
}

// Translation is one localized string.
type Translation struct {
	ID       string
	Key      string
	Language string
	Value    string
}

// ImportReport summarizes a CSV import.
type ImportReport struct {
	Created int
	Updated int
	Skipped int
	Failed  int
	Errors  []error
}

// Preferences are the persisted choices of one profile.
type Preferences struct {
	Collections      []string
	ActiveCollection string
	Language         string
}

func fromInternalDocuments(in []domain.Document) []Document {
	out := make([]Document, len(in))
	for i, d := range in {
		out[i] = Document(d)
	}
	return out
}

func fromInternalCollection(d domcol.Descriptor) CollectionInfo {
	return CollectionInfo{Name: d.Name(), DisplayName: d.DisplayName()}
}

func fromInternalSnapshot(s result.Snapshot) Snapshot {
	out := Snapshot{
		Query:       s.Query,
		State:       SearchState(s.State),
		Active:      s.Active,
		Err:         s.Err,
		Collections: make([]CollectionState, len(s.Collections)),
	}
	for i, c := range s.Collections {
		out.Collections[i] = CollectionState{
			Name:      c.Name,
			Count:     c.Count,
			NumFound:  c.NumFound,
			Cursor:    c.Cursor.String(),
			Exhausted: c.Exhausted,
			Disabled:  c.Disabled,
			Page:      c.Page,
			PageCount: c.PageCount,
			Err:       c.Err,
		}
	}
	return out
}

func fromInternalView(v result.PageView) Page {
	return Page{
		Collection: v.Collection,
		Number:     v.Page,
		PageCount:  v.PageCount,
		Total:      v.Total,
		Exhausted:  v.Exhausted,
		Documents:  fromInternalDocuments(v.Documents),
	}
}

func fromInternalLane(col string, r searchuc.LaneResult) Batch {
	return Batch{
		Collection: col,
		Documents:  fromInternalDocuments(r.Documents),
		Cursor:     r.Cursor.String(),
		Exhausted:  r.Exhausted,
	}
}

func fromInternalTranslation(t domtr.Translation) Translation {
	return Translation{ID: t.ID(), Key: t.Key(), Language: t.Language(), Value: t.Value()}
}

func fromInternalReport(r translationuc.ImportReport) ImportReport {
	return ImportReport{
		Created: r.Created,
		Updated: r.Updated,
		Skipped: r.Skipped,
		Failed:  r.Failed,
		Errors:  r.Errors(),
	}
}

func fromInternalPreferences(p dompref.Preferences) Preferences {
	return Preferences{
		Collections:      p.Collections,
		ActiveCollection: p.ActiveCollection,
		Language:         p.Language,
	}
}

func toInternalPreferences(p Preferences) dompref.Preferences {
	return dompref.Preferences{
		Collections:      p.Collections,
		ActiveCollection: p.ActiveCollection,
		Language:         p.Language,
	}
}
