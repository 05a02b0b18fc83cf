package solrapi

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/kailas-cloud/solrdesk/internal/domain"
	"github.com/kailas-cloud/solrdesk/internal/domain/collection"
	"github.com/kailas-cloud/solrdesk/internal/domain/search/cursor"
	"github.com/kailas-cloud/solrdesk/internal/domain/search/page"
	"github.com/kailas-cloud/solrdesk/internal/domain/translation"
)

type searchRequest struct {
	Query           string            `json:"query"`
	SolrCollections []string          `json:"solrCollections"`
	CursorMarks     map[string]string `json:"cursorMarks"`
}

type searchResponse struct {
	Results         map[string][]map[string]any `json:"results"`
	NextCursorMarks map[string]string           `json:"nextCursorMarks"`
	NumFound        map[string]int              `json:"numFound"`
}

func (r *searchResponse) toPage() *page.Page {
	results := make(map[string][]domain.Document, len(r.Results))
	for col, docs := range r.Results {
		out := make([]domain.Document, len(docs))
		for i, d := range docs {
			out[i] = domain.Document(d)
		}
		results[col] = out
	}
	next := make(cursor.Marks, len(r.NextCursorMarks))
	for col, m := range r.NextCursorMarks {
		next[col] = cursor.Mark(m)
	}
	return page.New(results, next, r.NumFound)
}

type collectionsResponse struct {
	Collections []collectionDTO `json:"collections"`
}

// collectionDTO accepts either a bare name or {collectionName, displayName}.
type collectionDTO struct {
	CollectionName string `json:"collectionName"`
	DisplayName    string `json:"displayName"`
}

func (c *collectionDTO) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var name string
		if err := json.Unmarshal(data, &name); err != nil {
			return fmt.Errorf("collection name: %w", err)
		}
		*c = collectionDTO{CollectionName: name}
		return nil
	}

	type plain collectionDTO
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return fmt.Errorf("collection descriptor: %w", err)
	}
	*c = collectionDTO(p)
	return nil
}

type translationDTO struct {
	ID       string `json:"_id,omitempty"`
	Key      string `json:"key"`
	Language string `json:"language"`
	Value    string `json:"value"`
}

func translationToDTO(t translation.Translation) translationDTO {
	return translationDTO{ID: t.ID(), Key: t.Key(), Language: t.Language(), Value: t.Value()}
}

func (d translationDTO) toDomain() translation.Translation {
	return translation.Reconstruct(d.ID, d.Key, d.Language, d.Value)
}

// translationList accepts a bare array or {"translations": [...]}.
type translationList []translationDTO

func (l *translationList) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '[' {
		var items []translationDTO
		if err := json.Unmarshal(data, &items); err != nil {
			return fmt.Errorf("translations: %w", err)
		}
		*l = items
		return nil
	}
	var wrapped struct {
		Translations []translationDTO `json:"translations"`
	}
	if err := json.Unmarshal(data, &wrapped); err != nil {
		return fmt.Errorf("translations: %w", err)
	}
	*l = wrapped.Translations
	return nil
}

func descriptorsFromDTO(items []collectionDTO) ([]collection.Descriptor, []error) {
	out := make([]collection.Descriptor, 0, len(items))
	var errs []error
	for i, it := range items {
		d, err := collection.NewDescriptor(it.CollectionName, it.DisplayName)
		if err != nil {
			errs = append(errs, fmt.Errorf("collections[%d]: %w", i, err))
			continue
		}
		out = append(out, d)
	}
	return out, errs
}
