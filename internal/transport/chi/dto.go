package chi

import (
	"time"

	"github.com/kailas-cloud/solrdesk/internal/domain"
	"github.com/kailas-cloud/solrdesk/internal/domain/search/result"
	domtr "github.com/kailas-cloud/solrdesk/internal/domain/translation"
	searchuc "github.com/kailas-cloud/solrdesk/internal/usecase/search"
	translationuc "github.com/kailas-cloud/solrdesk/internal/usecase/translation"
)

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	Status  string            `json:"status"`
	Version string            `json:"version"`
	Checks  map[string]string `json:"checks"`
}

// CollectionResponse describes one searchable collection.
type CollectionResponse struct {
	Name        string `json:"name"`
	DisplayName string `json:"display_name"`
}

// CollectionListResponse is the body of GET /api/collections.
type CollectionListResponse struct {
	Collections []CollectionResponse `json:"collections"`
}

// CreateSessionRequest is the optional body of POST /api/sessions.
type CreateSessionRequest struct {
	Profile string `json:"profile"`
}

// SessionResponse describes a newly created session.
type SessionResponse struct {
	SessionID string    `json:"session_id"`
	Profile   string    `json:"profile"`
	CreatedAt time.Time `json:"created_at"`
}

// SearchRequest is the body of POST /api/sessions/{session}/search.
type SearchRequest struct {
	Query       string   `json:"query"`
	Collections []string `json:"collections"`
}

// LoadMoreAllRequest is the optional body of POST /api/sessions/{session}/more.
type LoadMoreAllRequest struct {
	Collections []string `json:"collections"`
}

// SelectRequest is the body of PUT /api/sessions/{session}/active.
type SelectRequest struct {
	Collection string `json:"collection"`
}

// SnapshotResponse is the aggregation state of a session.
type SnapshotResponse struct {
	SessionID   string                    `json:"session_id"`
	Query       string                    `json:"query"`
	State       string                    `json:"state"`
	Epoch       uint64                    `json:"epoch"`
	Active      string                    `json:"active_collection,omitempty"`
	Error       string                    `json:"error,omitempty"`
	Collections []CollectionStateResponse `json:"collections"`
	View        *PageViewResponse         `json:"view,omitempty"`
}

// CollectionStateResponse is one collection tab.
type CollectionStateResponse struct {
	Name      string `json:"name"`
	Count     int    `json:"count"`
	NumFound  int    `json:"num_found"`
	Cursor    string `json:"cursor"`
	Fetched   bool   `json:"fetched"`
	Exhausted bool   `json:"exhausted"`
	Disabled  bool   `json:"disabled"`
	Page      int    `json:"page"`
	PageCount int    `json:"page_count"`
	Error     string `json:"error,omitempty"`
}

// PageViewResponse is one local page of documents.
type PageViewResponse struct {
	Collection string            `json:"collection"`
	Page       int               `json:"page"`
	PageCount  int               `json:"page_count"`
	PageSize   int               `json:"page_size"`
	Total      int               `json:"total"`
	Exhausted  bool              `json:"exhausted"`
	Documents  []domain.Document `json:"documents"`
}

// LoadMoreResponse is the outcome of one load-more fetch.
type LoadMoreResponse struct {
	Collection string                  `json:"collection"`
	Fetched    int                     `json:"fetched"`
	Cursor     string                  `json:"cursor"`
	Exhausted  bool                    `json:"exhausted"`
	State      CollectionStateResponse `json:"state"`
}

// LoadMoreAllResponse is the outcome of a concurrent load-more.
type LoadMoreAllResponse struct {
	Results  []LoadMoreResponse `json:"results"`
	Errors   []string           `json:"errors,omitempty"`
	Snapshot SnapshotResponse   `json:"snapshot"`
}

// TranslationRequest is the body of translation writes.
type TranslationRequest struct {
	Key      string `json:"key"`
	Language string `json:"language"`
	Value    string `json:"value"`
}

// TranslationResponse is one translation record.
type TranslationResponse struct {
	ID       string `json:"id"`
	Key      string `json:"key"`
	Language string `json:"language"`
	Value    string `json:"value"`
}

// TranslationListResponse is the body of GET /api/translations.
type TranslationListResponse struct {
	Translations []TranslationResponse `json:"translations"`
}

// ImportResponse summarizes a CSV import.
type ImportResponse struct {
	Created int      `json:"created"`
	Updated int      `json:"updated"`
	Skipped int      `json:"skipped"`
	Failed  int      `json:"failed"`
	Errors  []string `json:"errors,omitempty"`
}

func snapshotToResponse(id string, snap result.Snapshot) SnapshotResponse {
	resp := SnapshotResponse{
		SessionID:   id,
		Query:       snap.Query,
		State:       string(snap.State),
		Epoch:       snap.Epoch,
		Active:      snap.Active,
		Error:       errString(snap.Err),
		Collections: make([]CollectionStateResponse, len(snap.Collections)),
	}
	for i, c := range snap.Collections {
		resp.Collections[i] = collectionStateToResponse(c)
	}
	return resp
}

func collectionStateToResponse(c result.CollectionState) CollectionStateResponse {
	return CollectionStateResponse{
		Name:      c.Name,
		Count:     c.Count,
		NumFound:  c.NumFound,
		Cursor:    c.Cursor.String(),
		Fetched:   c.Fetched,
		Exhausted: c.Exhausted,
		Disabled:  c.Disabled,
		Page:      c.Page,
		PageCount: c.PageCount,
		Error:     errString(c.Err),
	}
}

func pageViewToResponse(v result.PageView) PageViewResponse {
	docs := v.Documents
	if docs == nil {
		docs = []domain.Document{}
	}
	return PageViewResponse{
		Collection: v.Collection,
		Page:       v.Page,
		PageCount:  v.PageCount,
		PageSize:   v.PageSize,
		Total:      v.Total,
		Exhausted:  v.Exhausted,
		Documents:  docs,
	}
}

func laneResultToResponse(col string, res searchuc.LaneResult, snap result.Snapshot) LoadMoreResponse {
	state, _ := snap.Collection(col)
	return LoadMoreResponse{
		Collection: col,
		Fetched:    len(res.Documents),
		Cursor:     res.Cursor.String(),
		Exhausted:  res.Exhausted,
		State:      collectionStateToResponse(state),
	}
}

func translationToResponse(t domtr.Translation) TranslationResponse {
	return TranslationResponse{ID: t.ID(), Key: t.Key(), Language: t.Language(), Value: t.Value()}
}

func importReportToResponse(rep translationuc.ImportReport) ImportResponse {
	resp := ImportResponse{
		Created: rep.Created,
		Updated: rep.Updated,
		Skipped: rep.Skipped,
		Failed:  rep.Failed,
	}
	for _, err := range rep.Errors() {
		resp.Errors = append(resp.Errors, err.Error())
	}
	return resp
}

func errString(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
