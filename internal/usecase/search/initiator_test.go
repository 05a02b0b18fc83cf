package search

import (
	"context"
	"errors"
	"testing"

	"github.com/kailas-cloud/solrdesk/internal/domain"
	"github.com/kailas-cloud/solrdesk/internal/domain/search/cursor"
	"github.com/kailas-cloud/solrdesk/internal/domain/search/page"
	"github.com/kailas-cloud/solrdesk/internal/domain/search/result"
)

func begin(t *testing.T, agg *result.Aggregator, query string) result.Token {
	t.Helper()
	tok, started := agg.Begin(query, []string{"docs", "images"})
	if !started {
		t.Fatalf("Begin(%q) did not start a new generation", query)
	}
	return tok
}

func TestInitiator_SeedsStartForUnknownCollections(t *testing.T) {
	api := &mockAPI{}
	in := NewInitiator(api)
	tok := begin(t, result.NewAggregator(9), "alpha")
	in.Reset(tok)

	if _, err := in.Fetch(context.Background(), tok, []string{"docs", "images"}, cursor.Marks{"docs": "c1"}); err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	call := api.lastCall()
	if call.query != "alpha" {
		t.Errorf("query = %q, want alpha", call.query)
	}
	if call.marks["docs"] != "c1" || call.marks["images"] != cursor.Start {
		t.Errorf("marks = %v", call.marks)
	}
	if len(in.Pages()) != 1 {
		t.Errorf("pages = %d, want 1", len(in.Pages()))
	}
}

func TestInitiator_Validation(t *testing.T) {
	api := &mockAPI{}
	in := NewInitiator(api)

	if _, err := in.Fetch(context.Background(), result.Token{}, []string{"docs"}, nil); !errors.Is(err, domain.ErrEmptyQuery) {
		t.Errorf("expected ErrEmptyQuery, got %v", err)
	}
	tok := begin(t, result.NewAggregator(9), "alpha")
	if _, err := in.Fetch(context.Background(), tok, nil, nil); !errors.Is(err, domain.ErrNoCollections) {
		t.Errorf("expected ErrNoCollections, got %v", err)
	}
	if api.callCount() != 0 {
		t.Error("expected no requests")
	}
}

func TestInitiator_ErrorNotRecorded(t *testing.T) {
	api := &mockAPI{searchFn: func(_ context.Context, _ string, _ []string, _ cursor.Marks) (*page.Page, error) {
		return nil, domain.NewStatusError("search", 500, "")
	}}
	in := NewInitiator(api)
	tok := begin(t, result.NewAggregator(9), "alpha")
	in.Reset(tok)

	if _, err := in.Fetch(context.Background(), tok, []string{"docs"}, nil); !errors.Is(err, domain.ErrUpstream) {
		t.Errorf("expected ErrUpstream, got %v", err)
	}
	if api.callCount() != 1 {
		t.Errorf("expected exactly one request, got %d", api.callCount())
	}
	if len(in.Pages()) != 0 {
		t.Error("failed fetch must not be recorded")
	}
}

func TestInitiator_PagesOfOtherGenerationIgnored(t *testing.T) {
	agg := result.NewAggregator(9)
	in := NewInitiator(&mockAPI{})
	old := begin(t, agg, "alpha")
	in.Reset(old)
	in.Reset(begin(t, agg, "beta"))

	if _, err := in.Fetch(context.Background(), old, []string{"docs"}, nil); err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if len(in.Pages()) != 0 {
		t.Error("page of a superseded query must not be recorded")
	}
}

func TestInitiator_LateResetOfOlderGenerationIgnored(t *testing.T) {
	agg := result.NewAggregator(9)
	in := NewInitiator(&mockAPI{})
	q2 := begin(t, agg, "q2")
	q3 := begin(t, agg, "q3")

	// the q3 search resets first; the q2 reset lands afterwards
	in.Reset(q3)
	in.Reset(q2)

	if _, err := in.Fetch(context.Background(), q2, []string{"docs"}, nil); err != nil {
		t.Fatalf("Fetch(q2): %v", err)
	}
	if _, err := in.Fetch(context.Background(), q3, []string{"docs"}, nil); err != nil {
		t.Fatalf("Fetch(q3): %v", err)
	}
	if got := len(in.Pages()); got != 1 {
		t.Fatalf("pages = %d, want only the q3 page", got)
	}
}
