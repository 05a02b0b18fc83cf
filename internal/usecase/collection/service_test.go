package collection

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/kailas-cloud/solrdesk/internal/domain"
	domcol "github.com/kailas-cloud/solrdesk/internal/domain/collection"
)

// --- Mocks ---

type mockLister struct {
	result []domcol.Descriptor
	err    error
	calls  int
}

func (m *mockLister) Collections(_ context.Context) ([]domcol.Descriptor, error) {
	m.calls++
	return m.result, m.err
}

func descriptor(t *testing.T, name, display string) domcol.Descriptor {
	t.Helper()
	d, err := domcol.NewDescriptor(name, display)
	if err != nil {
		t.Fatalf("NewDescriptor: %v", err)
	}
	return d
}

// --- Tests ---

func TestList_CachesAnswer(t *testing.T) {
	api := &mockLister{result: []domcol.Descriptor{descriptor(t, "docs", "Documents")}}
	svc := New(api, time.Minute)

	for range 3 {
		got, err := svc.List(context.Background())
		if err != nil {
			t.Fatalf("List: %v", err)
		}
		if len(got) != 1 || got[0].DisplayName() != "Documents" {
			t.Errorf("List = %+v", got)
		}
	}
	if api.calls != 1 {
		t.Errorf("api calls = %d, want 1", api.calls)
	}
}

func TestList_NoCache(t *testing.T) {
	api := &mockLister{}
	svc := New(api, 0)

	_, _ = svc.List(context.Background())
	_, _ = svc.List(context.Background())
	if api.calls != 2 {
		t.Errorf("api calls = %d, want 2", api.calls)
	}
}

func TestRefresh_BypassesCache(t *testing.T) {
	api := &mockLister{result: []domcol.Descriptor{descriptor(t, "docs", "")}}
	svc := New(api, time.Minute)

	if _, err := svc.List(context.Background()); err != nil {
		t.Fatalf("List: %v", err)
	}
	api.result = append(api.result, descriptor(t, "images", ""))
	got, err := svc.Refresh(context.Background())
	if err != nil {
		t.Fatalf("Refresh: %v", err)
	}
	if len(got) != 2 || api.calls != 2 {
		t.Errorf("Refresh = %d collections after %d calls", len(got), api.calls)
	}
}

func TestList_DeduplicatesByName(t *testing.T) {
	api := &mockLister{result: []domcol.Descriptor{
		descriptor(t, "docs", "Documents"),
		descriptor(t, "images", ""),
		descriptor(t, "docs", "Docs again"),
	}}
	svc := New(api, time.Minute)

	got, err := svc.List(context.Background())
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	names := make([]string, len(got))
	for i, d := range got {
		names[i] = d.Name()
	}
	if !reflect.DeepEqual(names, []string{"docs", "images"}) {
		t.Errorf("List names = %v", names)
	}
}

func TestList_ErrorNotCached(t *testing.T) {
	api := &mockLister{err: domain.ErrTransport}
	svc := New(api, time.Minute)

	if _, err := svc.List(context.Background()); !errors.Is(err, domain.ErrTransport) {
		t.Fatalf("expected ErrTransport, got %v", err)
	}
	api.err = nil
	api.result = []domcol.Descriptor{descriptor(t, "docs", "")}
	got, err := svc.List(context.Background())
	if err != nil || len(got) != 1 {
		t.Errorf("List after recovery = %v, %v", got, err)
	}
}
