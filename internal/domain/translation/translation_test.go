package translation

import (
	"errors"
	"testing"

	"github.com/kailas-cloud/solrdesk/internal/domain"
)

func TestNew_Valid(t *testing.T) {
	tr, err := New(" greeting ", "en", "Hello")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tr.Key() != "greeting" || tr.Language() != "en" || tr.Value() != "Hello" {
		t.Errorf("got %+v", tr)
	}
	if tr.ID() != "" {
		t.Errorf("ID() = %q, want empty", tr.ID())
	}
}

func TestNew_MissingFields(t *testing.T) {
	tests := []struct {
		name, key, lang, value string
	}{
		{"no key", "", "en", "Hello"},
		{"no language", "greeting", " ", "Hello"},
		{"no value", "greeting", "en", "  "},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := New(tc.key, tc.lang, tc.value)
			if !errors.Is(err, domain.ErrValidation) {
				t.Errorf("expected ErrValidation, got %v", err)
			}
		})
	}
}

func TestNew_KeyTooLong(t *testing.T) {
	long := make([]byte, MaxKeyLength+1)
	for i := range long {
		long[i] = 'k'
	}
	if _, err := New(string(long), "en", "v"); err == nil {
		t.Fatal("expected error for long key")
	}
}

func TestWithIDAndPair(t *testing.T) {
	tr := Reconstruct("", "greeting", "en", "Hello").WithID("42")
	if tr.ID() != "42" {
		t.Errorf("ID() = %q", tr.ID())
	}
	if got := tr.Pair(); got != (Pair{Key: "greeting", Language: "en"}) {
		t.Errorf("Pair() = %+v", got)
	}
	if got := tr.Pair().String(); got != "greeting@en" {
		t.Errorf("Pair().String() = %q", got)
	}
}
