package cursor

import "testing"

func TestOrStart(t *testing.T) {
	if got := OrStart(""); got != Start {
		t.Errorf("OrStart(\"\") = %q, want %q", got, Start)
	}
	if got := OrStart("abc"); got != "abc" {
		t.Errorf("OrStart(abc) = %q", got)
	}
}

func TestMarks_ForAndSubset(t *testing.T) {
	m := Marks{"docs": "c1"}
	if got := m.For("docs"); got != "c1" {
		t.Errorf("For(docs) = %q", got)
	}
	if got := m.For("images"); got != Start {
		t.Errorf("For(images) = %q, want start", got)
	}

	sub := m.Subset([]string{"images", "docs"})
	if len(sub) != 2 || sub["docs"] != "c1" || sub["images"] != Start {
		t.Errorf("Subset() = %v", sub)
	}
}
