package utak

import (
	"testing"

	"kikiks-backend/internal/catalog"
)

func newTestMatcher() *Matcher {
	return NewMatcher(catalog.Default())
}

func TestClassifyMatch(t *testing.T) {
	m := newTestMatcher()

	res := m.Classify([]Row{
		{"title": "Vanilla Langka | cup", "category": "Ice Cream", "end": "42"},
	})
	if len(res.Matched) != 1 || len(res.Unmatched) != 0 {
		t.Fatalf("unexpected partition: %+v", res)
	}
	item := res.Matched[0]
	if item.Code != "FGC-005" {
		t.Fatalf("Code = %q, want FGC-005", item.Code)
	}
	if item.EndStock != 42 {
		t.Fatalf("EndStock = %d, want 42", item.EndStock)
	}
}

func TestClassifyTitleAliases(t *testing.T) {
	m := newTestMatcher()

	cases := []struct {
		row  Row
		want string
	}{
		{Row{"product": "Ube 1L", "end": "3"}, "FGL-001"},
		{Row{"description": "Mango Gallon", "ending": "2"}, "FGG-002"},
		{Row{"title": "Durian Tray", "end stock": "9"}, "FGT-012"},
	}
	for _, tc := range cases {
		res := m.Classify([]Row{tc.row})
		if len(res.Matched) != 1 {
			t.Fatalf("row %+v did not match", tc.row)
		}
		if got := res.Matched[0].Code; got != tc.want {
			t.Errorf("row %+v -> %q, want %q", tc.row, got, tc.want)
		}
	}
}

func TestClassifyUnmatchedKeptWhenRelevant(t *testing.T) {
	m := newTestMatcher()

	res := m.Classify([]Row{
		// family keyword in the title but no flavor keyword
		{"title": "Mystery Flavor | cup", "category": "Ice Cream", "end": "4"},
		// family keyword only in the category
		{"title": "Halo-halo Special", "category": "Pint Promos", "end": "1"},
	})
	if len(res.Matched) != 0 {
		t.Fatalf("unexpected matches: %+v", res.Matched)
	}
	if len(res.Unmatched) != 2 {
		t.Fatalf("got %d unmatched, want 2", len(res.Unmatched))
	}
	if res.Unmatched[0].Code != "" {
		t.Fatalf("unmatched item carries a code: %+v", res.Unmatched[0])
	}
}

func TestClassifyDropsOutOfDomain(t *testing.T) {
	m := newTestMatcher()

	res := m.Classify([]Row{
		{"title": "Generic Merchandise Item", "category": "Apparel", "end": "12"},
	})
	if len(res.Matched) != 0 || len(res.Unmatched) != 0 {
		t.Fatalf("merchandise row not dropped: %+v", res)
	}
	if res.Dropped != 1 {
		t.Fatalf("Dropped = %d, want 1", res.Dropped)
	}
}

func TestClassifyOrderAndPartition(t *testing.T) {
	m := newTestMatcher()

	rows := []Row{
		{"title": "Ube | cup", "end": "1"},
		{"title": "Unknown | cup", "end": "2"},
		{"title": "Mango | pint", "end": "3"},
		{"title": "Another Unknown | tray", "end": "4"},
		{"title": "Cheese | gallon", "end": "5"},
	}
	res := m.Classify(rows)

	if len(res.Matched) != 3 || len(res.Unmatched) != 2 {
		t.Fatalf("unexpected partition sizes: %d/%d", len(res.Matched), len(res.Unmatched))
	}
	// input order survives within each partition
	wantMatched := []string{"Ube | cup", "Mango | pint", "Cheese | gallon"}
	for i, w := range wantMatched {
		if res.Matched[i].SourceTitle != w {
			t.Fatalf("matched[%d] = %q, want %q", i, res.Matched[i].SourceTitle, w)
		}
	}
	wantUnmatched := []string{"Unknown | cup", "Another Unknown | tray"}
	for i, w := range wantUnmatched {
		if res.Unmatched[i].SourceTitle != w {
			t.Fatalf("unmatched[%d] = %q, want %q", i, res.Unmatched[i].SourceTitle, w)
		}
	}
	// no row in both sets
	seen := map[string]bool{}
	for _, it := range res.Matched {
		seen[it.SourceTitle] = true
	}
	for _, it := range res.Unmatched {
		if seen[it.SourceTitle] {
			t.Fatalf("row %q appears in both partitions", it.SourceTitle)
		}
	}
}

func TestClassifyFirstHitFlavor(t *testing.T) {
	m := newTestMatcher()

	// "ube" is declared before "mango", so a title containing both resolves
	// to ube — first-hit, not best-match
	res := m.Classify([]Row{
		{"title": "Ube Mango Swirl | cup", "end": "2"},
	})
	if len(res.Matched) != 1 || res.Matched[0].Code != "FGC-001" {
		t.Fatalf("first-hit semantics broken: %+v", res)
	}
}

func TestClassifyStockCoercion(t *testing.T) {
	m := newTestMatcher()

	res := m.Classify([]Row{
		{"title": "Ube | cup", "end": "n/a"},
		{"title": "Mango | cup"},
	})
	if len(res.Matched) != 2 {
		t.Fatalf("got %d matched, want 2", len(res.Matched))
	}
	for _, it := range res.Matched {
		if it.EndStock != 0 {
			t.Fatalf("non-numeric stock did not coerce to 0: %+v", it)
		}
	}
}
