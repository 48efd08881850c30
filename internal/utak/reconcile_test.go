package utak

import (
	"testing"
	"time"
)

func fixedLookup(stocks map[string]int) StockLookup {
	return func(branch, code string) int {
		return stocks[branch+"/"+code]
	}
}

func TestReconcileDelta(t *testing.T) {
	in := RunInput{
		Branch:    "SM Sorsogon",
		Items:     []Item{{SourceTitle: "Vanilla Langka | cup", Code: "FGC-005", EndStock: 42}},
		TotalRows: 1,
	}
	lookup := fixedLookup(map[string]int{"SM Sorsogon/FGC-005": 30})

	res := Reconcile(in, lookup, time.Now())
	if len(res.Deltas) != 1 {
		t.Fatalf("got %d deltas, want 1", len(res.Deltas))
	}
	d := res.Deltas[0]
	if d.Before != 30 || d.Change != 12 || d.After != 42 {
		t.Fatalf("delta = %+v, want before 30 change 12 after 42", d)
	}
	if d.After-d.Before != d.Change {
		t.Fatalf("delta invariant broken: %+v", d)
	}
	if res.Upserts[0].CurrentStock != 42 || res.Upserts[0].Source != SourceUtakImport {
		t.Fatalf("unexpected upsert: %+v", res.Upserts[0])
	}
	if res.History[0].Before != 30 || res.History[0].After != 42 {
		t.Fatalf("unexpected history entry: %+v", res.History[0])
	}
}

func TestReconcileIdempotent(t *testing.T) {
	items := []Item{
		{Code: "FGC-001", EndStock: 10},
		{Code: "FGP-002", EndStock: 7},
	}
	in := RunInput{Branch: "Ayala Legazpi", Items: items, TotalRows: 2}

	stocks := map[string]int{
		"Ayala Legazpi/FGC-001": 4,
		"Ayala Legazpi/FGP-002": 9,
	}
	first := Reconcile(in, fixedLookup(stocks), time.Now())

	// apply the first run's upserts, then run again
	for _, up := range first.Upserts {
		stocks[up.Location+"/"+up.Code] = up.CurrentStock
	}
	second := Reconcile(in, fixedLookup(stocks), time.Now())

	for i := range second.Deltas {
		if second.Deltas[i].After != first.Deltas[i].After {
			t.Fatalf("after value changed between runs: %+v vs %+v", first.Deltas[i], second.Deltas[i])
		}
		if second.Deltas[i].Change != 0 {
			t.Fatalf("second run should be all zero-change: %+v", second.Deltas[i])
		}
	}
}

func TestReconcileLogAndSummary(t *testing.T) {
	in := RunInput{
		Branch:         "SM Sorsogon",
		Items:          []Item{{Code: "FGC-001", EndStock: 1}},
		TotalRows:      5,
		UnmatchedCount: 2,
		DroppedCount:   2,
	}
	res := Reconcile(in, fixedLookup(nil), time.Now())

	if res.Log.Status != "partial" {
		t.Fatalf("Status = %q, want partial when unmatched rows were skipped", res.Log.Status)
	}
	if res.Log.TotalRows != 5 || res.Log.MatchedCount != 1 || res.Log.UnmatchedCount != 2 || res.Log.DroppedCount != 2 {
		t.Fatalf("unexpected log: %+v", res.Log)
	}
	if res.Summary.Imported != 1 || res.Summary.Matched != 1 || res.Summary.Unmatched != 2 {
		t.Fatalf("unexpected summary: %+v", res.Summary)
	}

	in.UnmatchedCount = 0
	res = Reconcile(in, fixedLookup(nil), time.Now())
	if res.Log.Status != "success" {
		t.Fatalf("Status = %q, want success", res.Log.Status)
	}
}

func TestFullPipeline(t *testing.T) {
	csv := "Title,Category,End\n" +
		"Vanilla Langka | cup,Ice Cream,42\n" +
		"Generic Merchandise Item,Apparel,3\n" +
		"Mystery | pint,Ice Cream,6\n"

	rows, diag := ParseCSV(csv)
	if diag.DroppedRows != 0 {
		t.Fatalf("unexpected parse drops: %+v", diag)
	}

	m := newTestMatcher()
	cls := m.Classify(rows)
	if len(cls.Matched) != 1 || len(cls.Unmatched) != 1 || cls.Dropped != 1 {
		t.Fatalf("unexpected classification: %+v", cls)
	}

	v := Validate(cls.Matched, "SM Sorsogon")
	if !v.IsValid {
		t.Fatalf("validation failed: %v", v.Errors)
	}

	res := Reconcile(RunInput{
		Branch:         "SM Sorsogon",
		Items:          cls.Matched,
		TotalRows:      diag.DataRows,
		UnmatchedCount: len(cls.Unmatched),
		DroppedCount:   cls.Dropped + diag.DroppedRows,
	}, fixedLookup(map[string]int{"SM Sorsogon/FGC-005": 30}), time.Now())

	if res.Deltas[0].Change != 12 {
		t.Fatalf("pipeline delta = %+v", res.Deltas[0])
	}
	if res.Log.Status != "partial" {
		t.Fatalf("pipeline status = %q", res.Log.Status)
	}
}
