package utak

import "time"

// SourceUtakImport is stamped on everything a reconciliation run writes.
const SourceUtakImport = "utak_import"

// StockLookup reports the currently known stock for a (branch, code) pair.
// Backed by the inventory store; the engine itself does no I/O.
type StockLookup func(branch, code string) int

// StockDelta: before/after movement for one code at one location.
// Invariant: After == Before + Change and After == the item's EndStock.
type StockDelta struct {
	Location string `json:"location"`
	Code     string `json:"code"`
	Before   int    `json:"before"`
	Change   int    `json:"change"`
	After    int    `json:"after"`
}

// StockUpsert: new current-stock state for one code, with sync metadata and
// the raw source row retained for traceability.
type StockUpsert struct {
	Location     string    `json:"location"`
	Code         string    `json:"code"`
	CurrentStock int       `json:"current_stock"`
	Source       string    `json:"source"`
	SyncedAt     time.Time `json:"synced_at"`
	Raw          Row       `json:"raw"`
}

// HistoryEntry: immutable audit record of one delta, carrying the original
// row for forensic replay.
type HistoryEntry struct {
	Location string `json:"location"`
	Code     string `json:"code"`
	Before   int    `json:"before"`
	Change   int    `json:"change"`
	After    int    `json:"after"`
	Raw      Row    `json:"raw"`
}

// RunLog: summary of one reconciliation run, persisted as the import log.
type RunLog struct {
	Location       string   `json:"location"`
	TotalRows      int      `json:"total_rows"`
	MatchedCount   int      `json:"matched_count"`
	UnmatchedCount int      `json:"unmatched_count"`
	DroppedCount   int      `json:"dropped_count"`
	Status         string   `json:"status"` // success | partial | failed
	Errors         []string `json:"errors"`
}

// Summary: the short counts shown to the operator after a run.
type Summary struct {
	Imported  int `json:"imported"`
	Matched   int `json:"matched"`
	Unmatched int `json:"unmatched"`
}

// RunInput: a finalized run — auto-matched plus manually resolved items, along
// with the classification counts for the log.
type RunInput struct {
	Branch         string
	Items          []Item
	TotalRows      int
	UnmatchedCount int // rows the operator chose to skip
	DroppedCount   int // malformed + out-of-domain rows
}

// ReconcileResult: everything one run produces. The caller commits Upserts,
// History and Log together; nothing here has touched storage yet.
type ReconcileResult struct {
	Deltas  []StockDelta   `json:"deltas"`
	Upserts []StockUpsert  `json:"upserts"`
	History []HistoryEntry `json:"history"`
	Log     RunLog         `json:"log"`
	Summary Summary        `json:"summary"`
}

// Reconcile computes the state changes for one import run. Pure: the only
// outside dependency is the lookup for prior stock. Re-running with the same
// input against the post-run stock yields zero-change deltas.
func Reconcile(in RunInput, lookup StockLookup, now time.Time) ReconcileResult {
	res := ReconcileResult{
		Deltas:  make([]StockDelta, 0, len(in.Items)),
		Upserts: make([]StockUpsert, 0, len(in.Items)),
		History: make([]HistoryEntry, 0, len(in.Items)),
	}

	for _, item := range in.Items {
		before := lookup(in.Branch, item.Code)
		after := item.EndStock
		change := after - before

		res.Deltas = append(res.Deltas, StockDelta{
			Location: in.Branch,
			Code:     item.Code,
			Before:   before,
			Change:   change,
			After:    after,
		})
		res.Upserts = append(res.Upserts, StockUpsert{
			Location:     in.Branch,
			Code:         item.Code,
			CurrentStock: after,
			Source:       SourceUtakImport,
			SyncedAt:     now,
			Raw:          item.Raw,
		})
		res.History = append(res.History, HistoryEntry{
			Location: in.Branch,
			Code:     item.Code,
			Before:   before,
			Change:   change,
			After:    after,
			Raw:      item.Raw,
		})
	}

	status := "success"
	if in.UnmatchedCount > 0 {
		status = "partial"
	}
	res.Log = RunLog{
		Location:       in.Branch,
		TotalRows:      in.TotalRows,
		MatchedCount:   len(in.Items),
		UnmatchedCount: in.UnmatchedCount,
		DroppedCount:   in.DroppedCount,
		Status:         status,
		Errors:         []string{},
	}
	res.Summary = Summary{
		Imported:  len(in.Items),
		Matched:   len(in.Items),
		Unmatched: in.UnmatchedCount,
	}

	return res
}
