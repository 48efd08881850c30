package models

import "time"

// StockHistory: immutable before/change/after record written for every stock
// movement. Never updated or deleted; this is the audit trail reconciliation
// runs are replayed from.
type StockHistory struct {
	ID          uint `gorm:"primaryKey"`
	BranchID    uint `gorm:"index;not null"`
	Branch      Branch
	ProductCode string `gorm:"size:10;index;not null"`
	Before      int    `gorm:"not null"`
	Change      int    `gorm:"not null"` // signed; After = Before + Change
	After       int    `gorm:"not null"`
	Source      string `gorm:"size:30;not null"` // "utak_import", "manual_count", "transfer"
	ImportRunID string `gorm:"size:40;index"`    // set when the entry came from an import run
	RawRow      string `gorm:"type:jsonb"`       // original export row for forensic replay
	CreatedAt   time.Time
}
