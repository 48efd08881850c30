package models

import "time"

type ImportStatus string

const (
	ImportStatusSuccess ImportStatus = "success"
	ImportStatusPartial ImportStatus = "partial"
	ImportStatusFailed  ImportStatus = "failed"
)

// ImportLog: one row per Utak reconciliation run, immutable once written.
type ImportLog struct {
	ID             uint   `gorm:"primaryKey"`
	RunID          string `gorm:"size:40;uniqueIndex;not null"`
	BranchID       *uint  `gorm:"index"`
	Branch         *Branch
	Location       string `gorm:"size:100;not null"` // branch display name at import time
	FileName       string `gorm:"size:255"`
	InventoryDate  string `gorm:"size:10"` // YYYY-MM-DD detected from the filename, if any
	TotalRows      int    `gorm:"not null"`
	MatchedCount   int    `gorm:"not null"`
	UnmatchedCount int    `gorm:"not null"`
	DroppedCount   int    `gorm:"not null"` // malformed + out-of-domain rows
	Status         ImportStatus `gorm:"size:10;not null"`
	Errors         string       `gorm:"type:jsonb"` // JSON array of error strings
	CreatedAt      time.Time
}
