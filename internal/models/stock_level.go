package models

import "time"

// StockLevel: current stock of one product code at one branch. One row per
// (branch, code) pair; imports and manual counts upsert into it.
type StockLevel struct {
	ID             uint `gorm:"primaryKey"`
	BranchID       uint `gorm:"not null;uniqueIndex:idx_stock_branch_code"`
	Branch         Branch
	ProductCode    string `gorm:"size:10;not null;uniqueIndex:idx_stock_branch_code"`
	CurrentStock   int    `gorm:"not null"`
	LastSyncSource string `gorm:"size:30"` // "utak_import", "manual_count", "transfer"
	LastSyncAt     *time.Time
	LastSyncRaw    string `gorm:"type:jsonb"` // original source row, kept for traceability
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
