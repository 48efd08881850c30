package models

import "time"

type TransferStatus string

const (
	TransferStatusDraft     TransferStatus = "draft"
	TransferStatusCompleted TransferStatus = "completed"
	TransferStatusCancelled TransferStatus = "cancelled"
)

// StockTransfer: movement of stock between two locations (warehouse -> branch,
// branch -> branch). Stock only moves when the transfer is completed.
type StockTransfer struct {
	ID           uint   `gorm:"primaryKey"`
	Reference    string `gorm:"size:40;uniqueIndex;not null"`
	FromBranchID uint   `gorm:"index;not null"`
	FromBranch   Branch `gorm:"foreignKey:FromBranchID"`
	ToBranchID   uint   `gorm:"index;not null"`
	ToBranch     Branch `gorm:"foreignKey:ToBranchID"`
	Status       TransferStatus `gorm:"size:15;not null;default:draft"`
	Note         string         `gorm:"size:255"`
	CompletedAt  *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time

	Items []StockTransferItem `gorm:"foreignKey:TransferID;constraint:OnDelete:CASCADE"`
}

type StockTransferItem struct {
	ID          uint `gorm:"primaryKey"`
	TransferID  uint `gorm:"index;not null"`
	ProductCode string `gorm:"size:10;not null"`
	Quantity    int    `gorm:"not null"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
