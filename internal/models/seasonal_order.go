package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// SeasonalOrder: promotional / seasonal batch order (e.g. fiesta packs,
// Christmas trays) scheduled for a target date.
type SeasonalOrder struct {
	ID           uint   `gorm:"primaryKey"`
	BranchID     uint   `gorm:"index;not null"`
	Branch       Branch
	Label        string `gorm:"size:150;not null"` // e.g. "Kasanggayahan Festival 2026"
	CustomerName string `gorm:"size:150"`
	TargetDate   time.Time       `gorm:"index;not null"`
	Status       OrderStatus     `gorm:"size:15;not null;default:pending"`
	TotalAmount  decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	Note         string          `gorm:"size:255"`
	CreatedAt    time.Time
	UpdatedAt    time.Time

	Items []SeasonalOrderItem `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

type SeasonalOrderItem struct {
	ID          uint `gorm:"primaryKey"`
	OrderID     uint `gorm:"index;not null"`
	ProductCode string          `gorm:"size:10;not null"`
	Quantity    int             `gorm:"not null"`
	UnitPrice   decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	LineTotal   decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
