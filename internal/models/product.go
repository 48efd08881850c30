package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product: one sellable variant, keyed by the composite {size}-{flavor} code
// (e.g. "FGC-005" = Cup / Vanilla Langka).
type Product struct {
	ID         uint            `gorm:"primaryKey"`
	Code       string          `gorm:"size:10;not null;uniqueIndex"` // SIZE-FLAVOR, e.g. FGC-005
	Name       string          `gorm:"size:150;not null"`
	SizeCode   string          `gorm:"size:5;not null;index"`
	FlavorCode string          `gorm:"size:5;not null;index"`
	UnitPrice  decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	Active     bool            `gorm:"not null;default:true"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
