package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusConfirmed OrderStatus = "confirmed"
	OrderStatusDelivered OrderStatus = "delivered"
	OrderStatusCancelled OrderStatus = "cancelled"
)

// ResellerOrder: wholesale order from a reseller channel, fulfilled out of a
// specific branch's stock.
type ResellerOrder struct {
	ID           uint   `gorm:"primaryKey"`
	BranchID     uint   `gorm:"index;not null"`
	Branch       Branch
	ResellerName string `gorm:"size:150;not null"`
	ContactPhone string `gorm:"size:50"`
	Status       OrderStatus     `gorm:"size:15;not null;default:pending"`
	TotalAmount  decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	Note         string          `gorm:"size:255"`
	CreatedAt    time.Time
	UpdatedAt    time.Time

	Items []ResellerOrderItem `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

type ResellerOrderItem struct {
	ID          uint `gorm:"primaryKey"`
	OrderID     uint `gorm:"index;not null"`
	ProductCode string          `gorm:"size:10;not null"`
	Quantity    int             `gorm:"not null"`
	UnitPrice   decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	LineTotal   decimal.Decimal `gorm:"type:numeric(12,2);not null"` // Quantity * UnitPrice
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
