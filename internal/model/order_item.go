package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// ItemType distinguishes labor from parts on a work order.
type ItemType string

const (
	ItemTypeLabor ItemType = "LABOR"
	ItemTypePart  ItemType = "PART"
)

// Valid reports whether t is LABOR or PART.
func (t ItemType) Valid() bool {
	return t == ItemTypeLabor || t == ItemTypePart
}

// OrderItem is a billable line attached to a work order.
type OrderItem struct {
	ID          uint            `gorm:"primaryKey" json:"id"`
	WorkOrderID uint            `gorm:"not null;index" json:"work_order_id"`
	Type        ItemType        `gorm:"size:10;not null" json:"type"`
	Description string          `gorm:"size:255;not null" json:"description"`
	Count       int             `gorm:"not null" json:"count"`
	UnitValue   decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"unit_value"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// Subtotal returns count × unit value.
func (i OrderItem) Subtotal() decimal.Decimal {
	return i.UnitValue.Mul(decimal.NewFromInt(int64(i.Count)))
}
