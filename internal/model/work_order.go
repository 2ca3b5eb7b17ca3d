package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// WorkOrder is a repair job tracked from intake to delivery or cancellation.
type WorkOrder struct {
	ID               uint            `gorm:"primaryKey" json:"id"`
	VehicleID        uint            `gorm:"not null;index" json:"vehicle_id"`
	EntryDate        Date            `gorm:"type:date;not null" json:"entry_date"`
	FaultDescription string          `gorm:"type:text;not null" json:"fault_description"`
	Status           Status          `gorm:"size:20;not null;default:RECEIVED;index" json:"status"`
	Total            decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0" json:"total"`
	CreatedAt        time.Time       `gorm:"index" json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`

	// Associations
	Vehicle *Vehicle    `gorm:"constraint:OnDelete:RESTRICT" json:"vehicle,omitempty"`
	Items   []OrderItem `gorm:"foreignKey:WorkOrderID;constraint:OnDelete:CASCADE" json:"items,omitempty"`
}
