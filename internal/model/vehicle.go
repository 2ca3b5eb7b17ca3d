package model

import "time"

// Vehicle is reference data: a client's vehicle that work orders point at.
type Vehicle struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Plate       string    `gorm:"uniqueIndex;size:10;not null" json:"plate"`
	TypeVehicle string    `gorm:"size:16;not null;default:MOTORCYCLE" json:"type_vehicle"`
	Brand       string    `gorm:"size:50;not null" json:"brand"`
	Model       string    `gorm:"size:50;not null" json:"model"`
	Cylinder    *int      `json:"cylinder,omitempty"`
	ClientID    uint      `gorm:"not null;index" json:"client_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	// Associations
	Client *Client `gorm:"constraint:OnDelete:RESTRICT" json:"client,omitempty"`
}
