package model

import "time"

// StatusHistoryEntry records one status change of a work order. Rows are
// append-only.
type StatusHistoryEntry struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	WorkOrderID uint      `gorm:"not null;index:idx_status_history_order_created,priority:1" json:"work_order_id"`
	FromStatus  *Status   `gorm:"size:20" json:"from_status"`
	ToStatus    Status    `gorm:"size:20;not null" json:"to_status"`
	Note        *string   `gorm:"type:text" json:"note"`
	ChangedBy   uint      `gorm:"not null;index" json:"changed_by"`
	CreatedAt   time.Time `gorm:"not null;index:idx_status_history_order_created,priority:2" json:"created_at"`

	// Associations
	Actor *User `gorm:"foreignKey:ChangedBy" json:"actor,omitempty"`
}

// TableName keeps the history table name stable across drivers.
func (StatusHistoryEntry) TableName() string {
	return "work_order_status_history"
}
