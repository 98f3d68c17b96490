package models

import "time"

// OrderStatusHistory is an append-only audit log: one row per status
// transition, never mutated or deleted. ChangedBy is nil for system-driven
// transitions.
type OrderStatusHistory struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	OrderID   uint      `json:"order_id" gorm:"not null;index"`
	OldStatus string    `json:"old_status" gorm:"size:20;not null"`
	NewStatus string    `json:"new_status" gorm:"size:20;not null"`
	Comment   string    `json:"comment" gorm:"type:text"`
	ChangedBy *uint     `json:"changed_by"`
	CreatedAt time.Time `json:"created_at"`
}
