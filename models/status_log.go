package models

import (
	"time"
)

// ReservationStatusLog is the append-only audit trail of a reservation.
// Rows are only ever inserted; nothing edits or truncates the log.
type ReservationStatusLog struct {
	ID uint `gorm:"primaryKey" json:"id"`

	CreatedAt time.Time `json:"timestamp"`

	ReservationID uint   `gorm:"column:reservation_id;index" json:"reservationId"`
	Status        string `gorm:"size:32" json:"status"`
	UpdatedBy     string `gorm:"column:updated_by;size:191" json:"updatedBy,omitempty"`
	Notes         string `gorm:"type:text" json:"notes,omitempty"`
}
