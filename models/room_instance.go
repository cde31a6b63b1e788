package models

import (
	"time"
)

// Housekeeping statuses for a RoomInstance. Only StatusAvailable and
// StatusClean are eligible for a new allocation; everything else is an
// operator concern.
const (
	RoomStatusAvailable   = "available"
	RoomStatusOccupied    = "occupied"
	RoomStatusClean       = "clean"
	RoomStatusDirty       = "dirty"
	RoomStatusMaintenance = "maintenance"
	RoomStatusOutOfOrder  = "out_of_order"
)

// AllocatableRoomStatuses are the housekeeping states in which a room may be
// claimed by a new reservation.
var AllocatableRoomStatuses = []string{RoomStatusAvailable, RoomStatusClean}

// RoomInstanceStatuses lists every valid housekeeping state, for input
// validation on operator overrides.
var RoomInstanceStatuses = []string{
	RoomStatusAvailable,
	RoomStatusOccupied,
	RoomStatusClean,
	RoomStatusDirty,
	RoomStatusMaintenance,
	RoomStatusOutOfOrder,
}

// RoomInstance is one physical room belonging to exactly one RoomClass.
type RoomInstance struct {
	ID uint `gorm:"primaryKey" json:"id"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	RoomNumber string `gorm:"column:room_number;size:50;uniqueIndex" json:"roomNumber"`
	RoomName   string `gorm:"column:room_name;size:191" json:"roomName,omitempty"`

	RoomClassID uint `gorm:"column:room_class_id;index" json:"roomClassId"`

	Floor    int    `gorm:"column:floor" json:"floor,omitempty"`
	Building string `gorm:"size:64" json:"building,omitempty"`
	Wing     string `gorm:"size:64" json:"wing,omitempty"`

	Status      string `gorm:"size:32;default:available;index" json:"status"`
	StatusNotes string `gorm:"column:status_notes;type:text" json:"statusNotes,omitempty"`

	LastCleaned     *time.Time `gorm:"column:last_cleaned" json:"lastCleaned,omitempty"`
	NextCleaningDue *time.Time `gorm:"column:next_cleaning_due" json:"nextCleaningDue,omitempty"`

	// CustomPrice overrides RoomClass.BasePrice for this room when set.
	CustomPrice *float64 `gorm:"column:custom_price" json:"customPrice,omitempty"`

	IsActive  bool `gorm:"column:is_active;default:true" json:"isActive"`
	IsDeleted bool `gorm:"column:is_deleted;default:false;index" json:"isDeleted"`

	LastMaintenance    *time.Time `gorm:"column:last_maintenance" json:"lastMaintenance,omitempty"`
	NextMaintenanceDue *time.Time `gorm:"column:next_maintenance_due" json:"nextMaintenanceDue,omitempty"`

	CreatedBy      string `gorm:"column:created_by;size:191" json:"createdBy,omitempty"`
	LastModifiedBy string `gorm:"column:last_modified_by;size:191" json:"lastModifiedBy,omitempty"`

	RoomClass RoomClass `gorm:"foreignKey:RoomClassID;references:ID" json:"roomClass,omitempty"`
}

// Allocatable reports whether the room can be claimed by a new reservation,
// housekeeping-wise. Date conflicts are checked separately.
func (r *RoomInstance) Allocatable() bool {
	if !r.IsActive || r.IsDeleted {
		return false
	}
	return r.Status == RoomStatusAvailable || r.Status == RoomStatusClean
}
