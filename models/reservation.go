package models

import (
	"time"
)

// Reservation statuses. A reservation in a holding status keeps its room
// instance out of the availability pool for its date range.
const (
	ReservationPending    = "pending"
	ReservationConfirmed  = "confirmed"
	ReservationCheckedIn  = "checked-in"
	ReservationCheckedOut = "checked-out"
	ReservationCancelled  = "cancelled"
)

// HoldingStatuses are the reservation states that occupy a room for the
// purposes of conflict detection.
var HoldingStatuses = []string{ReservationPending, ReservationConfirmed, ReservationCheckedIn}

// Reservation is a guest's claim on a RoomClass for a date range, bound to a
// specific RoomInstance once allocated. It is never hard-deleted; terminal
// reservations are kept for audit.
type Reservation struct {
	ID uint `gorm:"primaryKey" json:"id"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	ReferenceCode  string `gorm:"column:reference_code;size:64;uniqueIndex" json:"referenceCode"`
	IdempotencyKey string `gorm:"column:idempotency_key;size:64;uniqueIndex" json:"-"`

	// Guest contact
	GuestName  string `gorm:"column:guest_name;size:191" json:"guestName"`
	GuestEmail string `gorm:"column:guest_email;size:191;index" json:"guestEmail"`
	GuestPhone string `gorm:"column:guest_phone;size:32" json:"guestPhone"`
	Address    string `gorm:"size:255" json:"address,omitempty"`
	Pincode    string `gorm:"size:16" json:"pincode,omitempty"`
	City       string `gorm:"size:64" json:"city,omitempty"`
	State      string `gorm:"size:64" json:"state,omitempty"`

	RoomClassID    uint  `gorm:"column:room_class_id;index" json:"roomClassId"`
	RoomInstanceID *uint `gorm:"column:room_instance_id;index" json:"roomInstanceId,omitempty"`

	// Half-open stay window: checkout day itself is free for the next guest.
	CheckinDate  time.Time `gorm:"column:checkin_date;index" json:"checkinDate"`
	CheckoutDate time.Time `gorm:"column:checkout_date" json:"checkoutDate"`
	Nights       int       `gorm:"column:nights" json:"nights"`

	Adults   int `gorm:"column:adults;default:1" json:"adults"`
	Children int `gorm:"column:children;default:0" json:"children"`

	RoomRate   float64 `gorm:"column:room_rate" json:"roomRate"`
	TotalPrice float64 `gorm:"column:total_price" json:"totalPrice"`
	Deposit    float64 `gorm:"column:deposit;default:0" json:"deposit"`

	PaymentMethod string `gorm:"column:payment_method;size:32;default:cash" json:"paymentMethod"`
	PaymentStatus string `gorm:"column:payment_status;size:32;default:pending" json:"paymentStatus"`

	Status string `gorm:"size:32;default:pending;index" json:"status"`

	SpecialRequests string `gorm:"column:special_requests;type:text" json:"specialRequests,omitempty"`
	Notes           string `gorm:"type:text" json:"notes,omitempty"`

	ActualCheckIn  *time.Time `gorm:"column:actual_check_in" json:"actualCheckIn,omitempty"`
	ActualCheckOut *time.Time `gorm:"column:actual_check_out" json:"actualCheckOut,omitempty"`

	CreatedBy  string `gorm:"column:created_by;size:191" json:"createdBy,omitempty"`
	AssignedTo string `gorm:"column:assigned_to;size:191" json:"assignedTo,omitempty"`

	RoomClass    RoomClass              `gorm:"foreignKey:RoomClassID;references:ID" json:"roomClass,omitempty"`
	RoomInstance *RoomInstance          `gorm:"foreignKey:RoomInstanceID;references:ID" json:"roomInstance,omitempty"`
	History      []ReservationStatusLog `gorm:"foreignKey:ReservationID" json:"history,omitempty"`
}

// Terminal reports whether the reservation can no longer transition.
func (r *Reservation) Terminal() bool {
	return r.Status == ReservationCheckedOut || r.Status == ReservationCancelled
}

// Holding reports whether the reservation currently occupies its room for
// conflict purposes.
func (r *Reservation) Holding() bool {
	switch r.Status {
	case ReservationPending, ReservationConfirmed, ReservationCheckedIn:
		return true
	}
	return false
}
