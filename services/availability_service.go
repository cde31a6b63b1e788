package services

import (
	"errors"
	"fmt"
	"time"

	"hotel-booking-backend/models"

	"gorm.io/gorm"
)

// AvailabilityService answers "which rooms of this class are free for these
// dates". It is read-only; its result is advisory until re-validated inside
// the allocation transaction.
type AvailabilityService struct {
	DB *gorm.DB
}

func NewAvailabilityService(db *gorm.DB) *AvailabilityService {
	return &AvailabilityService{DB: db}
}

// AvailabilityResult carries the free instances for a request. AvailableCount
// is the total number of free rooms even when Instances was capped to the
// requested count.
type AvailabilityResult struct {
	RoomClassID    uint                  `json:"roomClassId"`
	CheckinDate    time.Time             `json:"checkinDate"`
	CheckoutDate   time.Time             `json:"checkoutDate"`
	Nights         int                   `json:"nights"`
	AvailableCount int                   `json:"availableCount"`
	Instances      []models.RoomInstance `json:"instances"`
}

// overlappingInstanceIDs is the subquery of room instance ids held by a
// reservation whose [checkin, checkout) window intersects the requested one.
// Half-open intervals: an existing checkout on the requested checkin day does
// not conflict.
func overlappingInstanceIDs(db *gorm.DB, checkin, checkout time.Time) *gorm.DB {
	return db.Model(&models.Reservation{}).
		Select("room_instance_id").
		Where("room_instance_id IS NOT NULL").
		Where("status IN ?", models.HoldingStatuses).
		Where("checkin_date < ? AND checkout_date > ?", checkout, checkin)
}

// freeInstancesQuery builds the eligible-and-unconflicted instance query for a
// room class, ordered by room number so results are deterministic.
func freeInstancesQuery(db *gorm.DB, roomClassID uint, checkin, checkout time.Time) *gorm.DB {
	return db.Model(&models.RoomInstance{}).
		Where("room_class_id = ?", roomClassID).
		Where("status IN ?", models.AllocatableRoomStatuses).
		Where("is_active = ? AND is_deleted = ?", true, false).
		Where("id NOT IN (?)", overlappingInstanceIDs(db, checkin, checkout)).
		Order("room_number ASC")
}

// instanceHasOverlap reports whether a specific instance is held by any
// overlapping reservation. Used by the allocation transaction for its
// commit-time re-check.
func instanceHasOverlap(db *gorm.DB, instanceID uint, checkin, checkout time.Time) (bool, error) {
	var n int64
	err := db.Model(&models.Reservation{}).
		Where("room_instance_id = ?", instanceID).
		Where("status IN ?", models.HoldingStatuses).
		Where("checkin_date < ? AND checkout_date > ?", checkout, checkin).
		Count(&n).Error
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// CheckAvailability returns the free instances of a room class for a date
// range. A class with zero provisioned rooms yields an empty result, not an
// error. roomCount > 0 caps the returned list; the count stays total.
func (s *AvailabilityService) CheckAvailability(roomClassID uint, checkin, checkout string, roomCount int) (*AvailabilityResult, error) {
	ci, co, err := parseStayWindow(checkin, checkout)
	if err != nil {
		return nil, err
	}

	var class models.RoomClass
	if err := s.DB.Where("id = ? AND is_deleted = ?", roomClassID, false).First(&class).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: room class %d", ErrNotFound, roomClassID)
		}
		return nil, fmt.Errorf("failed to load room class: %w", err)
	}

	var instances []models.RoomInstance
	if err := freeInstancesQuery(s.DB, roomClassID, ci, co).
		Preload("RoomClass").
		Find(&instances).Error; err != nil {
		return nil, fmt.Errorf("failed to query available rooms: %w", err)
	}

	result := &AvailabilityResult{
		RoomClassID:    roomClassID,
		CheckinDate:    ci,
		CheckoutDate:   co,
		Nights:         calcNights(ci, co),
		AvailableCount: len(instances),
		Instances:      instances,
	}
	if roomCount > 0 && len(instances) > roomCount {
		result.Instances = instances[:roomCount]
	}
	if result.Instances == nil {
		result.Instances = []models.RoomInstance{}
	}
	return result, nil
}
