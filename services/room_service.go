package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"hotel-booking-backend/models"

	"gorm.io/gorm"
)

// RoomInstanceService manages physical rooms: provisioning, operator status
// overrides, and guarded soft deletion.
type RoomInstanceService struct {
	DB *gorm.DB
}

func NewRoomInstanceService(db *gorm.DB) *RoomInstanceService {
	return &RoomInstanceService{DB: db}
}

// maintenanceInterval is the default gap scheduled when a room enters
// maintenance.
const maintenanceInterval = 7 * 24 * time.Hour

type CreateRoomInstanceInput struct {
	RoomNumber  string   `json:"roomNumber"`
	RoomName    string   `json:"roomName"`
	RoomClassID uint     `json:"roomClassId"`
	Floor       int      `json:"floor"`
	Building    string   `json:"building"`
	Wing        string   `json:"wing"`
	CustomPrice *float64 `json:"customPrice"`
}

// Create provisions a room under an existing class and bumps the class's
// active-room counter in the same transaction.
func (s *RoomInstanceService) Create(input CreateRoomInstanceInput, actor string) (*models.RoomInstance, error) {
	roomNumber := strings.ToUpper(strings.TrimSpace(input.RoomNumber))
	if roomNumber == "" {
		return nil, fmt.Errorf("%w: room number is required", ErrValidation)
	}
	if input.RoomClassID == 0 {
		return nil, fmt.Errorf("%w: room class id is required", ErrValidation)
	}
	if input.CustomPrice != nil && *input.CustomPrice < 0 {
		return nil, fmt.Errorf("%w: custom price must not be negative", ErrValidation)
	}

	instance := models.RoomInstance{
		RoomNumber:  roomNumber,
		RoomName:    strings.TrimSpace(input.RoomName),
		RoomClassID: input.RoomClassID,
		Floor:       input.Floor,
		Building:    input.Building,
		Wing:        input.Wing,
		Status:      models.RoomStatusAvailable,
		CustomPrice: input.CustomPrice,
		IsActive:    true,
		CreatedBy:   actor,
	}

	txErr := s.DB.Transaction(func(tx *gorm.DB) error {
		var class models.RoomClass
		if err := tx.Where("id = ? AND is_deleted = ?", input.RoomClassID, false).First(&class).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: room class %d", ErrNotFound, input.RoomClassID)
			}
			return fmt.Errorf("failed to load room class: %w", err)
		}

		if err := tx.Create(&instance).Error; err != nil {
			if isDuplicateKeyErr(err) {
				return fmt.Errorf("%w: room number %s already exists", ErrConflict, roomNumber)
			}
			return fmt.Errorf("failed to create room instance: %w", err)
		}

		return tx.Model(&class).Update("active_rooms", gorm.Expr("active_rooms + 1")).Error
	})
	if txErr != nil {
		return nil, txErr
	}
	return s.GetByID(instance.ID)
}

func (s *RoomInstanceService) GetByID(id uint) (*models.RoomInstance, error) {
	var instance models.RoomInstance
	if err := s.DB.Preload("RoomClass").First(&instance, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: room instance %d", ErrNotFound, id)
		}
		return nil, fmt.Errorf("failed to retrieve room instance: %w", err)
	}
	return &instance, nil
}

// List returns instances ordered by room number, optionally filtered by class
// and housekeeping status. Soft-deleted rooms stay visible to admins only
// when includeDeleted is set.
func (s *RoomInstanceService) List(roomClassID uint, status string, includeDeleted bool) ([]models.RoomInstance, error) {
	q := s.DB.Preload("RoomClass").Order("room_number ASC")
	if roomClassID != 0 {
		q = q.Where("room_class_id = ?", roomClassID)
	}
	if status != "" {
		q = q.Where("status = ?", status)
	}
	if !includeDeleted {
		q = q.Where("is_deleted = ?", false)
	}
	var instances []models.RoomInstance
	if err := q.Find(&instances).Error; err != nil {
		return nil, fmt.Errorf("failed to retrieve room instances: %w", err)
	}
	return instances, nil
}

// roomInstanceUpdatableColumns are the descriptive columns a partial update
// may touch. Status changes go through SetStatus, retirement through Delete,
// and identity/audit columns are never caller-editable.
var roomInstanceUpdatableColumns = map[string]bool{
	"room_number":       true,
	"room_name":         true,
	"floor":             true,
	"building":          true,
	"wing":              true,
	"custom_price":      true,
	"next_cleaning_due": true,
	"is_active":         true,
}

// Update applies partial edits to descriptive fields. Status changes go
// through SetStatus so the housekeeping bookkeeping is not skipped.
func (s *RoomInstanceService) Update(id uint, updates map[string]interface{}, actor string) (*models.RoomInstance, error) {
	updates = filterUpdates(updates, roomInstanceUpdatableColumns)
	if len(updates) == 0 {
		return nil, fmt.Errorf("%w: no updatable fields provided", ErrValidation)
	}
	if number, ok := updates["room_number"].(string); ok {
		updates["room_number"] = strings.ToUpper(strings.TrimSpace(number))
	}
	updates["last_modified_by"] = actor

	res := s.DB.Model(&models.RoomInstance{}).Where("id = ?", id).Updates(updates)
	if res.Error != nil {
		if isDuplicateKeyErr(res.Error) {
			return nil, fmt.Errorf("%w: room number already exists", ErrConflict)
		}
		return nil, fmt.Errorf("failed to update room instance: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, fmt.Errorf("%w: room instance %d", ErrNotFound, id)
	}
	return s.GetByID(id)
}

// SetStatus is the operator override: any housekeeping state may move to any
// other, with a free-text note. Entering clean stamps the cleaning time;
// entering maintenance stamps the maintenance time and schedules the next one.
func (s *RoomInstanceService) SetStatus(id uint, newStatus, actor, note string) (*models.RoomInstance, error) {
	valid := false
	for _, status := range models.RoomInstanceStatuses {
		if status == newStatus {
			valid = true
			break
		}
	}
	if !valid {
		return nil, fmt.Errorf("%w: unknown room status %q", ErrValidation, newStatus)
	}

	updates := map[string]interface{}{
		"status":           newStatus,
		"status_notes":     note,
		"last_modified_by": actor,
	}
	now := time.Now().UTC()
	switch newStatus {
	case models.RoomStatusClean:
		updates["last_cleaned"] = now
	case models.RoomStatusMaintenance:
		updates["last_maintenance"] = now
		updates["next_maintenance_due"] = now.Add(maintenanceInterval)
	}

	res := s.DB.Model(&models.RoomInstance{}).Where("id = ? AND is_deleted = ?", id, false).Updates(updates)
	if res.Error != nil {
		return nil, fmt.Errorf("failed to update room status: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, fmt.Errorf("%w: room instance %d", ErrNotFound, id)
	}
	return s.GetByID(id)
}

// Delete retires a room. Refused while any reservation still holds it; the
// row itself is kept for history.
func (s *RoomInstanceService) Delete(id uint, actor string) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		var instance models.RoomInstance
		if err := tx.Where("id = ? AND is_deleted = ?", id, false).First(&instance).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: room instance %d", ErrNotFound, id)
			}
			return fmt.Errorf("failed to load room instance: %w", err)
		}

		var held int64
		err := tx.Model(&models.Reservation{}).
			Where("room_instance_id = ?", id).
			Where("status IN ?", models.HoldingStatuses).
			Count(&held).Error
		if err != nil {
			return fmt.Errorf("failed to check reservations: %w", err)
		}
		if held > 0 {
			return fmt.Errorf("%w: room %s has %d active reservation(s)", ErrConflict, instance.RoomNumber, held)
		}

		if err := tx.Model(&instance).Updates(map[string]interface{}{
			"is_deleted":       true,
			"is_active":        false,
			"last_modified_by": actor,
		}).Error; err != nil {
			return fmt.Errorf("failed to delete room instance: %w", err)
		}

		return tx.Model(&models.RoomClass{}).
			Where("id = ? AND active_rooms > 0", instance.RoomClassID).
			Update("active_rooms", gorm.Expr("active_rooms - 1")).Error
	})
}
