package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"hotel-booking-backend/cache"
	"hotel-booking-backend/models"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// RoomClassService manages the sellable catalog. Classes are soft-deleted
// only; booking history keeps referencing them.
type RoomClassService struct {
	DB      *gorm.DB
	Catalog *cache.Catalog
}

func NewRoomClassService(db *gorm.DB, catalog *cache.Catalog) *RoomClassService {
	return &RoomClassService{DB: db, Catalog: catalog}
}

type CreateRoomClassInput struct {
	Name             string         `json:"name"`
	Slug             string         `json:"slug"`
	Description      string         `json:"description"`
	Subcategory      string         `json:"subcategory"`
	CapacityAdults   int            `json:"capacityAdults"`
	CapacityChildren int            `json:"capacityChildren"`
	BasePrice        float64        `json:"basePrice"`
	ListPrice        float64        `json:"listPrice"`
	DiscountPercent  float64        `json:"discountPercent"`
	Amenities        datatypes.JSON `json:"amenities"`
	Features         datatypes.JSON `json:"features"`
	Images           datatypes.JSON `json:"images"`
	BedType          string         `json:"bedType"`
	RoomSize         float64        `json:"roomSize"`
	View             string         `json:"view"`
	MinStay          int            `json:"minStay"`
	MaxStay          int            `json:"maxStay"`
	TotalInventory   int            `json:"totalInventory"`
}

func slugify(name string) string {
	slug := strings.ToLower(strings.TrimSpace(name))
	slug = strings.Join(strings.Fields(slug), "-")
	return slug
}

func (s *RoomClassService) Create(input CreateRoomClassInput, actor string) (*models.RoomClass, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrValidation)
	}
	if input.BasePrice <= 0 {
		return nil, fmt.Errorf("%w: base price must be positive", ErrValidation)
	}
	if input.CapacityAdults < 1 {
		return nil, fmt.Errorf("%w: adult capacity must be at least 1", ErrValidation)
	}
	if input.DiscountPercent < 0 || input.DiscountPercent > 100 {
		return nil, fmt.Errorf("%w: discount percent must be between 0 and 100", ErrValidation)
	}

	slug := strings.TrimSpace(input.Slug)
	if slug == "" {
		slug = slugify(name)
	}

	class := models.RoomClass{
		Name:             name,
		Slug:             slug,
		Description:      input.Description,
		Category:         "room",
		Subcategory:      input.Subcategory,
		CapacityAdults:   input.CapacityAdults,
		CapacityChildren: input.CapacityChildren,
		BasePrice:        input.BasePrice,
		ListPrice:        input.ListPrice,
		DiscountPercent:  input.DiscountPercent,
		Amenities:        input.Amenities,
		Features:         input.Features,
		Images:           input.Images,
		BedType:          input.BedType,
		RoomSize:         input.RoomSize,
		View:             input.View,
		MinStay:          input.MinStay,
		MaxStay:          input.MaxStay,
		TotalInventory:   input.TotalInventory,
		IsActive:         true,
		CreatedBy:        actor,
	}
	if class.MinStay < 1 {
		class.MinStay = 1
	}
	if class.MaxStay < class.MinStay {
		class.MaxStay = 30
	}
	if class.TotalInventory < 1 {
		class.TotalInventory = 1
	}
	if class.CheckInTime == "" {
		class.CheckInTime = "14:00"
	}
	if class.CheckOutTime == "" {
		class.CheckOutTime = "11:00"
	}

	if err := s.DB.Create(&class).Error; err != nil {
		if isDuplicateKeyErr(err) {
			return nil, fmt.Errorf("%w: room class %q already exists", ErrConflict, name)
		}
		return nil, fmt.Errorf("failed to create room class: %w", err)
	}

	s.Catalog.InvalidateRoomClasses(context.Background())
	return &class, nil
}

func (s *RoomClassService) GetByID(id uint) (*models.RoomClass, error) {
	var class models.RoomClass
	if err := s.DB.First(&class, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: room class %d", ErrNotFound, id)
		}
		return nil, fmt.Errorf("failed to retrieve room class: %w", err)
	}
	return &class, nil
}

// List is the admin view: everything not deleted, retired classes included.
func (s *RoomClassService) List() ([]models.RoomClass, error) {
	var classes []models.RoomClass
	if err := s.DB.Where("is_deleted = ?", false).Order("name ASC").Find(&classes).Error; err != nil {
		return nil, fmt.Errorf("failed to retrieve room classes: %w", err)
	}
	return classes, nil
}

// PublicList is the guest-facing catalog: active classes only, served from
// the cache when warm.
func (s *RoomClassService) PublicList(ctx context.Context) ([]models.RoomClass, error) {
	if classes, ok := s.Catalog.GetRoomClasses(ctx); ok {
		return classes, nil
	}

	var classes []models.RoomClass
	err := s.DB.
		Where("is_active = ? AND is_deleted = ?", true, false).
		Order("name ASC").
		Find(&classes).Error
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve room classes: %w", err)
	}

	s.Catalog.SetRoomClasses(ctx, classes)
	return classes, nil
}

// roomClassUpdatableColumns are the catalog columns a partial update may
// touch. Deletion goes through Delete; active_rooms is owned by the
// instance service's counters.
var roomClassUpdatableColumns = map[string]bool{
	"name":              true,
	"slug":              true,
	"description":       true,
	"subcategory":       true,
	"capacity_adults":   true,
	"capacity_children": true,
	"base_price":        true,
	"list_price":        true,
	"discount_percent":  true,
	"amenities":         true,
	"features":          true,
	"images":            true,
	"bed_type":          true,
	"room_size":         true,
	"view":              true,
	"min_stay":          true,
	"max_stay":          true,
	"check_in_time":     true,
	"check_out_time":    true,
	"total_inventory":   true,
	"is_active":         true,
}

// Update applies partial edits. Identity and audit columns are not editable.
func (s *RoomClassService) Update(id uint, updates map[string]interface{}, actor string) (*models.RoomClass, error) {
	updates = filterUpdates(updates, roomClassUpdatableColumns)
	if len(updates) == 0 {
		return nil, fmt.Errorf("%w: no updatable fields provided", ErrValidation)
	}
	updates["last_modified_by"] = actor

	res := s.DB.Model(&models.RoomClass{}).Where("id = ? AND is_deleted = ?", id, false).Updates(updates)
	if res.Error != nil {
		if isDuplicateKeyErr(res.Error) {
			return nil, fmt.Errorf("%w: room class name or slug already exists", ErrConflict)
		}
		return nil, fmt.Errorf("failed to update room class: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, fmt.Errorf("%w: room class %d", ErrNotFound, id)
	}

	s.Catalog.InvalidateRoomClasses(context.Background())
	return s.GetByID(id)
}

// Delete soft-deletes a class and takes it off sale. Its reservation history
// and physical rooms are untouched.
func (s *RoomClassService) Delete(id uint, actor string) error {
	res := s.DB.Model(&models.RoomClass{}).
		Where("id = ? AND is_deleted = ?", id, false).
		Updates(map[string]interface{}{
			"is_deleted":       true,
			"is_active":        false,
			"last_modified_by": actor,
		})
	if res.Error != nil {
		return fmt.Errorf("failed to delete room class: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: room class %d", ErrNotFound, id)
	}

	s.Catalog.InvalidateRoomClasses(context.Background())
	return nil
}
