package models

import (
	"time"

	"gorm.io/datatypes"
)

// RoomClass is a sellable room category. Physical rooms (RoomInstance) point
// back at it; the class itself is the shared template and is never removed
// once bookings reference it, only flagged.
type RoomClass struct {
	ID uint `gorm:"primaryKey" json:"id"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	Name        string `gorm:"column:name;size:191;uniqueIndex" json:"name"`
	Slug        string `gorm:"column:slug;size:191;uniqueIndex" json:"slug"`
	Description string `gorm:"type:text" json:"description"`
	Category    string `gorm:"size:64;default:room" json:"category"`
	Subcategory string `gorm:"size:64" json:"subcategory"`

	// Capacity
	CapacityAdults   int `gorm:"column:capacity_adults;default:1" json:"capacityAdults"`
	CapacityChildren int `gorm:"column:capacity_children;default:0" json:"capacityChildren"`

	// Pricing
	BasePrice       float64 `gorm:"column:base_price" json:"basePrice"`
	ListPrice       float64 `gorm:"column:list_price" json:"listPrice"`
	DiscountPercent float64 `gorm:"column:discount_percent;default:0" json:"discountPercent"`

	Amenities datatypes.JSON `gorm:"column:amenities" json:"amenities,omitempty"`
	Features  datatypes.JSON `gorm:"column:features" json:"features,omitempty"`
	Images    datatypes.JSON `gorm:"column:images" json:"images,omitempty"`

	BedType  string  `gorm:"column:bed_type;size:32" json:"bedType,omitempty"`
	RoomSize float64 `gorm:"column:room_size" json:"roomSize,omitempty"`
	View     string  `gorm:"size:64" json:"view,omitempty"`

	// Booking rules
	MinStay      int    `gorm:"column:min_stay;default:1" json:"minStay"`
	MaxStay      int    `gorm:"column:max_stay;default:30" json:"maxStay"`
	CheckInTime  string `gorm:"column:check_in_time;size:5;default:14:00" json:"checkInTime"`
	CheckOutTime string `gorm:"column:check_out_time;size:5;default:11:00" json:"checkOutTime"`

	// Inventory counters: TotalInventory is the planned number of rooms,
	// ActiveRooms counts instances actually provisioned and not retired.
	TotalInventory int `gorm:"column:total_inventory;default:1" json:"totalInventory"`
	ActiveRooms    int `gorm:"column:active_rooms;default:0" json:"activeRooms"`

	IsActive  bool `gorm:"column:is_active;default:true" json:"isActive"`
	IsDeleted bool `gorm:"column:is_deleted;default:false;index" json:"isDeleted"`

	CreatedBy      string `gorm:"column:created_by;size:191" json:"createdBy,omitempty"`
	LastModifiedBy string `gorm:"column:last_modified_by;size:191" json:"lastModifiedBy,omitempty"`

	Instances []RoomInstance `gorm:"foreignKey:RoomClassID" json:"instances,omitempty"`
}
