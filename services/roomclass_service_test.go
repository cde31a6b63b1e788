package services

import (
	"context"
	"testing"

	"hotel-booking-backend/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateRoomClass_DefaultsAndSlug(t *testing.T) {
	db := testDB(t)
	svc := NewRoomClassService(db, nil)

	class, err := svc.Create(CreateRoomClassInput{
		Name:           "  Executive  Twin ",
		CapacityAdults: 2,
		BasePrice:      9000,
	}, "admin@hotel.local")
	require.NoError(t, err)

	assert.Equal(t, "Executive  Twin", class.Name)
	assert.Equal(t, "executive-twin", class.Slug)
	assert.Equal(t, "room", class.Category)
	assert.Equal(t, 1, class.MinStay)
	assert.Equal(t, 30, class.MaxStay)
	assert.Equal(t, "14:00", class.CheckInTime)
	assert.Equal(t, "11:00", class.CheckOutTime)
	assert.True(t, class.IsActive)
	assert.Equal(t, "admin@hotel.local", class.CreatedBy)
}

func TestCreateRoomClass_Rejections(t *testing.T) {
	db := testDB(t)
	svc := NewRoomClassService(db, nil)

	_, err := svc.Create(CreateRoomClassInput{Name: "", CapacityAdults: 2, BasePrice: 9000}, "admin@hotel.local")
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.Create(CreateRoomClassInput{Name: "Twin", CapacityAdults: 2, BasePrice: 0}, "admin@hotel.local")
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.Create(CreateRoomClassInput{Name: "Twin", CapacityAdults: 0, BasePrice: 9000}, "admin@hotel.local")
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.Create(CreateRoomClassInput{Name: "Twin", CapacityAdults: 2, BasePrice: 9000, DiscountPercent: 120}, "admin@hotel.local")
	assert.ErrorIs(t, err, ErrValidation)
}

func TestCreateRoomClass_DuplicateName(t *testing.T) {
	db := testDB(t)
	svc := NewRoomClassService(db, nil)
	seedClass(t, db, "Deluxe King Suite", 12000)

	_, err := svc.Create(CreateRoomClassInput{
		Name:           "Deluxe King Suite",
		CapacityAdults: 2,
		BasePrice:      12000,
	}, "admin@hotel.local")
	assert.ErrorIs(t, err, ErrConflict)
}

func TestPublicList_ExcludesRetiredAndInactive(t *testing.T) {
	db := testDB(t)
	svc := NewRoomClassService(db, nil)

	seedClass(t, db, "Deluxe King Suite", 12000)
	inactive := seedClass(t, db, "Executive Twin", 9000)
	require.NoError(t, db.Model(inactive).Update("is_active", false).Error)
	deleted := seedClass(t, db, "Family Room", 14500)
	require.NoError(t, svc.Delete(deleted.ID, "admin@hotel.local"))

	public, err := svc.PublicList(context.Background())
	require.NoError(t, err)
	require.Len(t, public, 1)
	assert.Equal(t, "Deluxe King Suite", public[0].Name)

	// The admin view still shows off-sale classes, just not deleted ones.
	adminView, err := svc.List()
	require.NoError(t, err)
	assert.Len(t, adminView, 2)
}

func TestUpdateRoomClass(t *testing.T) {
	db := testDB(t)
	svc := NewRoomClassService(db, nil)
	class := seedClass(t, db, "Deluxe King Suite", 12000)

	updated, err := svc.Update(class.ID, map[string]interface{}{
		"base_price": 12500.0,
		"is_deleted": true,
		"id":         999,
	}, "manager@hotel.local")
	require.NoError(t, err)
	assert.Equal(t, 12500.0, updated.BasePrice)
	assert.False(t, updated.IsDeleted)
	assert.Equal(t, class.ID, updated.ID)
	assert.Equal(t, "manager@hotel.local", updated.LastModifiedBy)

	_, err = svc.Update(999, map[string]interface{}{"base_price": 100.0}, "manager@hotel.local")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = svc.Update(class.ID, map[string]interface{}{"id": 1}, "manager@hotel.local")
	assert.ErrorIs(t, err, ErrValidation)
}

func TestUpdateRoomClass_ProtectedColumnsUnderAnyKeySpelling(t *testing.T) {
	db := testDB(t)
	svc := NewRoomClassService(db, nil)
	class := seedClass(t, db, "Deluxe King Suite", 12000)

	updated, err := svc.Update(class.ID, map[string]interface{}{
		"isDeleted":   true,
		"activeRooms": 99,
		"createdBy":   "spoofed@example.com",
		"basePrice":   12500.0,
	}, "manager@hotel.local")
	require.NoError(t, err)

	assert.Equal(t, 12500.0, updated.BasePrice, "camelCase spellings of editable columns still apply")
	assert.False(t, updated.IsDeleted, "lifecycle flags only change through Delete")
	assert.Equal(t, 0, updated.ActiveRooms)
	assert.Empty(t, updated.CreatedBy)

	// A retired class stays visible to guests only if undeleted properly;
	// flipping the flag back is not a PATCH concern either.
	require.NoError(t, svc.Delete(class.ID, "manager@hotel.local"))
	_, err = svc.Update(class.ID, map[string]interface{}{"is_deleted": false}, "manager@hotel.local")
	assert.ErrorIs(t, err, ErrValidation)
}

func TestDeleteRoomClass_KeepsHistory(t *testing.T) {
	db := testDB(t)
	svc := NewRoomClassService(db, nil)
	class := seedClass(t, db, "Deluxe King Suite", 12000)
	instance := seedInstance(t, db, class, "101", models.RoomStatusAvailable)
	reservation := seedReservation(t, db, class, instance, models.ReservationCheckedOut, "2024-03-01", "2024-03-04")

	require.NoError(t, svc.Delete(class.ID, "admin@hotel.local"))

	var reloaded models.RoomClass
	require.NoError(t, db.First(&reloaded, class.ID).Error)
	assert.True(t, reloaded.IsDeleted)
	assert.False(t, reloaded.IsActive)

	// History and rooms survive the soft delete.
	var kept models.Reservation
	require.NoError(t, db.First(&kept, reservation.ID).Error)
	assert.Equal(t, class.ID, kept.RoomClassID)

	assert.ErrorIs(t, svc.Delete(class.ID, "admin@hotel.local"), ErrNotFound)

	// A deleted class can no longer take bookings.
	rsv := NewReservationService(db)
	input := validInput(&reloaded, nil)
	input.IdempotencyKey = "key-deleted-class"
	_, err := rsv.CreateReservation(input)
	assert.ErrorIs(t, err, ErrNotFound)
}
