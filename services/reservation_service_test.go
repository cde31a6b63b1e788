package services

import (
	"strings"
	"testing"
	"time"

	"hotel-booking-backend/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validInput(class *models.RoomClass, instanceID *uint) CreateReservationInput {
	return CreateReservationInput{
		GuestName:      "Jordan Blake",
		GuestEmail:     "jordan@example.com",
		GuestPhone:     "5550100",
		RoomClassID:    class.ID,
		RoomInstanceID: instanceID,
		CheckinDate:    "2024-03-01",
		CheckoutDate:   "2024-03-04",
		Adults:         2,
		IdempotencyKey: "key-happy-path",
		CreatedBy:      "guest",
	}
}

func TestCreateReservation_HappyPath(t *testing.T) {
	db := testDB(t)
	svc := NewReservationService(db)
	class := seedClass(t, db, "Deluxe King Suite", 12000)
	instance := seedInstance(t, db, class, "101", models.RoomStatusAvailable)

	instanceID := instance.ID
	reservation, err := svc.CreateReservation(validInput(class, &instanceID))
	require.NoError(t, err)

	assert.Equal(t, models.ReservationConfirmed, reservation.Status)
	assert.Equal(t, 3, reservation.Nights)
	assert.Equal(t, 12000.0, reservation.RoomRate)
	assert.Equal(t, 36000.0, reservation.TotalPrice)
	assert.True(t, strings.HasPrefix(reservation.ReferenceCode, "BK"))
	require.NotNil(t, reservation.RoomInstanceID)
	assert.Equal(t, instance.ID, *reservation.RoomInstanceID)

	var updated models.RoomInstance
	require.NoError(t, db.First(&updated, instance.ID).Error)
	assert.Equal(t, models.RoomStatusOccupied, updated.Status)

	require.Len(t, reservation.History, 1)
	assert.Equal(t, models.ReservationConfirmed, reservation.History[0].Status)
}

func TestCreateReservation_MissingGuestFields(t *testing.T) {
	db := testDB(t)
	svc := NewReservationService(db)
	class := seedClass(t, db, "Deluxe King Suite", 12000)
	seedInstance(t, db, class, "101", models.RoomStatusAvailable)

	input := validInput(class, nil)
	input.GuestEmail = ""
	input.GuestPhone = "  "

	_, err := svc.CreateReservation(input)
	require.ErrorIs(t, err, ErrValidation)
	assert.Contains(t, err.Error(), "guestEmail")
	assert.Contains(t, err.Error(), "guestPhone")

	var count int64
	db.Model(&models.Reservation{}).Count(&count)
	assert.EqualValues(t, 0, count, "validation failures must not write")
}

func TestCreateReservation_UnknownClassAndInstance(t *testing.T) {
	db := testDB(t)
	svc := NewReservationService(db)
	class := seedClass(t, db, "Deluxe King Suite", 12000)

	input := validInput(class, nil)
	input.RoomClassID = 999
	_, err := svc.CreateReservation(input)
	assert.ErrorIs(t, err, ErrNotFound)

	missing := uint(888)
	input = validInput(class, &missing)
	_, err = svc.CreateReservation(input)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCreateReservation_InstanceFromOtherClass(t *testing.T) {
	db := testDB(t)
	svc := NewReservationService(db)
	deluxe := seedClass(t, db, "Deluxe King Suite", 12000)
	family := seedClass(t, db, "Family Room", 14500)
	other := seedInstance(t, db, family, "401", models.RoomStatusAvailable)

	otherID := other.ID
	_, err := svc.CreateReservation(validInput(deluxe, &otherID))
	assert.ErrorIs(t, err, ErrValidation)
}

func TestCreateReservation_Idempotent(t *testing.T) {
	db := testDB(t)
	svc := NewReservationService(db)
	class := seedClass(t, db, "Deluxe King Suite", 12000)
	instance := seedInstance(t, db, class, "101", models.RoomStatusAvailable)

	instanceID := instance.ID
	first, err := svc.CreateReservation(validInput(class, &instanceID))
	require.NoError(t, err)

	second, err := svc.CreateReservation(validInput(class, &instanceID))
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, first.ReferenceCode, second.ReferenceCode)

	var reservations, logs int64
	db.Model(&models.Reservation{}).Count(&reservations)
	db.Model(&models.ReservationStatusLog{}).Count(&logs)
	assert.EqualValues(t, 1, reservations)
	assert.EqualValues(t, 1, logs)
}

func TestCreateReservation_RoomAlreadyOccupied(t *testing.T) {
	db := testDB(t)
	svc := NewReservationService(db)
	class := seedClass(t, db, "Deluxe King Suite", 12000)
	instance := seedInstance(t, db, class, "101", models.RoomStatusOccupied)

	instanceID := instance.ID
	input := validInput(class, &instanceID)
	input.IdempotencyKey = "key-occupied"
	_, err := svc.CreateReservation(input)
	assert.ErrorIs(t, err, ErrRoomNoLongerAvailable)
}

func TestCreateReservation_OverlappingHold(t *testing.T) {
	db := testDB(t)
	svc := NewReservationService(db)
	class := seedClass(t, db, "Deluxe King Suite", 12000)
	instance := seedInstance(t, db, class, "101", models.RoomStatusAvailable)

	// A holding reservation exists even though housekeeping says available
	// (e.g. inconsistent import); the commit-time re-check must catch it.
	seedReservation(t, db, class, instance, models.ReservationConfirmed, "2024-03-02", "2024-03-06")

	instanceID := instance.ID
	input := validInput(class, &instanceID)
	input.IdempotencyKey = "key-overlap"
	_, err := svc.CreateReservation(input)
	assert.ErrorIs(t, err, ErrRoomNoLongerAvailable)

	// Back-to-back with the existing hold succeeds.
	input.CheckinDate = "2024-03-06"
	input.CheckoutDate = "2024-03-08"
	reservation, err := svc.CreateReservation(input)
	require.NoError(t, err)
	assert.Equal(t, 2, reservation.Nights)
}

func TestCreateReservation_FallbackPicksLowestRoomNumber(t *testing.T) {
	db := testDB(t)
	svc := NewReservationService(db)
	class := seedClass(t, db, "Deluxe King Suite", 12000)
	seedInstance(t, db, class, "202", models.RoomStatusAvailable)
	low := seedInstance(t, db, class, "101", models.RoomStatusClean)

	input := validInput(class, nil)
	input.IdempotencyKey = "key-fallback"
	reservation, err := svc.CreateReservation(input)
	require.NoError(t, err)
	require.NotNil(t, reservation.RoomInstanceID)
	assert.Equal(t, low.ID, *reservation.RoomInstanceID)
}

func TestCreateReservation_NoRoomsLeft(t *testing.T) {
	db := testDB(t)
	svc := NewReservationService(db)
	class := seedClass(t, db, "Deluxe King Suite", 12000)
	seedInstance(t, db, class, "101", models.RoomStatusOccupied)

	input := validInput(class, nil)
	input.IdempotencyKey = "key-none-left"
	_, err := svc.CreateReservation(input)
	assert.ErrorIs(t, err, ErrRoomNoLongerAvailable)
}

func TestCreateReservation_CustomPriceOverride(t *testing.T) {
	db := testDB(t)
	svc := NewReservationService(db)
	class := seedClass(t, db, "Deluxe King Suite", 12000)
	instance := seedInstance(t, db, class, "101", models.RoomStatusAvailable)
	custom := 9990.0
	require.NoError(t, db.Model(instance).Update("custom_price", custom).Error)

	instanceID := instance.ID
	input := validInput(class, &instanceID)
	input.CheckinDate = "2024-03-01"
	input.CheckoutDate = "2024-03-03"
	reservation, err := svc.CreateReservation(input)
	require.NoError(t, err)
	assert.Equal(t, 9990.0, reservation.RoomRate)
	assert.Equal(t, 19980.0, reservation.TotalPrice)
}

func TestCreateReservation_DoubleBookingRace(t *testing.T) {
	db := testDB(t)
	svc := NewReservationService(db)
	class := seedClass(t, db, "Deluxe King Suite", 12000)
	instance := seedInstance(t, db, class, "101", models.RoomStatusAvailable)

	// Two guests picked the same room from the same availability result;
	// only the first commit wins.
	instanceID := instance.ID
	first := validInput(class, &instanceID)
	first.IdempotencyKey = "key-guest-a"
	_, err := svc.CreateReservation(first)
	require.NoError(t, err)

	second := validInput(class, &instanceID)
	second.IdempotencyKey = "key-guest-b"
	second.GuestName = "Riley Chen"
	second.GuestEmail = "riley@example.com"
	_, err = svc.CreateReservation(second)
	require.ErrorIs(t, err, ErrRoomNoLongerAvailable)

	var count int64
	db.Model(&models.Reservation{}).Count(&count)
	assert.EqualValues(t, 1, count)
}

func TestTransitionReservation_FullHappyPath(t *testing.T) {
	db := testDB(t)
	svc := NewReservationService(db)
	availability := NewAvailabilityService(db)
	class := seedClass(t, db, "Deluxe King Suite", 12000)
	seedInstance(t, db, class, "101", models.RoomStatusAvailable)

	result, err := availability.CheckAvailability(class.ID, "2024-06-10", "2024-06-12", 1)
	require.NoError(t, err)
	require.GreaterOrEqual(t, result.AvailableCount, 1)

	chosen := result.Instances[0].ID
	input := validInput(class, &chosen)
	input.CheckinDate = "2024-06-10"
	input.CheckoutDate = "2024-06-12"
	input.IdempotencyKey = "key-scenario"
	reservation, err := svc.CreateReservation(input)
	require.NoError(t, err)
	assert.Equal(t, 2, reservation.Nights)

	reservation, err = svc.TransitionReservation(reservation.ID, models.ReservationCheckedIn, "frontdesk@hotel.local", "")
	require.NoError(t, err)
	assert.Equal(t, models.ReservationCheckedIn, reservation.Status)
	require.NotNil(t, reservation.ActualCheckIn)

	reservation, err = svc.CheckoutReservation(reservation.ID, "frontdesk@hotel.local")
	require.NoError(t, err)
	assert.Equal(t, models.ReservationCheckedOut, reservation.Status)
	require.NotNil(t, reservation.ActualCheckOut)

	var room models.RoomInstance
	require.NoError(t, db.First(&room, chosen).Error)
	assert.Equal(t, models.RoomStatusDirty, room.Status)
	assert.Equal(t, "Guest checked out", room.StatusNotes)

	// created + checked-in + checked-out
	assert.Len(t, reservation.History, 3)
}

func TestTransitionReservation_GuardsIllegalMoves(t *testing.T) {
	db := testDB(t)
	svc := NewReservationService(db)
	class := seedClass(t, db, "Deluxe King Suite", 12000)
	instance := seedInstance(t, db, class, "101", models.RoomStatusAvailable)

	pending := seedReservation(t, db, class, instance, models.ReservationPending, "2024-03-01", "2024-03-04")

	_, err := svc.TransitionReservation(pending.ID, models.ReservationCheckedIn, "frontdesk@hotel.local", "")
	require.ErrorIs(t, err, ErrInvalidStateTransition)

	var unchanged models.Reservation
	require.NoError(t, db.First(&unchanged, pending.ID).Error)
	assert.Equal(t, models.ReservationPending, unchanged.Status)

	var logs int64
	db.Model(&models.ReservationStatusLog{}).Where("reservation_id = ?", pending.ID).Count(&logs)
	assert.EqualValues(t, 0, logs, "failed transitions must not touch the audit log")

	_, err = svc.TransitionReservation(pending.ID, models.ReservationPending, "frontdesk@hotel.local", "")
	assert.ErrorIs(t, err, ErrInvalidStateTransition)

	_, err = svc.TransitionReservation(pending.ID, "teleported", "frontdesk@hotel.local", "")
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.TransitionReservation(12345, models.ReservationCancelled, "frontdesk@hotel.local", "")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestTransitionReservation_ConfirmingPendingClaimsRoom(t *testing.T) {
	db := testDB(t)
	svc := NewReservationService(db)
	class := seedClass(t, db, "Deluxe King Suite", 12000)
	instance := seedInstance(t, db, class, "101", models.RoomStatusAvailable)

	pending := seedReservation(t, db, class, instance, models.ReservationPending, "2024-03-01", "2024-03-04")

	reservation, err := svc.TransitionReservation(pending.ID, models.ReservationConfirmed, "frontdesk@hotel.local", "")
	require.NoError(t, err)
	assert.Equal(t, models.ReservationConfirmed, reservation.Status)

	var room models.RoomInstance
	require.NoError(t, db.First(&room, instance.ID).Error)
	assert.Equal(t, models.RoomStatusOccupied, room.Status)
}

func TestTransitionReservation_ConfirmingPendingFailsWhenRoomTaken(t *testing.T) {
	db := testDB(t)
	svc := NewReservationService(db)
	class := seedClass(t, db, "Deluxe King Suite", 12000)
	instance := seedInstance(t, db, class, "101", models.RoomStatusOccupied)

	pending := seedReservation(t, db, class, instance, models.ReservationPending, "2024-03-01", "2024-03-04")

	_, err := svc.TransitionReservation(pending.ID, models.ReservationConfirmed, "frontdesk@hotel.local", "")
	require.ErrorIs(t, err, ErrRoomNoLongerAvailable)

	// The failed claim rolls the whole transition back.
	var unchanged models.Reservation
	require.NoError(t, db.First(&unchanged, pending.ID).Error)
	assert.Equal(t, models.ReservationPending, unchanged.Status)
}

func TestTransitionReservation_TerminalStatesAreFinal(t *testing.T) {
	db := testDB(t)
	svc := NewReservationService(db)
	class := seedClass(t, db, "Deluxe King Suite", 12000)
	instance := seedInstance(t, db, class, "101", models.RoomStatusDirty)

	done := seedReservation(t, db, class, instance, models.ReservationCheckedOut, "2024-03-01", "2024-03-04")
	_, err := svc.TransitionReservation(done.ID, models.ReservationCancelled, "frontdesk@hotel.local", "")
	assert.ErrorIs(t, err, ErrInvalidStateTransition)
}

func TestTransitionReservation_CancelReleasesRoom(t *testing.T) {
	db := testDB(t)
	svc := NewReservationService(db)
	class := seedClass(t, db, "Deluxe King Suite", 12000)
	instance := seedInstance(t, db, class, "101", models.RoomStatusAvailable)

	instanceID := instance.ID
	input := validInput(class, &instanceID)
	input.IdempotencyKey = "key-cancel"
	reservation, err := svc.CreateReservation(input)
	require.NoError(t, err)

	reservation, err = svc.TransitionReservation(reservation.ID, models.ReservationCancelled, "manager@hotel.local", "guest no-show")
	require.NoError(t, err)
	assert.Equal(t, models.ReservationCancelled, reservation.Status)

	var room models.RoomInstance
	require.NoError(t, db.First(&room, instance.ID).Error)
	assert.Equal(t, models.RoomStatusAvailable, room.Status)

	// The room is bookable again for the same dates.
	rebooked := validInput(class, &instanceID)
	rebooked.IdempotencyKey = "key-rebook"
	rebooked.GuestEmail = "riley@example.com"
	_, err = svc.CreateReservation(rebooked)
	require.NoError(t, err)
}

func TestTransitionReservation_AuditEntryCarriesActorAndNote(t *testing.T) {
	db := testDB(t)
	svc := NewReservationService(db)
	class := seedClass(t, db, "Deluxe King Suite", 12000)
	instance := seedInstance(t, db, class, "101", models.RoomStatusAvailable)

	confirmed := seedReservation(t, db, class, instance, models.ReservationConfirmed, "2024-03-01", "2024-03-04")
	_, err := svc.TransitionReservation(confirmed.ID, models.ReservationCancelled, "manager@hotel.local", "payment declined")
	require.NoError(t, err)

	var entry models.ReservationStatusLog
	require.NoError(t, db.Where("reservation_id = ?", confirmed.ID).Order("id DESC").First(&entry).Error)
	assert.Equal(t, models.ReservationCancelled, entry.Status)
	assert.Equal(t, "manager@hotel.local", entry.UpdatedBy)
	assert.Equal(t, "payment declined", entry.Notes)
}

func TestLookup(t *testing.T) {
	db := testDB(t)
	svc := NewReservationService(db)
	class := seedClass(t, db, "Deluxe King Suite", 12000)
	instance := seedInstance(t, db, class, "101", models.RoomStatusAvailable)

	reservation := seedReservation(t, db, class, instance, models.ReservationConfirmed, "2024-03-01", "2024-03-04")

	found, err := svc.Lookup(reservation.ReferenceCode, "JORDAN@example.com")
	require.NoError(t, err)
	assert.Equal(t, reservation.ID, found.ID)

	_, err = svc.Lookup(reservation.ReferenceCode, "someone-else@example.com")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = svc.Lookup("", "jordan@example.com")
	assert.ErrorIs(t, err, ErrValidation)
}

func TestCalcNights(t *testing.T) {
	ci, co, err := parseStayWindow("2024-03-01", "2024-03-04")
	require.NoError(t, err)
	assert.Equal(t, 3, calcNights(ci, co))

	ci, co, err = parseStayWindow("2024-06-10", "2024-06-11")
	require.NoError(t, err)
	assert.Equal(t, 1, calcNights(ci, co))

	// RFC3339 timestamps normalize to their dates.
	ci, co, err = parseStayWindow("2024-03-01T15:04:05Z", "2024-03-04T09:00:00Z")
	require.NoError(t, err)
	assert.Equal(t, 3, calcNights(ci, co))
	assert.Equal(t, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), ci)

	// Offset timestamps fold onto their UTC date before comparing against a
	// date-only checkout.
	ci, co, err = parseStayWindow("2024-03-02T01:00:00+07:00", "2024-03-04")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), ci)
	assert.Equal(t, time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC), co)
	assert.Equal(t, 3, calcNights(ci, co))
}
