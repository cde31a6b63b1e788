package services

import (
	"fmt"
	"testing"

	"hotel-booking-backend/models"

	"github.com/stretchr/testify/require"
	gormsqlite "gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	_ "modernc.org/sqlite"
)

func testDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(
		gormsqlite.New(gormsqlite.Config{
			DriverName: "sqlite",
			DSN:        ":memory:",
		}),
		&gorm.Config{Logger: logger.Default.LogMode(logger.Silent)},
	)
	require.NoError(t, err, "failed to open sqlite db")

	require.NoError(t, db.AutoMigrate(
		&models.Admin{},
		&models.RoomClass{},
		&models.RoomInstance{},
		&models.Reservation{},
		&models.ReservationStatusLog{},
	))

	return db
}

func seedClass(t *testing.T, db *gorm.DB, name string, basePrice float64) *models.RoomClass {
	t.Helper()
	class := &models.RoomClass{
		Name:           name,
		Slug:           slugify(name),
		Description:    name + " room",
		Category:       "room",
		Subcategory:    "deluxe",
		CapacityAdults: 2,
		BasePrice:      basePrice,
		ListPrice:      basePrice,
		MinStay:        1,
		MaxStay:        30,
		CheckInTime:    "14:00",
		CheckOutTime:   "11:00",
		TotalInventory: 10,
		IsActive:       true,
	}
	require.NoError(t, db.Create(class).Error)
	return class
}

func seedInstance(t *testing.T, db *gorm.DB, class *models.RoomClass, roomNumber, status string) *models.RoomInstance {
	t.Helper()
	instance := &models.RoomInstance{
		RoomNumber:  roomNumber,
		RoomClassID: class.ID,
		Floor:       1,
		Status:      status,
		IsActive:    true,
	}
	require.NoError(t, db.Create(instance).Error)
	return instance
}

// seedReservation inserts a reservation row directly, bypassing the
// allocation transaction, for conflict-query tests.
func seedReservation(t *testing.T, db *gorm.DB, class *models.RoomClass, instance *models.RoomInstance, status, checkin, checkout string) *models.Reservation {
	t.Helper()
	ci, co, err := parseStayWindow(checkin, checkout)
	require.NoError(t, err)

	instanceID := instance.ID
	reservation := &models.Reservation{
		ReferenceCode:  "BKTEST-" + roomRefSuffix(t),
		IdempotencyKey: "idem-" + roomRefSuffix(t),
		GuestName:      "Jordan Blake",
		GuestEmail:     "jordan@example.com",
		GuestPhone:     "5550100",
		RoomClassID:    class.ID,
		RoomInstanceID: &instanceID,
		CheckinDate:    ci,
		CheckoutDate:   co,
		Nights:         calcNights(ci, co),
		Adults:         2,
		RoomRate:       class.BasePrice,
		TotalPrice:     class.BasePrice * float64(calcNights(ci, co)),
		Status:         status,
	}
	require.NoError(t, db.Create(reservation).Error)
	return reservation
}

var refCounter int

func roomRefSuffix(t *testing.T) string {
	t.Helper()
	refCounter++
	return fmt.Sprintf("%s-%d", t.Name(), refCounter)
}
