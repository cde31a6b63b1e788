package config

import (
	"fmt"
	"log"
	"net/url"
	"os"
	"strings"
	"time"

	"hotel-booking-backend/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

func envOrDefault(key, def string) string {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return def
	}
	return value
}

func mysqlDSNFromURL(raw string) (string, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}

	user := u.User.Username()
	pass, _ := u.User.Password()
	host := u.Hostname()
	port := u.Port()
	if port == "" {
		port = "3306"
	}

	dbName := strings.TrimPrefix(u.Path, "/")
	if dbName == "" {
		return "", fmt.Errorf("mysql url missing database name")
	}

	q := u.Query()
	if q.Get("charset") == "" {
		q.Set("charset", "utf8mb4")
	}
	if q.Get("parseTime") == "" {
		q.Set("parseTime", "True")
	}
	if q.Get("loc") == "" {
		q.Set("loc", "Local")
	}

	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?%s", user, pass, host, port, dbName, q.Encode()), nil
}

func resolveMySQLDSN() (string, error) {
	raw := strings.TrimSpace(os.Getenv("MYSQL_URL"))
	if raw == "" {
		raw = strings.TrimSpace(os.Getenv("DATABASE_URL"))
	}

	if raw != "" {
		if strings.HasPrefix(raw, "mysql://") {
			return mysqlDSNFromURL(raw)
		}
		return raw, nil
	}

	user := envOrDefault("DB_USER", "root")
	pass := envOrDefault("DB_PASS", "")
	host := envOrDefault("DB_HOST", "127.0.0.1")
	port := envOrDefault("DB_PORT", "3306")
	dbName := envOrDefault("DB_NAME", "hotel_booking_db")

	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		user, pass, host, port, dbName,
	), nil
}

// ConnectDatabase opens the MySQL connection, migrates the schema in
// parent->child order, and runs the idempotent seed.
func ConnectDatabase() error {
	dsn, err := resolveMySQLDSN()
	if err != nil {
		return err
	}

	newLogger := logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		logger.Config{
			SlowThreshold: time.Second,
			LogLevel:      logger.Warn,
			Colorful:      true,
		},
	)

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{Logger: newLogger})
	if err != nil {
		return err
	}

	DB = db

	if err := DB.AutoMigrate(
		&models.Admin{},
		&models.RoomClass{},
		&models.RoomInstance{},
		&models.Reservation{},
		&models.ReservationStatusLog{},
	); err != nil {
		return err
	}

	SeedDatabase()
	return nil
}

// SeedDatabase populates an empty database with a default admin and a small
// starter inventory. Safe to run on every boot.
func SeedDatabase() {
	var adminCount int64
	DB.Model(&models.Admin{}).Count(&adminCount)
	if adminCount == 0 {
		email := envOrDefault("ADMIN_EMAIL", "admin@hotel.local")
		password := envOrDefault("ADMIN_PASSWORD", "admin123")
		hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			log.Printf("warning: failed to hash default admin password: %v", err)
		} else {
			admin := models.Admin{
				FullName: "Admin User",
				Email:    email,
				Password: string(hash),
			}
			if err := DB.Create(&admin).Error; err != nil {
				log.Printf("warning: failed to create default admin: %v", err)
			} else {
				log.Println("Default admin seeded")
			}
		}
	}

	var classCount int64
	DB.Model(&models.RoomClass{}).Count(&classCount)
	if classCount > 0 {
		return
	}

	classes := []models.RoomClass{
		{
			Name: "Deluxe King Suite", Slug: "deluxe-king-suite",
			Description: "Spacious suite with a king bed and city view",
			Category:    "room", Subcategory: "deluxe",
			CapacityAdults: 2, CapacityChildren: 1,
			BasePrice: 12000, ListPrice: 15000, DiscountPercent: 20,
			BedType: "king", RoomSize: 42, View: "city view",
			MinStay: 1, MaxStay: 30, CheckInTime: "14:00", CheckOutTime: "11:00",
			TotalInventory: 4, IsActive: true,
		},
		{
			Name: "Executive Twin", Slug: "executive-twin",
			Description: "Twin-bedded room on the executive floors",
			Category:    "room", Subcategory: "executive",
			CapacityAdults: 2,
			BasePrice:      9000, ListPrice: 10500, DiscountPercent: 14,
			BedType: "twin", RoomSize: 34, View: "garden view",
			MinStay: 1, MaxStay: 30, CheckInTime: "14:00", CheckOutTime: "11:00",
			TotalInventory: 6, IsActive: true,
		},
		{
			Name: "Family Room", Slug: "family-room",
			Description: "Two queen beds, sleeps a family of five",
			Category:    "room", Subcategory: "family",
			CapacityAdults: 2, CapacityChildren: 3,
			BasePrice: 14500, ListPrice: 16000, DiscountPercent: 9,
			BedType: "queen", RoomSize: 55,
			MinStay: 1, MaxStay: 30, CheckInTime: "14:00", CheckOutTime: "11:00",
			TotalInventory: 3, IsActive: true,
		},
	}
	if err := DB.Create(&classes).Error; err != nil {
		log.Printf("warning: failed to seed room classes: %v", err)
		return
	}
	log.Println("Room classes seeded")

	instanceNumbers := map[string][]string{
		"deluxe-king-suite": {"101", "102", "201", "202"},
		"executive-twin":    {"301", "302", "303", "304", "305", "306"},
		"family-room":       {"401", "402", "403"},
	}
	for i := range classes {
		numbers := instanceNumbers[classes[i].Slug]
		for _, number := range numbers {
			instance := models.RoomInstance{
				RoomNumber:  number,
				RoomClassID: classes[i].ID,
				Floor:       int(number[0] - '0'),
				Status:      models.RoomStatusAvailable,
				IsActive:    true,
			}
			if err := DB.Create(&instance).Error; err != nil {
				log.Printf("warning: failed to seed room %s: %v", number, err)
			}
		}
		if err := DB.Model(&classes[i]).Update("active_rooms", len(numbers)).Error; err != nil {
			log.Printf("warning: failed to update active rooms for %s: %v", classes[i].Slug, err)
		}
	}
	log.Println("Room instances seeded")
}
