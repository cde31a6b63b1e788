package services

import (
	"fmt"
	"math"
	"time"

	"hotel-booking-backend/models"
)

// parseDate accepts the date-only format the booking forms send, falling back
// to RFC3339 for API callers that send full timestamps.
func parseDate(value string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", value); err == nil {
		return t, nil
	}
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("%w: invalid date %q, expected YYYY-MM-DD", ErrValidation, value)
}

// normalizeDate truncates to UTC midnight so stays are compared day-to-day
// regardless of the offset the caller sent.
func normalizeDate(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// parseStayWindow parses and validates a [checkin, checkout) pair.
func parseStayWindow(checkin, checkout string) (time.Time, time.Time, error) {
	ci, err := parseDate(checkin)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	co, err := parseDate(checkout)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	ci = normalizeDate(ci)
	co = normalizeDate(co)
	if !co.After(ci) {
		return time.Time{}, time.Time{}, ErrInvalidDateRange
	}
	return ci, co, nil
}

// calcNights counts billable nights: ceil of the stay length in days.
func calcNights(checkin, checkout time.Time) int {
	n := int(math.Ceil(checkout.Sub(checkin).Hours() / 24))
	if n < 1 {
		n = 1
	}
	return n
}

// roomRate is the single place the nightly rate is decided: the instance's
// custom price when set, the class base price otherwise.
func roomRate(class *models.RoomClass, instance *models.RoomInstance) float64 {
	if instance != nil && instance.CustomPrice != nil && *instance.CustomPrice > 0 {
		return *instance.CustomPrice
	}
	return class.BasePrice
}
