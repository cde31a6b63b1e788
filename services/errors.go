package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-sql-driver/mysql"
)

// Service error taxonomy. Controllers translate these with errors.Is; wrapped
// detail is safe to surface to the caller.
var (
	ErrValidation             = errors.New("validation error")
	ErrNotFound               = errors.New("not found")
	ErrRoomNoLongerAvailable  = errors.New("room no longer available")
	ErrInvalidStateTransition = errors.New("invalid state transition")
	ErrConflict               = errors.New("conflict")
)

// ErrInvalidDateRange is a validation error; errors.Is matches both it and
// ErrValidation.
var ErrInvalidDateRange = fmt.Errorf("%w: check-out date must be after check-in date", ErrValidation)

// isDuplicateKeyErr detects unique-constraint violations on MySQL (error 1062)
// and on the SQLite databases used in tests.
func isDuplicateKeyErr(err error) bool {
	if err == nil {
		return false
	}
	var mysqlErr *mysql.MySQLError
	if errors.As(err, &mysqlErr) && mysqlErr.Number == 1062 {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "Duplicate entry") || strings.Contains(msg, "UNIQUE constraint failed")
}
