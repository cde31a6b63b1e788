package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"hotel-booking-backend/models"
	"hotel-booking-backend/utils"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ReservationService owns the allocation transaction and the reservation
// state machine. All mutations run inside a single DB transaction so a failed
// step leaves no partial state behind.
type ReservationService struct {
	DB *gorm.DB
}

func NewReservationService(db *gorm.DB) *ReservationService {
	return &ReservationService{DB: db}
}

type CreateReservationInput struct {
	GuestName  string `json:"guestName"`
	GuestEmail string `json:"guestEmail"`
	GuestPhone string `json:"guestPhone"`
	Address    string `json:"address"`
	Pincode    string `json:"pincode"`
	City       string `json:"city"`
	State      string `json:"state"`

	RoomClassID    uint  `json:"roomClassId"`
	RoomInstanceID *uint `json:"roomInstanceId"`

	CheckinDate  string `json:"checkinDate"`
	CheckoutDate string `json:"checkoutDate"`

	Adults   int `json:"adults"`
	Children int `json:"children"`

	PaymentMethod   string  `json:"paymentMethod"`
	Deposit         float64 `json:"deposit"`
	SpecialRequests string  `json:"specialRequests"`
	Notes           string  `json:"notes"`

	IdempotencyKey string `json:"idempotencyKey"`
	CreatedBy      string `json:"-"`
}

func (in *CreateReservationInput) validate() error {
	missing := []string{}
	if strings.TrimSpace(in.GuestName) == "" {
		missing = append(missing, "guestName")
	}
	if strings.TrimSpace(in.GuestEmail) == "" {
		missing = append(missing, "guestEmail")
	}
	if strings.TrimSpace(in.GuestPhone) == "" {
		missing = append(missing, "guestPhone")
	}
	if in.RoomClassID == 0 {
		missing = append(missing, "roomClassId")
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: missing required fields: %s", ErrValidation, strings.Join(missing, ", "))
	}
	if in.Adults < 1 {
		return fmt.Errorf("%w: at least one adult is required", ErrValidation)
	}
	if in.Children < 0 {
		return fmt.Errorf("%w: children must not be negative", ErrValidation)
	}
	return nil
}

// CreateReservation commits a reservation against one room instance.
//
// The availability result the guest saw is advisory: the chosen instance is
// re-checked inside the transaction, and the claim itself is a conditional
// update on the instance row, so two racing attempts for the same room can
// never both succeed. Submitting the same idempotency key again returns the
// reservation created the first time.
func (s *ReservationService) CreateReservation(input CreateReservationInput) (*models.Reservation, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}

	ci, co, err := parseStayWindow(input.CheckinDate, input.CheckoutDate)
	if err != nil {
		return nil, err
	}

	idemKey := strings.TrimSpace(input.IdempotencyKey)
	if idemKey == "" {
		idemKey = uuid.NewString()
	} else if existing, err := s.findByIdempotencyKey(idemKey); err != nil {
		return nil, err
	} else if existing != nil {
		return existing, nil
	}

	var class models.RoomClass
	if err := s.DB.Where("id = ? AND is_deleted = ?", input.RoomClassID, false).First(&class).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: room class %d", ErrNotFound, input.RoomClassID)
		}
		return nil, fmt.Errorf("failed to load room class: %w", err)
	}

	nights := calcNights(ci, co)
	if class.MinStay > 0 && nights < class.MinStay {
		return nil, fmt.Errorf("%w: minimum stay for %s is %d nights", ErrValidation, class.Name, class.MinStay)
	}
	if class.MaxStay > 0 && nights > class.MaxStay {
		return nil, fmt.Errorf("%w: maximum stay for %s is %d nights", ErrValidation, class.Name, class.MaxStay)
	}

	var reservationID uint
	txErr := s.DB.Transaction(func(tx *gorm.DB) error {
		instance, err := s.resolveInstance(tx, &class, input.RoomInstanceID, ci, co)
		if err != nil {
			return err
		}

		// Claim the room with a conditional update; losing the race means
		// zero rows change and nothing is committed.
		claim := tx.Model(&models.RoomInstance{}).
			Where("id = ? AND status IN ? AND is_active = ? AND is_deleted = ?",
				instance.ID, models.AllocatableRoomStatuses, true, false).
			Updates(map[string]interface{}{
				"status":           models.RoomStatusOccupied,
				"last_modified_by": input.CreatedBy,
			})
		if claim.Error != nil {
			return fmt.Errorf("failed to claim room %s: %w", instance.RoomNumber, claim.Error)
		}
		if claim.RowsAffected == 0 {
			return fmt.Errorf("%w: room %s was taken while booking", ErrRoomNoLongerAvailable, instance.RoomNumber)
		}

		rate := roomRate(&class, instance)
		instanceID := instance.ID
		reservation := models.Reservation{
			ReferenceCode:   utils.GenerateReferenceCode(),
			IdempotencyKey:  idemKey,
			GuestName:       strings.TrimSpace(input.GuestName),
			GuestEmail:      strings.TrimSpace(input.GuestEmail),
			GuestPhone:      strings.TrimSpace(input.GuestPhone),
			Address:         input.Address,
			Pincode:         input.Pincode,
			City:            input.City,
			State:           input.State,
			RoomClassID:     class.ID,
			RoomInstanceID:  &instanceID,
			CheckinDate:     ci,
			CheckoutDate:    co,
			Nights:          nights,
			Adults:          input.Adults,
			Children:        input.Children,
			RoomRate:        rate,
			TotalPrice:      rate * float64(nights),
			Deposit:         input.Deposit,
			PaymentMethod:   paymentMethodOrDefault(input.PaymentMethod),
			PaymentStatus:   paymentStatusForDeposit(input.Deposit),
			Status:          models.ReservationConfirmed,
			SpecialRequests: input.SpecialRequests,
			Notes:           input.Notes,
			CreatedBy:       input.CreatedBy,
		}

		if err := tx.Create(&reservation).Error; err != nil {
			if isDuplicateKeyErr(err) {
				return fmt.Errorf("%w: duplicate reservation submission", ErrConflict)
			}
			return fmt.Errorf("failed to create reservation: %w", err)
		}
		reservationID = reservation.ID

		logEntry := models.ReservationStatusLog{
			ReservationID: reservation.ID,
			Status:        models.ReservationConfirmed,
			UpdatedBy:     input.CreatedBy,
			Notes:         fmt.Sprintf("Reservation created, room %s allocated", instance.RoomNumber),
		}
		if err := tx.Create(&logEntry).Error; err != nil {
			return fmt.Errorf("failed to append status history: %w", err)
		}
		return nil
	})
	if txErr != nil {
		// A duplicate idempotency key lost a race with an identical retry;
		// hand back the reservation that retry created.
		if errors.Is(txErr, ErrConflict) {
			if existing, ferr := s.findByIdempotencyKey(idemKey); ferr == nil && existing != nil {
				return existing, nil
			}
		}
		return nil, txErr
	}

	return s.GetByID(reservationID)
}

// resolveInstance picks the room to claim: the caller's explicit choice after
// re-validating it, or the lowest free room number when no choice was made.
// Both paths use the same eligibility and overlap rules as CheckAvailability.
func (s *ReservationService) resolveInstance(tx *gorm.DB, class *models.RoomClass, instanceID *uint, ci, co time.Time) (*models.RoomInstance, error) {
	if instanceID == nil {
		var instance models.RoomInstance
		err := freeInstancesQuery(tx, class.ID, ci, co).First(&instance).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, fmt.Errorf("%w: no rooms available for the selected dates", ErrRoomNoLongerAvailable)
			}
			return nil, fmt.Errorf("failed to find a free room: %w", err)
		}
		return &instance, nil
	}

	var instance models.RoomInstance
	if err := tx.Where("id = ? AND is_deleted = ?", *instanceID, false).First(&instance).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: room instance %d", ErrNotFound, *instanceID)
		}
		return nil, fmt.Errorf("failed to load room instance: %w", err)
	}
	if instance.RoomClassID != class.ID {
		return nil, fmt.Errorf("%w: room %s does not belong to %s", ErrValidation, instance.RoomNumber, class.Name)
	}
	if !instance.Allocatable() {
		return nil, fmt.Errorf("%w: room %s is not available (%s)", ErrRoomNoLongerAvailable, instance.RoomNumber, instance.Status)
	}
	overlap, err := instanceHasOverlap(tx, instance.ID, ci, co)
	if err != nil {
		return nil, fmt.Errorf("failed to check conflicting reservations: %w", err)
	}
	if overlap {
		return nil, fmt.Errorf("%w: room %s is already booked for the selected dates", ErrRoomNoLongerAvailable, instance.RoomNumber)
	}
	return &instance, nil
}

func (s *ReservationService) findByIdempotencyKey(key string) (*models.Reservation, error) {
	var existing models.Reservation
	err := s.reservationQuery().Where("idempotency_key = ?", key).First(&existing).Error
	if err == nil {
		return &existing, nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return nil, fmt.Errorf("failed to check idempotency key: %w", err)
}

func paymentMethodOrDefault(method string) string {
	switch method {
	case "cash", "card", "online":
		return method
	}
	return "cash"
}

func paymentStatusForDeposit(deposit float64) string {
	if deposit > 0 {
		return "partial"
	}
	return "pending"
}

// reservationTransitions is the state machine: every legal move from each
// non-terminal status.
var reservationTransitions = map[string][]string{
	models.ReservationPending:   {models.ReservationConfirmed, models.ReservationCancelled},
	models.ReservationConfirmed: {models.ReservationCheckedIn, models.ReservationCancelled},
	models.ReservationCheckedIn: {models.ReservationCheckedOut},
}

func transitionAllowed(from, to string) bool {
	for _, allowed := range reservationTransitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

// TransitionReservation moves a reservation through its state machine,
// applying the room side effects and appending one audit entry. Illegal moves
// fail with ErrInvalidStateTransition and change nothing.
func (s *ReservationService) TransitionReservation(id uint, newStatus, actor, note string) (*models.Reservation, error) {
	switch newStatus {
	case models.ReservationPending:
		return nil, fmt.Errorf("%w: cannot transition back to pending", ErrInvalidStateTransition)
	case models.ReservationConfirmed, models.ReservationCheckedIn, models.ReservationCheckedOut, models.ReservationCancelled:
	default:
		return nil, fmt.Errorf("%w: unknown status %q", ErrValidation, newStatus)
	}

	txErr := s.DB.Transaction(func(tx *gorm.DB) error {
		var reservation models.Reservation
		if err := tx.First(&reservation, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: reservation %d", ErrNotFound, id)
			}
			return fmt.Errorf("failed to load reservation: %w", err)
		}

		if !transitionAllowed(reservation.Status, newStatus) {
			return fmt.Errorf("%w: cannot move from %s to %s", ErrInvalidStateTransition, reservation.Status, newStatus)
		}

		now := time.Now().UTC()
		updates := map[string]interface{}{"status": newStatus}
		switch newStatus {
		case models.ReservationCheckedIn:
			updates["actual_check_in"] = now
		case models.ReservationCheckedOut:
			updates["actual_check_out"] = now
		}

		// Guard on the status we just read so a concurrent transition cannot
		// be silently overwritten.
		res := tx.Model(&models.Reservation{}).
			Where("id = ? AND status = ?", reservation.ID, reservation.Status).
			Updates(updates)
		if res.Error != nil {
			return fmt.Errorf("failed to update reservation: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("%w: reservation %d changed concurrently", ErrConflict, reservation.ID)
		}

		if err := s.applyRoomSideEffect(tx, &reservation, newStatus, actor); err != nil {
			return err
		}

		logEntry := models.ReservationStatusLog{
			ReservationID: reservation.ID,
			Status:        newStatus,
			UpdatedBy:     actor,
			Notes:         note,
		}
		if logEntry.Notes == "" {
			logEntry.Notes = fmt.Sprintf("Status updated to %s", newStatus)
		}
		if err := tx.Create(&logEntry).Error; err != nil {
			return fmt.Errorf("failed to append status history: %w", err)
		}
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}

	return s.GetByID(id)
}

// applyRoomSideEffect mutates the bound room instance for transitions that
// touch housekeeping: confirmation claims the room, checkout dirties it,
// cancellation releases it.
func (s *ReservationService) applyRoomSideEffect(tx *gorm.DB, reservation *models.Reservation, newStatus, actor string) error {
	if reservation.RoomInstanceID == nil {
		return nil
	}
	switch newStatus {
	case models.ReservationConfirmed:
		// A pending reservation never claimed its room; take it now, with
		// the same conditional update the booking path uses.
		res := tx.Model(&models.RoomInstance{}).
			Where("id = ? AND status IN ? AND is_active = ? AND is_deleted = ?",
				*reservation.RoomInstanceID, models.AllocatableRoomStatuses, true, false).
			Updates(map[string]interface{}{
				"status":           models.RoomStatusOccupied,
				"last_modified_by": actor,
			})
		if res.Error != nil {
			return fmt.Errorf("failed to claim room: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("%w: room was taken while the reservation was pending", ErrRoomNoLongerAvailable)
		}
	case models.ReservationCheckedOut:
		err := tx.Model(&models.RoomInstance{}).
			Where("id = ?", *reservation.RoomInstanceID).
			Updates(map[string]interface{}{
				"status":           models.RoomStatusDirty,
				"status_notes":     "Guest checked out",
				"last_modified_by": actor,
			}).Error
		if err != nil {
			return fmt.Errorf("failed to mark room dirty: %w", err)
		}
	case models.ReservationCancelled:
		// Release only if this reservation's claim is still in place.
		err := tx.Model(&models.RoomInstance{}).
			Where("id = ? AND status = ?", *reservation.RoomInstanceID, models.RoomStatusOccupied).
			Updates(map[string]interface{}{
				"status":           models.RoomStatusAvailable,
				"status_notes":     "Released by cancellation",
				"last_modified_by": actor,
			}).Error
		if err != nil {
			return fmt.Errorf("failed to release room: %w", err)
		}
	}
	return nil
}

// CheckoutReservation is the front-desk shorthand for checked-in -> checked-out.
func (s *ReservationService) CheckoutReservation(id uint, actor string) (*models.Reservation, error) {
	return s.TransitionReservation(id, models.ReservationCheckedOut, actor, "Guest checked out")
}

func (s *ReservationService) reservationQuery() *gorm.DB {
	return s.DB.
		Preload("RoomClass").
		Preload("RoomInstance").
		Preload("History", func(db *gorm.DB) *gorm.DB {
			return db.Order("id ASC")
		})
}

func (s *ReservationService) GetByID(id uint) (*models.Reservation, error) {
	var reservation models.Reservation
	if err := s.reservationQuery().First(&reservation, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: reservation %d", ErrNotFound, id)
		}
		return nil, fmt.Errorf("failed to retrieve reservation: %w", err)
	}
	return &reservation, nil
}

// Lookup finds a guest's reservation by reference code and email, for the
// public confirmation page.
func (s *ReservationService) Lookup(referenceCode, guestEmail string) (*models.Reservation, error) {
	referenceCode = strings.TrimSpace(referenceCode)
	guestEmail = strings.TrimSpace(guestEmail)
	if referenceCode == "" || guestEmail == "" {
		return nil, fmt.Errorf("%w: reference code and email are required", ErrValidation)
	}
	var reservation models.Reservation
	err := s.reservationQuery().
		Where("reference_code = ? AND LOWER(guest_email) = LOWER(?)", referenceCode, guestEmail).
		First(&reservation).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: reservation %s", ErrNotFound, referenceCode)
		}
		return nil, fmt.Errorf("failed to retrieve reservation: %w", err)
	}
	return &reservation, nil
}

// GetAll lists reservations newest first with relations preloaded.
func (s *ReservationService) GetAll() ([]models.Reservation, error) {
	var list []models.Reservation
	if err := s.reservationQuery().Order("created_at DESC").Find(&list).Error; err != nil {
		return nil, fmt.Errorf("failed to retrieve reservations: %w", err)
	}
	return list, nil
}
