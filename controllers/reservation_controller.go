package controllers

import (
	"net/http"

	"hotel-booking-backend/services"
	"hotel-booking-backend/utils"

	"github.com/gin-gonic/gin"
)

type ReservationController struct {
	Service *services.ReservationService
}

func NewReservationController(service *services.ReservationService) *ReservationController {
	return &ReservationController{Service: service}
}

// CreateReservation is the booking submission endpoint. Guests hit it
// directly; the acting principal is recorded from the auth context when a
// staff member books on a guest's behalf.
func (rc *ReservationController) CreateReservation(c *gin.Context) {
	var input services.CreateReservationInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid request payload: "+err.Error())
		return
	}
	input.CreatedBy = actor(c)

	reservation, err := rc.Service.CreateReservation(input)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, reservation)
}

func (rc *ReservationController) GetReservations(c *gin.Context) {
	reservations, err := rc.Service.GetAll()
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, reservations)
}

func (rc *ReservationController) GetReservationDetails(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	reservation, err := rc.Service.GetByID(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, reservation)
}

// LookupReservation is the public confirmation lookup:
// ?reference=BK...&email=guest@example.com
func (rc *ReservationController) LookupReservation(c *gin.Context) {
	reservation, err := rc.Service.Lookup(c.Query("reference"), c.Query("email"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, reservation)
}

type transitionPayload struct {
	Status string `json:"status"`
	Notes  string `json:"notes"`
}

// TransitionReservation moves a reservation through its state machine.
func (rc *ReservationController) TransitionReservation(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	var payload transitionPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid request payload: "+err.Error())
		return
	}
	reservation, err := rc.Service.TransitionReservation(id, payload.Status, actor(c), payload.Notes)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, reservation)
}

// CheckoutReservation is the front-desk checkout shorthand.
func (rc *ReservationController) CheckoutReservation(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	reservation, err := rc.Service.CheckoutReservation(id, actor(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, reservation)
}
