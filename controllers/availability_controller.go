package controllers

import (
	"net/http"

	"hotel-booking-backend/services"
	"hotel-booking-backend/utils"

	"github.com/gin-gonic/gin"
)

type AvailabilityController struct {
	Service *services.AvailabilityService
}

func NewAvailabilityController(service *services.AvailabilityService) *AvailabilityController {
	return &AvailabilityController{Service: service}
}

type availabilityPayload struct {
	RoomClassID  uint   `json:"roomClassId"`
	CheckinDate  string `json:"checkinDate"`
	CheckoutDate string `json:"checkoutDate"`
	RoomCount    int    `json:"roomCount"`
}

// CheckAvailability returns the free rooms of a class for a date range.
func (ac *AvailabilityController) CheckAvailability(c *gin.Context) {
	var payload availabilityPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid request payload: "+err.Error())
		return
	}
	if payload.RoomClassID == 0 {
		utils.JSONError(c, http.StatusBadRequest, "roomClassId is required")
		return
	}

	result, err := ac.Service.CheckAvailability(payload.RoomClassID, payload.CheckinDate, payload.CheckoutDate, payload.RoomCount)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, result)
}
