package controllers

import (
	"errors"
	"log"
	"net/http"

	"hotel-booking-backend/services"
	"hotel-booking-backend/utils"

	"github.com/gin-gonic/gin"
)

// respondServiceError maps the service error taxonomy onto HTTP statuses.
// Validation detail is surfaced verbatim; storage errors are logged and
// hidden behind a generic message.
func respondServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrValidation):
		utils.JSONError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, services.ErrNotFound):
		utils.JSONError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, services.ErrRoomNoLongerAvailable):
		utils.JSONError(c, http.StatusConflict, "Room is no longer available for the selected dates, please choose another room")
	case errors.Is(err, services.ErrInvalidStateTransition):
		utils.JSONError(c, http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, services.ErrConflict):
		utils.JSONError(c, http.StatusConflict, err.Error())
	default:
		log.Printf("❌ internal error: %v", err)
		utils.JSONError(c, http.StatusInternalServerError, "Internal server error")
	}
}

// actor returns the authenticated admin identity, or "guest" on public
// routes.
func actor(c *gin.Context) string {
	if email := c.GetString("adminEmail"); email != "" {
		return email
	}
	return "guest"
}
