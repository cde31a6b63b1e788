package controllers

import (
	"net/http"
	"strconv"

	"hotel-booking-backend/services"
	"hotel-booking-backend/utils"

	"github.com/gin-gonic/gin"
)

type RoomClassController struct {
	Service *services.RoomClassService
}

func NewRoomClassController(service *services.RoomClassService) *RoomClassController {
	return &RoomClassController{Service: service}
}

func parseIDParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || id == 0 {
		utils.JSONError(c, http.StatusBadRequest, "invalid id")
		return 0, false
	}
	return uint(id), true
}

// GetPublicRoomClasses serves the guest-facing catalog (cached).
func (rc *RoomClassController) GetPublicRoomClasses(c *gin.Context) {
	classes, err := rc.Service.PublicList(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, classes)
}

// GetRoomClasses is the admin listing, retired-but-not-deleted included.
func (rc *RoomClassController) GetRoomClasses(c *gin.Context) {
	classes, err := rc.Service.List()
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, classes)
}

func (rc *RoomClassController) GetRoomClass(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	class, err := rc.Service.GetByID(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, class)
}

func (rc *RoomClassController) CreateRoomClass(c *gin.Context) {
	var input services.CreateRoomClassInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid request payload: "+err.Error())
		return
	}
	class, err := rc.Service.Create(input, actor(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, class)
}

func (rc *RoomClassController) UpdateRoomClass(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	var updates map[string]interface{}
	if err := c.ShouldBindJSON(&updates); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid request payload: "+err.Error())
		return
	}
	class, err := rc.Service.Update(id, updates, actor(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, class)
}

func (rc *RoomClassController) DeleteRoomClass(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	if err := rc.Service.Delete(id, actor(c)); err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"message": "Room class deleted"})
}
