package controllers

import (
	"net/http"
	"strconv"

	"hotel-booking-backend/services"
	"hotel-booking-backend/utils"

	"github.com/gin-gonic/gin"
)

type RoomInstanceController struct {
	Service *services.RoomInstanceService
}

func NewRoomInstanceController(service *services.RoomInstanceService) *RoomInstanceController {
	return &RoomInstanceController{Service: service}
}

// GetRoomInstances lists rooms, filterable by ?roomClassId= and ?status=.
func (ric *RoomInstanceController) GetRoomInstances(c *gin.Context) {
	var roomClassID uint
	if raw := c.Query("roomClassId"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			utils.JSONError(c, http.StatusBadRequest, "invalid roomClassId")
			return
		}
		roomClassID = uint(id)
	}
	includeDeleted := c.Query("includeDeleted") == "true"

	instances, err := ric.Service.List(roomClassID, c.Query("status"), includeDeleted)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, instances)
}

func (ric *RoomInstanceController) CreateRoomInstance(c *gin.Context) {
	var input services.CreateRoomInstanceInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid request payload: "+err.Error())
		return
	}
	instance, err := ric.Service.Create(input, actor(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, instance)
}

func (ric *RoomInstanceController) UpdateRoomInstance(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	var updates map[string]interface{}
	if err := c.ShouldBindJSON(&updates); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid request payload: "+err.Error())
		return
	}
	instance, err := ric.Service.Update(id, updates, actor(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, instance)
}

type statusUpdatePayload struct {
	Status string `json:"status"`
	Notes  string `json:"notes"`
}

// UpdateRoomInstanceStatus is the housekeeping override endpoint.
func (ric *RoomInstanceController) UpdateRoomInstanceStatus(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	var payload statusUpdatePayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid request payload: "+err.Error())
		return
	}
	instance, err := ric.Service.SetStatus(id, payload.Status, actor(c), payload.Notes)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, instance)
}

func (ric *RoomInstanceController) DeleteRoomInstance(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	if err := ric.Service.Delete(id, actor(c)); err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"message": "Room instance deleted"})
}
