package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/citydir/orgdirectory-backend/internal/apierr"
	"github.com/citydir/orgdirectory-backend/internal/logger"
	"github.com/citydir/orgdirectory-backend/internal/services"
)

type BuildingHandler struct {
	log             *logger.Logger
	buildingService services.BuildingService
}

func NewBuildingHandler(log *logger.Logger, buildingService services.BuildingService) *BuildingHandler {
	return &BuildingHandler{log: log.With("handler", "BuildingHandler"), buildingService: buildingService}
}

type buildingPayload struct {
	Address   string   `json:"address" binding:"required"`
	Latitude  *float64 `json:"latitude" binding:"required"`
	Longitude *float64 `json:"longitude" binding:"required"`
}

func (h *BuildingHandler) Create(c *gin.Context) {
	var payload buildingPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		RespondError(c, h.log, apierr.Invalid("invalid building payload: %v", err))
		return
	}
	building, err := h.buildingService.Create(c.Request.Context(), services.BuildingInput{
		Address:   payload.Address,
		Latitude:  *payload.Latitude,
		Longitude: *payload.Longitude,
	})
	if err != nil {
		RespondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": building.ID, "message": "building created"})
}

func (h *BuildingHandler) Update(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		RespondError(c, h.log, err)
		return
	}
	var payload buildingPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		RespondError(c, h.log, apierr.Invalid("invalid building payload: %v", err))
		return
	}
	building, err := h.buildingService.Update(c.Request.Context(), id, services.BuildingInput{
		Address:   payload.Address,
		Latitude:  *payload.Latitude,
		Longitude: *payload.Longitude,
	})
	if err != nil {
		RespondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": building.ID, "address": building.Address})
}

func (h *BuildingHandler) Delete(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		RespondError(c, h.log, err)
		return
	}
	if err := h.buildingService.Delete(c.Request.Context(), id); err != nil {
		RespondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": fmt.Sprintf("building %d deleted", id)})
}
