package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/citydir/orgdirectory-backend/internal/apierr"
	"github.com/citydir/orgdirectory-backend/internal/logger"
	"github.com/citydir/orgdirectory-backend/internal/services"
)

type ActivityHandler struct {
	log             *logger.Logger
	activityService services.ActivityService
}

func NewActivityHandler(log *logger.Logger, activityService services.ActivityService) *ActivityHandler {
	return &ActivityHandler{log: log.With("handler", "ActivityHandler"), activityService: activityService}
}

func (h *ActivityHandler) Create(c *gin.Context) {
	var payload struct {
		Name     string `json:"name" binding:"required"`
		ParentID *uint  `json:"parent_id" binding:"omitempty,gt=0"`
	}
	if err := c.ShouldBindJSON(&payload); err != nil {
		RespondError(c, h.log, apierr.Invalid("invalid activity payload: %v", err))
		return
	}
	activity, err := h.activityService.Create(c.Request.Context(), payload.Name, payload.ParentID)
	if err != nil {
		RespondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": activity.ID, "name": activity.Name})
}

func (h *ActivityHandler) Update(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		RespondError(c, h.log, err)
		return
	}
	var payload struct {
		Name     *string `json:"name"`
		ParentID *uint   `json:"parent_id" binding:"omitempty,gt=0"`
	}
	if err := c.ShouldBindJSON(&payload); err != nil {
		RespondError(c, h.log, apierr.Invalid("invalid activity payload: %v", err))
		return
	}
	activity, err := h.activityService.Update(c.Request.Context(), id, services.ActivityUpdateInput{
		Name:     payload.Name,
		ParentID: payload.ParentID,
	})
	if err != nil {
		RespondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": activity.ID, "name": activity.Name})
}

func (h *ActivityHandler) Delete(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		RespondError(c, h.log, err)
		return
	}
	if err := h.activityService.Delete(c.Request.Context(), id); err != nil {
		RespondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": fmt.Sprintf("activity %d deleted", id)})
}
