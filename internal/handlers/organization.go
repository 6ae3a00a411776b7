package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/citydir/orgdirectory-backend/internal/apierr"
	"github.com/citydir/orgdirectory-backend/internal/logger"
	"github.com/citydir/orgdirectory-backend/internal/services"
)

type OrganizationHandler struct {
	log        *logger.Logger
	orgService services.OrganizationService
}

func NewOrganizationHandler(log *logger.Logger, orgService services.OrganizationService) *OrganizationHandler {
	return &OrganizationHandler{log: log.With("handler", "OrganizationHandler"), orgService: orgService}
}

func (h *OrganizationHandler) Create(c *gin.Context) {
	var payload struct {
		Name         string   `json:"name" binding:"required"`
		BuildingID   uint     `json:"building_id" binding:"required"`
		PhoneNumbers []string `json:"phone_numbers"`
		ActivityIDs  []uint   `json:"activity_ids"`
	}
	if err := c.ShouldBindJSON(&payload); err != nil {
		RespondError(c, h.log, apierr.Invalid("invalid organization payload: %v", err))
		return
	}
	org, err := h.orgService.Create(c.Request.Context(), services.CreateOrganizationInput{
		Name:         payload.Name,
		BuildingID:   payload.BuildingID,
		PhoneNumbers: payload.PhoneNumbers,
		ActivityIDs:  payload.ActivityIDs,
	})
	if err != nil {
		RespondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": org.ID, "name": org.Name})
}

func (h *OrganizationHandler) Update(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		RespondError(c, h.log, err)
		return
	}
	var payload struct {
		Name         *string   `json:"name"`
		BuildingID   *uint     `json:"building_id"`
		PhoneNumbers *[]string `json:"phone_numbers"`
		ActivityIDs  *[]uint   `json:"activity_ids"`
	}
	if err := c.ShouldBindJSON(&payload); err != nil {
		RespondError(c, h.log, apierr.Invalid("invalid organization payload: %v", err))
		return
	}
	org, err := h.orgService.Update(c.Request.Context(), id, services.UpdateOrganizationInput{
		Name:         payload.Name,
		BuildingID:   payload.BuildingID,
		PhoneNumbers: payload.PhoneNumbers,
		ActivityIDs:  payload.ActivityIDs,
	})
	if err != nil {
		RespondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": org.ID, "name": org.Name})
}

func (h *OrganizationHandler) Delete(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		RespondError(c, h.log, err)
		return
	}
	if err := h.orgService.Delete(c.Request.Context(), id); err != nil {
		RespondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": fmt.Sprintf("organization %d deleted", id)})
}

func (h *OrganizationHandler) Get(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		RespondError(c, h.log, err)
		return
	}
	detail, err := h.orgService.Get(c.Request.Context(), id)
	if err != nil {
		RespondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, detail)
}
