package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/citydir/orgdirectory-backend/internal/apierr"
	"github.com/citydir/orgdirectory-backend/internal/logger"
	"github.com/citydir/orgdirectory-backend/internal/services"
)

type DirectoryHandler struct {
	log       *logger.Logger
	directory services.DirectoryService
}

func NewDirectoryHandler(log *logger.Logger, directory services.DirectoryService) *DirectoryHandler {
	return &DirectoryHandler{log: log.With("handler", "DirectoryHandler"), directory: directory}
}

func (h *DirectoryHandler) ByBuildingAddress(c *gin.Context) {
	address := c.Query("address")
	if address == "" {
		RespondError(c, h.log, apierr.Invalid("address query parameter is required"))
		return
	}
	names, err := h.directory.ByBuildingAddress(c.Request.Context(), address)
	if err != nil {
		RespondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"organizations": names})
}

func (h *DirectoryHandler) ByActivityName(c *gin.Context) {
	activityName := c.Query("activity_name")
	if activityName == "" {
		RespondError(c, h.log, apierr.Invalid("activity_name query parameter is required"))
		return
	}
	names, err := h.directory.ByActivityName(c.Request.Context(), activityName)
	if err != nil {
		RespondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"organizations": names})
}

func (h *DirectoryHandler) SearchByActivity(c *gin.Context) {
	activityName := c.Query("activity_name")
	if activityName == "" {
		RespondError(c, h.log, apierr.Invalid("activity_name query parameter is required"))
		return
	}
	names, err := h.directory.SearchByActivity(c.Request.Context(), activityName)
	if err != nil {
		RespondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"organizations": names})
}

func (h *DirectoryHandler) ByArea(c *gin.Context) {
	lat, err := floatQuery(c, "latitude")
	if err != nil {
		RespondError(c, h.log, err)
		return
	}
	lon, err := floatQuery(c, "longitude")
	if err != nil {
		RespondError(c, h.log, err)
		return
	}
	latDiff, err := floatQuery(c, "lat_diff")
	if err != nil {
		RespondError(c, h.log, err)
		return
	}
	lonDiff, err := floatQuery(c, "lon_diff")
	if err != nil {
		RespondError(c, h.log, err)
		return
	}

	buildings, err := h.directory.ByArea(c.Request.Context(), lat, lon, latDiff, lonDiff)
	if err != nil {
		RespondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"buildings": buildings})
}

func (h *DirectoryHandler) SearchByName(c *gin.Context) {
	name := c.Query("name")
	if name == "" {
		RespondError(c, h.log, apierr.Invalid("name query parameter is required"))
		return
	}
	orgs, err := h.directory.SearchByName(c.Request.Context(), name)
	if err != nil {
		RespondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"organizations": orgs})
}

func floatQuery(c *gin.Context, name string) (float64, error) {
	raw := c.Query(name)
	if raw == "" {
		return 0, apierr.Invalid("%s query parameter is required", name)
	}
	val, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, apierr.Invalid("%s must be a number, got %q", name, raw)
	}
	return val, nil
}
