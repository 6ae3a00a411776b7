package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/citydir/orgdirectory-backend/internal/apierr"
	"github.com/citydir/orgdirectory-backend/internal/logger"
)

type ErrorResponse struct {
	Message string `json:"message"`
}

// RespondError maps a typed error to the {"message": ...} envelope. Internal
// failures answer with a fixed message; the underlying error only goes to the
// log.
func RespondError(c *gin.Context, log *logger.Logger, err error) {
	ae := apierr.From(err)
	if ae.Status == http.StatusInternalServerError {
		if log != nil {
			log.Error("Request failed", "error", err, "path", c.FullPath())
		}
		c.JSON(http.StatusInternalServerError, ErrorResponse{Message: "internal error"})
		return
	}
	c.JSON(ae.Status, ErrorResponse{Message: ae.Error()})
}

func pathID(c *gin.Context, name string) (uint, error) {
	raw := c.Param(name)
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return 0, apierr.Invalid("invalid %s %q", name, raw)
	}
	return uint(id), nil
}
