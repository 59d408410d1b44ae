package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/yeremiapane/restaurant-floor/services"
	"github.com/yeremiapane/restaurant-floor/utils"
)

func parseID(c *gin.Context, param string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(param), 10, 64)
	if err != nil || id == 0 {
		utils.RespondError(c, http.StatusBadRequest, fmt.Errorf("invalid %s", param))
		return 0, false
	}
	return uint(id), true
}

// respondServiceError maps engine errors onto HTTP status codes.
func respondServiceError(c *gin.Context, err error) {
	code := http.StatusInternalServerError
	switch {
	case errors.Is(err, services.ErrTableNotFound),
		errors.Is(err, services.ErrBookingNotFound),
		errors.Is(err, services.ErrStaffNotFound):
		code = http.StatusNotFound
	case errors.Is(err, services.ErrInvalidSize),
		errors.Is(err, services.ErrInvalidShape),
		errors.Is(err, services.ErrInvalidNumber),
		errors.Is(err, services.ErrInvalidStatus):
		code = http.StatusBadRequest
	case errors.Is(err, services.ErrStatusRegression),
		errors.Is(err, services.ErrBookingClosed),
		errors.Is(err, services.ErrBookingSeated):
		code = http.StatusConflict
	case errors.Is(err, services.ErrLoopStopped):
		code = http.StatusServiceUnavailable
	}

	if code == http.StatusInternalServerError {
		utils.ErrorLogger.Printf("%s %s failed: %v", c.Request.Method, c.Request.URL.Path, err)
	}
	utils.RespondError(c, code, err)
}
