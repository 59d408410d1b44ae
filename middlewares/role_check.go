package middlewares

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yeremiapane/restaurant-floor/utils"
)

// AdminOnly guards floor-plan editing and staff management. It must run after AuthMiddleware.
func AdminOnly() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := c.Get("staff_id"); !ok {
			utils.AbortWithError(c, http.StatusUnauthorized, errors.New("unauthorized"))
			return
		}
		if !c.GetBool("admin") {
			utils.AbortWithError(c, http.StatusForbidden, errors.New("admin access required"))
			return
		}
		c.Next()
	}
}
