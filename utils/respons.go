package utils

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

// JSONResponse is the envelope of every API answer.
type JSONResponse struct {
	Status  bool        `json:"status"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// errInternal replaces the message of server errors.
var errInternal = errors.New("internal server error")

func RespondJSON(c *gin.Context, code int, message string, data interface{}) {
	c.JSON(code, JSONResponse{
		Status:  code >= 200 && code < 300,
		Message: message,
		Data:    data,
	})
}

// RespondError answers with err as the message. Server errors are logged
// and replaced by a generic message so store details do not leak to clients.
func RespondError(c *gin.Context, code int, err error) {
	if err == nil {
		err = errors.New(http.StatusText(code))
	}
	if code >= http.StatusInternalServerError {
		_ = c.Error(err)
		err = errInternal
	}
	c.JSON(code, JSONResponse{Message: err.Error()})
}

// AbortWithError answers like RespondError and stops the handler chain.
// Middleware rejecting a request uses it.
func AbortWithError(c *gin.Context, code int, err error) {
	RespondError(c, code, err)
	c.Abort()
}
