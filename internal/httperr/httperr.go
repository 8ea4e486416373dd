package httperr

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

type HTTPError struct {
	Code    string `json:"error_code"`
	Message string `json:"message"`
}

func Write(c *gin.Context, status int, code, message string) {
	c.JSON(status, HTTPError{
		Code:    code,
		Message: message,
	})
}

func BadRequest(c *gin.Context, code, message string) {
	Write(c, http.StatusBadRequest, code, message)
}

func NotFound(c *gin.Context, code, message string) {
	Write(c, http.StatusNotFound, code, message)
}

func Internal(c *gin.Context, code, message string) {
	Write(c, http.StatusInternalServerError, code, message)
}

func Unauthorized(c *gin.Context, code, message string) {
	Write(c, http.StatusUnauthorized, code, message)
}

func Forbidden(c *gin.Context, code, message string) {
	Write(c, http.StatusForbidden, code, message)
}

func Conflict(c *gin.Context, code, message string) {
	Write(c, http.StatusConflict, code, message)
}

// WriteError maps a business error onto the HTTP response:
// validation 400, unauthorized 403, not found 404, conflict 409.
// Anything else is a 500.
func WriteError(c *gin.Context, err error) {
	var be BusinessError
	if errors.As(err, &be) {
		switch be.Kind {
		case KindValidation:
			BadRequest(c, be.Code, be.Message)
		case KindUnauthorized:
			Forbidden(c, be.Code, be.Message)
		case KindNotFound:
			NotFound(c, be.Code, be.Message)
		case KindConflict:
			Conflict(c, be.Code, be.Message)
		}
		return
	}

	Internal(c, "internal_error", "Unexpected error.")
}
