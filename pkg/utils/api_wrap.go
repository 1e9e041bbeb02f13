package utils

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
)

type APIResponse struct {
	Status  string      `json:"status"`
	Code    int         `json:"code"`
	Message string      `json:"message,omitempty"`
	TraceID string      `json:"trace_id,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

func RespondSuccess(c *gin.Context, data interface{}, message string) {
	c.JSON(http.StatusOK, APIResponse{
		Status:  "success",
		Code:    http.StatusOK,
		Message: message,
		TraceID: c.GetString("trace_id"),
		Data:    data,
	})
}

func RespondError(c *gin.Context, code int, message string) {
	c.JSON(code, APIResponse{
		Status:  "error",
		Code:    code,
		Message: message,
		TraceID: c.GetString("trace_id"),
	})
}

// HandleServiceError maps the service error set onto HTTP codes. Unknown
// errors are logged and collapsed into a generic 500.
func HandleServiceError(c *gin.Context, err error) {
	var code int
	switch {
	case errors.Is(err, ErrNameRequired),
		errors.Is(err, ErrTooManyTags),
		errors.Is(err, ErrInvalidStatus):
		code = http.StatusBadRequest
	case errors.Is(err, ErrShopNotFound):
		code = http.StatusNotFound
	case errors.Is(err, ErrAccountNotFound),
		errors.Is(err, ErrInvalidCredentials):
		code = http.StatusUnauthorized
	case errors.Is(err, ErrEmailAlreadyExists),
		errors.Is(err, ErrShopAlreadyRegistered):
		code = http.StatusConflict
	case errors.Is(err, ErrRateLimited):
		code = http.StatusTooManyRequests
	case errors.Is(err, ErrPlacesUnavailable):
		code = http.StatusBadGateway
	default:
		log.Printf("internal error: %v", err)
		RespondError(c, http.StatusInternalServerError, "Internal server error")
		return
	}
	RespondError(c, code, err.Error())
}
