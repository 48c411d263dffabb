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

// messages shown to the chat user for codes that need more than a generic line
var messages = map[string]string{
	"slot_taken":            "This slot was just taken, please choose another.",
	"slot_expired":          "This slot has already started, please choose another.",
	"service_not_found":     "One of the selected services no longer exists.",
	"not_booking_owner":     "You cannot cancel someone else's booking.",
	"no_slots_selected":     "You haven't selected any slots.",
	"invalid_price":         "Price must be a positive amount like 12.50.",
	"invalid_date":          "Date must look like 2025-06-01.",
	"booking_not_completed": "Only completed appointments can be rated or reviewed.",
}

// FromError writes the response for a use-case failure.
func FromError(c *gin.Context, err error) {
	var be BusinessError
	if errors.As(err, &be) {
		msg := messages[be.Code]
		if msg == "" {
			msg = be.Error()
		}
		switch be.Kind {
		case KindNotFound:
			Write(c, http.StatusNotFound, be.Code, msg)
		case KindConflict:
			Write(c, http.StatusConflict, be.Code, msg)
		case KindPermission:
			Write(c, http.StatusForbidden, be.Code, msg)
		default:
			Write(c, http.StatusBadRequest, be.Code, msg)
		}
		return
	}

	var se *StorageError
	if errors.As(err, &se) {
		Write(c, http.StatusServiceUnavailable, "storage_unavailable", "Please try again later.")
		return
	}

	Internal(c, "internal_error", "Please try again later.")
}
