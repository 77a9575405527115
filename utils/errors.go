package utils

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Error kinds shared by services and controllers. Services wrap these with
// fmt.Errorf("%w: ...") so controllers can map them to HTTP statuses.
var (
	ErrPermissionDenied     = errors.New("permission denied")
	ErrNotFound             = errors.New("not found")
	ErrInvalidAmount        = errors.New("invalid amount")
	ErrInvalidDate          = errors.New("invalid date")
	ErrInconsistentSchedule = errors.New("inconsistent installment schedule")
)

// StatusFor maps an error to the HTTP status a controller should respond with.
func StatusFor(err error) int {
	switch {
	case errors.Is(err, ErrPermissionDenied):
		return http.StatusForbidden
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrInvalidAmount), errors.Is(err, ErrInvalidDate):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func RespondWithError(c *gin.Context, code int, message string) {
	c.AbortWithStatusJSON(code, gin.H{"error": message})
}

// RespondWithServiceError picks the status from the error kind.
func RespondWithServiceError(c *gin.Context, err error) {
	RespondWithError(c, StatusFor(err), err.Error())
}
