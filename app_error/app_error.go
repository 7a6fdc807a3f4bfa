package app_error

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

var (
	ErrBonusLocked      = New(http.StatusConflict, "bonus predictions are locked")
	ErrNotMember        = New(http.StatusForbidden, "user is not a member of this group")
	ErrJoinCodeNotFound = New(http.StatusNotFound, "no group with this join code")
	ErrNoMembership     = New(http.StatusForbidden, "user is not a member of any group")
)

type statusError struct {
	error
	status int
}

func (e statusError) Unwrap() error {
	return e.error
}

func (e statusError) HTTPStatus() int {
	return e.status
}

func New(status int, message string) error {
	return statusError{error: errors.New(message), status: status}
}

func Wrap(err error, status int) error {
	if err == nil {
		return nil
	}
	return statusError{error: err, status: status}
}

// StatusOf falls back to 500 for errors that carry no status.
func StatusOf(err error) int {
	var withStatus interface{ HTTPStatus() int }
	if errors.As(err, &withStatus) {
		return withStatus.HTTPStatus()
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}

func WithHTTPStatus(c *gin.Context, err error, status int) {
	c.JSON(status, gin.H{"error": err.Error()})
}

func Respond(c *gin.Context, err error) {
	WithHTTPStatus(c, err, StatusOf(err))
}
