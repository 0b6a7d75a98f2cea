package controllers

import (
	"errors"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Robson2726/Facilitta-sub000/internal/domain/models"
	"github.com/Robson2726/Facilitta-sub000/internal/domain/services"
	"github.com/Robson2726/Facilitta-sub000/internal/domain/services/container"
	"github.com/Robson2726/Facilitta-sub000/internal/error/code"
	"github.com/Robson2726/Facilitta-sub000/internal/error/response"
	"github.com/Robson2726/Facilitta-sub000/pkg/utils"
)

// ErrorResponse documents the failure envelope
type ErrorResponse struct {
	Success bool   `json:"success" example:"false"`
	Code    int    `json:"code" example:"104001"`
	Message string `json:"message" example:"Encomenda já foi entregue"`
}

// errorCode maps a service error onto an error code. notFound is the code used for ErrNotFound.
func errorCode(err error, notFound int) int {
	switch {
	case errors.Is(err, services.ErrNotFound):
		return notFound
	case errors.Is(err, services.ErrAlreadyDelivered):
		return code.ErrPackageAlreadyDelivered
	case errors.Is(err, services.ErrEmptySelection):
		return code.ErrEmptySelection
	case errors.Is(err, services.ErrReference):
		return code.ErrInvalidReference
	case errors.Is(err, services.ErrValidation):
		return code.ErrValidation
	case errors.Is(err, services.ErrResidentInUse):
		return code.ErrResidentInUse
	case errors.Is(err, services.ErrDuplicateLogin):
		return code.ErrUserAlreadyExist
	case errors.Is(err, services.ErrSelfModification):
		return code.ErrUserSelfModification
	case errors.Is(err, services.ErrBootstrapClosed):
		return code.ErrBootstrapClosed
	case errors.Is(err, services.ErrInvalidCredentials):
		return code.ErrUserPasswordIncorrect
	case errors.Is(err, services.ErrDatabase):
		return code.ErrDatabase
	case errors.Is(err, services.ErrNoLANAddress), errors.Is(err, models.ErrInvalidDescriptor):
		return code.ErrPairingUnavailable
	case errors.Is(err, utils.ErrInvalidDate):
		return code.ErrInvalidDate
	default:
		return code.ErrUnknown
	}
}

// failWithError writes the envelope for err. The raw error is attached to the gin context
// for the request log and never sent to the client.
func failWithError(c *gin.Context, err error, notFound int, data interface{}) {
	_ = c.Error(err)
	response.Fail(c, errorCode(err, notFound), data)
}

// failPorter reports a porter that is missing, inactive or not a porter
func failPorter(c *gin.Context, err error) {
	if errors.Is(err, services.ErrReference) || errors.Is(err, services.ErrValidation) {
		_ = c.Error(err)
		response.Fail(c, code.ErrPorterNotEligible, nil)
		return
	}
	failWithError(c, err, code.ErrUserNotFound, nil)
}

// emptyList is sent as data by read endpoints that fail
func emptyList() []interface{} {
	return []interface{}{}
}

func parseID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil || id == 0 {
		response.ParamError(c, "ID inválido")
		return 0, false
	}
	return uint(id), true
}

// parseClientTime reads a date and time pair in the configured location; empty means now
func parseClientTime(ctr *container.ServiceContainer, date, clock string) (time.Time, error) {
	loc := ctr.Config().Location()
	return utils.ParseLocalDateTime(date, clock, loc, time.Now())
}

func formatTime(t time.Time) string {
	return t.Format(time.RFC3339)
}

func formatTimePtr(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := formatTime(*t)
	return &s
}
