package handler

import (
	"errors"
	"net/http"

	"werkshift/internal/repository"
	"werkshift/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// statusFor maps service and store errors to an HTTP status.
func statusFor(err error) int {
	switch {
	case errors.Is(err, service.ErrInvalidInput), errors.Is(err, service.ErrInvalidPage):
		return http.StatusBadRequest
	case errors.Is(err, repository.ErrShiftNotFound),
		errors.Is(err, repository.ErrWerkerNotFound),
		errors.Is(err, repository.ErrMakerNotFound):
		return http.StatusNotFound
	case errors.Is(err, repository.ErrDuplicateAttachment),
		errors.Is(err, repository.ErrDuplicateRating),
		errors.Is(err, repository.ErrAlreadyExists),
		errors.Is(err, service.ErrInvalidTransition):
		return http.StatusConflict
	case errors.Is(err, service.ErrNotShiftOwner):
		return http.StatusForbidden
	case errors.Is(err, service.ErrPositionNotOnShift),
		errors.Is(err, service.ErrNotAssigned),
		errors.Is(err, repository.ErrMissingReference):
		return http.StatusUnprocessableEntity
	case errors.Is(err, repository.ErrStoreUnavailable):
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}

func respondError(c *gin.Context, err error) {
	status := statusFor(err)
	_ = c.Error(err)
	if status == http.StatusInternalServerError || status == http.StatusServiceUnavailable {
		c.JSON(status, gin.H{"error": http.StatusText(status)})
		return
	}
	c.JSON(status, gin.H{"error": err.Error()})
}

// parseID reads a uuid path parameter, answering 400 when it is malformed.
func parseID(c *gin.Context, param, what string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(param))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid " + what + " ID format"})
		return uuid.Nil, false
	}
	return id, true
}

func parseOptionalID(raw string) (*uuid.UUID, error) {
	if raw == "" {
		return nil, nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return nil, err
	}
	return &id, nil
}
