package apperror

import (
	"errors"
	"net/http"

	"github.com/marcos-nsantos/identity-service/internal/domain"
)

// AppError is the transport-facing shape of a core failure.
type AppError struct {
	Code       string `json:"code"`
	Message    string `json:"message"`
	StatusCode int    `json:"-"`
	Err        error  `json:"-"`
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// FromDomain maps a core error onto a status code and stable error code by
// its kind. Unrecognized errors become opaque internal errors; the core's
// messages are only surfaced for caller-fault kinds.
func FromDomain(err error) *AppError {
	switch {
	case errors.Is(err, domain.ErrValidation):
		return &AppError{Code: "VALIDATION_ERROR", Message: err.Error(), StatusCode: http.StatusBadRequest, Err: err}
	case errors.Is(err, domain.ErrConflict):
		return &AppError{Code: "CONFLICT", Message: err.Error(), StatusCode: http.StatusConflict, Err: err}
	case errors.Is(err, domain.ErrUnauthorized):
		return &AppError{Code: "UNAUTHORIZED", Message: err.Error(), StatusCode: http.StatusUnauthorized, Err: err}
	case errors.Is(err, domain.ErrNotFound):
		return &AppError{Code: "NOT_FOUND", Message: err.Error(), StatusCode: http.StatusNotFound, Err: err}
	default:
		return &AppError{Code: "INTERNAL_ERROR", Message: "an internal error occurred", StatusCode: http.StatusInternalServerError, Err: err}
	}
}

func StatusCode(err error) int {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.StatusCode
	}
	return FromDomain(err).StatusCode
}
