package domain

import (
	"errors"
	"net/http"
)

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// ServiceError is the closed error taxonomy surfaced by services: a stable code,
// a human message and the HTTP status the transport should answer with.
type ServiceError struct {
	Code       string
	Message    string
	StatusCode int
}

func NewServiceError(code, message string, statusCode int) *ServiceError {
	return &ServiceError{Code: code, Message: message, StatusCode: statusCode}
}

func (e *ServiceError) Error() string {
	return e.Message
}

// Is matches on Code so a sentinel still matches after WithMessage.
func (e *ServiceError) Is(target error) bool {
	t, ok := target.(*ServiceError)
	if !ok {
		return false
	}
	return t.Code == e.Code
}

// WithMessage returns a copy of the error carrying a tailored message.
func (e *ServiceError) WithMessage(message string) *ServiceError {
	return &ServiceError{Code: e.Code, Message: message, StatusCode: e.StatusCode}
}

// AsServiceError unwraps err into a ServiceError, mapping anything unknown to ErrInternal.
func AsServiceError(err error) *ServiceError {
	var se *ServiceError
	if errors.As(err, &se) {
		return se
	}
	return ErrInternal
}

// InvalidRequest wraps a body or query parsing failure as a validation error.
func InvalidRequest(err error) *ServiceError {
	return ErrValidation.WithMessage(err.Error())
}

var (
	MessageFailedBodyRequest    = "failed to parse request body"
	MessageFailedProcessRequest = "failed to process request"
	MessageFailedGetToken       = "failed to get token"
	MessageFailedTokenInvalid   = "failed to token invalid"

	ErrValidation   = NewServiceError("VALIDATION_ERROR", "invalid request data", http.StatusBadRequest)
	ErrInvalidID    = NewServiceError("INVALID_ID", "invalid id", http.StatusBadRequest)
	ErrRouteMissing = NewServiceError("NOT_FOUND", "endpoint does not exist", http.StatusNotFound)
	ErrInternal     = NewServiceError("INTERNAL_ERROR", "internal server error, please try again later", http.StatusInternalServerError)

	ErrNoToken      = NewServiceError("NO_TOKEN", "missing authentication token", http.StatusUnauthorized)
	ErrTokenInvalid = NewServiceError("INVALID_TOKEN", "token is invalid", http.StatusUnauthorized)
	ErrTokenExpired = NewServiceError("INVALID_TOKEN", "token is invalid or expired", http.StatusUnauthorized)
	ErrAdminOnly    = NewServiceError("ADMIN_ONLY", "only admins may perform this action", http.StatusForbidden)
)
