// Package server provides the HTTP REST API for the CV builder.
package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/google/uuid"

	"github.com/masar-app/masar/internal/catalog"
	"github.com/masar-app/masar/internal/export"
	"github.com/masar-app/masar/internal/payment"
	"github.com/masar-app/masar/internal/types"
)

// ErrEmailAlreadyExists indicates email is already registered
type ErrEmailAlreadyExists struct {
	Email string
}

func (e *ErrEmailAlreadyExists) Error() string {
	return fmt.Sprintf("email already registered: %s", e.Email)
}

// ErrInvalidCredentials indicates invalid login credentials
type ErrInvalidCredentials struct{}

func (e *ErrInvalidCredentials) Error() string {
	return "invalid email or password"
}

// ErrUserNotFound indicates user was not found
type ErrUserNotFound struct {
	UserID uuid.UUID
}

func (e *ErrUserNotFound) Error() string {
	return fmt.Sprintf("user not found: %s", e.UserID)
}

// ErrPlanRequired indicates the user's plan does not cover the feature
type ErrPlanRequired struct {
	Plan    types.Plan
	Feature string
}

func (e *ErrPlanRequired) Error() string {
	return fmt.Sprintf("the %s plan is required for %s", e.Plan, e.Feature)
}

// ErrValidation indicates request validation failure
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	var unknownTemplate *catalog.UnknownTemplateError
	var busy *export.BusyError
	var declined *payment.DeclinedError
	var invalidPlan *payment.InvalidPlanError
	var callbackErr *payment.CallbackError

	switch {
	case errors.As(err, &unknownTemplate), errors.As(err, &invalidPlan), errors.As(err, &callbackErr):
		return http.StatusBadRequest
	case errors.As(err, &busy):
		return http.StatusConflict
	case errors.As(err, &declined):
		return http.StatusPaymentRequired
	}

	switch err.(type) {
	case *ErrEmailAlreadyExists:
		return http.StatusConflict
	case *ErrInvalidCredentials:
		return http.StatusUnauthorized
	case *ErrUserNotFound:
		return http.StatusNotFound
	case *ErrPlanRequired:
		return http.StatusPaymentRequired
	case *ErrValidation:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
