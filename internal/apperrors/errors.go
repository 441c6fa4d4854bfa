package apperrors

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrForbidden indicates that the acting user lacks permission for the operation.
var ErrForbidden = errors.New("operation forbidden")

// ErrUnauthorized indicates that the request carries no valid identity.
var ErrUnauthorized = errors.New("unauthorized")

// ErrAccessDenied indicates an entitlement failure: the user has neither an
// enrollment nor active subscription coverage for the requested training.
var ErrAccessDenied = errors.New("access denied")

// ErrLastAdmin indicates an attempt to remove or demote the last remaining
// ORG_ADMIN of an organization. This invariant is never violable, including
// for self-removal.
var ErrLastAdmin = errors.New("organization must retain at least one admin")

// ErrOrganizationMismatch indicates that a membership reference does not belong
// to the organization named in the request. This is a data-integrity violation
// (forged or stale reference), reported distinctly from a plain not-found.
var ErrOrganizationMismatch = errors.New("membership does not belong to organization")

// ErrAlreadyEnrolled indicates a duplicate enrollment attempt.
var ErrAlreadyEnrolled = errors.New("user already enrolled in training")

// ErrAlreadyCompleted indicates a duplicate lesson completion attempt.
var ErrAlreadyCompleted = errors.New("lesson already completed")

// ErrInvalidPage indicates an ebook page number outside [0, totalPages].
var ErrInvalidPage = errors.New("page number out of range")

// AppError carries an HTTP-ish status code alongside a message and an optional
// wrapped cause. Repositories use it to surface storage failures without
// leaking driver errors to callers.
type AppError struct {
	Code    int
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError creates a generic AppError wrapping an underlying cause.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

// NewNotFoundError creates an AppError that matches errors.Is(err, ErrNotFound).
func NewNotFoundError(message string) *AppError {
	return &AppError{Code: 404, Message: message, Err: ErrNotFound}
}

// NewConflictError creates an AppError that matches errors.Is(err, ErrDuplicate).
func NewConflictError(message string) *AppError {
	return &AppError{Code: 409, Message: message, Err: ErrDuplicate}
}

// NewValidationFailedError creates an AppError that matches errors.Is(err, ErrValidation).
func NewValidationFailedError(message string) *AppError {
	return &AppError{Code: 400, Message: message, Err: ErrValidation}
}

// NewForbiddenError creates an AppError that matches errors.Is(err, ErrForbidden).
func NewForbiddenError(message string) *AppError {
	return &AppError{Code: 403, Message: message, Err: ErrForbidden}
}
