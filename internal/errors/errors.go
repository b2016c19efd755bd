package errors

import (
	"errors"
	"fmt"
)

// NotFoundError represents an error when an entity is not found. It is
// also used when a record exists outside the actor's visible scope, so
// the response is indistinguishable from true absence.
type NotFoundError struct {
	Entity string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found", e.Entity)
}

// Is enables errors.Is() comparison for NotFoundError
func (e *NotFoundError) Is(target error) bool {
	t, ok := target.(*NotFoundError)
	if !ok {
		return false
	}
	return e.Entity == t.Entity
}

// AlreadyExistsError represents a uniqueness conflict. Field names the
// conflicting attribute.
type AlreadyExistsError struct {
	Entity string
	Field  string
}

func (e *AlreadyExistsError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s already exists with this %s", e.Entity, e.Field)
	}
	return fmt.Sprintf("%s already exists", e.Entity)
}

// Is enables errors.Is() comparison for AlreadyExistsError
func (e *AlreadyExistsError) Is(target error) bool {
	t, ok := target.(*AlreadyExistsError)
	if !ok {
		return false
	}
	return e.Entity == t.Entity
}

// ValidationError represents a validation error with field-level detail
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation error: %s", e.Message)
}

// AuthenticationError represents a missing or invalid credential
type AuthenticationError struct {
	Message string
}

func (e *AuthenticationError) Error() string {
	return e.Message
}

// AuthorizationError represents an authenticated actor with insufficient
// role or scope for the attempted action
type AuthorizationError struct {
	Message string
}

func (e *AuthorizationError) Error() string {
	return e.Message
}

// Entity Not Found Errors
var (
	ErrUserNotFound    = &NotFoundError{Entity: "user"}
	ErrCompanyNotFound = &NotFoundError{Entity: "company"}
	ErrVehicleNotFound = &NotFoundError{Entity: "vehicle"}
	ErrDriverNotFound  = &NotFoundError{Entity: "driver"}
	ErrTowNotFound     = &NotFoundError{Entity: "tow record"}
	ErrExpenseNotFound = &NotFoundError{Entity: "expense record"}
	ErrTokenNotFound   = &NotFoundError{Entity: "token"}
)

// Conflict Errors
var (
	ErrUsernameExists     = &AlreadyExistsError{Entity: "user", Field: "username"}
	ErrCompanyEmailExists = &AlreadyExistsError{Entity: "company", Field: "email"}
	ErrVehiclePlateExists = &AlreadyExistsError{Entity: "vehicle", Field: "license_plate"}
)

// Authentication Errors
var (
	ErrInvalidCredentials = &AuthenticationError{Message: "invalid username or password"}
	ErrAccountInactive    = &AuthenticationError{Message: "your account is not active, please contact an administrator"}
	ErrInvalidToken       = &AuthenticationError{Message: "invalid or expired token"}
	ErrInvalidResetToken  = errors.New("invalid or expired password reset token")
)

// Helper Functions

// IsNotFound checks if an error is a NotFoundError
func IsNotFound(err error) bool {
	var notFoundErr *NotFoundError
	return errors.As(err, &notFoundErr)
}

// IsAlreadyExists checks if an error is an AlreadyExistsError
func IsAlreadyExists(err error) bool {
	var existsErr *AlreadyExistsError
	return errors.As(err, &existsErr)
}

// IsValidation checks if an error is a ValidationError
func IsValidation(err error) bool {
	var validationErr *ValidationError
	return errors.As(err, &validationErr)
}

// IsAuthentication checks if an error is an AuthenticationError
func IsAuthentication(err error) bool {
	var authErr *AuthenticationError
	return errors.As(err, &authErr)
}

// IsAuthorization checks if an error is an AuthorizationError
func IsAuthorization(err error) bool {
	var authzErr *AuthorizationError
	return errors.As(err, &authzErr)
}

// NewNotFoundError creates a new NotFoundError for a custom entity
func NewNotFoundError(entity string) error {
	return &NotFoundError{Entity: entity}
}

// NewAlreadyExistsError creates a new AlreadyExistsError for a custom entity and field
func NewAlreadyExistsError(entity, field string) error {
	return &AlreadyExistsError{Entity: entity, Field: field}
}

// NewValidationError creates a new ValidationError
func NewValidationError(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

// NewAuthenticationError creates a new AuthenticationError
func NewAuthenticationError(message string) error {
	return &AuthenticationError{Message: message}
}

// NewAuthorizationError creates a new AuthorizationError
func NewAuthorizationError(message string) error {
	return &AuthorizationError{Message: message}
}
