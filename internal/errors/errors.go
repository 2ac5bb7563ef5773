package errors

import (
	"errors"
	"fmt"
)

// NotFoundError represents an error when an entity is not found
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

// AlreadyExistsError represents an error when an entity already exists
type AlreadyExistsError struct {
	Entity  string
	Context string // Additional context like "with this email"
}

func (e *AlreadyExistsError) Error() string {
	if e.Context != "" {
		return fmt.Sprintf("%s already exists %s", e.Entity, e.Context)
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

// ValidationError represents a rejected operation: bad input or a broken business rule
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

// AuthenticationError represents authentication-related errors
type AuthenticationError struct {
	Message string
}

func (e *AuthenticationError) Error() string {
	return e.Message
}

// AuthorizationError represents authorization-related errors
type AuthorizationError struct {
	Message string
}

func (e *AuthorizationError) Error() string {
	return e.Message
}

// ConfigurationError represents configuration-related errors
type ConfigurationError struct {
	Message string
}

func (e *ConfigurationError) Error() string {
	return e.Message
}

// Entity Not Found Errors
var (
	ErrBranchNotFound       = &NotFoundError{Entity: "branch"}
	ErrUserNotFound         = &NotFoundError{Entity: "user"}
	ErrRoleNotFound         = &NotFoundError{Entity: "role"}
	ErrPermissionNotFound   = &NotFoundError{Entity: "permission"}
	ErrPositionNotFound     = &NotFoundError{Entity: "position"}
	ErrEmployeeNotFound     = &NotFoundError{Entity: "employee"}
	ErrRefreshTokenNotFound = &NotFoundError{Entity: "refresh token"}
)

// Already Exists Errors
var (
	ErrBranchExists     = &AlreadyExistsError{Entity: "branch", Context: "with this code"}
	ErrUserExists       = &AlreadyExistsError{Entity: "user", Context: "with this email"}
	ErrRoleExists       = &AlreadyExistsError{Entity: "role", Context: "with this name in the branch"}
	ErrPermissionExists = &AlreadyExistsError{Entity: "permission", Context: "with this code in the branch"}
	ErrPositionExists   = &AlreadyExistsError{Entity: "position", Context: "with this name in the branch"}
	ErrEmployeeExists   = &AlreadyExistsError{Entity: "employee", Context: "with this national id in the branch"}
)

// Business Logic Errors
var (
	// Cross-branch references are reported exactly like unknown ids
	ErrPositionNotInBranch     = &ValidationError{Field: "position_id", Message: "position does not exist in this branch"}
	ErrRoleNotInBranch         = &ValidationError{Field: "role_ids", Message: "one or more roles do not exist in this branch"}
	ErrPermissionNotInBranch   = &ValidationError{Field: "permission_ids", Message: "one or more permissions do not exist in this branch"}
	ErrPositionInUse           = &ValidationError{Message: "position still has employees assigned"}
	ErrEmployeeAlreadyInactive = &ValidationError{Message: "employee is already terminated"}
	ErrTerminationBeforeHire   = &ValidationError{Field: "termination_date", Message: "termination date is before hire date"}
	ErrDeleteOwnBranch         = &ValidationError{Message: "cannot delete the branch you are signed in to"}
	ErrDeleteSelf              = &ValidationError{Message: "cannot delete your own user"}
	ErrIncorrectPassword       = &ValidationError{Field: "current_password", Message: "current password is incorrect"}
	ErrInvalidPaginationParams = &ValidationError{Message: "invalid pagination parameters"}
)

// Authentication Errors
var (
	// ErrInvalidCredentials is returned for unknown email, inactive account and wrong
	// password alike so callers cannot tell which half was wrong.
	ErrInvalidCredentials  = &AuthenticationError{Message: "invalid email or password"}
	ErrNoRolesInTenant     = &AuthenticationError{Message: "invalid email or password"}
	ErrInvalidToken        = &AuthenticationError{Message: "invalid token"}
	ErrInvalidRefreshToken = &AuthenticationError{Message: "invalid refresh token"}
	ErrMissingIdentity     = &AuthenticationError{Message: "authentication required"}
	ErrForbidden           = &AuthorizationError{Message: "not allowed to perform this operation"}
	ErrAdministratorOnly   = &AuthorizationError{Message: "only administrators can manage administrator accounts"}
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

// IsConfiguration checks if an error is a ConfigurationError
func IsConfiguration(err error) bool {
	var configErr *ConfigurationError
	return errors.As(err, &configErr)
}

// NewNotFoundError creates a new NotFoundError for a custom entity
func NewNotFoundError(entity string) error {
	return &NotFoundError{Entity: entity}
}

// NewAlreadyExistsError creates a new AlreadyExistsError for a custom entity
func NewAlreadyExistsError(entity, context string) error {
	return &AlreadyExistsError{Entity: entity, Context: context}
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

// NewConfigurationError creates a new ConfigurationError
func NewConfigurationError(message string) error {
	return &ConfigurationError{Message: message}
}
