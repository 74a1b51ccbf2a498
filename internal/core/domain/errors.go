package domain

import "errors"

// Expected orchestrator outcomes. These never escape the service layer as
// panics; handlers map them to stable client messages and status codes.
var (
	ErrInvalidPayload     = errors.New("invalid payload")
	ErrEmailTaken         = errors.New("email already in use")
	ErrUsernameTaken      = errors.New("username already in use")
	ErrInvalidRole        = errors.New("invalid user type")
	ErrRoleNotConfigured  = errors.New("role not configured in store")
	ErrCredentialCreation = errors.New("credential creation failed")
	ErrRoleAssignment     = errors.New("role assignment failed")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAccountNotFound    = errors.New("account not found")
	ErrProfileNotFound    = errors.New("profile not found")
	ErrAddressNotFound    = errors.New("address not found")
	ErrNotConfigured      = errors.New("publisher not configured")
)
