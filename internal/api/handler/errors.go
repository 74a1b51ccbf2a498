package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/orderdispatcher/auth-service/internal/core/domain"
)

// Stable client-facing messages. These are part of the API contract;
// "Invalid credentials." is deliberately shared between unknown-account and
// wrong-password so accounts cannot be enumerated.
const (
	msgInvalidPayload     = "Invalid payload."
	msgEmailTaken         = "Email already in use."
	msgUsernameTaken      = "Username already in use."
	msgInvalidUserType    = "Invalid userType."
	msgRoleNotFound       = "Role not found."
	msgInvalidCredentials = "Invalid credentials."
	msgUserNotFound       = "User not found."
	msgUnexpected         = "An unexpected error occurred."
)

// resolveError maps expected service failures to an HTTP status and a stable
// message. ok is false for errors the handler does not recognize; those go
// to the central error handler.
func resolveError(err error) (status int, message string, ok bool) {
	switch {
	case errors.Is(err, domain.ErrInvalidPayload):
		return http.StatusBadRequest, msgInvalidPayload, true
	case errors.Is(err, domain.ErrEmailTaken):
		return http.StatusConflict, msgEmailTaken, true
	case errors.Is(err, domain.ErrUsernameTaken):
		return http.StatusConflict, msgUsernameTaken, true
	case errors.Is(err, domain.ErrInvalidRole):
		return http.StatusBadRequest, msgInvalidUserType, true
	case errors.Is(err, domain.ErrRoleNotConfigured):
		// Deployment defect, not a client error.
		return http.StatusInternalServerError, msgRoleNotFound, true
	case errors.Is(err, domain.ErrCredentialCreation):
		return http.StatusBadRequest, reasonAfter(err, domain.ErrCredentialCreation), true
	case errors.Is(err, domain.ErrRoleAssignment):
		return http.StatusBadRequest, reasonAfter(err, domain.ErrRoleAssignment), true
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusUnauthorized, msgInvalidCredentials, true
	case errors.Is(err, domain.ErrAccountNotFound):
		return http.StatusNotFound, msgUserNotFound, true
	case errors.Is(err, domain.ErrProfileNotFound), errors.Is(err, domain.ErrAddressNotFound):
		return http.StatusNotFound, msgUserNotFound, true
	}
	return 0, "", false
}

// reasonAfter extracts the store-reported reason that follows the sentinel
// prefix, e.g. "credential creation failed: passwords must ..." yields
// "passwords must ...". The sentinel alone yields the whole message.
func reasonAfter(err error, sentinel error) string {
	msg := err.Error()
	prefix := sentinel.Error() + ": "
	if rest, found := strings.CutPrefix(msg, prefix); found && rest != "" {
		return rest
	}
	return msg
}
