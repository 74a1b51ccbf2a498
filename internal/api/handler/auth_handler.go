package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/orderdispatcher/auth-service/internal/api/metrics"
	"github.com/orderdispatcher/auth-service/internal/core/domain"
	"github.com/orderdispatcher/auth-service/internal/core/ports"
)

type AuthHandler struct {
	authService ports.AuthService
}

func NewAuthHandler(authService ports.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Register creates a new account and assigns its role.
//
// @Summary      Register a new account
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "Registration details"
// @Success      200   {object}  envelope
// @Failure      400   {object}  envelope
// @Failure      409   {object}  envelope
// @Router       /api/auth/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		metrics.RegistrationsTotal.WithLabelValues("invalid_payload").Inc()
		return c.JSON(http.StatusBadRequest, fail(msgInvalidPayload))
	}
	if err := c.Validate(&req); err != nil {
		metrics.RegistrationsTotal.WithLabelValues("invalid_payload").Inc()
		return c.JSON(http.StatusBadRequest, fail(err.Error()))
	}

	err := h.authService.Register(c.Request().Context(), ports.RegisterInput{
		Username:  req.Username,
		Email:     req.Email,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		UserType:  req.UserType,
	})
	if err != nil {
		metrics.RegistrationsTotal.WithLabelValues(registerResultLabel(err)).Inc()
		if status, message, ok := resolveError(err); ok {
			return c.JSON(status, fail(message))
		}
		return err
	}

	metrics.RegistrationsTotal.WithLabelValues("ok").Inc()
	return c.JSON(http.StatusOK, success("Registration successful.", "OK"))
}

// Login authenticates an account and returns a bearer token.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Email or username, and password"
// @Success      200   {object}  envelope
// @Failure      400   {object}  envelope
// @Failure      401   {object}  envelope
// @Router       /api/auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		metrics.LoginsTotal.WithLabelValues("invalid_payload").Inc()
		return c.JSON(http.StatusBadRequest, fail(msgInvalidPayload))
	}
	if err := c.Validate(&req); err != nil {
		metrics.LoginsTotal.WithLabelValues("invalid_payload").Inc()
		return c.JSON(http.StatusBadRequest, fail(err.Error()))
	}

	result, err := h.authService.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		metrics.LoginsTotal.WithLabelValues(loginResultLabel(err)).Inc()
		if status, message, ok := resolveError(err); ok {
			return c.JSON(status, fail(message))
		}
		return err
	}

	metrics.LoginsTotal.WithLabelValues("ok").Inc()
	return c.JSON(http.StatusOK, success("Login successful.", loginValue{
		UserID:      result.UserID,
		BearerToken: result.BearerToken,
		Email:       result.Email,
	}))
}

func registerResultLabel(err error) string {
	switch {
	case errors.Is(err, domain.ErrEmailTaken):
		return "email_taken"
	case errors.Is(err, domain.ErrUsernameTaken):
		return "username_taken"
	case errors.Is(err, domain.ErrInvalidRole):
		return "invalid_role"
	case errors.Is(err, domain.ErrRoleNotConfigured):
		return "role_not_configured"
	case errors.Is(err, domain.ErrCredentialCreation):
		return "creation_failed"
	case errors.Is(err, domain.ErrRoleAssignment):
		return "role_assignment_failed"
	case errors.Is(err, domain.ErrInvalidPayload):
		return "invalid_payload"
	default:
		return "error"
	}
}

func loginResultLabel(err error) string {
	switch {
	case errors.Is(err, domain.ErrInvalidCredentials):
		return "invalid_credentials"
	case errors.Is(err, domain.ErrInvalidPayload):
		return "invalid_payload"
	default:
		return "error"
	}
}
