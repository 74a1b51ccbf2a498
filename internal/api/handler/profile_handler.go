package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/orderdispatcher/auth-service/internal/core/ports"
)

type ProfileHandler struct {
	profileService ports.ProfileService
}

func NewProfileHandler(profileService ports.ProfileService) *ProfileHandler {
	return &ProfileHandler{profileService: profileService}
}

// Save upserts the caller's profile.
//
// @Summary      Save the caller's profile
// @Tags         profile
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Router       /api/auth/profile/save [post]
func (h *ProfileHandler) Save(c echo.Context) error {
	userID, err := callerID(c)
	if err != nil {
		return err
	}

	var req profileSaveRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, fail(msgInvalidPayload))
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, fail(err.Error()))
	}

	profile, err := h.profileService.SaveProfile(c.Request().Context(), userID, ports.ProfileSaveInput{
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		PhoneNumber: req.PhoneNumber,
	})
	if err != nil {
		if status, message, ok := resolveError(err); ok {
			return c.JSON(status, fail(message))
		}
		return err
	}

	return c.JSON(http.StatusOK, success("Profile saved.", profile))
}

// GetOne fetches a profile by user id.
//
// @Summary      Get a profile by user id
// @Tags         profile
// @Produce      json
// @Security     BearerAuth
// @Router       /api/auth/profile/getOne/{userId} [get]
func (h *ProfileHandler) GetOne(c echo.Context) error {
	profile, err := h.profileService.GetProfile(c.Request().Context(), c.Param("userId"))
	if err != nil {
		if status, message, ok := resolveError(err); ok {
			return c.JSON(status, fail(message))
		}
		return err
	}
	return c.JSON(http.StatusOK, success("", profile))
}

// SaveAddress inserts a new address for the caller.
//
// @Summary      Save an address
// @Tags         profile
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Router       /api/auth/profile/saveAddress [post]
func (h *ProfileHandler) SaveAddress(c echo.Context) error {
	userID, err := callerID(c)
	if err != nil {
		return err
	}

	var req addressSaveRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, fail(msgInvalidPayload))
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, fail(err.Error()))
	}

	address, err := h.profileService.SaveAddress(c.Request().Context(), userID, ports.AddressSaveInput{
		Title:   req.Title,
		Address: req.Address,
	})
	if err != nil {
		if status, message, ok := resolveError(err); ok {
			return c.JSON(status, fail(message))
		}
		return err
	}

	return c.JSON(http.StatusOK, success("Address saved.", address))
}

// GetAddress fetches one of the caller's addresses.
//
// @Summary      Get an address by id
// @Tags         profile
// @Produce      json
// @Security     BearerAuth
// @Router       /api/auth/profile/getAddress/{id} [get]
func (h *ProfileHandler) GetAddress(c echo.Context) error {
	userID, err := callerID(c)
	if err != nil {
		return err
	}

	address, err := h.profileService.GetAddress(c.Request().Context(), userID, c.Param("id"))
	if err != nil {
		if status, message, ok := resolveError(err); ok {
			return c.JSON(status, fail(message))
		}
		return err
	}
	return c.JSON(http.StatusOK, success("", address))
}

// GetAllAddresses lists the caller's addresses.
//
// @Summary      List the caller's addresses
// @Tags         profile
// @Produce      json
// @Security     BearerAuth
// @Router       /api/auth/profile/getAllAddresses [get]
func (h *ProfileHandler) GetAllAddresses(c echo.Context) error {
	userID, err := callerID(c)
	if err != nil {
		return err
	}

	addresses, err := h.profileService.ListAddresses(c.Request().Context(), userID)
	if err != nil {
		if status, message, ok := resolveError(err); ok {
			return c.JSON(status, fail(message))
		}
		return err
	}
	return c.JSON(http.StatusOK, success("", addresses))
}
