package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/orderdispatcher/auth-service/internal/api/middleware"
)

// callerID extracts the authenticated caller's account id injected by the
// Auth middleware. A missing id means the middleware did not run or the
// token had no subject; either way the request is not usable.
func callerID(c echo.Context) (string, error) {
	userID, _ := c.Get(middleware.CtxUserID).(string)
	if userID == "" {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return userID, nil
}
