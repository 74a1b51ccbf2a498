package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

// failureResponse is the envelope rendered for errors that escape a handler:
// routing failures, middleware rejections, and unexpected internal errors.
type failureResponse struct {
	IsSuccess bool   `json:"isSuccess"`
	Message   string `json:"message"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Renders echo's own errors (404s, middleware rejections) in the
//     uniform response envelope.
//   - Logs unexpected errors with full detail server-side while the client
//     receives only a generic message.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		var he *echo.HTTPError
		if errors.As(err, &he) {
			_ = c.JSON(he.Code, failureResponse{Message: fmt.Sprintf("%v", he.Message)})
			return
		}

		log.Error().
			Err(err).
			Str("method", c.Request().Method).
			Str("path", c.Path()).
			Msg("unhandled error")

		_ = c.JSON(http.StatusInternalServerError, failureResponse{Message: "An unexpected error occurred."})
	}
}
