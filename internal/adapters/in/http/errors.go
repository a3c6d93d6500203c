package http

import (
	"errors"
	"net/http"

	"production/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// StatusFor maps the domain error taxonomy onto HTTP status codes.
func StatusFor(err error) int {
	switch {
	case errs.IsValidation(err):
		return http.StatusBadRequest
	case errors.Is(err, errs.ErrObjectNotFound):
		return http.StatusNotFound
	case errors.Is(err, errs.ErrConflict):
		return http.StatusConflict
	case errors.Is(err, errs.ErrBlocked):
		return http.StatusLocked
	case errors.Is(err, errs.ErrPreconditionFailed):
		return http.StatusPreconditionFailed
	case errors.Is(err, errs.ErrInvalidState):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

// fail writes err as an ErrorResponse. Unclassified errors are logged and hidden from
// the client.
func (s *Server) fail(c echo.Context, err error) error {
	status := StatusFor(err)
	message := err.Error()
	if status == http.StatusInternalServerError {
		s.logger.ErrorContext(c.Request().Context(), "Request failed",
			"method", c.Request().Method,
			"path", c.Path(),
			"error", err,
		)
		message = http.StatusText(http.StatusInternalServerError)
	}
	return c.JSON(status, ErrorResponse{Code: status, Message: message})
}

// HTTPErrorHandler renders errors returned by echo itself (unknown routes, bad bodies,
// middleware failures) in the ErrorResponse shape.
func (s *Server) HTTPErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	var he *echo.HTTPError
	if errors.As(err, &he) {
		message := http.StatusText(he.Code)
		if m, ok := he.Message.(string); ok {
			message = m
		}
		if c.Request().Method == http.MethodHead {
			err = c.NoContent(he.Code)
		} else {
			err = c.JSON(he.Code, ErrorResponse{Code: he.Code, Message: message})
		}
	} else {
		err = s.fail(c, err)
	}

	if err != nil {
		s.logger.ErrorContext(c.Request().Context(), "Failed to write error response", "error", err)
	}
}
