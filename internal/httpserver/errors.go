package httpserver

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/permit_tracker/internal/service"
)

// httpError maps service errors to responses. Internal causes stay in the logs.
func httpError(err error) *echo.HTTPError {
	switch {
	case errors.Is(err, service.ErrUnauthenticated):
		return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized: no user context")
	case errors.Is(err, service.ErrValidation):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrDuplicateEmail):
		return echo.NewHTTPError(http.StatusConflict, "User already registered")
	case errors.Is(err, service.ErrPrivilegedAccountExists):
		return echo.NewHTTPError(http.StatusBadRequest, "An Admin is already registered. You cannot register another Admin.")
	case errors.Is(err, service.ErrDuplicatePermitNumber):
		return echo.NewHTTPError(http.StatusConflict, "Permit number already exists")
	case errors.Is(err, service.ErrNotRegistered):
		return echo.NewHTTPError(http.StatusUnauthorized, "User not registered")
	case errors.Is(err, service.ErrIncorrectSecret):
		return echo.NewHTTPError(http.StatusForbidden, "Incorrect Password")
	case errors.Is(err, service.ErrNotFound):
		return echo.NewHTTPError(http.StatusNotFound, "Permit not found")
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, "internal server error")
	}
}
