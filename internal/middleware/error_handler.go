package middleware

import (
	"errors"
	"net/http"

	"gigseat/internal/dto"
	"gigseat/internal/service"

	"github.com/labstack/echo/v4"
)

// ErrorHandler is the single place service errors become HTTP statuses;
// handlers return them untouched. Capacity rejections keep their
// remaining-seat count in the response body.
func ErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	var capErr *service.CapacityError
	if errors.As(err, &capErr) {
		remaining := capErr.Remaining
		_ = c.JSON(http.StatusConflict, dto.ErrorResponse{
			Message:   capErr.Error(),
			Remaining: &remaining,
		})
		return
	}

	if he, ok := err.(*echo.HTTPError); ok {
		msg := http.StatusText(he.Code)
		if m, ok := he.Message.(string); ok {
			msg = m
		}
		_ = c.JSON(he.Code, dto.ErrorResponse{Message: msg})
		return
	}

	_ = c.JSON(statusFor(err), dto.ErrorResponse{Message: err.Error()})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, service.ErrEventNotFound),
		errors.Is(err, service.ErrOrderNotFound),
		errors.Is(err, service.ErrTicketNotFound),
		errors.Is(err, service.ErrUserNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrNotAuthorized):
		return http.StatusForbidden
	case errors.Is(err, service.ErrInvalidCredentials):
		return http.StatusUnauthorized
	case errors.Is(err, service.ErrUserExists),
		errors.Is(err, service.ErrEventNotBookable):
		return http.StatusConflict
	case errors.Is(err, service.ErrNoTicketsSelected),
		errors.Is(err, service.ErrInvalidRequest):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
