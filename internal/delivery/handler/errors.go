package handler

import (
	"log"
	"net/http"

	"github.com/labstack/echo/v4"

	"booklending-service/internal/domain/apperrors"
)

func httpStatus(err error) int {
	switch apperrors.KindOf(err) {
	case apperrors.KindValidation:
		return http.StatusBadRequest
	case apperrors.KindNotFound:
		return http.StatusNotFound
	case apperrors.KindForbidden:
		return http.StatusForbidden
	case apperrors.KindConflict:
		return http.StatusConflict
	case apperrors.KindAuthentication:
		return http.StatusUnauthorized
	case apperrors.KindRateLimited:
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}

// respondError translates an application error into a JSON error body. The
// wrapped cause of internal errors is logged, never sent to the client.
func respondError(c echo.Context, err error) error {
	status := httpStatus(err)
	if status == http.StatusInternalServerError {
		log.Printf("Internal error on %s %s: %v", c.Request().Method, c.Request().URL.Path, err)
	}
	return c.JSON(status, echo.Map{"error": apperrors.MessageOf(err)})
}
