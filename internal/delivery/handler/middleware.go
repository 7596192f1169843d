package handler

import (
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"booklending-service/internal/infrastructure"
)

const userIDContextKey = "userID"

// JWTMiddleware authenticates requests with a Bearer token and stores the
// caller's id in the echo context.
func JWTMiddleware(jwtService *infrastructure.JWTService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if !strings.HasPrefix(authHeader, "Bearer ") {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Authentication required"})
			}

			userID, err := jwtService.ParseToken(strings.TrimPrefix(authHeader, "Bearer "))
			if err != nil {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Invalid or expired token"})
			}

			c.Set(userIDContextKey, userID)
			return next(c)
		}
	}
}

func currentUserID(c echo.Context) uuid.UUID {
	if id, ok := c.Get(userIDContextKey).(uuid.UUID); ok {
		return id
	}
	return uuid.Nil
}
