package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"booklending-service/internal/application/command"
	"booklending-service/internal/application/interfaces"
	"booklending-service/internal/domain/apperrors"
)

type AuthHandler struct {
	userService interfaces.UserService
}

func NewAuthHandler(userService interfaces.UserService) *AuthHandler {
	return &AuthHandler{userService: userService}
}

func (h *AuthHandler) Register(c echo.Context) error {
	var registerCommand command.RegisterUserCommand
	if err := c.Bind(&registerCommand); err != nil {
		return respondError(c, apperrors.Validation("Invalid request body"))
	}

	result, err := h.userService.Register(c.Request().Context(), &registerCommand)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, result)
}

func (h *AuthHandler) Login(c echo.Context) error {
	var loginCommand command.LoginUserCommand
	if err := c.Bind(&loginCommand); err != nil {
		return respondError(c, apperrors.Validation("Invalid request body"))
	}

	result, err := h.userService.Login(c.Request().Context(), &loginCommand)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, result)
}

func (h *AuthHandler) Me(c echo.Context) error {
	result, err := h.userService.GetProfile(c.Request().Context(), currentUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, result)
}

func (h *AuthHandler) ForgotPassword(c echo.Context) error {
	var forgotCommand command.ForgotPasswordCommand
	if err := c.Bind(&forgotCommand); err != nil {
		return respondError(c, apperrors.Validation("Invalid request body"))
	}

	result, err := h.userService.ForgotPassword(c.Request().Context(), &forgotCommand)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, result)
}

func (h *AuthHandler) ResetPassword(c echo.Context) error {
	var resetCommand command.ResetPasswordCommand
	if err := c.Bind(&resetCommand); err != nil {
		return respondError(c, apperrors.Validation("Invalid request body"))
	}

	result, err := h.userService.ResetPassword(c.Request().Context(), &resetCommand)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, result)
}
