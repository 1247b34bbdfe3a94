package httpapi

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"stock-tracker-api/internal/application/command"
	"stock-tracker-api/internal/application/interfaces"
	"stock-tracker-api/internal/domain"
)

type AuthHandler struct {
	authService interfaces.AuthService
}

func NewAuthHandler(authService interfaces.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Register handles POST /api/auth/register
func (h *AuthHandler) Register(c echo.Context) error {
	var registerCommand command.RegisterUserCommand
	if err := bindBody(c, &registerCommand); err != nil {
		return err
	}

	result, err := h.authService.Register(c.Request().Context(), &registerCommand)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, result)
}

// Login handles POST /api/auth/login
func (h *AuthHandler) Login(c echo.Context) error {
	var loginCommand command.LoginUserCommand
	if err := bindBody(c, &loginCommand); err != nil {
		return err
	}

	result, err := h.authService.Login(c.Request().Context(), &loginCommand)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, result)
}

// Google handles POST /api/auth/google
func (h *AuthHandler) Google(c echo.Context) error {
	var googleCommand command.GoogleLoginCommand
	if err := bindBody(c, &googleCommand); err != nil {
		return err
	}

	result, err := h.authService.LoginWithGoogle(c.Request().Context(), &googleCommand)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, result)
}

// Me handles GET /api/auth/me
func (h *AuthHandler) Me(c echo.Context) error {
	caller, ok := CurrentUser(c)
	if !ok {
		return domain.Unauthorized("Access token required")
	}

	result, err := h.authService.GetProfile(c.Request().Context(), caller.Id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, result)
}
