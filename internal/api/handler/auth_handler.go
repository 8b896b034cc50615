package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/casazul/real-estate-api/internal/api/metrics"
	"github.com/casazul/real-estate-api/internal/core/domain"
	"github.com/casazul/real-estate-api/internal/core/ports"
	"github.com/casazul/real-estate-api/internal/pkg/token"
)

type AuthHandler struct {
	authService ports.AuthService
	tokens      *token.Service
}

func NewAuthHandler(authService ports.AuthService, tokens *token.Service) *AuthHandler {
	return &AuthHandler{authService: authService, tokens: tokens}
}

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type userResponse struct {
	User *domain.User `json:"user"`
}

type messageResponse struct {
	Msg string `json:"msg"`
}

// Register creates a new account and signs the caller in.
//
// @Summary      Register a new account
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "Account details"
// @Success      201   {object}  userResponse
// @Failure      400   {object}  errorResponse
// @Router       /auth/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	user, err := h.authService.Register(c.Request().Context(), ports.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return err
	}

	signed, err := h.tokens.Issue(user.Snapshot())
	if err != nil {
		return err
	}
	h.tokens.Attach(c, signed)

	metrics.RegistrationsTotal.WithLabelValues("self").Inc()
	return c.JSON(http.StatusCreated, userResponse{User: user})
}

// Login verifies credentials and sets the identity cookie.
//
// @Summary      Log in
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Credentials"
// @Success      200   {object}  userResponse
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	user, err := h.authService.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrUserNotFound):
			metrics.LoginsTotal.WithLabelValues("unknown_user").Inc()
		case errors.Is(err, domain.ErrWrongPassword):
			metrics.LoginsTotal.WithLabelValues("wrong_password").Inc()
		}
		return err
	}

	signed, err := h.tokens.Issue(user.Snapshot())
	if err != nil {
		return err
	}
	h.tokens.Attach(c, signed)

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	return c.JSON(http.StatusOK, userResponse{User: user})
}

// Logout clears the identity cookie. It succeeds whether or not the caller
// was signed in.
//
// @Summary      Log out
// @Tags         auth
// @Success      204
// @Router       /auth/logout [get]
func (h *AuthHandler) Logout(c echo.Context) error {
	h.tokens.Clear(c)
	return c.NoContent(http.StatusNoContent)
}
