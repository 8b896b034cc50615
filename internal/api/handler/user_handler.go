package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/casazul/real-estate-api/internal/api/metrics"
	"github.com/casazul/real-estate-api/internal/api/middleware"
	"github.com/casazul/real-estate-api/internal/core/domain"
	"github.com/casazul/real-estate-api/internal/core/ports"
	"github.com/casazul/real-estate-api/internal/pkg/token"
)

type UserHandler struct {
	userService ports.UserService
	tokens      *token.Service
}

func NewUserHandler(userService ports.UserService, tokens *token.Service) *UserHandler {
	return &UserHandler{userService: userService, tokens: tokens}
}

type createUserRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
	Role     string `json:"role"`
}

type updateNameRequest struct {
	Name string `json:"name"`
}

type updateEmailRequest struct {
	Email string `json:"email"`
}

type updatePasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

type usersResponse struct {
	Users         []*domain.User `json:"users"`
	NumberOfUsers int            `json:"numberOfUsers"`
}

type favoritesResponse struct {
	Favorites         []*domain.Property `json:"favorites"`
	NumberOfFavorites int                `json:"numberOfFavorites"`
}

// List returns every account.
//
// @Summary      List accounts
// @Tags         users
// @Produce      json
// @Success      200  {object}  usersResponse
// @Router       /users [get]
func (h *UserHandler) List(c echo.Context) error {
	users, err := h.userService.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, usersResponse{Users: users, NumberOfUsers: len(users)})
}

// Get returns one account by id.
//
// @Summary      Get an account
// @Tags         users
// @Produce      json
// @Param        userId  path      string  true  "User id"
// @Success      200     {object}  userResponse
// @Failure      400     {object}  errorResponse
// @Failure      404     {object}  errorResponse
// @Router       /users/{userId} [get]
func (h *UserHandler) Get(c echo.Context) error {
	user, err := h.userService.Get(c.Request().Context(), c.Param("userId"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, userResponse{User: user})
}

// CurrentUser returns the signed-in caller's token snapshot without hitting
// the store.
//
// @Summary      Get the signed-in account
// @Tags         users
// @Produce      json
// @Success      200  {object}  map[string]domain.Snapshot
// @Failure      401  {object}  errorResponse
// @Router       /users/currentUser [get]
func (h *UserHandler) CurrentUser(c echo.Context) error {
	claims, ok := middleware.CurrentUser(c)
	if !ok {
		return domain.ErrUnauthorized
	}
	return c.JSON(http.StatusOK, map[string]domain.Snapshot{"user": claims.Snapshot()})
}

// Create adds an account with an explicit role. Reserved for administrators.
//
// @Summary      Create an account
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        body  body      createUserRequest  true  "Account details"
// @Success      201   {object}  userResponse
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Router       /users [post]
func (h *UserHandler) Create(c echo.Context) error {
	var req createUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	user, err := h.userService.Create(c.Request().Context(), ports.CreateUserInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Role:     domain.ParseRole(req.Role),
	})
	if err != nil {
		return err
	}

	metrics.RegistrationsTotal.WithLabelValues("admin").Inc()
	return c.JSON(http.StatusCreated, userResponse{User: user})
}

// UpdateName renames the signed-in account and re-issues the identity
// cookie with the fresh snapshot.
//
// @Summary      Rename the signed-in account
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        body  body      updateNameRequest  true  "New name"
// @Success      200   {object}  userResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Router       /users/currentUser/username [patch]
func (h *UserHandler) UpdateName(c echo.Context) error {
	claims, ok := middleware.CurrentUser(c)
	if !ok {
		return domain.ErrUnauthorized
	}

	var req updateNameRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	user, err := h.userService.UpdateName(c.Request().Context(), claims.UserID, req.Name)
	if err != nil {
		return err
	}
	if err := h.reissue(c, user); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, userResponse{User: user})
}

// UpdateEmail changes the signed-in account's email and re-issues the
// identity cookie.
//
// @Summary      Change the signed-in account's email
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        body  body      updateEmailRequest  true  "New email"
// @Success      200   {object}  userResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Router       /users/currentUser/email [patch]
func (h *UserHandler) UpdateEmail(c echo.Context) error {
	claims, ok := middleware.CurrentUser(c)
	if !ok {
		return domain.ErrUnauthorized
	}

	var req updateEmailRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	user, err := h.userService.UpdateEmail(c.Request().Context(), claims.UserID, req.Email)
	if err != nil {
		return err
	}
	if err := h.reissue(c, user); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, userResponse{User: user})
}

// UpdatePassword rotates the signed-in account's password after verifying
// the current one.
//
// @Summary      Change the signed-in account's password
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        body  body      updatePasswordRequest  true  "Current and new password"
// @Success      200   {object}  messageResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Router       /users/currentUser/password [patch]
func (h *UserHandler) UpdatePassword(c echo.Context) error {
	claims, ok := middleware.CurrentUser(c)
	if !ok {
		return domain.ErrUnauthorized
	}

	var req updatePasswordRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	if err := h.userService.UpdatePassword(c.Request().Context(), claims.UserID, req.CurrentPassword, req.NewPassword); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Msg: "password updated"})
}

// Favorites returns the signed-in caller's favorited listings.
//
// @Summary      List favorited listings
// @Tags         users
// @Produce      json
// @Success      200  {object}  favoritesResponse
// @Failure      401  {object}  errorResponse
// @Router       /users/currentUser/propertiesFavorited [get]
func (h *UserHandler) Favorites(c echo.Context) error {
	claims, ok := middleware.CurrentUser(c)
	if !ok {
		return domain.ErrUnauthorized
	}

	favorites, err := h.userService.Favorites(c.Request().Context(), claims.UserID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, favoritesResponse{Favorites: favorites, NumberOfFavorites: len(favorites)})
}

// AddFavorite marks a listing as favorited. Adding an already-favorited
// listing is a no-op.
//
// @Summary      Favorite a listing
// @Tags         users
// @Param        propertyId  path      string  true  "Property id"
// @Success      200         {object}  userResponse
// @Failure      400         {object}  errorResponse
// @Failure      401         {object}  errorResponse
// @Router       /users/currentUser/{propertyId} [patch]
func (h *UserHandler) AddFavorite(c echo.Context) error {
	claims, ok := middleware.CurrentUser(c)
	if !ok {
		return domain.ErrUnauthorized
	}

	user, err := h.userService.AddFavorite(c.Request().Context(), claims.UserID, c.Param("propertyId"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, userResponse{User: user})
}

// RemoveFavorite unmarks a favorited listing.
//
// @Summary      Unfavorite a listing
// @Tags         users
// @Param        propertyId  path      string  true  "Property id"
// @Success      200         {object}  userResponse
// @Failure      400         {object}  errorResponse
// @Failure      401         {object}  errorResponse
// @Router       /users/currentUser/{propertyId} [delete]
func (h *UserHandler) RemoveFavorite(c echo.Context) error {
	claims, ok := middleware.CurrentUser(c)
	if !ok {
		return domain.ErrUnauthorized
	}

	user, err := h.userService.RemoveFavorite(c.Request().Context(), claims.UserID, c.Param("propertyId"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, userResponse{User: user})
}

// reissue refreshes the identity cookie after a profile change, so the
// token snapshot keeps matching the stored account.
func (h *UserHandler) reissue(c echo.Context, user *domain.User) error {
	signed, err := h.tokens.Issue(user.Snapshot())
	if err != nil {
		return err
	}
	h.tokens.Attach(c, signed)
	return nil
}
