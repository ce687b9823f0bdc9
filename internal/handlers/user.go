package handlers

import (
	"net/http"

	"github.com/anonto42/linkup/backend/internal/models"
	"github.com/anonto42/linkup/backend/internal/services"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// UserHandler handles HTTP requests related to user profiles
type UserHandler struct {
	userService *services.UserService
	log         *zap.Logger
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(userService *services.UserService, log *zap.Logger) *UserHandler {
	return &UserHandler{userService: userService, log: log}
}

// RegisterProfileRoutes registers user profile-related routes
func (h *UserHandler) RegisterProfileRoutes(g *echo.Group) {
	g.GET("/profile", h.GetProfile)    // own profile
	g.PUT("/profile", h.UpdateProfile) // update own profile
	g.GET("/users/:id", h.GetUser)     // another user's profile
}

func (h *UserHandler) GetUser(c echo.Context) error {
	if _, err := currentUser(c); err != nil {
		return err
	}
	user, err := h.userService.GetUser(c.Request().Context(), c.Param("id"))
	if err != nil {
		return serviceError(h.log, err)
	}
	return success(c, http.StatusOK, user)
}

// GetProfile retrieves the authenticated user's profile
func (h *UserHandler) GetProfile(c echo.Context) error {
	userID, err := currentUser(c)
	if err != nil {
		return err
	}
	user, err := h.userService.GetUser(c.Request().Context(), userID)
	if err != nil {
		return serviceError(h.log, err)
	}
	return success(c, http.StatusOK, user)
}

// UpdateProfile updates the authenticated user's profile
func (h *UserHandler) UpdateProfile(c echo.Context) error {
	userID, err := currentUser(c)
	if err != nil {
		return err
	}
	var req models.UpdateProfileRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	user, err := h.userService.UpdateProfile(c.Request().Context(), userID, &req)
	if err != nil {
		return serviceError(h.log, err)
	}
	return success(c, http.StatusOK, user)
}
