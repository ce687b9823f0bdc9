package handlers

import (
	"errors"
	"net/http"

	"github.com/anonto42/linkup/backend/internal/middleware"
	"github.com/anonto42/linkup/backend/internal/services"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// serviceError converts a service failure into the HTTP error returned to the
// client. Internal failures are logged and hidden behind a generic message.
func serviceError(log *zap.Logger, err error) error {
	var se *services.ServiceError
	if !errors.As(err, &se) {
		log.Error("unhandled error", zap.Error(err))
		return echo.NewHTTPError(http.StatusInternalServerError, "Internal server error")
	}

	switch se.Code {
	case services.ErrNotFound:
		return echo.NewHTTPError(http.StatusNotFound, se.Message)
	case services.ErrInvalidOperation, services.ErrAlreadyExists, services.ErrNotFollowing, services.ErrValidation:
		return echo.NewHTTPError(http.StatusBadRequest, se.Message)
	case services.ErrForbidden:
		return echo.NewHTTPError(http.StatusForbidden, se.Message)
	default:
		log.Error(se.Message, zap.String("code", se.Code.String()), zap.Error(se.Err))
		return echo.NewHTTPError(http.StatusInternalServerError, "Internal server error")
	}
}

// getUserIDFromContext returns the authenticated user's id, or "" when the
// request was not authenticated.
func getUserIDFromContext(c echo.Context) string {
	id, _ := c.Get(middleware.UserIDKey).(string)
	return id
}

func currentUser(c echo.Context) (string, error) {
	id := getUserIDFromContext(c)
	if id == "" {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}
	return id, nil
}

func success(c echo.Context, status int, data interface{}) error {
	return c.JSON(status, echo.Map{"success": true, "data": data})
}

// bindAndValidate decodes the request body into req and runs the registered validator
func bindAndValidate(c echo.Context, req interface{}) error {
	if err := c.Bind(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(req); err != nil {
		return err
	}
	return nil
}
