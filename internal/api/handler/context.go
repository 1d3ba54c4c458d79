package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/99minutos/auth-api/internal/api/middleware"
	"github.com/99minutos/auth-api/internal/core/domain"
)

// currentUser returns the identity injected by the Auth middleware. Its
// absence means the route was mounted without the guard; reject with 401
// rather than serve anonymous data.
func currentUser(c echo.Context) (*domain.User, error) {
	if user, ok := c.Get(middleware.UserKey).(*domain.User); ok && user != nil {
		return user, nil
	}
	if user, ok := middleware.UserFromContext(c.Request().Context()); ok {
		return user, nil
	}
	return nil, echo.NewHTTPError(http.StatusUnauthorized, "Unauthorized")
}
