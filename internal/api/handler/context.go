package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/coursehub/course-marketplace/internal/api/middleware"
	"github.com/coursehub/course-marketplace/internal/core/domain"
)

// currentUser extracts the identity attached by the Auth middleware and
// fast-fails before any service call. Its presence proves the guard ran;
// handlers on protected routes can rely on a non-nil user.
func currentUser(c echo.Context) (*domain.User, error) {
	user, ok := c.Get(middleware.IdentityContextKey).(*domain.User)
	if !ok {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication identity")
	}
	return user, nil
}
