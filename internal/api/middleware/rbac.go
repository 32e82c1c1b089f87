package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/coursehub/course-marketplace/internal/core/domain"
)

// RequireRole gates a route on the attached identity's role. It must be
// registered after Auth; the bare type assertion makes running it without an
// attached identity a loud programming error rather than a silent deny.
func RequireRole(allowedRoles ...domain.Role) echo.MiddlewareFunc {
	allowed := make(map[domain.Role]struct{}, len(allowedRoles))
	for _, r := range allowedRoles {
		allowed[r] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			user := c.Get(IdentityContextKey).(*domain.User)
			if _, ok := allowed[user.Role]; !ok {
				return domain.ErrForbidden
			}
			return next(c)
		}
	}
}
