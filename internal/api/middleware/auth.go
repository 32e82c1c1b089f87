package middleware

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/coursehub/course-marketplace/internal/api/metrics"
	"github.com/coursehub/course-marketplace/internal/core/domain"
	"github.com/coursehub/course-marketplace/internal/core/ports"
)

// IdentityContextKey is the echo context key under which Auth stores the
// resolved *domain.User.
const IdentityContextKey = "auth.identity"

// IdentityResolver loads the current user record for a verified subject id.
type IdentityResolver interface {
	FindByID(ctx context.Context, id string) (*domain.User, error)
}

// Auth is the request gate for protected routes. It runs a linear pipeline,
// short-circuiting on the first failure, each branch with its own reason:
// missing header, malformed header, empty token, invalid/expired token, and
// stale token (subject no longer exists). On success the resolved user is
// attached to the context. A resolver backend failure surfaces as a server
// fault, never as a credential failure.
func Auth(codec ports.TokenCodec, resolver IdentityResolver) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get("Authorization")
			if header == "" {
				metrics.AuthFailuresTotal.WithLabelValues("no_credential").Inc()
				return echo.NewHTTPError(http.StatusUnauthorized, "authorization header required")
			}

			parts := strings.SplitN(header, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				metrics.AuthFailuresTotal.WithLabelValues("malformed_credential").Inc()
				return echo.NewHTTPError(http.StatusUnauthorized, "authorization header must be a Bearer token")
			}

			token := strings.TrimSpace(parts[1])
			if token == "" {
				metrics.AuthFailuresTotal.WithLabelValues("empty_credential").Inc()
				return echo.NewHTTPError(http.StatusUnauthorized, "bearer token is empty")
			}

			claims, err := codec.Verify(token)
			if err != nil {
				metrics.AuthFailuresTotal.WithLabelValues("invalid_credential").Inc()
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid or expired token")
			}

			user, err := resolver.FindByID(c.Request().Context(), claims.UserID)
			if err != nil {
				if errors.Is(err, domain.ErrUserNotFound) {
					metrics.AuthFailuresTotal.WithLabelValues("stale_credential").Inc()
					return echo.NewHTTPError(http.StatusUnauthorized, "user for this token no longer exists")
				}
				return fmt.Errorf("resolve identity: %w", err)
			}

			c.Set(IdentityContextKey, user)
			return next(c)
		}
	}
}
