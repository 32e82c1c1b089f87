package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/coursehub/course-marketplace/internal/core/domain"
)

func runRequireRole(t *testing.T, user *domain.User, allowed ...domain.Role) (called bool, err error) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set(IdentityContextKey, user)

	mw := RequireRole(allowed...)
	err = mw(func(c echo.Context) error {
		called = true
		return c.NoContent(http.StatusOK)
	})(c)
	return called, err
}

func TestRequireRole_Allowed(t *testing.T) {
	for _, role := range []domain.Role{domain.RoleInstructor, domain.RoleAdmin} {
		called, err := runRequireRole(t, &domain.User{ID: "u1", Role: role}, domain.RoleInstructor, domain.RoleAdmin)
		if err != nil {
			t.Fatalf("role %q: unexpected error: %v", role, err)
		}
		if !called {
			t.Fatalf("role %q: next not called", role)
		}
	}
}

func TestRequireRole_Denied(t *testing.T) {
	called, err := runRequireRole(t, &domain.User{ID: "u1", Role: domain.RoleStudent}, domain.RoleInstructor, domain.RoleAdmin)
	if called {
		t.Fatalf("next should not be called")
	}
	if !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}
