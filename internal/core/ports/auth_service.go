package ports

import (
	"context"

	"github.com/coursehub/course-marketplace/internal/core/domain"
)

// AuthService implements registration and login.
type AuthService interface {
	// Register creates an account and returns a freshly issued token with it.
	// An empty role defaults to student.
	Register(ctx context.Context, name, email, password string, role domain.Role) (string, *domain.User, error)
	Login(ctx context.Context, email, password string) (string, *domain.User, error)
}
