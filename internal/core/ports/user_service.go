package ports

import (
	"context"

	"github.com/coursehub/course-marketplace/internal/core/domain"
)

// ProfileUpdateInput carries the editable profile fields. Empty strings mean
// "keep the current value".
type ProfileUpdateInput struct {
	Name  string
	Email string
}

// UserService defines the use-case operations over the acting user's account.
type UserService interface {
	Profile(ctx context.Context, userID string) (*domain.User, error)
	UpdateProfile(ctx context.Context, userID string, in ProfileUpdateInput) (*domain.User, error)
	PurchasedCourses(ctx context.Context, user *domain.User) ([]CourseView, error)
	CreatedCourses(ctx context.Context, user *domain.User) ([]*domain.Course, error)
}
