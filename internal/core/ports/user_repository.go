package ports

import (
	"context"

	"github.com/coursehub/course-marketplace/internal/core/domain"
)

// UserRepository defines persistence operations for user accounts.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	// FindByID retrieves a user by primary key. Returns domain.ErrUserNotFound
	// when the subject no longer exists.
	FindByID(ctx context.Context, id string) (*domain.User, error)
	// FindByEmail matches case-insensitively (emails are stored lowercased).
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	// FindByIDs returns the users whose ids are in ids; missing ids are skipped.
	FindByIDs(ctx context.Context, ids []string) ([]*domain.User, error)
	UpdateProfile(ctx context.Context, id, name, email string) (*domain.User, error)
	// AddPurchasedCourse adds courseID to the user's purchased set. Idempotent.
	AddPurchasedCourse(ctx context.Context, userID, courseID string) error
	// AddCreatedCourse adds courseID to the user's created set. Idempotent.
	AddCreatedCourse(ctx context.Context, userID, courseID string) error
}
