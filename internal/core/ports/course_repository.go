package ports

import (
	"context"

	"github.com/coursehub/course-marketplace/internal/core/domain"
)

// CourseUpdate is a partial update of course fields. Nil fields are left
// untouched. There is deliberately no instructor field: ownership cannot be
// reassigned through an update.
type CourseUpdate struct {
	Title       *string
	Description *string
	Price       *float64
	Image       *string
	Category    *string
	Level       *domain.Level
	Content     *[]domain.ContentItem
}

// CourseRepository defines persistence operations for courses.
type CourseRepository interface {
	Insert(ctx context.Context, c *domain.Course) (*domain.Course, error)
	FindByID(ctx context.Context, id string) (*domain.Course, error)
	// FindByIDs returns the courses whose ids are in ids; missing ids are skipped.
	FindByIDs(ctx context.Context, ids []string) ([]*domain.Course, error)
	List(ctx context.Context) ([]*domain.Course, error)
	Update(ctx context.Context, id string, patch CourseUpdate) (*domain.Course, error)
	Delete(ctx context.Context, id string) error

	// AddEnrollment atomically adds userID to the course's enrolled set.
	// Returns domain.ErrAlreadyEnrolled when the user is already a member and
	// domain.ErrCourseNotFound when the course does not exist. The membership
	// check and the append are a single conditional update, not a
	// read-then-write round trip.
	AddEnrollment(ctx context.Context, courseID, userID string) error

	// UpsertRating replaces the student's existing rating entry in place, or
	// appends a new one, as a conditional update keyed on rating.user_id.
	UpsertRating(ctx context.Context, courseID string, rating domain.Rating) error
}
