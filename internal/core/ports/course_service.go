package ports

import (
	"context"

	"github.com/coursehub/course-marketplace/internal/core/domain"
)

// ContentItemInput is a single lesson in a create/update payload.
type ContentItemInput struct {
	Title       string
	Description string
	VideoURL    string
	Duration    float64
}

// CreateCourseInput carries all data needed to create a course. The
// instructor is always the acting identity, never client-supplied.
type CreateCourseInput struct {
	Title       string
	Description string
	Price       float64
	Image       string
	Category    string
	Level       domain.Level
	Content     []ContentItemInput
}

// UpdateCourseInput is a partial edit; nil fields are untouched.
type UpdateCourseInput struct {
	Title       *string
	Description *string
	Price       *float64
	Image       *string
	Category    *string
	Level       *domain.Level
	Content     *[]ContentItemInput
}

// CourseView pairs a course with its resolved instructor identity, the way
// list and detail responses present it.
type CourseView struct {
	Course          *domain.Course
	InstructorName  string
	InstructorEmail string
}

// CourseService defines the use-case operations over courses.
type CourseService interface {
	List(ctx context.Context) ([]CourseView, error)
	Get(ctx context.Context, id string) (*CourseView, error)
	Create(ctx context.Context, actor *domain.User, in CreateCourseInput) (*domain.Course, error)
	Update(ctx context.Context, actor *domain.User, id string, in UpdateCourseInput) (*domain.Course, error)
	Delete(ctx context.Context, actor *domain.User, id string) error
	Enroll(ctx context.Context, actor *domain.User, id string) error
	Rate(ctx context.Context, actor *domain.User, id string, value int, review string) (*domain.Course, error)
}
