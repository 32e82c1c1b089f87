package service

import (
	"context"
	"errors"
	"strings"

	"github.com/rs/zerolog"

	"github.com/coursehub/course-marketplace/internal/core/domain"
	"github.com/coursehub/course-marketplace/internal/core/ports"
)

// UserService implements profile and course-listing use cases for the acting
// account.
type UserService struct {
	users   ports.UserRepository
	courses ports.CourseRepository
	log     zerolog.Logger
}

func NewUserService(users ports.UserRepository, courses ports.CourseRepository, log zerolog.Logger) *UserService {
	return &UserService{users: users, courses: courses, log: log}
}

func (s *UserService) Profile(ctx context.Context, userID string) (*domain.User, error) {
	return s.users.FindByID(ctx, userID)
}

func (s *UserService) UpdateProfile(ctx context.Context, userID string, in ports.ProfileUpdateInput) (*domain.User, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	name := user.Name
	if in.Name != "" {
		name = strings.TrimSpace(in.Name)
	}

	email := user.Email
	if in.Email != "" {
		email = strings.ToLower(strings.TrimSpace(in.Email))
		if email != user.Email {
			if _, err := s.users.FindByEmail(ctx, email); err == nil {
				return nil, domain.ErrEmailTaken
			} else if !errors.Is(err, domain.ErrUserNotFound) {
				return nil, err
			}
		}
	}

	updated, err := s.users.UpdateProfile(ctx, userID, name, email)
	if err != nil {
		return nil, err
	}
	s.log.Info().Str("user_id", userID).Msg("profile updated")
	return updated, nil
}

// PurchasedCourses resolves the user's purchased set into full course views.
func (s *UserService) PurchasedCourses(ctx context.Context, user *domain.User) ([]ports.CourseView, error) {
	courses, err := s.courses.FindByIDs(ctx, user.PurchasedCourses)
	if err != nil {
		return nil, err
	}
	return attachInstructors(ctx, s.users, courses)
}

// CreatedCourses resolves the user's created set. Route-level RBAC restricts
// this to instructors and admins.
func (s *UserService) CreatedCourses(ctx context.Context, user *domain.User) ([]*domain.Course, error) {
	return s.courses.FindByIDs(ctx, user.CreatedCourses)
}
