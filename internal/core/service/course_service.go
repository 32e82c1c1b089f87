package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/coursehub/course-marketplace/internal/core/domain"
	"github.com/coursehub/course-marketplace/internal/core/ports"
)

// CourseService implements the course catalog use cases: CRUD under the
// owner-or-admin policy, enrollment, and rating upserts.
type CourseService struct {
	courses ports.CourseRepository
	users   ports.UserRepository
	log     zerolog.Logger
}

func NewCourseService(courses ports.CourseRepository, users ports.UserRepository, log zerolog.Logger) *CourseService {
	return &CourseService{courses: courses, users: users, log: log}
}

func (s *CourseService) List(ctx context.Context) ([]ports.CourseView, error) {
	courses, err := s.courses.List(ctx)
	if err != nil {
		return nil, err
	}
	return attachInstructors(ctx, s.users, courses)
}

func (s *CourseService) Get(ctx context.Context, id string) (*ports.CourseView, error) {
	course, err := s.courses.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	views, err := attachInstructors(ctx, s.users, []*domain.Course{course})
	if err != nil {
		return nil, err
	}
	return &views[0], nil
}

func (s *CourseService) Create(ctx context.Context, actor *domain.User, in ports.CreateCourseInput) (*domain.Course, error) {
	level := in.Level
	if level == "" {
		level = domain.LevelBeginner
	}
	if !level.Valid() {
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidLevel, level)
	}

	now := time.Now().UTC()
	course := &domain.Course{
		Title:            in.Title,
		Description:      in.Description,
		InstructorID:     actor.ID,
		Price:            in.Price,
		Image:            in.Image,
		Category:         in.Category,
		Level:            level,
		Content:          toContentItems(in.Content),
		EnrolledStudents: []string{},
		Ratings:          []domain.Rating{},
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	created, err := s.courses.Insert(ctx, course)
	if err != nil {
		s.log.Error().Err(err).Str("instructor_id", actor.ID).Msg("failed to create course")
		return nil, err
	}

	// Back-reference on the creator. $addToSet keeps a retry convergent.
	if err := s.users.AddCreatedCourse(ctx, actor.ID, created.ID); err != nil {
		s.log.Warn().Err(err).Str("course_id", created.ID).Msg("failed to record created course on user")
	}

	s.log.Info().Str("course_id", created.ID).Str("instructor_id", actor.ID).Msg("course created")
	return created, nil
}

func (s *CourseService) Update(ctx context.Context, actor *domain.User, id string, in ports.UpdateCourseInput) (*domain.Course, error) {
	course, err := s.courses.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !course.CanBeMutatedBy(actor) {
		return nil, domain.ErrNotCourseOwner
	}
	if in.Level != nil && !in.Level.Valid() {
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidLevel, *in.Level)
	}

	patch := ports.CourseUpdate{
		Title:       in.Title,
		Description: in.Description,
		Price:       in.Price,
		Image:       in.Image,
		Category:    in.Category,
		Level:       in.Level,
	}
	if in.Content != nil {
		items := toContentItems(*in.Content)
		patch.Content = &items
	}

	return s.courses.Update(ctx, id, patch)
}

func (s *CourseService) Delete(ctx context.Context, actor *domain.User, id string) error {
	course, err := s.courses.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if !course.CanBeMutatedBy(actor) {
		return domain.ErrNotCourseOwner
	}
	if err := s.courses.Delete(ctx, id); err != nil {
		return err
	}
	s.log.Info().Str("course_id", id).Str("actor_id", actor.ID).Msg("course deleted")
	return nil
}

// Enroll adds the actor to the course's enrolled set and the course to the
// actor's purchased set. The membership check and the append are one
// conditional update in the repository; the purchased-set write is idempotent
// so a retry after a partial failure converges.
func (s *CourseService) Enroll(ctx context.Context, actor *domain.User, id string) error {
	if err := s.courses.AddEnrollment(ctx, id, actor.ID); err != nil {
		return err
	}
	if err := s.users.AddPurchasedCourse(ctx, actor.ID, id); err != nil {
		return fmt.Errorf("record purchased course: %w", err)
	}
	s.log.Info().Str("course_id", id).Str("user_id", actor.ID).Msg("student enrolled")
	return nil
}

// Rate upserts the actor's rating on a course. At most one entry per student;
// a repeat rating replaces the value and review in place.
func (s *CourseService) Rate(ctx context.Context, actor *domain.User, id string, value int, review string) (*domain.Course, error) {
	if value < 1 || value > 5 {
		return nil, domain.ErrInvalidRating
	}

	course, err := s.courses.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !course.IsEnrolled(actor.ID) {
		return nil, domain.ErrNotEnrolled
	}

	rating := domain.Rating{
		UserID:    actor.ID,
		Value:     value,
		Review:    review,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.courses.UpsertRating(ctx, id, rating); err != nil {
		return nil, err
	}

	s.log.Info().Str("course_id", id).Str("user_id", actor.ID).Int("rating", value).Msg("course rated")
	return s.courses.FindByID(ctx, id)
}

// attachInstructors resolves the instructor name and email for each course
// with a single batched lookup.
func attachInstructors(ctx context.Context, users ports.UserRepository, courses []*domain.Course) ([]ports.CourseView, error) {
	ids := make([]string, 0, len(courses))
	seen := make(map[string]struct{}, len(courses))
	for _, c := range courses {
		if _, ok := seen[c.InstructorID]; !ok {
			seen[c.InstructorID] = struct{}{}
			ids = append(ids, c.InstructorID)
		}
	}

	instructors, err := users.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[string]*domain.User, len(instructors))
	for _, u := range instructors {
		byID[u.ID] = u
	}

	views := make([]ports.CourseView, len(courses))
	for i, c := range courses {
		views[i] = ports.CourseView{Course: c}
		if u, ok := byID[c.InstructorID]; ok {
			views[i].InstructorName = u.Name
			views[i].InstructorEmail = u.Email
		}
	}
	return views, nil
}

func toContentItems(in []ports.ContentItemInput) []domain.ContentItem {
	items := make([]domain.ContentItem, len(in))
	for i, item := range in {
		items[i] = domain.ContentItem{
			Title:       item.Title,
			Description: item.Description,
			VideoURL:    item.VideoURL,
			Duration:    item.Duration,
		}
	}
	return items
}
