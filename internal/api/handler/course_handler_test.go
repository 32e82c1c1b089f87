package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/coursehub/course-marketplace/internal/api/middleware"
	"github.com/coursehub/course-marketplace/internal/core/domain"
	"github.com/coursehub/course-marketplace/internal/core/ports"
)

type stubCourseService struct {
	listFn   func(ctx context.Context) ([]ports.CourseView, error)
	getFn    func(ctx context.Context, id string) (*ports.CourseView, error)
	createFn func(ctx context.Context, actor *domain.User, in ports.CreateCourseInput) (*domain.Course, error)
	updateFn func(ctx context.Context, actor *domain.User, id string, in ports.UpdateCourseInput) (*domain.Course, error)
	deleteFn func(ctx context.Context, actor *domain.User, id string) error
	enrollFn func(ctx context.Context, actor *domain.User, id string) error
	rateFn   func(ctx context.Context, actor *domain.User, id string, value int, review string) (*domain.Course, error)
}

func (s *stubCourseService) List(ctx context.Context) ([]ports.CourseView, error) {
	return s.listFn(ctx)
}

func (s *stubCourseService) Get(ctx context.Context, id string) (*ports.CourseView, error) {
	return s.getFn(ctx, id)
}

func (s *stubCourseService) Create(ctx context.Context, actor *domain.User, in ports.CreateCourseInput) (*domain.Course, error) {
	return s.createFn(ctx, actor, in)
}

func (s *stubCourseService) Update(ctx context.Context, actor *domain.User, id string, in ports.UpdateCourseInput) (*domain.Course, error) {
	return s.updateFn(ctx, actor, id, in)
}

func (s *stubCourseService) Delete(ctx context.Context, actor *domain.User, id string) error {
	return s.deleteFn(ctx, actor, id)
}

func (s *stubCourseService) Enroll(ctx context.Context, actor *domain.User, id string) error {
	return s.enrollFn(ctx, actor, id)
}

func (s *stubCourseService) Rate(ctx context.Context, actor *domain.User, id string, value int, review string) (*domain.Course, error) {
	return s.rateFn(ctx, actor, id, value, review)
}

func withIdentity(c echo.Context, user *domain.User) echo.Context {
	c.Set(middleware.IdentityContextKey, user)
	return c
}

func TestCourseHandler_Get_NotFound(t *testing.T) {
	stub := &stubCourseService{
		getFn: func(ctx context.Context, id string) (*ports.CourseView, error) {
			return nil, domain.ErrCourseNotFound
		},
	}
	h := NewCourseHandler(stub)

	c, _ := newTestContext(t, http.MethodGet, "/api/courses/ghost", "")
	c.SetParamNames("id")
	c.SetParamValues("ghost")

	err := h.Get(c)
	if !errors.Is(err, domain.ErrCourseNotFound) {
		t.Fatalf("expected ErrCourseNotFound to propagate, got %v", err)
	}
}

func TestCourseHandler_Create_ActorBecomesInstructor(t *testing.T) {
	actor := &domain.User{ID: "inst_1", Name: "Alice", Email: "alice@example.com", Role: domain.RoleInstructor}
	stub := &stubCourseService{
		createFn: func(ctx context.Context, got *domain.User, in ports.CreateCourseInput) (*domain.Course, error) {
			if got.ID != "inst_1" {
				t.Fatalf("expected actor passed to service, got %q", got.ID)
			}
			return &domain.Course{
				ID:           "course_1",
				Title:        in.Title,
				InstructorID: got.ID,
				Level:        domain.LevelBeginner,
			}, nil
		},
	}
	h := NewCourseHandler(stub)

	c, rec := newTestContext(t, http.MethodPost, "/api/courses",
		`{"title":"Go 101","description":"intro","category":"programming","price":49.9}`)
	withIdentity(c, actor)

	if err := h.Create(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	instructor, ok := resp["instructor"].(map[string]any)
	if !ok || instructor["id"] != "inst_1" || instructor["name"] != "Alice" {
		t.Fatalf("unexpected instructor payload: %+v", instructor)
	}
}

func TestCourseHandler_Create_NoIdentity(t *testing.T) {
	stub := &stubCourseService{
		createFn: func(ctx context.Context, actor *domain.User, in ports.CreateCourseInput) (*domain.Course, error) {
			t.Fatalf("service should not be called")
			return nil, nil
		},
	}
	h := NewCourseHandler(stub)

	c, _ := newTestContext(t, http.MethodPost, "/api/courses",
		`{"title":"Go 101","description":"intro","category":"programming"}`)

	err := h.Create(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %v", err)
	}
}

func TestCourseHandler_Update_OwnershipDenied(t *testing.T) {
	stub := &stubCourseService{
		updateFn: func(ctx context.Context, actor *domain.User, id string, in ports.UpdateCourseInput) (*domain.Course, error) {
			return nil, domain.ErrNotCourseOwner
		},
	}
	h := NewCourseHandler(stub)

	c, _ := newTestContext(t, http.MethodPut, "/api/courses/course_1", `{"title":"New"}`)
	c.SetParamNames("id")
	c.SetParamValues("course_1")
	withIdentity(c, &domain.User{ID: "inst_2", Role: domain.RoleInstructor})

	err := h.Update(c)
	if !errors.Is(err, domain.ErrNotCourseOwner) {
		t.Fatalf("expected ErrNotCourseOwner to propagate, got %v", err)
	}
}

func TestCourseHandler_Enroll_Success(t *testing.T) {
	stub := &stubCourseService{
		enrollFn: func(ctx context.Context, actor *domain.User, id string) error {
			if actor.ID != "stud_1" || id != "course_1" {
				t.Fatalf("unexpected args: %s %s", actor.ID, id)
			}
			return nil
		},
	}
	h := NewCourseHandler(stub)

	c, rec := newTestContext(t, http.MethodPost, "/api/courses/course_1/enroll", "")
	c.SetParamNames("id")
	c.SetParamValues("course_1")
	withIdentity(c, &domain.User{ID: "stud_1", Role: domain.RoleStudent})

	if err := h.Enroll(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestCourseHandler_Enroll_AlreadyEnrolled(t *testing.T) {
	stub := &stubCourseService{
		enrollFn: func(ctx context.Context, actor *domain.User, id string) error {
			return domain.ErrAlreadyEnrolled
		},
	}
	h := NewCourseHandler(stub)

	c, _ := newTestContext(t, http.MethodPost, "/api/courses/course_1/enroll", "")
	c.SetParamNames("id")
	c.SetParamValues("course_1")
	withIdentity(c, &domain.User{ID: "stud_1", Role: domain.RoleStudent})

	err := h.Enroll(c)
	if !errors.Is(err, domain.ErrAlreadyEnrolled) {
		t.Fatalf("expected ErrAlreadyEnrolled to propagate, got %v", err)
	}
}

func TestCourseHandler_Rate_ValidationFailure(t *testing.T) {
	stub := &stubCourseService{
		rateFn: func(ctx context.Context, actor *domain.User, id string, value int, review string) (*domain.Course, error) {
			t.Fatalf("service should not be called")
			return nil, nil
		},
	}
	h := NewCourseHandler(stub)

	c, _ := newTestContext(t, http.MethodPost, "/api/courses/course_1/rate", `{"rating":9}`)
	c.SetParamNames("id")
	c.SetParamValues("course_1")
	withIdentity(c, &domain.User{ID: "stud_1", Role: domain.RoleStudent})

	err := h.Rate(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %v", err)
	}
}
