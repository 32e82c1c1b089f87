package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/coursehub/course-marketplace/internal/core/domain"
	"github.com/coursehub/course-marketplace/internal/core/ports"
)

// UserHandler handles HTTP requests for the acting user's account.
type UserHandler struct {
	service ports.UserService
}

func NewUserHandler(service ports.UserService) *UserHandler {
	return &UserHandler{service: service}
}

type updateProfileRequest struct {
	Name  string `json:"name"  validate:"omitempty,min=1"`
	Email string `json:"email" validate:"omitempty,email"`
}

// profileResponse is the full own-account view. The password hash is excluded
// at the domain level and never reaches this type.
type profileResponse struct {
	ID               string    `json:"id"`
	Name             string    `json:"name"`
	Email            string    `json:"email"`
	Role             string    `json:"role"`
	PurchasedCourses []string  `json:"purchased_courses"`
	CreatedCourses   []string  `json:"created_courses"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

func toProfileResponse(u *domain.User) profileResponse {
	return profileResponse{
		ID:               u.ID,
		Name:             u.Name,
		Email:            u.Email,
		Role:             string(u.Role),
		PurchasedCourses: u.PurchasedCourses,
		CreatedCourses:   u.CreatedCourses,
		CreatedAt:        u.CreatedAt.UTC(),
		UpdatedAt:        u.UpdatedAt.UTC(),
	}
}

// Profile handles GET /api/users/profile.
//
// @Summary      Get own profile
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  profileResponse
// @Failure      401  {object}  errorResponse
// @Router       /api/users/profile [get]
func (h *UserHandler) Profile(c echo.Context) error {
	actor, err := currentUser(c)
	if err != nil {
		return err
	}

	user, err := h.service.Profile(c.Request().Context(), actor.ID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toProfileResponse(user))
}

// UpdateProfile handles PUT /api/users/profile.
//
// @Summary      Update own profile
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      updateProfileRequest  true  "Fields to update"
// @Success      200   {object}  profileResponse
// @Failure      409   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /api/users/profile [put]
func (h *UserHandler) UpdateProfile(c echo.Context) error {
	actor, err := currentUser(c)
	if err != nil {
		return err
	}

	var req updateProfileRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	user, err := h.service.UpdateProfile(c.Request().Context(), actor.ID, ports.ProfileUpdateInput{
		Name:  req.Name,
		Email: req.Email,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toProfileResponse(user))
}

// PurchasedCourses handles GET /api/users/purchased-courses.
//
// @Summary      List courses the user is enrolled in
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   courseSummaryResponse
// @Failure      401  {object}  errorResponse
// @Router       /api/users/purchased-courses [get]
func (h *UserHandler) PurchasedCourses(c echo.Context) error {
	actor, err := currentUser(c)
	if err != nil {
		return err
	}

	views, err := h.service.PurchasedCourses(c.Request().Context(), actor)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toListResponse(views))
}

// CreatedCourses handles GET /api/users/created-courses. Instructors and
// admins only (enforced at the route).
//
// @Summary      List courses the user has created
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   courseSummaryResponse
// @Failure      403  {object}  errorResponse
// @Router       /api/users/created-courses [get]
func (h *UserHandler) CreatedCourses(c echo.Context) error {
	actor, err := currentUser(c)
	if err != nil {
		return err
	}

	courses, err := h.service.CreatedCourses(c.Request().Context(), actor)
	if err != nil {
		return err
	}

	views := make([]ports.CourseView, len(courses))
	for i, course := range courses {
		views[i] = ports.CourseView{
			Course:          course,
			InstructorName:  actor.Name,
			InstructorEmail: actor.Email,
		}
	}
	return c.JSON(http.StatusOK, toListResponse(views))
}
