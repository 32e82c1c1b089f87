package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/coursehub/course-marketplace/internal/api/metrics"
	"github.com/coursehub/course-marketplace/internal/core/ports"
)

// CourseHandler handles HTTP requests for the course catalog.
type CourseHandler struct {
	service ports.CourseService
}

func NewCourseHandler(service ports.CourseService) *CourseHandler {
	return &CourseHandler{service: service}
}

// List handles GET /api/courses, the public catalog.
//
// @Summary      List all courses
// @Tags         courses
// @Produce      json
// @Success      200  {array}   courseSummaryResponse
// @Failure      500  {object}  errorResponse
// @Router       /api/courses [get]
func (h *CourseHandler) List(c echo.Context) error {
	views, err := h.service.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toListResponse(views))
}

// Get handles GET /api/courses/:id.
//
// @Summary      Get a course by id
// @Tags         courses
// @Produce      json
// @Param        id   path      string  true  "Course id"
// @Success      200  {object}  courseDetailResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/courses/{id} [get]
func (h *CourseHandler) Get(c echo.Context) error {
	view, err := h.service.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toDetailResponse(*view))
}

// Create handles POST /api/courses. Instructors and admins only; the acting
// identity becomes the instructor.
//
// @Summary      Create a course
// @Tags         courses
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createCourseRequest  true  "Course details"
// @Success      201   {object}  courseDetailResponse
// @Failure      401   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /api/courses [post]
func (h *CourseHandler) Create(c echo.Context) error {
	actor, err := currentUser(c)
	if err != nil {
		return err
	}

	var req createCourseRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	course, err := h.service.Create(c.Request().Context(), actor, toCreateInput(req))
	if err != nil {
		return err
	}

	metrics.CoursesCreatedTotal.WithLabelValues(string(course.Level)).Inc()
	return c.JSON(http.StatusCreated, toDetailResponse(ports.CourseView{
		Course:          course,
		InstructorName:  actor.Name,
		InstructorEmail: actor.Email,
	}))
}

// Update handles PUT /api/courses/:id under the owner-or-admin rule.
//
// @Summary      Update a course
// @Tags         courses
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string               true  "Course id"
// @Param        body  body      updateCourseRequest  true  "Fields to update"
// @Success      200   {object}  courseDetailResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /api/courses/{id} [put]
func (h *CourseHandler) Update(c echo.Context) error {
	actor, err := currentUser(c)
	if err != nil {
		return err
	}

	var req updateCourseRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	course, err := h.service.Update(c.Request().Context(), actor, c.Param("id"), toUpdateInput(req))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toDetailResponse(ports.CourseView{Course: course}))
}

// Delete handles DELETE /api/courses/:id under the owner-or-admin rule.
//
// @Summary      Delete a course
// @Tags         courses
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Course id"
// @Success      200  {object}  messageResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/courses/{id} [delete]
func (h *CourseHandler) Delete(c echo.Context) error {
	actor, err := currentUser(c)
	if err != nil {
		return err
	}
	if err := h.service.Delete(c.Request().Context(), actor, c.Param("id")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "course deleted successfully"})
}

// Enroll handles POST /api/courses/:id/enroll.
//
// @Summary      Enroll in a course
// @Tags         courses
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Course id"
// @Success      200  {object}  messageResponse
// @Failure      404  {object}  errorResponse
// @Failure      409  {object}  errorResponse
// @Router       /api/courses/{id}/enroll [post]
func (h *CourseHandler) Enroll(c echo.Context) error {
	actor, err := currentUser(c)
	if err != nil {
		return err
	}
	if err := h.service.Enroll(c.Request().Context(), actor, c.Param("id")); err != nil {
		return err
	}

	metrics.EnrollmentsTotal.Inc()
	return c.JSON(http.StatusOK, messageResponse{Message: "successfully enrolled in course"})
}

// Rate handles POST /api/courses/:id/rate. Enrolled students only; a repeat
// rating replaces the previous one.
//
// @Summary      Rate a course
// @Tags         courses
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string             true  "Course id"
// @Param        body  body      rateCourseRequest  true  "Rating and review"
// @Success      200   {object}  courseDetailResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /api/courses/{id}/rate [post]
func (h *CourseHandler) Rate(c echo.Context) error {
	actor, err := currentUser(c)
	if err != nil {
		return err
	}

	var req rateCourseRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	course, err := h.service.Rate(c.Request().Context(), actor, c.Param("id"), req.Rating, req.Review)
	if err != nil {
		return err
	}

	metrics.RatingsSubmittedTotal.WithLabelValues(strconv.Itoa(req.Rating)).Inc()
	return c.JSON(http.StatusOK, toDetailResponse(ports.CourseView{Course: course}))
}
