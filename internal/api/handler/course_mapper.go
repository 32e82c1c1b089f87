package handler

import (
	"github.com/coursehub/course-marketplace/internal/core/domain"
	"github.com/coursehub/course-marketplace/internal/core/ports"
)

// --- Request → Service input ---

func toCreateInput(req createCourseRequest) ports.CreateCourseInput {
	return ports.CreateCourseInput{
		Title:       req.Title,
		Description: req.Description,
		Price:       req.Price,
		Image:       req.Image,
		Category:    req.Category,
		Level:       domain.Level(req.Level),
		Content:     toContentInputs(req.Content),
	}
}

func toUpdateInput(req updateCourseRequest) ports.UpdateCourseInput {
	in := ports.UpdateCourseInput{
		Title:       req.Title,
		Description: req.Description,
		Price:       req.Price,
		Image:       req.Image,
		Category:    req.Category,
	}
	if req.Level != nil {
		level := domain.Level(*req.Level)
		in.Level = &level
	}
	if req.Content != nil {
		items := toContentInputs(*req.Content)
		in.Content = &items
	}
	return in
}

func toContentInputs(items []contentItemRequest) []ports.ContentItemInput {
	out := make([]ports.ContentItemInput, len(items))
	for i, item := range items {
		out[i] = ports.ContentItemInput{
			Title:       item.Title,
			Description: item.Description,
			VideoURL:    item.VideoURL,
			Duration:    item.Duration,
		}
	}
	return out
}

// --- Service result → HTTP response ---

func toSummaryResponse(v ports.CourseView) courseSummaryResponse {
	c := v.Course
	return courseSummaryResponse{
		ID:          c.ID,
		Title:       c.Title,
		Description: c.Description,
		Instructor: instructorResponse{
			ID:    c.InstructorID,
			Name:  v.InstructorName,
			Email: v.InstructorEmail,
		},
		Price:         c.Price,
		Image:         c.Image,
		Category:      c.Category,
		Level:         string(c.Level),
		EnrolledCount: len(c.EnrolledStudents),
		RatingCount:   len(c.Ratings),
		CreatedAt:     c.CreatedAt.UTC(),
	}
}

func toListResponse(views []ports.CourseView) []courseSummaryResponse {
	out := make([]courseSummaryResponse, len(views))
	for i, v := range views {
		out[i] = toSummaryResponse(v)
	}
	return out
}

func toDetailResponse(v ports.CourseView) courseDetailResponse {
	c := v.Course
	content := make([]contentItemResponse, len(c.Content))
	for i, item := range c.Content {
		content[i] = contentItemResponse(item)
	}
	ratings := make([]ratingResponse, len(c.Ratings))
	for i, r := range c.Ratings {
		ratings[i] = ratingResponse{
			UserID:    r.UserID,
			Rating:    r.Value,
			Review:    r.Review,
			CreatedAt: r.CreatedAt.UTC(),
		}
	}
	return courseDetailResponse{
		ID:          c.ID,
		Title:       c.Title,
		Description: c.Description,
		Instructor: instructorResponse{
			ID:    c.InstructorID,
			Name:  v.InstructorName,
			Email: v.InstructorEmail,
		},
		Price:            c.Price,
		Image:            c.Image,
		Category:         c.Category,
		Level:            string(c.Level),
		Content:          content,
		EnrolledStudents: c.EnrolledStudents,
		Ratings:          ratings,
		CreatedAt:        c.CreatedAt.UTC(),
		UpdatedAt:        c.UpdatedAt.UTC(),
	}
}
