package handler

import "time"

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

type messageResponse struct {
	Message string `json:"message"`
}

// --- Request types ---

type contentItemRequest struct {
	Title       string  `json:"title"       validate:"required"`
	Description string  `json:"description"`
	VideoURL    string  `json:"video_url"`
	Duration    float64 `json:"duration"    validate:"gte=0"`
}

type createCourseRequest struct {
	Title       string               `json:"title"       validate:"required"`
	Description string               `json:"description" validate:"required"`
	Price       float64              `json:"price"       validate:"gte=0"`
	Image       string               `json:"image"`
	Category    string               `json:"category"    validate:"required"`
	Level       string               `json:"level"       validate:"omitempty,oneof=beginner intermediate advanced"`
	Content     []contentItemRequest `json:"content"     validate:"omitempty,dive"`
}

// updateCourseRequest is a partial edit; absent fields stay untouched. It
// carries no instructor field so ownership cannot be reassigned through an
// update.
type updateCourseRequest struct {
	Title       *string               `json:"title"       validate:"omitempty,min=1"`
	Description *string               `json:"description" validate:"omitempty,min=1"`
	Price       *float64              `json:"price"       validate:"omitempty,gte=0"`
	Image       *string               `json:"image"`
	Category    *string               `json:"category"    validate:"omitempty,min=1"`
	Level       *string               `json:"level"       validate:"omitempty,oneof=beginner intermediate advanced"`
	Content     *[]contentItemRequest `json:"content"     validate:"omitempty,dive"`
}

type rateCourseRequest struct {
	Rating int    `json:"rating" validate:"required,min=1,max=5"`
	Review string `json:"review" validate:"max=2000"`
}

// --- Response types, owned by the transport layer ---

type instructorResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name,omitempty"`
	Email string `json:"email,omitempty"`
}

type contentItemResponse struct {
	Title       string  `json:"title"`
	Description string  `json:"description,omitempty"`
	VideoURL    string  `json:"video_url,omitempty"`
	Duration    float64 `json:"duration,omitempty"`
}

type ratingResponse struct {
	UserID    string    `json:"user_id"`
	Rating    int       `json:"rating"`
	Review    string    `json:"review,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// courseSummaryResponse is the lightweight item used in list responses.
// It intentionally omits content to keep payloads small.
type courseSummaryResponse struct {
	ID            string             `json:"id"`
	Title         string             `json:"title"`
	Description   string             `json:"description"`
	Instructor    instructorResponse `json:"instructor"`
	Price         float64            `json:"price"`
	Image         string             `json:"image,omitempty"`
	Category      string             `json:"category"`
	Level         string             `json:"level"`
	EnrolledCount int                `json:"enrolled_count"`
	RatingCount   int                `json:"rating_count"`
	CreatedAt     time.Time          `json:"created_at"`
}

type courseDetailResponse struct {
	ID               string                `json:"id"`
	Title            string                `json:"title"`
	Description      string                `json:"description"`
	Instructor       instructorResponse    `json:"instructor"`
	Price            float64               `json:"price"`
	Image            string                `json:"image,omitempty"`
	Category         string                `json:"category"`
	Level            string                `json:"level"`
	Content          []contentItemResponse `json:"content"`
	EnrolledStudents []string              `json:"enrolled_students"`
	Ratings          []ratingResponse      `json:"ratings"`
	CreatedAt        time.Time             `json:"created_at"`
	UpdatedAt        time.Time             `json:"updated_at"`
}
