package domain

import (
	"errors"
	"time"
)

// Level classifies the difficulty of a course.
type Level string

const (
	LevelBeginner     Level = "beginner"
	LevelIntermediate Level = "intermediate"
	LevelAdvanced     Level = "advanced"
)

// Valid reports whether l is one of the three known levels.
func (l Level) Valid() bool {
	switch l {
	case LevelBeginner, LevelIntermediate, LevelAdvanced:
		return true
	}
	return false
}

var ErrCourseNotFound = errors.New("course not found")
var ErrAlreadyEnrolled = errors.New("already enrolled in this course")
var ErrNotEnrolled = errors.New("must be enrolled to rate this course")
var ErrNotCourseOwner = errors.New("you do not own this course")
var ErrForbidden = errors.New("insufficient role")
var ErrInvalidRating = errors.New("rating must be between 1 and 5")
var ErrInvalidLevel = errors.New("invalid course level")

// ContentItem is a single lesson inside a course.
type ContentItem struct {
	Title       string  `json:"title"`
	Description string  `json:"description,omitempty"`
	VideoURL    string  `json:"video_url,omitempty"`
	Duration    float64 `json:"duration,omitempty"`
}

// Rating is a single student's score and review. A course holds at most one
// rating per student.
type Rating struct {
	UserID    string    `json:"user_id"`
	Value     int       `json:"rating"`
	Review    string    `json:"review,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// Course is the marketplace aggregate root.
type Course struct {
	ID               string        `json:"id"`
	Title            string        `json:"title"`
	Description      string        `json:"description"`
	InstructorID     string        `json:"instructor_id"`
	Price            float64       `json:"price"`
	Image            string        `json:"image,omitempty"`
	Category         string        `json:"category"`
	Level            Level         `json:"level"`
	Content          []ContentItem `json:"content,omitempty"`
	EnrolledStudents []string      `json:"enrolled_students"`
	Ratings          []Rating      `json:"ratings"`
	CreatedAt        time.Time     `json:"created_at"`
	UpdatedAt        time.Time     `json:"updated_at"`
}

// CanBeMutatedBy implements the owner-or-admin rule for course edits and
// deletes. Ownership is checked against the persisted instructor reference.
func (c *Course) CanBeMutatedBy(u *User) bool {
	return u.Role == RoleAdmin || u.ID == c.InstructorID
}

// IsEnrolled reports whether userID is in the course's enrolled set.
func (c *Course) IsEnrolled(userID string) bool {
	for _, id := range c.EnrolledStudents {
		if id == userID {
			return true
		}
	}
	return false
}

// RatingBy returns the rating left by userID, or nil.
func (c *Course) RatingBy(userID string) *Rating {
	for i := range c.Ratings {
		if c.Ratings[i].UserID == userID {
			return &c.Ratings[i]
		}
	}
	return nil
}
