package dto

import (
	"time"

	"github.com/arcana-edu/tarot-lms-api/internal/models"
)

// CourseRef summarizes a course for nesting inside other responses.
type CourseRef struct {
	ID    uint   `json:"id"`
	Code  string `json:"code"`
	Title string `json:"title"`
}

// CourseCreateRequest describes the payload for creating a course.
type CourseCreateRequest struct {
	Title        string  `json:"title" validate:"required,min=1"`
	Code         string  `json:"code" validate:"required,min=1,max=32"`
	Description  *string `json:"description"`
	Syllabus     *string `json:"syllabus"`
	TarotTheme   *string `json:"tarot_theme"`
	InstructorID uint    `json:"instructor_id" validate:"required,gt=0"`
	IsActive     *bool   `json:"is_active"`
}

// CourseUpdateRequest describes a partial course update. Absent fields are
// left unchanged.
type CourseUpdateRequest struct {
	Title       *string `json:"title" validate:"omitempty,min=1"`
	Code        *string `json:"code" validate:"omitempty,min=1,max=32"`
	Description *string `json:"description"`
	Syllabus    *string `json:"syllabus"`
	TarotTheme  *string `json:"tarot_theme"`
	IsActive    *bool   `json:"is_active"`
}

// CourseFilter describes query string filters for listing courses.
type CourseFilter struct {
	IsActive     *bool
	InstructorID *uint
	Search       string
}

// CourseResponse is the serialized representation returned to API clients.
type CourseResponse struct {
	ID           uint      `json:"id"`
	Title        string    `json:"title"`
	Code         string    `json:"code"`
	Description  string    `json:"description"`
	Syllabus     string    `json:"syllabus"`
	TarotTheme   string    `json:"tarot_theme"`
	InstructorID uint      `json:"instructor_id"`
	Instructor   *UserRef  `json:"instructor,omitempty"`
	IsActive     bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// NewCourseResponse converts a Course model into a DTO.
func NewCourseResponse(model models.Course) CourseResponse {
	response := CourseResponse{
		ID:           model.ID,
		Title:        model.Title,
		Code:         model.Code,
		Description:  model.Description,
		Syllabus:     model.Syllabus,
		TarotTheme:   model.TarotTheme,
		InstructorID: model.InstructorID,
		IsActive:     model.IsActive,
		CreatedAt:    model.CreatedAt,
		UpdatedAt:    model.UpdatedAt,
	}

	if model.Instructor.ID != 0 {
		ref := NewUserRef(model.Instructor)
		response.Instructor = &ref
	}

	return response
}

// NewCourseResponseSlice converts course models into DTOs.
func NewCourseResponseSlice(courses []models.Course) []CourseResponse {
	responses := make([]CourseResponse, 0, len(courses))
	for _, course := range courses {
		responses = append(responses, NewCourseResponse(course))
	}

	return responses
}

// NewCourseRef builds the nested course projection.
func NewCourseRef(model models.Course) CourseRef {
	return CourseRef{ID: model.ID, Code: model.Code, Title: model.Title}
}
