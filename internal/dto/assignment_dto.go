package dto

import (
	"time"

	"github.com/arcana-edu/tarot-lms-api/internal/models"
)

// AssignmentCreateRequest describes the payload for creating an assignment.
// DueDate is an ISO-8601 (RFC 3339) string parsed by the service.
type AssignmentCreateRequest struct {
	Title        string   `json:"title" validate:"required,min=1"`
	Description  string   `json:"description" validate:"required"`
	Instructions string   `json:"instructions" validate:"required"`
	DueDate      string   `json:"due_date" validate:"required"`
	MaxPoints    *int     `json:"max_points" validate:"omitempty,gt=0"`
	AllowedTypes []string `json:"allowed_types" validate:"required,min=1"`
	ProvidedCode *string  `json:"provided_code"`
	CourseID     uint     `json:"course_id" validate:"required,gt=0"`
	IsActive     *bool    `json:"is_active"`
}

// AssignmentUpdateRequest describes a partial assignment update.
type AssignmentUpdateRequest struct {
	Title        *string  `json:"title" validate:"omitempty,min=1"`
	Description  *string  `json:"description"`
	Instructions *string  `json:"instructions"`
	DueDate      *string  `json:"due_date"`
	MaxPoints    *int     `json:"max_points" validate:"omitempty,gt=0"`
	AllowedTypes []string `json:"allowed_types" validate:"omitempty,min=1"`
	ProvidedCode *string  `json:"provided_code"`
	IsActive     *bool    `json:"is_active"`
}

// AssignmentFilter describes query string filters for listing assignments.
type AssignmentFilter struct {
	CourseID *uint
	IsActive *bool
}

// AssignmentRef summarizes an assignment inside submission responses.
type AssignmentRef struct {
	ID        uint       `json:"id"`
	Title     string     `json:"title"`
	MaxPoints int        `json:"max_points"`
	DueDate   time.Time  `json:"due_date"`
	CourseID  uint       `json:"course_id"`
	Course    *CourseRef `json:"course,omitempty"`
}

// AssignmentResponse is the serialized representation returned to API clients.
type AssignmentResponse struct {
	ID           uint       `json:"id"`
	Title        string     `json:"title"`
	Description  string     `json:"description"`
	Instructions string     `json:"instructions"`
	DueDate      time.Time  `json:"due_date"`
	MaxPoints    int        `json:"max_points"`
	AllowedTypes []string   `json:"allowed_types"`
	ProvidedCode *string    `json:"provided_code"`
	IsActive     bool       `json:"is_active"`
	CourseID     uint       `json:"course_id"`
	Course       *CourseRef `json:"course,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// NewAssignmentResponse converts an Assignment model into a DTO.
func NewAssignmentResponse(model models.Assignment) AssignmentResponse {
	response := AssignmentResponse{
		ID:           model.ID,
		Title:        model.Title,
		Description:  model.Description,
		Instructions: model.Instructions,
		DueDate:      model.DueDate,
		MaxPoints:    model.MaxPoints,
		AllowedTypes: model.AllowedTypes,
		ProvidedCode: model.ProvidedCode,
		IsActive:     model.IsActive,
		CourseID:     model.CourseID,
		CreatedAt:    model.CreatedAt,
		UpdatedAt:    model.UpdatedAt,
	}

	if model.Course.ID != 0 {
		ref := NewCourseRef(model.Course)
		response.Course = &ref
	}

	return response
}

// NewAssignmentResponseSlice converts assignment models into DTOs.
func NewAssignmentResponseSlice(assignments []models.Assignment) []AssignmentResponse {
	responses := make([]AssignmentResponse, 0, len(assignments))
	for _, assignment := range assignments {
		responses = append(responses, NewAssignmentResponse(assignment))
	}

	return responses
}

// NewAssignmentRef builds the nested assignment projection.
func NewAssignmentRef(model models.Assignment) AssignmentRef {
	ref := AssignmentRef{
		ID:        model.ID,
		Title:     model.Title,
		MaxPoints: model.MaxPoints,
		DueDate:   model.DueDate,
		CourseID:  model.CourseID,
	}

	if model.Course.ID != 0 {
		course := NewCourseRef(model.Course)
		ref.Course = &course
	}

	return ref
}
