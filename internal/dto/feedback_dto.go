package dto

import (
	"time"

	"github.com/arcana-edu/tarot-lms-api/internal/models"
)

// FeedbackCreateRequest describes the payload for recording feedback.
type FeedbackCreateRequest struct {
	SubmissionID uint    `json:"submission_id" validate:"required,gt=0"`
	GraderID     uint    `json:"grader_id" validate:"required,gt=0"`
	StudentID    uint    `json:"student_id" validate:"required,gt=0"`
	Points       *int    `json:"points" validate:"omitempty,gte=0"`
	Comments     *string `json:"comments"`
}

// FeedbackUpdateRequest describes a partial feedback update.
type FeedbackUpdateRequest struct {
	Points      *int    `json:"points" validate:"omitempty,gte=0"`
	Comments    *string `json:"comments"`
	IsPublished *bool   `json:"is_published"`
}

// FeedbackFilter describes query string filters for listing feedback.
type FeedbackFilter struct {
	SubmissionID *uint
	StudentID    *uint
	IsPublished  *bool
}

// FeedbackResponse is the serialized representation returned to API clients.
type FeedbackResponse struct {
	ID           uint       `json:"id"`
	SubmissionID uint       `json:"submission_id"`
	GraderID     uint       `json:"grader_id"`
	StudentID    uint       `json:"student_id"`
	Points       *int       `json:"points"`
	Comments     *string    `json:"comments"`
	IsPublished  bool       `json:"is_published"`
	Grader       *GraderRef `json:"grader,omitempty"`
	Student      *UserRef   `json:"student,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// NewFeedbackResponse converts a Feedback model into a DTO.
func NewFeedbackResponse(model models.Feedback) FeedbackResponse {
	response := FeedbackResponse{
		ID:           model.ID,
		SubmissionID: model.SubmissionID,
		GraderID:     model.GraderID,
		StudentID:    model.StudentID,
		Points:       model.Points,
		Comments:     model.Comments,
		IsPublished:  model.IsPublished,
		CreatedAt:    model.CreatedAt,
		UpdatedAt:    model.UpdatedAt,
	}

	if model.Grader.ID != 0 {
		response.Grader = &GraderRef{ID: model.Grader.ID, Name: model.Grader.Name}
	}

	if model.Student.ID != 0 {
		ref := NewUserRef(model.Student)
		response.Student = &ref
	}

	return response
}

// NewFeedbackResponseSlice converts feedback models into DTOs.
func NewFeedbackResponseSlice(feedback []models.Feedback) []FeedbackResponse {
	responses := make([]FeedbackResponse, 0, len(feedback))
	for _, entry := range feedback {
		responses = append(responses, NewFeedbackResponse(entry))
	}

	return responses
}
