package dto

import (
	"time"

	"github.com/arcana-edu/tarot-lms-api/internal/models"
)

// SubmissionCreateRequest describes the payload for creating a submission.
// Content carries the single content body; the service stores it under the
// field matching Type.
type SubmissionCreateRequest struct {
	UserID       uint   `json:"user_id" validate:"required,gt=0"`
	AssignmentID uint   `json:"assignment_id" validate:"required,gt=0"`
	Type         string `json:"type" validate:"required,oneof=TRADITIONAL_CODE SOLUTION_WALKTHROUGH REVERSE_PROGRAMMING"`
	Content      string `json:"content" validate:"required"`
}

// SubmissionUpdateRequest describes a partial submission update.
type SubmissionUpdateRequest struct {
	Type    *string `json:"type" validate:"omitempty,oneof=TRADITIONAL_CODE SOLUTION_WALKTHROUGH REVERSE_PROGRAMMING"`
	Content *string `json:"content"`
	Status  *string `json:"status" validate:"omitempty,oneof=DRAFT SUBMITTED GRADED RETURNED"`
}

// SubmissionFilter describes query string filters for listing submissions.
type SubmissionFilter struct {
	UserID       *uint
	AssignmentID *uint
	Status       *string `validate:"omitempty,oneof=DRAFT SUBMITTED GRADED RETURNED"`
	Type         *string `validate:"omitempty,oneof=TRADITIONAL_CODE SOLUTION_WALKTHROUGH REVERSE_PROGRAMMING"`
}

// SubmissionResponse is returned to API clients when viewing submissions.
type SubmissionResponse struct {
	ID              uint               `json:"id"`
	UserID          uint               `json:"user_id"`
	AssignmentID    uint               `json:"assignment_id"`
	Type            string             `json:"type"`
	Status          string             `json:"status"`
	CodeContent     *string            `json:"code_content"`
	WalkthroughText *string            `json:"walkthrough_text"`
	CodeExplanation *string            `json:"code_explanation"`
	SubmittedAt     *time.Time         `json:"submitted_at"`
	CreatedAt       time.Time          `json:"created_at"`
	UpdatedAt       time.Time          `json:"updated_at"`
	Assignment      *AssignmentRef     `json:"assignment,omitempty"`
	User            *UserRef           `json:"user,omitempty"`
	Feedback        []FeedbackResponse `json:"feedback,omitempty"`
}

// NewSubmissionResponse converts a Submission model into a DTO.
func NewSubmissionResponse(model models.Submission) SubmissionResponse {
	response := SubmissionResponse{
		ID:              model.ID,
		UserID:          model.UserID,
		AssignmentID:    model.AssignmentID,
		Type:            model.Type,
		Status:          model.Status,
		CodeContent:     model.CodeContent,
		WalkthroughText: model.WalkthroughText,
		CodeExplanation: model.CodeExplanation,
		SubmittedAt:     model.SubmittedAt,
		CreatedAt:       model.CreatedAt,
		UpdatedAt:       model.UpdatedAt,
	}

	if model.Assignment.ID != 0 {
		ref := NewAssignmentRef(model.Assignment)
		response.Assignment = &ref
	}

	if model.User.ID != 0 {
		ref := NewUserRef(model.User)
		response.User = &ref
	}

	if len(model.Feedback) > 0 {
		feedback := make([]FeedbackResponse, 0, len(model.Feedback))
		for _, entry := range model.Feedback {
			feedback = append(feedback, NewFeedbackResponse(entry))
		}
		response.Feedback = feedback
	}

	return response
}

// NewSubmissionResponseSlice converts submission models into DTOs.
func NewSubmissionResponseSlice(submissions []models.Submission) []SubmissionResponse {
	responses := make([]SubmissionResponse, 0, len(submissions))
	for _, submission := range submissions {
		responses = append(responses, NewSubmissionResponse(submission))
	}

	return responses
}
