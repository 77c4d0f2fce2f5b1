package dto

import (
	"time"

	"github.com/arcana-edu/tarot-lms-api/internal/models"
)

// NotificationCreateRequest describes the payload for creating a notification.
type NotificationCreateRequest struct {
	UserID       uint   `json:"user_id" validate:"required,gt=0"`
	Type         string `json:"type" validate:"required,oneof=ASSIGNMENT_DUE GRADE_POSTED COURSE_ANNOUNCEMENT SYSTEM_MESSAGE"`
	Title        string `json:"title" validate:"required,min=1"`
	Message      string `json:"message" validate:"required"`
	CourseID     *uint  `json:"course_id"`
	AssignmentID *uint  `json:"assignment_id"`
	SubmissionID *uint  `json:"submission_id"`
}

// NotificationFilter describes query string filters for listing notifications.
type NotificationFilter struct {
	UserID *uint
	IsRead *bool
	Type   *string `validate:"omitempty,oneof=ASSIGNMENT_DUE GRADE_POSTED COURSE_ANNOUNCEMENT SYSTEM_MESSAGE"`
}

// NotificationResponse is the serialized representation returned to clients.
type NotificationResponse struct {
	ID           uint      `json:"id"`
	UserID       uint      `json:"user_id"`
	Type         string    `json:"type"`
	Title        string    `json:"title"`
	Message      string    `json:"message"`
	IsRead       bool      `json:"is_read"`
	CourseID     *uint     `json:"course_id"`
	AssignmentID *uint     `json:"assignment_id"`
	SubmissionID *uint     `json:"submission_id"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// NewNotificationResponse converts a Notification model into a DTO.
func NewNotificationResponse(model models.Notification) NotificationResponse {
	return NotificationResponse{
		ID:           model.ID,
		UserID:       model.UserID,
		Type:         model.Type,
		Title:        model.Title,
		Message:      model.Message,
		IsRead:       model.IsRead,
		CourseID:     model.CourseID,
		AssignmentID: model.AssignmentID,
		SubmissionID: model.SubmissionID,
		CreatedAt:    model.CreatedAt,
		UpdatedAt:    model.UpdatedAt,
	}
}

// NewNotificationResponseSlice converts notification models into DTOs.
func NewNotificationResponseSlice(notifications []models.Notification) []NotificationResponse {
	responses := make([]NotificationResponse, 0, len(notifications))
	for _, notification := range notifications {
		responses = append(responses, NewNotificationResponse(notification))
	}

	return responses
}
