package models

import "time"

// Notification types.
const (
	NotificationTypeAssignmentDue      = "ASSIGNMENT_DUE"
	NotificationTypeGradePosted        = "GRADE_POSTED"
	NotificationTypeCourseAnnouncement = "COURSE_ANNOUNCEMENT"
	NotificationTypeSystemMessage      = "SYSTEM_MESSAGE"
)

// ValidNotificationType reports whether the value is a known notification type.
func ValidNotificationType(notificationType string) bool {
	switch notificationType {
	case NotificationTypeAssignmentDue, NotificationTypeGradePosted,
		NotificationTypeCourseAnnouncement, NotificationTypeSystemMessage:
		return true
	default:
		return false
	}
}

// Notification represents a user-facing notice, optionally referencing the
// course, assignment or submission that triggered it.
type Notification struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	UserID       uint      `gorm:"not null;index" json:"user_id"`
	Type         string    `gorm:"size:32;not null" json:"type"`
	Title        string    `gorm:"size:255;not null" json:"title"`
	Message      string    `gorm:"type:text;not null" json:"message"`
	IsRead       bool      `gorm:"not null;default:false" json:"is_read"`
	CourseID     *uint     `gorm:"index" json:"course_id"`
	AssignmentID *uint     `json:"assignment_id"`
	SubmissionID *uint     `json:"submission_id"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
