package models

import "time"

// Feedback represents grader-authored feedback on a submission. Feedback is
// invisible to the submitting student until IsPublished is set through the
// explicit publish operation.
type Feedback struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	SubmissionID uint      `gorm:"not null;index" json:"submission_id"`
	GraderID     uint      `gorm:"not null;index" json:"grader_id"`
	StudentID    uint      `gorm:"not null;index" json:"student_id"`
	Points       *int      `json:"points"`
	Comments     *string   `gorm:"type:text" json:"comments"`
	IsPublished  bool      `gorm:"not null;default:false" json:"is_published"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	Grader  User `json:"grader"`
	Student User `json:"student"`
}
