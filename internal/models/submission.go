package models

import "time"

// Submission content types.
const (
	SubmissionTypeTraditionalCode     = "TRADITIONAL_CODE"
	SubmissionTypeSolutionWalkthrough = "SOLUTION_WALKTHROUGH"
	SubmissionTypeReverseProgramming  = "REVERSE_PROGRAMMING"
)

// Submission lifecycle states.
const (
	SubmissionStatusDraft     = "DRAFT"
	SubmissionStatusSubmitted = "SUBMITTED"
	SubmissionStatusGraded    = "GRADED"
	SubmissionStatusReturned  = "RETURNED"
)

// ValidSubmissionType reports whether the value is a known submission type.
func ValidSubmissionType(submissionType string) bool {
	switch submissionType {
	case SubmissionTypeTraditionalCode, SubmissionTypeSolutionWalkthrough, SubmissionTypeReverseProgramming:
		return true
	default:
		return false
	}
}

// ValidSubmissionStatus reports whether the value is a known lifecycle state.
func ValidSubmissionStatus(status string) bool {
	switch status {
	case SubmissionStatusDraft, SubmissionStatusSubmitted, SubmissionStatusGraded, SubmissionStatusReturned:
		return true
	default:
		return false
	}
}

// Submission represents a student's work for an assignment. The composite
// unique index enforces at most one submission per (user, assignment) pair,
// which concurrent create calls rely on to resolve races at the data layer.
type Submission struct {
	ID              uint       `gorm:"primaryKey" json:"id"`
	UserID          uint       `gorm:"not null;uniqueIndex:idx_submissions_user_assignment" json:"user_id"`
	AssignmentID    uint       `gorm:"not null;uniqueIndex:idx_submissions_user_assignment" json:"assignment_id"`
	Type            string     `gorm:"size:32;not null" json:"type"`
	Status          string     `gorm:"size:16;not null;default:DRAFT" json:"status"`
	CodeContent     *string    `gorm:"type:text" json:"code_content"`
	WalkthroughText *string    `gorm:"type:text" json:"walkthrough_text"`
	CodeExplanation *string    `gorm:"type:text" json:"code_explanation"`
	SubmittedAt     *time.Time `json:"submitted_at"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`

	User       User       `json:"user"`
	Assignment Assignment `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"assignment"`
	Feedback   []Feedback `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"feedback,omitempty"`
}

// Content returns the content field matching the submission's type.
func (s Submission) Content() *string {
	switch s.Type {
	case SubmissionTypeTraditionalCode:
		return s.CodeContent
	case SubmissionTypeSolutionWalkthrough:
		return s.WalkthroughText
	case SubmissionTypeReverseProgramming:
		return s.CodeExplanation
	default:
		return nil
	}
}

// SetContent stores the content under the field matching the submission's
// type and clears the other two, keeping the one-populated-field invariant.
func (s *Submission) SetContent(content string) {
	s.CodeContent = nil
	s.WalkthroughText = nil
	s.CodeExplanation = nil

	switch s.Type {
	case SubmissionTypeTraditionalCode:
		s.CodeContent = &content
	case SubmissionTypeSolutionWalkthrough:
		s.WalkthroughText = &content
	case SubmissionTypeReverseProgramming:
		s.CodeExplanation = &content
	}
}

// IsGraded reports whether the submission has reached the GRADED state.
func (s Submission) IsGraded() bool {
	return s.Status == SubmissionStatusGraded
}
