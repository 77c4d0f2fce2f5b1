package models

import (
	"time"

	"gorm.io/datatypes"
)

// Assignment represents an assignment definition scoped to a course.
type Assignment struct {
	ID           uint                        `gorm:"primaryKey" json:"id"`
	CourseID     uint                        `gorm:"not null;index" json:"course_id"`
	Title        string                      `gorm:"size:255;not null" json:"title"`
	Description  string                      `gorm:"type:text;not null" json:"description"`
	Instructions string                      `gorm:"type:text;not null" json:"instructions"`
	DueDate      time.Time                   `gorm:"not null" json:"due_date"`
	MaxPoints    int                         `gorm:"not null;default:100" json:"max_points"`
	AllowedTypes datatypes.JSONSlice[string] `gorm:"not null" json:"allowed_types"`
	ProvidedCode *string                     `gorm:"type:text" json:"provided_code"`
	IsActive     bool                        `gorm:"not null;default:true" json:"is_active"`
	CreatedAt    time.Time                   `json:"created_at"`
	UpdatedAt    time.Time                   `json:"updated_at"`

	Course      Course       `json:"course"`
	Submissions []Submission `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"submissions,omitempty"`
}

// AllowsType reports whether submissions of the given type are accepted.
func (a Assignment) AllowsType(submissionType string) bool {
	for _, allowed := range a.AllowedTypes {
		if allowed == submissionType {
			return true
		}
	}
	return false
}

// IsPastDue returns true when the assignment deadline has already passed.
func (a Assignment) IsPastDue(reference time.Time) bool {
	return reference.After(a.DueDate)
}
