package models

import "time"

// Course represents a course owned by an instructor.
type Course struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Title        string    `gorm:"size:255;not null" json:"title"`
	Code         string    `gorm:"size:32;uniqueIndex;not null" json:"code"`
	Description  string    `gorm:"type:text" json:"description"`
	Syllabus     string    `gorm:"type:text" json:"syllabus"`
	TarotTheme   string    `gorm:"size:255" json:"tarot_theme"`
	InstructorID uint      `gorm:"not null;index" json:"instructor_id"`
	IsActive     bool      `gorm:"not null;default:true" json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	Instructor  User         `json:"instructor"`
	Assignments []Assignment `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"assignments,omitempty"`
	TAs         []CourseTA   `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"tas,omitempty"`
	Enrollments []Enrollment `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"enrollments,omitempty"`
}

// CourseTA links a teaching assistant to a course.
type CourseTA struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CourseID  uint      `gorm:"not null;uniqueIndex:idx_course_tas_course_user" json:"course_id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_course_tas_course_user" json:"user_id"`
	CreatedAt time.Time `json:"created_at"`

	User User `json:"user"`
}

// Enrollment links a student to a course.
type Enrollment struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	CourseID   uint      `gorm:"not null;uniqueIndex:idx_enrollments_course_user" json:"course_id"`
	UserID     uint      `gorm:"not null;uniqueIndex:idx_enrollments_course_user" json:"user_id"`
	EnrolledAt time.Time `gorm:"not null" json:"enrolled_at"`
	CreatedAt  time.Time `json:"created_at"`

	User User `json:"user"`
}
