package dto

import "time"

// ProgressSummary aggregates a student's standing across active assignments.
type ProgressSummary struct {
	TotalAssignments int     `json:"total_assignments"`
	Submitted        int     `json:"submitted"`
	Graded           int     `json:"graded"`
	Pending          int     `json:"pending"`
	Overdue          int     `json:"overdue"`
	AveragePoints    float64 `json:"average_points"`
	CompletionRate   float64 `json:"completion_rate"`
}

// AssignmentProgress describes one assignment row on the student dashboard.
type AssignmentProgress struct {
	AssignmentID uint      `json:"assignment_id"`
	Title        string    `json:"title"`
	CourseID     uint      `json:"course_id"`
	DueDate      time.Time `json:"due_date"`
	MaxPoints    int       `json:"max_points"`
	Status       string    `json:"status"`
	SubmissionID *uint     `json:"submission_id"`
	Points       *int      `json:"points"`
	Overdue      bool      `json:"overdue"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// SubmissionActivity describes a recent submission on the dashboard.
type SubmissionActivity struct {
	SubmissionID    uint      `json:"submission_id"`
	AssignmentID    uint      `json:"assignment_id"`
	AssignmentTitle string    `json:"assignment_title"`
	Status          string    `json:"status"`
	Points          *int      `json:"points"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// StudentDashboardResponse is the aggregated dashboard payload.
type StudentDashboardResponse struct {
	Summary           ProgressSummary      `json:"summary"`
	Pending           []AssignmentProgress `json:"pending"`
	RecentSubmissions []SubmissionActivity `json:"recent_submissions"`
}
