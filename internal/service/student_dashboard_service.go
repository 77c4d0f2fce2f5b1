package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/arcana-edu/tarot-lms-api/internal/dto"
	"github.com/arcana-edu/tarot-lms-api/internal/models"
	"github.com/arcana-edu/tarot-lms-api/internal/repository"
)

// StudentDashboardService produces aggregated progress metrics for a student.
type StudentDashboardService interface {
	GetDashboard(ctx context.Context, studentID uint) (dto.StudentDashboardResponse, error)
}

type studentDashboardService struct {
	assignments repository.AssignmentRepository
	submissions repository.SubmissionRepository
	cache       *redis.Client
	cacheTTL    time.Duration
	logger      zerolog.Logger
	now         func() time.Time
}

// NewStudentDashboardService builds the dashboard aggregator. The redis client
// may be nil, in which case every call recomputes the dashboard.
func NewStudentDashboardService(assignments repository.AssignmentRepository, submissions repository.SubmissionRepository, cache *redis.Client, ttl time.Duration, logger zerolog.Logger) StudentDashboardService {
	return &studentDashboardService{
		assignments: assignments,
		submissions: submissions,
		cache:       cache,
		cacheTTL:    ttl,
		logger:      logger.With().Str("component", "student_dashboard_service").Logger(),
		now:         time.Now,
	}
}

func (s *studentDashboardService) GetDashboard(ctx context.Context, studentID uint) (dto.StudentDashboardResponse, error) {
	cacheKey := fmt.Sprintf("dashboard:student:%d", studentID)

	if s.cache != nil {
		if cached, err := s.cache.Get(ctx, cacheKey).Result(); err == nil {
			var response dto.StudentDashboardResponse
			if unmarshalErr := json.Unmarshal([]byte(cached), &response); unmarshalErr == nil {
				s.logger.Debug().Uint("student_id", studentID).Msg("dashboard cache hit")
				return response, nil
			}
		} else if err != redis.Nil {
			s.logger.Warn().Err(err).Msg("failed to read dashboard cache")
		}
	}

	active := true
	assignments, err := s.assignments.List(ctx, dto.AssignmentFilter{IsActive: &active})
	if err != nil {
		return dto.StudentDashboardResponse{}, err
	}

	filter := dto.SubmissionFilter{UserID: &studentID}
	submissions, err := s.submissions.List(ctx, filter, false)
	if err != nil {
		return dto.StudentDashboardResponse{}, err
	}

	response := s.buildResponse(assignments, submissions)

	if s.cache != nil {
		payload, err := json.Marshal(response)
		if err == nil {
			if err := s.cache.Set(ctx, cacheKey, payload, s.cacheTTL).Err(); err != nil {
				s.logger.Warn().Err(err).Msg("failed to store dashboard cache")
			}
		}
	}

	return response, nil
}

// publishedPoints returns the points from the first published feedback
// carrying a score, or nil when nothing has been published yet.
func publishedPoints(submission models.Submission) *int {
	for _, feedback := range submission.Feedback {
		if feedback.IsPublished && feedback.Points != nil {
			return feedback.Points
		}
	}
	return nil
}

func (s *studentDashboardService) buildResponse(assignments []models.Assignment, submissions []models.Submission) dto.StudentDashboardResponse {
	now := s.now()
	submissionByAssignment := map[uint]models.Submission{}
	for _, submission := range submissions {
		submissionByAssignment[submission.AssignmentID] = submission
	}

	summary := dto.ProgressSummary{}
	progress := make([]dto.AssignmentProgress, 0, len(assignments))
	var pointsTotal float64
	var scoredCount int

	for _, assignment := range assignments {
		summary.TotalAssignments++
		submission, submitted := submissionByAssignment[assignment.ID]
		assignmentOverdue := assignment.IsPastDue(now)

		status := models.SubmissionStatusDraft
		var submissionID *uint
		var points *int
		updatedAt := assignment.UpdatedAt

		if submitted {
			submissionID = &submission.ID
			updatedAt = submission.UpdatedAt
			status = submission.Status

			if submission.Status != models.SubmissionStatusDraft {
				summary.Submitted++
			}

			switch submission.Status {
			case models.SubmissionStatusGraded, models.SubmissionStatusReturned:
				summary.Graded++
				if p := publishedPoints(submission); p != nil {
					pointsTotal += float64(*p)
					scoredCount++
					points = p
				}
			default:
				summary.Pending++
			}
		} else {
			summary.Pending++
		}

		graded := submitted && (submission.Status == models.SubmissionStatusGraded || submission.Status == models.SubmissionStatusReturned)
		if assignmentOverdue && !graded {
			summary.Overdue++
		}

		progress = append(progress, dto.AssignmentProgress{
			AssignmentID: assignment.ID,
			Title:        assignment.Title,
			CourseID:     assignment.CourseID,
			DueDate:      assignment.DueDate,
			MaxPoints:    assignment.MaxPoints,
			Status:       status,
			SubmissionID: submissionID,
			Points:       points,
			Overdue:      assignmentOverdue && !graded,
			UpdatedAt:    updatedAt,
		})
	}

	if scoredCount > 0 {
		summary.AveragePoints = pointsTotal / float64(scoredCount)
	}

	if summary.TotalAssignments > 0 {
		summary.CompletionRate = (float64(summary.Graded) / float64(summary.TotalAssignments)) * 100
	}

	pendingAssignments := make([]dto.AssignmentProgress, 0)
	for _, item := range progress {
		if item.Status != models.SubmissionStatusGraded && item.Status != models.SubmissionStatusReturned {
			pendingAssignments = append(pendingAssignments, item)
		}
	}

	activities := make([]dto.SubmissionActivity, 0, min(5, len(submissions)))
	for idx, submission := range submissions {
		if idx >= 5 {
			break
		}
		activities = append(activities, dto.SubmissionActivity{
			SubmissionID:    submission.ID,
			AssignmentID:    submission.AssignmentID,
			AssignmentTitle: submission.Assignment.Title,
			Status:          submission.Status,
			Points:          publishedPoints(submission),
			CreatedAt:       submission.CreatedAt,
			UpdatedAt:       submission.UpdatedAt,
		})
	}

	return dto.StudentDashboardResponse{
		Summary:           summary,
		Pending:           pendingAssignments,
		RecentSubmissions: activities,
	}
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
