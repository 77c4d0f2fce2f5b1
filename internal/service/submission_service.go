package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/arcana-edu/tarot-lms-api/internal/dto"
	"github.com/arcana-edu/tarot-lms-api/internal/models"
	"github.com/arcana-edu/tarot-lms-api/internal/repository"
)

// ErrSubmissionNotFound indicates a submission could not be found.
var ErrSubmissionNotFound = errors.New("submission not found")

// ErrSubmissionExists indicates a submission already exists for the
// (user, assignment) pair.
var ErrSubmissionExists = errors.New("submission already exists for this assignment")

// ErrSubmissionGraded indicates a mutation was rejected because the
// submission has already been graded.
var ErrSubmissionGraded = errors.New("submission has been graded")

// SubmissionService governs the submission lifecycle: creation against an
// assignment's allowed types, content edits, and the DRAFT -> SUBMITTED ->
// GRADED -> RETURNED state transitions.
type SubmissionService interface {
	List(ctx context.Context, filter dto.SubmissionFilter) ([]dto.SubmissionResponse, error)
	Get(ctx context.Context, id uint) (dto.SubmissionResponse, error)
	Create(ctx context.Context, payload dto.SubmissionCreateRequest) (dto.SubmissionResponse, error)
	Update(ctx context.Context, id uint, payload dto.SubmissionUpdateRequest) (dto.SubmissionResponse, error)
	Submit(ctx context.Context, id uint) (dto.SubmissionResponse, error)
	Delete(ctx context.Context, id uint) error
}

type submissionService struct {
	submissions repository.SubmissionRepository
	assignments repository.AssignmentRepository
	users       repository.UserRepository
	validator   *validator.Validate
	logger      zerolog.Logger
	now         func() time.Time
}

// NewSubmissionService constructs a SubmissionService instance.
func NewSubmissionService(subRepo repository.SubmissionRepository, assignmentRepo repository.AssignmentRepository, userRepo repository.UserRepository, validate *validator.Validate, logger zerolog.Logger) SubmissionService {
	return &submissionService{
		submissions: subRepo,
		assignments: assignmentRepo,
		users:       userRepo,
		validator:   validate,
		logger:      logger.With().Str("component", "submission_service").Logger(),
		now:         time.Now,
	}
}

// List always returns an array, also for the combined user+assignment filter
// where the unique index caps the result at one element.
func (s *submissionService) List(ctx context.Context, filter dto.SubmissionFilter) ([]dto.SubmissionResponse, error) {
	if err := s.validator.Struct(filter); err != nil {
		return nil, err
	}

	// The assignment-scoped listing without a user filter is the grader
	// view and includes unpublished feedback. Every other combination is
	// student-facing and sees published feedback only.
	graderView := filter.AssignmentID != nil && filter.UserID == nil

	submissions, err := s.submissions.List(ctx, filter, graderView)
	if err != nil {
		return nil, err
	}

	return dto.NewSubmissionResponseSlice(submissions), nil
}

func (s *submissionService) Get(ctx context.Context, id uint) (dto.SubmissionResponse, error) {
	submission, err := s.submissions.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.SubmissionResponse{}, ErrSubmissionNotFound
		}
		return dto.SubmissionResponse{}, err
	}

	return dto.NewSubmissionResponse(submission), nil
}

// Create stores a new DRAFT submission. The type must be one of the
// assignment's allowed types and the content is stored under the field
// matching that type, the other two staying null.
func (s *submissionService) Create(ctx context.Context, payload dto.SubmissionCreateRequest) (dto.SubmissionResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.SubmissionResponse{}, err
	}

	assignment, err := s.assignments.GetByID(ctx, payload.AssignmentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.SubmissionResponse{}, ErrAssignmentNotFound
		}
		return dto.SubmissionResponse{}, err
	}

	if !assignment.AllowsType(payload.Type) {
		return dto.SubmissionResponse{}, fmt.Errorf("submission type %s not allowed for this assignment: %w", payload.Type, ErrValidation)
	}

	if _, err := s.users.GetByID(ctx, payload.UserID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.SubmissionResponse{}, ErrUserNotFound
		}
		return dto.SubmissionResponse{}, err
	}

	submission := models.Submission{
		UserID:       payload.UserID,
		AssignmentID: payload.AssignmentID,
		Type:         payload.Type,
		Status:       models.SubmissionStatusDraft,
	}
	submission.SetContent(payload.Content)

	if err := s.submissions.Create(ctx, &submission); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return dto.SubmissionResponse{}, ErrSubmissionExists
		}
		return dto.SubmissionResponse{}, err
	}

	created, err := s.submissions.GetByID(ctx, submission.ID)
	if err != nil {
		return dto.SubmissionResponse{}, err
	}

	s.logger.Info().
		Uint("submission_id", created.ID).
		Uint("assignment_id", created.AssignmentID).
		Uint("user_id", created.UserID).
		Msg("submission created")

	return dto.NewSubmissionResponse(created), nil
}

// Update applies a partial edit. Content and type edits are rejected once the
// submission is GRADED; a RETURNED submission is editable again. Update never
// touches SubmittedAt.
func (s *submissionService) Update(ctx context.Context, id uint, payload dto.SubmissionUpdateRequest) (dto.SubmissionResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.SubmissionResponse{}, err
	}

	submission, err := s.submissions.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.SubmissionResponse{}, ErrSubmissionNotFound
		}
		return dto.SubmissionResponse{}, err
	}

	contentEdit := payload.Type != nil || payload.Content != nil
	if contentEdit && submission.IsGraded() {
		return dto.SubmissionResponse{}, ErrSubmissionGraded
	}

	if payload.Type != nil && *payload.Type != submission.Type {
		assignment, err := s.assignments.GetByID(ctx, submission.AssignmentID)
		if err != nil {
			return dto.SubmissionResponse{}, err
		}
		if !assignment.AllowsType(*payload.Type) {
			return dto.SubmissionResponse{}, fmt.Errorf("submission type %s not allowed for this assignment: %w", *payload.Type, ErrValidation)
		}

		content := payload.Content
		if content == nil {
			content = submission.Content()
		}
		submission.Type = *payload.Type
		if content != nil {
			submission.SetContent(*content)
		} else {
			submission.SetContent("")
		}
	} else if payload.Content != nil {
		submission.SetContent(*payload.Content)
	}

	if payload.Status != nil {
		submission.Status = *payload.Status
	}

	if err := s.submissions.Update(ctx, &submission); err != nil {
		return dto.SubmissionResponse{}, err
	}

	updated, err := s.submissions.GetByID(ctx, submission.ID)
	if err != nil {
		return dto.SubmissionResponse{}, err
	}

	s.logger.Info().Uint("submission_id", submission.ID).Msg("submission updated")

	return dto.NewSubmissionResponse(updated), nil
}

// Submit transitions the submission into SUBMITTED and stamps SubmittedAt.
// Submitting an already SUBMITTED submission re-stamps the timestamp;
// submitting a GRADED submission is rejected.
func (s *submissionService) Submit(ctx context.Context, id uint) (dto.SubmissionResponse, error) {
	submission, err := s.submissions.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.SubmissionResponse{}, ErrSubmissionNotFound
		}
		return dto.SubmissionResponse{}, err
	}

	if submission.IsGraded() {
		return dto.SubmissionResponse{}, ErrSubmissionGraded
	}

	now := s.now()
	submission.Status = models.SubmissionStatusSubmitted
	submission.SubmittedAt = &now

	if err := s.submissions.Update(ctx, &submission); err != nil {
		return dto.SubmissionResponse{}, err
	}

	s.logger.Info().Uint("submission_id", submission.ID).Time("submitted_at", now).Msg("submission submitted")

	return dto.NewSubmissionResponse(submission), nil
}

func (s *submissionService) Delete(ctx context.Context, id uint) error {
	if err := s.submissions.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrSubmissionNotFound
		}
		return err
	}

	s.logger.Info().Uint("submission_id", id).Msg("submission deleted")
	return nil
}
