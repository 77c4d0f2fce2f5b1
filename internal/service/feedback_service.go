package service

import (
	"context"
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"

	"github.com/arcana-edu/tarot-lms-api/internal/dto"
	"github.com/arcana-edu/tarot-lms-api/internal/models"
	"github.com/arcana-edu/tarot-lms-api/internal/repository"
)

// ErrFeedbackNotFound indicates the requested feedback entry does not exist.
var ErrFeedbackNotFound = errors.New("feedback not found")

// FeedbackService records grader feedback against submissions and controls
// its visibility to students. Feedback starts unpublished and only the
// explicit Publish operation makes it visible to student-facing reads.
type FeedbackService interface {
	List(ctx context.Context, filter dto.FeedbackFilter) ([]dto.FeedbackResponse, error)
	Get(ctx context.Context, id uint) (dto.FeedbackResponse, error)
	Create(ctx context.Context, payload dto.FeedbackCreateRequest) (dto.FeedbackResponse, error)
	Update(ctx context.Context, id uint, payload dto.FeedbackUpdateRequest) (dto.FeedbackResponse, error)
	Publish(ctx context.Context, id uint) (dto.FeedbackResponse, error)
	Delete(ctx context.Context, id uint) error
}

type feedbackService struct {
	repo        repository.FeedbackRepository
	submissions repository.SubmissionRepository
	users       repository.UserRepository
	validator   *validator.Validate
	logger      zerolog.Logger
	tracer      trace.Tracer
}

// NewFeedbackService constructs a FeedbackService instance.
func NewFeedbackService(repo repository.FeedbackRepository, submissions repository.SubmissionRepository, users repository.UserRepository, validate *validator.Validate, logger zerolog.Logger) FeedbackService {
	return &feedbackService{
		repo:        repo,
		submissions: submissions,
		users:       users,
		validator:   validate,
		logger:      logger.With().Str("component", "feedback_service").Logger(),
		tracer:      otel.Tracer("github.com/arcana-edu/tarot-lms-api/internal/service/feedback"),
	}
}

func (s *feedbackService) List(ctx context.Context, filter dto.FeedbackFilter) ([]dto.FeedbackResponse, error) {
	feedback, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	return dto.NewFeedbackResponseSlice(feedback), nil
}

func (s *feedbackService) Get(ctx context.Context, id uint) (dto.FeedbackResponse, error) {
	feedback, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.FeedbackResponse{}, ErrFeedbackNotFound
		}
		return dto.FeedbackResponse{}, err
	}

	return dto.NewFeedbackResponse(feedback), nil
}

func (s *feedbackService) Create(ctx context.Context, payload dto.FeedbackCreateRequest) (dto.FeedbackResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.FeedbackResponse{}, err
	}

	if _, err := s.submissions.GetByID(ctx, payload.SubmissionID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.FeedbackResponse{}, ErrSubmissionNotFound
		}
		return dto.FeedbackResponse{}, err
	}

	for _, userID := range []uint{payload.GraderID, payload.StudentID} {
		if _, err := s.users.GetByID(ctx, userID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return dto.FeedbackResponse{}, ErrUserNotFound
			}
			return dto.FeedbackResponse{}, err
		}
	}

	feedback := models.Feedback{
		SubmissionID: payload.SubmissionID,
		GraderID:     payload.GraderID,
		StudentID:    payload.StudentID,
		Points:       payload.Points,
		Comments:     payload.Comments,
		IsPublished:  false,
	}

	if err := s.repo.Create(ctx, &feedback); err != nil {
		return dto.FeedbackResponse{}, err
	}

	created, err := s.repo.GetByID(ctx, feedback.ID)
	if err != nil {
		return dto.FeedbackResponse{}, err
	}

	s.logger.Info().
		Uint("feedback_id", feedback.ID).
		Uint("submission_id", feedback.SubmissionID).
		Uint("grader_id", feedback.GraderID).
		Msg("feedback recorded")

	return dto.NewFeedbackResponse(created), nil
}

func (s *feedbackService) Update(ctx context.Context, id uint, payload dto.FeedbackUpdateRequest) (dto.FeedbackResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.FeedbackResponse{}, err
	}

	feedback, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.FeedbackResponse{}, ErrFeedbackNotFound
		}
		return dto.FeedbackResponse{}, err
	}

	if payload.Points != nil {
		feedback.Points = payload.Points
	}
	if payload.Comments != nil {
		feedback.Comments = payload.Comments
	}
	if payload.IsPublished != nil {
		feedback.IsPublished = *payload.IsPublished
	}

	if err := s.repo.Update(ctx, &feedback); err != nil {
		return dto.FeedbackResponse{}, err
	}

	s.logger.Info().Uint("feedback_id", feedback.ID).Msg("feedback updated")

	return dto.NewFeedbackResponse(feedback), nil
}

// Publish marks the feedback visible to the owning student. It stays a
// dedicated operation so that publication is an intentional, traceable event
// rather than a side effect of a generic update.
func (s *feedbackService) Publish(ctx context.Context, id uint) (dto.FeedbackResponse, error) {
	ctx, span := s.tracer.Start(ctx, "feedback.publish", trace.WithAttributes(
		attribute.Int64("feedback.id", int64(id)),
	))
	defer span.End()

	feedback, err := s.repo.GetByID(ctx, id)
	if err != nil {
		span.RecordError(err)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.FeedbackResponse{}, ErrFeedbackNotFound
		}
		return dto.FeedbackResponse{}, err
	}

	if !feedback.IsPublished {
		feedback.IsPublished = true
		if err := s.repo.Update(ctx, &feedback); err != nil {
			span.RecordError(err)
			return dto.FeedbackResponse{}, err
		}
	}

	s.logger.Info().
		Uint("feedback_id", feedback.ID).
		Uint("submission_id", feedback.SubmissionID).
		Uint("student_id", feedback.StudentID).
		Msg("feedback published")

	return dto.NewFeedbackResponse(feedback), nil
}

func (s *feedbackService) Delete(ctx context.Context, id uint) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrFeedbackNotFound
		}
		return err
	}

	s.logger.Info().Uint("feedback_id", id).Msg("feedback deleted")
	return nil
}
