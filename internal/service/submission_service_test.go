package service

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/arcana-edu/tarot-lms-api/internal/dto"
	"github.com/arcana-edu/tarot-lms-api/internal/models"
	"github.com/arcana-edu/tarot-lms-api/internal/repository"
)

func newSubmissionService(t *testing.T) (SubmissionService, *submissionFixture) {
	t.Helper()

	db := newTestDB(t)
	instructor := createUser(t, db, "Apple Lily", "apple@udel.edu", models.RoleInstructor)
	student := createUser(t, db, "Cherry Violet", "cherry@udel.edu", models.RoleStudent)
	course := createCourse(t, db, "PROG101", instructor.ID)
	assignment := createAssignment(t, db, course.ID,
		[]string{models.SubmissionTypeTraditionalCode, models.SubmissionTypeSolutionWalkthrough},
		time.Now().Add(72*time.Hour))

	submissionRepo := repository.NewSubmissionRepository(db)
	svc := NewSubmissionService(
		submissionRepo,
		repository.NewAssignmentRepository(db),
		repository.NewUserRepository(db),
		newValidator(),
		zerolog.Nop(),
	)

	return svc, &submissionFixture{
		service:    svc,
		repo:       submissionRepo,
		student:    student,
		assignment: assignment,
	}
}

type submissionFixture struct {
	service    SubmissionService
	repo       repository.SubmissionRepository
	student    models.User
	assignment models.Assignment
}

func (f *submissionFixture) create(t *testing.T) dto.SubmissionResponse {
	t.Helper()

	created, err := f.service.Create(context.Background(), dto.SubmissionCreateRequest{
		UserID:       f.student.ID,
		AssignmentID: f.assignment.ID,
		Type:         models.SubmissionTypeTraditionalCode,
		Content:      "print('hello, mystical world')",
	})
	require.NoError(t, err)
	return created
}

func TestSubmissionCreateStartsAsDraft(t *testing.T) {
	_, fixture := newSubmissionService(t)

	created := fixture.create(t)
	require.Equal(t, models.SubmissionStatusDraft, created.Status)
	require.Nil(t, created.SubmittedAt)
	require.NotNil(t, created.CodeContent)
	require.Equal(t, "print('hello, mystical world')", *created.CodeContent)
	require.Nil(t, created.WalkthroughText)
	require.Nil(t, created.CodeExplanation)
}

func TestSubmissionCreateRejectsDisallowedType(t *testing.T) {
	svc, fixture := newSubmissionService(t)

	_, err := svc.Create(context.Background(), dto.SubmissionCreateRequest{
		UserID:       fixture.student.ID,
		AssignmentID: fixture.assignment.ID,
		Type:         models.SubmissionTypeReverseProgramming,
		Content:      "this explains the provided code",
	})
	require.ErrorIs(t, err, ErrValidation)
}

func TestSubmissionCreateEnforcesOnePerAssignment(t *testing.T) {
	svc, fixture := newSubmissionService(t)

	fixture.create(t)

	_, err := svc.Create(context.Background(), dto.SubmissionCreateRequest{
		UserID:       fixture.student.ID,
		AssignmentID: fixture.assignment.ID,
		Type:         models.SubmissionTypeSolutionWalkthrough,
		Content:      "second attempt",
	})
	require.ErrorIs(t, err, ErrSubmissionExists)
}

func TestSubmissionSubmitStampsTimestamp(t *testing.T) {
	svc, fixture := newSubmissionService(t)

	created := fixture.create(t)

	submitted, err := svc.Submit(context.Background(), created.ID)
	require.NoError(t, err)
	require.Equal(t, models.SubmissionStatusSubmitted, submitted.Status)
	require.NotNil(t, submitted.SubmittedAt)

	// Re-submitting refreshes the timestamp instead of failing.
	again, err := svc.Submit(context.Background(), created.ID)
	require.NoError(t, err)
	require.NotNil(t, again.SubmittedAt)
	require.False(t, again.SubmittedAt.Before(*submitted.SubmittedAt))
}

func TestSubmissionGradedLocksContent(t *testing.T) {
	svc, fixture := newSubmissionService(t)

	created := fixture.create(t)

	graded := models.SubmissionStatusGraded
	_, err := svc.Update(context.Background(), created.ID, dto.SubmissionUpdateRequest{Status: &graded})
	require.NoError(t, err)

	_, err = svc.Update(context.Background(), created.ID, dto.SubmissionUpdateRequest{Content: stringPointer("rewritten")})
	require.ErrorIs(t, err, ErrSubmissionGraded)

	_, err = svc.Submit(context.Background(), created.ID)
	require.ErrorIs(t, err, ErrSubmissionGraded)

	// Returning the submission unlocks editing again.
	returned := models.SubmissionStatusReturned
	_, err = svc.Update(context.Background(), created.ID, dto.SubmissionUpdateRequest{Status: &returned})
	require.NoError(t, err)

	updated, err := svc.Update(context.Background(), created.ID, dto.SubmissionUpdateRequest{Content: stringPointer("revised work")})
	require.NoError(t, err)
	require.Equal(t, "revised work", *updated.CodeContent)
}

func TestSubmissionTypeChangeRehomesContent(t *testing.T) {
	svc, fixture := newSubmissionService(t)

	created := fixture.create(t)

	walkthrough := models.SubmissionTypeSolutionWalkthrough
	updated, err := svc.Update(context.Background(), created.ID, dto.SubmissionUpdateRequest{
		Type:    &walkthrough,
		Content: stringPointer("first I opened the editor"),
	})
	require.NoError(t, err)
	require.Equal(t, walkthrough, updated.Type)
	require.Nil(t, updated.CodeContent)
	require.NotNil(t, updated.WalkthroughText)
	require.Equal(t, "first I opened the editor", *updated.WalkthroughText)
}

func TestSubmissionListCombinedFilterReturnsArray(t *testing.T) {
	svc, fixture := newSubmissionService(t)

	created := fixture.create(t)

	results, err := svc.List(context.Background(), dto.SubmissionFilter{
		UserID:       &fixture.student.ID,
		AssignmentID: &fixture.assignment.ID,
	})
	require.NoError(t, err)
	require.Len(t, results, 1)
	require.Equal(t, created.ID, results[0].ID)

	missing := uint(9999)
	empty, err := svc.List(context.Background(), dto.SubmissionFilter{
		UserID:       &missing,
		AssignmentID: &fixture.assignment.ID,
	})
	require.NoError(t, err)
	require.Empty(t, empty)
}
