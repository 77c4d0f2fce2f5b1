package handler_test

import (
	"fmt"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"

	"github.com/arcana-edu/tarot-lms-api/internal/dto"
	"github.com/arcana-edu/tarot-lms-api/internal/models"
)

type submissionEnvelope struct {
	Success bool                   `json:"success"`
	Data    dto.SubmissionResponse `json:"data"`
	Message string                 `json:"message"`
}

type submissionListEnvelope struct {
	Success bool                     `json:"success"`
	Data    []dto.SubmissionResponse `json:"data"`
	Message string                   `json:"message"`
}

func TestSubmissionLifecycleOverHTTP(t *testing.T) {
	app, db := setupApp(t)

	instructor := seedUser(t, db, "Banana Orchid", "banana@udel.edu", models.RoleInstructor)
	student := seedUser(t, db, "Pear Carnation", "pear@udel.edu", models.RoleStudent)
	course := seedCourse(t, db, "ALGO201", instructor.ID)
	assignment := seedAssignment(t, db, course.ID, []string{models.SubmissionTypeTraditionalCode})

	// Create starts the submission as a draft.
	resp := performJSON(t, app, "POST", "/api/v1/submissions", map[string]interface{}{
		"user_id":       student.ID,
		"assignment_id": assignment.ID,
		"type":          models.SubmissionTypeTraditionalCode,
		"content":       "def merge_sort(items): ...",
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var created submissionEnvelope
	decodeResponse(t, resp, &created)
	require.True(t, created.Success)
	require.Equal(t, models.SubmissionStatusDraft, created.Data.Status)
	require.Nil(t, created.Data.SubmittedAt)
	require.NotNil(t, created.Data.Assignment)
	require.Equal(t, assignment.ID, created.Data.Assignment.ID)

	// A second create for the same pair conflicts.
	dup := performJSON(t, app, "POST", "/api/v1/submissions", map[string]interface{}{
		"user_id":       student.ID,
		"assignment_id": assignment.ID,
		"type":          models.SubmissionTypeTraditionalCode,
		"content":       "second attempt",
	})
	require.Equal(t, fiber.StatusConflict, dup.StatusCode)

	// Submit stamps the timestamp.
	submitResp := performJSON(t, app, "POST", fmt.Sprintf("/api/v1/submissions/%d/submit", created.Data.ID), nil)
	require.Equal(t, fiber.StatusOK, submitResp.StatusCode)

	var submitted submissionEnvelope
	decodeResponse(t, submitResp, &submitted)
	require.Equal(t, models.SubmissionStatusSubmitted, submitted.Data.Status)
	require.NotNil(t, submitted.Data.SubmittedAt)

	// Grading locks content edits.
	gradeResp := performJSON(t, app, "PATCH", fmt.Sprintf("/api/v1/submissions/%d", created.Data.ID), map[string]interface{}{
		"status": models.SubmissionStatusGraded,
	})
	require.Equal(t, fiber.StatusOK, gradeResp.StatusCode)

	editResp := performJSON(t, app, "PATCH", fmt.Sprintf("/api/v1/submissions/%d", created.Data.ID), map[string]interface{}{
		"content": "too late",
	})
	require.Equal(t, fiber.StatusConflict, editResp.StatusCode)
}

func TestSubmissionCreateRejectsDisallowedTypeOverHTTP(t *testing.T) {
	app, db := setupApp(t)

	instructor := seedUser(t, db, "Apple Lily", "apple@udel.edu", models.RoleInstructor)
	student := seedUser(t, db, "Kiwi Peony", "kiwi@udel.edu", models.RoleStudent)
	course := seedCourse(t, db, "PROG101", instructor.ID)
	assignment := seedAssignment(t, db, course.ID, []string{models.SubmissionTypeSolutionWalkthrough})

	resp := performJSON(t, app, "POST", "/api/v1/submissions", map[string]interface{}{
		"user_id":       student.ID,
		"assignment_id": assignment.ID,
		"type":          models.SubmissionTypeTraditionalCode,
		"content":       "print('nope')",
	})
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestSubmissionCombinedQueryReturnsArray(t *testing.T) {
	app, db := setupApp(t)

	instructor := seedUser(t, db, "Orange Jasmine", "orange@udel.edu", models.RoleInstructor)
	student := seedUser(t, db, "Lemon Marigold", "lemon@udel.edu", models.RoleStudent)
	course := seedCourse(t, db, "WEB301", instructor.ID)
	assignment := seedAssignment(t, db, course.ID, []string{models.SubmissionTypeTraditionalCode})

	resp := performJSON(t, app, "POST", "/api/v1/submissions", map[string]interface{}{
		"user_id":       student.ID,
		"assignment_id": assignment.ID,
		"type":          models.SubmissionTypeTraditionalCode,
		"content":       "<section>cards</section>",
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	listResp := performJSON(t, app, "GET",
		fmt.Sprintf("/api/v1/submissions?user_id=%d&assignment_id=%d", student.ID, assignment.ID), nil)
	require.Equal(t, fiber.StatusOK, listResp.StatusCode)

	var listed submissionListEnvelope
	decodeResponse(t, listResp, &listed)
	require.Len(t, listed.Data, 1)

	// The combined filter stays an array when it matches nothing.
	emptyResp := performJSON(t, app, "GET",
		fmt.Sprintf("/api/v1/submissions?user_id=%d&assignment_id=%d", student.ID+100, assignment.ID), nil)
	require.Equal(t, fiber.StatusOK, emptyResp.StatusCode)

	var empty submissionListEnvelope
	decodeResponse(t, emptyResp, &empty)
	require.NotNil(t, empty.Data)
	require.Empty(t, empty.Data)
}

func TestSubmissionGetUnknownReturnsNotFound(t *testing.T) {
	app, _ := setupApp(t)

	resp := performJSON(t, app, "GET", "/api/v1/submissions/424242", nil)
	require.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}
