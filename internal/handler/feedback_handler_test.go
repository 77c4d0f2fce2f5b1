package handler_test

import (
	"fmt"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"

	"github.com/arcana-edu/tarot-lms-api/internal/dto"
	"github.com/arcana-edu/tarot-lms-api/internal/models"
)

type feedbackEnvelope struct {
	Success bool                 `json:"success"`
	Data    dto.FeedbackResponse `json:"data"`
	Message string               `json:"message"`
}

func TestFeedbackPublishFlowOverHTTP(t *testing.T) {
	app, db := setupApp(t)

	instructor := seedUser(t, db, "Banana Orchid", "banana@udel.edu", models.RoleInstructor)
	grader := seedUser(t, db, "Blueberry Daisy", "blueberry@udel.edu", models.RoleTA)
	student := seedUser(t, db, "Watermelon Poppy", "watermelon@udel.edu", models.RoleStudent)
	course := seedCourse(t, db, "ALGO201", instructor.ID)
	assignment := seedAssignment(t, db, course.ID, []string{models.SubmissionTypeTraditionalCode})

	createResp := performJSON(t, app, "POST", "/api/v1/submissions", map[string]interface{}{
		"user_id":       student.ID,
		"assignment_id": assignment.ID,
		"type":          models.SubmissionTypeTraditionalCode,
		"content":       "class TreeNode: ...",
	})
	require.Equal(t, fiber.StatusCreated, createResp.StatusCode)

	var submission submissionEnvelope
	decodeResponse(t, createResp, &submission)

	feedbackResp := performJSON(t, app, "POST", "/api/v1/feedback", map[string]interface{}{
		"submission_id": submission.Data.ID,
		"grader_id":     grader.ID,
		"student_id":    student.ID,
		"points":        88,
		"comments":      "The oracle answers swiftly.",
	})
	require.Equal(t, fiber.StatusCreated, feedbackResp.StatusCode)

	var feedback feedbackEnvelope
	decodeResponse(t, feedbackResp, &feedback)
	require.False(t, feedback.Data.IsPublished)

	// The submission read hides unpublished feedback.
	hiddenResp := performJSON(t, app, "GET", fmt.Sprintf("/api/v1/submissions/%d", submission.Data.ID), nil)
	require.Equal(t, fiber.StatusOK, hiddenResp.StatusCode)

	var hidden submissionEnvelope
	decodeResponse(t, hiddenResp, &hidden)
	require.Empty(t, hidden.Data.Feedback)

	publishResp := performJSON(t, app, "POST", fmt.Sprintf("/api/v1/feedback/%d/publish", feedback.Data.ID), nil)
	require.Equal(t, fiber.StatusOK, publishResp.StatusCode)

	var published feedbackEnvelope
	decodeResponse(t, publishResp, &published)
	require.True(t, published.Data.IsPublished)

	visibleResp := performJSON(t, app, "GET", fmt.Sprintf("/api/v1/submissions/%d", submission.Data.ID), nil)
	require.Equal(t, fiber.StatusOK, visibleResp.StatusCode)

	var visible submissionEnvelope
	decodeResponse(t, visibleResp, &visible)
	require.Len(t, visible.Data.Feedback, 1)
	require.Equal(t, 88, *visible.Data.Feedback[0].Points)
}

func TestFeedbackCreateUnknownSubmission(t *testing.T) {
	app, db := setupApp(t)

	grader := seedUser(t, db, "Strawberry Tulip", "strawberry@udel.edu", models.RoleTA)
	student := seedUser(t, db, "Coconut Zinnia", "coconut@udel.edu", models.RoleStudent)

	resp := performJSON(t, app, "POST", "/api/v1/feedback", map[string]interface{}{
		"submission_id": 8888,
		"grader_id":     grader.ID,
		"student_id":    student.ID,
	})
	require.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}
