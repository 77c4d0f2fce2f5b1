package contract_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/santhosh-tekuri/jsonschema/v5"
	"github.com/stretchr/testify/require"

	"github.com/arcana-edu/tarot-lms-api/internal/dto"
	"github.com/arcana-edu/tarot-lms-api/internal/handler"
	"github.com/arcana-edu/tarot-lms-api/internal/models"
)

type stubSubmissionService struct {
	response dto.SubmissionResponse
}

func (s stubSubmissionService) List(context.Context, dto.SubmissionFilter) ([]dto.SubmissionResponse, error) {
	return []dto.SubmissionResponse{s.response}, nil
}

func (s stubSubmissionService) Get(context.Context, uint) (dto.SubmissionResponse, error) {
	return s.response, nil
}

func (s stubSubmissionService) Create(context.Context, dto.SubmissionCreateRequest) (dto.SubmissionResponse, error) {
	return s.response, nil
}

func (s stubSubmissionService) Update(context.Context, uint, dto.SubmissionUpdateRequest) (dto.SubmissionResponse, error) {
	return s.response, nil
}

func (s stubSubmissionService) Submit(context.Context, uint) (dto.SubmissionResponse, error) {
	return s.response, nil
}

func (s stubSubmissionService) Delete(context.Context, uint) error {
	return nil
}

func TestSubmissionContract(t *testing.T) {
	schemaPath, err := filepath.Abs(filepath.Join("..", "contracts", "submission.schema.json"))
	require.NoError(t, err)

	compiler := jsonschema.NewCompiler()
	schema, err := compiler.Compile("file://" + schemaPath)
	require.NoError(t, err)

	now := time.Now().UTC()
	submittedAt := now.Add(-2 * time.Hour)
	response := dto.SubmissionResponse{
		ID:           42,
		UserID:       7,
		AssignmentID: 3,
		Type:         models.SubmissionTypeTraditionalCode,
		Status:       models.SubmissionStatusGraded,
		CodeContent:  ptrString("def draw_card():\n    return deck.pop()"),
		SubmittedAt:  &submittedAt,
		CreatedAt:    now.Add(-24 * time.Hour),
		UpdatedAt:    now,
		Assignment: &dto.AssignmentRef{
			ID:        3,
			Title:     "The Magician: Functions and Flow",
			MaxPoints: 100,
			DueDate:   now.Add(48 * time.Hour),
			CourseID:  1,
		},
		User: &dto.UserRef{
			ID:    7,
			Name:  "Cherry Violet",
			Email: "cherry@udel.edu",
		},
		Feedback: []dto.FeedbackResponse{
			{
				ID:           9,
				SubmissionID: 42,
				GraderID:     2,
				StudentID:    7,
				Points:       ptrInt(92),
				Comments:     ptrString("Clean recursion, watch the base case."),
				IsPublished:  true,
				CreatedAt:    now.Add(-time.Hour),
				UpdatedAt:    now,
			},
		},
	}

	submissionHandler := handler.NewSubmissionHandler(stubSubmissionService{response: response}, zerolog.Nop())

	app := fiber.New()
	submissionHandler.Register(app.Group("/api/v1/submissions"))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/submissions/42", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	resp.Body.Close()

	var payload interface{}
	require.NoError(t, json.Unmarshal(body, &payload))
	require.NoError(t, schema.Validate(payload))
}

func ptrString(v string) *string {
	return &v
}

func ptrInt(v int) *int {
	return &v
}
