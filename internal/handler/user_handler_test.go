package handler_test

import (
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"

	"github.com/arcana-edu/tarot-lms-api/internal/dto"
	"github.com/arcana-edu/tarot-lms-api/internal/models"
)

type userEnvelope struct {
	Success bool             `json:"success"`
	Data    dto.UserResponse `json:"data"`
	Message string           `json:"message"`
}

func TestMeProvisionsOnFirstLogin(t *testing.T) {
	app, db := setupApp(t)

	resp := performJSON(t, app, "GET", "/api/v1/users/me", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var first userEnvelope
	decodeResponse(t, resp, &first)
	require.True(t, first.Success)
	require.NotZero(t, first.Data.ID)
	require.Equal(t, "Cherry Violet", first.Data.Name)
	require.Equal(t, "cherry@udel.edu", first.Data.Email)
	require.Equal(t, models.RoleStudent, first.Data.Role)
	require.NotNil(t, first.Data.EmailVerifiedAt)

	// A second call resolves to the same record.
	again := performJSON(t, app, "GET", "/api/v1/users/me", nil)
	require.Equal(t, fiber.StatusOK, again.StatusCode)

	var second userEnvelope
	decodeResponse(t, again, &second)
	require.Equal(t, first.Data.ID, second.Data.ID)

	var count int64
	require.NoError(t, db.Model(&models.User{}).Count(&count).Error)
	require.EqualValues(t, 1, count)
}

func TestUserGetUnknownReturnsNotFound(t *testing.T) {
	app, _ := setupApp(t)

	resp := performJSON(t, app, "GET", "/api/v1/users/31337", nil)
	require.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}
