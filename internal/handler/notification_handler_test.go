package handler_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arcana-edu/tarot-lms-api/internal/dto"
	"github.com/arcana-edu/tarot-lms-api/internal/utils"
)

type notificationEnvelope struct {
	utils.APIResponse
	Data dto.NotificationResponse `json:"data"`
}

type notificationListEnvelope struct {
	utils.APIResponse
	Data []dto.NotificationResponse `json:"data"`
}

func TestNotificationCreateSanitizesMessage(t *testing.T) {
	app, db := setupApp(t)
	student := seedUser(t, db, "Plum Willow", "plum@udel.edu", "STUDENT")

	resp := performJSON(t, app, http.MethodPost, "/api/v1/notifications", map[string]interface{}{
		"user_id": student.ID,
		"type":    "GRADE_POSTED",
		"title":   "Grade posted",
		"message": `Your grade is in. <script>alert("xss")</script>`,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var created notificationEnvelope
	decodeResponse(t, resp, &created)
	require.True(t, created.Success)
	require.Equal(t, "Your grade is in.", created.Data.Message)
	require.False(t, created.Data.IsRead)
}

func TestNotificationCreateRejectsScriptOnlyMessage(t *testing.T) {
	app, db := setupApp(t)
	student := seedUser(t, db, "Peach Fern", "peach@udel.edu", "STUDENT")

	resp := performJSON(t, app, http.MethodPost, "/api/v1/notifications", map[string]interface{}{
		"user_id": student.ID,
		"type":    "SYSTEM_MESSAGE",
		"title":   "Heads up",
		"message": "<script>alert(1)</script>",
	})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestNotificationCreateRejectsUnknownType(t *testing.T) {
	app, db := setupApp(t)
	student := seedUser(t, db, "Mango Clover", "mango@udel.edu", "STUDENT")

	resp := performJSON(t, app, http.MethodPost, "/api/v1/notifications", map[string]interface{}{
		"user_id": student.ID,
		"type":    "CARRIER_PIGEON",
		"title":   "Heads up",
		"message": "hello",
	})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestNotificationListFiltersByUserAndReadState(t *testing.T) {
	app, db := setupApp(t)
	first := seedUser(t, db, "Lychee Aster", "lychee@udel.edu", "STUDENT")
	second := seedUser(t, db, "Guava Poppy", "guava@udel.edu", "STUDENT")

	for i, userID := range []uint{first.ID, first.ID, second.ID} {
		resp := performJSON(t, app, http.MethodPost, "/api/v1/notifications", map[string]interface{}{
			"user_id": userID,
			"type":    "COURSE_ANNOUNCEMENT",
			"title":   fmt.Sprintf("Announcement %d", i),
			"message": "Class moved to the tower room.",
		})
		require.Equal(t, http.StatusCreated, resp.StatusCode)
	}

	resp := performJSON(t, app, http.MethodGet, fmt.Sprintf("/api/v1/notifications?user_id=%d", first.ID), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var listed notificationListEnvelope
	decodeResponse(t, resp, &listed)
	require.Len(t, listed.Data, 2)
	for _, notification := range listed.Data {
		require.Equal(t, first.ID, notification.UserID)
	}

	resp = performJSON(t, app, http.MethodPatch,
		fmt.Sprintf("/api/v1/notifications/%d/read?user_id=%d", listed.Data[0].ID, first.ID), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = performJSON(t, app, http.MethodGet,
		fmt.Sprintf("/api/v1/notifications?user_id=%d&is_read=false", first.ID), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	decodeResponse(t, resp, &listed)
	require.Len(t, listed.Data, 1)
}

func TestNotificationMarkReadIsIdempotent(t *testing.T) {
	app, db := setupApp(t)
	student := seedUser(t, db, "Papaya Sage", "papaya@udel.edu", "STUDENT")

	resp := performJSON(t, app, http.MethodPost, "/api/v1/notifications", map[string]interface{}{
		"user_id": student.ID,
		"type":    "ASSIGNMENT_DUE",
		"title":   "Due soon",
		"message": "The Hermit's recursion lab closes tonight.",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var created notificationEnvelope
	decodeResponse(t, resp, &created)

	path := fmt.Sprintf("/api/v1/notifications/%d/read?user_id=%d", created.Data.ID, student.ID)
	for i := 0; i < 2; i++ {
		resp = performJSON(t, app, http.MethodPatch, path, nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var marked notificationEnvelope
		decodeResponse(t, resp, &marked)
		require.True(t, marked.Data.IsRead)
	}
}

func TestNotificationMarkReadRejectsOtherUser(t *testing.T) {
	app, db := setupApp(t)
	owner := seedUser(t, db, "Date Laurel", "date@udel.edu", "STUDENT")
	intruder := seedUser(t, db, "Fig Bramble", "fig@udel.edu", "STUDENT")

	resp := performJSON(t, app, http.MethodPost, "/api/v1/notifications", map[string]interface{}{
		"user_id": owner.ID,
		"type":    "SYSTEM_MESSAGE",
		"title":   "Maintenance",
		"message": "Submissions pause at midnight.",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var created notificationEnvelope
	decodeResponse(t, resp, &created)

	resp = performJSON(t, app, http.MethodPatch,
		fmt.Sprintf("/api/v1/notifications/%d/read?user_id=%d", created.Data.ID, intruder.ID), nil)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
}
