package handler_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/arcana-edu/tarot-lms-api/internal/config"
	"github.com/arcana-edu/tarot-lms-api/internal/handler"
	"github.com/arcana-edu/tarot-lms-api/internal/middleware"
	"github.com/arcana-edu/tarot-lms-api/internal/models"
	"github.com/arcana-edu/tarot-lms-api/internal/repository"
	"github.com/arcana-edu/tarot-lms-api/internal/router"
	"github.com/arcana-edu/tarot-lms-api/internal/service"
)

func setupApp(t *testing.T) (*fiber.App, *gorm.DB) {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Course{},
		&models.CourseTA{},
		&models.Enrollment{},
		&models.Assignment{},
		&models.Submission{},
		&models.Feedback{},
		&models.Notification{},
	))

	validate := validator.New(validator.WithRequiredStructEnabled())
	logger := zerolog.New(io.Discard)

	userRepo := repository.NewUserRepository(db)
	courseRepo := repository.NewCourseRepository(db)
	assignmentRepo := repository.NewAssignmentRepository(db)
	submissionRepo := repository.NewSubmissionRepository(db)
	feedbackRepo := repository.NewFeedbackRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)

	identityService := service.NewIdentityService(userRepo, logger)
	userService := service.NewUserService(userRepo, logger)
	courseService := service.NewCourseService(courseRepo, userRepo, validate, logger)
	assignmentService := service.NewAssignmentService(assignmentRepo, courseRepo, validate, logger)
	submissionService := service.NewSubmissionService(submissionRepo, assignmentRepo, userRepo, validate, logger)
	feedbackService := service.NewFeedbackService(feedbackRepo, submissionRepo, userRepo, validate, logger)
	notificationService := service.NewNotificationService(notificationRepo, nil, "", nil, validate, logger)
	dashboardService := service.NewStudentDashboardService(assignmentRepo, submissionRepo, nil, time.Minute, logger)

	app := fiber.New()
	router.Register(app, config.Config{AppName: "Test", JWTSecret: "secret"}, router.Dependencies{
		UserHandler:             handler.NewUserHandler(userService, identityService, logger),
		CourseHandler:           handler.NewCourseHandler(courseService, logger),
		AssignmentHandler:       handler.NewAssignmentHandler(assignmentService, logger),
		SubmissionHandler:       handler.NewSubmissionHandler(submissionService, logger),
		FeedbackHandler:         handler.NewFeedbackHandler(feedbackService, logger),
		NotificationHandler:     handler.NewNotificationHandler(notificationService, logger),
		StudentDashboardHandler: handler.NewStudentDashboardHandler(dashboardService, logger),
		JWTMiddleware: func(c *fiber.Ctx) error {
			c.Locals("auth_claims", middleware.AuthClaims{
				Subject:       "auth0|test-subject",
				Email:         "cherry@udel.edu",
				Name:          "Cherry Violet",
				EmailVerified: true,
			})
			return c.Next()
		},
	})

	return app, db
}

func performJSON(t *testing.T, app *fiber.App, method, path string, payload interface{}) *http.Response {
	t.Helper()

	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, body)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decodeResponse(t *testing.T, resp *http.Response, target interface{}) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(target))
}

func seedUser(t *testing.T, db *gorm.DB, name, email, role string) models.User {
	t.Helper()

	user := models.User{Name: name, Email: email, Role: role}
	require.NoError(t, db.Create(&user).Error)
	return user
}

func seedCourse(t *testing.T, db *gorm.DB, code string, instructorID uint) models.Course {
	t.Helper()

	course := models.Course{
		Title:        "Data Structures & Mystical Algorithms",
		Code:         code,
		InstructorID: instructorID,
	}
	require.NoError(t, db.Create(&course).Error)
	return course
}

func seedAssignment(t *testing.T, db *gorm.DB, courseID uint, allowedTypes []string) models.Assignment {
	t.Helper()

	assignment := models.Assignment{
		CourseID:     courseID,
		Title:        "Sorting Spells Implementation",
		Description:  "Organize chaos.",
		Instructions: "Implement two sorting algorithms.",
		DueDate:      time.Now().Add(96 * time.Hour),
		MaxPoints:    100,
		AllowedTypes: datatypes.NewJSONSlice(allowedTypes),
	}
	require.NoError(t, db.Create(&assignment).Error)
	return assignment
}
