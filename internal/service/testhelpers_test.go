package service

import (
	"fmt"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/arcana-edu/tarot-lms-api/internal/models"
)

func newTestDB(t *testing.T) *gorm.DB {
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

	return db
}

func newValidator() *validator.Validate {
	return validator.New(validator.WithRequiredStructEnabled())
}

func createUser(t *testing.T, db *gorm.DB, name, email, role string) models.User {
	t.Helper()

	user := models.User{Name: name, Email: email, Role: role}
	require.NoError(t, db.Create(&user).Error)
	return user
}

func createCourse(t *testing.T, db *gorm.DB, code string, instructorID uint) models.Course {
	t.Helper()

	course := models.Course{
		Title:        "Fundamentals of Programming Sorcery",
		Code:         code,
		InstructorID: instructorID,
	}
	require.NoError(t, db.Create(&course).Error)
	return course
}

func createAssignment(t *testing.T, db *gorm.DB, courseID uint, allowedTypes []string, dueDate time.Time) models.Assignment {
	t.Helper()

	assignment := models.Assignment{
		CourseID:     courseID,
		Title:        "Hello World Ritual",
		Description:  "Your first incantation.",
		Instructions: "Output a greeting.",
		DueDate:      dueDate,
		MaxPoints:    100,
		AllowedTypes: datatypes.NewJSONSlice(allowedTypes),
	}
	require.NoError(t, db.Create(&assignment).Error)
	return assignment
}

func stringPointer(v string) *string {
	return &v
}

func intPointer(v int) *int {
	return &v
}
