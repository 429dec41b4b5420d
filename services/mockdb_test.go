package services

import (
	"database/sql/driver"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/automatch/portal/database"
	"github.com/automatch/portal/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newMockDB points the package-global connection at a sqlmock driver for the
// duration of one test. Expectations use regexp matching so statements can be
// pinned loosely.
func newMockDB(t *testing.T) sqlmock.Sqlmock {
	t.Helper()

	conn, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: conn}), &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	prev := database.DB
	database.DB = db
	t.Cleanup(func() {
		database.DB = prev
		conn.Close()
	})
	return mock
}

// lessonRow builds a one-row result set in the lessons table's shape.
func lessonRow(lesson models.Lesson) *sqlmock.Rows {
	rows := sqlmock.NewRows([]string{
		"id", "instructor_id", "student_id", "scheduled_at",
		"duration_minutes", "status", "price", "payment_status",
		"completed_at", "deleted_at",
	})
	var completedAt, deletedAt driver.Value
	if lesson.CompletedAt != nil {
		completedAt = *lesson.CompletedAt
	}
	if lesson.DeletedAt != nil {
		deletedAt = *lesson.DeletedAt
	}
	rows.AddRow(
		lesson.ID.String(), lesson.InstructorID.String(), lesson.StudentID.String(),
		lesson.ScheduledAt, lesson.DurationMinutes, string(lesson.Status),
		lesson.Price, string(lesson.PaymentStatus), completedAt, deletedAt,
	)
	return rows
}

func completedLesson(instructorID uuid.UUID) models.Lesson {
	completed := time.Now().Add(-time.Hour)
	return models.Lesson{
		ID:              uuid.New(),
		InstructorID:    instructorID,
		StudentID:       uuid.New(),
		ScheduledAt:     time.Now().Add(-2 * time.Hour),
		DurationMinutes: 60,
		Status:          models.LessonStatusCompleted,
		Price:           45,
		PaymentStatus:   models.PaymentStatusPending,
		CompletedAt:     &completed,
	}
}
