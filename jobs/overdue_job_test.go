package jobs

import (
	"bytes"
	"errors"
	"log"
	"os"
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

func overdueLessonRows(lessons ...models.Lesson) *sqlmock.Rows {
	rows := sqlmock.NewRows([]string{
		"id", "instructor_id", "student_id", "scheduled_at",
		"duration_minutes", "status", "price", "payment_status",
	})
	for _, l := range lessons {
		rows.AddRow(
			l.ID.String(), l.InstructorID.String(), l.StudentID.String(),
			l.ScheduledAt, l.DurationMinutes, string(l.Status),
			l.Price, string(l.PaymentStatus),
		)
	}
	return rows
}

func staleLesson() models.Lesson {
	return models.Lesson{
		ID:              uuid.New(),
		InstructorID:    uuid.New(),
		StudentID:       uuid.New(),
		ScheduledAt:     time.Now().Add(-72 * time.Hour),
		DurationMinutes: 60,
		Status:          models.LessonStatusScheduled,
		Price:           40,
		PaymentStatus:   models.PaymentStatusPending,
	}
}

// A failed cancellation is logged and excluded from the reported count.
func TestCancelOverdueLessonsCountsOnlySuccessfulCancellations(t *testing.T) {
	mock := newMockDB(t)

	mock.ExpectQuery(`SELECT \* FROM "lessons"`).
		WillReturnRows(overdueLessonRows(staleLesson(), staleLesson()))
	mock.ExpectExec(`UPDATE "lessons" SET`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`UPDATE "lessons" SET`).
		WillReturnError(errors.New("connection reset"))

	var buf bytes.Buffer
	log.SetOutput(&buf)
	defer log.SetOutput(os.Stderr)

	CancelOverdueLessons()

	require.NoError(t, mock.ExpectationsWereMet())
	require.Contains(t, buf.String(), "Failed to cancel overdue lesson")
	require.Contains(t, buf.String(), "Cancelled 1 of 2 overdue lesson(s).")
}
