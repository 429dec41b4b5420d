package services

import (
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/automatch/portal/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestValidateReviewInput(t *testing.T) {
	valid := ReviewInput{LessonID: uuid.New(), Rating: 4, Comment: "solid lesson"}
	require.NoError(t, validateReviewInput(valid))

	cases := []struct {
		name   string
		mutate func(*ReviewInput)
	}{
		{"missing lesson", func(in *ReviewInput) { in.LessonID = uuid.Nil }},
		{"rating too low", func(in *ReviewInput) { in.Rating = 0 }},
		{"rating too high", func(in *ReviewInput) { in.Rating = 6 }},
		{"comment too long", func(in *ReviewInput) { in.Comment = strings.Repeat("x", maxCommentLength+1) }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			in := valid
			tc.mutate(&in)
			require.ErrorIs(t, validateReviewInput(in), ErrValidation)
		})
	}
}

func TestCreateReviewRequiresExistingLesson(t *testing.T) {
	mock := newMockDB(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "lessons"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectRollback()

	_, err := CreateReview(ReviewInput{LessonID: uuid.New(), Rating: 5})
	require.ErrorIs(t, err, ErrNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateReviewRequiresCompletedLesson(t *testing.T) {
	mock := newMockDB(t)

	lesson := completedLesson(uuid.New())
	lesson.Status = models.LessonStatusScheduled
	lesson.CompletedAt = nil

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "lessons".*FOR UPDATE`).
		WillReturnRows(lessonRow(lesson))
	mock.ExpectRollback()

	// The transaction rolls back before touching the reviews table.
	_, err := CreateReview(ReviewInput{LessonID: lesson.ID, Rating: 5})
	require.ErrorIs(t, err, ErrState)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateReviewRejectsSecondLiveReview(t *testing.T) {
	mock := newMockDB(t)

	lesson := completedLesson(uuid.New())

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "lessons".*FOR UPDATE`).
		WillReturnRows(lessonRow(lesson))
	mock.ExpectQuery(`SELECT count\(\*\) FROM "reviews"`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(int64(1)))
	mock.ExpectRollback()

	_, err := CreateReview(ReviewInput{LessonID: lesson.ID, Rating: 3})
	require.ErrorIs(t, err, ErrConflict)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateReviewWritesAndReaggregates(t *testing.T) {
	mock := newMockDB(t)

	instructorID := uuid.New()
	lesson := completedLesson(instructorID)
	reviewID := uuid.New()

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "lessons".*FOR UPDATE`).
		WillReturnRows(lessonRow(lesson))
	mock.ExpectQuery(`SELECT count\(\*\) FROM "reviews"`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(int64(0)))
	mock.ExpectQuery(`INSERT INTO "reviews"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(reviewID.String()))
	mock.ExpectQuery(`SELECT reviews\.rating FROM "reviews".*lessons\.deleted_at IS NULL`).
		WillReturnRows(sqlmock.NewRows([]string{"rating"}).AddRow(5).AddRow(4))
	mock.ExpectExec(`UPDATE "instructors" SET`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	review, err := CreateReview(ReviewInput{LessonID: lesson.ID, Rating: 4, Comment: "great"})
	require.NoError(t, err)
	require.Equal(t, reviewID, review.ID)
	require.Equal(t, 4, review.Rating)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRestoreReviewRejectsWhenAnotherLiveReviewExists(t *testing.T) {
	mock := newMockDB(t)

	lesson := completedLesson(uuid.New())
	reviewID := uuid.New()
	deletedAt := time.Now().Add(-time.Hour)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "reviews"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "lesson_id", "rating", "deleted_at"}).
			AddRow(reviewID.String(), lesson.ID.String(), 2, deletedAt))
	mock.ExpectQuery(`SELECT \* FROM "lessons".*FOR UPDATE`).
		WillReturnRows(lessonRow(lesson))
	mock.ExpectQuery(`SELECT count\(\*\) FROM "reviews"`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(int64(1)))
	mock.ExpectRollback()

	err := RestoreReview(reviewID)
	require.ErrorIs(t, err, ErrConflict)
	require.NoError(t, mock.ExpectationsWereMet())
}
