package services

import (
	"testing"
	"time"

	"github.com/automatch/portal/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func lessonAt(start time.Time, minutes int) models.Lesson {
	return models.Lesson{
		ID:              uuid.New(),
		InstructorID:    uuid.New(),
		StudentID:       uuid.New(),
		ScheduledAt:     start,
		DurationMinutes: minutes,
		Status:          models.LessonStatusScheduled,
	}
}

func TestValidateLessonInput(t *testing.T) {
	base := LessonInput{
		InstructorID:    uuid.New(),
		StudentID:       uuid.New(),
		ScheduledAt:     time.Date(2026, time.September, 1, 10, 0, 0, 0, time.UTC),
		DurationMinutes: 60,
		Price:           45,
	}
	require.NoError(t, validateLessonInput(base))

	missingInstructor := base
	missingInstructor.InstructorID = uuid.Nil
	require.ErrorIs(t, validateLessonInput(missingInstructor), ErrValidation)

	missingStudent := base
	missingStudent.StudentID = uuid.Nil
	require.ErrorIs(t, validateLessonInput(missingStudent), ErrValidation)

	zeroTime := base
	zeroTime.ScheduledAt = time.Time{}
	require.ErrorIs(t, validateLessonInput(zeroTime), ErrValidation)

	tooShort := base
	tooShort.DurationMinutes = 29
	require.ErrorIs(t, validateLessonInput(tooShort), ErrValidation)

	minimum := base
	minimum.DurationMinutes = 30
	require.NoError(t, validateLessonInput(minimum))

	negativePrice := base
	negativePrice.Price = -1
	require.ErrorIs(t, validateLessonInput(negativePrice), ErrValidation)
}

func TestLessonsConflict(t *testing.T) {
	monday10 := time.Date(2026, time.September, 7, 10, 0, 0, 0, time.UTC)
	existing := []models.Lesson{
		lessonAt(monday10, 60),
		lessonAt(monday10.Add(3*time.Hour), 90),
	}

	require.True(t, lessonsConflict(existing, monday10.Add(30*time.Minute), monday10.Add(90*time.Minute), nil))
	require.True(t, lessonsConflict(existing, monday10, monday10.Add(time.Hour), nil))

	// back to back bookings touch but do not conflict
	require.False(t, lessonsConflict(existing, monday10.Add(time.Hour), monday10.Add(2*time.Hour), nil))
	require.False(t, lessonsConflict(existing, monday10.Add(-time.Hour), monday10, nil))
	require.False(t, lessonsConflict(nil, monday10, monday10.Add(time.Hour), nil))
}

func TestLessonsConflictExcludesSelf(t *testing.T) {
	monday10 := time.Date(2026, time.September, 7, 10, 0, 0, 0, time.UTC)
	l := lessonAt(monday10, 60)
	existing := []models.Lesson{l}

	require.True(t, lessonsConflict(existing, monday10, monday10.Add(time.Hour), nil))
	require.False(t, lessonsConflict(existing, monday10, monday10.Add(time.Hour), &l.ID))
}

func TestLessonEndsAt(t *testing.T) {
	start := time.Date(2026, time.September, 7, 14, 0, 0, 0, time.UTC)
	l := lessonAt(start, 90)
	require.Equal(t, start.Add(90*time.Minute), l.EndsAt())
}
