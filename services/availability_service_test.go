package services

import (
	"testing"
	"time"

	"github.com/automatch/portal/models"
	"github.com/automatch/portal/schedule"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func tod(t *testing.T, s string) schedule.TimeOfDay {
	t.Helper()
	parsed, err := schedule.ParseTimeOfDay(s)
	require.NoError(t, err)
	return parsed
}

func window(t *testing.T, day time.Weekday, start, end string) models.AvailabilityWindow {
	t.Helper()
	return models.AvailabilityWindow{
		ID:           uuid.New(),
		InstructorID: uuid.New(),
		DayOfWeek:    day,
		StartTime:    tod(t, start),
		EndTime:      tod(t, end),
	}
}

func TestValidateWindowInput(t *testing.T) {
	valid := WindowInput{DayOfWeek: time.Monday, StartTime: tod(t, "09:00"), EndTime: tod(t, "11:00")}
	require.NoError(t, validateWindowInput(valid))

	cases := []struct {
		name string
		in   WindowInput
	}{
		{"day below range", WindowInput{DayOfWeek: -1, StartTime: tod(t, "09:00"), EndTime: tod(t, "11:00")}},
		{"day above range", WindowInput{DayOfWeek: 7, StartTime: tod(t, "09:00"), EndTime: tod(t, "11:00")}},
		{"start equals end", WindowInput{DayOfWeek: time.Monday, StartTime: tod(t, "09:00"), EndTime: tod(t, "09:00")}},
		{"start after end", WindowInput{DayOfWeek: time.Monday, StartTime: tod(t, "11:00"), EndTime: tod(t, "09:00")}},
		{"unaligned start", WindowInput{DayOfWeek: time.Monday, StartTime: schedule.TimeOfDay(9*60 + 15), EndTime: tod(t, "11:00")}},
		{"unaligned end", WindowInput{DayOfWeek: time.Monday, StartTime: tod(t, "09:00"), EndTime: schedule.TimeOfDay(10*60 + 45)}},
		{"negative time", WindowInput{DayOfWeek: time.Monday, StartTime: -30, EndTime: tod(t, "11:00")}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := validateWindowInput(tc.in)
			require.ErrorIs(t, err, ErrValidation)
		})
	}
}

func TestWindowsConflict(t *testing.T) {
	existing := []models.AvailabilityWindow{
		window(t, time.Monday, "09:00", "11:00"),
		window(t, time.Monday, "14:00", "16:00"),
	}

	require.True(t, windowsConflict(existing, tod(t, "10:00"), tod(t, "12:00"), nil))
	require.True(t, windowsConflict(existing, tod(t, "09:00"), tod(t, "11:00"), nil))
	require.True(t, windowsConflict(existing, tod(t, "08:00"), tod(t, "18:00"), nil))
	require.False(t, windowsConflict(existing, tod(t, "11:00"), tod(t, "14:00"), nil))
	require.False(t, windowsConflict(existing, tod(t, "16:00"), tod(t, "18:00"), nil))
	require.False(t, windowsConflict(nil, tod(t, "09:00"), tod(t, "11:00"), nil))
}

func TestWindowsConflictExcludesSelf(t *testing.T) {
	w := window(t, time.Monday, "09:00", "11:00")
	existing := []models.AvailabilityWindow{w}

	// an update re-checked against itself must not conflict
	require.True(t, windowsConflict(existing, tod(t, "09:00"), tod(t, "11:00"), nil))
	require.False(t, windowsConflict(existing, tod(t, "09:00"), tod(t, "11:00"), &w.ID))

	other := uuid.New()
	require.True(t, windowsConflict(existing, tod(t, "09:00"), tod(t, "11:00"), &other))
}

func TestBatchConflicts(t *testing.T) {
	clean := []WindowInput{
		{DayOfWeek: time.Monday, StartTime: tod(t, "09:00"), EndTime: tod(t, "11:00")},
		{DayOfWeek: time.Monday, StartTime: tod(t, "11:00"), EndTime: tod(t, "13:00")},
		{DayOfWeek: time.Tuesday, StartTime: tod(t, "09:00"), EndTime: tod(t, "11:00")},
	}
	require.False(t, batchConflicts(clean))

	sameDayOverlap := []WindowInput{
		{DayOfWeek: time.Monday, StartTime: tod(t, "09:00"), EndTime: tod(t, "11:00")},
		{DayOfWeek: time.Monday, StartTime: tod(t, "10:30"), EndTime: tod(t, "12:00")},
	}
	require.True(t, batchConflicts(sameDayOverlap))

	// the same clock interval on different days is not a conflict
	crossDay := []WindowInput{
		{DayOfWeek: time.Monday, StartTime: tod(t, "09:00"), EndTime: tod(t, "11:00")},
		{DayOfWeek: time.Wednesday, StartTime: tod(t, "09:00"), EndTime: tod(t, "11:00")},
	}
	require.False(t, batchConflicts(crossDay))

	// conflicts between non-adjacent entries are caught too
	spread := []WindowInput{
		{DayOfWeek: time.Monday, StartTime: tod(t, "09:00"), EndTime: tod(t, "10:00")},
		{DayOfWeek: time.Tuesday, StartTime: tod(t, "09:00"), EndTime: tod(t, "10:00")},
		{DayOfWeek: time.Monday, StartTime: tod(t, "09:30"), EndTime: tod(t, "10:30")},
	}
	require.True(t, batchConflicts(spread))

	require.False(t, batchConflicts(nil))
	require.False(t, batchConflicts([]WindowInput{clean[0]}))
}

func TestWindowContains(t *testing.T) {
	w := window(t, time.Monday, "09:00", "17:00")

	require.True(t, w.Contains(tod(t, "09:00"), tod(t, "17:00")))
	require.True(t, w.Contains(tod(t, "10:00"), tod(t, "12:00")))
	require.False(t, w.Contains(tod(t, "08:00"), tod(t, "10:00")))
	require.False(t, w.Contains(tod(t, "16:30"), tod(t, "17:30")))
}
