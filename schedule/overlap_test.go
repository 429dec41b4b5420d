package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func mustParse(t *testing.T, s string) TimeOfDay {
	t.Helper()
	tod, err := ParseTimeOfDay(s)
	require.NoError(t, err)
	return tod
}

func TestOverlaps(t *testing.T) {
	cases := []struct {
		name                           string
		aStart, aEnd, bStart, bEnd     string
		want                           bool
	}{
		{"partial overlap", "09:00", "11:00", "10:00", "12:00", true},
		{"contained", "09:00", "12:00", "10:00", "11:00", true},
		{"identical", "09:00", "11:00", "09:00", "11:00", true},
		{"touching end to start", "09:00", "11:00", "11:00", "13:00", false},
		{"touching start to end", "11:00", "13:00", "09:00", "11:00", false},
		{"disjoint", "09:00", "10:00", "11:00", "12:00", false},
		{"one minute overlap", "09:00", "10:01", "10:00", "11:00", true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			a1, a2 := mustParse(t, tc.aStart), mustParse(t, tc.aEnd)
			b1, b2 := mustParse(t, tc.bStart), mustParse(t, tc.bEnd)

			require.Equal(t, tc.want, Overlaps(a1, a2, b1, b2))
			// the predicate is symmetric
			require.Equal(t, tc.want, Overlaps(b1, b2, a1, a2))
		})
	}
}

func TestOverlapsAt(t *testing.T) {
	base := time.Date(2026, time.March, 9, 9, 0, 0, 0, time.UTC)

	require.True(t, OverlapsAt(base, base.Add(2*time.Hour), base.Add(time.Hour), base.Add(3*time.Hour)))
	require.False(t, OverlapsAt(base, base.Add(time.Hour), base.Add(time.Hour), base.Add(2*time.Hour)))
	require.True(t, OverlapsAt(base, base.Add(time.Hour), base, base.Add(time.Hour)))
}

func TestContains(t *testing.T) {
	wStart, wEnd := mustParse(t, "09:00"), mustParse(t, "17:00")

	require.True(t, Contains(wStart, wEnd, mustParse(t, "10:00"), mustParse(t, "11:00")))
	require.True(t, Contains(wStart, wEnd, mustParse(t, "09:00"), mustParse(t, "17:00")))
	require.True(t, Contains(wStart, wEnd, mustParse(t, "09:00"), mustParse(t, "09:30")))
	require.False(t, Contains(wStart, wEnd, mustParse(t, "08:30"), mustParse(t, "10:00")))
	require.False(t, Contains(wStart, wEnd, mustParse(t, "16:00"), mustParse(t, "17:30")))
	require.False(t, Contains(wStart, wEnd, mustParse(t, "07:00"), mustParse(t, "08:00")))
}

func TestLessonEnd(t *testing.T) {
	start := time.Date(2026, time.March, 9, 14, 0, 0, 0, time.UTC)
	require.Equal(t, start.Add(90*time.Minute), LessonEnd(start, 90))
	require.Equal(t, start.Add(30*time.Minute), LessonEnd(start, 30))
}
