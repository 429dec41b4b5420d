package models

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLessonStatusValid(t *testing.T) {
	require.True(t, LessonStatusScheduled.Valid())
	require.True(t, LessonStatusCompleted.Valid())
	require.True(t, LessonStatusCancelled.Valid())
	require.False(t, LessonStatus("pending").Valid())
	require.False(t, LessonStatus("").Valid())
}

func TestLessonStatusTransitions(t *testing.T) {
	cases := []struct {
		from, to LessonStatus
		want     bool
	}{
		{LessonStatusScheduled, LessonStatusCompleted, true},
		{LessonStatusScheduled, LessonStatusCancelled, true},
		{LessonStatusScheduled, LessonStatusScheduled, false},
		{LessonStatusCompleted, LessonStatusScheduled, false},
		{LessonStatusCompleted, LessonStatusCancelled, false},
		{LessonStatusCancelled, LessonStatusScheduled, false},
		{LessonStatusCancelled, LessonStatusCompleted, false},
	}
	for _, tc := range cases {
		require.Equal(t, tc.want, tc.from.CanTransition(tc.to), "%s -> %s", tc.from, tc.to)
	}
}

func TestPaymentStatusTransitions(t *testing.T) {
	cases := []struct {
		from, to PaymentStatus
		want     bool
	}{
		{PaymentStatusPending, PaymentStatusConfirmed, true},
		{PaymentStatusPending, PaymentStatusRefunded, true},
		{PaymentStatusConfirmed, PaymentStatusRefunded, true},
		{PaymentStatusConfirmed, PaymentStatusPending, false},
		{PaymentStatusRefunded, PaymentStatusPending, false},
		{PaymentStatusRefunded, PaymentStatusConfirmed, false},
		{PaymentStatusPending, PaymentStatusPending, false},
	}
	for _, tc := range cases {
		require.Equal(t, tc.want, tc.from.CanTransition(tc.to), "%s -> %s", tc.from, tc.to)
	}
}

func TestParseLessonStatus(t *testing.T) {
	status, err := ParseLessonStatus("scheduled")
	require.NoError(t, err)
	require.Equal(t, LessonStatusScheduled, status)

	_, err = ParseLessonStatus("unknown")
	require.Error(t, err)
}

func TestParsePaymentStatus(t *testing.T) {
	status, err := ParsePaymentStatus("refunded")
	require.NoError(t, err)
	require.Equal(t, PaymentStatusRefunded, status)

	_, err = ParsePaymentStatus("paid")
	require.Error(t, err)
}
