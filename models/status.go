package models

import "fmt"

// Closed status enumerations. The legacy schema kept these as bare classifier
// ids scattered through conditionals; here every dimension is a named variant
// set and every transition goes through CanTransition, which rejects illegal
// moves instead of silently writing whatever integer arrived.

type LessonStatus string

const (
	LessonStatusScheduled LessonStatus = "scheduled"
	LessonStatusCompleted LessonStatus = "completed"
	LessonStatusCancelled LessonStatus = "cancelled"
)

func (s LessonStatus) Valid() bool {
	switch s {
	case LessonStatusScheduled, LessonStatusCompleted, LessonStatusCancelled:
		return true
	}
	return false
}

// CanTransition reports whether a lesson may move from s to next. Completed
// and Cancelled are terminal.
func (s LessonStatus) CanTransition(next LessonStatus) bool {
	if s == next {
		return false
	}
	switch s {
	case LessonStatusScheduled:
		return next == LessonStatusCompleted || next == LessonStatusCancelled
	default:
		return false
	}
}

type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "pending"
	PaymentStatusConfirmed PaymentStatus = "confirmed"
	PaymentStatusRefunded  PaymentStatus = "refunded"
)

func (s PaymentStatus) Valid() bool {
	switch s {
	case PaymentStatusPending, PaymentStatusConfirmed, PaymentStatusRefunded:
		return true
	}
	return false
}

func (s PaymentStatus) CanTransition(next PaymentStatus) bool {
	if s == next {
		return false
	}
	switch s {
	case PaymentStatusPending:
		return next == PaymentStatusConfirmed || next == PaymentStatusRefunded
	case PaymentStatusConfirmed:
		return next == PaymentStatusRefunded
	default:
		return false
	}
}

func ParseLessonStatus(s string) (LessonStatus, error) {
	status := LessonStatus(s)
	if !status.Valid() {
		return "", fmt.Errorf("unknown lesson status %q", s)
	}
	return status, nil
}

func ParsePaymentStatus(s string) (PaymentStatus, error) {
	status := PaymentStatus(s)
	if !status.Valid() {
		return "", fmt.Errorf("unknown payment status %q", s)
	}
	return status, nil
}
