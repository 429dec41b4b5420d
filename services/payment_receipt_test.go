package services

import (
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/automatch/portal/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

// captureReceiptDispatch swaps the background receipt launcher for a
// recorder so tests can observe when, and for which payment, it fires.
func captureReceiptDispatch(t *testing.T, onDispatch func(uuid.UUID)) *[]uuid.UUID {
	t.Helper()

	prev := receiptDispatch
	var dispatched []uuid.UUID
	receiptDispatch = func(paymentID uuid.UUID) {
		if onDispatch != nil {
			onDispatch(paymentID)
		}
		dispatched = append(dispatched, paymentID)
	}
	t.Cleanup(func() { receiptDispatch = prev })
	return &dispatched
}

func TestConfirmPaymentDispatchesReceiptAfterCommit(t *testing.T) {
	mock := newMockDB(t)

	lesson := completedLesson(uuid.New())
	paymentID := uuid.New()
	method := "card"

	// The worker reads the payment on its own connection, so by the time the
	// dispatch fires every statement, the COMMIT included, must have run.
	dispatched := captureReceiptDispatch(t, func(uuid.UUID) {
		require.NoError(t, mock.ExpectationsWereMet(),
			"receipt dispatched before the confirming transaction committed")
	})

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "lessons"`).
		WillReturnRows(lessonRow(lesson))
	mock.ExpectExec(`UPDATE "lessons" SET`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(`SELECT \* FROM "payments"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectQuery(`INSERT INTO "payments"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(paymentID.String()))
	mock.ExpectCommit()

	updated, err := UpdateLessonPaymentStatus(lesson.ID, models.PaymentStatusConfirmed, &method)
	require.NoError(t, err)
	require.Equal(t, models.PaymentStatusConfirmed, updated.PaymentStatus)
	require.Equal(t, []uuid.UUID{paymentID}, *dispatched)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestConfirmPaymentSkipsReceiptWhenCommitFails(t *testing.T) {
	mock := newMockDB(t)

	lesson := completedLesson(uuid.New())
	dispatched := captureReceiptDispatch(t, nil)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "lessons"`).
		WillReturnRows(lessonRow(lesson))
	mock.ExpectExec(`UPDATE "lessons" SET`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(`SELECT \* FROM "payments"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectQuery(`INSERT INTO "payments"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(uuid.New().String()))
	mock.ExpectCommit().WillReturnError(errors.New("connection reset during commit"))

	_, err := UpdateLessonPaymentStatus(lesson.ID, models.PaymentStatusConfirmed, nil)
	require.Error(t, err)
	require.Empty(t, *dispatched)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestConfirmPaymentRejectsIllegalTransition(t *testing.T) {
	mock := newMockDB(t)

	lesson := completedLesson(uuid.New())
	lesson.PaymentStatus = models.PaymentStatusConfirmed
	dispatched := captureReceiptDispatch(t, nil)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "lessons"`).
		WillReturnRows(lessonRow(lesson))
	mock.ExpectRollback()

	_, err := UpdateLessonPaymentStatus(lesson.ID, models.PaymentStatusConfirmed, nil)
	require.ErrorIs(t, err, ErrState)
	require.Empty(t, *dispatched)
	require.NoError(t, mock.ExpectationsWereMet())
}
