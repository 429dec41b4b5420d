package services

import (
	"errors"
	"time"

	"github.com/automatch/portal/database"
	"github.com/automatch/portal/models"
	"github.com/automatch/portal/schedule"
	"github.com/automatch/portal/utils"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const minLessonMinutes = 30

// LessonInput is the caller-facing shape for booking a lesson.
type LessonInput struct {
	InstructorID    uuid.UUID  `json:"instructor_id"`
	StudentID       uuid.UUID  `json:"student_id"`
	VehicleID       *uuid.UUID `json:"vehicle_id"`
	AddressID       *uuid.UUID `json:"address_id"`
	ScheduledAt     time.Time  `json:"scheduled_at"`
	DurationMinutes int        `json:"duration_minutes"`
	Price           float64    `json:"price"`
}

func validateLessonInput(in LessonInput) error {
	if in.InstructorID == uuid.Nil || in.StudentID == uuid.Nil {
		return validationErrorf("instructor and student are required")
	}
	if in.ScheduledAt.IsZero() {
		return validationErrorf("scheduled time is required")
	}
	if in.DurationMinutes < minLessonMinutes {
		return validationErrorf("lesson duration must be at least %d minutes", minLessonMinutes)
	}
	if in.Price < 0 {
		return validationErrorf("price cannot be negative")
	}
	return nil
}

// lessonsConflict scans live, non-completed lessons for one whose derived
// half-open interval overlaps [start, end), skipping excludeID.
func lessonsConflict(lessons []models.Lesson, start, end time.Time, excludeID *uuid.UUID) bool {
	for _, l := range lessons {
		if excludeID != nil && l.ID == *excludeID {
			continue
		}
		if l.OverlapsInterval(start, end) {
			return true
		}
	}
	return false
}

// liveOpenLessonsForUpdate locks the instructor's live, non-completed lessons
// so a conflict check cannot race a concurrent booking against the same gap.
func liveOpenLessonsForUpdate(tx *gorm.DB, instructorID uuid.UUID) ([]models.Lesson, error) {
	var lessons []models.Lesson
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("instructor_id = ? AND deleted_at IS NULL AND completed_at IS NULL", instructorID).
		Find(&lessons).Error
	return lessons, err
}

func CreateLesson(in LessonInput) (*models.Lesson, error) {
	if err := validateLessonInput(in); err != nil {
		return nil, err
	}
	if in.ScheduledAt.Before(time.Now()) {
		return nil, validationErrorf("cannot schedule a lesson in the past")
	}

	lesson := models.Lesson{
		InstructorID:    in.InstructorID,
		StudentID:       in.StudentID,
		VehicleID:       in.VehicleID,
		AddressID:       in.AddressID,
		ScheduledAt:     in.ScheduledAt,
		DurationMinutes: in.DurationMinutes,
		Price:           in.Price,
		Status:          models.LessonStatusScheduled,
		PaymentStatus:   models.PaymentStatusPending,
	}

	end := schedule.LessonEnd(in.ScheduledAt, in.DurationMinutes)
	err := database.DB.Transaction(func(tx *gorm.DB) error {
		existing, err := liveOpenLessonsForUpdate(tx, in.InstructorID)
		if err != nil {
			return err
		}
		if lessonsConflict(existing, in.ScheduledAt, end, nil) {
			return conflictErrorf("schedule conflict detected for instructor")
		}
		return tx.Create(&lesson).Error
	})
	if err != nil {
		return nil, err
	}
	return &lesson, nil
}

func GetLesson(id uuid.UUID, includeDeleted bool) (*models.Lesson, error) {
	return getLesson(database.DB, id, includeDeleted)
}

func getLesson(tx *gorm.DB, id uuid.UUID, includeDeleted bool) (*models.Lesson, error) {
	query := tx.Where("id = ?", id)
	if !includeDeleted {
		query = query.Where("deleted_at IS NULL")
	}

	var lesson models.Lesson
	if err := query.First(&lesson).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFoundErrorf("lesson %s not found", id)
		}
		return nil, err
	}
	return &lesson, nil
}

// GetLessonDetail hydrates the foreign keys for a single-lesson read.
func GetLessonDetail(id uuid.UUID) (*models.Lesson, error) {
	var lesson models.Lesson
	err := database.DB.
		Preload("Instructor.User").
		Preload("Student").
		Preload("Vehicle").
		Preload("Address").
		Where("id = ? AND deleted_at IS NULL", id).
		First(&lesson).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFoundErrorf("lesson %s not found", id)
		}
		return nil, err
	}
	return &lesson, nil
}

// HasScheduleConflict is the read-only double-booking probe for the API.
func HasScheduleConflict(instructorID uuid.UUID, start time.Time, durationMinutes int, excludeLessonID *uuid.UUID) (bool, error) {
	if durationMinutes <= 0 {
		return false, validationErrorf("duration must be positive")
	}
	var lessons []models.Lesson
	err := database.DB.
		Where("instructor_id = ? AND deleted_at IS NULL AND completed_at IS NULL", instructorID).
		Find(&lessons).Error
	if err != nil {
		return false, err
	}
	end := schedule.LessonEnd(start, durationMinutes)
	return lessonsConflict(lessons, start, end, excludeLessonID), nil
}

// CompleteLesson marks a lesson done. Completion is terminal, allowed only
// once the scheduled time has passed.
func CompleteLesson(id uuid.UUID) (*models.Lesson, error) {
	var lesson *models.Lesson
	err := database.DB.Transaction(func(tx *gorm.DB) error {
		existing, err := getLesson(tx, id, true)
		if err != nil {
			return err
		}
		if existing.DeletedAt != nil {
			return stateErrorf("cannot complete a deleted lesson")
		}
		if existing.CompletedAt != nil {
			return stateErrorf("lesson is already completed")
		}
		if !existing.Status.CanTransition(models.LessonStatusCompleted) {
			return stateErrorf("lesson in status %q cannot be completed", existing.Status)
		}
		if existing.ScheduledAt.After(time.Now()) {
			return stateErrorf("cannot complete a lesson that has not happened yet")
		}

		now := time.Now()
		existing.CompletedAt = &now
		existing.Status = models.LessonStatusCompleted
		if err := tx.Save(existing).Error; err != nil {
			return err
		}
		lesson = existing
		return nil
	})
	if err != nil {
		return nil, err
	}
	return lesson, nil
}

// CancelLesson is allowed only while the lesson is still in the future.
func CancelLesson(id uuid.UUID) (*models.Lesson, error) {
	var lesson *models.Lesson
	err := database.DB.Transaction(func(tx *gorm.DB) error {
		existing, err := getLesson(tx, id, true)
		if err != nil {
			return err
		}
		if existing.DeletedAt != nil {
			return stateErrorf("cannot cancel a deleted lesson")
		}
		if existing.CompletedAt != nil {
			return stateErrorf("cannot cancel a completed lesson")
		}
		if !existing.Status.CanTransition(models.LessonStatusCancelled) {
			return stateErrorf("lesson in status %q cannot be cancelled", existing.Status)
		}
		if existing.ScheduledAt.Before(time.Now()) {
			return stateErrorf("cannot cancel a lesson that has already started")
		}

		existing.Status = models.LessonStatusCancelled
		if err := tx.Save(existing).Error; err != nil {
			return err
		}
		lesson = existing
		return nil
	})
	if err != nil {
		return nil, err
	}
	return lesson, nil
}

// RescheduleLesson moves a scheduled lesson to a new start time, re-running
// the conflict check for the new interval with the lesson itself excluded.
func RescheduleLesson(id uuid.UUID, newStart time.Time) (*models.Lesson, error) {
	if newStart.Before(time.Now()) {
		return nil, validationErrorf("cannot reschedule to a past time")
	}

	var lesson *models.Lesson
	err := database.DB.Transaction(func(tx *gorm.DB) error {
		existing, err := getLesson(tx, id, true)
		if err != nil {
			return err
		}
		if existing.DeletedAt != nil {
			return stateErrorf("cannot reschedule a deleted lesson")
		}
		if existing.CompletedAt != nil {
			return stateErrorf("cannot reschedule a completed lesson")
		}
		if existing.Status != models.LessonStatusScheduled {
			return stateErrorf("lesson in status %q cannot be rescheduled", existing.Status)
		}

		open, err := liveOpenLessonsForUpdate(tx, existing.InstructorID)
		if err != nil {
			return err
		}
		newEnd := schedule.LessonEnd(newStart, existing.DurationMinutes)
		if lessonsConflict(open, newStart, newEnd, &id) {
			return conflictErrorf("schedule conflict detected for the new time")
		}

		existing.ScheduledAt = newStart
		if err := tx.Save(existing).Error; err != nil {
			return err
		}
		lesson = existing
		return nil
	})
	if err != nil {
		return nil, err
	}
	return lesson, nil
}

// LessonUpdate carries the fields a booking may change after creation. Nil
// pointers leave the stored value untouched.
type LessonUpdate struct {
	VehicleID       *uuid.UUID `json:"vehicle_id"`
	AddressID       *uuid.UUID `json:"address_id"`
	ScheduledAt     *time.Time `json:"scheduled_at"`
	DurationMinutes *int       `json:"duration_minutes"`
	Price           *float64   `json:"price"`
}

// UpdateLesson applies a partial update. Interval changes re-run the conflict
// check against the instructor's other open lessons.
func UpdateLesson(id uuid.UUID, in LessonUpdate) (*models.Lesson, error) {
	if in.DurationMinutes != nil && *in.DurationMinutes < minLessonMinutes {
		return nil, validationErrorf("lesson duration must be at least %d minutes", minLessonMinutes)
	}
	if in.Price != nil && *in.Price < 0 {
		return nil, validationErrorf("price cannot be negative")
	}

	var lesson *models.Lesson
	err := database.DB.Transaction(func(tx *gorm.DB) error {
		existing, err := getLesson(tx, id, true)
		if err != nil {
			return err
		}
		if existing.DeletedAt != nil {
			return stateErrorf("cannot update a deleted lesson")
		}
		if existing.CompletedAt != nil {
			return stateErrorf("cannot update a completed lesson")
		}
		if existing.Status != models.LessonStatusScheduled {
			return stateErrorf("lesson in status %q cannot be updated", existing.Status)
		}

		start := existing.ScheduledAt
		duration := existing.DurationMinutes
		if in.ScheduledAt != nil {
			start = *in.ScheduledAt
		}
		if in.DurationMinutes != nil {
			duration = *in.DurationMinutes
		}
		if !start.Equal(existing.ScheduledAt) || duration != existing.DurationMinutes {
			if start.Before(time.Now()) {
				return validationErrorf("cannot move a lesson into the past")
			}
			open, err := liveOpenLessonsForUpdate(tx, existing.InstructorID)
			if err != nil {
				return err
			}
			if lessonsConflict(open, start, schedule.LessonEnd(start, duration), &id) {
				return conflictErrorf("schedule conflict detected for the new time")
			}
			existing.ScheduledAt = start
			existing.DurationMinutes = duration
		}

		if in.VehicleID != nil {
			existing.VehicleID = in.VehicleID
		}
		if in.AddressID != nil {
			existing.AddressID = in.AddressID
		}
		if in.Price != nil {
			existing.Price = *in.Price
		}

		if err := tx.Save(existing).Error; err != nil {
			return err
		}
		lesson = existing
		return nil
	})
	if err != nil {
		return nil, err
	}
	return lesson, nil
}

// UpdateLessonPaymentStatus moves the payment dimension through its closed
// transition table. Confirming a payment records a payment row and kicks off
// receipt generation.
func UpdateLessonPaymentStatus(id uuid.UUID, next models.PaymentStatus, method *string) (*models.Lesson, error) {
	if !next.Valid() {
		return nil, validationErrorf("unknown payment status %q", next)
	}

	var lesson *models.Lesson
	var receiptPaymentID uuid.UUID
	err := database.DB.Transaction(func(tx *gorm.DB) error {
		existing, err := getLesson(tx, id, true)
		if err != nil {
			return err
		}
		if existing.DeletedAt != nil {
			return stateErrorf("cannot update payment status of a deleted lesson")
		}
		if !existing.PaymentStatus.CanTransition(next) {
			return stateErrorf("payment status %q cannot move to %q", existing.PaymentStatus, next)
		}

		existing.PaymentStatus = next
		if method != nil {
			existing.PaymentMethod = method
		}
		if err := tx.Save(existing).Error; err != nil {
			return err
		}

		if next == models.PaymentStatusConfirmed {
			reference, err := utils.GenerateTransactionReference(tx)
			if err != nil {
				return err
			}
			now := time.Now()
			payment := models.Payment{
				LessonID:      existing.ID,
				Amount:        existing.Price,
				Status:        models.PaymentStatusConfirmed,
				PaymentMethod: existing.PaymentMethod,
				TransactionID: &reference,
				PaidAt:        &now,
			}
			if err := tx.Create(&payment).Error; err != nil {
				return err
			}
			receiptPaymentID = payment.ID
		}

		lesson = existing
		return nil
	})
	if err != nil {
		return nil, err
	}

	// The receipt worker reads the payment through a separate connection, so
	// it must not start until the row is committed.
	if receiptPaymentID != uuid.Nil {
		receiptDispatch(receiptPaymentID)
	}
	return lesson, nil
}

// DeleteLesson soft-deletes; completed lessons are immutable history and
// cannot be deleted.
func DeleteLesson(id uuid.UUID) error {
	lesson, err := GetLesson(id, true)
	if err != nil {
		return err
	}
	if lesson.DeletedAt != nil {
		return stateErrorf("lesson is already deleted")
	}
	if lesson.CompletedAt != nil {
		return stateErrorf("cannot delete a completed lesson")
	}

	return database.DB.Model(&models.Lesson{}).
		Where("id = ? AND deleted_at IS NULL", id).
		Update("deleted_at", time.Now()).Error
}

func RestoreLesson(id uuid.UUID) error {
	lesson, err := GetLesson(id, true)
	if err != nil {
		return err
	}
	if lesson.DeletedAt == nil {
		return stateErrorf("lesson is not deleted")
	}

	// A restored open lesson re-enters the conflict set, so it must not
	// collide with bookings made while it was deleted.
	return database.DB.Transaction(func(tx *gorm.DB) error {
		if lesson.CompletedAt == nil {
			open, err := liveOpenLessonsForUpdate(tx, lesson.InstructorID)
			if err != nil {
				return err
			}
			if lessonsConflict(open, lesson.ScheduledAt, lesson.EndsAt(), &id) {
				return conflictErrorf("restoring this lesson would double-book the instructor")
			}
		}
		return tx.Model(&models.Lesson{}).
			Where("id = ?", id).
			Update("deleted_at", nil).Error
	})
}

func ListLessonsByInstructor(instructorID uuid.UUID) ([]models.Lesson, error) {
	var lessons []models.Lesson
	err := database.DB.
		Where("instructor_id = ? AND deleted_at IS NULL", instructorID).
		Order("scheduled_at desc").
		Find(&lessons).Error
	return lessons, err
}

func ListLessonsByStudent(studentID uuid.UUID) ([]models.Lesson, error) {
	var lessons []models.Lesson
	err := database.DB.
		Where("student_id = ? AND deleted_at IS NULL", studentID).
		Order("scheduled_at desc").
		Find(&lessons).Error
	return lessons, err
}

func ListLessonsByVehicle(vehicleID uuid.UUID) ([]models.Lesson, error) {
	var lessons []models.Lesson
	err := database.DB.
		Where("vehicle_id = ? AND deleted_at IS NULL", vehicleID).
		Order("scheduled_at desc").
		Find(&lessons).Error
	return lessons, err
}

func ListLessonsByStatus(status models.LessonStatus) ([]models.Lesson, error) {
	if !status.Valid() {
		return nil, validationErrorf("unknown lesson status %q", status)
	}
	var lessons []models.Lesson
	err := database.DB.
		Where("status = ? AND deleted_at IS NULL", status).
		Order("scheduled_at desc").
		Find(&lessons).Error
	return lessons, err
}

func ListLessonsByPaymentStatus(status models.PaymentStatus) ([]models.Lesson, error) {
	if !status.Valid() {
		return nil, validationErrorf("unknown payment status %q", status)
	}
	var lessons []models.Lesson
	err := database.DB.
		Where("payment_status = ? AND deleted_at IS NULL", status).
		Order("scheduled_at desc").
		Find(&lessons).Error
	return lessons, err
}

func ListUpcomingLessons() ([]models.Lesson, error) {
	var lessons []models.Lesson
	err := database.DB.
		Where("deleted_at IS NULL AND completed_at IS NULL AND status = ? AND scheduled_at > ?",
			models.LessonStatusScheduled, time.Now()).
		Order("scheduled_at").
		Find(&lessons).Error
	return lessons, err
}

func ListLessonsByDateRange(instructorID *uuid.UUID, from, to time.Time) ([]models.Lesson, error) {
	if !from.Before(to) {
		return nil, validationErrorf("range start must be before range end")
	}
	query := database.DB.
		Where("deleted_at IS NULL AND scheduled_at >= ? AND scheduled_at <= ?", from, to)
	if instructorID != nil {
		query = query.Where("instructor_id = ?", *instructorID)
	}

	var lessons []models.Lesson
	err := query.Order("scheduled_at").Find(&lessons).Error
	return lessons, err
}

// InstructorLessonStats aggregates an instructor's lesson counts and revenue
// (confirmed-payment lessons only).
type InstructorLessonStats struct {
	TotalLessons     int64   `json:"total_lessons"`
	CompletedLessons int64   `json:"completed_lessons"`
	ScheduledLessons int64   `json:"scheduled_lessons"`
	CancelledLessons int64   `json:"cancelled_lessons"`
	TotalRevenue     float64 `json:"total_revenue"`
}

func GetInstructorLessonStats(instructorID uuid.UUID) (*InstructorLessonStats, error) {
	var stats InstructorLessonStats
	base := database.DB.Model(&models.Lesson{}).
		Where("instructor_id = ? AND deleted_at IS NULL", instructorID)

	if err := base.Session(&gorm.Session{}).Count(&stats.TotalLessons).Error; err != nil {
		return nil, err
	}
	if err := base.Session(&gorm.Session{}).Where("completed_at IS NOT NULL").Count(&stats.CompletedLessons).Error; err != nil {
		return nil, err
	}
	if err := base.Session(&gorm.Session{}).
		Where("completed_at IS NULL AND status = ? AND scheduled_at > ?", models.LessonStatusScheduled, time.Now()).
		Count(&stats.ScheduledLessons).Error; err != nil {
		return nil, err
	}
	if err := base.Session(&gorm.Session{}).Where("status = ?", models.LessonStatusCancelled).Count(&stats.CancelledLessons).Error; err != nil {
		return nil, err
	}

	var revenue struct{ Total float64 }
	err := database.DB.Model(&models.Lesson{}).
		Select("COALESCE(SUM(price), 0) as total").
		Where("instructor_id = ? AND deleted_at IS NULL AND payment_status = ?", instructorID, models.PaymentStatusConfirmed).
		Scan(&revenue).Error
	if err != nil {
		return nil, err
	}
	stats.TotalRevenue = revenue.Total
	return &stats, nil
}

// StudentLessonStats aggregates a student's lesson counts and total spend
// (confirmed-payment lessons only).
type StudentLessonStats struct {
	TotalLessons     int64   `json:"total_lessons"`
	CompletedLessons int64   `json:"completed_lessons"`
	UpcomingLessons  int64   `json:"upcoming_lessons"`
	TotalSpent       float64 `json:"total_spent"`
}

func GetStudentLessonStats(studentID uuid.UUID) (*StudentLessonStats, error) {
	var stats StudentLessonStats
	base := database.DB.Model(&models.Lesson{}).
		Where("student_id = ? AND deleted_at IS NULL", studentID)

	if err := base.Session(&gorm.Session{}).Count(&stats.TotalLessons).Error; err != nil {
		return nil, err
	}
	if err := base.Session(&gorm.Session{}).Where("completed_at IS NOT NULL").Count(&stats.CompletedLessons).Error; err != nil {
		return nil, err
	}
	if err := base.Session(&gorm.Session{}).
		Where("completed_at IS NULL AND status = ? AND scheduled_at > ?", models.LessonStatusScheduled, time.Now()).
		Count(&stats.UpcomingLessons).Error; err != nil {
		return nil, err
	}

	var spent struct{ Total float64 }
	err := database.DB.Model(&models.Lesson{}).
		Select("COALESCE(SUM(price), 0) as total").
		Where("student_id = ? AND deleted_at IS NULL AND payment_status = ?", studentID, models.PaymentStatusConfirmed).
		Scan(&spent).Error
	if err != nil {
		return nil, err
	}
	stats.TotalSpent = spent.Total
	return &stats, nil
}
