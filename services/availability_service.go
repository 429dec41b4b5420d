package services

import (
	"errors"
	"time"

	"github.com/automatch/portal/database"
	"github.com/automatch/portal/models"
	"github.com/automatch/portal/schedule"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// WindowInput is the caller-facing shape for creating or replacing one
// recurring availability window.
type WindowInput struct {
	DayOfWeek time.Weekday       `json:"day_of_week"`
	StartTime schedule.TimeOfDay `json:"start_time"`
	EndTime   schedule.TimeOfDay `json:"end_time"`
}

func validateWindowInput(in WindowInput) error {
	if in.DayOfWeek < time.Sunday || in.DayOfWeek > time.Saturday {
		return validationErrorf("day of week must be between 0 (Sunday) and 6 (Saturday)")
	}
	if !in.StartTime.Valid() || !in.EndTime.Valid() {
		return validationErrorf("start time and end time are required")
	}
	if in.StartTime >= in.EndTime {
		return validationErrorf("start time must be before end time")
	}
	if !in.StartTime.Aligned() || !in.EndTime.Aligned() {
		return validationErrorf("times must be in 30-minute intervals")
	}
	return nil
}

func validateTimeRange(start, end schedule.TimeOfDay) error {
	if !start.Valid() || !end.Valid() {
		return validationErrorf("start time and end time are required")
	}
	if start >= end {
		return validationErrorf("start time must be before end time")
	}
	return nil
}

// windowsConflict scans live windows for one that overlaps [start, end),
// skipping excludeID so an update never conflicts with itself.
func windowsConflict(windows []models.AvailabilityWindow, start, end schedule.TimeOfDay, excludeID *uuid.UUID) bool {
	for _, w := range windows {
		if excludeID != nil && w.ID == *excludeID {
			continue
		}
		if w.Overlaps(start, end) {
			return true
		}
	}
	return false
}

// batchConflicts cross-checks the candidates of one batch against each other.
// The stored rows are checked separately; without this a batch could smuggle
// two mutually overlapping windows in a single call because neither is
// "existing" while the other is validated.
func batchConflicts(inputs []WindowInput) bool {
	for i := 0; i < len(inputs); i++ {
		for j := i + 1; j < len(inputs); j++ {
			if inputs[i].DayOfWeek != inputs[j].DayOfWeek {
				continue
			}
			if schedule.Overlaps(inputs[i].StartTime, inputs[i].EndTime, inputs[j].StartTime, inputs[j].EndTime) {
				return true
			}
		}
	}
	return false
}

// liveWindowsForUpdate reads the instructor's live windows for one day with
// a row lock, so the check-then-insert below cannot race a concurrent writer
// for the same instructor.
func liveWindowsForUpdate(tx *gorm.DB, instructorID uuid.UUID, day time.Weekday) ([]models.AvailabilityWindow, error) {
	var windows []models.AvailabilityWindow
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("instructor_id = ? AND day_of_week = ? AND deleted_at IS NULL", instructorID, day).
		Find(&windows).Error
	return windows, err
}

func CreateAvailabilityWindow(instructorID uuid.UUID, in WindowInput) (*models.AvailabilityWindow, error) {
	if err := validateWindowInput(in); err != nil {
		return nil, err
	}

	window := models.AvailabilityWindow{
		InstructorID: instructorID,
		DayOfWeek:    in.DayOfWeek,
		StartTime:    in.StartTime,
		EndTime:      in.EndTime,
	}

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		existing, err := liveWindowsForUpdate(tx, instructorID, in.DayOfWeek)
		if err != nil {
			return err
		}
		if windowsConflict(existing, in.StartTime, in.EndTime, nil) {
			return conflictErrorf("schedule overlap detected for instructor")
		}
		return tx.Create(&window).Error
	})
	if err != nil {
		return nil, err
	}
	return &window, nil
}

// CreateAvailabilityWindowBatch validates and stores a set of windows
// all-or-nothing: one bad candidate rejects the whole batch.
func CreateAvailabilityWindowBatch(instructorID uuid.UUID, inputs []WindowInput) ([]models.AvailabilityWindow, error) {
	if len(inputs) == 0 {
		return nil, validationErrorf("availability windows cannot be empty")
	}
	for _, in := range inputs {
		if err := validateWindowInput(in); err != nil {
			return nil, err
		}
	}
	if batchConflicts(inputs) {
		return nil, conflictErrorf("windows within the batch overlap each other")
	}

	windows := make([]models.AvailabilityWindow, 0, len(inputs))
	err := database.DB.Transaction(func(tx *gorm.DB) error {
		for _, in := range inputs {
			existing, err := liveWindowsForUpdate(tx, instructorID, in.DayOfWeek)
			if err != nil {
				return err
			}
			if windowsConflict(existing, in.StartTime, in.EndTime, nil) {
				return conflictErrorf("schedule overlap detected for instructor")
			}
		}
		for _, in := range inputs {
			window := models.AvailabilityWindow{
				InstructorID: instructorID,
				DayOfWeek:    in.DayOfWeek,
				StartTime:    in.StartTime,
				EndTime:      in.EndTime,
			}
			if err := tx.Create(&window).Error; err != nil {
				return err
			}
			windows = append(windows, window)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return windows, nil
}

// GetAvailabilityWindow fetches by id. Soft-deleted rows are invisible unless
// the caller explicitly asks for them.
func GetAvailabilityWindow(id uuid.UUID, includeDeleted bool) (*models.AvailabilityWindow, error) {
	return getWindow(database.DB, id, includeDeleted)
}

func getWindow(tx *gorm.DB, id uuid.UUID, includeDeleted bool) (*models.AvailabilityWindow, error) {
	query := tx.Where("id = ?", id)
	if !includeDeleted {
		query = query.Where("deleted_at IS NULL")
	}

	var window models.AvailabilityWindow
	if err := query.First(&window).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFoundErrorf("availability window %s not found", id)
		}
		return nil, err
	}
	return &window, nil
}

// UpdateAvailabilityWindow fully replaces the window's day and bounds,
// validating against all other live windows of the instructor+day.
func UpdateAvailabilityWindow(id uuid.UUID, in WindowInput) (*models.AvailabilityWindow, error) {
	if err := validateWindowInput(in); err != nil {
		return nil, err
	}

	var window *models.AvailabilityWindow
	err := database.DB.Transaction(func(tx *gorm.DB) error {
		existing, err := getWindow(tx, id, true)
		if err != nil {
			return err
		}
		if existing.DeletedAt != nil {
			return stateErrorf("cannot update a deleted availability window")
		}

		live, err := liveWindowsForUpdate(tx, existing.InstructorID, in.DayOfWeek)
		if err != nil {
			return err
		}
		if windowsConflict(live, in.StartTime, in.EndTime, &id) {
			return conflictErrorf("schedule overlap detected for instructor")
		}

		existing.DayOfWeek = in.DayOfWeek
		existing.StartTime = in.StartTime
		existing.EndTime = in.EndTime
		if err := tx.Save(existing).Error; err != nil {
			return err
		}
		window = existing
		return nil
	})
	if err != nil {
		return nil, err
	}
	return window, nil
}

func DeleteAvailabilityWindow(id uuid.UUID) error {
	window, err := GetAvailabilityWindow(id, true)
	if err != nil {
		return err
	}
	if window.DeletedAt != nil {
		return stateErrorf("availability window is already deleted")
	}

	now := time.Now()
	return database.DB.Model(&models.AvailabilityWindow{}).
		Where("id = ? AND deleted_at IS NULL", id).
		Update("deleted_at", now).Error
}

func RestoreAvailabilityWindow(id uuid.UUID) error {
	window, err := GetAvailabilityWindow(id, true)
	if err != nil {
		return err
	}
	if window.DeletedAt == nil {
		return stateErrorf("availability window is not deleted")
	}

	// Restoring must not reintroduce an overlap created while the row was
	// invisible to the conflict checks.
	return database.DB.Transaction(func(tx *gorm.DB) error {
		live, err := liveWindowsForUpdate(tx, window.InstructorID, window.DayOfWeek)
		if err != nil {
			return err
		}
		if windowsConflict(live, window.StartTime, window.EndTime, &id) {
			return conflictErrorf("restoring this window would overlap an existing one")
		}
		return tx.Model(&models.AvailabilityWindow{}).
			Where("id = ?", id).
			Update("deleted_at", nil).Error
	})
}

func DeleteAllWindowsByInstructor(instructorID uuid.UUID) error {
	result := database.DB.Model(&models.AvailabilityWindow{}).
		Where("instructor_id = ? AND deleted_at IS NULL", instructorID).
		Update("deleted_at", time.Now())
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return notFoundErrorf("no availability windows found for instructor %s", instructorID)
	}
	return nil
}

func DeleteWindowsByInstructorAndDay(instructorID uuid.UUID, day time.Weekday) error {
	result := database.DB.Model(&models.AvailabilityWindow{}).
		Where("instructor_id = ? AND day_of_week = ? AND deleted_at IS NULL", instructorID, day).
		Update("deleted_at", time.Now())
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return notFoundErrorf("no availability windows found for instructor %s on day %d", instructorID, day)
	}
	return nil
}

func ListWindowsByInstructor(instructorID uuid.UUID) ([]models.AvailabilityWindow, error) {
	var windows []models.AvailabilityWindow
	err := database.DB.
		Where("instructor_id = ? AND deleted_at IS NULL", instructorID).
		Order("day_of_week, start_time").
		Find(&windows).Error
	return windows, err
}

func ListWindowsByInstructorAndDay(instructorID uuid.UUID, day time.Weekday) ([]models.AvailabilityWindow, error) {
	var windows []models.AvailabilityWindow
	err := database.DB.
		Where("instructor_id = ? AND day_of_week = ? AND deleted_at IS NULL", instructorID, day).
		Order("start_time").
		Find(&windows).Error
	return windows, err
}

func ListWindowsByDay(day time.Weekday) ([]models.AvailabilityWindow, error) {
	var windows []models.AvailabilityWindow
	err := database.DB.
		Where("day_of_week = ? AND deleted_at IS NULL", day).
		Order("start_time").
		Find(&windows).Error
	return windows, err
}

// HasWindowOverlap is the read-only overlap probe exposed to the API; the
// mutating paths run the same scan inside their own transactions.
func HasWindowOverlap(instructorID uuid.UUID, day time.Weekday, start, end schedule.TimeOfDay, excludeID *uuid.UUID) (bool, error) {
	if err := validateTimeRange(start, end); err != nil {
		return false, err
	}
	var windows []models.AvailabilityWindow
	err := database.DB.
		Where("instructor_id = ? AND day_of_week = ? AND deleted_at IS NULL", instructorID, day).
		Find(&windows).Error
	if err != nil {
		return false, err
	}
	return windowsConflict(windows, start, end, excludeID), nil
}

// CheckAvailability reports whether some live window fully contains
// [start, end). Containment, not overlap: a partial match is not availability.
func CheckAvailability(instructorID uuid.UUID, day time.Weekday, start, end schedule.TimeOfDay) (bool, error) {
	if err := validateTimeRange(start, end); err != nil {
		return false, err
	}
	var count int64
	err := database.DB.Model(&models.AvailabilityWindow{}).
		Where("instructor_id = ? AND day_of_week = ? AND deleted_at IS NULL AND start_time <= ? AND end_time >= ?",
			instructorID, day, start, end).
		Count(&count).Error
	return count > 0, err
}

// FindAvailableInstructors returns the distinct instructors holding a live
// window that contains the requested interval.
func FindAvailableInstructors(day time.Weekday, start, end schedule.TimeOfDay) ([]uuid.UUID, error) {
	if err := validateTimeRange(start, end); err != nil {
		return nil, err
	}
	var ids []uuid.UUID
	err := database.DB.Model(&models.AvailabilityWindow{}).
		Distinct("instructor_id").
		Where("day_of_week = ? AND deleted_at IS NULL AND start_time <= ? AND end_time >= ?", day, start, end).
		Pluck("instructor_id", &ids).Error
	return ids, err
}

// NextAvailableSlot returns the earliest live window by (day, start), with an
// optional day-of-week floor. Nil without error means no window exists.
func NextAvailableSlot(instructorID uuid.UUID, dayFloor *time.Weekday) (*models.AvailabilityWindow, error) {
	query := database.DB.
		Where("instructor_id = ? AND deleted_at IS NULL", instructorID)
	if dayFloor != nil {
		query = query.Where("day_of_week >= ?", *dayFloor)
	}

	var window models.AvailabilityWindow
	err := query.Order("day_of_week, start_time").First(&window).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &window, nil
}

func CountWindowsByInstructor(instructorID uuid.UUID) (int64, error) {
	var count int64
	err := database.DB.Model(&models.AvailabilityWindow{}).
		Where("instructor_id = ? AND deleted_at IS NULL", instructorID).
		Count(&count).Error
	return count, err
}

func CountWindowsByInstructorAndDay(instructorID uuid.UUID, day time.Weekday) (int64, error) {
	var count int64
	err := database.DB.Model(&models.AvailabilityWindow{}).
		Where("instructor_id = ? AND day_of_week = ? AND deleted_at IS NULL", instructorID, day).
		Count(&count).Error
	return count, err
}
