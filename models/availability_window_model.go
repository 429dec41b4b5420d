package models

import (
	"time"

	"github.com/automatch/portal/schedule"
	"github.com/google/uuid"
)

// AvailabilityWindow is one recurring weekly slot in an instructor's
// schedule: a day of week plus wall-clock bounds, no date. Among live windows
// of one instructor+day no two may overlap (half-open).
type AvailabilityWindow struct {
	ID           uuid.UUID         `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	InstructorID uuid.UUID         `gorm:"not null;index" json:"instructor_id"`
	DayOfWeek    time.Weekday      `gorm:"type:smallint;not null" json:"day_of_week"`
	StartTime    schedule.TimeOfDay `gorm:"not null" json:"start_time"`
	EndTime      schedule.TimeOfDay `gorm:"not null" json:"end_time"`

	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
	DeletedAt *time.Time `gorm:"index" json:"deleted_at,omitempty"`
}

// Overlaps applies the half-open predicate against a candidate interval on
// the same day axis.
func (w AvailabilityWindow) Overlaps(start, end schedule.TimeOfDay) bool {
	return schedule.Overlaps(w.StartTime, w.EndTime, start, end)
}

// Contains reports whether the window fully encloses [start, end).
func (w AvailabilityWindow) Contains(start, end schedule.TimeOfDay) bool {
	return schedule.Contains(w.StartTime, w.EndTime, start, end)
}
