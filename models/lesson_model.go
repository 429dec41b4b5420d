package models

import (
	"time"

	"github.com/automatch/portal/schedule"
	"github.com/google/uuid"
)

// Lesson is one priced booking occupying [ScheduledAt, ScheduledAt+Duration)
// for one instructor. Among live, non-completed lessons of the same
// instructor no two derived intervals may overlap.
type Lesson struct {
	ID           uuid.UUID  `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	InstructorID uuid.UUID  `gorm:"not null;index" json:"instructor_id"`
	StudentID    uuid.UUID  `gorm:"not null;index" json:"student_id"`
	VehicleID    *uuid.UUID `json:"vehicle_id"`
	AddressID    *uuid.UUID `json:"address_id"`

	ScheduledAt     time.Time    `gorm:"not null;index" json:"scheduled_at"`
	DurationMinutes int          `gorm:"not null" json:"duration_minutes"`
	Status          LessonStatus `gorm:"size:20;not null;default:'scheduled'" json:"status"`

	Price         float64       `gorm:"type:numeric(10,2);not null" json:"price"`
	PaymentStatus PaymentStatus `gorm:"size:20;not null;default:'pending'" json:"payment_status"`
	PaymentMethod *string       `gorm:"size:30" json:"payment_method"`

	Instructor *Instructor `gorm:"foreignkey:InstructorID" json:"instructor,omitempty"`
	Student    *User       `gorm:"foreignkey:StudentID" json:"student,omitempty"`
	Vehicle    *Vehicle    `gorm:"foreignkey:VehicleID" json:"vehicle,omitempty"`
	Address    *Address    `gorm:"foreignkey:AddressID" json:"address,omitempty"`

	CompletedAt *time.Time `json:"completed_at"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	DeletedAt   *time.Time `gorm:"index" json:"deleted_at,omitempty"`
}

// EndsAt is the exclusive end of the occupied interval.
func (l Lesson) EndsAt() time.Time {
	return schedule.LessonEnd(l.ScheduledAt, l.DurationMinutes)
}

// OverlapsInterval applies the half-open predicate against [start, end).
func (l Lesson) OverlapsInterval(start, end time.Time) bool {
	return schedule.OverlapsAt(l.ScheduledAt, l.EndsAt(), start, end)
}
