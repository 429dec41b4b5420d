package models

import (
	"time"

	"github.com/google/uuid"
)

// StudentFavorite bookmarks an instructor for a student. One row per
// student+instructor pair; the duplicate check lives in the handler.
type StudentFavorite struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	StudentID    uuid.UUID `gorm:"not null;index" json:"student_id"`
	InstructorID uuid.UUID `gorm:"not null;index" json:"instructor_id"`

	Instructor *Instructor `gorm:"foreignkey:InstructorID" json:"instructor,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}
