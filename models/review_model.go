package models

import (
	"time"

	"github.com/google/uuid"
)

// Review is one-to-one with a completed lesson: at most one live review per
// lesson id, enforced at write time inside the review transaction (lesson
// row locked) and mirrored by a partial unique index on live rows.
// Soft-deleted reviews keep their lesson id, so a plain unique index on
// lesson_id would not allow re-reviewing after a delete.
type Review struct {
	ID       uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	LessonID uuid.UUID `gorm:"not null;index" json:"lesson_id"`
	Rating   int       `gorm:"not null" json:"rating"`
	Comment  string    `gorm:"type:text" json:"comment"`

	Lesson *Lesson `gorm:"foreignkey:LessonID" json:"lesson,omitempty"`

	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
	DeletedAt *time.Time `gorm:"index" json:"deleted_at,omitempty"`
}
