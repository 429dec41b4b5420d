package models

import (
	"time"

	"github.com/google/uuid"
)

// Instructor extends a User row with marketplace profile data. AverageRating
// and TotalReviews are a materialized view over live reviews on this
// instructor's lessons; they are never written directly by callers, only by
// the rating aggregation paths.
type Instructor struct {
	UserID          uuid.UUID `gorm:"primary_key" json:"user_id"`
	HourlyRate      float64   `gorm:"type:numeric(10,2);not null" json:"hourly_rate"`
	Bio             *string   `gorm:"type:text" json:"bio"`
	YearsExperience int       `gorm:"not null;default:0" json:"years_experience"`
	IsVerified      bool      `gorm:"not null;default:false" json:"is_verified"`

	AverageRating float64 `gorm:"type:numeric(3,2);not null;default:0" json:"average_rating"`
	TotalReviews  int     `gorm:"not null;default:0" json:"total_reviews"`

	User User `gorm:"foreignkey:UserID" json:"user,omitempty"`

	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
	DeletedAt *time.Time `gorm:"index" json:"deleted_at,omitempty"`
}

// InstructorLicenseType links an instructor to the license categories they
// may teach (classifier type "license_type").
type InstructorLicenseType struct {
	ID            uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	InstructorID  uuid.UUID `gorm:"not null;index" json:"instructor_id"`
	LicenseTypeID int       `gorm:"not null" json:"license_type_id"`

	LicenseType Classifier `gorm:"foreignkey:LicenseTypeID" json:"license_type,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}
