package models

import (
	"time"

	"github.com/google/uuid"
)

type Vehicle struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	InstructorID uuid.UUID `gorm:"not null;index" json:"instructor_id"`
	LicensePlate string    `gorm:"size:20;not null" json:"license_plate"`
	Brand        string    `gorm:"size:100;not null" json:"brand"`
	Model        string    `gorm:"size:100;not null" json:"model"`
	Year         int       `gorm:"not null" json:"year"`
	Color        *string   `gorm:"size:50" json:"color"`

	VehicleImageURL    *string `gorm:"size:255" json:"vehicle_image_url"`
	TransmissionTypeID *int    `json:"transmission_type_id"`
	CategoryID         *int    `json:"category_id"`

	HasDualControls     bool `gorm:"not null;default:true" json:"has_dual_controls"`
	HasAirConditioning  bool `gorm:"not null;default:true" json:"has_air_conditioning"`
	IsApproved          bool `gorm:"not null;default:false" json:"is_approved"`
	IsAvailable         bool `gorm:"not null;default:true" json:"is_available"`

	LastMaintenanceDate *time.Time `json:"last_maintenance_date"`

	TransmissionType *Classifier `gorm:"foreignkey:TransmissionTypeID" json:"transmission_type,omitempty"`
	Category         *Classifier `gorm:"foreignkey:CategoryID" json:"category,omitempty"`

	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
	DeletedAt *time.Time `gorm:"index" json:"deleted_at,omitempty"`
}
