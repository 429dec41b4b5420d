package models

import (
	"time"

	"github.com/google/uuid"
)

type Address struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	Street       string    `gorm:"size:255;not null" json:"street"`
	Number       string    `gorm:"size:20" json:"number"`
	Neighborhood *string   `gorm:"size:100" json:"neighborhood"`
	City         string    `gorm:"size:100;not null" json:"city"`
	State        string    `gorm:"size:100;not null" json:"state"`
	ZipCode      string    `gorm:"size:20;not null" json:"zip_code"`
	Country      string    `gorm:"size:100;not null" json:"country"`

	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
	DeletedAt *time.Time `gorm:"index" json:"deleted_at,omitempty"`
}
