package models

import (
	"time"

	"github.com/google/uuid"
)

// Document is an identity or license document attached to a user, verified by
// an admin. DocumentNumber must be unique among live documents.
type Document struct {
	ID               uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	UserID           uuid.UUID `gorm:"not null;index" json:"user_id"`
	DocumentTypeID   int       `gorm:"not null" json:"document_type_id"`
	DocumentNumber   string    `gorm:"size:100;not null" json:"document_number"`
	DocumentImageURL *string   `gorm:"size:255" json:"document_image_url"`

	IssueDate  *time.Time `json:"issue_date"`
	ExpiryDate *time.Time `json:"expiry_date"`

	IsVerified        bool       `gorm:"not null;default:false" json:"is_verified"`
	VerifiedByUserID  *uuid.UUID `json:"verified_by_user_id"`
	VerifiedAt        *time.Time `json:"verified_at"`
	VerificationNotes *string    `gorm:"type:text" json:"verification_notes"`

	DocumentType *Classifier `gorm:"foreignkey:DocumentTypeID" json:"document_type,omitempty"`

	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
	DeletedAt *time.Time `gorm:"index" json:"deleted_at,omitempty"`
}
