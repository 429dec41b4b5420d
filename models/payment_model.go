package models

import (
	"time"

	"github.com/google/uuid"
)

type Payment struct {
	ID       uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	LessonID uuid.UUID `gorm:"not null;index" json:"lesson_id"`
	Amount   float64   `gorm:"type:numeric(10,2);not null" json:"amount"`

	Status        PaymentStatus `gorm:"size:20;not null;default:'pending'" json:"status"`
	PaymentMethod *string       `gorm:"size:30" json:"payment_method"`
	TransactionID *string       `gorm:"size:40;unique" json:"transaction_id"`
	ReceiptURL    *string       `gorm:"size:255" json:"receipt_url"`

	Lesson *Lesson `gorm:"foreignkey:LessonID" json:"lesson,omitempty"`

	PaidAt    *time.Time `json:"paid_at"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
	DeletedAt *time.Time `gorm:"index" json:"deleted_at,omitempty"`
}

