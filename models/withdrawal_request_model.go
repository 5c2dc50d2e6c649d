package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	WithdrawalStatusPending   = "pending"
	WithdrawalStatusApproved  = "approved"
	WithdrawalStatusCompleted = "completed"
	WithdrawalStatusRejected  = "rejected"
)

type WithdrawalRequest struct {
	ID                  uuid.UUID  `gorm:"type:uuid;primary_key" json:"id"`
	UserID              uuid.UUID  `gorm:"not null;index" json:"user_id"`
	Amount              float64    `gorm:"type:numeric(12,2);not null" json:"amount"`
	PaymentMethod       string     `gorm:"size:50;not null" json:"payment_method"`
	PaymentDetails      string     `gorm:"type:text" json:"payment_details"`
	Status              string     `gorm:"size:20;not null;default:'pending';index" json:"status"`
	AdminNote           *string    `gorm:"type:text" json:"admin_note"`
	ProcessedBy         *uuid.UUID `json:"processed_by"`
	ProcessedAt         *time.Time `json:"processed_at"`
	WalletTransactionID *uuid.UUID `json:"wallet_transaction_id"`

	User User `gorm:"foreignkey:UserID" json:"user,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (w *WithdrawalRequest) BeforeCreate(tx *gorm.DB) error {
	if w.ID == uuid.Nil {
		w.ID = uuid.New()
	}
	return nil
}
