package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	TxnTypeCredit     = "credit"
	TxnTypeDebit      = "debit"
	TxnTypeWithdrawal = "withdrawal"
	TxnTypeBonus      = "bonus"
	TxnTypeReferral   = "referral"

	TxnStatusPending   = "pending"
	TxnStatusCompleted = "completed"
	TxnStatusFailed    = "failed"
)

// WalletTransaction is the append-only ledger. Rows are never updated except
// for the status of a pending withdrawal hold.
type WalletTransaction struct {
	ID            uuid.UUID  `gorm:"type:uuid;primary_key" json:"id"`
	UserID        uuid.UUID  `gorm:"not null;index" json:"user_id"`
	Type          string     `gorm:"size:20;not null" json:"type"`
	Amount        float64    `gorm:"type:numeric(12,2);not null" json:"amount"`
	BalanceAfter  float64    `gorm:"type:numeric(12,2);not null" json:"balance_after"`
	Description   string     `gorm:"size:500" json:"description"`
	ReferenceID   *uuid.UUID `json:"reference_id"`
	ReferenceType *string    `gorm:"size:50" json:"reference_type"`
	Status        string     `gorm:"size:20;not null;default:'completed'" json:"status"`

	CreatedAt time.Time `json:"created_at"`
}

func (t *WalletTransaction) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}
