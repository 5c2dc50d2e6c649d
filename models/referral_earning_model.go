package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ReferralEarning records a per-task referral commission. The unique index on
// (task_id, from_user_id) is what makes the commission idempotent: a second
// attempt for the same task fails at the database instead of double-crediting.
type ReferralEarning struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	ReferrerID uuid.UUID `gorm:"not null;index" json:"referrer_id"`
	FromUserID uuid.UUID `gorm:"not null;uniqueIndex:idx_referral_earning_task_user" json:"from_user_id"`
	TaskID     uuid.UUID `gorm:"not null;uniqueIndex:idx_referral_earning_task_user" json:"task_id"`
	Amount     float64   `gorm:"type:numeric(12,2);not null" json:"amount"`

	CreatedAt time.Time `json:"created_at"`
}

func (e *ReferralEarning) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}
