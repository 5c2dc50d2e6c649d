package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	EffectStatusPending    = "pending"
	EffectStatusProcessing = "processing"
	EffectStatusDone       = "done"
	EffectStatusFailed     = "failed"
)

// OutboxEffect is a post-commit side effect written inside the same
// transaction as the state change that caused it. The dispatcher picks up
// pending rows after commit; a cron job retries whatever is left over.
type OutboxEffect struct {
	ID          uuid.UUID  `gorm:"type:uuid;primary_key" json:"id"`
	EffectType  string     `gorm:"size:50;not null;index" json:"effect_type"`
	Payload     []byte     `gorm:"type:jsonb;not null" json:"payload"`
	Status      string     `gorm:"size:20;not null;default:'pending';index" json:"status"`
	Attempts    int        `gorm:"not null;default:0" json:"attempts"`
	LastError   *string    `gorm:"type:text" json:"last_error"`
	CompletedAt *time.Time `json:"completed_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (e *OutboxEffect) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}
