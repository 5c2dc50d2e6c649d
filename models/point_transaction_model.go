package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PointTransaction is the gamification ledger. The unique index on
// (user_id, task_id, reason) blocks a double award for the same task.
type PointTransaction struct {
	ID     uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	UserID uuid.UUID `gorm:"not null;uniqueIndex:idx_point_txn_user_task_reason" json:"user_id"`
	TaskID uuid.UUID `gorm:"not null;uniqueIndex:idx_point_txn_user_task_reason" json:"task_id"`
	Reason string    `gorm:"size:50;not null;uniqueIndex:idx_point_txn_user_task_reason" json:"reason"`
	Points int       `gorm:"not null" json:"points"`

	CreatedAt time.Time `json:"created_at"`
}

func (p *PointTransaction) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
