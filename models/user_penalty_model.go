package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UserPenalty struct {
	ID          uuid.UUID  `gorm:"type:uuid;primary_key" json:"id"`
	UserID      uuid.UUID  `gorm:"not null;index" json:"user_id"`
	ActivityID  *uuid.UUID `json:"activity_id"`
	PenaltyType string     `gorm:"size:50;not null" json:"penalty_type"`
	Reason      string     `gorm:"type:text;not null" json:"reason"`
	IssuedBy    uuid.UUID  `gorm:"not null" json:"issued_by"`

	CreatedAt time.Time `json:"created_at"`
}

func (p *UserPenalty) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
