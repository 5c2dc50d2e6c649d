package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AdminLog struct {
	ID         uuid.UUID  `gorm:"type:uuid;primary_key" json:"id"`
	AdminID    uuid.UUID  `gorm:"not null;index" json:"admin_id"`
	Action     string     `gorm:"size:100;not null" json:"action"`
	EntityType string     `gorm:"size:50" json:"entity_type"`
	EntityID   *uuid.UUID `json:"entity_id"`
	Detail     string     `gorm:"type:text" json:"detail"`

	CreatedAt time.Time `json:"created_at"`
}

func (l *AdminLog) BeforeCreate(tx *gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return nil
}
