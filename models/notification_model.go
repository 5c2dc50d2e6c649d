package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Notification struct {
	ID     uuid.UUID  `gorm:"type:uuid;primary_key" json:"id"`
	UserID uuid.UUID  `gorm:"not null;index" json:"user_id"`
	Type   string     `gorm:"size:50;not null" json:"type"`
	Title  string     `gorm:"size:255;not null" json:"title"`
	Body   string     `gorm:"type:text;not null" json:"body"`
	Link   *string    `gorm:"size:500" json:"link"`
	ReadAt *time.Time `json:"read_at"`

	CreatedAt time.Time `json:"created_at"`
}

func (n *Notification) BeforeCreate(tx *gorm.DB) error {
	if n.ID == uuid.Nil {
		n.ID = uuid.New()
	}
	return nil
}
