package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Message struct {
	ID          uuid.UUID  `gorm:"type:uuid;primary_key" json:"id"`
	SenderID    uuid.UUID  `gorm:"not null;index" json:"sender_id"`
	RecipientID uuid.UUID  `gorm:"not null;index" json:"recipient_id"`
	Subject     *string    `gorm:"size:255" json:"subject"`
	Body        string     `gorm:"type:text;not null" json:"body"`
	ReadAt      *time.Time `json:"read_at"`

	Sender    User `gorm:"foreignkey:SenderID" json:"sender,omitempty"`
	Recipient User `gorm:"foreignkey:RecipientID" json:"recipient,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}

func (m *Message) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}
