package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ChatbotFAQ struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Question  string    `gorm:"type:text;not null" json:"question"`
	Answer    string    `gorm:"type:text;not null" json:"answer"`
	Category  string    `gorm:"size:100" json:"category"`
	Keywords  string    `gorm:"type:text" json:"keywords"`
	IsActive  bool      `json:"is_active"`
	SortOrder int       `gorm:"default:0" json:"sort_order"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (ChatbotFAQ) TableName() string {
	return "chatbot_faq"
}

func (f *ChatbotFAQ) BeforeCreate(tx *gorm.DB) error {
	if f.ID == uuid.Nil {
		f.ID = uuid.New()
	}
	return nil
}

// ChatbotUnanswered logs questions the chatbot could not match against the
// FAQ base. Admins promote useful ones into ChatbotFAQ entries.
type ChatbotUnanswered struct {
	ID         uuid.UUID  `gorm:"type:uuid;primary_key" json:"id"`
	UserID     *uuid.UUID `json:"user_id"`
	Question   string     `gorm:"type:text;not null" json:"question"`
	AskedCount int        `gorm:"default:1" json:"asked_count"`
	Resolved   bool       `gorm:"default:false" json:"resolved"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (ChatbotUnanswered) TableName() string {
	return "chatbot_unanswered"
}

func (u *ChatbotUnanswered) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}
