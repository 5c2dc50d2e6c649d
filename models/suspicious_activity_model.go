package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	ActivityStatusPending   = "pending"
	ActivityStatusReviewed  = "reviewed"
	ActivityStatusDismissed = "dismissed"
	ActivityStatusActioned  = "actioned"
)

type SuspiciousActivity struct {
	ID           uuid.UUID  `gorm:"type:uuid;primary_key" json:"id"`
	UserID       uuid.UUID  `gorm:"not null;index" json:"user_id"`
	ActivityType string     `gorm:"size:100;not null" json:"activity_type"`
	Severity     string     `gorm:"size:10;not null;default:'low'" json:"severity"`
	Description  string     `gorm:"type:text" json:"description"`
	Status       string     `gorm:"size:20;not null;default:'pending';index" json:"status"`
	AdminNote    *string    `gorm:"type:text" json:"admin_note"`
	ReviewedBy   *uuid.UUID `json:"reviewed_by"`
	ReviewedAt   *time.Time `json:"reviewed_at"`

	User User `gorm:"foreignkey:UserID" json:"user,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (a *SuspiciousActivity) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}
