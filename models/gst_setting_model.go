package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type GSTSetting struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	RatePercent float64   `gorm:"type:numeric(5,2);not null" json:"rate_percent"`
	GSTIN       *string   `gorm:"size:20" json:"gstin"`
	IsActive    bool      `json:"is_active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (GSTSetting) TableName() string {
	return "gst_settings"
}

func (g *GSTSetting) BeforeCreate(tx *gorm.DB) error {
	if g.ID == uuid.Nil {
		g.ID = uuid.New()
	}
	return nil
}
