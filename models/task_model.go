package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	TaskStatusPending   = "pending"
	TaskStatusCompleted = "completed"
	TaskStatusRejected  = "rejected"
	TaskStatusCancelled = "cancelled"
)

type Task struct {
	ID              uuid.UUID  `gorm:"type:uuid;primary_key" json:"id"`
	UserID          uuid.UUID  `gorm:"not null;index" json:"user_id"`
	SellerID        uuid.UUID  `gorm:"not null" json:"seller_id"`
	ReviewRequestID *uuid.UUID `json:"review_request_id"`
	ProductLink     string     `gorm:"size:500;not null" json:"product_link"`
	BrandName       string     `gorm:"size:255" json:"brand_name"`
	Commission      float64    `gorm:"type:numeric(12,2);not null" json:"commission"`
	Status          string     `gorm:"size:20;not null;default:'pending';index" json:"status"`
	RefundRequested bool       `gorm:"default:false" json:"refund_requested"`
	Deadline        *time.Time `json:"deadline"`
	Priority        string     `gorm:"size:10;not null;default:'normal'" json:"priority"`
	Notes           *string    `gorm:"type:text" json:"notes"`
	AssignedBy      uuid.UUID  `gorm:"not null" json:"assigned_by"`

	User   User       `gorm:"foreignkey:UserID" json:"user,omitempty"`
	Seller Seller     `gorm:"foreignkey:SellerID" json:"seller,omitempty"`
	Steps  []TaskStep `gorm:"foreignkey:TaskID" json:"steps,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (t *Task) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}
