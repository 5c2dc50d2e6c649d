package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	RejectionTypeQuality    = "quality"
	RejectionTypeGuidelines = "guidelines"
	RejectionTypeProof      = "proof"
	RejectionTypeDuplicate  = "duplicate"
	RejectionTypeOther      = "other"
)

// TaskRejection is the audit record written when a refund request is rejected.
// The rejection category is captured at rejection time.
type TaskRejection struct {
	ID            uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	TaskID        uuid.UUID `gorm:"not null;index" json:"task_id"`
	UserID        uuid.UUID `gorm:"not null" json:"user_id"`
	RejectionType string    `gorm:"size:20;not null" json:"rejection_type"`
	Reason        string    `gorm:"type:text;not null" json:"reason"`
	CanResubmit   bool      `json:"can_resubmit"`
	RejectedBy    uuid.UUID `gorm:"not null" json:"rejected_by"`

	CreatedAt time.Time `json:"created_at"`
}

func (r *TaskRejection) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}
