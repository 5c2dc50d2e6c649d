package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	StepStatusPending   = "pending"
	StepStatusCompleted = "completed"
	StepStatusRejected  = "rejected"

	StepRefundRequest = 4
)

// TaskStep rows are created together with their Task, exactly four per task,
// numbered 1 through 4. Step 4 carries the refund settlement fields.
type TaskStep struct {
	ID              uuid.UUID  `gorm:"type:uuid;primary_key" json:"id"`
	TaskID          uuid.UUID  `gorm:"not null;uniqueIndex:idx_task_step_number" json:"task_id"`
	StepNumber      int        `gorm:"not null;uniqueIndex:idx_task_step_number" json:"step_number"`
	StepName        string     `gorm:"size:100;not null" json:"step_name"`
	StepStatus      string     `gorm:"size:20;not null;default:'pending'" json:"step_status"`
	RefundAmount    *float64   `gorm:"type:numeric(12,2)" json:"refund_amount"`
	PaymentProof    *string    `gorm:"size:500" json:"payment_proof"`
	RejectionReason *string    `gorm:"type:text" json:"rejection_reason"`
	ProcessedBy     *uuid.UUID `json:"processed_by"`
	ProcessedAt     *time.Time `json:"processed_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (s *TaskStep) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}
