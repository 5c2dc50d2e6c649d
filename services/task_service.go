package services

import (
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/google/uuid"
	"github.com/thepalians/reviewflow/database"
	"github.com/thepalians/reviewflow/models"
	"gorm.io/gorm"
)

var (
	ErrAssigneeInactive     = errors.New("assignee is not an active user")
	ErrSellerRequired       = errors.New("a seller is required, directly or via a review request")
	ErrInvalidProductLink   = errors.New("product link is not a valid URL")
	ErrNegativeCommission   = errors.New("commission cannot be negative")
	ErrAlreadyProcessed     = errors.New("refund request already processed")
	ErrInvalidRefundAmount  = errors.New("refund amount must be greater than zero")
	ErrProofRequired        = errors.New("payment proof reference is required")
	ErrReasonRequired       = errors.New("rejection reason is required")
	ErrCustomReasonRequired = errors.New("custom reason is required when rejecting with reason \"other\"")
	ErrInvalidRejectionType = errors.New("invalid rejection type")
)

type AssignTaskInput struct {
	UserID          uuid.UUID
	SellerID        *uuid.UUID
	ReviewRequestID *uuid.UUID
	ProductLink     string
	BrandName       string
	Commission      float64
	Deadline        *time.Time
	Priority        string
	Notes           *string
}

// AssignTask creates a task with its four fixed steps in one transaction.
// When a review request is referenced, its seller and product fields take
// precedence; the explicit input fields only fill gaps the request leaves
// empty.
func AssignTask(adminID uuid.UUID, in AssignTaskInput) (*models.Task, error) {
	var assignee models.User
	if err := database.DB.First(&assignee, "id = ?", in.UserID).Error; err != nil {
		return nil, err
	}
	if !assignee.IsActive {
		return nil, ErrAssigneeInactive
	}

	sellerID := in.SellerID
	productLink := in.ProductLink
	brandName := in.BrandName

	var reviewRequest *models.ReviewRequest
	if in.ReviewRequestID != nil {
		var rr models.ReviewRequest
		if err := database.DB.First(&rr, "id = ?", *in.ReviewRequestID).Error; err != nil {
			return nil, err
		}
		reviewRequest = &rr
		sellerID = &rr.SellerID
		if rr.ProductLink != "" {
			productLink = rr.ProductLink
		}
		if rr.BrandName != "" {
			brandName = rr.BrandName
		}
	}

	if sellerID == nil {
		return nil, ErrSellerRequired
	}
	if in.Commission < 0 {
		return nil, ErrNegativeCommission
	}
	parsed, err := url.ParseRequestURI(productLink)
	if err != nil || (parsed.Scheme != "http" && parsed.Scheme != "https") {
		return nil, ErrInvalidProductLink
	}

	priority := in.Priority
	if priority == "" {
		priority = "normal"
	}

	stepNames := GetSettings().TaskStepNames
	task := models.Task{
		UserID:          in.UserID,
		SellerID:        *sellerID,
		ReviewRequestID: in.ReviewRequestID,
		ProductLink:     productLink,
		BrandName:       brandName,
		Commission:      in.Commission,
		Status:          models.TaskStatusPending,
		Deadline:        in.Deadline,
		Priority:        priority,
		Notes:           in.Notes,
		AssignedBy:      adminID,
	}

	err = database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&task).Error; err != nil {
			return err
		}

		for i, name := range stepNames {
			step := models.TaskStep{
				TaskID:     task.ID,
				StepNumber: i + 1,
				StepName:   name,
				StepStatus: models.StepStatusPending,
			}
			if err := tx.Create(&step).Error; err != nil {
				return err
			}
		}

		if reviewRequest != nil {
			if err := tx.Model(reviewRequest).Update("status", models.ReviewRequestStatusAssigned).Error; err != nil {
				return err
			}
		}

		if err := EnqueueEffect(tx, EffectAdminLog, AdminLogPayload{
			AdminID:    adminID,
			Action:     "task_assigned",
			EntityType: "task",
			EntityID:   &task.ID,
			Detail:     fmt.Sprintf("Assigned task to user %s with commission %.2f", in.UserID, in.Commission),
		}); err != nil {
			return err
		}
		if err := EnqueueEffect(tx, EffectNotifyUser, NotifyUserPayload{
			UserID: in.UserID,
			Type:   "task_assigned",
			Title:  "New Review Task",
			Body:   fmt.Sprintf("You have been assigned a new review task for %s.", brandName),
		}); err != nil {
			return err
		}
		return EnqueueEffect(tx, EffectEmailUser, EmailUserPayload{
			UserID:  in.UserID,
			Subject: "New Review Task Assigned",
			Body:    fmt.Sprintf("<h1>New Task</h1><p>You have a new review task for <b>%s</b>. Commission: %.2f.</p>", brandName, in.Commission),
		})
	})
	if err != nil {
		return nil, err
	}

	DispatchPendingEffects()
	return &task, nil
}

type BulkAssignResult struct {
	Assigned int               `json:"assigned"`
	Failed   map[string]string `json:"failed"`
}

// BulkAssignTasks applies AssignTask per user. One user's failure never rolls
// back the others; failures are reported per user id.
func BulkAssignTasks(adminID uuid.UUID, userIDs []uuid.UUID, in AssignTaskInput) BulkAssignResult {
	result := BulkAssignResult{Failed: map[string]string{}}
	for _, userID := range userIDs {
		in.UserID = userID
		if _, err := AssignTask(adminID, in); err != nil {
			result.Failed[userID.String()] = err.Error()
			continue
		}
		result.Assigned++
	}
	return result
}

// ApproveRefund settles step 4: the step completes, the assignee's wallet is
// credited the task commission with its ledger entry, and the task closes,
// all in one transaction. The state guard is the conditional UPDATE on the
// step row; a second approval finds no pending step and fails without
// touching the wallet. Reward hooks go through the outbox.
func ApproveRefund(adminID, taskID uuid.UUID, refundAmount float64, paymentProof string) error {
	if refundAmount <= 0 {
		return ErrInvalidRefundAmount
	}
	if paymentProof == "" {
		return ErrProofRequired
	}

	var task models.Task
	if err := database.DB.First(&task, "id = ?", taskID).Error; err != nil {
		return err
	}

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		now := time.Now()
		res := tx.Model(&models.TaskStep{}).
			Where("task_id = ? AND step_number = ? AND step_status = ?", taskID, models.StepRefundRequest, models.StepStatusPending).
			Updates(map[string]interface{}{
				"step_status":   models.StepStatusCompleted,
				"refund_amount": refundAmount,
				"payment_proof": paymentProof,
				"processed_by":  adminID,
				"processed_at":  now,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrAlreadyProcessed
		}

		refType := "task"
		desc := fmt.Sprintf("Commission for task %s", taskID)
		if _, err := CreditWallet(tx, task.UserID, task.Commission, models.TxnTypeCredit, desc, &taskID, &refType); err != nil {
			return err
		}

		if err := tx.Model(&models.Task{}).Where("id = ?", taskID).Updates(map[string]interface{}{
			"status":           models.TaskStatusCompleted,
			"refund_requested": false,
		}).Error; err != nil {
			return err
		}

		settings := GetSettings()
		referralAmount := task.Commission * settings.ReferralCommissionPercent / 100

		if err := EnqueueEffect(tx, EffectTaskPoints, TaskPointsPayload{
			UserID: task.UserID,
			TaskID: taskID,
		}); err != nil {
			return err
		}
		if err := EnqueueEffect(tx, EffectReferralCommission, ReferralCommissionPayload{
			UserID: task.UserID,
			TaskID: taskID,
			Amount: referralAmount,
		}); err != nil {
			return err
		}
		if err := EnqueueEffect(tx, EffectNotifyUser, NotifyUserPayload{
			UserID: task.UserID,
			Type:   "refund_approved",
			Title:  "Refund Approved",
			Body:   fmt.Sprintf("Your refund was approved and %.2f commission was credited to your wallet.", task.Commission),
		}); err != nil {
			return err
		}
		return EnqueueEffect(tx, EffectEmailUser, EmailUserPayload{
			UserID:  task.UserID,
			Subject: "Your Refund Has Been Approved",
			Body:    fmt.Sprintf("<h1>Refund Approved</h1><p>Your refund request was approved. A commission of %.2f has been credited to your wallet.</p>", task.Commission),
		})
	})
	if err != nil {
		return err
	}

	DispatchPendingEffects()
	return nil
}

func validRejectionType(t string) bool {
	switch t {
	case models.RejectionTypeQuality, models.RejectionTypeGuidelines,
		models.RejectionTypeProof, models.RejectionTypeDuplicate, models.RejectionTypeOther:
		return true
	}
	return false
}

// RejectRefund rejects step 4 and closes the task without any wallet
// mutation. The rejection category is mandatory; "other" additionally needs
// a custom reason, which becomes the recorded reason.
func RejectRefund(adminID, taskID uuid.UUID, rejectionType, reasonCode, customReason string) error {
	if !validRejectionType(rejectionType) {
		return ErrInvalidRejectionType
	}
	if reasonCode == "" {
		return ErrReasonRequired
	}
	finalReason := reasonCode
	if reasonCode == "other" {
		if customReason == "" {
			return ErrCustomReasonRequired
		}
		finalReason = customReason
	}

	var task models.Task
	if err := database.DB.First(&task, "id = ?", taskID).Error; err != nil {
		return err
	}

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		now := time.Now()
		res := tx.Model(&models.TaskStep{}).
			Where("task_id = ? AND step_number = ? AND step_status = ?", taskID, models.StepRefundRequest, models.StepStatusPending).
			Updates(map[string]interface{}{
				"step_status":      models.StepStatusRejected,
				"rejection_reason": finalReason,
				"processed_by":     adminID,
				"processed_at":     now,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrAlreadyProcessed
		}

		if err := tx.Model(&models.Task{}).Where("id = ?", taskID).Updates(map[string]interface{}{
			"status":           models.TaskStatusRejected,
			"refund_requested": false,
		}).Error; err != nil {
			return err
		}

		rejection := models.TaskRejection{
			TaskID:        taskID,
			UserID:        task.UserID,
			RejectionType: rejectionType,
			Reason:        finalReason,
			CanResubmit:   true,
			RejectedBy:    adminID,
		}
		if err := tx.Create(&rejection).Error; err != nil {
			return err
		}

		return EnqueueEffect(tx, EffectNotifyUser, NotifyUserPayload{
			UserID: task.UserID,
			Type:   "refund_rejected",
			Title:  "Refund Rejected",
			Body:   fmt.Sprintf("Your refund request was rejected: %s", finalReason),
		})
	})
	if err != nil {
		return err
	}

	DispatchPendingEffects()
	return nil
}
