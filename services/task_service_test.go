package services

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thepalians/reviewflow/database"
	"github.com/thepalians/reviewflow/models"
)

func TestAssignTaskCreatesFourSteps(t *testing.T) {
	setupTestDB(t)
	user := createTestUser(t, true)
	seller := createTestSeller(t)

	task := assignTestTask(t, user.ID, seller.ID, 50)

	assert.Equal(t, models.TaskStatusPending, task.Status)
	assert.NotEqual(t, uuid.Nil, task.ID)

	var steps []models.TaskStep
	require.NoError(t, database.DB.Order("step_number asc").Find(&steps, "task_id = ?", task.ID).Error)
	require.Len(t, steps, 4)
	for i, step := range steps {
		assert.Equal(t, i+1, step.StepNumber)
		assert.Equal(t, models.StepStatusPending, step.StepStatus)
		assert.NotEmpty(t, step.StepName)
	}
}

func TestAssignTaskRejectsInactiveUser(t *testing.T) {
	setupTestDB(t)
	user := createTestUser(t, false)
	seller := createTestSeller(t)

	// The deactivated flag must survive the insert as-is.
	var stored models.User
	require.NoError(t, database.DB.First(&stored, "id = ?", user.ID).Error)
	require.False(t, stored.IsActive)

	_, err := AssignTask(uuid.New(), AssignTaskInput{
		UserID:      user.ID,
		SellerID:    &seller.ID,
		ProductLink: "https://example.com/p",
		Commission:  10,
	})
	assert.ErrorIs(t, err, ErrAssigneeInactive)

	var count int64
	database.DB.Model(&models.Task{}).Where("user_id = ?", user.ID).Count(&count)
	assert.Zero(t, count)
}

func TestAssignTaskValidatesInput(t *testing.T) {
	setupTestDB(t)
	user := createTestUser(t, true)
	seller := createTestSeller(t)

	_, err := AssignTask(uuid.New(), AssignTaskInput{
		UserID:      user.ID,
		ProductLink: "https://example.com/p",
	})
	assert.ErrorIs(t, err, ErrSellerRequired)

	_, err = AssignTask(uuid.New(), AssignTaskInput{
		UserID:      user.ID,
		SellerID:    &seller.ID,
		ProductLink: "not a url",
	})
	assert.ErrorIs(t, err, ErrInvalidProductLink)

	_, err = AssignTask(uuid.New(), AssignTaskInput{
		UserID:      user.ID,
		SellerID:    &seller.ID,
		ProductLink: "ftp://example.com/p",
	})
	assert.ErrorIs(t, err, ErrInvalidProductLink)

	_, err = AssignTask(uuid.New(), AssignTaskInput{
		UserID:      user.ID,
		SellerID:    &seller.ID,
		ProductLink: "https://example.com/p",
		Commission:  -1,
	})
	assert.ErrorIs(t, err, ErrNegativeCommission)
}

func TestAssignTaskZeroCommissionAllowed(t *testing.T) {
	setupTestDB(t)
	user := createTestUser(t, true)
	seller := createTestSeller(t)

	task := assignTestTask(t, user.ID, seller.ID, 0)
	assert.Zero(t, task.Commission)
}

func TestAssignTaskFromReviewRequest(t *testing.T) {
	setupTestDB(t)
	user := createTestUser(t, true)
	seller := createTestSeller(t)

	request := models.ReviewRequest{
		SellerID:    seller.ID,
		ProductLink: "https://example.com/from-request",
		BrandName:   "Request Brand",
		Status:      models.ReviewRequestStatusOpen,
	}
	require.NoError(t, database.DB.Create(&request).Error)

	task, err := AssignTask(uuid.New(), AssignTaskInput{
		UserID:          user.ID,
		ReviewRequestID: &request.ID,
		ProductLink:     "https://example.com/ignored",
		BrandName:       "Ignored",
		Commission:      25,
	})
	require.NoError(t, err)

	assert.Equal(t, seller.ID, task.SellerID)
	assert.Equal(t, "https://example.com/from-request", task.ProductLink)
	assert.Equal(t, "Request Brand", task.BrandName)

	var updated models.ReviewRequest
	require.NoError(t, database.DB.First(&updated, "id = ?", request.ID).Error)
	assert.Equal(t, models.ReviewRequestStatusAssigned, updated.Status)
}

func TestApproveRefundCreditsCommission(t *testing.T) {
	setupTestDB(t)
	user := createTestUser(t, true)
	seller := createTestSeller(t)
	task := assignTestTask(t, user.ID, seller.ID, 50)
	admin := uuid.New()

	require.NoError(t, ApproveRefund(admin, task.ID, 120, "https://cdn.example.com/proof.png"))

	assert.Equal(t, 50.0, walletBalance(t, user.ID))

	var txn models.WalletTransaction
	require.NoError(t, database.DB.First(&txn, "user_id = ? AND type = ?", user.ID, models.TxnTypeCredit).Error)
	assert.Equal(t, 50.0, txn.Amount)
	assert.Equal(t, 50.0, txn.BalanceAfter)
	assert.Equal(t, models.TxnStatusCompleted, txn.Status)
	require.NotNil(t, txn.ReferenceID)
	assert.Equal(t, task.ID, *txn.ReferenceID)

	var updated models.Task
	require.NoError(t, database.DB.First(&updated, "id = ?", task.ID).Error)
	assert.Equal(t, models.TaskStatusCompleted, updated.Status)
	assert.False(t, updated.RefundRequested)

	var step models.TaskStep
	require.NoError(t, database.DB.First(&step, "task_id = ? AND step_number = ?", task.ID, models.StepRefundRequest).Error)
	assert.Equal(t, models.StepStatusCompleted, step.StepStatus)
	require.NotNil(t, step.RefundAmount)
	assert.Equal(t, 120.0, *step.RefundAmount)
	require.NotNil(t, step.ProcessedBy)
	assert.Equal(t, admin, *step.ProcessedBy)
	assert.NotNil(t, step.ProcessedAt)
}

func TestApproveRefundTwiceCreditsOnce(t *testing.T) {
	setupTestDB(t)
	user := createTestUser(t, true)
	seller := createTestSeller(t)
	task := assignTestTask(t, user.ID, seller.ID, 50)

	require.NoError(t, ApproveRefund(uuid.New(), task.ID, 120, "proof-1"))
	err := ApproveRefund(uuid.New(), task.ID, 120, "proof-2")
	assert.ErrorIs(t, err, ErrAlreadyProcessed)

	assert.Equal(t, 50.0, walletBalance(t, user.ID))

	var count int64
	database.DB.Model(&models.WalletTransaction{}).
		Where("user_id = ? AND type = ?", user.ID, models.TxnTypeCredit).Count(&count)
	assert.EqualValues(t, 1, count)
}

func TestApproveRefundValidation(t *testing.T) {
	setupTestDB(t)
	user := createTestUser(t, true)
	seller := createTestSeller(t)
	task := assignTestTask(t, user.ID, seller.ID, 50)

	assert.ErrorIs(t, ApproveRefund(uuid.New(), task.ID, 0, "proof"), ErrInvalidRefundAmount)
	assert.ErrorIs(t, ApproveRefund(uuid.New(), task.ID, -5, "proof"), ErrInvalidRefundAmount)
	assert.ErrorIs(t, ApproveRefund(uuid.New(), task.ID, 120, ""), ErrProofRequired)

	// Failed validation must leave the task untouched.
	var step models.TaskStep
	require.NoError(t, database.DB.First(&step, "task_id = ? AND step_number = ?", task.ID, models.StepRefundRequest).Error)
	assert.Equal(t, models.StepStatusPending, step.StepStatus)
}

func TestRejectRefundNoWalletMutation(t *testing.T) {
	setupTestDB(t)
	user := createTestUser(t, true)
	seller := createTestSeller(t)
	task := assignTestTask(t, user.ID, seller.ID, 50)
	admin := uuid.New()

	require.NoError(t, RejectRefund(admin, task.ID, models.RejectionTypeQuality, "blurry_screenshots", ""))

	var txnCount int64
	database.DB.Model(&models.WalletTransaction{}).Where("user_id = ?", user.ID).Count(&txnCount)
	assert.Zero(t, txnCount)

	var updated models.Task
	require.NoError(t, database.DB.First(&updated, "id = ?", task.ID).Error)
	assert.Equal(t, models.TaskStatusRejected, updated.Status)

	var rejection models.TaskRejection
	require.NoError(t, database.DB.First(&rejection, "task_id = ?", task.ID).Error)
	assert.Equal(t, models.RejectionTypeQuality, rejection.RejectionType)
	assert.Equal(t, "blurry_screenshots", rejection.Reason)
	assert.True(t, rejection.CanResubmit)
	assert.Equal(t, admin, rejection.RejectedBy)

	var step models.TaskStep
	require.NoError(t, database.DB.First(&step, "task_id = ? AND step_number = ?", task.ID, models.StepRefundRequest).Error)
	assert.Equal(t, models.StepStatusRejected, step.StepStatus)
	require.NotNil(t, step.RejectionReason)
	assert.Equal(t, "blurry_screenshots", *step.RejectionReason)
}

func TestRejectRefundOtherRequiresCustomReason(t *testing.T) {
	setupTestDB(t)
	user := createTestUser(t, true)
	seller := createTestSeller(t)
	task := assignTestTask(t, user.ID, seller.ID, 50)

	err := RejectRefund(uuid.New(), task.ID, models.RejectionTypeOther, "other", "")
	assert.ErrorIs(t, err, ErrCustomReasonRequired)

	var step models.TaskStep
	require.NoError(t, database.DB.First(&step, "task_id = ? AND step_number = ?", task.ID, models.StepRefundRequest).Error)
	assert.Equal(t, models.StepStatusPending, step.StepStatus)

	require.NoError(t, RejectRefund(uuid.New(), task.ID, models.RejectionTypeOther, "other", "screenshots from a different order"))

	var rejection models.TaskRejection
	require.NoError(t, database.DB.First(&rejection, "task_id = ?", task.ID).Error)
	assert.Equal(t, "screenshots from a different order", rejection.Reason)
}

func TestRejectRefundValidation(t *testing.T) {
	setupTestDB(t)
	user := createTestUser(t, true)
	seller := createTestSeller(t)
	task := assignTestTask(t, user.ID, seller.ID, 50)

	assert.ErrorIs(t, RejectRefund(uuid.New(), task.ID, "bogus", "reason", ""), ErrInvalidRejectionType)
	assert.ErrorIs(t, RejectRefund(uuid.New(), task.ID, models.RejectionTypeQuality, "", ""), ErrReasonRequired)
}

func TestRejectThenApproveConflicts(t *testing.T) {
	setupTestDB(t)
	user := createTestUser(t, true)
	seller := createTestSeller(t)
	task := assignTestTask(t, user.ID, seller.ID, 50)

	require.NoError(t, RejectRefund(uuid.New(), task.ID, models.RejectionTypeProof, "missing_order_id", ""))
	assert.ErrorIs(t, ApproveRefund(uuid.New(), task.ID, 120, "proof"), ErrAlreadyProcessed)

	var ledgerCount int64
	database.DB.Model(&models.WalletTransaction{}).Where("user_id = ?", user.ID).Count(&ledgerCount)
	assert.Zero(t, ledgerCount)
}

func TestBulkAssignIsolatesFailures(t *testing.T) {
	setupTestDB(t)
	active1 := createTestUser(t, true)
	inactive := createTestUser(t, false)
	active2 := createTestUser(t, true)
	seller := createTestSeller(t)

	result := BulkAssignTasks(uuid.New(), []uuid.UUID{active1.ID, inactive.ID, active2.ID}, AssignTaskInput{
		SellerID:    &seller.ID,
		ProductLink: "https://example.com/p",
		Commission:  15,
	})

	assert.Equal(t, 2, result.Assigned)
	require.Len(t, result.Failed, 1)
	assert.Contains(t, result.Failed, inactive.ID.String())

	var taskCount int64
	database.DB.Model(&models.Task{}).Count(&taskCount)
	assert.EqualValues(t, 2, taskCount)

	var stepCount int64
	database.DB.Model(&models.TaskStep{}).Count(&stepCount)
	assert.EqualValues(t, 8, stepCount)

	database.DB.Model(&models.Task{}).Where("user_id = ?", inactive.ID).Count(&taskCount)
	assert.Zero(t, taskCount)
}
