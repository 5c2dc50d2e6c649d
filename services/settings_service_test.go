package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thepalians/reviewflow/database"
	"github.com/thepalians/reviewflow/models"
)

func TestGetSettingsDefaults(t *testing.T) {
	setupTestDB(t)

	s := GetSettings()
	assert.Equal(t, "ReviewFlow", s.PlatformName)
	assert.Equal(t, []string{"Order Placed", "Delivered", "Review Submitted", "Refund Request"}, s.TaskStepNames)
	assert.Equal(t, 5.0, s.ReferralCommissionPercent)
	assert.Equal(t, 10, s.TaskCompletionPoints)
	assert.Equal(t, 100.0, s.MinWithdrawalAmount)
}

func TestGetSettingsReadsOverrides(t *testing.T) {
	setupTestDB(t)

	require.NoError(t, database.DB.Create(&models.SystemSetting{Key: "task_completion_points", Value: "25"}).Error)
	require.NoError(t, database.DB.Create(&models.SystemSetting{Key: "min_withdrawal_amount", Value: "250"}).Error)
	require.NoError(t, database.DB.Create(&models.SystemSetting{Key: "task_step_names", Value: "One, Two, Three, Четыре"}).Error)
	InvalidateSettings()

	s := GetSettings()
	assert.Equal(t, 25, s.TaskCompletionPoints)
	assert.Equal(t, 250.0, s.MinWithdrawalAmount)
	assert.Equal(t, []string{"One", "Two", "Three", "Четыре"}, s.TaskStepNames)
}

func TestGetSettingsIgnoresInvalidValues(t *testing.T) {
	setupTestDB(t)

	require.NoError(t, database.DB.Create(&models.SystemSetting{Key: "referral_commission_percent", Value: "not-a-number"}).Error)
	require.NoError(t, database.DB.Create(&models.SystemSetting{Key: "task_step_names", Value: "only,three,names"}).Error)
	require.NoError(t, database.DB.Create(&models.SystemSetting{Key: "support_email", Value: "missing-at-sign"}).Error)
	InvalidateSettings()

	s := GetSettings()
	assert.Equal(t, 5.0, s.ReferralCommissionPercent)
	assert.Len(t, s.TaskStepNames, 4)
	assert.Equal(t, "support@reviewflow.app", s.SupportEmail)
}

func TestUpsertSettingInvalidatesCache(t *testing.T) {
	setupTestDB(t)

	before := GetSettings()
	assert.Equal(t, 10, before.TaskCompletionPoints)

	require.NoError(t, UpsertSetting("task_completion_points", "40"))
	assert.Equal(t, 40, GetSettings().TaskCompletionPoints)

	require.NoError(t, UpsertSetting("task_completion_points", "15"))
	assert.Equal(t, 15, GetSettings().TaskCompletionPoints)

	var count int64
	database.DB.Model(&models.SystemSetting{}).Where("key = ?", "task_completion_points").Count(&count)
	assert.EqualValues(t, 1, count)
}

func TestCustomStepNamesFlowIntoNewTasks(t *testing.T) {
	setupTestDB(t)
	user := createTestUser(t, true)
	seller := createTestSeller(t)

	require.NoError(t, UpsertSetting("task_step_names", "Buy, Receive, Review, Refund"))

	task := assignTestTask(t, user.ID, seller.ID, 20)

	var steps []models.TaskStep
	require.NoError(t, database.DB.Order("step_number asc").Find(&steps, "task_id = ?", task.ID).Error)
	require.Len(t, steps, 4)
	assert.Equal(t, "Buy", steps[0].StepName)
	assert.Equal(t, "Refund", steps[3].StepName)
}
