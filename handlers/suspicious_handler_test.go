package handlers

import (
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thepalians/reviewflow/database"
	"github.com/thepalians/reviewflow/models"
)

func suspiciousApp() *fiber.App {
	return testApp(func(app *fiber.App) {
		app.Get("/suspicious-activities", ListSuspiciousActivities)
		app.Patch("/suspicious-activities/:activityId/review", MarkActivityReviewed)
		app.Patch("/suspicious-activities/:activityId/dismiss", DismissActivity)
		app.Post("/suspicious-activities/:activityId/penalty", AddPenalty)
	})
}

func seedActivity(t *testing.T) (models.User, models.SuspiciousActivity) {
	t.Helper()
	user := models.User{FullName: "Flagged User", Email: "flagged@example.com", Password: "x", Role: "user", IsActive: true}
	require.NoError(t, database.DB.Create(&user).Error)
	activity := models.SuspiciousActivity{
		UserID:       user.ID,
		ActivityType: "duplicate_reviews",
		Severity:     "high",
		Description:  "Same review text submitted for three sellers",
		Status:       models.ActivityStatusPending,
	}
	require.NoError(t, database.DB.Create(&activity).Error)
	return user, activity
}

func TestMarkActivityReviewed(t *testing.T) {
	setupHandlerDB(t)
	app := suspiciousApp()
	_, activity := seedActivity(t)

	resp, err := app.Test(jsonRequest("PATCH", "/suspicious-activities/"+activity.ID.String()+"/review", fiber.Map{
		"admin_note": "Checked manually, reviews differ enough",
	}))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var updated models.SuspiciousActivity
	require.NoError(t, database.DB.First(&updated, "id = ?", activity.ID).Error)
	assert.Equal(t, models.ActivityStatusReviewed, updated.Status)
	assert.NotNil(t, updated.ReviewedBy)
	assert.NotNil(t, updated.ReviewedAt)
}

func TestAddPenaltyActionsActivity(t *testing.T) {
	setupHandlerDB(t)
	app := suspiciousApp()
	user, activity := seedActivity(t)

	resp, err := app.Test(jsonRequest("POST", "/suspicious-activities/"+activity.ID.String()+"/penalty", fiber.Map{
		"penalty_type": "warning",
		"reason":       "Duplicate review content",
	}))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var updated models.SuspiciousActivity
	require.NoError(t, database.DB.First(&updated, "id = ?", activity.ID).Error)
	assert.Equal(t, models.ActivityStatusActioned, updated.Status)

	var penalty models.UserPenalty
	require.NoError(t, database.DB.First(&penalty, "user_id = ?", user.ID).Error)
	assert.Equal(t, "warning", penalty.PenaltyType)
	require.NotNil(t, penalty.ActivityID)
	assert.Equal(t, activity.ID, *penalty.ActivityID)

	// An actioned activity cannot be penalized again or dismissed.
	resp, err = app.Test(jsonRequest("POST", "/suspicious-activities/"+activity.ID.String()+"/penalty", fiber.Map{
		"penalty_type": "suspension",
		"reason":       "Trying again",
	}))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)

	resp, err = app.Test(jsonRequest("PATCH", "/suspicious-activities/"+activity.ID.String()+"/dismiss", fiber.Map{}))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)

	var penaltyCount int64
	database.DB.Model(&models.UserPenalty{}).Where("user_id = ?", user.ID).Count(&penaltyCount)
	assert.EqualValues(t, 1, penaltyCount)
}

func TestAddPenaltyRequiresReason(t *testing.T) {
	setupHandlerDB(t)
	app := suspiciousApp()
	_, activity := seedActivity(t)

	resp, err := app.Test(jsonRequest("POST", "/suspicious-activities/"+activity.ID.String()+"/penalty", fiber.Map{
		"penalty_type": "warning",
	}))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}
